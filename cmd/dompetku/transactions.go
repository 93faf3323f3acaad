package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dompetku/dompetku/internal/category"
	"github.com/dompetku/dompetku/internal/cli"
	"github.com/dompetku/dompetku/internal/model"
	"github.com/dompetku/dompetku/internal/store"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions"},
		Short:   "Manage transactions",
		Long:    `List, search, create, edit, and delete income and expense transactions.`,
	}

	cmd.AddCommand(listTxCmd())
	cmd.AddCommand(showTxCmd())
	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(editTxCmd())
	cmd.AddCommand(deleteTxCmd())
	return cmd
}

type txFilterFlags struct {
	walletID int64
	txType   string
	from     string
	to       string
	search   string
	page     int
	limit    int
}

func (f *txFilterFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.walletID, "wallet", 0, "only this wallet id")
	cmd.Flags().StringVar(&f.txType, "type", "", "only this type (income, expense)")
	cmd.Flags().StringVar(&f.from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.search, "search", "", "free-text search")
	cmd.Flags().IntVar(&f.page, "page", 1, "page number")
	cmd.Flags().IntVar(&f.limit, "limit", 10, "page size")
}

func (f *txFilterFlags) patch() store.FilterPatch {
	patch := store.FilterPatch{}
	if f.walletID != 0 {
		patch.WalletID = &f.walletID
	}
	if f.txType != "" {
		t := model.TransactionType(f.txType)
		patch.Type = &t
	}
	if f.from != "" {
		d := model.RawDate(f.from)
		patch.StartDate = &d
	}
	if f.to != "" {
		d := model.RawDate(f.to)
		patch.EndDate = &d
	}
	if f.search != "" {
		patch.SearchQuery = &f.search
	}
	return patch
}

func listTxCmd() *cobra.Command {
	var flags txFilterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions on the current page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}
			wallets, transactions := newStores(client)

			if _, err := wallets.FetchAll(cmd.Context()); err != nil {
				return err
			}
			applyDefaultWallet(wallets)

			// SetFilters resets to page 1 and fetches; an explicit page
			// request is applied afterwards.
			if err := transactions.SetFilters(cmd.Context(), flags.patch()); err != nil {
				return err
			}
			if flags.page > 1 || flags.limit != 10 {
				if err := transactions.SetPagination(cmd.Context(), store.PaginationPatch{
					Page:  &flags.page,
					Limit: &flags.limit,
				}); err != nil {
					return err
				}
			}

			printTransactions(transactions.Transactions(), wallets.Wallets())
			p := transactions.Pagination()
			fmt.Println(cli.SubtleStyle.Render(
				fmt.Sprintf("Page %d of %d (%d transactions)", p.Page, p.TotalPages, p.TotalItems)))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func showTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}

			client, _, err := newClient()
			if err != nil {
				return err
			}
			_, transactions := newStores(client)

			tx, err := transactions.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Printf("%s %s\n", cli.BoldStyle.Render(tx.Description),
				cli.Amount(tx.Amount, tx.Type == model.TypeIncome))
			fmt.Printf("  Date:     %s\n", cli.FormatDate(tx.Date))
			fmt.Printf("  Category: %s\n", category.LabelFor(tx.Category))
			fmt.Printf("  Wallet:   %d\n", tx.WalletID)
			if tx.Notes != "" {
				fmt.Printf("  Notes:    %s\n", tx.Notes)
			}
			return nil
		},
	}
}

type txDraftFlags struct {
	amount      float64
	description string
	txType      string
	categoryKey string
	walletID    int64
	date        string
	notes       string
}

func (f *txDraftFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.amount, "amount", 0, "amount (required, > 0)")
	cmd.Flags().StringVar(&f.description, "description", "", "description (required)")
	cmd.Flags().StringVar(&f.txType, "type", string(model.TypeExpense), "type (income, expense)")
	cmd.Flags().StringVar(&f.categoryKey, "category", "", "category key (see 'dompetku categories')")
	cmd.Flags().Int64Var(&f.walletID, "wallet", 0, "wallet id (defaults to the selected wallet)")
	cmd.Flags().StringVar(&f.date, "date", "", "date (YYYY-MM-DD or full timestamp; default now)")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
}

func (f *txDraftFlags) draft() store.TransactionDraft {
	return store.TransactionDraft{
		Amount:      f.amount,
		Description: f.description,
		Type:        model.TransactionType(f.txType),
		Category:    f.categoryKey,
		WalletID:    f.walletID,
		Date:        f.date,
		Notes:       f.notes,
	}
}

func addTxCmd() *cobra.Command {
	var flags txDraftFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}
			wallets, transactions := newStores(client)

			if flags.walletID == 0 {
				if _, err := wallets.FetchAll(cmd.Context()); err != nil {
					return err
				}
				applyDefaultWallet(wallets)
			}

			tx, err := transactions.Create(cmd.Context(), flags.draft())
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s %q (id %d)",
				tx.Type, tx.Description, tx.ID)))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func editTxCmd() *cobra.Command {
	var flags txDraftFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a transaction",
		Long:  `Edit a transaction's amount, description, category, date, or notes. The wallet cannot be changed on edit.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}

			client, _, err := newClient()
			if err != nil {
				return err
			}
			_, transactions := newStores(client)

			tx, err := transactions.Update(cmd.Context(), id, flags.draft())
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated transaction %d", tx.ID)))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func deleteTxCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}

			if !yes && !confirm("Delete this transaction?") {
				fmt.Println("Aborted.")
				return nil
			}

			client, _, err := newClient()
			if err != nil {
				return err
			}
			_, transactions := newStores(client)

			if err := transactions.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Transaction deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}

func printTransactions(transactions []model.Transaction, wallets []model.Wallet) {
	if len(transactions) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No transactions match the current filters."))
		return
	}

	names := make(map[int64]string, len(wallets))
	for _, w := range wallets {
		names[w.ID] = w.Name
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("ID"),
		cli.HeaderStyle.Render("Date"),
		cli.HeaderStyle.Render("Description"),
		cli.HeaderStyle.Render("Category"),
		cli.HeaderStyle.Render("Wallet"),
		cli.HeaderStyle.Render("Amount"))

	for _, tx := range transactions {
		wallet := names[tx.WalletID]
		if wallet == "" {
			wallet = strconv.FormatInt(tx.WalletID, 10)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID,
			cli.FormatDate(tx.Date),
			cli.Truncate(tx.Description, 32),
			category.LabelFor(tx.Category),
			wallet,
			cli.Amount(tx.Amount, tx.Type == model.TypeIncome))
	}
}
