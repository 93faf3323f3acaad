package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dompetku/dompetku/internal/cli"
	"github.com/dompetku/dompetku/internal/model"
	"github.com/dompetku/dompetku/internal/store"
)

func walletsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallets",
		Short: "Manage wallets",
		Long:  `List, create, edit, and delete wallets, and pick the default wallet for transaction commands.`,
	}

	cmd.AddCommand(listWalletsCmd())
	cmd.AddCommand(addWalletCmd())
	cmd.AddCommand(editWalletCmd())
	cmd.AddCommand(deleteWalletCmd())
	cmd.AddCommand(selectWalletCmd())
	cmd.AddCommand(walletBalanceCmd())
	return cmd
}

func listWalletsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all wallets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}
			wallets, _ := newStores(client)

			records, err := wallets.FetchAll(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No wallets yet. Use 'dompetku wallets add' to create one."))
				return nil
			}

			selected := viper.GetInt64("defaults.wallet_id")

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Balance"),
				cli.HeaderStyle.Render("Description"))

			for _, wallet := range records {
				name := wallet.Name
				if wallet.ID == selected {
					name = cli.BoldStyle.Render(name + " *")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					wallet.ID, name, wallet.Type, cli.Currency(wallet.Balance),
					cli.Truncate(wallet.Description, 40))
			}
			fmt.Fprintf(w, "\t%s\t\t%s\t\n",
				cli.BoldStyle.Render("Total"),
				cli.BoldStyle.Render(cli.Currency(wallets.TotalBalance())))
			return nil
		},
	}
}

func walletDraftFlags(cmd *cobra.Command, draft *store.WalletDraft) {
	var typeStr string
	cmd.Flags().StringVar(&draft.Name, "name", "", "wallet name (required)")
	cmd.Flags().StringVar(&draft.Description, "description", "", "wallet description")
	cmd.Flags().Float64Var(&draft.Balance, "balance", 0, "initial balance")
	cmd.Flags().StringVar(&typeStr, "type", string(model.WalletTypeCash), "wallet type (cash, bank, e-wallet, investment, other)")
	cmd.Flags().StringVar(&draft.Color, "color", "", "display color tag")
	cmd.PreRun = func(_ *cobra.Command, _ []string) {
		draft.Type = model.WalletType(typeStr)
	}
}

func addWalletCmd() *cobra.Command {
	var draft store.WalletDraft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a wallet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}
			wallets, _ := newStores(client)

			wallet, err := wallets.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created wallet %q (id %d, balance %s)",
				wallet.Name, wallet.ID, cli.Currency(wallet.Balance))))
			return nil
		},
	}

	walletDraftFlags(cmd, &draft)
	return cmd
}

func editWalletCmd() *cobra.Command {
	var draft store.WalletDraft

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid wallet id %q", args[0])
			}

			client, _, err := newClient()
			if err != nil {
				return err
			}
			wallets, _ := newStores(client)

			wallet, err := wallets.Update(cmd.Context(), id, draft)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated wallet %q", wallet.Name)))
			return nil
		},
	}

	walletDraftFlags(cmd, &draft)
	return cmd
}

func deleteWalletCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a wallet and (server-side) its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid wallet id %q", args[0])
			}

			if !yes && !confirm("Delete this wallet and all of its transactions?") {
				fmt.Println("Aborted.")
				return nil
			}

			client, _, err := newClient()
			if err != nil {
				return err
			}
			wallets, _ := newStores(client)

			if err := wallets.Delete(cmd.Context(), id); err != nil {
				return err
			}
			if viper.GetInt64("defaults.wallet_id") == id {
				viper.Set("defaults.wallet_id", 0)
				_ = viper.WriteConfig()
			}
			fmt.Println(cli.FormatSuccess("Wallet deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}

func selectWalletCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <id>",
		Short: "Set the default wallet for transaction commands",
		Long:  `Pick the wallet that transaction listings and new transactions use when no --wallet flag is given. Pass 0 to clear the selection.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid wallet id %q", args[0])
			}

			if id != 0 {
				client, _, err := newClient()
				if err != nil {
					return err
				}
				wallets, _ := newStores(client)
				if _, err := wallets.FetchAll(cmd.Context()); err != nil {
					return err
				}
				w, ok := wallets.ByID(id)
				if !ok {
					return fmt.Errorf("no wallet with id %d", id)
				}
				wallets.SetCurrent(&w)
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Selected wallet %q", w.Name)))
			} else {
				fmt.Println(cli.FormatSuccess("Cleared wallet selection"))
			}

			viper.Set("defaults.wallet_id", id)
			if err := viper.WriteConfig(); err != nil {
				// First run: no config file exists yet.
				if err := viper.SafeWriteConfig(); err != nil {
					return fmt.Errorf("failed to save selection: %w", err)
				}
			}
			return nil
		},
	}
}

func walletBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <id>",
		Short: "Show the backend-computed balance of one wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid wallet id %q", args[0])
			}

			client, _, err := newClient()
			if err != nil {
				return err
			}
			wallets, _ := newStores(client)

			balance, err := wallets.Balance(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Println(cli.Currency(balance))
			return nil
		},
	}
}
