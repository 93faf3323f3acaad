package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dompetku/dompetku/internal/cli"
	"github.com/dompetku/dompetku/internal/model"
	"github.com/dompetku/dompetku/internal/query"
	"github.com/dompetku/dompetku/internal/store"
	"github.com/dompetku/dompetku/internal/summary"
)

// summaryFetchLimit is the page size used when a command wants the whole
// period on one page rather than a browsing-sized slice.
const summaryFetchLimit = 1000

func dashboardCmd() *cobra.Command {
	var (
		period   string
		walletID int64
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show totals, recent activity, and spending by category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}
			wallets, transactions := newStores(client)

			start, end, title, err := resolveRange(period, "", "", time.Now())
			if err != nil {
				return err
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				_, err := wallets.FetchAll(ctx)
				return err
			})
			g.Go(func() error {
				patch := store.FilterPatch{StartDate: &start, EndDate: &end}
				if walletID != 0 {
					patch.WalletID = &walletID
				}
				if err := transactions.SetFilters(ctx, patch); err != nil {
					return err
				}
				limit := summaryFetchLimit
				return transactions.SetPagination(ctx, store.PaginationPatch{Limit: &limit})
			})
			if err := g.Wait(); err != nil {
				return err
			}

			page := transactions.Transactions()
			totals := summary.Compute(page)

			fmt.Println(cli.FormatTitle(fmt.Sprintf("%s Dashboard - %s", cli.ChartIcon, title)))
			fmt.Println()
			fmt.Printf("  Total Balance: %s\n", cli.BoldStyle.Render(cli.Currency(wallets.TotalBalance())))
			fmt.Printf("  Income:        %s\n", cli.SuccessStyle.Render(cli.Currency(totals.Income)))
			fmt.Printf("  Expense:       %s\n", cli.ErrorStyle.Render(cli.Currency(totals.Expense)))
			net := cli.SuccessStyle
			if totals.Balance < 0 {
				net = cli.ErrorStyle
			}
			fmt.Printf("  Net Flow:      %s\n", net.Render(cli.Currency(totals.Balance)))

			printBreakdown(summary.ExpenseBreakdown(page))
			printRecent(page, wallets.Wallets())
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", string(query.PeriodThisMonth), "period (today, this-week, this-month, last-month, this-year, all-time)")
	cmd.Flags().Int64Var(&walletID, "wallet", 0, "only this wallet id")
	return cmd
}

func printBreakdown(breakdown []summary.CategoryAmount) {
	if len(breakdown) == 0 {
		return
	}

	fmt.Println()
	fmt.Println(cli.HeaderStyle.Render("Spending by category"))
	for _, entry := range breakdown {
		bar := strings.Repeat("█", int(entry.Percent/5))
		fmt.Printf("  %-20s %s %5.1f%%  %s\n",
			cli.Truncate(entry.Label, 20),
			cli.ErrorStyle.Render(fmt.Sprintf("%-20s", bar)),
			entry.Percent,
			cli.Currency(entry.Amount))
	}
}

func printRecent(transactions []model.Transaction, wallets []model.Wallet) {
	if len(transactions) == 0 {
		fmt.Println()
		fmt.Println(cli.SubtleStyle.Render("No transactions in this period."))
		return
	}

	recent := transactions
	if len(recent) > 5 {
		recent = recent[:5]
	}

	fmt.Println()
	fmt.Println(cli.HeaderStyle.Render("Recent transactions"))
	printTransactions(recent, wallets)
}
