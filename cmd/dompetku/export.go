package main

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dompetku/dompetku/internal/cli"
	"github.com/dompetku/dompetku/internal/model"
	"github.com/dompetku/dompetku/internal/report"
	"github.com/dompetku/dompetku/internal/store"
	"github.com/dompetku/dompetku/internal/summary"
)

func exportCmd() *cobra.Command {
	var (
		period   string
		from     string
		to       string
		output   string
		walletID int64
		txType   string
		search   string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export filtered transactions as a PDF report",
		Long: `Export the transactions matching the given period and filters into a
paginated PDF report with a financial summary.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}
			wallets, transactions := newStores(client)

			start, end, title, err := resolveRange(period, from, to, time.Now())
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
				if txType != "" {
					t := model.TransactionType(txType)
					patch.Type = &t
				}
				if search != "" {
					patch.SearchQuery = &search
				}
				if err := transactions.SetFilters(ctx, patch); err != nil {
					return err
				}
				return transactions.SetPagination(ctx, store.PaginationPatch{Limit: &limit})
			})
			if err := g.Wait(); err != nil {
				return err
			}

			page := transactions.Transactions()
			if len(page) == 0 {
				fmt.Println(cli.SubtleStyle.Render("Nothing to export: no transactions match."))
				return nil
			}

			if output == "" {
				output = report.FileName(start, end)
			}

			bar := progressbar.NewOptions(len(page),
				progressbar.OptionSetDescription("Rendering report"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)

			params := report.Params{
				GeneratedAt:  time.Now(),
				PeriodTitle:  title,
				Transactions: page,
				Wallets:      wallets.Wallets(),
				Summary:      summary.Compute(page),
				StartDate:    start,
				EndDate:      end,
				OnRow: func(done, _ int) {
					_ = bar.Set(done)
				},
			}
			if err := report.Save(params, output); err != nil {
				return err
			}
			_ = bar.Finish()

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s Exported %d transactions to %s",
				cli.ReportIcon, len(page), output)))
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "named period (today, this-week, this-month, last-month, this-year, all-time)")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD, overrides --period)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD, overrides --period)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default derived from the date range)")
	cmd.Flags().Int64Var(&walletID, "wallet", 0, "only this wallet id")
	cmd.Flags().StringVar(&txType, "type", "", "only this type (income, expense)")
	cmd.Flags().StringVar(&search, "search", "", "free-text search")
	cmd.Flags().IntVar(&limit, "limit", summaryFetchLimit, "maximum transactions to export")
	return cmd
}
