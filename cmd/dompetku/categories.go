package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dompetku/dompetku/internal/category"
	"github.com/dompetku/dompetku/internal/cli"
	"github.com/dompetku/dompetku/internal/model"
)

func categoriesCmd() *cobra.Command {
	var txType string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the category keys accepted by 'tx add'",
		RunE: func(_ *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			if txType == "" || txType == string(model.TypeExpense) {
				printCategorySection(w, "Expense", category.Expense)
			}
			if txType == "" || txType == string(model.TypeIncome) {
				printCategorySection(w, "Income", category.Income)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&txType, "type", "", "only this type (income, expense)")
	return cmd
}

func printCategorySection(w *tabwriter.Writer, title string, entries []category.Entry) {
	fmt.Fprintf(w, "%s\n", cli.HeaderStyle.Render(title))
	for _, entry := range entries {
		fmt.Fprintf(w, "  %s\t%s\t%d\n", entry.Key, entry.Label, entry.ID)
	}
	fmt.Fprintln(w)
}
