// Package report renders a filtered transaction snapshot into a paginated
// PDF document: title block, period description, transaction table, and a
// financial summary box, with page numbering in the footer.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/dompetku/dompetku/internal/category"
	"github.com/dompetku/dompetku/internal/cli"
	"github.com/dompetku/dompetku/internal/model"
	"github.com/dompetku/dompetku/internal/summary"
)

// Params is the report's narrow input contract: a snapshot of filtered
// transactions plus the wallets needed to resolve names, the period being
// reported, and the page-scoped summary.
type Params struct {
	GeneratedAt  time.Time
	PeriodTitle  string
	Transactions []model.Transaction
	Wallets      []model.Wallet
	Summary      summary.Totals
	StartDate    model.Date
	EndDate      model.Date
	// OnRow, when set, is called after each table row is rendered.
	OnRow func(done, total int)
}

// Brand colors, matching the web client's palette.
var (
	primary   = rgb{79, 70, 229}   // indigo-600
	green     = rgb{16, 185, 129}  // green-600
	red       = rgb{239, 68, 68}   // red-600
	gray      = rgb{107, 114, 128} // gray-500
	rowFill   = rgb{243, 244, 246} // gray-100
	boxFill   = rgb{249, 250, 251} // gray-50
	boxBorder = rgb{229, 231, 235} // gray-200
)

type rgb struct{ r, g, b int }

var tableColumns = []struct {
	title string
	width float64
	align string
}{
	{"Date", 25, "L"},
	{"Category", 25, "L"},
	{"Description", 50, "L"},
	{"Wallet", 25, "L"},
	{"Amount", 30, "R"},
	{"Type", 25, "C"},
}

const (
	marginLeft = 14
	rowHeight  = 7
	pageBreakY = 265
)

// Write renders the report and writes the PDF bytes to w.
func Write(p Params, w io.Writer) error {
	doc, err := build(p)
	if err != nil {
		return err
	}
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// Save renders the report into the named file.
func Save(p Params, path string) error {
	doc, err := build(p)
	if err != nil {
		return err
	}
	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to save PDF: %w", err)
	}
	return nil
}

// FileName derives the download name from the report's date range,
// e.g. dompetku_transactions_01-01-2024_31-01-2024.pdf.
func FileName(start, end model.Date) string {
	if start.IsZero() && end.IsZero() {
		return "dompetku_transactions_all.pdf"
	}
	return fmt.Sprintf("dompetku_transactions_%s_%s.pdf", fileDate(start, "start"), fileDate(end, "now"))
}

func fileDate(d model.Date, fallback string) string {
	if d.IsZero() {
		return fallback
	}
	if !d.Time.IsZero() {
		return d.Time.Format("02-01-2006")
	}
	return d.Raw
}

func build(p Params) (*fpdf.Fpdf, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("dompetku - Transaction Report", false)
	doc.SetMargins(marginLeft, 20, marginLeft)
	doc.AliasNbPages("")
	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont("Helvetica", "", 8)
		setText(doc, gray)
		footer := fmt.Sprintf("Page %d of {nb} - dompetku %d", doc.PageNo(), p.GeneratedAt.Year())
		doc.CellFormat(0, 10, footer, "", 0, "C", false, 0, "")
	})
	doc.SetAutoPageBreak(false, 15)
	doc.AddPage()

	y := titleBlock(doc, p)
	y = table(doc, p, y)
	summaryBox(doc, p, y)

	if doc.Err() {
		return nil, fmt.Errorf("failed to render PDF: %w", doc.Error())
	}
	return doc, nil
}

func titleBlock(doc *fpdf.Fpdf, p Params) float64 {
	doc.SetFont("Helvetica", "B", 20)
	setText(doc, primary)
	doc.Text(marginLeft, 20, "dompetku")

	doc.SetFont("Helvetica", "", 16)
	setText(doc, rgb{0, 0, 0})
	doc.Text(marginLeft, 30, "Financial Transaction Report")

	doc.SetFont("Helvetica", "", 10)
	setText(doc, gray)
	doc.Text(marginLeft, 38, fmt.Sprintf("Period: %s", p.PeriodTitle))

	y := 44.0
	if !p.StartDate.IsZero() && !p.EndDate.IsZero() {
		doc.Text(marginLeft, y, fmt.Sprintf("%s - %s", displayDate(p.StartDate), displayDate(p.EndDate)))
		y += 6
	}
	doc.Text(marginLeft, y, fmt.Sprintf("Printed on: %s", p.GeneratedAt.Format("2 Jan 2006")))
	return y + 6
}

func table(doc *fpdf.Fpdf, p Params, y float64) float64 {
	doc.SetY(y)
	tableHeader(doc)

	walletNames := make(map[int64]string, len(p.Wallets))
	for _, w := range p.Wallets {
		walletNames[w.ID] = w.Name
	}

	doc.SetFont("Helvetica", "", 9)
	total := len(p.Transactions)
	for i, tx := range p.Transactions {
		if doc.GetY() > pageBreakY {
			doc.AddPage()
			doc.SetY(20)
			tableHeader(doc)
			doc.SetFont("Helvetica", "", 9)
		}

		fill := i%2 == 1
		doc.SetFillColor(rowFill.r, rowFill.g, rowFill.b)

		cells := rowCells(tx, walletNames)
		for c, col := range tableColumns {
			setText(doc, rowColor(c, tx.Type))
			doc.CellFormat(col.width, rowHeight, cells[c], "1", 0, col.align, fill, 0, "")
		}
		doc.Ln(rowHeight)

		if p.OnRow != nil {
			p.OnRow(i+1, total)
		}
	}
	return doc.GetY() + 15
}

func tableHeader(doc *fpdf.Fpdf) {
	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(primary.r, primary.g, primary.b)
	setText(doc, rgb{255, 255, 255})
	doc.SetX(marginLeft)
	for _, col := range tableColumns {
		doc.CellFormat(col.width, rowHeight, col.title, "1", 0, col.align, true, 0, "")
	}
	doc.Ln(rowHeight)
	doc.SetX(marginLeft)
}

func rowCells(tx model.Transaction, walletNames map[int64]string) [6]string {
	wallet := walletNames[tx.WalletID]
	if wallet == "" {
		wallet = "-"
	}
	label := "-"
	if tx.Category != "" {
		label = category.LabelFor(tx.Category)
	}
	desc := tx.Description
	if desc == "" {
		desc = "-"
	}
	typeLabel := "Expense"
	if tx.Type == model.TypeIncome {
		typeLabel = "Income"
	}
	return [6]string{
		tx.Date.Format("2 Jan 2006"),
		label,
		desc,
		wallet,
		cli.Currency(tx.Amount),
		typeLabel,
	}
}

// rowColor colors the type column by direction; everything else is black.
func rowColor(column int, typ model.TransactionType) rgb {
	if column != 5 {
		return rgb{0, 0, 0}
	}
	if typ == model.TypeIncome {
		return green
	}
	return red
}

func summaryBox(doc *fpdf.Fpdf, p Params, y float64) {
	if y > pageBreakY-45 {
		doc.AddPage()
		y = 20
	}

	doc.SetFillColor(boxFill.r, boxFill.g, boxFill.b)
	doc.SetDrawColor(boxBorder.r, boxBorder.g, boxBorder.b)
	doc.RoundedRect(marginLeft, y, 182, 40, 3, "1234", "FD")

	doc.SetFont("Helvetica", "B", 12)
	setText(doc, rgb{0, 0, 0})
	doc.Text(marginLeft+6, y+10, "Financial Summary")

	doc.SetFont("Helvetica", "", 10)
	setText(doc, green)
	doc.Text(marginLeft+6, y+20, "Total Income:")
	doc.Text(130, y+20, cli.Currency(p.Summary.Income))

	setText(doc, red)
	doc.Text(marginLeft+6, y+28, "Total Expense:")
	doc.Text(130, y+28, cli.Currency(p.Summary.Expense))

	doc.SetFont("Helvetica", "", 11)
	setText(doc, rgb{0, 0, 0})
	doc.Text(marginLeft+6, y+36, "Net Flow:")
	if p.Summary.Balance >= 0 {
		setText(doc, green)
	} else {
		setText(doc, red)
	}
	doc.Text(130, y+36, cli.Currency(p.Summary.Balance))
}

func displayDate(d model.Date) string {
	if !d.Time.IsZero() {
		return d.Time.Format("2 Jan 2006")
	}
	return d.Raw
}

func setText(doc *fpdf.Fpdf, c rgb) {
	doc.SetTextColor(c.r, c.g, c.b)
}
