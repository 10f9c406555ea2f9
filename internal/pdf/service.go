package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/phenixmation/payables/internal/config"
	"github.com/phenixmation/payables/internal/domain/invoice"
	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/phenixmation/payables/internal/types"
)

// Generator defines the interface for PDF generation operations
type Generator interface {
	RenderInvoicePdf(ctx context.Context, inv *invoice.Invoice) ([]byte, error)
}

type Config struct {
	Currency string
}

type service struct {
	config Config
}

// NewGenerator creates a new PDF service
func NewGenerator(cfg *config.Configuration) Generator {
	return &service{
		config: Config{Currency: cfg.Invoice.Currency},
	}
}

// column widths of the line table, in mm
var lineColumns = []struct {
	title string
	width float64
	align string
}{
	{"Description", 80, "L"},
	{"Qté", 20, "R"},
	{"Prix unitaire", 30, "R"},
	{"TVA %", 20, "R"},
	{"Total", 30, "R"},
}

// RenderInvoicePdf lays out an A4 invoice: header, line table, totals and notes.
// The invoice is recalculated first so the document matches its lines.
func (s *service) RenderInvoicePdf(ctx context.Context, inv *invoice.Invoice) ([]byte, error) {
	inv = inv.Clone()
	inv.Recalculate()

	currency := inv.Currency
	if currency == "" {
		currency = s.config.Currency
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle(fmt.Sprintf("Facture %d", inv.Number), true)
	doc.AddPage()

	doc.SetFont("Arial", "B", 16)
	doc.Cell(0, 10, tr(fmt.Sprintf("Facture N° %d", inv.Number)))
	doc.Ln(12)

	doc.SetFont("Arial", "", 11)
	header := [][2]string{
		{"Date", types.FormatDate(inv.IssueDate)},
		{"Échéance", types.FormatDate(inv.DueDate)},
		{"Statut", inv.Status.String()},
		{"Mode de paiement", inv.PaymentMethod.String()},
		{"Devise", currency},
	}
	for _, h := range header {
		doc.CellFormat(45, 7, tr(h[0]+" :"), "", 0, "L", false, 0, "")
		doc.CellFormat(0, 7, tr(h[1]), "", 1, "L", false, 0, "")
	}
	doc.Ln(6)

	doc.SetFont("Arial", "B", 10)
	doc.SetFillColor(230, 230, 230)
	for _, col := range lineColumns {
		doc.CellFormat(col.width, 8, tr(col.title), "1", 0, col.align, true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Arial", "", 10)
	for _, item := range inv.LineItems {
		values := []string{
			item.Description,
			item.Quantity.String(),
			item.UnitPrice.StringFixed(2),
			item.TaxRatePercent.String(),
			item.LineTotal.StringFixed(2),
		}
		for i, col := range lineColumns {
			doc.CellFormat(col.width, 7, tr(values[i]), "1", 0, col.align, false, 0, "")
		}
		doc.Ln(-1)
	}
	doc.Ln(4)

	totals := [][2]string{
		{"Montant HT", inv.Subtotal.StringFixed(2)},
		{"Montant TVA", inv.TaxTotal.StringFixed(2)},
		{"Montant TTC", inv.GrandTotal.StringFixed(2)},
	}
	for i, t := range totals {
		if i == len(totals)-1 {
			doc.SetFont("Arial", "B", 11)
		}
		doc.CellFormat(150, 7, tr(t[0]), "", 0, "R", false, 0, "")
		doc.CellFormat(30, 7, tr(t[1]+" "+currency), "", 1, "R", false, 0, "")
	}

	if inv.Notes != "" {
		doc.Ln(6)
		doc.SetFont("Arial", "I", 10)
		doc.MultiCell(0, 6, tr("Notes : "+inv.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to render invoice pdf").
			Mark(ierr.ErrSystem)
	}
	return buf.Bytes(), nil
}
