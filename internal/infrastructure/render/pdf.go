// Package render produces downloadable invoice documents.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/swiftex/tracking-service/internal/core/domain"
)

const (
	contentTypePDF = "application/pdf"
	dateLayout     = "January 2, 2006"

	lineHeight = 7.0
	colQty     = 20.0
	colPrice   = 35.0
	colAmount  = 35.0
)

// PDFRenderer lays invoices out on A4 pages using the core PDF fonts.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) ContentType() string {
	return contentTypePDF
}

func (r *PDFRenderer) RenderInvoice(ctx context.Context, inv domain.Invoice) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(inv.Number, true)
	pdf.SetAuthor(inv.Company.Name, true)
	pdf.SetCreationDate(inv.IssueDate)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("%s  |  Page %d of {nb}", inv.Number, pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	width := pageW - left - right
	colDesc := width - colQty - colPrice - colAmount

	// Header: issuer on the left, document title on the right.
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(width/2, 10, tr(inv.Company.Name), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(40, 70, 140)
	pdf.CellFormat(width/2, 10, "INVOICE", "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 9)
	writeContactLines(pdf, tr, inv.Company, width/2)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	meta := [][2]string{
		{"Invoice #", inv.Number},
		{"Issue date", inv.IssueDate.Format(dateLayout)},
	}
	if inv.DueDate != nil {
		meta = append(meta, [2]string{"Due date", inv.DueDate.Format(dateLayout)})
	}
	for _, m := range meta {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(30, 6, m[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr(m[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Bill to", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if inv.Client.Name != "" {
		pdf.CellFormat(0, 6, tr(inv.Client.Name), "", 1, "L", false, 0, "")
	}
	writeContactLines(pdf, tr, inv.Client, width)
	pdf.Ln(6)

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 236, 248)
		pdf.CellFormat(colDesc, lineHeight+1, "Description", "B", 0, "L", true, 0, "")
		pdf.CellFormat(colQty, lineHeight+1, "Qty", "B", 0, "R", true, 0, "")
		pdf.CellFormat(colPrice, lineHeight+1, "Unit price", "B", 0, "R", true, 0, "")
		pdf.CellFormat(colAmount, lineHeight+1, "Amount", "B", 1, "R", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}
	header()

	_, pageH := pdf.GetPageSize()
	for _, li := range inv.Items {
		if pdf.GetY()+lineHeight > pageH-25 {
			pdf.AddPage()
			header()
		}
		desc := li.Description
		if desc == "" {
			desc = "-"
		}
		pdf.CellFormat(colDesc, lineHeight, truncate(pdf, tr(desc), colDesc-2), "", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, lineHeight, formatQuantity(li.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(colPrice, lineHeight, tr(amount(inv.Currency, li.UnitPrice)), "", 0, "R", false, 0, "")
		pdf.CellFormat(colAmount, lineHeight, tr(amount(inv.Currency, li.Amount())), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(colDesc+colQty, lineHeight+1, "", "T", 0, "L", false, 0, "")
	pdf.CellFormat(colPrice, lineHeight+1, "Subtotal", "T", 0, "R", false, 0, "")
	pdf.CellFormat(colAmount, lineHeight+1, tr(amount(inv.Currency, inv.Subtotal())), "T", 1, "R", false, 0, "")

	if inv.Notes != "" {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, tr(inv.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeContactLines(pdf *fpdf.Fpdf, tr func(string) string, c domain.Contact, w float64) {
	for _, line := range []string{c.Address, c.Email, c.Phone} {
		if line == "" {
			continue
		}
		pdf.MultiCell(w, 5, tr(line), "", "L", false)
	}
}

// amount formats with the currency symbol when the core fonts can draw it,
// otherwise with the ISO code.
func amount(code string, v float64) string {
	sym := domain.CurrencySymbol(code)
	for _, r := range sym {
		if r > 0xFF && r != '€' {
			return fmt.Sprintf("%s %.2f", code, v)
		}
	}
	return domain.FormatAmount(code, v)
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// truncate shortens already-encoded s to fit width w.
func truncate(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}
