package invoice

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/example/birchwood/internal/apperr"
	"github.com/example/birchwood/internal/models"
	"github.com/example/birchwood/internal/money"
)

// Layout constants, in millimetres on an A4 portrait page.
const (
	pageMarginLeft  = 15.0
	pageMarginTop   = 15.0
	pageMarginRight = 15.0

	tableRowHeight  = 8.0
	colWidthName    = 80.0
	colWidthQty     = 20.0
	colWidthUnit    = 40.0
	colWidthTotal   = 40.0
	totalsLabelW    = 140.0
	totalsValueW    = 40.0
	maxItemNameLen  = 42
	companyName     = "Birchwood Furniture Ltd"
	companyAddress  = "Unit 4, Tanners Yard, Hebden Bridge, HX7 8AD"
	companyFootnote = "Registered in England & Wales. VAT No. GB 384 2917 06."
)

// RenderPDF lays the invoice out as a fixed-format A4 PDF and returns the
// document bytes. Pure layout: every line item appears exactly once, in
// order, amounts are formatted with two decimals, and the totals block
// repeats the builder's figures unchanged.
func RenderPDF(inv *models.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMarginLeft, pageMarginTop, pageMarginRight)
	pdf.AddPage()

	// Header block.
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(120, 10, companyName)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(120, 5, companyAddress)
	pdf.CellFormat(0, 5, inv.Number, "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Status: %s", inv.Status), "", 1, "R", false, 0, "")
	pdf.Ln(8)

	// Customer block.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "Billed to", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, inv.CustomerName, "", 1, "L", false, 0, "")
	if inv.AddressLine != "" {
		pdf.CellFormat(0, 5, inv.AddressLine, "", 1, "L", false, 0, "")
	}
	if inv.City != "" || inv.Postcode != "" {
		pdf.CellFormat(0, 5, trimJoin(inv.City, inv.Postcode), "", 1, "L", false, 0, "")
	}
	if inv.CustomerEmail != "" {
		pdf.CellFormat(0, 5, inv.CustomerEmail, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Item table header.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 231, 222)
	pdf.CellFormat(colWidthName, tableRowHeight, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colWidthQty, tableRowHeight, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colWidthUnit, tableRowHeight, "Unit price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colWidthTotal, tableRowHeight, "Total", "1", 1, "R", true, 0, "")

	// Item rows with alternating shading.
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetFillColor(248, 246, 242)
	for i, item := range inv.Items {
		shaded := i%2 == 1
		pdf.CellFormat(colWidthName, tableRowHeight, truncateName(item.ProductName), "1", 0, "L", shaded, 0, "")
		pdf.CellFormat(colWidthQty, tableRowHeight, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", shaded, 0, "")
		pdf.CellFormat(colWidthUnit, tableRowHeight, money.Format(item.UnitPrice), "1", 0, "R", shaded, 0, "")
		pdf.CellFormat(colWidthTotal, tableRowHeight, money.Format(item.LineTotal), "1", 1, "R", shaded, 0, "")
	}
	pdf.Ln(4)

	// Totals block.
	totalsRow(pdf, "Subtotal", inv.Subtotal, false)
	totalsRow(pdf, fmt.Sprintf("VAT (%d%%)", VATPercent), inv.Tax, false)
	totalsRow(pdf, "Shipping", inv.Shipping, false)
	totalsRow(pdf, fmt.Sprintf("Total (%s)", inv.Currency), inv.Total, true)
	pdf.Ln(6)

	// Payment footnote.
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Payment method: %s", inv.PaymentMethod), "", 1, "L", false, 0, "")

	// Page footer.
	pdf.SetY(-25)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, companyFootnote, "T", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperr.NewStorage("render", err)
	}
	return buf.Bytes(), nil
}

func totalsRow(pdf *gofpdf.Fpdf, label string, amount int64, emphasize bool) {
	if emphasize {
		pdf.SetFont("Helvetica", "B", 11)
	} else {
		pdf.SetFont("Helvetica", "", 10)
	}
	pdf.CellFormat(totalsLabelW, 7, label, "", 0, "R", false, 0, "")
	pdf.CellFormat(totalsValueW, 7, money.Format(amount), "", 1, "R", false, 0, "")
}

func truncateName(name string) string {
	// Truncate on runes so a multi-byte character is never split.
	runes := []rune(name)
	if len(runes) <= maxItemNameLen {
		return name
	}
	return string(runes[:maxItemNameLen-3]) + "..."
}

func trimJoin(city, postcode string) string {
	switch {
	case city == "":
		return postcode
	case postcode == "":
		return city
	default:
		return city + ", " + postcode
	}
}
