// Package invoicepdf renders A4 tax invoices.
package invoicepdf

import (
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Invoice is everything printed on one invoice
type Invoice struct {
	StoreName     string
	StoreAddress  string
	StorePhone    string
	StoreGSTIN    string
	InvoiceNumber string
	BillDate      string
	DueDate       string
	Customer      string
	CustomerCode  int
	PaymentMode   string
	Cashier       string
	Items         []Item
	SubTotal      decimal.Decimal
	Discount      decimal.Decimal
	CGST          decimal.Decimal
	SGST          decimal.Decimal
	Total         decimal.Decimal
	RoundedTotal  decimal.Decimal
	Received      decimal.Decimal
	Balance       decimal.Decimal
}

// Item is one invoice row
type Item struct {
	Name            string
	Unit            string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxPercent      decimal.Decimal
	Amount          decimal.Decimal
}

var columns = []struct {
	title string
	width float64
	align string
}{
	{"#", 10, "C"},
	{"Item", 62, "L"},
	{"Qty", 18, "R"},
	{"Rate", 26, "R"},
	{"Disc %", 18, "R"},
	{"Tax %", 18, "R"},
	{"Amount", 28, "R"},
}

// Render writes inv as a PDF to w
func Render(w io.Writer, inv *Invoice) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+inv.InvoiceNumber, false)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	// Core fonts are cp1252; this maps characters such as the en dash
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 8, tr(inv.StoreName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, line := range []string{inv.StoreAddress, inv.StorePhone, gstinLine(inv.StoreGSTIN)} {
		if line != "" {
			pdf.CellFormat(0, 5, tr(line), "", 1, "C", false, 0, "")
		}
	}
	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 7, "TAX INVOICE", "TB", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	half := 90.0
	pdf.CellFormat(half, 6, tr("Bill To: "+inv.Customer), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Invoice No: "+inv.InvoiceNumber, "", 1, "R", false, 0, "")
	code := ""
	if inv.CustomerCode > 0 {
		code = "Customer ID: " + strconv.Itoa(inv.CustomerCode)
	}
	pdf.CellFormat(half, 6, code, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Bill Date: "+inv.BillDate, "", 1, "R", false, 0, "")
	pdf.CellFormat(half, 6, "Payment: "+inv.PaymentMode, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Due Date: "+inv.DueDate, "", 1, "R", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range columns {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for i, item := range inv.Items {
		name := item.Name
		if item.Unit != "" {
			name += " (" + item.Unit + ")"
		}
		cells := []string{
			strconv.Itoa(i + 1),
			name,
			item.Quantity.String(),
			money(item.UnitPrice),
			item.DiscountPercent.String(),
			item.TaxPercent.String(),
			money(item.Amount),
		}
		for j, c := range columns {
			pdf.CellFormat(c.width, 7, tr(cells[j]), "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(3)

	labelWidth, valueWidth := 40.0, 30.0
	left := 180.0 - labelWidth - valueWidth
	total := func(label string, v decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.SetX(15 + left)
		pdf.CellFormat(labelWidth, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueWidth, 6, money(v), "", 1, "R", false, 0, "")
	}
	total("Sub Total", inv.SubTotal, false)
	total("Discount", inv.Discount, false)
	total("CGST", inv.CGST, false)
	total("SGST", inv.SGST, false)
	total("Total", inv.Total, true)
	total("Rounded Total", inv.RoundedTotal, false)
	total("Received", inv.Received, false)
	total("Balance", inv.Balance, false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "I", 10)
	pdf.MultiCell(0, 5, "Amount in words: "+AmountInWords(inv.Total), "", "L", false)
	if inv.Cashier != "" {
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(0, 5, tr("Billed by "+inv.Cashier), "", 1, "R", false, 0, "")
	}

	return pdf.Output(w)
}

func money(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func gstinLine(gstin string) string {
	if gstin == "" {
		return ""
	}
	return "GSTIN: " + gstin
}
