package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"storeName"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	GSTIN     string `json:"gstin,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name            string          `json:"name"`
	Unit            string          `json:"unit,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	TaxPercent      decimal.Decimal `json:"taxPercent"`
	Total           decimal.Decimal `json:"total"`
}

// Receipt is a printable view of a sale, composed at print time and never stored.
type Receipt struct {
	Header        ReceiptHeader   `json:"header"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Date          string          `json:"date"`
	BillDate      string          `json:"billDate,omitempty"`
	DueDate       string          `json:"dueDate,omitempty"`
	Cashier       string          `json:"cashier,omitempty"`
	Customer      string          `json:"customer"`
	CustomerCode  int             `json:"customerCode,omitempty"`
	PaymentMode   string          `json:"paymentMode"`
	Items         []ReceiptItem   `json:"items"`
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
	SubTotal      decimal.Decimal `json:"subTotal"`
	Discount      decimal.Decimal `json:"discount"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	Total         decimal.Decimal `json:"total"`
	RoundedTotal  decimal.Decimal `json:"roundedTotal"`
	Received      decimal.Decimal `json:"received"`
	Balance       decimal.Decimal `json:"balance"`
}
