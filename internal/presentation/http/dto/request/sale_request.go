package request

import "github.com/shopspring/decimal"

// CartLineRequest is one cart row. Price, discount and tax are optional
// overrides of the catalog values.
type CartLineRequest struct {
	ProductID       uint             `json:"productId"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitPrice       *decimal.Decimal `json:"unitPrice"`
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
	TaxPercent      *decimal.Decimal `json:"taxPercent"`
	Unit            string           `json:"unit"`
}

// QuoteRequest prices a cart without committing it
type QuoteRequest struct {
	Lines          []CartLineRequest `json:"lines"`
	ReceivedAmount *decimal.Decimal  `json:"receivedAmount"`
}

// CommitSaleRequest represents a sale commit request
type CommitSaleRequest struct {
	Lines          []CartLineRequest `json:"lines"`
	CustomerID     uint              `json:"customerId"`
	PaymentMode    string            `json:"paymentMode"`
	ReceivedAmount *decimal.Decimal  `json:"receivedAmount"`
	BillDate       string            `json:"billDate"`
	DueDate        string            `json:"dueDate"`
}

// SaleFilterRequest represents sales list parameters. Dates are YYYY-MM-DD.
type SaleFilterRequest struct {
	Search     string `form:"search"`
	CustomerID *uint  `form:"customerId"`
	From       string `form:"from"`
	To         string `form:"to"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
