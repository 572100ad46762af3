package entity

import (
	"time"

	"github.com/sangkips/billmaster-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Sale is a committed invoice. Sales are append-only.
type Sale struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	InvoiceNumber  string           `gorm:"size:50;uniqueIndex;not null" json:"invoiceNumber"`
	Date           time.Time        `gorm:"not null;index" json:"date"`
	BillDate       string           `gorm:"size:10" json:"billDate"`
	DueDate        string           `gorm:"size:10" json:"dueDate"`
	CustomerRef    *uint            `gorm:"index" json:"customerId,omitempty"`
	Account        string           `gorm:"size:255;not null" json:"account"`
	CustomerCode   int              `json:"customerCode"`
	Cashier        string           `gorm:"size:255" json:"cashier"`
	Lines          []SaleLine       `gorm:"foreignKey:SaleID" json:"lines"`
	SubTotal       decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"subTotal"`
	Discount       decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"discount"`
	Tax            decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"tax"`
	CGST           decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"cgst"`
	SGST           decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"sgst"`
	NetAmount      decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"netAmount"`
	ReceivedAmount decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"receivedAmount"`
	Balance        decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"balance"`
	PaymentMode    enum.PaymentMode `gorm:"size:20;not null" json:"paymentMode"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleLine is a snapshot of one product as it was sold
type SaleLine struct {
	ID              uint            `gorm:"primaryKey" json:"-"`
	SaleID          uint            `gorm:"not null;index" json:"-"`
	ProductID       uint            `gorm:"not null;index" json:"productId"`
	Code            string          `gorm:"size:100" json:"code"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	Unit            string          `gorm:"size:50" json:"unit"`
	Quantity        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unitPrice"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(7,4);not null" json:"discountPercent"`
	TaxPercent      decimal.Decimal `gorm:"type:decimal(7,4);not null" json:"taxPercent"`
	LineValue       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"lineValue"`
}

// TableName returns the table name for the SaleLine model
func (SaleLine) TableName() string {
	return "sale_lines"
}
