package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase records stock received from a supplier
type Purchase struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	Date              time.Time       `gorm:"not null;index" json:"date"`
	SupplierInvoiceNo string          `gorm:"size:100" json:"supplierInvoiceNo,omitempty"`
	SupplierID        uint            `gorm:"not null;index" json:"supplierId"`
	SupplierName      string          `gorm:"size:255;not null" json:"supplierName"`
	Items             []PurchaseItem  `gorm:"foreignKey:PurchaseID" json:"items"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"totalAmount"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// TableName returns the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseItem is one product line of a purchase
type PurchaseItem struct {
	ID          uint            `gorm:"primaryKey" json:"-"`
	PurchaseID  uint            `gorm:"not null;index" json:"-"`
	ProductID   uint            `gorm:"not null;index" json:"productId"`
	ProductName string          `gorm:"size:255" json:"productName"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"costPrice"`
	Total       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total"`
}

// TableName returns the table name for the PurchaseItem model
func (PurchaseItem) TableName() string {
	return "purchase_items"
}
