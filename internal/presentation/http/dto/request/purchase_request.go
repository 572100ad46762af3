package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest is one received product
type PurchaseItemRequest struct {
	ProductID uint            `json:"productId"`
	Quantity  int             `json:"quantity"`
	CostPrice decimal.Decimal `json:"costPrice"`
}

// RecordPurchaseRequest represents a supplier purchase
type RecordPurchaseRequest struct {
	SupplierID        uint                  `json:"supplierId"`
	SupplierInvoiceNo string                `json:"supplierInvoiceNo" binding:"omitempty,max=100"`
	Date              *time.Time            `json:"date"`
	Items             []PurchaseItemRequest `json:"items"`
}
