package request

import "github.com/shopspring/decimal"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name            string          `json:"name" binding:"required,max=255"`
	Code            string          `json:"code" binding:"omitempty,max=100"`
	Category        string          `json:"category" binding:"omitempty,max=100"`
	Unit            string          `json:"unit" binding:"omitempty,max=20"`
	Price           decimal.Decimal `json:"price"`
	Stock           int             `json:"stock"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	TaxPercent      decimal.Decimal `json:"taxPercent"`
}

// UpdateProductRequest represents a product update request. Absent fields are left alone.
type UpdateProductRequest struct {
	Name            *string          `json:"name" binding:"omitempty,max=255"`
	Code            *string          `json:"code" binding:"omitempty,max=100"`
	Category        *string          `json:"category" binding:"omitempty,max=100"`
	Unit            *string          `json:"unit" binding:"omitempty,max=20"`
	Price           *decimal.Decimal `json:"price"`
	Stock           *int             `json:"stock"`
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
	TaxPercent      *decimal.Decimal `json:"taxPercent"`
}

// AdjustStockRequest adds delta units to a product's stock; negative removes
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	// LowStock keeps products at or below this stock level
	LowStock *int `form:"low_stock"`
	Page     int  `form:"page"`
	PerPage  int  `form:"per_page"`
}
