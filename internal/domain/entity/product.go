package entity

import (
	"math"
	"strings"
	"time"

	"github.com/sangkips/billmaster-api/pkg/apperror"
	"github.com/sangkips/billmaster-api/pkg/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaxStock is the largest stock level and the largest quantity a single move may carry
const MaxStock = math.MaxInt32

var hundred = decimal.NewFromInt(100)

// Product represents a sellable catalog item
type Product struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	Code            string          `gorm:"size:100;uniqueIndex;not null" json:"code"`
	Category        string          `gorm:"size:100" json:"category,omitempty"`
	Unit            string          `gorm:"size:50" json:"unit"`
	Price           decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"price"`
	Stock           int             `gorm:"not null;default:0" json:"stock"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0" json:"discountPercent"`
	TaxPercent      decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0" json:"taxPercent"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// BeforeCreate fills in a product code when none was given
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	p.EnsureCode()
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// EnsureCode assigns a generated PRD- code if the product has none
func (p *Product) EnsureCode() {
	if strings.TrimSpace(p.Code) == "" {
		p.Code = utils.GenerateProductCode()
	}
}

// Validate checks the catalog rules a product must satisfy before it is stored
func (p *Product) Validate() []apperror.FieldError {
	var errs []apperror.FieldError
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if p.Price.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "price", Message: "price must not be negative"})
	}
	if p.Stock < 0 {
		errs = append(errs, apperror.FieldError{Field: "stock", Message: "stock must not be negative"})
	} else if p.Stock > MaxStock {
		errs = append(errs, apperror.FieldError{Field: "stock", Message: "stock is above the supported limit"})
	}
	if !inPercentRange(p.DiscountPercent) {
		errs = append(errs, apperror.FieldError{Field: "discountPercent", Message: "discount must be between 0 and 100"})
	}
	if !inPercentRange(p.TaxPercent) {
		errs = append(errs, apperror.FieldError{Field: "taxPercent", Message: "tax must be between 0 and 100"})
	}
	return errs
}

func inPercentRange(v decimal.Decimal) bool {
	return !v.IsNegative() && v.LessThanOrEqual(hundred)
}
