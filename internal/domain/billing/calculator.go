// Package billing holds the pure arithmetic of the cashier screen: per-line
// values, invoice totals and invoice numbering. Nothing here touches a store.
package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Line is one cart row as the calculator sees it.
// A zero ProductID marks an empty placeholder row.
type Line struct {
	ProductID       uint            `json:"productId"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	TaxPercent      decimal.Decimal `json:"taxPercent"`
}

// IsEmpty reports whether the row has no product selected.
func (l Line) IsEmpty() bool {
	return l.ProductID == 0
}

// Subtotal is quantity * unit price, before discount and tax.
func (l Line) Subtotal() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Discount is the discount amount taken off the subtotal.
func (l Line) Discount() decimal.Decimal {
	return percentOf(l.Subtotal(), l.DiscountPercent)
}

// Tax is the tax charged on the discounted subtotal.
func (l Line) Tax() decimal.Decimal {
	return percentOf(l.Subtotal().Sub(l.Discount()), l.TaxPercent)
}

// Value is the payable value of the line.
func (l Line) Value() decimal.Decimal {
	return LineValue(l.Quantity, l.UnitPrice, l.DiscountPercent, l.TaxPercent)
}

// LineValue computes
//
//	subtotal  = quantity * unitPrice
//	afterDisc = subtotal - subtotal * discountPercent / 100
//	value     = afterDisc + afterDisc * taxPercent / 100
//
// Percentages outside [0,100] are not rejected.
func LineValue(quantity, unitPrice, discountPercent, taxPercent decimal.Decimal) decimal.Decimal {
	subtotal := quantity.Mul(unitPrice)
	afterDisc := subtotal.Sub(percentOf(subtotal, discountPercent))
	return afterDisc.Add(percentOf(afterDisc, taxPercent))
}

// percentOf returns amount * pct / 100. The division is a decimal shift, so it is exact.
func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Shift(-2)
}

// ParseAmount parses a numeric field typed by the operator.
// Blank or non-numeric input yields zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseLine builds a Line from raw form fields, treating unparsable values as zero.
func ParseLine(productID uint, quantity, unitPrice, discountPercent, taxPercent string) Line {
	return Line{
		ProductID:       productID,
		Quantity:        ParseAmount(quantity),
		UnitPrice:       ParseAmount(unitPrice),
		DiscountPercent: ParseAmount(discountPercent),
		TaxPercent:      ParseAmount(taxPercent),
	}
}
