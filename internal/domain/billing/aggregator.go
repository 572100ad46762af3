package billing

import "github.com/shopspring/decimal"

var half = decimal.New(5, -1)

// Totals are the invoice-level figures shown under the cart.
type Totals struct {
	TotalItems     int             `json:"totalItems"`
	TotalQuantity  decimal.Decimal `json:"totalQuantity"`
	SubTotal       decimal.Decimal `json:"subTotal"`
	TotalDiscount  decimal.Decimal `json:"totalDiscount"`
	PackageValue   decimal.Decimal `json:"packageValue"`
	TotalTax       decimal.Decimal `json:"totalTax"`
	CGST           decimal.Decimal `json:"cgst"`
	SGST           decimal.Decimal `json:"sgst"`
	NetAmount      decimal.Decimal `json:"netAmount"`
	ReceivedAmount decimal.Decimal `json:"receivedAmount"`
	Balance        decimal.Decimal `json:"balance"`
	RoundedTotal   decimal.Decimal `json:"roundedTotal"`
}

// Aggregate reduces the non-empty lines into invoice totals.
//
// A nil received amount follows the net amount, which is what the cashier
// screen shows until the operator types an amount of their own.
func Aggregate(lines []Line, received *decimal.Decimal) Totals {
	t := Totals{
		TotalQuantity: decimal.Zero,
		SubTotal:      decimal.Zero,
		TotalDiscount: decimal.Zero,
		TotalTax:      decimal.Zero,
	}

	for _, l := range lines {
		if l.IsEmpty() {
			continue
		}
		t.TotalItems++
		t.TotalQuantity = t.TotalQuantity.Add(l.Quantity)
		t.SubTotal = t.SubTotal.Add(l.Subtotal())
		t.TotalDiscount = t.TotalDiscount.Add(l.Discount())
		t.TotalTax = t.TotalTax.Add(l.Tax())
	}

	t.PackageValue = t.SubTotal.Sub(t.TotalDiscount)
	t.NetAmount = t.PackageValue.Add(t.TotalTax)
	t.CGST = t.TotalTax.Mul(half)
	t.SGST = t.TotalTax.Sub(t.CGST)
	t.RoundedTotal = t.NetAmount.Round(0)

	t.ReceivedAmount = t.NetAmount
	if received != nil {
		t.ReceivedAmount = *received
	}
	t.Balance = t.NetAmount.Sub(t.ReceivedAmount)

	return t
}
