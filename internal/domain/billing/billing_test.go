package billing

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

func TestLineValue(t *testing.T) {
	tests := []struct {
		name                 string
		qty, price, disc, tx string
		want                 string
	}{
		{"discount and tax", "2", "100", "10", "5", "189"},
		{"plain", "3", "45", "0", "0", "135"},
		{"zero quantity", "0", "250", "10", "18", "0"},
		{"tax only", "1", "56", "0", "18", "66.08"},
		{"fractional quantity", "1.5", "140", "0", "0", "210"},
		{"negative discount increases value", "1", "100", "-10", "0", "110"},
		{"discount above hundred", "1", "100", "150", "0", "-50"},
		{"hundred percent discount", "4", "25", "100", "12", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineValue(d(tt.qty), d(tt.price), d(tt.disc), d(tt.tx))
			assertDecimal(t, tt.want, got)
		})
	}
}

func TestParseAmount(t *testing.T) {
	assertDecimal(t, "0", ParseAmount(""))
	assertDecimal(t, "0", ParseAmount("   "))
	assertDecimal(t, "0", ParseAmount("abc"))
	assertDecimal(t, "0", ParseAmount("1,5"))
	assertDecimal(t, "12.5", ParseAmount(" 12.5 "))
	assertDecimal(t, "-3", ParseAmount("-3"))
}

func TestParseLine_TreatsGarbageAsZero(t *testing.T) {
	l := ParseLine(7, "2", "x", "", "5")
	assert.Equal(t, uint(7), l.ProductID)
	assertDecimal(t, "0", l.UnitPrice)
	assertDecimal(t, "0", l.DiscountPercent)
	assertDecimal(t, "0", l.Value())
}

func TestAggregate_SingleLine(t *testing.T) {
	lines := []Line{{ProductID: 1, Quantity: d("2"), UnitPrice: d("100"), DiscountPercent: d("10"), TaxPercent: d("5")}}

	tot := Aggregate(lines, nil)

	assert.Equal(t, 1, tot.TotalItems)
	assertDecimal(t, "200", tot.SubTotal)
	assertDecimal(t, "20", tot.TotalDiscount)
	assertDecimal(t, "180", tot.PackageValue)
	assertDecimal(t, "9", tot.TotalTax)
	assertDecimal(t, "4.5", tot.CGST)
	assertDecimal(t, "4.5", tot.SGST)
	assertDecimal(t, "189", tot.NetAmount)
	assertDecimal(t, "189", tot.ReceivedAmount)
	assertDecimal(t, "0", tot.Balance)
}

func TestAggregate_SkipsPlaceholderRows(t *testing.T) {
	lines := []Line{
		{ProductID: 0, Quantity: d("5"), UnitPrice: d("100")},
		{ProductID: 3, Quantity: d("1"), UnitPrice: d("50")},
		{},
	}

	tot := Aggregate(lines, nil)

	assert.Equal(t, 1, tot.TotalItems)
	assertDecimal(t, "1", tot.TotalQuantity)
	assertDecimal(t, "50", tot.NetAmount)
}

func TestAggregate_ReceivedOverride(t *testing.T) {
	lines := []Line{{ProductID: 1, Quantity: d("1"), UnitPrice: d("99.60")}}
	received := d("100")

	tot := Aggregate(lines, &received)

	assertDecimal(t, "100", tot.ReceivedAmount)
	assertDecimal(t, "-0.4", tot.Balance)
	assertDecimal(t, "100", tot.RoundedTotal)
}

func TestAggregate_EmptyCart(t *testing.T) {
	tot := Aggregate(nil, nil)

	assert.Equal(t, 0, tot.TotalItems)
	assert.True(t, tot.NetAmount.IsZero())
	assert.True(t, tot.Balance.IsZero())
}

func randomLine(r *rand.Rand) Line {
	return Line{
		ProductID:       uint(r.Intn(3)),
		Quantity:        decimal.New(int64(r.Intn(2000)), -2),
		UnitPrice:       decimal.New(int64(r.Intn(1000000)), -2),
		DiscountPercent: decimal.New(int64(r.Intn(30000)-10000), -2),
		TaxPercent:      decimal.New(int64(r.Intn(40000)-10000), -2),
	}
}

func TestAggregate_NetAmountEqualsSumOfLineValues(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		lines := make([]Line, r.Intn(12))
		for j := range lines {
			lines[j] = randomLine(r)
		}

		sum := decimal.Zero
		for _, l := range lines {
			if !l.IsEmpty() {
				sum = sum.Add(l.Value())
			}
		}

		tot := Aggregate(lines, nil)
		require.Truef(t, sum.Equal(tot.NetAmount), "iteration %d: sum %s != net %s", i, sum, tot.NetAmount)
		require.Truef(t, tot.CGST.Add(tot.SGST).Equal(tot.TotalTax), "iteration %d: split mismatch", i)
	}
}

func TestAggregate_SplitHoldsForNegativeTax(t *testing.T) {
	lines := []Line{{ProductID: 1, Quantity: d("3"), UnitPrice: d("33.33"), TaxPercent: d("-7")}}

	tot := Aggregate(lines, nil)

	assert.True(t, tot.TotalTax.IsNegative())
	assert.True(t, tot.CGST.Add(tot.SGST).Equal(tot.TotalTax))
}

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-001", FormatInvoiceNumber(1))
	assert.Equal(t, "INV-042", FormatInvoiceNumber(42))
	assert.Equal(t, "INV-999", FormatInvoiceNumber(999))
	assert.Equal(t, "INV-1000", FormatInvoiceNumber(1000))
}
