package invoicepdf

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "Zero Rupees Only"},
		{"7", "Seven Rupees Only"},
		{"15", "Fifteen Rupees Only"},
		{"40", "Forty Rupees Only"},
		{"110", "One Hundred Ten Rupees Only"},
		{"1000", "One Thousand Rupees Only"},
		{"114.67", "One Hundred Fourteen Rupees and Sixty Seven Paise Only"},
		{"150250.75", "One Lakh Fifty Thousand Two Hundred Fifty Rupees and Seventy Five Paise Only"},
		{"99999", "Ninety Nine Thousand Nine Hundred Ninety Nine Rupees Only"},
		{"12500000", "One Crore Twenty Five Lakh Rupees Only"},
		{"0.5", "Zero Rupees and Fifty Paise Only"},
		{"-20", "Twenty Rupees Only"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, AmountInWords(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestRender(t *testing.T) {
	inv := &Invoice{
		StoreName:     "BillMaster Store",
		StoreGSTIN:    "29ABCDE1234F1Z5",
		InvoiceNumber: "INV-001",
		BillDate:      "2026-10-14",
		DueDate:       "2026-10-14",
		Customer:      "Walk-in",
		CustomerCode:  1,
		PaymentMode:   "Cash",
		Items: []Item{{
			Name:            "Toor Dal",
			Unit:            "kg",
			Quantity:        decimal.NewFromInt(2),
			UnitPrice:       decimal.NewFromInt(50),
			DiscountPercent: decimal.NewFromInt(10),
			TaxPercent:      decimal.NewFromInt(5),
			Amount:          decimal.RequireFromString("94.5"),
		}},
		Total:        decimal.RequireFromString("94.5"),
		RoundedTotal: decimal.NewFromInt(95),
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, inv))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
