package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/sangkips/billmaster-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type capturePrinter struct {
	data []byte
	err  error
}

func (p *capturePrinter) Print(_ context.Context, data []byte) error {
	p.data = append([]byte(nil), data...)
	return p.err
}

func (p *capturePrinter) IsConnected(context.Context) bool { return p.err == nil }

func TestReceiptService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	rice := f.product(t, "Basmati Rice", 100, 10, 10, 5)
	pen := f.product(t, "Pen", 10, 10, 0, 0)
	c := f.customer(t, "Asha Traders")

	sale, err := f.checkout().CommitSale(ctx, &CommitSaleInput{
		Lines:      []CartLineInput{line(rice.ID, "2"), line(pen.ID, "1")},
		CustomerID: c.ID,
		Cashier:    "Ravi",
	})
	require.NoError(t, err)

	p := &capturePrinter{}
	svc := NewReceiptService(f.sales, p,
		config.StoreConfig{Name: "BillMaster Store", GSTIN: "29ABCDE1234F1Z5"},
		config.PrinterConfig{Type: "network", Width: 32},
		zap.NewNop())

	receipt, err := svc.BuildReceipt(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "BillMaster Store", receipt.Header.StoreName)
	assert.Equal(t, "INV-001", receipt.InvoiceNumber)
	require.Len(t, receipt.Items, 2)
	assert.True(t, dec("3").Equal(receipt.TotalQuantity))
	assert.True(t, dec("199").Equal(receipt.Total))
	assert.True(t, dec("199").Equal(receipt.RoundedTotal))
	assert.True(t, receipt.CGST.Add(receipt.SGST).Equal(sale.Tax))

	_, err = svc.PrintReceipt(ctx, sale.ID)
	require.NoError(t, err)
	text := string(p.data)
	assert.Contains(t, text, "INV-001")
	assert.Contains(t, text, "2x Basmati Rice")
	assert.Contains(t, text, "GSTIN: 29ABCDE1234F1Z5")
	assert.Contains(t, text, "  @ 100.00 each")
	assert.False(t, strings.Contains(text, "@ 10.00 each"))

	status := svc.GetStatus(ctx)
	assert.True(t, status.Configured)
	assert.True(t, status.Connected)

	p.err = errors.New("paper out")
	got, err := svc.PrintReceipt(ctx, sale.ID)
	requireAppError(t, err, http.StatusServiceUnavailable, "Printer unavailable")
	require.NotNil(t, got)

	pdf, filename, err := svc.RenderInvoicePDF(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-001.pdf", filename)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	_, err = svc.BuildReceipt(ctx, 404)
	requireAppError(t, err, http.StatusNotFound, "Sale not found")
}
