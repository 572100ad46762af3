package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/sangkips/billmaster-api/internal/config"
	"github.com/sangkips/billmaster-api/internal/domain/entity"
	"github.com/sangkips/billmaster-api/internal/domain/repository"
	"github.com/sangkips/billmaster-api/pkg/apperror"
	"github.com/sangkips/billmaster-api/pkg/invoicepdf"
	"github.com/sangkips/billmaster-api/pkg/printer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReceiptService composes receipts from stored sales and prints or renders them.
type ReceiptService struct {
	saleRepo     repository.SaleRepository
	printer      printer.Printer
	store        config.StoreConfig
	printerType  string
	printerWidth int
	log          *zap.Logger
}

// NewReceiptService creates a new receipt service.
func NewReceiptService(
	saleRepo repository.SaleRepository,
	p printer.Printer,
	store config.StoreConfig,
	printerCfg config.PrinterConfig,
	log *zap.Logger,
) *ReceiptService {
	return &ReceiptService{
		saleRepo:     saleRepo,
		printer:      p,
		store:        store,
		printerType:  printerCfg.Type,
		printerWidth: printerCfg.Width,
		log:          log,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *ReceiptService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != printer.TypeNone && s.printerType != "",
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printerType,
	}
}

// BuildReceipt composes the receipt of a stored sale
func (s *ReceiptService) BuildReceipt(ctx context.Context, saleID uint) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return s.receiptFor(sale), nil
}

func (s *ReceiptService) receiptFor(sale *entity.Sale) *entity.Receipt {
	r := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: s.store.Name,
			Address:   s.store.Address,
			Phone:     s.store.Phone,
			GSTIN:     s.store.GSTIN,
		},
		InvoiceNumber: sale.InvoiceNumber,
		Date:          sale.Date.Format("2006-01-02 15:04"),
		BillDate:      sale.BillDate,
		DueDate:       sale.DueDate,
		Cashier:       sale.Cashier,
		Customer:      sale.Account,
		CustomerCode:  sale.CustomerCode,
		PaymentMode:   sale.PaymentMode.String(),
		Items:         make([]entity.ReceiptItem, 0, len(sale.Lines)),
		TotalQuantity: decimal.Zero,
		SubTotal:      sale.SubTotal,
		Discount:      sale.Discount,
		CGST:          sale.CGST,
		SGST:          sale.SGST,
		Total:         sale.NetAmount,
		RoundedTotal:  sale.NetAmount.Round(0),
		Received:      sale.ReceivedAmount,
		Balance:       sale.Balance,
	}
	for _, l := range sale.Lines {
		r.Items = append(r.Items, entity.ReceiptItem{
			Name:            l.Name,
			Unit:            l.Unit,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			DiscountPercent: l.DiscountPercent,
			TaxPercent:      l.TaxPercent,
			Total:           l.LineValue,
		})
		r.TotalQuantity = r.TotalQuantity.Add(l.Quantity)
	}
	return r
}

// PrintReceipt prints the receipt of a stored sale on the thermal printer.
// The receipt is returned even when printing fails.
func (s *ReceiptService) PrintReceipt(ctx context.Context, saleID uint) (*entity.Receipt, error) {
	receipt, err := s.BuildReceipt(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.printerWidth)); err != nil {
		s.log.Error("printer error", zap.String("invoice_number", receipt.InvoiceNumber), zap.Error(err))
		return receipt, apperror.NewAppError(http.StatusServiceUnavailable, "Printer unavailable")
	}
	return receipt, nil
}

// RenderInvoicePDF renders the A4 invoice of a stored sale
func (s *ReceiptService) RenderInvoicePDF(ctx context.Context, saleID uint) ([]byte, string, error) {
	receipt, err := s.BuildReceipt(ctx, saleID)
	if err != nil {
		return nil, "", err
	}

	inv := &invoicepdf.Invoice{
		StoreName:     receipt.Header.StoreName,
		StoreAddress:  receipt.Header.Address,
		StorePhone:    receipt.Header.Phone,
		StoreGSTIN:    receipt.Header.GSTIN,
		InvoiceNumber: receipt.InvoiceNumber,
		BillDate:      receipt.BillDate,
		DueDate:       receipt.DueDate,
		Customer:      receipt.Customer,
		CustomerCode:  receipt.CustomerCode,
		PaymentMode:   receipt.PaymentMode,
		Cashier:       receipt.Cashier,
		SubTotal:      receipt.SubTotal,
		Discount:      receipt.Discount,
		CGST:          receipt.CGST,
		SGST:          receipt.SGST,
		Total:         receipt.Total,
		RoundedTotal:  receipt.RoundedTotal,
		Received:      receipt.Received,
		Balance:       receipt.Balance,
	}
	for _, item := range receipt.Items {
		inv.Items = append(inv.Items, invoicepdf.Item{
			Name:            item.Name,
			Unit:            item.Unit,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			TaxPercent:      item.TaxPercent,
			Amount:          item.Total,
		})
	}

	var buf bytes.Buffer
	if err := invoicepdf.Render(&buf, inv); err != nil {
		s.log.Error("invoice render failed", zap.String("invoice_number", receipt.InvoiceNumber), zap.Error(err))
		return nil, "", apperror.NewPersistenceError(err)
	}
	return buf.Bytes(), receipt.InvoiceNumber + ".pdf", nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.GSTIN != "" {
		doc.TextF("GSTIN: %s", r.Header.GSTIN)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Invoice:", r.InvoiceNumber).
		KeyValue("Date:", r.Date)
	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	doc.KeyValue("Payment:", r.PaymentMode)

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity.String(), item.Name, item.Total.StringFixed(2))
		if !item.Quantity.Equal(decimal.NewFromInt(1)) {
			doc.TextF("  @ %s each", item.UnitPrice.StringFixed(2))
		}
	}

	doc.Separator('-')

	doc.KeyValue("Items / Qty:", fmt.Sprintf("%d / %s", len(r.Items), r.TotalQuantity))
	doc.KeyValue("Subtotal:", r.SubTotal.StringFixed(2))
	if r.Discount.IsPositive() {
		doc.KeyValue("Discount:", r.Discount.StringFixed(2))
	}
	if r.CGST.IsPositive() || r.SGST.IsPositive() {
		doc.KeyValue("CGST:", r.CGST.StringFixed(2)).
			KeyValue("SGST:", r.SGST.StringFixed(2))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", r.RoundedTotal.StringFixed(2)).
		SetBold(false)
	doc.KeyValue("Received:", r.Received.StringFixed(2))
	if !r.Balance.IsZero() {
		doc.KeyValue("Balance:", r.Balance.StringFixed(2))
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for your business!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
