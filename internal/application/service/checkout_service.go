package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sangkips/billmaster-api/internal/domain/billing"
	"github.com/sangkips/billmaster-api/internal/domain/entity"
	"github.com/sangkips/billmaster-api/internal/domain/enum"
	"github.com/sangkips/billmaster-api/internal/domain/repository"
	"github.com/sangkips/billmaster-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Validation messages returned by the checkout
const (
	MsgEmptyCart          = "empty cart"
	MsgMalformedQuantity  = "malformed quantity"
	MsgNoAccountSelected  = "no account selected"
	MsgUnknownAccount     = "unknown account"
	MsgInvalidPaymentMode = "invalid payment mode"
	MsgUnknownProduct     = "unknown product"
	MsgMalformedDate      = "malformed date"
)

// CheckoutService turns a cart into a committed sale
type CheckoutService struct {
	tx           repository.Transactor
	guard        *StockGuard
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	counterRepo  repository.InvoiceCounterRepository
	log          *zap.Logger
	now          func() time.Time
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	tx repository.Transactor,
	guard *StockGuard,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	counterRepo repository.InvoiceCounterRepository,
	log *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		tx:           tx,
		guard:        guard,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		counterRepo:  counterRepo,
		log:          log,
		now:          time.Now,
	}
}

// CartLineInput is one cart row. Nil price, discount or tax fall back to the
// product's current catalog values.
type CartLineInput struct {
	ProductID       uint
	Quantity        decimal.Decimal
	UnitPrice       *decimal.Decimal
	DiscountPercent *decimal.Decimal
	TaxPercent      *decimal.Decimal
	Unit            string
}

// CommitSaleInput represents the commit sale input
type CommitSaleInput struct {
	Lines          []CartLineInput
	CustomerID     uint
	PaymentMode    enum.PaymentMode
	ReceivedAmount *decimal.Decimal
	Cashier        string
	BillDate       string
	DueDate        string
}

// QuoteLine is a priced cart row
type QuoteLine struct {
	ProductID       uint            `json:"productId"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	TaxPercent      decimal.Decimal `json:"taxPercent"`
	LineValue       decimal.Decimal `json:"lineValue"`
}

// Quote is the live recompute of the cashier screen
type Quote struct {
	Lines  []QuoteLine    `json:"lines"`
	Totals billing.Totals `json:"totals"`
}

// Quote prices a cart without changing anything. Placeholder rows are skipped.
func (s *CheckoutService) Quote(ctx context.Context, lines []CartLineInput, received *decimal.Decimal) (*Quote, error) {
	var ids []uint
	for _, l := range lines {
		if l.ProductID != 0 {
			ids = append(ids, l.ProductID)
		}
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	catalog := indexProducts(products)

	quote := &Quote{Lines: []QuoteLine{}}
	var priced []billing.Line
	for _, l := range lines {
		if l.ProductID == 0 {
			continue
		}
		product, ok := catalog[l.ProductID]
		if !ok {
			return nil, apperror.NewUnprocessableError(MsgUnknownProduct, productField(l.ProductID))
		}
		line := priceLine(l, product)
		priced = append(priced, line)
		quote.Lines = append(quote.Lines, QuoteLine{
			ProductID:       product.ID,
			Name:            product.Name,
			Unit:            unitFor(l, product),
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
			TaxPercent:      line.TaxPercent,
			LineValue:       line.Value(),
		})
	}

	quote.Totals = billing.Aggregate(priced, received)
	return quote, nil
}

// NextInvoiceNumber previews the number the next commit would get
func (s *CheckoutService) NextInvoiceNumber(ctx context.Context) (string, error) {
	n, err := s.counterRepo.Peek(ctx, billing.InvoiceCounterName, billing.InvoiceCounterSeed)
	if err != nil {
		return "", apperror.NewPersistenceError(err)
	}
	return billing.FormatInvoiceNumber(n), nil
}

// CommitSale validates the cart, then decrements stock, allocates the invoice
// number and appends the sale as one unit. On any failure nothing is changed
// and no invoice number is consumed.
func (s *CheckoutService) CommitSale(ctx context.Context, input *CommitSaleInput) (*entity.Sale, error) {
	lines, err := cartLines(input.Lines)
	if err != nil {
		return nil, err
	}

	if input.CustomerID == 0 {
		return nil, apperror.NewUnprocessableError(MsgNoAccountSelected,
			apperror.FieldError{Field: "customerId", Message: "select a customer"})
	}

	mode := input.PaymentMode
	if mode == "" {
		mode = enum.PaymentModeCash
	}
	if !mode.IsValid() {
		return nil, apperror.NewUnprocessableError(MsgInvalidPaymentMode,
			apperror.FieldError{Field: "paymentMode", Message: "unsupported payment mode " + string(mode)})
	}

	now := s.now()
	billDate, dueDate, err := saleDates(now, input.BillDate, input.DueDate)
	if err != nil {
		return nil, err
	}

	var sale *entity.Sale
	err = s.guard.Do(func() error {
		return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			var txErr error
			sale, txErr = s.commit(ctx, lines, mode, input, now, billDate, dueDate)
			return txErr
		})
	})
	if err != nil {
		if !apperror.IsAppError(err) {
			s.log.Error("sale commit failed", zap.Uint("customer_id", input.CustomerID), zap.Error(err))
			return nil, apperror.NewPersistenceError(err)
		}
		return nil, err
	}

	s.log.Info("sale committed",
		zap.String("invoice_number", sale.InvoiceNumber),
		zap.String("net_amount", sale.NetAmount.StringFixed(2)),
		zap.Int("lines", len(sale.Lines)),
		zap.String("payment_mode", sale.PaymentMode.String()),
	)
	return sale, nil
}

func (s *CheckoutService) commit(
	ctx context.Context,
	lines []CartLineInput,
	mode enum.PaymentMode,
	input *CommitSaleInput,
	now time.Time,
	billDate, dueDate string,
) (*entity.Sale, error) {
	// Read inside the unit so a concurrent delete cannot slip past
	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewUnprocessableError(MsgUnknownAccount,
			apperror.FieldError{Field: "customerId", Message: "customer does not exist"})
	}

	requested := make(map[uint]int)
	var ids []uint
	for _, l := range lines {
		if _, seen := requested[l.ProductID]; !seen {
			ids = append(ids, l.ProductID)
		}
		requested[l.ProductID] += int(l.Quantity.IntPart())
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	catalog := indexProducts(products)

	var unknown []apperror.FieldError
	var shortfalls []apperror.StockShortfall
	for _, id := range ids {
		product, ok := catalog[id]
		if !ok {
			unknown = append(unknown, productField(id))
			continue
		}
		if product.Stock < requested[id] {
			shortfalls = append(shortfalls, apperror.StockShortfall{
				ProductID: id,
				Name:      product.Name,
				Requested: requested[id],
				Available: product.Stock,
			})
		}
	}
	if len(unknown) > 0 {
		return nil, apperror.NewUnprocessableError(MsgUnknownProduct, unknown...)
	}
	if len(shortfalls) > 0 {
		return nil, apperror.NewInsufficientStockError(shortfalls)
	}

	saleLines := make([]entity.SaleLine, 0, len(lines))
	priced := make([]billing.Line, 0, len(lines))
	for _, l := range lines {
		product := catalog[l.ProductID]
		line := priceLine(l, product)
		priced = append(priced, line)
		saleLines = append(saleLines, entity.SaleLine{
			ProductID:       product.ID,
			Code:            product.Code,
			Name:            product.Name,
			Unit:            unitFor(l, product),
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
			TaxPercent:      line.TaxPercent,
			LineValue:       line.Value(),
		})
	}
	totals := billing.Aggregate(priced, input.ReceivedAmount)

	for _, id := range ids {
		if _, err := s.productRepo.ApplyStockDelta(ctx, id, -requested[id]); err != nil {
			if errors.Is(err, repository.ErrInsufficientStock) {
				// Another writer outside this process got there first
				return nil, apperror.NewInsufficientStockError([]apperror.StockShortfall{{
					ProductID: id,
					Name:      catalog[id].Name,
					Requested: requested[id],
					Available: catalog[id].Stock,
				}})
			}
			return nil, err
		}
	}

	n, err := s.counterRepo.Next(ctx, billing.InvoiceCounterName, billing.InvoiceCounterSeed)
	if err != nil {
		return nil, err
	}

	customerRef := customer.ID
	sale := &entity.Sale{
		InvoiceNumber:  billing.FormatInvoiceNumber(n),
		Date:           now,
		BillDate:       billDate,
		DueDate:        dueDate,
		CustomerRef:    &customerRef,
		Account:        customer.Name,
		CustomerCode:   customer.CustomerCode,
		Cashier:        strings.TrimSpace(input.Cashier),
		Lines:          saleLines,
		SubTotal:       totals.SubTotal,
		Discount:       totals.TotalDiscount,
		Tax:            totals.TotalTax,
		CGST:           totals.CGST,
		SGST:           totals.SGST,
		NetAmount:      totals.NetAmount,
		ReceivedAmount: totals.ReceivedAmount,
		Balance:        totals.Balance,
		PaymentMode:    mode,
	}
	if err := s.saleRepo.Append(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// cartLines drops placeholder and zero-quantity rows and rejects quantities
// that cannot be taken out of an integral stock count.
func cartLines(in []CartLineInput) ([]CartLineInput, error) {
	var out []CartLineInput
	var bad []apperror.FieldError
	totals := make(map[uint]int)
	for i, l := range in {
		if l.ProductID == 0 || l.Quantity.IsZero() {
			continue
		}
		qty, ok := wholeCount(l.Quantity)
		if !ok {
			bad = append(bad, apperror.FieldError{
				Field:   lineField(i, "quantity"),
				Message: fmt.Sprintf("quantity must be a whole number from 1 to %d", MaxCount),
			})
			continue
		}
		if totals[l.ProductID] > MaxCount-qty {
			bad = append(bad, apperror.FieldError{
				Field:   lineField(i, "quantity"),
				Message: fmt.Sprintf("total quantity of product %d exceeds %d", l.ProductID, MaxCount),
			})
			continue
		}
		totals[l.ProductID] += qty
		out = append(out, l)
	}
	if len(bad) > 0 {
		return nil, apperror.NewUnprocessableError(MsgMalformedQuantity, bad...)
	}
	if len(out) == 0 {
		return nil, apperror.NewUnprocessableError(MsgEmptyCart)
	}
	return out, nil
}

// saleDates defaults the bill date to today and the due date to the bill date
func saleDates(now time.Time, billDate, dueDate string) (string, string, error) {
	billDate = strings.TrimSpace(billDate)
	dueDate = strings.TrimSpace(dueDate)
	if billDate == "" {
		billDate = now.Format(dateLayout)
	}
	if dueDate == "" {
		dueDate = billDate
	}

	var bad []apperror.FieldError
	if _, err := time.Parse(dateLayout, billDate); err != nil {
		bad = append(bad, apperror.FieldError{Field: "billDate", Message: "use YYYY-MM-DD"})
	}
	if _, err := time.Parse(dateLayout, dueDate); err != nil {
		bad = append(bad, apperror.FieldError{Field: "dueDate", Message: "use YYYY-MM-DD"})
	}
	if len(bad) > 0 {
		return "", "", apperror.NewUnprocessableError(MsgMalformedDate, bad...)
	}
	return billDate, dueDate, nil
}

func priceLine(l CartLineInput, product *entity.Product) billing.Line {
	line := billing.Line{
		ProductID:       product.ID,
		Quantity:        l.Quantity,
		UnitPrice:       product.Price,
		DiscountPercent: product.DiscountPercent,
		TaxPercent:      product.TaxPercent,
	}
	if l.UnitPrice != nil {
		line.UnitPrice = *l.UnitPrice
	}
	if l.DiscountPercent != nil {
		line.DiscountPercent = *l.DiscountPercent
	}
	if l.TaxPercent != nil {
		line.TaxPercent = *l.TaxPercent
	}
	return line
}

func unitFor(l CartLineInput, product *entity.Product) string {
	if u := strings.TrimSpace(l.Unit); u != "" {
		return u
	}
	return product.Unit
}

func indexProducts(products []entity.Product) map[uint]*entity.Product {
	m := make(map[uint]*entity.Product, len(products))
	for i := range products {
		m[products[i].ID] = &products[i]
	}
	return m
}
