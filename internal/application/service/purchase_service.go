package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/billmaster-api/internal/domain/entity"
	"github.com/sangkips/billmaster-api/internal/domain/repository"
	"github.com/sangkips/billmaster-api/pkg/apperror"
	"github.com/sangkips/billmaster-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PurchaseService records stock received from suppliers
type PurchaseService struct {
	tx           repository.Transactor
	guard        *StockGuard
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	purchaseRepo repository.PurchaseRepository
	log          *zap.Logger
	now          func() time.Time
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	tx repository.Transactor,
	guard *StockGuard,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	purchaseRepo repository.PurchaseRepository,
	log *zap.Logger,
) *PurchaseService {
	return &PurchaseService{
		tx:           tx,
		guard:        guard,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		purchaseRepo: purchaseRepo,
		log:          log,
		now:          time.Now,
	}
}

// PurchaseItemInput represents one received product
type PurchaseItemInput struct {
	ProductID uint
	Quantity  int
	CostPrice decimal.Decimal
}

// RecordPurchaseInput represents the record purchase input
type RecordPurchaseInput struct {
	SupplierID        uint
	SupplierInvoiceNo string
	// Date defaults to now
	Date  *time.Time
	Items []PurchaseItemInput
}

// RecordPurchase stores the purchase and adds every item's quantity to stock as one unit
func (s *PurchaseService) RecordPurchase(ctx context.Context, input *RecordPurchaseInput) (*entity.Purchase, error) {
	var fieldErrs []apperror.FieldError
	if input.SupplierID == 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "supplierId", Message: "supplier is required"})
	}
	if len(input.Items) == 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "items", Message: "add at least one item"})
	}
	for i, item := range input.Items {
		if item.ProductID == 0 {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: itemField(i, "productId"), Message: "product is required"})
		}
		if item.Quantity <= 0 || item.Quantity > MaxCount {
			fieldErrs = append(fieldErrs, apperror.FieldError{
				Field:   itemField(i, "quantity"),
				Message: fmt.Sprintf("quantity must be between 1 and %d", MaxCount),
			})
		}
		if item.CostPrice.IsNegative() {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: itemField(i, "costPrice"), Message: "cost price must not be negative"})
		}
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	date := s.now()
	if input.Date != nil {
		date = *input.Date
	}

	purchase := &entity.Purchase{
		Date:              date,
		SupplierInvoiceNo: strings.TrimSpace(input.SupplierInvoiceNo),
		SupplierID:        supplier.ID,
		SupplierName:      supplier.Name,
		TotalAmount:       decimal.Zero,
	}

	err = s.guard.Do(func() error {
		return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			purchase.Items = purchase.Items[:0]
			purchase.TotalAmount = decimal.Zero
			for _, item := range input.Items {
				product, err := s.productRepo.ApplyStockDelta(ctx, item.ProductID, item.Quantity)
				if err != nil {
					if errors.Is(err, repository.ErrNotFound) {
						return apperror.NewUnprocessableError(MsgUnknownProduct, productField(item.ProductID))
					}
					if errors.Is(err, repository.ErrStockLimit) {
						return apperror.NewUnprocessableError("stock limit exceeded", apperror.FieldError{
							Field:   "productId",
							Message: fmt.Sprintf("stock of product %d cannot exceed %d", item.ProductID, MaxCount),
						})
					}
					return err
				}
				total := item.CostPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
				purchase.Items = append(purchase.Items, entity.PurchaseItem{
					ProductID:   product.ID,
					ProductName: product.Name,
					Quantity:    item.Quantity,
					CostPrice:   item.CostPrice,
					Total:       total,
				})
				purchase.TotalAmount = purchase.TotalAmount.Add(total)
			}
			return s.purchaseRepo.Create(ctx, purchase)
		})
	})
	if err != nil {
		if apperror.IsAppError(err) {
			return nil, err
		}
		s.log.Error("purchase failed", zap.Uint("supplier_id", supplier.ID), zap.Error(err))
		return nil, apperror.NewPersistenceError(err)
	}

	s.log.Info("purchase recorded",
		zap.Uint("purchase_id", purchase.ID),
		zap.Uint("supplier_id", supplier.ID),
		zap.Int("items", len(purchase.Items)),
		zap.String("total", purchase.TotalAmount.StringFixed(2)),
	)
	return purchase, nil
}

// GetPurchase retrieves a purchase by ID
func (s *PurchaseService) GetPurchase(ctx context.Context, id uint) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases lists purchases, newest first
func (s *PurchaseService) ListPurchases(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	purchases, total, err := s.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(purchases, pag), nil
}

func itemField(index int, name string) string {
	return fmt.Sprintf("items[%d].%s", index, name)
}
