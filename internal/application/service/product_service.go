package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sangkips/billmaster-api/internal/domain/entity"
	"github.com/sangkips/billmaster-api/internal/domain/repository"
	"github.com/sangkips/billmaster-api/pkg/apperror"
	"github.com/sangkips/billmaster-api/pkg/importer"
	"github.com/sangkips/billmaster-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductService handles catalog operations
type ProductService struct {
	tx          repository.Transactor
	guard       *StockGuard
	productRepo repository.ProductRepository
	log         *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	tx repository.Transactor,
	guard *StockGuard,
	productRepo repository.ProductRepository,
	log *zap.Logger,
) *ProductService {
	return &ProductService{
		tx:          tx,
		guard:       guard,
		productRepo: productRepo,
		log:         log,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name            string
	Code            string
	Category        string
	Unit            string
	Price           decimal.Decimal
	Stock           int
	DiscountPercent decimal.Decimal
	TaxPercent      decimal.Decimal
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		Name:            strings.TrimSpace(input.Name),
		Code:            strings.TrimSpace(input.Code),
		Category:        strings.TrimSpace(input.Category),
		Unit:            strings.TrimSpace(input.Unit),
		Price:           input.Price,
		Stock:           input.Stock,
		DiscountPercent: input.DiscountPercent,
		TaxPercent:      input.TaxPercent,
	}
	if errs := product.Validate(); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("Product code already exists")
		}
		return nil, apperror.NewPersistenceError(err)
	}

	s.log.Info("product created", zap.Uint("product_id", product.ID), zap.String("code", product.Code))
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input. Nil fields are left unchanged.
type UpdateProductInput struct {
	ID              uint
	Name            *string
	Code            *string
	Category        *string
	Unit            *string
	Price           *decimal.Decimal
	Stock           *int
	DiscountPercent *decimal.Decimal
	TaxPercent      *decimal.Decimal
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	var product *entity.Product
	err := s.guard.Do(func() error {
		var err error
		product, err = s.productRepo.GetByID(ctx, input.ID)
		if err != nil {
			return err
		}
		if product == nil {
			return apperror.NewNotFoundError("Product")
		}

		if input.Name != nil {
			product.Name = strings.TrimSpace(*input.Name)
		}
		if input.Code != nil {
			product.Code = strings.TrimSpace(*input.Code)
			product.EnsureCode()
		}
		if input.Category != nil {
			product.Category = strings.TrimSpace(*input.Category)
		}
		if input.Unit != nil {
			product.Unit = strings.TrimSpace(*input.Unit)
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
		}
		if input.DiscountPercent != nil {
			product.DiscountPercent = *input.DiscountPercent
		}
		if input.TaxPercent != nil {
			product.TaxPercent = *input.TaxPercent
		}
		if errs := product.Validate(); len(errs) > 0 {
			return apperror.NewValidationError(errs)
		}

		return s.productRepo.Update(ctx, product)
	})
	if err != nil {
		return nil, s.translate(err)
	}
	return product, nil
}

// DeleteProduct deletes a product. Sales keep their copy of the product's details.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return s.translate(err)
	}
	s.log.Info("product deleted", zap.Uint("product_id", id))
	return nil
}

// AdjustStock adds delta to a product's stock. Stock never drops below zero.
func (s *ProductService) AdjustStock(ctx context.Context, id uint, delta int) (*entity.Product, error) {
	if delta < -MaxCount || delta > MaxCount {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field:   "delta",
			Message: fmt.Sprintf("delta must be between -%d and %d", MaxCount, MaxCount),
		}})
	}

	var product *entity.Product
	err := s.guard.Do(func() error {
		var err error
		product, err = s.productRepo.ApplyStockDelta(ctx, id, delta)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, apperror.NewUnprocessableError("stock cannot go below zero",
				apperror.FieldError{Field: "delta", Message: fmt.Sprintf("cannot remove %d units", -delta)})
		}
		if errors.Is(err, repository.ErrStockLimit) {
			return nil, apperror.NewUnprocessableError("stock limit exceeded",
				apperror.FieldError{Field: "delta", Message: fmt.Sprintf("stock cannot exceed %d", MaxCount)})
		}
		return nil, s.translate(err)
	}

	s.log.Info("stock adjusted",
		zap.Uint("product_id", id),
		zap.Int("delta", delta),
		zap.Int("stock", product.Stock),
	)
	return product, nil
}

// ResetCatalog replaces the catalog with the default product list
func (s *ProductService) ResetCatalog(ctx context.Context) ([]entity.Product, error) {
	products := entity.DefaultCatalog()
	err := s.guard.Do(func() error {
		return s.productRepo.ReplaceAll(ctx, products)
	})
	if err != nil {
		return nil, s.translate(err)
	}

	s.log.Warn("catalog reset to defaults", zap.Int("products", len(products)))
	return s.productRepo.GetAll(ctx)
}

// ImportProductRow represents a single row from the import file
type ImportProductRow struct {
	// Row is the sheet row number; zero means the row's position after the header
	Row             int
	Name            string
	Code            string
	Category        string
	Unit            string
	Price           string
	Stock           string
	DiscountPercent string
	TaxPercent      string
}

// ImportResult contains the result of a product import operation
type ImportResult struct {
	TotalRows  int              `json:"totalRows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportProducts validates and creates products from parsed import rows.
// Valid rows are stored even when other rows fail.
func (s *ProductService) ImportProducts(ctx context.Context, rows []ImportProductRow) (*ImportResult, error) {
	result := &ImportResult{TotalRows: len(rows)}
	var rowErrors []ImportRowError

	// code -> row number
	seenCodes := make(map[string]int)

	var valid []entity.Product
	for i, row := range rows {
		rowNum := row.Row
		if rowNum == 0 {
			rowNum = i + 2 // row 1 is the header
		}

		product, fieldErrs := productFromRow(row)
		if len(fieldErrs) > 0 {
			for _, fe := range fieldErrs {
				rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: fe.Field, Message: fe.Message})
			}
			continue
		}

		if product.Code != "" {
			if prevRow, exists := seenCodes[product.Code]; exists {
				rowErrors = append(rowErrors, ImportRowError{
					Row:     rowNum,
					Field:   "code",
					Message: fmt.Sprintf("Duplicate code '%s' (same as row %d)", product.Code, prevRow),
				})
				continue
			}

			existing, err := s.productRepo.GetByCode(ctx, product.Code)
			if err != nil {
				return nil, apperror.NewPersistenceError(err)
			}
			if existing != nil {
				rowErrors = append(rowErrors, ImportRowError{
					Row:     rowNum,
					Field:   "code",
					Message: fmt.Sprintf("Product code '%s' already exists", product.Code),
				})
				continue
			}
			seenCodes[product.Code] = rowNum
		}

		valid = append(valid, *product)
	}

	if len(valid) > 0 {
		err := s.guard.Do(func() error {
			return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
				for i := range valid {
					if err := s.productRepo.Create(ctx, &valid[i]); err != nil {
						return err
					}
				}
				return nil
			})
		})
		if err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, apperror.NewConflictError("Product code already exists")
			}
			s.log.Error("product import failed", zap.Int("rows", len(valid)), zap.Error(err))
			return nil, apperror.NewPersistenceError(err)
		}
	}

	result.Successful = len(valid)
	result.Failed = result.TotalRows - result.Successful
	result.Errors = rowErrors

	s.log.Info("products imported", zap.Int("successful", result.Successful), zap.Int("failed", result.Failed))
	return result, nil
}

// ImportProductsFromSheet reads an .xlsx catalog and imports its rows.
// Headers are matched loosely: "Tax %", "tax" and "GST" all fill the tax column.
func (s *ProductService) ImportProductsFromSheet(ctx context.Context, r io.Reader) (*ImportResult, error) {
	sheet, numbers, err := importer.ReadSheet(r)
	if err != nil {
		return nil, apperror.NewBadRequestError("Could not read spreadsheet: " + err.Error())
	}

	rows := make([]ImportProductRow, len(sheet))
	for i, cells := range sheet {
		rows[i] = ImportProductRow{
			Row:             numbers[i],
			Name:            cells.Get("name", "product", "productname"),
			Code:            cells.Get("code", "productcode", "sku"),
			Category:        cells.Get("category"),
			Unit:            cells.Get("unit"),
			Price:           cells.Get("price", "sellingprice", "rate"),
			Stock:           cells.Get("stock", "quantity", "qty"),
			DiscountPercent: cells.Get("discount", "discountpercent"),
			TaxPercent:      cells.Get("tax", "taxpercent", "gst"),
		}
	}
	return s.ImportProducts(ctx, rows)
}

func productFromRow(row ImportProductRow) (*entity.Product, []apperror.FieldError) {
	var errs []apperror.FieldError
	number := func(field, raw string) decimal.Decimal {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			errs = append(errs, apperror.FieldError{Field: field, Message: fmt.Sprintf("'%s' is not a number", raw)})
		}
		return d
	}

	product := &entity.Product{
		Name:            strings.TrimSpace(row.Name),
		Code:            strings.TrimSpace(row.Code),
		Category:        strings.TrimSpace(row.Category),
		Unit:            strings.TrimSpace(row.Unit),
		Price:           number("price", row.Price),
		DiscountPercent: number("discountPercent", row.DiscountPercent),
		TaxPercent:      number("taxPercent", row.TaxPercent),
	}
	stock := number("stock", row.Stock)
	if count, ok := wholeCount(stock); ok {
		product.Stock = count
	} else {
		errs = append(errs, apperror.FieldError{
			Field:   "stock",
			Message: fmt.Sprintf("stock must be a whole number from 0 to %d", MaxCount),
		})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	if vErrs := product.Validate(); len(vErrs) > 0 {
		return nil, vErrs
	}
	return product, nil
}

func (s *ProductService) translate(err error) error {
	switch {
	case apperror.IsAppError(err):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NewNotFoundError("Product")
	case errors.Is(err, repository.ErrDuplicate):
		return apperror.NewConflictError("Product code already exists")
	default:
		s.log.Error("catalog store failed", zap.Error(err))
		return apperror.NewPersistenceError(err)
	}
}
