package service

import (
	"context"
	"strings"

	"github.com/sangkips/billmaster-api/internal/domain/entity"
	"github.com/sangkips/billmaster-api/internal/domain/repository"
	"github.com/sangkips/billmaster-api/pkg/apperror"
	"github.com/sangkips/billmaster-api/pkg/pagination"
)

// SaleService reads the sales ledger. Sales are never edited or voided.
type SaleService struct {
	saleRepo repository.SaleRepository
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo repository.SaleRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo}
}

// ListSales lists sales, newest first
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	if params.From != nil && params.To != nil && params.To.Before(*params.From) {
		return nil, apperror.NewBadRequestError("'to' must not be before 'from'")
	}

	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// GetSale retrieves a sale with its lines
func (s *SaleService) GetSale(ctx context.Context, id uint) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// GetSaleByInvoiceNumber retrieves a sale by its INV- number
func (s *SaleService) GetSaleByInvoiceNumber(ctx context.Context, invoiceNumber string) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByInvoiceNumber(ctx, strings.ToUpper(strings.TrimSpace(invoiceNumber)))
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}
