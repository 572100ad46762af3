package repository

import (
	"context"
	"time"

	"github.com/sangkips/billmaster-api/internal/domain/entity"
	"github.com/sangkips/billmaster-api/pkg/pagination"
)

// SaleRepository defines the interface for the append-only sales ledger
type SaleRepository interface {
	// Append stores a sale with its lines and assigns ids
	Append(ctx context.Context, sale *entity.Sale) error
	// GetAll returns every sale, newest first
	GetAll(ctx context.Context) ([]entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	GetByID(ctx context.Context, id uint) (*entity.Sale, error)
	GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*entity.Sale, error)
}

// SaleFilterParams contains filtering parameters for sales queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	// Search matches invoice number or account name
	Search     string
	CustomerID *uint
	From       *time.Time
	To         *time.Time
}

// PurchaseRepository defines the interface for purchase records
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id uint) (*entity.Purchase, error)
	// List returns purchases newest first
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Purchase, int64, error)
}

// InvoiceCounterRepository defines the interface for named invoice sequences
type InvoiceCounterRepository interface {
	// Next returns the current value of the named counter and stores value+1.
	// A counter that does not exist yet starts at seed.
	Next(ctx context.Context, name string, seed int64) (int64, error)
	// Peek returns the value Next would return without changing it
	Peek(ctx context.Context, name string, seed int64) (int64, error)
}
