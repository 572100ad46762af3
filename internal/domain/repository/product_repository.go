package repository

import (
	"context"

	"github.com/sangkips/billmaster-api/internal/domain/entity"
	"github.com/sangkips/billmaster-api/pkg/pagination"
)

// ProductRepository defines the interface for catalog data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID returns nil, nil when the product does not exist
	GetByID(ctx context.Context, id uint) (*entity.Product, error)
	// GetByIDs retrieves multiple products in one call; missing ids are skipped
	GetByIDs(ctx context.Context, ids []uint) ([]entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetAll returns the whole catalog ordered by id
	GetAll(ctx context.Context) ([]entity.Product, error)
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uint) error
	// ApplyStockDelta adds delta to the product's stock and returns the updated product.
	// It fails with ErrNotFound or ErrInsufficientStock and leaves stock untouched.
	ApplyStockDelta(ctx context.Context, id uint, delta int) (*entity.Product, error)
	// ReplaceAll drops the catalog and stores products in its place
	ReplaceAll(ctx context.Context, products []entity.Product) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	// Search matches name or code, case-insensitively
	Search   string
	Category string
	// StockAtMost keeps products whose stock is at or below the value
	StockAtMost *int
}
