package repository

import (
	"context"

	"github.com/sangkips/billmaster-api/internal/domain/entity"
	"github.com/sangkips/billmaster-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	// Create stores the customer, assigning the next display code when CustomerCode is zero
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uint) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params *PartyFilterParams) ([]entity.Customer, int64, error)
}

// SupplierRepository defines the interface for supplier data operations
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id uint) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params *PartyFilterParams) ([]entity.Supplier, int64, error)
}

// PartyFilterParams contains filtering parameters for customer and supplier queries
type PartyFilterParams struct {
	Pagination *pagination.PaginationParams
	// Search matches name, phone or email; for customers a numeric search also matches the display code
	Search string
}
