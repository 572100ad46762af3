package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sangkips/billmaster-api/internal/domain/entity"
	"github.com/sangkips/billmaster-api/internal/domain/repository"
	"github.com/sangkips/billmaster-api/pkg/apperror"
	"github.com/sangkips/billmaster-api/pkg/pagination"
	"go.uber.org/zap"
)

// PartyService handles customer and supplier operations
type PartyService struct {
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	log          *zap.Logger
}

// NewPartyService creates a new party service
func NewPartyService(
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	log *zap.Logger,
) *PartyService {
	return &PartyService{
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		log:          log,
	}
}

// PartyInput carries the contact fields shared by customers and suppliers.
// On update, nil fields are left unchanged.
type PartyInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	GSTIN   *string
}

type contact struct {
	name, email, phone, address, gstin *string
}

func (in *PartyInput) apply(c contact) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(c.name, in.Name)
	set(c.email, in.Email)
	set(c.phone, in.Phone)
	set(c.address, in.Address)
	set(c.gstin, in.GSTIN)
}

// CreateCustomer creates a customer. A zero code takes the next display code.
func (s *PartyService) CreateCustomer(ctx context.Context, code int, input *PartyInput) (*entity.Customer, error) {
	customer := &entity.Customer{CustomerCode: code}
	input.apply(contact{&customer.Name, &customer.Email, &customer.Phone, &customer.Address, &customer.GSTIN})
	if code < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "customerCode", Message: "code must be positive"}})
	}
	if errs := customer.Validate(); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, s.translate(err, "Customer")
	}
	s.log.Info("customer created", zap.Uint("customer_id", customer.ID), zap.Int("customer_code", customer.CustomerCode))
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *PartyService) GetCustomer(ctx context.Context, id uint) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, "Customer")
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers matching the search by name, contact or display code
func (s *PartyService) ListCustomers(ctx context.Context, params *repository.PartyFilterParams) (*pagination.PaginatedResult[entity.Customer], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	customers, total, err := s.customerRepo.List(ctx, params)
	if err != nil {
		return nil, s.translate(err, "Customer")
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomer updates a customer's contact details. The display code is kept
// unless code is non-nil.
func (s *PartyService) UpdateCustomer(ctx context.Context, id uint, code *int, input *PartyInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	input.apply(contact{&customer.Name, &customer.Email, &customer.Phone, &customer.Address, &customer.GSTIN})
	if code != nil {
		if *code <= 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "customerCode", Message: "code must be positive"}})
		}
		customer.CustomerCode = *code
	}
	if errs := customer.Validate(); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, s.translate(err, "Customer")
	}
	return customer, nil
}

// DeleteCustomer deletes a customer. Past sales keep the account name and code.
func (s *PartyService) DeleteCustomer(ctx context.Context, id uint) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return s.translate(err, "Customer")
	}
	s.log.Info("customer deleted", zap.Uint("customer_id", id))
	return nil
}

// CreateSupplier creates a supplier
func (s *PartyService) CreateSupplier(ctx context.Context, input *PartyInput) (*entity.Supplier, error) {
	supplier := &entity.Supplier{}
	input.apply(contact{&supplier.Name, &supplier.Email, &supplier.Phone, &supplier.Address, &supplier.GSTIN})
	if errs := supplier.Validate(); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, s.translate(err, "Supplier")
	}
	s.log.Info("supplier created", zap.Uint("supplier_id", supplier.ID))
	return supplier, nil
}

// GetSupplier retrieves a supplier by ID
func (s *PartyService) GetSupplier(ctx context.Context, id uint) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, "Supplier")
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// ListSuppliers lists suppliers
func (s *PartyService) ListSuppliers(ctx context.Context, params *repository.PartyFilterParams) (*pagination.PaginatedResult[entity.Supplier], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	suppliers, total, err := s.supplierRepo.List(ctx, params)
	if err != nil {
		return nil, s.translate(err, "Supplier")
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(suppliers, pag), nil
}

// UpdateSupplier updates a supplier
func (s *PartyService) UpdateSupplier(ctx context.Context, id uint, input *PartyInput) (*entity.Supplier, error) {
	supplier, err := s.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	input.apply(contact{&supplier.Name, &supplier.Email, &supplier.Phone, &supplier.Address, &supplier.GSTIN})
	if errs := supplier.Validate(); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, s.translate(err, "Supplier")
	}
	return supplier, nil
}

// DeleteSupplier deletes a supplier
func (s *PartyService) DeleteSupplier(ctx context.Context, id uint) error {
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return s.translate(err, "Supplier")
	}
	return nil
}

func (s *PartyService) translate(err error, resource string) error {
	switch {
	case apperror.IsAppError(err):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NewNotFoundError(resource)
	case errors.Is(err, repository.ErrDuplicate):
		return apperror.NewConflictError(resource + " code already exists")
	default:
		s.log.Error("party store failed", zap.String("resource", resource), zap.Error(err))
		return apperror.NewPersistenceError(err)
	}
}
