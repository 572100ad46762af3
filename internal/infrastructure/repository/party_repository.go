package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/sangkips/billmaster-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billmaster-api/internal/domain/repository"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

// Create assigns the display code as max(customer_code)+1 in the same transaction as the insert
func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	run := func(tx *gorm.DB) error {
		if customer.CustomerCode == 0 {
			var maxCode int
			if err := tx.Model(&entity.Customer{}).
				Select("COALESCE(MAX(customer_code), 0)").
				Scan(&maxCode).Error; err != nil {
				return err
			}
			customer.CustomerCode = maxCode + 1
		}
		return translate(tx.Create(customer).Error)
	}
	if tx, ok := TxFrom(ctx); ok {
		return run(tx)
	}
	return r.db.WithContext(ctx).Transaction(run)
}

func (r *customerRepository) GetByID(ctx context.Context, id uint) (*entity.Customer, error) {
	var customer entity.Customer
	err := conn(ctx, r.db).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	result := conn(ctx, r.db).Model(customer).Select("*").Omit("created_at").Updates(customer)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&entity.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

func (r *customerRepository) List(ctx context.Context, params *domainRepo.PartyFilterParams) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := conn(ctx, r.db).Model(&entity.Customer{})
	search := strings.TrimSpace(params.Search)
	if code, err := strconv.Atoi(search); err == nil {
		query = query.Where("customer_code = ?", code).
			Or("name ILIKE ? OR phone ILIKE ?", "%"+search+"%", "%"+search+"%")
	} else {
		query = query.Scopes(Search(search, "name", "email", "phone"))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("customer_code ASC").
		Find(&customers).Error

	return customers, total, err
}

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) domainRepo.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return translate(conn(ctx, r.db).Create(supplier).Error)
}

func (r *supplierRepository) GetByID(ctx context.Context, id uint) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := conn(ctx, r.db).First(&supplier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &supplier, err
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	result := conn(ctx, r.db).Model(supplier).Select("*").Omit("created_at").Updates(supplier)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

func (r *supplierRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&entity.Supplier{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

func (r *supplierRepository) List(ctx context.Context, params *domainRepo.PartyFilterParams) ([]entity.Supplier, int64, error) {
	var suppliers []entity.Supplier
	var total int64

	query := conn(ctx, r.db).Model(&entity.Supplier{}).
		Scopes(Search(strings.TrimSpace(params.Search), "name", "email", "phone"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("name ASC").
		Find(&suppliers).Error

	return suppliers, total, err
}
