package repository

import (
	"context"
	"errors"

	"github.com/sangkips/billmaster-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billmaster-api/internal/domain/repository"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sales ledger repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// Append inserts the sale and its lines in one statement group
func (r *saleRepository) Append(ctx context.Context, sale *entity.Sale) error {
	return translate(conn(ctx, r.db).Create(sale).Error)
}

func (r *saleRepository) GetAll(ctx context.Context) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := conn(ctx, r.db).Preload("Lines").Order("date DESC, id DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := conn(ctx, r.db).Model(&entity.Sale{}).Scopes(Search(params.Search, "invoice_number", "account"))

	if params.CustomerID != nil {
		query = query.Where("customer_ref = ?", *params.CustomerID)
	}
	if params.From != nil {
		query = query.Where("date >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("date < ?", *params.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Lines").
		Order("date DESC, id DESC").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) GetByID(ctx context.Context, id uint) (*entity.Sale, error) {
	var sale entity.Sale
	err := conn(ctx, r.db).Preload("Lines").First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*entity.Sale, error) {
	var sale entity.Sale
	err := conn(ctx, r.db).Preload("Lines").First(&sale, "invoice_number = ?", invoiceNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}
