package repository

import (
	"context"
	"errors"

	"github.com/sangkips/billmaster-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billmaster-api/internal/domain/repository"
	"github.com/sangkips/billmaster-api/pkg/pagination"
	"gorm.io/gorm"
)

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *gorm.DB) domainRepo.PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	return conn(ctx, r.db).Create(purchase).Error
}

func (r *purchaseRepository) GetByID(ctx context.Context, id uint) (*entity.Purchase, error) {
	var purchase entity.Purchase
	err := conn(ctx, r.db).Preload("Items").First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *purchaseRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Purchase, int64, error) {
	var purchases []entity.Purchase
	var total int64

	query := conn(ctx, r.db).Model(&entity.Purchase{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Items").
		Order("date DESC, id DESC").
		Find(&purchases).Error

	return purchases, total, err
}
