package repository

import (
	"context"
	"errors"

	"github.com/sangkips/billmaster-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billmaster-api/internal/domain/repository"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return translate(conn(ctx, r.db).Create(product).Error)
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*entity.Product, error) {
	var product entity.Product
	err := conn(ctx, r.db).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// GetByIDs retrieves multiple products by their IDs in a single query
func (r *productRepository) GetByIDs(ctx context.Context, ids []uint) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := conn(ctx, r.db).Where("id IN ?", ids).Order("id ASC").Find(&products).Error
	return products, err
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var product entity.Product
	err := conn(ctx, r.db).First(&product, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := conn(ctx, r.db).Order("id ASC").Find(&products).Error
	return products, err
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := conn(ctx, r.db).Model(&entity.Product{}).Scopes(Search(params.Search, "name", "code"))

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.StockAtMost != nil {
		query = query.Where("stock <= ?", *params.StockAtMost)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("name ASC").
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := conn(ctx, r.db).Model(product).Select("*").Omit("created_at").Updates(product)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&entity.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

// ApplyStockDelta changes stock with a conditional update:
// UPDATE products SET stock = stock + delta WHERE id = ? AND stock >= -delta
func (r *productRepository) ApplyStockDelta(ctx context.Context, id uint, delta int) (*entity.Product, error) {
	db := conn(ctx, r.db)

	query := db.Model(&entity.Product{}).Where("id = ?", id)
	if delta < 0 {
		query = query.Where("stock >= ?", -delta)
	} else {
		query = query.Where("stock <= ?", entity.MaxStock-delta)
	}
	result := query.Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return nil, result.Error
	}

	product, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domainRepo.ErrNotFound
	}
	if result.RowsAffected == 0 {
		if delta > 0 {
			return nil, domainRepo.ErrStockLimit
		}
		return nil, domainRepo.ErrInsufficientStock
	}
	return product, nil
}

func (r *productRepository) ReplaceAll(ctx context.Context, products []entity.Product) error {
	run := func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.Product{}).Error; err != nil {
			return err
		}
		if len(products) == 0 {
			return nil
		}
		return translate(tx.CreateInBatches(products, 100).Error)
	}
	if tx, ok := TxFrom(ctx); ok {
		return run(tx)
	}
	return r.db.WithContext(ctx).Transaction(run)
}
