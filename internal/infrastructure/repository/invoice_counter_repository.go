package repository

import (
	"context"
	"errors"

	"github.com/sangkips/billmaster-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billmaster-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type invoiceCounterRepository struct {
	db *gorm.DB
}

// NewInvoiceCounterRepository creates a new invoice counter repository
func NewInvoiceCounterRepository(db *gorm.DB) domainRepo.InvoiceCounterRepository {
	return &invoiceCounterRepository{db: db}
}

// Next locks the counter row with SELECT ... FOR UPDATE, so concurrent
// commits queue on the row instead of reading the same value.
func (r *invoiceCounterRepository) Next(ctx context.Context, name string, seed int64) (int64, error) {
	var value int64
	run := func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entity.InvoiceCounter{Name: name, Value: seed}).Error; err != nil {
			return err
		}

		var counter entity.InvoiceCounter
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&counter, "name = ?", name).Error; err != nil {
			return err
		}

		value = counter.Value
		return tx.Model(&entity.InvoiceCounter{}).
			Where("name = ?", name).
			Update("value", counter.Value+1).Error
	}

	var err error
	if tx, ok := TxFrom(ctx); ok {
		err = run(tx)
	} else {
		err = r.db.WithContext(ctx).Transaction(run)
	}
	return value, err
}

func (r *invoiceCounterRepository) Peek(ctx context.Context, name string, seed int64) (int64, error) {
	var counter entity.InvoiceCounter
	err := conn(ctx, r.db).First(&counter, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return seed, nil
	}
	return counter.Value, err
}
