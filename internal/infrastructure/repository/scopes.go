package repository

import (
	"context"
	"errors"

	domainRepo "github.com/sangkips/billmaster-api/internal/domain/repository"
	"gorm.io/gorm"
)

type ctxKey string

// txKey is the context key for the active gorm transaction
const txKey ctxKey = "gorm_tx"

// WithTx adds an open transaction to the context
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// TxFrom extracts the open transaction from the context, if any
func TxFrom(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	return tx, ok
}

// conn returns the transaction carried by ctx, or db bound to ctx
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := TxFrom(ctx); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// Search returns a GORM scope matching term against the given columns with ILIKE
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}
		like := "%" + term + "%"
		cond := db.Session(&gorm.Session{NewDB: true})
		for i, col := range columns {
			if i == 0 {
				cond = cond.Where(col+" ILIKE ?", like)
				continue
			}
			cond = cond.Or(col+" ILIKE ?", like)
		}
		return db.Where(cond)
	}
}

// translate maps gorm errors onto the domain sentinels
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domainRepo.ErrDuplicate
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainRepo.ErrNotFound
	}
	return err
}

type transactor struct {
	db *gorm.DB
}

// NewTransactor creates a transactor backed by gorm transactions
func NewTransactor(db *gorm.DB) domainRepo.Transactor {
	return &transactor{db: db}
}

func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := TxFrom(ctx); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}
