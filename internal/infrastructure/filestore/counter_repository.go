package filestore

import (
	"context"

	domainRepo "github.com/sangkips/billmaster-api/internal/domain/repository"
)

type invoiceCounterRepository struct {
	s *Store
}

// NewInvoiceCounterRepository creates an invoice counter over the file store
func NewInvoiceCounterRepository(s *Store) domainRepo.InvoiceCounterRepository {
	return &invoiceCounterRepository{s: s}
}

func (r *invoiceCounterRepository) Next(ctx context.Context, name string, seed int64) (int64, error) {
	var value int64
	err := r.s.update(ctx, func(st *state) error {
		current, ok := st.Counters[name]
		if !ok {
			current = seed
		}
		value = current
		st.Counters[name] = current + 1
		r.s.touch(colCounters)
		return nil
	})
	return value, err
}

func (r *invoiceCounterRepository) Peek(ctx context.Context, name string, seed int64) (int64, error) {
	value := seed
	err := r.s.view(ctx, func(st *state) error {
		if current, ok := st.Counters[name]; ok {
			value = current
		}
		return nil
	})
	return value, err
}
