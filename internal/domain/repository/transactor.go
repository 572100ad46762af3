package repository

import "context"

// Transactor runs fn as one unit of work. Repository calls made with the ctx
// passed to fn take part in the unit; if fn returns an error every write made
// through that ctx is discarded. Nested calls join the outer unit.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
