package repository

import "errors"

// Sentinel errors returned by every store backend
var (
	// ErrNotFound is returned by mutating operations that address a missing record
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientStock is returned when a stock change would drive stock below zero
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrStockLimit is returned when a stock change would push stock above entity.MaxStock
	ErrStockLimit = errors.New("stock limit exceeded")
	// ErrDuplicate is returned when a unique field is already taken
	ErrDuplicate = errors.New("duplicate record")
)
