// Package filestore keeps every collection as a JSON file in one data directory.
//
// All state lives in memory behind one mutex and is written back on each
// committed unit of work. A unit either applies completely or leaves both
// memory and disk as they were. Stored records are replaced, never mutated in
// place, so a snapshot only has to copy the slice headers.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/sangkips/billmaster-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billmaster-api/internal/domain/repository"
	"go.uber.org/zap"
)

const (
	colProducts    = "products"
	colCustomers   = "customers"
	colSuppliers   = "suppliers"
	colSales       = "sales"
	colPurchases   = "purchases"
	colCounters    = "counters"
	colUsers       = "users"
	colIdempotency = "idempotency_keys"
	colSequences   = "sequences"
)

type state struct {
	Products        []entity.Product
	Customers       []entity.Customer
	Suppliers       []entity.Supplier
	Sales           []entity.Sale
	Purchases       []entity.Purchase
	Counters        map[string]int64
	Users           []entity.User
	IdempotencyKeys []entity.IdempotencyKey
	Sequences       map[string]uint
}

func (st *state) collections() map[string]interface{} {
	return map[string]interface{}{
		colProducts:    &st.Products,
		colCustomers:   &st.Customers,
		colSuppliers:   &st.Suppliers,
		colSales:       &st.Sales,
		colPurchases:   &st.Purchases,
		colCounters:    &st.Counters,
		colUsers:       &st.Users,
		colIdempotency: &st.IdempotencyKeys,
		colSequences:   &st.Sequences,
	}
}

func (st *state) clone() *state {
	c := &state{
		Products:        append([]entity.Product(nil), st.Products...),
		Customers:       append([]entity.Customer(nil), st.Customers...),
		Suppliers:       append([]entity.Supplier(nil), st.Suppliers...),
		Sales:           append([]entity.Sale(nil), st.Sales...),
		Purchases:       append([]entity.Purchase(nil), st.Purchases...),
		Users:           append([]entity.User(nil), st.Users...),
		IdempotencyKeys: append([]entity.IdempotencyKey(nil), st.IdempotencyKeys...),
		Counters:        make(map[string]int64, len(st.Counters)),
		Sequences:       make(map[string]uint, len(st.Sequences)),
	}
	for k, v := range st.Counters {
		c.Counters[k] = v
	}
	for k, v := range st.Sequences {
		c.Sequences[k] = v
	}
	return c
}

type txKey struct{}

// Store is the JSON data directory backend
type Store struct {
	mu    sync.RWMutex
	dir   string
	st    *state
	dirty map[string]bool
	log   *zap.Logger

	// writeFile stages one collection file; replaced in tests
	writeFile func(name string, data []byte) error
	now       func() time.Time
}

// Open loads every collection found in dir, creating dir if needed
func Open(dir string, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	s := &Store{
		dir: dir,
		st:  &state{Counters: map[string]int64{}, Sequences: map[string]uint{}},
		log: log,
		now: time.Now,
	}
	s.writeFile = func(name string, data []byte) error {
		return os.WriteFile(name, data, 0o644)
	}

	for name, target := range s.st.collections() {
		data, err := os.ReadFile(s.path(name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		if err := json.Unmarshal(data, target); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", name, err)
		}
	}
	if s.st.Counters == nil {
		s.st.Counters = map[string]int64{}
	}
	if s.st.Sequences == nil {
		s.st.Sequences = map[string]uint{}
	}

	log.Info("file store opened", zap.String("dir", dir), zap.Int("products", len(s.st.Products)), zap.Int("sales", len(s.st.Sales)))
	return s, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

// WithinTransaction runs fn with the store locked. Writes made through the
// ctx given to fn are flushed together when fn succeeds and discarded otherwise.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txCtx := context.WithValue(ctx, txKey{}, s)
	return s.commit(func() error { return fn(txCtx) })
}

// view runs a read under the shared lock unless ctx already holds the store
func (s *Store) view(ctx context.Context, fn func(st *state) error) error {
	if !s.inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	return fn(s.st)
}

// update runs a single write. Inside a transaction it joins the open unit.
// fn must not change state before it knows it will succeed.
func (s *Store) update(ctx context.Context, fn func(st *state) error) error {
	if s.inTx(ctx) {
		return fn(s.st)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(func() error { return fn(s.st) })
}

func (s *Store) commit(fn func() error) error {
	snapshot := s.st.clone()
	s.dirty = map[string]bool{}

	if err := fn(); err != nil {
		s.st = snapshot
		return err
	}

	written := s.dirty
	if err := s.flush(written); err != nil {
		s.st = snapshot
		if rerr := s.flush(written); rerr != nil {
			s.log.Error("failed to restore data files after aborted commit", zap.Error(rerr))
		}
		return err
	}
	return nil
}

func (s *Store) touch(names ...string) {
	for _, name := range names {
		s.dirty[name] = true
	}
}

// flush stages every dirty collection as a temp file, then renames them into place
func (s *Store) flush(names map[string]bool) error {
	if len(names) == 0 {
		return nil
	}
	cols := s.st.collections()

	ordered := make([]string, 0, len(names))
	for name := range names {
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)

	for _, name := range ordered {
		data, err := json.MarshalIndent(cols[name], "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", name, err)
		}
		if err := s.writeFile(s.path(name)+".tmp", data); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	for _, name := range ordered {
		if err := os.Rename(s.path(name)+".tmp", s.path(name)); err != nil {
			return fmt.Errorf("failed to replace %s: %w", name, err)
		}
	}
	return nil
}

// nextID hands out the next id of a collection; ids are never reused
func (s *Store) nextID(st *state, name string, floor uint) uint {
	id := st.Sequences[name]
	if id < floor {
		id = floor
	}
	id++
	st.Sequences[name] = id
	s.touch(colSequences)
	return id
}

// Transactor exposes the store as a domain transactor
func (s *Store) Transactor() domainRepo.Transactor {
	return s
}
