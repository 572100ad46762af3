// Package storage opens the configured persistence backend and hands out its repositories.
package storage

import (
	"fmt"

	"github.com/sangkips/billmaster-api/internal/config"
	domainRepo "github.com/sangkips/billmaster-api/internal/domain/repository"
	"github.com/sangkips/billmaster-api/internal/infrastructure/database"
	"github.com/sangkips/billmaster-api/internal/infrastructure/filestore"
	"github.com/sangkips/billmaster-api/internal/infrastructure/repository"
	"go.uber.org/zap"
)

// Repositories is the full set of stores used by the services
type Repositories struct {
	Driver      string
	Tx          domainRepo.Transactor
	Products    domainRepo.ProductRepository
	Customers   domainRepo.CustomerRepository
	Suppliers   domainRepo.SupplierRepository
	Sales       domainRepo.SaleRepository
	Purchases   domainRepo.PurchaseRepository
	Counters    domainRepo.InvoiceCounterRepository
	Users       domainRepo.UserRepository
	Idempotency domainRepo.IdempotencyRepository

	close func() error
}

// Close releases the backend
func (r *Repositories) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// Open connects to the backend selected by STORAGE_DRIVER. Postgres is
// migrated when migrate is set.
func Open(cfg *config.Config, migrate bool, log *zap.Logger) (*Repositories, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverJSON, "":
		return openFiles(cfg.Storage.DataDir, log)
	case config.StorageDriverPostgres:
		return openPostgres(cfg, migrate, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func openFiles(dir string, log *zap.Logger) (*Repositories, error) {
	s, err := filestore.Open(dir, log)
	if err != nil {
		return nil, err
	}
	log.Info("using JSON data directory", zap.String("dir", dir))

	return &Repositories{
		Driver:      config.StorageDriverJSON,
		Tx:          s.Transactor(),
		Products:    filestore.NewProductRepository(s),
		Customers:   filestore.NewCustomerRepository(s),
		Suppliers:   filestore.NewSupplierRepository(s),
		Sales:       filestore.NewSaleRepository(s),
		Purchases:   filestore.NewPurchaseRepository(s),
		Counters:    filestore.NewInvoiceCounterRepository(s),
		Users:       filestore.NewUserRepository(s),
		Idempotency: filestore.NewIdempotencyRepository(s),
	}, nil
}

func openPostgres(cfg *config.Config, migrate bool, log *zap.Logger) (*Repositories, error) {
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, log)
	if err != nil {
		return nil, err
	}

	if migrate {
		if err := database.AutoMigrate(db, log); err != nil {
			return nil, err
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	return &Repositories{
		Driver:      config.StorageDriverPostgres,
		Tx:          repository.NewTransactor(db),
		Products:    repository.NewProductRepository(db),
		Customers:   repository.NewCustomerRepository(db),
		Suppliers:   repository.NewSupplierRepository(db),
		Sales:       repository.NewSaleRepository(db),
		Purchases:   repository.NewPurchaseRepository(db),
		Counters:    repository.NewInvoiceCounterRepository(db),
		Users:       repository.NewUserRepository(db),
		Idempotency: repository.NewIdempotencyRepository(db),
		close:       sqlDB.Close,
	}, nil
}
