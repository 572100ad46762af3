package service

import (
	"context"
	"testing"

	"github.com/sangkips/billmaster-api/internal/domain/entity"
	"github.com/sangkips/billmaster-api/internal/domain/repository"
	"github.com/sangkips/billmaster-api/internal/infrastructure/filestore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fixture wires every service over one file store in a temp dir
type fixture struct {
	store     *filestore.Store
	products  repository.ProductRepository
	customers repository.CustomerRepository
	suppliers repository.SupplierRepository
	sales     repository.SaleRepository
	purchases repository.PurchaseRepository
	counters  repository.InvoiceCounterRepository
	users     repository.UserRepository
	guard     *StockGuard
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s, err := filestore.Open(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return &fixture{
		store:     s,
		products:  filestore.NewProductRepository(s),
		customers: filestore.NewCustomerRepository(s),
		suppliers: filestore.NewSupplierRepository(s),
		sales:     filestore.NewSaleRepository(s),
		purchases: filestore.NewPurchaseRepository(s),
		counters:  filestore.NewInvoiceCounterRepository(s),
		users:     filestore.NewUserRepository(s),
		guard:     NewStockGuard(),
	}
}

func (f *fixture) checkout() *CheckoutService {
	return NewCheckoutService(f.store.Transactor(), f.guard, f.products, f.customers, f.sales, f.counters, zap.NewNop())
}

func (f *fixture) catalog() *ProductService {
	return NewProductService(f.store.Transactor(), f.guard, f.products, zap.NewNop())
}

func (f *fixture) product(t *testing.T, name string, price int64, stock int, disc, tax int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Name:            name,
		Unit:            "Piece",
		Price:           decimal.NewFromInt(price),
		Stock:           stock,
		DiscountPercent: decimal.NewFromInt(disc),
		TaxPercent:      decimal.NewFromInt(tax),
	}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func (f *fixture) customer(t *testing.T, name string) *entity.Customer {
	t.Helper()
	c := &entity.Customer{Name: name}
	require.NoError(t, f.customers.Create(context.Background(), c))
	return c
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
