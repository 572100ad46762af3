package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/billmaster-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func str(s string) *string { return &s }

func (f *fixture) parties() *PartyService {
	return NewPartyService(f.customers, f.suppliers, zap.NewNop())
}

func TestPartyService_Customers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.parties()

	first, err := svc.CreateCustomer(ctx, 0, &PartyInput{Name: str(" Asha Traders "), Phone: str("98450 11111")})
	require.NoError(t, err)
	assert.Equal(t, 1, first.CustomerCode)
	assert.Equal(t, "Asha Traders", first.Name)

	second, err := svc.CreateCustomer(ctx, 0, &PartyInput{Name: str("Bala Stores")})
	require.NoError(t, err)
	assert.Equal(t, 2, second.CustomerCode)

	_, err = svc.CreateCustomer(ctx, 2, &PartyInput{Name: str("Clash")})
	requireAppError(t, err, http.StatusConflict, "Customer code already exists")

	_, err = svc.CreateCustomer(ctx, 0, &PartyInput{Name: str("  ")})
	requireAppError(t, err, http.StatusUnprocessableEntity, "Validation failed")

	// the till searches by display code or by name
	byCode, err := svc.ListCustomers(ctx, &repository.PartyFilterParams{Search: "2"})
	require.NoError(t, err)
	require.Len(t, byCode.Items, 1)
	assert.Equal(t, second.ID, byCode.Items[0].ID)

	byName, err := svc.ListCustomers(ctx, &repository.PartyFilterParams{Search: "asha"})
	require.NoError(t, err)
	require.Len(t, byName.Items, 1)
	assert.Equal(t, first.ID, byName.Items[0].ID)

	updated, err := svc.UpdateCustomer(ctx, first.ID, nil, &PartyInput{Email: str("asha@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "Asha Traders", updated.Name)
	assert.Equal(t, "asha@example.com", updated.Email)
	assert.Equal(t, 1, updated.CustomerCode)

	require.NoError(t, svc.DeleteCustomer(ctx, first.ID))
	_, err = svc.GetCustomer(ctx, first.ID)
	requireAppError(t, err, http.StatusNotFound, "Customer not found")
}

func TestPartyService_DeletedCustomerKeepsSales(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "Pen", 10, 5, 0, 0)
	c := f.customer(t, "Asha Traders")

	sale, err := f.checkout().CommitSale(ctx, &CommitSaleInput{Lines: []CartLineInput{line(p.ID, "1")}, CustomerID: c.ID})
	require.NoError(t, err)
	require.NoError(t, f.parties().DeleteCustomer(ctx, c.ID))

	stored, err := NewSaleService(f.sales).GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Traders", stored.Account)
	assert.Equal(t, c.CustomerCode, stored.CustomerCode)
}

func TestPartyService_Suppliers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.parties()

	s, err := svc.CreateSupplier(ctx, &PartyInput{Name: str("Metro Wholesale"), GSTIN: str("29ABCDE1234F1Z5")})
	require.NoError(t, err)

	updated, err := svc.UpdateSupplier(ctx, s.ID, &PartyInput{Phone: str("080-2222")})
	require.NoError(t, err)
	assert.Equal(t, "080-2222", updated.Phone)
	assert.Equal(t, "29ABCDE1234F1Z5", updated.GSTIN)

	list, err := svc.ListSuppliers(ctx, &repository.PartyFilterParams{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	require.NoError(t, svc.DeleteSupplier(ctx, s.ID))
	err = svc.DeleteSupplier(ctx, s.ID)
	requireAppError(t, err, http.StatusNotFound, "Supplier not found")
}
