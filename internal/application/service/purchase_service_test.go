package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sangkips/billmaster-api/internal/domain/entity"
	"github.com/sangkips/billmaster-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func (f *fixture) purchasing(purchases repository.PurchaseRepository) *PurchaseService {
	return NewPurchaseService(f.store.Transactor(), f.guard, f.products, f.suppliers, purchases, zap.NewNop())
}

func (f *fixture) supplier(t *testing.T, name string) *entity.Supplier {
	t.Helper()
	s := &entity.Supplier{Name: name}
	require.NoError(t, f.suppliers.Create(context.Background(), s))
	return s
}

func TestPurchaseService_RecordPurchase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	rice := f.product(t, "Basmati Rice", 100, 2, 0, 0)
	dal := f.product(t, "Toor Dal", 120, 0, 0, 0)
	s := f.supplier(t, "Metro Wholesale")
	svc := f.purchasing(f.purchases)

	purchase, err := svc.RecordPurchase(ctx, &RecordPurchaseInput{
		SupplierID:        s.ID,
		SupplierInvoiceNo: " MW-77 ",
		Items: []PurchaseItemInput{
			{ProductID: rice.ID, Quantity: 10, CostPrice: dec("80")},
			{ProductID: dal.ID, Quantity: 5, CostPrice: dec("95.5")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Metro Wholesale", purchase.SupplierName)
	assert.Equal(t, "MW-77", purchase.SupplierInvoiceNo)
	require.Len(t, purchase.Items, 2)
	assert.True(t, dec("800").Equal(purchase.Items[0].Total))
	assert.True(t, dec("1277.5").Equal(purchase.TotalAmount))
	assert.Equal(t, 12, f.stock(t, rice.ID))
	assert.Equal(t, 5, f.stock(t, dal.ID))

	list, err := svc.ListPurchases(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, purchase.ID, list.Items[0].ID)
}

func TestPurchaseService_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "Pen", 10, 1, 0, 0)
	s := f.supplier(t, "Metro Wholesale")
	svc := f.purchasing(f.purchases)

	_, err := svc.RecordPurchase(ctx, &RecordPurchaseInput{})
	appErr := requireAppError(t, err, http.StatusUnprocessableEntity, "Validation failed")
	assert.Len(t, appErr.Errors, 2)

	_, err = svc.RecordPurchase(ctx, &RecordPurchaseInput{
		SupplierID: s.ID,
		Items:      []PurchaseItemInput{{ProductID: p.ID, Quantity: 0, CostPrice: dec("-1")}},
	})
	appErr = requireAppError(t, err, http.StatusUnprocessableEntity, "Validation failed")
	assert.Len(t, appErr.Errors, 2)

	_, err = svc.RecordPurchase(ctx, &RecordPurchaseInput{
		SupplierID: 99,
		Items:      []PurchaseItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	requireAppError(t, err, http.StatusNotFound, "Supplier not found")

	// the known product must not keep its increase when a later item fails
	_, err = svc.RecordPurchase(ctx, &RecordPurchaseInput{
		SupplierID: s.ID,
		Items:      []PurchaseItemInput{{ProductID: p.ID, Quantity: 4}, {ProductID: 404, Quantity: 1}},
	})
	requireAppError(t, err, http.StatusUnprocessableEntity, MsgUnknownProduct)
	assert.Equal(t, 1, f.stock(t, p.ID))

	_, err = svc.RecordPurchase(ctx, &RecordPurchaseInput{
		SupplierID: s.ID,
		Items:      []PurchaseItemInput{{ProductID: p.ID, Quantity: MaxCount + 1}},
	})
	requireAppError(t, err, http.StatusUnprocessableEntity, "Validation failed")

	_, err = svc.RecordPurchase(ctx, &RecordPurchaseInput{
		SupplierID: s.ID,
		Items:      []PurchaseItemInput{{ProductID: p.ID, Quantity: MaxCount}},
	})
	requireAppError(t, err, http.StatusUnprocessableEntity, "stock limit exceeded")
	assert.Equal(t, 1, f.stock(t, p.ID))
}

type failingPurchases struct {
	repository.PurchaseRepository
}

func (failingPurchases) Create(context.Context, *entity.Purchase) error {
	return errors.New("disk full")
}

func TestPurchaseService_StoreFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "Pen", 10, 1, 0, 0)
	s := f.supplier(t, "Metro Wholesale")

	_, err := f.purchasing(failingPurchases{f.purchases}).RecordPurchase(ctx, &RecordPurchaseInput{
		SupplierID: s.ID,
		Items:      []PurchaseItemInput{{ProductID: p.ID, Quantity: 4, CostPrice: dec("5")}},
	})
	requireAppError(t, err, http.StatusInternalServerError, "Server error")
	assert.Equal(t, 1, f.stock(t, p.ID))
}
