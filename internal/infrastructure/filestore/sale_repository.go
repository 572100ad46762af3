package filestore

import (
	"context"
	"sort"

	"github.com/sangkips/billmaster-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billmaster-api/internal/domain/repository"
	"github.com/sangkips/billmaster-api/pkg/pagination"
)

type saleRepository struct {
	s *Store
}

// NewSaleRepository creates a sales ledger over the file store
func NewSaleRepository(s *Store) domainRepo.SaleRepository {
	return &saleRepository{s: s}
}

func copySale(sale entity.Sale) entity.Sale {
	sale.Lines = append([]entity.SaleLine(nil), sale.Lines...)
	return sale
}

func newestFirst(sales []entity.Sale) {
	sort.SliceStable(sales, func(i, j int) bool {
		if !sales[i].Date.Equal(sales[j].Date) {
			return sales[i].Date.After(sales[j].Date)
		}
		return sales[i].ID > sales[j].ID
	})
}

func (r *saleRepository) Append(ctx context.Context, sale *entity.Sale) error {
	return r.s.update(ctx, func(st *state) error {
		var highest uint
		for _, existing := range st.Sales {
			if existing.InvoiceNumber == sale.InvoiceNumber {
				return domainRepo.ErrDuplicate
			}
			if existing.ID > highest {
				highest = existing.ID
			}
		}

		sale.ID = r.s.nextID(st, colSales, highest)
		sale.CreatedAt = r.s.now()
		for i := range sale.Lines {
			sale.Lines[i].ID = uint(i + 1)
			sale.Lines[i].SaleID = sale.ID
		}
		st.Sales = append(st.Sales, copySale(*sale))
		r.s.touch(colSales)
		return nil
	})
}

func (r *saleRepository) GetAll(ctx context.Context) ([]entity.Sale, error) {
	var out []entity.Sale
	err := r.s.view(ctx, func(st *state) error {
		out = make([]entity.Sale, 0, len(st.Sales))
		for _, sale := range st.Sales {
			out = append(out, copySale(sale))
		}
		return nil
	})
	newestFirst(out)
	return out, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var matched []entity.Sale
	err := r.s.view(ctx, func(st *state) error {
		for _, sale := range st.Sales {
			if !matchesAny(params.Search, sale.InvoiceNumber, sale.Account) {
				continue
			}
			if params.CustomerID != nil && (sale.CustomerRef == nil || *sale.CustomerRef != *params.CustomerID) {
				continue
			}
			if params.From != nil && sale.Date.Before(*params.From) {
				continue
			}
			if params.To != nil && !sale.Date.Before(*params.To) {
				continue
			}
			matched = append(matched, copySale(sale))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	newestFirst(matched)
	items, total := page(matched, params.Pagination)
	return items, total, nil
}

func (r *saleRepository) GetByID(ctx context.Context, id uint) (*entity.Sale, error) {
	return r.find(ctx, func(sale *entity.Sale) bool { return sale.ID == id })
}

func (r *saleRepository) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*entity.Sale, error) {
	return r.find(ctx, func(sale *entity.Sale) bool { return sale.InvoiceNumber == invoiceNumber })
}

func (r *saleRepository) find(ctx context.Context, match func(*entity.Sale) bool) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.s.view(ctx, func(st *state) error {
		for i := range st.Sales {
			if match(&st.Sales[i]) {
				found := copySale(st.Sales[i])
				out = &found
				break
			}
		}
		return nil
	})
	return out, err
}

type purchaseRepository struct {
	s *Store
}

// NewPurchaseRepository creates a purchase repository over the file store
func NewPurchaseRepository(s *Store) domainRepo.PurchaseRepository {
	return &purchaseRepository{s: s}
}

func copyPurchase(p entity.Purchase) entity.Purchase {
	p.Items = append([]entity.PurchaseItem(nil), p.Items...)
	return p
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	return r.s.update(ctx, func(st *state) error {
		var highest uint
		for _, existing := range st.Purchases {
			if existing.ID > highest {
				highest = existing.ID
			}
		}
		purchase.ID = r.s.nextID(st, colPurchases, highest)
		purchase.CreatedAt = r.s.now()
		for i := range purchase.Items {
			purchase.Items[i].ID = uint(i + 1)
			purchase.Items[i].PurchaseID = purchase.ID
		}
		st.Purchases = append(st.Purchases, copyPurchase(*purchase))
		r.s.touch(colPurchases)
		return nil
	})
}

func (r *purchaseRepository) GetByID(ctx context.Context, id uint) (*entity.Purchase, error) {
	var out *entity.Purchase
	err := r.s.view(ctx, func(st *state) error {
		for i := range st.Purchases {
			if st.Purchases[i].ID == id {
				found := copyPurchase(st.Purchases[i])
				out = &found
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *purchaseRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Purchase, int64, error) {
	var all []entity.Purchase
	err := r.s.view(ctx, func(st *state) error {
		for _, p := range st.Purchases {
			all = append(all, copyPurchase(p))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].ID > all[j].ID
	})
	items, total := page(all, params)
	return items, total, nil
}
