package filestore

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/sangkips/billmaster-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billmaster-api/internal/domain/repository"
)

type customerRepository struct {
	s *Store
}

// NewCustomerRepository creates a customer repository over the file store
func NewCustomerRepository(s *Store) domainRepo.CustomerRepository {
	return &customerRepository{s: s}
}

func (st *state) customerIndex(id uint) int {
	for i := range st.Customers {
		if st.Customers[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.s.update(ctx, func(st *state) error {
		var highestID uint
		highestCode := 0
		for _, c := range st.Customers {
			if c.ID > highestID {
				highestID = c.ID
			}
			if c.CustomerCode > highestCode {
				highestCode = c.CustomerCode
			}
			if customer.CustomerCode != 0 && c.CustomerCode == customer.CustomerCode {
				return domainRepo.ErrDuplicate
			}
		}
		if customer.CustomerCode == 0 {
			customer.CustomerCode = highestCode + 1
		}

		now := r.s.now()
		customer.ID = r.s.nextID(st, colCustomers, highestID)
		customer.CreatedAt = now
		customer.UpdatedAt = now
		st.Customers = append(st.Customers, *customer)
		r.s.touch(colCustomers)
		return nil
	})
}

func (r *customerRepository) GetByID(ctx context.Context, id uint) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.s.view(ctx, func(st *state) error {
		if i := st.customerIndex(id); i >= 0 {
			c := st.Customers[i]
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.s.update(ctx, func(st *state) error {
		i := st.customerIndex(customer.ID)
		if i < 0 {
			return domainRepo.ErrNotFound
		}
		for _, c := range st.Customers {
			if c.ID != customer.ID && c.CustomerCode == customer.CustomerCode {
				return domainRepo.ErrDuplicate
			}
		}
		customer.CreatedAt = st.Customers[i].CreatedAt
		customer.UpdatedAt = r.s.now()
		st.Customers[i] = *customer
		r.s.touch(colCustomers)
		return nil
	})
}

func (r *customerRepository) Delete(ctx context.Context, id uint) error {
	return r.s.update(ctx, func(st *state) error {
		i := st.customerIndex(id)
		if i < 0 {
			return domainRepo.ErrNotFound
		}
		st.Customers = append(st.Customers[:i:i], st.Customers[i+1:]...)
		r.s.touch(colCustomers)
		return nil
	})
}

func (r *customerRepository) List(ctx context.Context, params *domainRepo.PartyFilterParams) ([]entity.Customer, int64, error) {
	search := strings.TrimSpace(params.Search)
	code, codeErr := strconv.Atoi(search)

	var matched []entity.Customer
	err := r.s.view(ctx, func(st *state) error {
		for _, c := range st.Customers {
			if codeErr == nil && c.CustomerCode == code {
				matched = append(matched, c)
				continue
			}
			if matchesAny(search, c.Name, c.Email, c.Phone) {
				matched = append(matched, c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].CustomerCode < matched[j].CustomerCode })
	items, total := page(matched, params.Pagination)
	return items, total, nil
}

type supplierRepository struct {
	s *Store
}

// NewSupplierRepository creates a supplier repository over the file store
func NewSupplierRepository(s *Store) domainRepo.SupplierRepository {
	return &supplierRepository{s: s}
}

func (st *state) supplierIndex(id uint) int {
	for i := range st.Suppliers {
		if st.Suppliers[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return r.s.update(ctx, func(st *state) error {
		var highest uint
		for _, sp := range st.Suppliers {
			if sp.ID > highest {
				highest = sp.ID
			}
		}
		now := r.s.now()
		supplier.ID = r.s.nextID(st, colSuppliers, highest)
		supplier.CreatedAt = now
		supplier.UpdatedAt = now
		st.Suppliers = append(st.Suppliers, *supplier)
		r.s.touch(colSuppliers)
		return nil
	})
}

func (r *supplierRepository) GetByID(ctx context.Context, id uint) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.s.view(ctx, func(st *state) error {
		if i := st.supplierIndex(id); i >= 0 {
			sp := st.Suppliers[i]
			out = &sp
		}
		return nil
	})
	return out, err
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return r.s.update(ctx, func(st *state) error {
		i := st.supplierIndex(supplier.ID)
		if i < 0 {
			return domainRepo.ErrNotFound
		}
		supplier.CreatedAt = st.Suppliers[i].CreatedAt
		supplier.UpdatedAt = r.s.now()
		st.Suppliers[i] = *supplier
		r.s.touch(colSuppliers)
		return nil
	})
}

func (r *supplierRepository) Delete(ctx context.Context, id uint) error {
	return r.s.update(ctx, func(st *state) error {
		i := st.supplierIndex(id)
		if i < 0 {
			return domainRepo.ErrNotFound
		}
		st.Suppliers = append(st.Suppliers[:i:i], st.Suppliers[i+1:]...)
		r.s.touch(colSuppliers)
		return nil
	})
}

func (r *supplierRepository) List(ctx context.Context, params *domainRepo.PartyFilterParams) ([]entity.Supplier, int64, error) {
	search := strings.TrimSpace(params.Search)

	var matched []entity.Supplier
	err := r.s.view(ctx, func(st *state) error {
		for _, sp := range st.Suppliers {
			if matchesAny(search, sp.Name, sp.Email, sp.Phone) {
				matched = append(matched, sp)
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	items, total := page(matched, params.Pagination)
	return items, total, nil
}
