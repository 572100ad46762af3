package filestore

import (
	"context"
	"sort"

	"github.com/sangkips/billmaster-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billmaster-api/internal/domain/repository"
)

type productRepository struct {
	s *Store
}

// NewProductRepository creates a product repository over the file store
func NewProductRepository(s *Store) domainRepo.ProductRepository {
	return &productRepository{s: s}
}

func (st *state) productIndex(id uint) int {
	for i := range st.Products {
		if st.Products[i].ID == id {
			return i
		}
	}
	return -1
}

func (st *state) codeTaken(code string, exceptID uint) bool {
	for i := range st.Products {
		if st.Products[i].Code == code && st.Products[i].ID != exceptID {
			return true
		}
	}
	return false
}

func (st *state) maxProductID() uint {
	var highest uint
	for i := range st.Products {
		if st.Products[i].ID > highest {
			highest = st.Products[i].ID
		}
	}
	return highest
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.s.update(ctx, func(st *state) error {
		product.EnsureCode()
		if st.codeTaken(product.Code, 0) {
			return domainRepo.ErrDuplicate
		}
		now := r.s.now()
		product.ID = r.s.nextID(st, colProducts, st.maxProductID())
		product.CreatedAt = now
		product.UpdatedAt = now
		st.Products = append(st.Products, *product)
		r.s.touch(colProducts)
		return nil
	})
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.view(ctx, func(st *state) error {
		if i := st.productIndex(id); i >= 0 {
			p := st.Products[i]
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []uint) ([]entity.Product, error) {
	out := []entity.Product{}
	if len(ids) == 0 {
		return out, nil
	}
	wanted := make(map[uint]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	err := r.s.view(ctx, func(st *state) error {
		for _, p := range st.Products {
			if wanted[p.ID] {
				out = append(out, p)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.view(ctx, func(st *state) error {
		for _, p := range st.Products {
			if p.Code == code {
				found := p
				out = &found
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *productRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	err := r.s.view(ctx, func(st *state) error {
		out = append([]entity.Product{}, st.Products...)
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var matched []entity.Product
	err := r.s.view(ctx, func(st *state) error {
		for _, p := range st.Products {
			if !matchesAny(params.Search, p.Name, p.Code) {
				continue
			}
			if params.Category != "" && p.Category != params.Category {
				continue
			}
			if params.StockAtMost != nil && p.Stock > *params.StockAtMost {
				continue
			}
			matched = append(matched, p)
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

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.s.update(ctx, func(st *state) error {
		i := st.productIndex(product.ID)
		if i < 0 {
			return domainRepo.ErrNotFound
		}
		product.EnsureCode()
		if st.codeTaken(product.Code, product.ID) {
			return domainRepo.ErrDuplicate
		}
		product.CreatedAt = st.Products[i].CreatedAt
		product.UpdatedAt = r.s.now()
		st.Products[i] = *product
		r.s.touch(colProducts)
		return nil
	})
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return r.s.update(ctx, func(st *state) error {
		i := st.productIndex(id)
		if i < 0 {
			return domainRepo.ErrNotFound
		}
		st.Products = append(st.Products[:i:i], st.Products[i+1:]...)
		r.s.touch(colProducts)
		return nil
	})
}

func (r *productRepository) ApplyStockDelta(ctx context.Context, id uint, delta int) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.update(ctx, func(st *state) error {
		i := st.productIndex(id)
		if i < 0 {
			return domainRepo.ErrNotFound
		}
		p := st.Products[i]
		if p.Stock+delta < 0 {
			return domainRepo.ErrInsufficientStock
		}
		if p.Stock+delta > entity.MaxStock {
			return domainRepo.ErrStockLimit
		}
		p.Stock += delta
		p.UpdatedAt = r.s.now()
		st.Products[i] = p
		r.s.touch(colProducts)
		out = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productRepository) ReplaceAll(ctx context.Context, products []entity.Product) error {
	return r.s.update(ctx, func(st *state) error {
		seen := make(map[string]bool, len(products))
		for i := range products {
			products[i].EnsureCode()
			if seen[products[i].Code] {
				return domainRepo.ErrDuplicate
			}
			seen[products[i].Code] = true
		}

		now := r.s.now()
		floor := st.maxProductID()
		next := make([]entity.Product, 0, len(products))
		for i := range products {
			products[i].ID = r.s.nextID(st, colProducts, floor)
			products[i].CreatedAt = now
			products[i].UpdatedAt = now
			next = append(next, products[i])
		}
		st.Products = next
		r.s.touch(colProducts)
		return nil
	})
}
