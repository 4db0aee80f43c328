package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/sweetslice/storefront/pkg/seed"
)

// Repository stores products in menu order.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id int64) (*Product, bool, error)
	Create(ctx context.Context, product Product) (*Product, error)
	Update(ctx context.Context, product Product) (*Product, bool, error)
	Delete(ctx context.Context, id int64) (*Product, bool, error)
}

// MemoryRepository keeps the catalog in process memory. Changes are lost on restart.
type MemoryRepository struct {
	mu       sync.RWMutex
	products []Product
}

func NewMemoryRepository(products []Product) *MemoryRepository {
	copied := make([]Product, 0, len(products))
	for _, p := range products {
		copied = append(copied, p.clone())
	}
	return &MemoryRepository{products: copied}
}

// LoadSeed reads the bundled catalog, or overridePath when set, and checks every record.
func LoadSeed(overridePath string) ([]Product, error) {
	var products []Product
	if err := seed.Load(overridePath, seed.ProductsFile, &products); err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{}, len(products))
	for i, p := range products {
		if err := checkProduct(p); err != nil {
			return nil, fmt.Errorf("seed product %d: %w", i, err)
		}
		if p.ID <= 0 {
			return nil, fmt.Errorf("seed product %d: id must be positive", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("seed product %d: duplicate id %d", i, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return products, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p.clone())
	}
	return out, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id int64) (*Product, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, false, nil
	}
	found := r.products[idx].clone()
	return &found, true, nil
}

// Create assigns id = max existing + 1 and appends.
func (r *MemoryRepository) Create(ctx context.Context, product Product) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var maxID int64
	for _, p := range r.products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	product.ID = maxID + 1
	r.products = append(r.products, product.clone())
	created := product.clone()
	return &created, nil
}

func (r *MemoryRepository) Update(ctx context.Context, product Product) (*Product, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(product.ID)
	if idx < 0 {
		return nil, false, nil
	}
	r.products[idx] = product.clone()
	updated := product.clone()
	return &updated, true, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int64) (*Product, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, false, nil
	}
	deleted := r.products[idx]
	r.products = append(r.products[:idx], r.products[idx+1:]...)
	return &deleted, true, nil
}

func (r *MemoryRepository) indexOf(id int64) int {
	for i, p := range r.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
