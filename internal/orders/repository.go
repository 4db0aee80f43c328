package orders

import (
	"context"
	"fmt"
	"sync"

	"github.com/sweetslice/storefront/pkg/seed"
)

// Repository stores placed orders. Insert assigns the next id (max existing + 1) and calls
// stamp with it before the record is written, all under one lock or transaction.
type Repository interface {
	Insert(ctx context.Context, order *Order, stamp func(order *Order, id int64)) error
	FindByID(ctx context.Context, id int64) (*Order, bool, error)
	FindByCode(ctx context.Context, code string) (*Order, bool, error)
	List(ctx context.Context) ([]Order, error)
	ListByEmail(ctx context.Context, email string) ([]Order, error)
}

// MemoryRepository keeps orders for the lifetime of the process.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
}

func NewMemoryRepository(seeded []Order) *MemoryRepository {
	copied := make([]Order, 0, len(seeded))
	for _, o := range seeded {
		copied = append(copied, o.clone())
	}
	return &MemoryRepository{orders: copied}
}

// LoadSeed reads the bundled order history, or overridePath when set.
func LoadSeed(overridePath string) ([]Order, error) {
	var seeded []Order
	if err := seed.Load(overridePath, seed.OrdersFile, &seeded); err != nil {
		return nil, err
	}
	ids := make(map[int64]struct{}, len(seeded))
	codes := make(map[string]struct{}, len(seeded))
	for i, o := range seeded {
		if o.ID <= 0 {
			return nil, fmt.Errorf("seed order %d: id must be positive", i)
		}
		if _, dup := ids[o.ID]; dup {
			return nil, fmt.Errorf("seed order %d: duplicate id %d", i, o.ID)
		}
		if _, dup := codes[o.OrderCode]; dup || o.OrderCode == "" {
			return nil, fmt.Errorf("seed order %d: missing or duplicate order code %q", i, o.OrderCode)
		}
		if !o.DeliveryMethod.IsValid() || !o.Status.IsValid() {
			return nil, fmt.Errorf("seed order %d: unknown delivery method or status", i)
		}
		ids[o.ID] = struct{}{}
		codes[o.OrderCode] = struct{}{}
	}
	return seeded, nil
}

func (r *MemoryRepository) Insert(ctx context.Context, order *Order, stamp func(*Order, int64)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var maxID int64
	for _, o := range r.orders {
		if o.ID > maxID {
			maxID = o.ID
		}
	}
	stamp(order, maxID+1)
	r.orders = append(r.orders, order.clone())
	return nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id int64) (*Order, bool, error) {
	return r.find(ctx, func(o Order) bool { return o.ID == id })
}

func (r *MemoryRepository) FindByCode(ctx context.Context, code string) (*Order, bool, error) {
	return r.find(ctx, func(o Order) bool { return o.OrderCode == code })
}

func (r *MemoryRepository) List(ctx context.Context) ([]Order, error) {
	return r.filter(ctx, func(Order) bool { return true })
}

// ListByEmail matches the address exactly.
func (r *MemoryRepository) ListByEmail(ctx context.Context, email string) ([]Order, error) {
	return r.filter(ctx, func(o Order) bool { return o.Email == email })
}

func (r *MemoryRepository) find(ctx context.Context, match func(Order) bool) (*Order, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if match(o) {
			out := o.clone()
			return &out, true, nil
		}
	}
	return nil, false, nil
}

func (r *MemoryRepository) filter(ctx context.Context, match func(Order) bool) ([]Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Order{}
	for _, o := range r.orders {
		if match(o) {
			out = append(out, o.clone())
		}
	}
	return out, nil
}
