package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/sweetslice/storefront/pkg/db"
	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormRepository struct {
	db *gorm.DB
	tx txRunner
}

// NewGormRepository builds a repository on the orders table created by the goose migrations.
func NewGormRepository(client *db.Client) Repository {
	return &gormRepository{db: client.DB(), tx: client}
}

func (r *gormRepository) Insert(ctx context.Context, order *Order, stamp func(*Order, int64)) error {
	err := r.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var maxID int64
		if err := tx.Model(&Order{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
			return err
		}
		stamp(order, maxID+1)
		return tx.Create(order).Error
	})
	if err == nil {
		return nil
	}
	// a concurrent insert took the same id or code
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order number already taken, retry")
	}
	return err
}

func (r *gormRepository) FindByID(ctx context.Context, id int64) (*Order, bool, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *gormRepository) FindByCode(ctx context.Context, code string) (*Order, bool, error) {
	return r.first(ctx, "order_code = ?", code)
}

func (r *gormRepository) List(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (r *gormRepository) ListByEmail(ctx context.Context, email string) ([]Order, error) {
	var out []Order
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (r *gormRepository) first(ctx context.Context, query string, arg any) (*Order, bool, error) {
	var order Order
	err := r.db.WithContext(ctx).Where(query, arg).First(&order).Error
	if db.IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &order, true, nil
}

func nonNil(in []Order) []Order {
	if in == nil {
		return []Order{}
	}
	return in
}
