package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sweetslice/storefront/pkg/config"
	"github.com/sweetslice/storefront/pkg/db"
	"github.com/sweetslice/storefront/pkg/enums"
	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
	"github.com/sweetslice/storefront/pkg/logger"
	"github.com/sweetslice/storefront/pkg/migrate"
)

func setupOrdersTestDB(t *testing.T) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migrate.Run(context.Background(), sqlDB, config.DBDriverSQLite, "up"))
	return db.Wrap(conn, config.DBDriverSQLite)
}

func TestGormRepositoryPlaceAndLookup(t *testing.T) {
	client := setupOrdersTestDB(t)
	svc, err := NewService(NewGormRepository(client), logger.Nop(), nil, Options{
		DeliveryFee: decimal.RequireFromString("8.99"),
		Clock:       func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	ctx := context.Background()

	first, err := svc.Place(ctx, SampleDraft(enums.DeliveryMethodDelivery))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "ORD-2026-001", first.OrderCode)

	second, err := svc.Place(ctx, SampleDraft(enums.DeliveryMethodPickup))
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)

	loaded, err := svc.GetByCode(ctx, "ORD-2026-001")
	require.NoError(t, err)
	assert.Equal(t, "33.99", loaded.TotalAmount.StringFixed(2))
	assert.Equal(t, "8.99", loaded.DeliveryFee.StringFixed(2))
	assert.Equal(t, enums.DeliveryMethodDelivery, loaded.DeliveryMethod)
	assert.Equal(t, enums.OrderStatusPending, loaded.Status)
	require.Len(t, loaded.Items, 2)
	assert.Equal(t, "Chocolate Cake", loaded.Items[0].ProductName)
	assert.Equal(t, "10.00", loaded.Items[0].Price.StringFixed(2))

	byID, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.True(t, byID.DeliveryFee.IsZero())

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListByCustomer(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := svc.ListByCustomer(ctx, "other@example.com")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGormRepositoryMissingOrder(t *testing.T) {
	repo := NewGormRepository(setupOrdersTestDB(t))

	order, found, err := repo.FindByID(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, order)
}

func TestGormRepositoryDuplicateCodeIsConflict(t *testing.T) {
	repo := NewGormRepository(setupOrdersTestDB(t))
	ctx := context.Background()

	stamp := func(o *Order, id int64) {
		o.ID = id
		o.OrderCode = "ORD-2026-001"
	}
	first := &Order{Status: enums.OrderStatusPending, DeliveryMethod: enums.DeliveryMethodPickup, CreatedAt: fixedNow}
	require.NoError(t, repo.Insert(ctx, first, stamp))

	second := &Order{Status: enums.OrderStatusPending, DeliveryMethod: enums.DeliveryMethodPickup, CreatedAt: fixedNow}
	err := repo.Insert(ctx, second, stamp)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}
