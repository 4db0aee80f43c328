package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetslice/storefront/pkg/enums"
	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
	"github.com/sweetslice/storefront/pkg/logger"
	"github.com/sweetslice/storefront/pkg/metrics"
	"github.com/sweetslice/storefront/pkg/types"
)

type Service interface {
	Place(ctx context.Context, draft Draft) (*Order, error)
	Get(ctx context.Context, id int64) (*Order, error)
	GetByCode(ctx context.Context, code string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	ListByCustomer(ctx context.Context, email string) ([]Order, error)
	// FeeFor is the delivery fee charged for method.
	FeeFor(method enums.DeliveryMethod) decimal.Decimal
}

type Options struct {
	DeliveryFee decimal.Decimal
	Clock       func() time.Time
}

type service struct {
	repo    Repository
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
	fee     decimal.Decimal
	now     func() time.Time
}

func NewService(repo Repository, logg *logger.Logger, m *metrics.StorefrontMetrics, opts Options) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if opts.DeliveryFee.IsNegative() {
		return nil, fmt.Errorf("delivery fee must not be negative")
	}
	svc := &service{repo: repo, logg: logg, metrics: m, fee: opts.DeliveryFee, now: opts.Clock}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc, nil
}

func (s *service) FeeFor(method enums.DeliveryMethod) decimal.Decimal {
	if method.ChargesFee() {
		return s.fee
	}
	return decimal.Zero
}

// Place stores draft as a new pending order. The draft is trusted as-is.
func (s *service) Place(ctx context.Context, draft Draft) (*Order, error) {
	now := s.now().UTC()
	subtotal := draft.Items.Subtotal()
	fee := s.FeeFor(draft.DeliveryMethod)

	order := &Order{
		CustomerName:        draft.CustomerName,
		Email:               draft.Email,
		Phone:               draft.Phone,
		DeliveryMethod:      draft.DeliveryMethod,
		DeliveryDate:        draft.DeliveryDate,
		DeliveryTime:        draft.DeliveryTime,
		Address:             draft.Address,
		City:                draft.City,
		ZipCode:             draft.ZipCode,
		SpecialInstructions: draft.SpecialInstructions,
		Items:               append(Items{}, draft.Items...),
		Subtotal:            subtotal,
		DeliveryFee:         fee,
		TotalAmount:         types.RoundCurrency(subtotal.Add(fee)),
		Status:              enums.OrderStatusPending,
		CreatedAt:           now,
	}

	err := s.repo.Insert(ctx, order, func(o *Order, id int64) {
		o.ID = id
		o.OrderCode = Code(now.Year(), id)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist order")
	}

	s.metrics.OrderPlaced(order.DeliveryMethod.String(), order.TotalAmount)
	logCtx := s.logg.WithFields(ctx, map[string]any{
		"order_code":      order.OrderCode,
		"delivery_method": order.DeliveryMethod,
		"total_amount":    types.FormatMoney(order.TotalAmount),
	})
	s.logg.Info(logCtx, "order placed")
	return order, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Order, error) {
	order, found, err := s.repo.FindByID(ctx, id)
	return s.found(order, found, err)
}

func (s *service) GetByCode(ctx context.Context, code string) (*Order, error) {
	order, found, err := s.repo.FindByCode(ctx, code)
	return s.found(order, found, err)
}

func (s *service) List(ctx context.Context) ([]Order, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return out, nil
}

func (s *service) ListByCustomer(ctx context.Context, email string) ([]Order, error) {
	out, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list customer orders")
	}
	return out, nil
}

func (s *service) found(order *Order, found bool, err error) (*Order, error) {
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}
