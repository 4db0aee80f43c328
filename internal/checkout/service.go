package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetslice/storefront/internal/cart"
	"github.com/sweetslice/storefront/internal/checkout/helpers"
	"github.com/sweetslice/storefront/internal/orders"
	"github.com/sweetslice/storefront/pkg/enums"
	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
	"github.com/sweetslice/storefront/pkg/logger"
	"github.com/sweetslice/storefront/pkg/types"
	"github.com/sweetslice/storefront/pkg/validation"
)

// Step names one page of the checkout form.
type Step string

const (
	StepContact  Step = "contact"
	StepDelivery Step = "delivery"
)

func ParseStep(value string) (Step, error) {
	switch Step(strings.ToLower(strings.TrimSpace(value))) {
	case StepContact:
		return StepContact, nil
	case StepDelivery:
		return StepDelivery, nil
	}
	return "", fmt.Errorf("invalid checkout step %q", value)
}

// Draft is the submitted checkout form.
type Draft struct {
	helpers.ContactInfo
	helpers.DeliveryInfo
}

// Quote is the price breakdown of the current cart for a delivery method.
type Quote struct {
	DeliveryMethod enums.DeliveryMethod
	Subtotal       decimal.Decimal
	DeliveryFee    decimal.Decimal
	Total          decimal.Decimal
	TotalItems     int
	LineCount      int
}

type QuoteDTO struct {
	DeliveryMethod string `json:"delivery_method"`
	Subtotal       string `json:"subtotal"`
	DeliveryFee    string `json:"delivery_fee"`
	Total          string `json:"total_amount"`
	TotalItems     int    `json:"total_items"`
	LineCount      int    `json:"line_count"`
}

func NewQuoteDTO(q Quote) QuoteDTO {
	return QuoteDTO{
		DeliveryMethod: q.DeliveryMethod.String(),
		Subtotal:       types.FormatMoney(q.Subtotal),
		DeliveryFee:    types.FormatMoney(q.DeliveryFee),
		Total:          types.FormatMoney(q.Total),
		TotalItems:     q.TotalItems,
		LineCount:      q.LineCount,
	}
}

type Service interface {
	Validate(ctx context.Context, step Step, draft Draft) error
	Quote(ctx context.Context, session string, method enums.DeliveryMethod) (*Quote, error)
	PlaceOrder(ctx context.Context, session string, draft Draft) (*orders.Order, error)
}

type cartReader interface {
	Get(ctx context.Context, session string) (*cart.View, error)
	RemoveOrdered(ctx context.Context, session string, ordered []cart.LineItem) (*cart.View, error)
}

type orderPlacer interface {
	Place(ctx context.Context, draft orders.Draft) (*orders.Order, error)
	FeeFor(method enums.DeliveryMethod) decimal.Decimal
}

type service struct {
	carts  cartReader
	orders orderPlacer
	logg   *logger.Logger
	now    func() time.Time
}

func NewService(carts cartReader, placer orderPlacer, logg *logger.Logger, clock func() time.Time) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if placer == nil {
		return nil, fmt.Errorf("orders service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if clock == nil {
		clock = time.Now
	}
	return &service{carts: carts, orders: placer, logg: logg, now: clock}, nil
}

func (s *service) Validate(ctx context.Context, step Step, draft Draft) error {
	switch step {
	case StepContact:
		return helpers.ValidateContact(draft.ContactInfo)
	case StepDelivery:
		return helpers.ValidateDelivery(draft.DeliveryInfo, s.now())
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "unknown checkout step").
		WithDetails(map[string]string{"step": "must be one of contact delivery"})
}

func (s *service) Quote(ctx context.Context, session string, method enums.DeliveryMethod) (*Quote, error) {
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery method").
			WithDetails(map[string]string{"delivery_method": "must be one of pickup delivery"})
	}
	view, err := s.carts.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	fee := s.orders.FeeFor(method)
	return &Quote{
		DeliveryMethod: method,
		Subtotal:       view.TotalAmount,
		DeliveryFee:    fee,
		Total:          types.RoundCurrency(view.TotalAmount.Add(fee)),
		TotalItems:     view.TotalItems,
		LineCount:      view.LineCount,
	}, nil
}

// PlaceOrder validates both steps, records the order from the cart snapshot and then takes
// exactly the ordered lines out of the cart. A failed removal does not undo the order.
func (s *service) PlaceOrder(ctx context.Context, session string, draft Draft) (*orders.Order, error) {
	fields := validation.Fields{}
	if err := fields.Merge(helpers.ValidateContact(draft.ContactInfo)); err != nil {
		return nil, err
	}
	if err := fields.Merge(helpers.ValidateDelivery(draft.DeliveryInfo, s.now())); err != nil {
		return nil, err
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	view, err := s.carts.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	if view.LineCount == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty").
			WithDetails(map[string]string{"items": "cart is empty"})
	}

	method, _ := enums.ParseDeliveryMethod(draft.DeliveryMethod)
	order, err := s.orders.Place(ctx, toOrderDraft(draft, method, view.Items))
	if err != nil {
		return nil, err
	}

	if _, err := s.carts.RemoveOrdered(ctx, session, view.Items); err != nil {
		logCtx := s.logg.WithFields(s.logg.WithCartSession(ctx, session), map[string]any{
			"order_code": order.OrderCode,
		})
		s.logg.Error(logCtx, "order placed but cart could not be cleared", err)
	}
	return order, nil
}

func toOrderDraft(draft Draft, method enums.DeliveryMethod, lines []cart.LineItem) orders.Draft {
	items := make(orders.Items, 0, len(lines))
	for _, l := range lines {
		items = append(items, orders.Item{
			LineID:        l.LineID,
			ProductID:     l.ProductID,
			ProductName:   l.ProductName,
			Quantity:      l.Quantity,
			Size:          l.Size,
			Flavor:        l.Flavor,
			CustomMessage: l.CustomMessage,
			Price:         l.Price,
		})
	}
	out := orders.Draft{
		CustomerName:        strings.TrimSpace(draft.CustomerName),
		Email:               strings.TrimSpace(draft.Email),
		Phone:               strings.TrimSpace(draft.Phone),
		DeliveryMethod:      method,
		DeliveryDate:        draft.DeliveryDate,
		DeliveryTime:        draft.DeliveryTime,
		SpecialInstructions: strings.TrimSpace(draft.SpecialInstructions),
		Items:               items,
	}
	if method.ChargesFee() {
		out.Address = strings.TrimSpace(draft.Address)
		out.City = strings.TrimSpace(draft.City)
		out.ZipCode = strings.TrimSpace(draft.ZipCode)
	}
	return out
}
