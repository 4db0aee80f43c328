package cart

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"

	"github.com/sweetslice/storefront/internal/catalog"
	"github.com/sweetslice/storefront/pkg/enums"
	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
	"github.com/sweetslice/storefront/pkg/logger"
	"github.com/sweetslice/storefront/pkg/metrics"
	"github.com/sweetslice/storefront/pkg/validation"
)

const DefaultMessageMaxLength = 100

// sharedLoadTimeout bounds a read shared by concurrent Get calls, which outlives any single caller.
const sharedLoadTimeout = 10 * time.Second

// Service manages carts keyed by session id.
type Service interface {
	Get(ctx context.Context, session string) (*View, error)
	Add(ctx context.Context, session string, input AddItemInput) (*View, error)
	UpdateQuantity(ctx context.Context, session, lineID string, quantity int) (*View, error)
	Remove(ctx context.Context, session, lineID string) (*View, error)
	RemoveProduct(ctx context.Context, session, productID string) (*View, error)
	Clear(ctx context.Context, session string) (*View, error)
	RemoveOrdered(ctx context.Context, session string, ordered []LineItem) (*View, error)
	NotifyExternal(ctx context.Context, session string) error
}

// AddItemInput describes the configuration a shopper adds. Name and price come from the catalog.
type AddItemInput struct {
	ProductID     string `json:"product_id" validate:"notblank"`
	Quantity      int    `json:"quantity" validate:"gte=1"`
	Size          string `json:"size" validate:"notblank"`
	Flavor        string `json:"flavor" validate:"notblank"`
	CustomMessage string `json:"custom_message"`
}

// ProductLookup resolves catalog products for add-time snapshots.
type ProductLookup interface {
	Find(ctx context.Context, id int64) (*catalog.Product, error)
}

type Options struct {
	MessageMaxLength int
	MaxLineQuantity  int
	Clock            func() time.Time
	NewLineID        func() string
}

type service struct {
	store     Store
	products  ProductLookup
	publisher Publisher
	logg      *logger.Logger
	metrics   *metrics.StorefrontMetrics

	maxMessage  int
	maxQuantity int
	now         func() time.Time
	newLineID   func() string

	locks sessionLocks
	reads singleflight.Group
}

func NewService(store Store, products ProductLookup, publisher Publisher, logg *logger.Logger, m *metrics.StorefrontMetrics, opts Options) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product lookup required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("event publisher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	svc := &service{
		store:       store,
		products:    products,
		publisher:   publisher,
		logg:        logg,
		metrics:     m,
		maxMessage:  opts.MessageMaxLength,
		maxQuantity: opts.MaxLineQuantity,
		now:         opts.Clock,
		newLineID:   opts.NewLineID,
	}
	if svc.maxMessage <= 0 {
		svc.maxMessage = DefaultMessageMaxLength
	}
	if svc.maxQuantity <= 0 {
		svc.maxQuantity = DefaultMaxLineQuantity
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.newLineID == nil {
		svc.newLineID = NewSession
	}
	return svc, nil
}

// Get reads the cart. Concurrent reads of one session share a single store round-trip that
// is detached from any one caller, so a caller going away only ends its own wait.
func (s *service) Get(ctx context.Context, session string) (*View, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}
	ch := s.reads.DoChan(session, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLoadTimeout)
		defer cancel()
		return s.load(loadCtx, session)
	})
	select {
	case <-ctx.Done():
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, ctx.Err(), "load cart")
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		items := append([]LineItem(nil), res.Val.([]LineItem)...)
		return newView(session, items), nil
	}
}

func (s *service) Add(ctx context.Context, session string, input AddItemInput) (*View, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}
	candidate, err := s.candidateFor(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, session, enums.CartEventAdded, func(items []LineItem) ([]LineItem, error) {
		return Merge(items, candidate, s.newLineID(), s.maxQuantity)
	})
}

// UpdateQuantity sets a line's quantity. Quantities below one are rejected and nothing is written.
func (s *service) UpdateQuantity(ctx context.Context, session, lineID string, quantity int) (*View, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
			WithDetails(map[string]string{"quantity": "must be greater than or equal to 1"})
	}
	if quantity > s.maxQuantity {
		return nil, quantityTooLarge(s.maxQuantity)
	}
	return s.mutate(ctx, session, enums.CartEventUpdated, func(items []LineItem) ([]LineItem, error) {
		for i := range items {
			if items[i].LineID == lineID {
				items[i].Quantity = quantity
				return items, nil
			}
		}
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	})
}

func (s *service) Remove(ctx context.Context, session, lineID string) (*View, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}
	return s.mutate(ctx, session, enums.CartEventRemoved, func(items []LineItem) ([]LineItem, error) {
		for i := range items {
			if items[i].LineID == lineID {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	})
}

// RemoveProduct drops every line for productID, whatever its size, flavor or message.
func (s *service) RemoveProduct(ctx context.Context, session, productID string) (*View, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}
	return s.mutate(ctx, session, enums.CartEventProductRemoved, func(items []LineItem) ([]LineItem, error) {
		kept := items[:0]
		for _, item := range items {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		return kept, nil
	})
}

func (s *service) Clear(ctx context.Context, session string) (*View, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}
	unlock := s.locks.lock(session)
	defer unlock()

	if err := s.store.Clear(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	view := newView(session, nil)
	s.announce(ctx, view, enums.CartEventCleared)
	return view, nil
}

// RemoveOrdered takes an order's lines out of the cart under the session lock. Anything added
// after the order's snapshot was read stays; an emptied cart is cleared from the store.
func (s *service) RemoveOrdered(ctx context.Context, session string, ordered []LineItem) (*View, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}
	unlock := s.locks.lock(session)
	defer unlock()

	items, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}
	items = Deduct(items, ordered)
	if len(items) == 0 {
		if err := s.store.Clear(ctx, session); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}
		view := newView(session, nil)
		s.announce(ctx, view, enums.CartEventCleared)
		return view, nil
	}
	if err := s.save(ctx, session, items); err != nil {
		return nil, err
	}
	view := newView(session, items)
	s.announce(ctx, view, enums.CartEventUpdated)
	return view, nil
}

// NotifyExternal publishes the current state of a cart that another process changed.
func (s *service) NotifyExternal(ctx context.Context, session string) error {
	view, err := s.Get(ctx, session)
	if err != nil {
		return err
	}
	s.publisher.Publish(ctx, newEvent(view, enums.CartEventExternal, s.now()))
	return nil
}

func (s *service) mutate(ctx context.Context, session string, kind enums.CartEventKind, apply func([]LineItem) ([]LineItem, error)) (*View, error) {
	unlock := s.locks.lock(session)
	defer unlock()

	items, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}
	items, err = apply(items)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, session, items); err != nil {
		return nil, err
	}

	view := newView(session, items)
	s.announce(ctx, view, kind)
	return view, nil
}

func (s *service) save(ctx context.Context, session string, items []LineItem) error {
	data, err := encodeItems(items)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, session, data); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

func (s *service) announce(ctx context.Context, view *View, kind enums.CartEventKind) {
	s.metrics.CartMutation(kind.String())
	s.publisher.Publish(ctx, newEvent(view, kind, s.now()))
}

// load returns the stored lines. A missing or unreadable value is an empty cart.
func (s *service) load(ctx context.Context, session string) ([]LineItem, error) {
	data, found, err := s.store.Get(ctx, session)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if !found {
		return []LineItem{}, nil
	}
	items, err := decodeItems(data)
	if err != nil {
		s.metrics.CartCorruption()
		logCtx := s.logg.WithFields(s.logg.WithCartSession(ctx, session), pkgerrors.Dump(err).Fields())
		s.logg.Warn(logCtx, "stored cart unreadable, treating as empty")
		return []LineItem{}, nil
	}
	return items, nil
}

func (s *service) candidateFor(ctx context.Context, input AddItemInput) (LineItem, error) {
	fields := validation.Fields{}
	if err := fields.Merge(validation.Struct(input)); err != nil {
		return LineItem{}, err
	}
	if input.Quantity > s.maxQuantity {
		fields.Add("quantity", fmt.Sprintf("must be at most %d", s.maxQuantity))
	}
	if utf8.RuneCountInString(input.CustomMessage) > s.maxMessage {
		fields.Add("custom_message", fmt.Sprintf("must be at most %d characters", s.maxMessage))
	}
	if err := fields.Err(); err != nil {
		return LineItem{}, err
	}

	id, ok := catalog.ParseID(strings.TrimSpace(input.ProductID))
	if !ok {
		return LineItem{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	product, err := s.products.Find(ctx, id)
	if err != nil {
		return LineItem{}, err
	}

	if !product.OffersSize(input.Size) {
		fields.Add("size", "is not offered for this product")
	}
	if !product.OffersFlavor(input.Flavor) {
		fields.Add("flavor", "is not offered for this product")
	}
	if input.CustomMessage != "" && !product.Customizable {
		fields.Add("custom_message", "this product does not take a custom message")
	}
	if err := fields.Err(); err != nil {
		return LineItem{}, err
	}

	return LineItem{
		ProductID:     product.Key(),
		ProductName:   product.Name,
		Quantity:      input.Quantity,
		Size:          input.Size,
		Flavor:        input.Flavor,
		CustomMessage: input.CustomMessage,
		Price:         product.BasePrice,
	}, nil
}

func checkSession(session string) error {
	if !ValidSession(session) {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid cart session").
			WithDetails(map[string]string{"session": "must be 1-64 letters, digits, '-' or '_'"})
	}
	return nil
}
