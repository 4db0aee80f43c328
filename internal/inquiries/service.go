package inquiries

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sweetslice/storefront/pkg/logger"
	"github.com/sweetslice/storefront/pkg/metrics"
	"github.com/sweetslice/storefront/pkg/validation"
)

type Service interface {
	SubmitContact(ctx context.Context, msg ContactMessage) (*Inquiry, error)
	SubmitCustomRequest(ctx context.Context, req CustomRequest) (*Inquiry, error)
	List(ctx context.Context, kind Kind) ([]Inquiry, error)
	// Prune drops submissions received before cutoff and reports how many went.
	Prune(ctx context.Context, cutoff time.Time) (int, error)
}

type service struct {
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
	now     func() time.Time

	mu    sync.RWMutex
	items []Inquiry
}

func NewService(logg *logger.Logger, m *metrics.StorefrontMetrics, clock func() time.Time) (Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if clock == nil {
		clock = time.Now
	}
	return &service{logg: logg, metrics: m, now: clock}, nil
}

func (s *service) SubmitContact(ctx context.Context, msg ContactMessage) (*Inquiry, error) {
	if err := validation.Struct(msg); err != nil {
		return nil, err
	}
	return s.store(ctx, Inquiry{Kind: KindContact, Contact: &msg}), nil
}

func (s *service) SubmitCustomRequest(ctx context.Context, req CustomRequest) (*Inquiry, error) {
	fields := validation.Fields{}
	if err := fields.Merge(validation.Struct(req)); err != nil {
		return nil, err
	}
	checkOption(fields, "event_type", EventTypes, req.EventType, true)
	checkOption(fields, "cake_type", CakeTypes, req.CakeType, false)
	checkOption(fields, "serving_size", ServingSizes, req.ServingSize, false)
	checkOption(fields, "budget", BudgetRanges, req.Budget, false)
	if err := fields.Err(); err != nil {
		return nil, err
	}
	return s.store(ctx, Inquiry{Kind: KindCustomOrder, CustomOrder: &req}), nil
}

// List returns submissions oldest first. An empty kind lists everything.
func (s *service) List(ctx context.Context, kind Kind) ([]Inquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Inquiry{}
	for _, item := range s.items {
		if kind == "" || item.Kind == kind {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *service) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.SubmittedAt.Before(cutoff) {
			continue
		}
		kept = append(kept, item)
	}
	removed := len(s.items) - len(kept)
	clear(s.items[len(kept):])
	s.items = kept
	return removed, nil
}

func (s *service) store(ctx context.Context, inquiry Inquiry) *Inquiry {
	inquiry.ID = uuid.New()
	inquiry.SubmittedAt = s.now().UTC()

	s.mu.Lock()
	s.items = append(s.items, inquiry)
	s.mu.Unlock()

	s.metrics.Inquiry(string(inquiry.Kind))
	logCtx := s.logg.WithFields(ctx, map[string]any{
		"inquiry_id":   inquiry.ID.String(),
		"inquiry_kind": inquiry.Kind,
	})
	s.logg.Info(logCtx, "inquiry received")
	return &inquiry
}

func checkOption(fields validation.Fields, field string, allowed []string, value string, required bool) {
	if value == "" && !required {
		return
	}
	if !oneOf(allowed, value) {
		fields.Add(field, "must be one of the listed options")
	}
}
