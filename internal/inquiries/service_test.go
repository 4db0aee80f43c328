package inquiries

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
	"github.com/sweetslice/storefront/pkg/logger"
	"github.com/sweetslice/storefront/pkg/metrics"
)

func newTestService(t *testing.T, reg prometheus.Registerer) Service {
	t.Helper()
	svc, err := NewService(logger.Nop(), metrics.NewStorefrontMetrics(reg), func() time.Time {
		return time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func validRequest() CustomRequest {
	return CustomRequest{
		CustomerName: "Grace",
		Email:        "grace@example.com",
		Phone:        "555-0123",
		EventType:    "Wedding",
		CakeType:     "Tiered Cake",
		ServingSize:  "100+ people",
		DeliveryDate: "2026-06-20",
		Budget:       "$1000+",
		Description:  "Three tiers, lemon and elderflower",
	}
}

func TestSubmitContact(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	inquiry, err := svc.SubmitContact(ctx, ContactMessage{Name: "Ada", Email: "ada@example.com", Message: "Do you deliver on Sundays?"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if inquiry.Kind != KindContact || inquiry.Contact == nil || inquiry.SubmittedAt.IsZero() {
		t.Fatalf("unexpected inquiry %+v", inquiry)
	}

	_, err = svc.SubmitContact(ctx, ContactMessage{Name: "Ada", Email: "ada@example.com"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected missing message to fail, got %v", err)
	}
}

func TestSubmitCustomRequestOptions(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	if _, err := svc.SubmitCustomRequest(ctx, validRequest()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	minimal := validRequest()
	minimal.CakeType, minimal.ServingSize, minimal.Budget = "", "", ""
	if _, err := svc.SubmitCustomRequest(ctx, minimal); err != nil {
		t.Fatalf("optional selects may be empty: %v", err)
	}

	cases := map[string]func(*CustomRequest){
		"event_type":    func(r *CustomRequest) { r.EventType = "Bar Mitzvah Party" },
		"cake_type":     func(r *CustomRequest) { r.CakeType = "Pie" },
		"serving_size":  func(r *CustomRequest) { r.ServingSize = "5 people" },
		"budget":        func(r *CustomRequest) { r.Budget = "$5" },
		"delivery_date": func(r *CustomRequest) { r.DeliveryDate = "next week" },
		"description":   func(r *CustomRequest) { r.Description = "  " },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			req := validRequest()
			mutate(&req)
			_, err := svc.SubmitCustomRequest(ctx, req)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := typed.Details().(map[string]string)[field]; !ok {
				t.Fatalf("expected %s in details, got %v", field, typed.Details())
			}
		})
	}
}

func TestListFiltersByKind(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := newTestService(t, reg)
	ctx := context.Background()

	if _, err := svc.SubmitContact(ctx, ContactMessage{Name: "A", Email: "a@example.com", Message: "hi"}); err != nil {
		t.Fatalf("contact: %v", err)
	}
	if _, err := svc.SubmitCustomRequest(ctx, validRequest()); err != nil {
		t.Fatalf("custom: %v", err)
	}

	all, _ := svc.List(ctx, "")
	custom, _ := svc.List(ctx, KindCustomOrder)
	if len(all) != 2 || len(custom) != 1 || custom[0].CustomOrder == nil {
		t.Fatalf("unexpected listings all=%d custom=%d", len(all), len(custom))
	}
	if got, err := testutil.GatherAndCount(reg, "sweetslice_inquiries_total"); err != nil || got != 2 {
		t.Fatalf("expected two inquiry series, got %d", got)
	}
}

func TestFormOptionsAreCopies(t *testing.T) {
	opts := FormOptions()
	opts.EventTypes[0] = "changed"
	if EventTypes[0] != "Birthday Party" {
		t.Fatal("FormOptions must not expose the package lists")
	}
}

func TestPruneDropsOldSubmissions(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc, err := NewService(logger.Nop(), nil, func() time.Time { return now })
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()
	msg := ContactMessage{Name: "Ada", Email: "ada@example.com", Message: "hello"}
	if _, err := svc.SubmitContact(ctx, msg); err != nil {
		t.Fatalf("submit: %v", err)
	}
	now = now.Add(100 * 24 * time.Hour)
	if _, err := svc.SubmitCustomRequest(ctx, validRequest()); err != nil {
		t.Fatalf("submit custom: %v", err)
	}

	removed, err := svc.Prune(ctx, now.Add(-90*24*time.Hour))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected one pruned inquiry, got %d", removed)
	}
	left, _ := svc.List(ctx, "")
	if len(left) != 1 || left[0].Kind != KindCustomOrder {
		t.Fatalf("unexpected remaining inquiries %+v", left)
	}
}
