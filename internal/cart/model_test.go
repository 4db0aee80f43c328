package cart

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
)

func line(id, product string, qty int, price string) LineItem {
	return LineItem{
		LineID:      id,
		ProductID:   product,
		ProductName: "Product " + product,
		Quantity:    qty,
		Size:        "6 inch",
		Flavor:      "Chocolate",
		Price:       decimal.RequireFromString(price),
	}
}

func TestTotals(t *testing.T) {
	items := []LineItem{line("a", "1", 2, "10.00"), line("b", "2", 1, "5.00")}

	if got := TotalAmount(items); got.StringFixed(2) != "25.00" {
		t.Fatalf("expected 25.00, got %s", got)
	}
	if got := TotalItemCount(items); got != 3 {
		t.Fatalf("expected 3 items, got %d", got)
	}
	if got := TotalAmount(nil); !got.IsZero() {
		t.Fatalf("expected zero total for empty cart, got %s", got)
	}
}

func TestTotalAmountRoundsToCents(t *testing.T) {
	items := []LineItem{line("a", "1", 3, "3.335")}
	if got := TotalAmount(items); got.StringFixed(2) != "10.01" {
		t.Fatalf("expected 10.01, got %s", got.StringFixed(2))
	}
}

func TestMergeSameConfigurationIncrementsQuantity(t *testing.T) {
	items := []LineItem{line("a", "1", 1, "10.00")}
	candidate := line("", "1", 2, "10.00")

	merged, err := Merge(items, candidate, "new", 0)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(merged) != 1 {
		t.Fatalf("expected one line, got %d", len(merged))
	}
	if merged[0].Quantity != 3 || merged[0].LineID != "a" {
		t.Fatalf("expected line a with quantity 3, got %+v", merged[0])
	}
	if items[0].Quantity != 1 {
		t.Fatalf("input slice mutated: %+v", items[0])
	}
}

func TestMergeDifferentConfigurationAppends(t *testing.T) {
	items := []LineItem{line("a", "1", 1, "10.00")}

	tests := []struct {
		name   string
		mutate func(*LineItem)
	}{
		{name: "size", mutate: func(l *LineItem) { l.Size = "8 inch" }},
		{name: "flavor", mutate: func(l *LineItem) { l.Flavor = "Vanilla" }},
		{name: "message", mutate: func(l *LineItem) { l.CustomMessage = "Happy Birthday" }},
		{name: "product", mutate: func(l *LineItem) { l.ProductID = "2" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := line("", "1", 1, "10.00")
			tt.mutate(&candidate)

			merged, err := Merge(items, candidate, "new", 0)
			if err != nil {
				t.Fatalf("merge: %v", err)
			}
			if len(merged) != 2 {
				t.Fatalf("expected two lines, got %d", len(merged))
			}
			if merged[1].LineID != "new" {
				t.Fatalf("expected appended line to take the new id, got %q", merged[1].LineID)
			}
		})
	}
}

func TestMergeRefusesQuantityAboveCap(t *testing.T) {
	items := []LineItem{line("a", "1", 98, "10.00")}

	merged, err := Merge(items, line("", "1", 1, "10.00"), "new", 99)
	if err != nil || merged[0].Quantity != 99 {
		t.Fatalf("expected a line at the cap, got %+v err=%v", merged, err)
	}
	for _, qty := range []int{2, math.MaxInt} {
		if _, err := Merge(items, line("", "1", qty, "10.00"), "new", 99); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("quantity %d: expected validation error, got %v", qty, err)
		}
	}
	if items[0].Quantity != 98 {
		t.Fatalf("input slice mutated: %+v", items[0])
	}
}

func TestDeductKeepsLaterAdditions(t *testing.T) {
	ordered := []LineItem{line("a", "1", 2, "10.00"), line("b", "2", 1, "5.00")}
	current := []LineItem{
		line("a", "1", 3, "10.00"),
		line("b", "2", 1, "5.00"),
		line("c", "3", 1, "4.00"),
	}

	left := Deduct(current, ordered)
	if len(left) != 2 || left[0].LineID != "a" || left[0].Quantity != 1 || left[1].LineID != "c" {
		t.Fatalf("unexpected remainder %+v", left)
	}
	if len(Deduct(ordered, ordered)) != 0 {
		t.Fatal("deducting a snapshot from itself should empty the cart")
	}
}

func TestNewViewDerivesCounts(t *testing.T) {
	view := newView("s1", []LineItem{line("a", "1", 2, "10.00"), line("b", "2", 4, "5.00")})
	if view.LineCount != 2 || view.TotalItems != 6 {
		t.Fatalf("unexpected counts %+v", view)
	}
	if view.TotalAmount.StringFixed(2) != "40.00" {
		t.Fatalf("unexpected total %s", view.TotalAmount)
	}

	empty := newView("s2", nil)
	if empty.Items == nil || len(empty.Items) != 0 {
		t.Fatalf("expected non-nil empty items")
	}
}
