package cart

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetslice/storefront/pkg/enums"
	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
	"github.com/sweetslice/storefront/pkg/types"
)

// DefaultMaxLineQuantity caps the quantity a single cart line may hold.
const DefaultMaxLineQuantity = 99

func quantityTooLarge(max int) error {
	return pkgerrors.Newf(pkgerrors.CodeValidation, "quantity may not exceed %d per line", max).
		WithDetails(map[string]string{"quantity": fmt.Sprintf("must be at most %d", max)})
}

// LineItem is one product configuration in a cart. Price is the unit price copied at add time.
type LineItem struct {
	LineID        string          `json:"line_id"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	Size          string          `json:"size"`
	Flavor        string          `json:"flavor"`
	CustomMessage string          `json:"custom_message"`
	Price         decimal.Decimal `json:"price"`
}

// sameConfiguration compares the merge identity: product, size, flavor and message.
func (l LineItem) sameConfiguration(other LineItem) bool {
	return l.ProductID == other.ProductID &&
		l.Size == other.Size &&
		l.Flavor == other.Flavor &&
		l.CustomMessage == other.CustomMessage
}

// LineTotal is unit price times quantity.
func (l LineItem) LineTotal() decimal.Decimal {
	return types.LineTotal(l.Price, l.Quantity)
}

// View is a cart with its derived totals, recomputed on every read.
type View struct {
	Session     string          `json:"session"`
	Items       []LineItem      `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalItems  int             `json:"total_items"`
	LineCount   int             `json:"line_count"`
}

func newView(session string, items []LineItem) *View {
	if items == nil {
		items = []LineItem{}
	}
	return &View{
		Session:     session,
		Items:       items,
		TotalAmount: TotalAmount(items),
		TotalItems:  TotalItemCount(items),
		LineCount:   len(items),
	}
}

// TotalAmount sums unit price times quantity and rounds to cents.
func TotalAmount(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return types.RoundCurrency(total)
}

// TotalItemCount sums quantities, which differs from the number of lines.
func TotalItemCount(items []LineItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// Merge folds candidate into items. A line with the same configuration gains the candidate's
// quantity; otherwise the candidate is appended under newLineID. A resulting line above
// maxQuantity is a validation error. items is not modified.
func Merge(items []LineItem, candidate LineItem, newLineID string, maxQuantity int) ([]LineItem, error) {
	if maxQuantity <= 0 {
		maxQuantity = DefaultMaxLineQuantity
	}
	if candidate.Quantity > maxQuantity {
		return nil, quantityTooLarge(maxQuantity)
	}
	out := make([]LineItem, len(items), len(items)+1)
	copy(out, items)
	for i := range out {
		if !out[i].sameConfiguration(candidate) {
			continue
		}
		// Compared by subtraction so oversized stored quantities cannot overflow.
		if out[i].Quantity > maxQuantity-candidate.Quantity {
			return nil, quantityTooLarge(maxQuantity)
		}
		out[i].Quantity += candidate.Quantity
		return out, nil
	}
	candidate.LineID = newLineID
	return append(out, candidate), nil
}

// Deduct takes the quantities of ordered out of items, matched by line id. Lines that reach
// zero are dropped; lines added or grown after ordered was read keep the difference.
func Deduct(items, ordered []LineItem) []LineItem {
	taken := make(map[string]int, len(ordered))
	for _, o := range ordered {
		taken[o.LineID] += o.Quantity
	}
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		item.Quantity -= taken[item.LineID]
		if item.Quantity > 0 {
			out = append(out, item)
		}
	}
	return out
}

// Event announces that a cart session changed.
type Event struct {
	Session     string              `json:"session"`
	Kind        enums.CartEventKind `json:"kind"`
	TotalItems  int                 `json:"total_items"`
	TotalAmount string              `json:"total_amount"`
	LineCount   int                 `json:"line_count"`
	At          time.Time           `json:"at"`
	Origin      string              `json:"origin,omitempty"`
}

func newEvent(view *View, kind enums.CartEventKind, at time.Time) Event {
	return Event{
		Session:     view.Session,
		Kind:        kind,
		TotalItems:  view.TotalItems,
		TotalAmount: types.FormatMoney(view.TotalAmount),
		LineCount:   view.LineCount,
		At:          at.UTC(),
	}
}
