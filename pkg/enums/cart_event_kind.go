package enums

import "fmt"

// CartEventKind names the mutation that produced a cart change notification.
type CartEventKind string

const (
	CartEventAdded          CartEventKind = "added"
	CartEventUpdated        CartEventKind = "updated"
	CartEventRemoved        CartEventKind = "removed"
	CartEventProductRemoved CartEventKind = "product_removed"
	CartEventCleared        CartEventKind = "cleared"
	CartEventExternal       CartEventKind = "external"
)

var validCartEventKinds = []CartEventKind{
	CartEventAdded,
	CartEventUpdated,
	CartEventRemoved,
	CartEventProductRemoved,
	CartEventCleared,
	CartEventExternal,
}

// String implements fmt.Stringer.
func (k CartEventKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known CartEventKind.
func (k CartEventKind) IsValid() bool {
	for _, candidate := range validCartEventKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseCartEventKind converts raw input into a CartEventKind.
func ParseCartEventKind(value string) (CartEventKind, error) {
	for _, candidate := range validCartEventKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart event kind %q", value)
}
