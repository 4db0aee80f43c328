package cart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
)

var errCorrupt = errors.New("stored cart is not a line item list")

func encodeItems(items []LineItem) ([]byte, error) {
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	return data, nil
}

// decodeItems parses a stored cart. Anything that is not a JSON array of well formed
// lines is reported as storage corruption.
func decodeItems(data []byte) ([]LineItem, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []LineItem{}, nil
	}
	var items []LineItem
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageCorruption, err, "decode cart")
	}
	for i, item := range items {
		if item.LineID == "" || item.ProductID == "" || item.Quantity < 1 {
			return nil, pkgerrors.Wrap(pkgerrors.CodeStorageCorruption, fmt.Errorf("line %d: %w", i, errCorrupt), "decode cart")
		}
	}
	return items, nil
}
