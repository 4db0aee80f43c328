package cart

import (
	"testing"

	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
)

func TestCodecRoundTripKeepsLines(t *testing.T) {
	items := []LineItem{line("a", "1", 2, "10.00")}
	data, err := encodeItems(items)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decodeItems(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].LineID != "a" || !got[0].Price.Equal(items[0].Price) {
		t.Fatalf("unexpected decoded lines %+v", got)
	}
}

func TestEncodeNilIsEmptyArray(t *testing.T) {
	data, err := encodeItems(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected [], got %s", data)
	}
}

func TestDecodeEmptyValues(t *testing.T) {
	for _, raw := range []string{"", "  ", "null", "[]"} {
		items, err := decodeItems([]byte(raw))
		if err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
		if len(items) != 0 {
			t.Fatalf("decode %q: expected empty, got %v", raw, items)
		}
	}
}

func TestDecodeCorruptValues(t *testing.T) {
	cases := map[string]string{
		"not json":        "{{{",
		"object":          `{"line_id":"a"}`,
		"missing line id": `[{"product_id":"1","quantity":1,"price":"1"}]`,
		"zero quantity":   `[{"line_id":"a","product_id":"1","quantity":0,"price":"1"}]`,
		"bad price":       `[{"line_id":"a","product_id":"1","quantity":1,"price":"abc"}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := decodeItems([]byte(raw))
			if !pkgerrors.IsCode(err, pkgerrors.CodeStorageCorruption) {
				t.Fatalf("expected storage corruption, got %v", err)
			}
		})
	}
}
