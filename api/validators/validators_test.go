package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
)

type samplePayload struct {
	Name string `json:"name" validate:"notblank"`
}

func TestDecodeJSONBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Ada"}`))
	var p samplePayload
	if err := DecodeJSONBody(req, &p); err != nil || p.Name != "Ada" {
		t.Fatalf("unexpected decode result %+v err=%v", p, err)
	}

	for _, body := range []string{`{"name":" "}`, `{"name":"A","extra":1}`, `not json`} {
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))
		if err := DecodeJSONBody(req, &samplePayload{}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("body %s: expected validation error, got %v", body, err)
		}
	}
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest("GET", "/?limit=4&bad=x&big=500", nil)
	if v, err := ParseQueryInt(req, "limit", 6, 1, 50); err != nil || v != 4 {
		t.Fatalf("expected 4, got %d err=%v", v, err)
	}
	if v, err := ParseQueryInt(req, "missing", 6, 1, 50); err != nil || v != 6 {
		t.Fatalf("expected default 6, got %d err=%v", v, err)
	}
	if _, err := ParseQueryInt(req, "bad", 6, 1, 50); err == nil {
		t.Fatal("expected non-numeric to fail")
	}
	_, err := ParseQueryInt(req, "big", 6, 1, 50)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if details, _ := typed.Details().(map[string]string); details["big"] != "must be between 1 and 50" {
		t.Fatalf("unexpected details %v", typed.Details())
	}
}

func TestParseQueryBool(t *testing.T) {
	req := httptest.NewRequest("GET", "/?a=true&b=nope", nil)
	if v, err := ParseQueryBool(req, "a", false); err != nil || !v {
		t.Fatalf("expected true, got %v err=%v", v, err)
	}
	if _, err := ParseQueryBool(req, "b", false); err == nil {
		t.Fatal("expected invalid bool to fail")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  héllo wörld ", 5); got != "héllo" {
		t.Fatalf("unexpected sanitized value %q", got)
	}
	if got := SanitizeString("\tred\x00 velvet\n", 0); got != "red velvet" {
		t.Fatalf("expected control characters dropped, got %q", got)
	}
	if got := SanitizeString("cup cake", 4); got != "cup" {
		t.Fatalf("expected trailing space trimmed after cap, got %q", got)
	}
}
