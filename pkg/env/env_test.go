package env

import "testing"

func TestGetFallsBackWhenUnset(t *testing.T) {
	t.Setenv("SWEETSLICE_TEST_VALUE", "")
	if got := Get("SWEETSLICE_TEST_VALUE", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}

	t.Setenv("SWEETSLICE_TEST_VALUE", " console ")
	if got := Get("SWEETSLICE_TEST_VALUE", "json"); got != "console" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestBool(t *testing.T) {
	t.Setenv("SWEETSLICE_TEST_FLAG", "true")
	if !Bool("SWEETSLICE_TEST_FLAG", false) {
		t.Fatal("expected true")
	}

	t.Setenv("SWEETSLICE_TEST_FLAG", "not-a-bool")
	if Bool("SWEETSLICE_TEST_FLAG", false) {
		t.Fatal("invalid value should use fallback")
	}
}
