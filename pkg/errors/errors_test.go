package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeStorageCorruption, status: http.StatusInternalServerError, publicMsg: "internal server error"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing email")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing email" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	base.WithDetails(map[string]any{"field": "email"})
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeDependency, cause, "load cart")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if !strings.Contains(wrapped.Error(), "boom") {
		t.Fatalf("expected cause in message, got %q", wrapped.Error())
	}
}

func TestAsAndIsCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeNotFound, "product not found"))
	if got := As(err); got == nil || got.Code() != CodeNotFound {
		t.Fatalf("As failed to return typed error")
	}
	if !IsCode(err, CodeNotFound) {
		t.Fatal("expected IsCode to match through wrapping")
	}
	if IsCode(stdErrors.New("plain"), CodeNotFound) {
		t.Fatal("plain errors carry no code")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	err := fmt.Errorf("place order: %w", Wrap(CodeInternal, stdErrors.New("disk full"), "persist order"))
	dump := Dump(err)
	if dump.Code != CodeInternal {
		t.Fatalf("expected internal code, got %s", dump.Code)
	}
	if len(dump.Chain) != 3 {
		t.Fatalf("expected 3 chain entries, got %d: %v", len(dump.Chain), dump.Chain)
	}
	if Dump(nil).TopMessage != "" {
		t.Fatal("nil error should produce an empty dump")
	}
}

func TestDumpDecodesDriverErrors(t *testing.T) {
	pg := Dump(fmt.Errorf("insert order: %w", &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "orders_order_code_key",
		TableName:      "orders",
	}))
	if pg.DBDriver != "postgres" || pg.DBCode != "23505" || pg.DBTable != "orders" {
		t.Fatalf("unexpected postgres dump %+v", pg)
	}
	if pg.Fields()["db_constraint"] != "orders_order_code_key" {
		t.Fatalf("expected constraint in fields, got %v", pg.Fields())
	}

	lite := Dump(fmt.Errorf("insert order: %w", sqlite3.Error{
		Code:         sqlite3.ErrConstraint,
		ExtendedCode: sqlite3.ErrConstraintUnique,
	}))
	if lite.DBDriver != "sqlite" || lite.DBCode != "2067" {
		t.Fatalf("unexpected sqlite dump %+v", lite)
	}

	plain := Dump(stdErrors.New("boom")).Fields()
	if _, ok := plain["db_driver"]; ok {
		t.Fatalf("plain errors carry no db fields, got %v", plain)
	}
}

func TestPublicHidesInternalMessages(t *testing.T) {
	pub := Public(New(CodeNotFound, "order not found"))
	if pub.Status != http.StatusNotFound || pub.Message != "order not found" {
		t.Fatalf("unexpected public not found %+v", pub)
	}

	pub = Public(Wrap(CodeInternal, stdErrors.New("disk full"), "persist order").WithDetails("secret"))
	if pub.Message != "internal server error" || pub.Details != nil {
		t.Fatalf("internal errors must not leak, got %+v", pub)
	}

	pub = Public(stdErrors.New("plain"))
	if pub.Code != CodeInternal || pub.Status != http.StatusInternalServerError {
		t.Fatalf("plain errors should map to internal, got %+v", pub)
	}

	pub = Public(New(CodeValidation, "validation failed").WithDetails(map[string]string{"email": "is required"}))
	if pub.Details == nil {
		t.Fatal("validation details should be exposed")
	}
}
