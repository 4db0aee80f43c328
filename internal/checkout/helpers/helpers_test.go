package helpers

import (
	"testing"
	"time"

	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
)

var now = time.Date(2026, 3, 1, 18, 45, 0, 0, time.UTC)

func detailsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	return details
}

func TestValidateContact(t *testing.T) {
	if err := ValidateContact(ContactInfo{CustomerName: "Ada", Email: "ada@example.com", Phone: "555"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	details := detailsOf(t, ValidateContact(ContactInfo{CustomerName: "  ", Email: "not-an-email"}))
	for _, field := range []string{"customer_name", "email", "phone"} {
		if _, ok := details[field]; !ok {
			t.Fatalf("expected %s to fail, got %v", field, details)
		}
	}
}

func TestMinDeliveryDateIsTomorrow(t *testing.T) {
	if got := MinDeliveryDate(now); got != "2026-03-02" {
		t.Fatalf("expected 2026-03-02, got %s", got)
	}
	endOfMonth := time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC)
	if got := MinDeliveryDate(endOfMonth); got != "2027-01-01" {
		t.Fatalf("expected year rollover, got %s", got)
	}
}

func TestValidateDeliveryPickup(t *testing.T) {
	info := DeliveryInfo{DeliveryMethod: "pickup", DeliveryDate: "2026-03-02", DeliveryTime: "9:00 AM"}
	if err := ValidateDelivery(info, now); err != nil {
		t.Fatalf("pickup without address should pass: %v", err)
	}
}

func TestValidateDeliveryRejections(t *testing.T) {
	tests := []struct {
		name  string
		info  DeliveryInfo
		field string
	}{
		{"today", DeliveryInfo{DeliveryMethod: "pickup", DeliveryDate: "2026-03-01", DeliveryTime: "9:00 AM"}, "delivery_date"},
		{"bad date", DeliveryInfo{DeliveryMethod: "pickup", DeliveryDate: "03/02/2026", DeliveryTime: "9:00 AM"}, "delivery_date"},
		{"missing date", DeliveryInfo{DeliveryMethod: "pickup", DeliveryTime: "9:00 AM"}, "delivery_date"},
		{"off slot", DeliveryInfo{DeliveryMethod: "pickup", DeliveryDate: "2026-03-02", DeliveryTime: "8:00 PM"}, "delivery_time"},
		{"unknown method", DeliveryInfo{DeliveryMethod: "drone", DeliveryDate: "2026-03-02", DeliveryTime: "9:00 AM"}, "delivery_method"},
		{"no address", DeliveryInfo{DeliveryMethod: "delivery", DeliveryDate: "2026-03-02", DeliveryTime: "9:00 AM", City: "X", ZipCode: "1"}, "address"},
		{"no zip", DeliveryInfo{DeliveryMethod: "delivery", DeliveryDate: "2026-03-02", DeliveryTime: "9:00 AM", Address: "1 Main", City: "X"}, "zip_code"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := detailsOf(t, ValidateDelivery(tt.info, now))
			if _, ok := details[tt.field]; !ok {
				t.Fatalf("expected %s to fail, got %v", tt.field, details)
			}
		})
	}
}

func TestValidateDeliveryWithAddress(t *testing.T) {
	info := DeliveryInfo{
		DeliveryMethod: "delivery", DeliveryDate: "2026-04-10", DeliveryTime: "7:00 PM",
		Address: "1 Main St", City: "Springfield", ZipCode: "62704",
	}
	if err := ValidateDelivery(info, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
