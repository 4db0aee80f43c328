package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sweetslice/storefront/internal/checkout"
	"github.com/sweetslice/storefront/internal/checkout/helpers"
)

// runCLI executes the root command with fresh flag state and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cartDir, session, verbose, timeout = "", defaultSession, false, 30*time.Second
	productCategory, productSort, includeCategory = "", "", false
	addQuantity, addSize, addFlavor, addMessage = 1, "", "", ""
	deliveryMethod, orderEmail = "pickup", ""
	draft = checkout.Draft{DeliveryInfo: helpers.DeliveryInfo{DeliveryMethod: "pickup"}}
	logg = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestProductsListFiltersCategory(t *testing.T) {
	out, err := runCLI(t, "products", "list", "--category", "cupcakes", "--cart-dir", t.TempDir())
	if err != nil {
		t.Fatalf("products list: %v", err)
	}
	var products []struct {
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(out), &products); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(products) == 0 {
		t.Fatal("expected cupcakes")
	}
	for _, p := range products {
		if p.Category != "cupcakes" {
			t.Fatalf("unexpected category %q", p.Category)
		}
	}
}

func TestProductsListRejectsUnknownCategory(t *testing.T) {
	if _, err := runCLI(t, "products", "list", "--category", "cookies"); err == nil {
		t.Fatal("expected unknown category to fail")
	}
}

func TestCartPersistsBetweenInvocations(t *testing.T) {
	dir := t.TempDir()

	if _, err := runCLI(t, "cart", "add", "2", "--size", "6 inch", "--flavor", "Vanilla", "-q", "2",
		"--cart-dir", dir, "--session", "cli-test"); err != nil {
		t.Fatalf("cart add: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		t.Fatalf("expected a cart file in %s, err=%v", dir, err)
	}

	out, err := runCLI(t, "cart", "list", "--cart-dir", dir, "--session", "cli-test")
	if err != nil {
		t.Fatalf("cart list: %v", err)
	}
	var view struct {
		TotalItems  int    `json:"total_items"`
		TotalAmount string `json:"total_amount"`
	}
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if view.TotalItems != 2 || view.TotalAmount != "77.00" {
		t.Fatalf("unexpected cart %+v", view)
	}

	out, err = runCLI(t, "cart", "list", "--cart-dir", dir, "--session", "someone-else")
	if err != nil {
		t.Fatalf("cart list: %v", err)
	}
	if !strings.Contains(out, `"total_items": 0`) {
		t.Fatalf("expected an empty cart for another session, got %s", out)
	}
}

func TestCheckoutPlaceClearsCart(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, "cart", "add", "1", "--size", "8 inch", "--flavor", "Chocolate", "--cart-dir", dir); err != nil {
		t.Fatalf("cart add: %v", err)
	}

	date := time.Now().AddDate(0, 0, 3).Format(helpers.DateLayout)
	out, err := runCLI(t, "checkout", "place", "--cart-dir", dir,
		"--name", "Ada Baker", "--email", "ada@example.com", "--phone", "555-0199",
		"--method", "pickup", "--date", date, "--time", helpers.TimeSlots[0])
	if err != nil {
		t.Fatalf("checkout place: %v", err)
	}
	var order struct {
		OrderCode   string `json:"order_code"`
		Status      string `json:"status"`
		DeliveryFee string `json:"delivery_fee"`
	}
	if err := json.Unmarshal([]byte(out), &order); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if !strings.HasPrefix(order.OrderCode, "ORD-") || order.Status != "pending" || order.DeliveryFee != "0.00" {
		t.Fatalf("unexpected order %+v", order)
	}

	out, err = runCLI(t, "cart", "list", "--cart-dir", dir)
	if err != nil {
		t.Fatalf("cart list: %v", err)
	}
	if !strings.Contains(out, `"total_items": 0`) {
		t.Fatalf("expected cart to be cleared, got %s", out)
	}
}

func TestCheckoutPlaceReportsFieldErrors(t *testing.T) {
	_, err := runCLI(t, "checkout", "place", "--cart-dir", t.TempDir(), "--name", "Ada Baker")
	if err == nil {
		t.Fatal("expected missing contact details to fail")
	}
	if !strings.Contains(err.Error(), "email") || !strings.Contains(err.Error(), "phone") {
		t.Fatalf("expected field names in error, got %v", err)
	}
}

func TestOrdersGetFindsSeededOrder(t *testing.T) {
	out, err := runCLI(t, "orders", "get", "ord-2024-001", "--cart-dir", t.TempDir())
	if err != nil {
		t.Fatalf("orders get: %v", err)
	}
	if !strings.Contains(out, `"order_code": "ORD-2024-001"`) {
		t.Fatalf("unexpected output %s", out)
	}

	if _, err := runCLI(t, "orders", "get", "ORD-1999-999", "--cart-dir", t.TempDir()); err == nil {
		t.Fatal("expected unknown order to fail")
	}
}
