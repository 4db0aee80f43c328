package controllers

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sweetslice/storefront/api/middleware"
	"github.com/sweetslice/storefront/internal/cart"
)

func TestCartEventsStreamsSnapshotThenChanges(t *testing.T) {
	h := newHarness(t)
	handler := middleware.CartSession(h.logg)(CartEvents(h.carts, h.notifier, time.Hour, h.logg))
	srv := httptest.NewServer(handler)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/cart/events?session=stream-1", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	name, data := readEvent(t, reader)
	if name != "snapshot" || !strings.Contains(data, `"total_items":0`) {
		t.Fatalf("unexpected first event %s %s", name, data)
	}

	waitForSubscriber(t, h.notifier, "stream-1")
	if _, err := h.carts.Add(ctx, "stream-1", cart.AddItemInput{ProductID: "2", Quantity: 3, Size: "Dozen", Flavor: "Strawberry"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	name, data = readEvent(t, reader)
	if name != "cart" || !strings.Contains(data, `"total_items":3`) || !strings.Contains(data, `"total_amount":"15.00"`) {
		t.Fatalf("unexpected change event %s %s", name, data)
	}
}

func readEvent(t *testing.T, r *bufio.Reader) (string, string) {
	t.Helper()
	var name, data string
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("read stream: %v", err)
		}
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "" && name != "":
			return name, data
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func waitForSubscriber(t *testing.T, n *cart.Notifier, session string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for n.Subscribers(session) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("no subscriber registered for %s", session)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
