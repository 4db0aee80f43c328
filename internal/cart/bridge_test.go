package cart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sweetslice/storefront/pkg/enums"
)

type fakeBroker struct {
	published [][]byte
	err       error
}

func (f *fakeBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	f.published = append(f.published, payload)
	return f.err
}

func (f *fakeBroker) Subscribe(ctx context.Context, channel string) (*goredis.PubSub, error) {
	return nil, errors.New("not supported")
}

func newTestBridge(t *testing.T, broker Broker, local Publisher) *Bridge {
	t.Helper()
	b, err := NewBridge(broker, "events", "instance-a", local, nil)
	if err != nil {
		t.Fatalf("new bridge: %v", err)
	}
	return b
}

func TestBridgePublishStampsOrigin(t *testing.T) {
	broker := &fakeBroker{}
	b := newTestBridge(t, broker, &recordingPublisher{})

	b.Publish(context.Background(), Event{Session: "s1", Kind: enums.CartEventCleared})
	if len(broker.published) != 1 {
		t.Fatalf("expected one message, got %d", len(broker.published))
	}
	var ev Event
	if err := json.Unmarshal(broker.published[0], &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Origin != "instance-a" || ev.Kind != enums.CartEventCleared {
		t.Fatalf("unexpected relayed event %+v", ev)
	}

	b.Publish(context.Background(), Event{Session: "s1", Origin: "instance-b"})
	if len(broker.published) != 1 {
		t.Fatal("remote events must not be relayed again")
	}
}

func TestBridgePublishFailureIsSwallowed(t *testing.T) {
	broker := &fakeBroker{err: errors.New("connection refused")}
	b := newTestBridge(t, broker, &recordingPublisher{})
	b.Publish(context.Background(), Event{Session: "s1"})
}

func TestBridgeDeliverFiltersEvents(t *testing.T) {
	local := &recordingPublisher{}
	b := newTestBridge(t, &fakeBroker{}, local)
	ctx := context.Background()

	b.deliver(ctx, []byte(`not json`))
	b.deliver(ctx, []byte(`{"session":"s1","origin":"instance-a"}`))
	b.deliver(ctx, []byte(`{"session":"../x","origin":"instance-b"}`))
	b.deliver(ctx, []byte(`{"session":"s1","kind":"added","origin":"instance-b"}`))

	if len(local.events) != 1 {
		t.Fatalf("expected exactly one delivered event, got %d", len(local.events))
	}
	if local.events[0].Kind != enums.CartEventAdded {
		t.Fatalf("unexpected delivered event %+v", local.events[0])
	}
}

func TestBridgeRunReportsSubscribeError(t *testing.T) {
	b := newTestBridge(t, &fakeBroker{}, &recordingPublisher{})
	if err := b.Run(context.Background()); err == nil {
		t.Fatal("expected subscribe failure to surface")
	}
}

func TestNewBridgeValidatesArguments(t *testing.T) {
	if _, err := NewBridge(nil, "events", "a", &recordingPublisher{}, nil); err == nil {
		t.Fatal("expected missing broker to fail")
	}
	if _, err := NewBridge(&fakeBroker{}, "", "a", &recordingPublisher{}, nil); err == nil {
		t.Fatal("expected missing channel to fail")
	}
}
