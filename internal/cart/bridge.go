package cart

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sweetslice/storefront/pkg/logger"
)

// Broker is the pub/sub surface of the redis client.
type Broker interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (*goredis.PubSub, error)
}

// Bridge relays cart events between API instances over a redis channel. Events carry the
// origin instance so an instance ignores its own echoes. Delivery is best-effort.
type Bridge struct {
	broker  Broker
	channel string
	origin  string
	local   Publisher
	logg    *logger.Logger
}

func NewBridge(broker Broker, channel, origin string, local Publisher, logg *logger.Logger) (*Bridge, error) {
	if broker == nil {
		return nil, fmt.Errorf("broker required")
	}
	if channel == "" || origin == "" {
		return nil, fmt.Errorf("channel and origin required")
	}
	if local == nil {
		return nil, fmt.Errorf("local publisher required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Bridge{broker: broker, channel: channel, origin: origin, local: local, logg: logg}, nil
}

// Publish forwards a locally produced event to the other instances.
func (b *Bridge) Publish(ctx context.Context, ev Event) {
	if ev.Origin != "" {
		return
	}
	ev.Origin = b.origin
	payload, err := json.Marshal(ev)
	if err != nil {
		b.logg.Error(ctx, "encode cart event", err)
		return
	}
	if err := b.broker.Publish(ctx, b.channel, payload); err != nil {
		b.logg.Warn(b.logg.WithField(ctx, "error", err.Error()), "cart event fan-out failed")
	}
}

// Run delivers remote events to the local publisher until ctx is done.
func (b *Bridge) Run(ctx context.Context) error {
	sub, err := b.broker.Subscribe(ctx, b.channel)
	if err != nil {
		return err
	}
	defer sub.Close()

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			b.deliver(ctx, []byte(msg.Payload))
		}
	}
}

func (b *Bridge) deliver(ctx context.Context, payload []byte) {
	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		b.logg.Warn(b.logg.WithField(ctx, "error", err.Error()), "discarding malformed cart event")
		return
	}
	if ev.Origin == b.origin || !ValidSession(ev.Session) {
		return
	}
	b.local.Publish(ctx, ev)
}
