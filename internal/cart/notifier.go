package cart

import (
	"context"
	"sync"

	"github.com/sweetslice/storefront/pkg/metrics"
)

const subscriberBuffer = 16

// Publisher receives cart change events.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// Publishers fans an event out to several publishers in order.
type Publishers []Publisher

func (p Publishers) Publish(ctx context.Context, ev Event) {
	for _, pub := range p {
		if pub != nil {
			pub.Publish(ctx, ev)
		}
	}
}

// Notifier is the in-process subject views subscribe to for one cart session.
// Publishing never blocks: a subscriber whose buffer is full misses the event.
type Notifier struct {
	mu      sync.Mutex
	subs    map[string]map[*subscription]struct{}
	metrics *metrics.StorefrontMetrics
}

type subscription struct {
	ch     chan Event
	closed bool
}

func NewNotifier(m *metrics.StorefrontMetrics) *Notifier {
	return &Notifier{
		subs:    make(map[string]map[*subscription]struct{}),
		metrics: m,
	}
}

// Subscribe registers interest in session. The returned cancel func closes the channel
// and is safe to call more than once.
func (n *Notifier) Subscribe(session string) (<-chan Event, func()) {
	sub := &subscription{ch: make(chan Event, subscriberBuffer)}

	n.mu.Lock()
	set, ok := n.subs[session]
	if !ok {
		set = make(map[*subscription]struct{})
		n.subs[session] = set
	}
	set[sub] = struct{}{}
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub.closed {
			return
		}
		sub.closed = true
		delete(n.subs[session], sub)
		if len(n.subs[session]) == 0 {
			delete(n.subs, session)
		}
		close(sub.ch)
	}
	return sub.ch, cancel
}

func (n *Notifier) Publish(ctx context.Context, ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for sub := range n.subs[ev.Session] {
		select {
		case sub.ch <- ev:
		default:
			n.metrics.EventDropped()
		}
	}
}

// Subscribers returns how many live subscriptions session has.
func (n *Notifier) Subscribers(session string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs[session])
}
