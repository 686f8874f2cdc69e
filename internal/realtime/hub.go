package realtime

import (
	"context"
	"sync"
	"time"

	"teabloom-be/internal/logger"
	"teabloom-be/internal/recordstore"

	"go.uber.org/zap"
)

const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// Source is the subscription side of the record store client.
type Source interface {
	Subscribe(ctx context.Context, collection string) (<-chan recordstore.Event, error)
}

// Hub maintains a single realtime subscription for one collection and fans
// its events out to any number of consumers. Downstream views (catalog, cart
// reconciler) all read from here instead of holding their own subscriptions.
type Hub struct {
	source     Source
	collection string

	mu        sync.Mutex
	listeners []chan recordstore.Event
}

func NewHub(source Source, collection string) *Hub {
	return &Hub{
		source:     source,
		collection: collection,
	}
}

// Listen registers a consumer. A slow consumer has its oldest pending event
// dropped rather than blocking the feed.
func (h *Hub) Listen(buffer int) <-chan recordstore.Event {
	if buffer <= 0 {
		buffer = 16
	}

	ch := make(chan recordstore.Event, buffer)

	h.mu.Lock()
	h.listeners = append(h.listeners, ch)
	h.mu.Unlock()

	return ch
}

// Run drives the subscription until ctx is cancelled, reconnecting with
// exponential backoff when the feed drops. All listener channels are closed
// on return.
func (h *Hub) Run(ctx context.Context) {
	log := logger.L().With(zap.String("collection", h.collection))
	backoff := initialBackoff

	defer h.closeListeners()

	for {
		events, err := h.source.Subscribe(ctx, h.collection)
		if err != nil {
			if ctx.Err() != nil {
				return
			}

			log.Warn("realtime subscribe failed, retrying",
				zap.Error(err),
				zap.Duration("backoff", backoff),
			)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return
			}

			backoff = min(backoff*2, maxBackoff)
			continue
		}

		log.Info("realtime subscription established")
		backoff = initialBackoff

		for evt := range events {
			h.broadcast(evt)
		}

		if ctx.Err() != nil {
			return
		}

		log.Warn("realtime feed dropped, reconnecting")
	}
}

func (h *Hub) broadcast(evt recordstore.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.listeners {
		select {
		case ch <- evt:
		default:
			// Buffer full: drop the oldest pending event to make room.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- evt:
			default:
			}
		}
	}
}

func (h *Hub) closeListeners() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.listeners {
		close(ch)
	}
	h.listeners = nil
}
