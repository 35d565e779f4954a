package services

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RevalidationEvent is sent to websocket clients when a page path is
// invalidated.
type RevalidationEvent struct {
	Type      string    `json:"type"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

const subscriberBuffer = 32

// RevalidationHub fans invalidated paths out to local subscribers. Paths
// reach it through the Redis channel so every instance sees every change.
type RevalidationHub struct {
	mu          sync.RWMutex
	subscribers map[chan RevalidationEvent]struct{}
	log         *zap.Logger
	started     sync.Once
}

func NewRevalidationHub(log *zap.Logger) *RevalidationHub {
	return &RevalidationHub{
		subscribers: make(map[chan RevalidationEvent]struct{}),
		log:         log,
	}
}

// Subscribe returns a channel of events and a function that releases it.
func (h *RevalidationHub) Subscribe() (<-chan RevalidationEvent, func()) {
	ch := make(chan RevalidationEvent, subscriberBuffer)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Broadcast delivers ev to every subscriber. Slow subscribers drop events.
func (h *RevalidationHub) Broadcast(ev RevalidationEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers {
		select {
		case ch <- ev:
		default:
			h.log.Warn("revalidation subscriber is full, dropping event", zap.String("path", ev.Path))
		}
	}
}

func (h *RevalidationHub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Start runs a single Redis listener for the hub until ctx is done.
func (h *RevalidationHub) Start(ctx context.Context, rdb *redis.Client) {
	h.started.Do(func() {
		go h.run(ctx, rdb)
	})
}

func (h *RevalidationHub) run(ctx context.Context, rdb *redis.Client) {
	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := rdb.Subscribe(ctx, RevalidationChannel)
			defer pubsub.Close()

			h.log.Info("✅ Revalidation subscriber started", zap.String("channel", RevalidationChannel))

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					h.log.Warn("revalidation subscriber error", zap.Error(err), zap.Duration("retry_in", backoff))
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second
				h.Broadcast(RevalidationEvent{
					Type:      "revalidated",
					Path:      msg.Payload,
					Timestamp: time.Now().UTC(),
				})
			}
		}()
	}
}
