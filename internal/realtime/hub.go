package realtime

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Subscriber is one live stream. C receives a value whenever its topic changed; a
// pending value is enough since every change triggers a full re-query.
type Subscriber struct {
	ID    string
	Topic string
	C     chan Change
	Done  chan struct{}
}

type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscriber
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[string]*Subscriber)}
}

// Subscribe registers a subscriber on topic. It is removed when ctx ends or on
// Unsubscribe, whichever happens first.
func (h *Hub) Subscribe(ctx context.Context, topic string) *Subscriber {
	sub := &Subscriber{
		ID:    uuid.New().String(),
		Topic: topic,
		C:     make(chan Change, 1),
		Done:  make(chan struct{}),
	}

	h.mu.Lock()
	h.subscribers[sub.ID] = sub
	h.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			h.Unsubscribe(sub.ID)
		case <-sub.Done:
		}
	}()

	return sub
}

// Unsubscribe is idempotent.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.subscribers[id]; ok {
		close(sub.Done)
		close(sub.C)
		delete(h.subscribers, id)
	}
}

// Publish signals every subscriber of topic without blocking.
func (h *Hub) Publish(topic string, c Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subscribers {
		if sub.Topic != topic {
			continue
		}
		select {
		case sub.C <- c:
		default:
			// already has a refresh pending
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
