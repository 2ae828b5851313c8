// Package notifier fans lifecycle events out to connected observers. Delivery
// is best effort: a slow observer loses frames instead of slowing the sender.
package notifier

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"gitlab.com/foodshare/backend/internal/event"
	"gitlab.com/foodshare/backend/internal/metrics"
)

// Observer receives encoded event frames. Send must not block; it reports
// false when the frame was dropped.
type Observer interface {
	ID() string
	Send(frame []byte) bool
}

type Hub struct {
	mu        sync.RWMutex
	observers map[string]Observer
	logger    *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		observers: make(map[string]Observer),
		logger:    logger,
	}
}

func (h *Hub) Register(o Observer) {
	h.mu.Lock()
	h.observers[o.ID()] = o
	h.mu.Unlock()

	metrics.ConnectedObservers.Inc()
	h.logger.Debug("observer registered", zap.String("observer_id", o.ID()))
}

func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	_, ok := h.observers[id]
	delete(h.observers, id)
	h.mu.Unlock()

	if ok {
		metrics.ConnectedObservers.Dec()
		h.logger.Debug("observer unregistered", zap.String("observer_id", id))
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}

func (h *Hub) Broadcast(ev event.Event) {
	frame, err := json.Marshal(ev)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("broadcast").Inc()
		h.logger.Error("failed to encode event", zap.String("event", ev.Name), zap.Error(err))
		return
	}

	h.mu.RLock()
	observers := make([]Observer, 0, len(h.observers))
	for _, o := range h.observers {
		observers = append(observers, o)
	}
	h.mu.RUnlock()

	metrics.EventsBroadcastTotal.WithLabelValues(ev.Name).Inc()
	for _, o := range observers {
		if !o.Send(frame) {
			metrics.EventsDroppedTotal.Inc()
			h.logger.Warn("dropped event for slow observer",
				zap.String("event", ev.Name),
				zap.String("observer_id", o.ID()),
			)
		}
	}
}
