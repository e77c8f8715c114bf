package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/gatefield/gatefield/internal/protocol"
)

type HandlerFunc func(ctx context.Context, event Event) error

// EventBus is an ordered observer list. Emit runs every handler
// synchronously on the caller's goroutine, in subscription order, so
// handlers never run concurrently with each other for one emitter.
type EventBus struct {
	mu       sync.RWMutex
	byType   map[EventType][]observer
	wildcard []observer
	stopped  bool
}

type observer struct {
	name string
	fn   HandlerFunc
}

func NewEventBus() *EventBus {
	return &EventBus{byType: make(map[EventType][]observer)}
}

// Subscribe appends fn to the observers of t. name identifies it for
// Unsubscribe, Remove and error logs; it need not be unique.
func (eb *EventBus) Subscribe(t EventType, name string, fn HandlerFunc) {
	eb.mu.Lock()
	eb.byType[t] = append(eb.byType[t], observer{name: name, fn: fn})
	eb.mu.Unlock()

	log.Trace().Str("type", string(t)).Str("observer", name).Msg("bus: observer added")
}

// SubscribeAll registers fn for every event. Wildcard observers run after
// the typed ones.
func (eb *EventBus) SubscribeAll(name string, fn HandlerFunc) {
	eb.mu.Lock()
	eb.wildcard = append(eb.wildcard, observer{name: name, fn: fn})
	eb.mu.Unlock()

	log.Trace().Str("observer", name).Msg("bus: wildcard observer added")
}

func (eb *EventBus) Unsubscribe(t EventType, name string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if obs, ok := eb.byType[t]; ok {
		eb.byType[t] = dropNamed(obs, name)
	}
}

func (eb *EventBus) UnsubscribeAll(name string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.wildcard = dropNamed(eb.wildcard, name)
}

// Remove drops every observer registered under name, typed or wildcard.
func (eb *EventBus) Remove(name string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	for t, obs := range eb.byType {
		eb.byType[t] = dropNamed(obs, name)
	}
	eb.wildcard = dropNamed(eb.wildcard, name)
}

func dropNamed(obs []observer, name string) []observer {
	kept := obs[:0:0]
	for _, o := range obs {
		if o.name != name {
			kept = append(kept, o)
		}
	}
	return kept
}

// Emit delivers event to every matching observer and returns once all of
// them have run. An error or panic in one observer is logged and the rest
// still run.
func (eb *EventBus) Emit(ctx context.Context, event Event) {
	eb.mu.RLock()
	if eb.stopped {
		eb.mu.RUnlock()
		return
	}
	typed := eb.byType[event.Type]
	targets := make([]observer, 0, len(typed)+len(eb.wildcard))
	targets = append(append(targets, typed...), eb.wildcard...)
	eb.mu.RUnlock()

	for _, o := range targets {
		eb.deliver(ctx, o, event)
	}
}

func (eb *EventBus) deliver(ctx context.Context, o observer, event Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("type", string(event.Type)).
				Str("observer", o.name).
				Interface("panic", r).
				Msg("bus: observer panicked")
		}
	}()

	if err := o.fn(ctx, event); err != nil {
		log.Warn().
			Err(err).
			Str("type", string(event.Type)).
			Str("observer", o.name).
			Str("source", event.Source).
			Msg("bus: observer failed")
	}
}

// Stream returns a channel receiving every event, for consumers on other
// goroutines. Events are dropped when the channel buffer is full so a slow
// reader never stalls the emitter. Call the returned cancel func to stop.
func (eb *EventBus) Stream(name string, buffer int) (<-chan Event, func()) {
	ch := make(chan Event, buffer)
	var once sync.Once
	var mu sync.Mutex
	closed := false

	eb.SubscribeAll(name, func(ctx context.Context, event Event) error {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return nil
		}
		select {
		case ch <- event:
			return nil
		default:
			return fmt.Errorf("stream %s full, dropped %s", name, event.Type)
		}
	})

	cancel := func() {
		once.Do(func() {
			eb.UnsubscribeAll(name)
			mu.Lock()
			closed = true
			close(ch)
			mu.Unlock()
		})
	}
	return ch, cancel
}

// OnMessage subscribes fn to parsed records of type T, e.g.
// OnMessage(bus, "ui", func(ctx context.Context, m *protocol.AttackResult) error {...}).
func OnMessage[T protocol.Record](eb *EventBus, name string, fn func(ctx context.Context, msg T) error) {
	var zero T
	eb.Subscribe(MessageEvent(zero.Kind()), name, func(ctx context.Context, event Event) error {
		msg, ok := event.Payload.(T)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
		}
		return fn(ctx, msg)
	})
}

// Stop makes every later Emit a no-op.
func (eb *EventBus) Stop() {
	eb.mu.Lock()
	eb.stopped = true
	eb.mu.Unlock()
	log.Debug().Msg("bus: stopped")
}

// HandlerCount reports how many typed observers t has.
func (eb *EventBus) HandlerCount(t EventType) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.byType[t])
}
