package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatefield/gatefield/internal/protocol"
)

func TestEmitRunsHandlersInOrder(t *testing.T) {
	bus := NewEventBus()
	var calls []string

	bus.Subscribe(EventStateChanged, "first", func(ctx context.Context, e Event) error {
		calls = append(calls, "first")
		return nil
	})
	bus.Subscribe(EventStateChanged, "second", func(ctx context.Context, e Event) error {
		calls = append(calls, "second")
		return errors.New("ignored")
	})
	bus.SubscribeAll("wildcard", func(ctx context.Context, e Event) error {
		calls = append(calls, "all:"+string(e.Type))
		return nil
	})
	bus.Subscribe(EventStateChanged, "third", func(ctx context.Context, e Event) error {
		panic("boom")
	})

	bus.Emit(context.Background(), Event{Type: EventStateChanged})

	assert.Equal(t, []string{"first", "second", "all:state_changed"}, calls)
}

func TestUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	count := 0
	bus.Subscribe(EventDisconnected, "h", func(ctx context.Context, e Event) error {
		count++
		return nil
	})
	assert.Equal(t, 1, bus.HandlerCount(EventDisconnected))

	bus.Unsubscribe(EventDisconnected, "h")
	bus.Emit(context.Background(), Event{Type: EventDisconnected})

	assert.Equal(t, 0, count)
	assert.Equal(t, 0, bus.HandlerCount(EventDisconnected))
}

func TestRemove(t *testing.T) {
	bus := NewEventBus()
	noop := func(ctx context.Context, e Event) error { return nil }
	bus.Subscribe(EventDisconnected, "ui", noop)
	bus.Subscribe(EventStateChanged, "ui", noop)
	bus.Subscribe(EventStateChanged, "keep", noop)
	bus.SubscribeAll("ui", noop)

	bus.Remove("ui")

	assert.Zero(t, bus.HandlerCount(EventDisconnected))
	assert.Equal(t, 1, bus.HandlerCount(EventStateChanged))
	assert.Empty(t, bus.wildcard)
}

func TestOnMessageTyped(t *testing.T) {
	bus := NewEventBus()
	var got *protocol.AttackResult

	OnMessage(bus, "ui", func(ctx context.Context, m *protocol.AttackResult) error {
		got = m
		return nil
	})

	rec := &protocol.AttackResult{Attacker: 1, Target: 2, Damage: 30}
	bus.Emit(context.Background(), Event{Type: MessageEvent(protocol.KindAttackResult), Payload: rec})

	require.NotNil(t, got)
	assert.Equal(t, int32(30), got.Damage)
	assert.Equal(t, EventType("msg:ATTACK_RESULT"), MessageEvent(protocol.KindAttackResult))
	assert.True(t, MessageEvent(protocol.KindAttackResult).IsMessage())
	assert.False(t, EventDisconnected.IsMessage())
}

func TestStream(t *testing.T) {
	bus := NewEventBus()
	ch, cancel := bus.Stream("ws", 1)

	bus.Emit(context.Background(), Event{Type: EventGateRouted})
	bus.Emit(context.Background(), Event{Type: EventEnteredGame}) // dropped, buffer full

	e := <-ch
	assert.Equal(t, EventGateRouted, e.Type)

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)

	assert.NotPanics(t, func() {
		bus.Emit(context.Background(), Event{Type: EventGateRouted})
	})
}

func TestStopSilencesBus(t *testing.T) {
	bus := NewEventBus()
	called := false
	bus.SubscribeAll("h", func(ctx context.Context, e Event) error {
		called = true
		return nil
	})
	bus.Stop()
	bus.Emit(context.Background(), Event{Type: EventStateChanged})
	assert.False(t, called)
}

func TestConnectionStateJSON(t *testing.T) {
	b, err := StateInGame.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"in_game"`, string(b))
	assert.Equal(t, "unknown", ConnectionState(42).String())
}
