package dispatch

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatefield/gatefield/internal/protocol"
)

func TestDequeueAllPreservesOrder(t *testing.T) {
	q := NewQueue(0)
	for i := 0; i < 100; i++ {
		require.NoError(t, q.Push(Message{Kind: protocol.Kind(i)}))
	}

	var got []protocol.Kind
	n := q.DequeueAll(func(m Message) { got = append(got, m.Kind) })

	assert.Equal(t, 100, n)
	for i, k := range got {
		assert.Equal(t, protocol.Kind(i), k)
	}
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 0, q.DequeueAll(func(Message) { t.Fatal("queue should be empty") }))
}

func TestOrderAcrossManyDrains(t *testing.T) {
	q := NewQueue(0)
	var got []protocol.Kind

	for tick := 0; tick < 5; tick++ {
		for i := 0; i < 3; i++ {
			require.NoError(t, q.Push(Message{Kind: protocol.Kind(tick*3 + i)}))
		}
		if tick%2 == 1 {
			q.DequeueAll(func(m Message) { got = append(got, m.Kind) })
		}
	}
	q.DequeueAll(func(m Message) { got = append(got, m.Kind) })

	require.Len(t, got, 15)
	for i, k := range got {
		assert.Equal(t, protocol.Kind(i), k)
	}
}

func TestConcurrentProducer(t *testing.T) {
	q := NewQueue(0)
	const total = 5000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			_ = q.Push(Message{Kind: protocol.Kind(i)})
		}
	}()

	var got []protocol.Kind
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	for finished := false; !finished; {
		select {
		case <-done:
			finished = true
		default:
		}
		q.DequeueAll(func(m Message) { got = append(got, m.Kind) })
	}

	require.Len(t, got, total)
	for i, k := range got {
		require.Equal(t, protocol.Kind(i), k)
	}
}

func TestBoundedQueue(t *testing.T) {
	q := NewQueue(2)
	require.NoError(t, q.Push(Message{Kind: 1}))
	require.NoError(t, q.Push(Message{Kind: 2}))
	assert.ErrorIs(t, q.Push(Message{Kind: 3}), ErrQueueFull)

	// the disconnect marker bypasses the bound
	require.NoError(t, q.Push(DisconnectMessage(nil)))
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 3, q.Peak())
}

func TestCloseKeepsQueuedMessages(t *testing.T) {
	q := NewQueue(0)
	require.NoError(t, q.Push(Message{Kind: 1}))
	q.Close()

	assert.ErrorIs(t, q.Push(Message{Kind: 2}), ErrQueueClosed)
	assert.Equal(t, 1, q.DequeueAll(func(Message) {}))
}
