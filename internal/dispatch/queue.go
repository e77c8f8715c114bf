// Package dispatch implements the FIFO that hands framed messages from a
// transport's read goroutine to the single consumer that owns the connector.
package dispatch

import (
	"errors"
	"sync"

	"github.com/gatefield/gatefield/internal/protocol"
)

var (
	ErrQueueFull   = errors.New("dispatch queue full")
	ErrQueueClosed = errors.New("dispatch queue closed")
)

// Message is one inbound frame, or the disconnect marker pushed by a
// transport whose connection dropped.
type Message struct {
	Kind       protocol.Kind
	Payload    []byte
	Disconnect bool
	Err        error // set on the disconnect marker
}

// DisconnectMessage builds the in-band disconnect marker.
func DisconnectMessage(err error) Message {
	return Message{Disconnect: true, Err: err}
}

// Queue is a mutex-guarded FIFO safe for one producer and one consumer.
type Queue struct {
	mu       sync.Mutex
	items    []Message
	capacity int
	closed   bool
	peak     int
}

// NewQueue creates a queue holding at most capacity messages. A capacity
// of zero or less means unbounded.
func NewQueue(capacity int) *Queue {
	return &Queue{capacity: capacity}
}

// Push appends m. The disconnect marker is accepted even when the queue is
// full so the consumer always learns about a dropped connection.
func (q *Queue) Push(m Message) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	if !m.Disconnect && q.capacity > 0 && len(q.items) >= q.capacity {
		return ErrQueueFull
	}

	q.items = append(q.items, m)
	if len(q.items) > q.peak {
		q.peak = len(q.items)
	}
	return nil
}

// DequeueAll removes every queued message and calls fn for each in arrival
// order on the calling goroutine. Messages pushed while fn runs are left
// for the next call. Returns the number of messages handled.
func (q *Queue) DequeueAll(fn func(Message)) int {
	q.mu.Lock()
	batch := q.items
	q.items = nil
	q.mu.Unlock()

	for _, m := range batch {
		fn(m)
	}
	return len(batch)
}

// Close stops accepting pushes. Messages already queued stay drainable.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}

// Len returns the number of queued messages.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Peak returns the highest depth the queue has reached.
func (q *Queue) Peak() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.peak
}
