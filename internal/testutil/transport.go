// Package testutil holds fakes and helpers shared by package tests.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gatefield/gatefield/internal/dispatch"
	"github.com/gatefield/gatefield/internal/protocol"
)

// FakeTransport is an in-memory transport. Frames passed to Send are parsed
// and recorded; Reply, when set, answers them by queueing inbound records.
type FakeTransport struct {
	// Reply is called for every sent record and may return records to deliver.
	Reply func(sent protocol.Record) []protocol.Record

	mu         sync.Mutex
	queue      *dispatch.Queue
	connectErr error
	sendErr    error
	host       string
	port       uint16
	connected  bool
	disposed   int
	sent       []protocol.Record
}

// NewFakeTransport creates an unconnected fake with an unbounded queue.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{queue: dispatch.NewQueue(0)}
}

// FailConnect makes the next Connect return err.
func (f *FakeTransport) FailConnect(err error) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connectErr = err
	return f
}

// FailSend makes every later Send return err.
func (f *FakeTransport) FailSend(err error) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendErr = err
	return f
}

func (f *FakeTransport) Connect(ctx context.Context, host string, port uint16) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.host, f.port = host, port
	if f.connectErr != nil {
		return f.connectErr
	}
	f.connected = true
	return nil
}

func (f *FakeTransport) Send(frame []byte) error {
	f.mu.Lock()
	if f.sendErr != nil {
		err := f.sendErr
		f.mu.Unlock()
		return err
	}
	fr, err := protocol.DecodeFrame(frame)
	if err != nil {
		f.mu.Unlock()
		return err
	}
	rec, err := protocol.Parse(fr.Kind, fr.Payload)
	if err != nil {
		f.mu.Unlock()
		return err
	}
	f.sent = append(f.sent, rec)
	reply := f.Reply
	f.mu.Unlock()

	if reply != nil {
		f.Deliver(reply(rec)...)
	}
	return nil
}

func (f *FakeTransport) Dispose() {
	f.mu.Lock()
	f.disposed++
	f.mu.Unlock()
	f.queue.Close()
}

func (f *FakeTransport) DequeueAll(fn func(dispatch.Message)) int {
	return f.queue.DequeueAll(fn)
}

func (f *FakeTransport) QueueLen() int {
	return f.queue.Len()
}

// Deliver queues records as if they had arrived from the server.
func (f *FakeTransport) Deliver(recs ...protocol.Record) {
	for _, rec := range recs {
		_ = f.queue.Push(dispatch.Message{Kind: rec.Kind(), Payload: protocol.Marshal(rec)})
	}
}

// DeliverRaw queues an arbitrary frame body.
func (f *FakeTransport) DeliverRaw(kind protocol.Kind, payload []byte) {
	_ = f.queue.Push(dispatch.Message{Kind: kind, Payload: payload})
}

// Drop queues the disconnect marker.
func (f *FakeTransport) Drop(err error) {
	_ = f.queue.Push(dispatch.DisconnectMessage(err))
}

// Sent returns the records sent so far.
func (f *FakeTransport) Sent() []protocol.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]protocol.Record(nil), f.sent...)
}

// SentKinds returns the kinds sent so far, in order.
func (f *FakeTransport) SentKinds() []protocol.Kind {
	f.mu.Lock()
	defer f.mu.Unlock()
	kinds := make([]protocol.Kind, len(f.sent))
	for i, rec := range f.sent {
		kinds[i] = rec.Kind()
	}
	return kinds
}

// Target returns the address passed to Connect.
func (f *FakeTransport) Target() (string, uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.host, f.port
}

func (f *FakeTransport) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

// Disposed returns how many times Dispose was called.
func (f *FakeTransport) Disposed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disposed
}

// ContextWithTimeout returns a context cancelled when the test ends.
func ContextWithTimeout(t testing.TB, d time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	t.Cleanup(cancel)
	return ctx
}
