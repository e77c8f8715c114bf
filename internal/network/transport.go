// Package network implements the TCP transport used for the gate and field
// connections. Each transport runs its own read goroutine that frames the
// byte stream and feeds a dispatch queue drained by the connector.
package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gatefield/gatefield/internal/dispatch"
	"github.com/gatefield/gatefield/internal/metrics"
	"github.com/gatefield/gatefield/internal/protocol"
)

var (
	ErrDisposed     = errors.New("transport disposed")
	ErrNotConnected = errors.New("transport not connected")
)

// Options configures a Transport.
type Options struct {
	Role          string // "gate" or "field", used for logs and metrics
	DialTimeout   time.Duration
	WriteTimeout  time.Duration
	MaxFrameSize  int
	QueueCapacity int
	Metrics       *metrics.Collector
}

// Transport owns one TCP connection to a gate or field server.
type Transport struct {
	mu     sync.Mutex
	opts   Options
	conn   net.Conn
	queue  *dispatch.Queue
	logger zerolog.Logger
	done   chan struct{}

	connectedAt  time.Time
	lastActivity time.Time

	disposed bool
}

// NewTransport creates an unconnected transport.
func NewTransport(opts Options) *Transport {
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 10 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	if opts.MaxFrameSize <= 0 {
		opts.MaxFrameSize = protocol.MaxFrameSize
	}
	return &Transport{
		opts:   opts,
		queue:  dispatch.NewQueue(opts.QueueCapacity),
		logger: log.With().Str("component", "transport").Str("role", opts.Role).Logger(),
		done:   make(chan struct{}),
	}
}

// Connect dials host:port, bounded by the dial timeout and ctx, and starts
// the read goroutine. A transport connects at most once.
func (t *Transport) Connect(ctx context.Context, host string, port uint16) error {
	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))

	dialer := net.Dialer{Timeout: t.opts.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s server at %s: %w", t.opts.Role, addr, err)
	}

	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		conn.Close()
		return ErrDisposed
	}
	if t.conn != nil {
		t.mu.Unlock()
		conn.Close()
		return fmt.Errorf("%s transport already connected to %s", t.opts.Role, t.conn.RemoteAddr())
	}
	now := time.Now()
	t.conn = conn
	t.connectedAt = now
	t.lastActivity = now
	t.logger = t.logger.With().Str("remote", addr).Logger()
	t.mu.Unlock()

	t.logger.Info().Msg("connected")

	go t.readLoop(conn)
	return nil
}

func (t *Transport) readLoop(conn net.Conn) {
	defer close(t.done)

	for {
		frame, err := protocol.ReadFrame(conn, t.opts.MaxFrameSize)
		if err != nil {
			t.signalDisconnect(err)
			return
		}

		t.mu.Lock()
		t.lastActivity = time.Now()
		t.mu.Unlock()

		t.opts.Metrics.FrameReceived(t.opts.Role, frame.Kind, protocol.HeaderSize+len(frame.Payload))

		err = t.queue.Push(dispatch.Message{Kind: frame.Kind, Payload: frame.Payload})
		switch {
		case err == nil:
		case errors.Is(err, dispatch.ErrQueueClosed):
			return
		default:
			t.logger.Error().
				Err(err).
				Int("queued", t.queue.Len()).
				Msg("consumer is not keeping up, dropping connection")
			conn.Close()
			t.signalDisconnect(err)
			return
		}
	}
}

// signalDisconnect queues the disconnect marker unless the drop was caused
// by a local Dispose.
func (t *Transport) signalDisconnect(err error) {
	t.mu.Lock()
	disposed := t.disposed
	t.mu.Unlock()
	if disposed {
		return
	}

	if errors.Is(err, io.EOF) {
		t.logger.Info().Msg("connection closed by server")
	} else {
		t.logger.Warn().Err(err).Msg("connection lost")
	}
	_ = t.queue.Push(dispatch.DisconnectMessage(err))
}

// Send writes a complete frame.
func (t *Transport) Send(frame []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed {
		return ErrDisposed
	}
	if t.conn == nil {
		return ErrNotConnected
	}

	t.conn.SetWriteDeadline(time.Now().Add(t.opts.WriteTimeout))
	if _, err := t.conn.Write(frame); err != nil {
		return fmt.Errorf("failed to write to %s server: %w", t.opts.Role, err)
	}

	t.lastActivity = time.Now()
	if len(frame) >= protocol.HeaderSize {
		if f, err := protocol.DecodeFrame(frame); err == nil {
			t.opts.Metrics.FrameSent(t.opts.Role, f.Kind, len(frame))
		}
	}
	return nil
}

// Dispose closes the connection and the queue. It is idempotent and safe to
// call while the read goroutine is pushing.
func (t *Transport) Dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed {
		return
	}
	t.disposed = true
	t.queue.Close()
	if t.conn != nil {
		t.conn.Close()
		t.logger.Debug().Msg("transport disposed")
	}
}

// DequeueAll drains the inbound queue on the calling goroutine.
func (t *Transport) DequeueAll(fn func(dispatch.Message)) int {
	return t.queue.DequeueAll(fn)
}

// QueueLen returns the number of inbound messages waiting.
func (t *Transport) QueueLen() int {
	return t.queue.Len()
}

// Done is closed when the read goroutine has exited.
func (t *Transport) Done() <-chan struct{} {
	return t.done
}

// LastActivity returns the time of the last read or write.
func (t *Transport) LastActivity() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastActivity
}

// ConnectedAt returns the time the connection was established.
func (t *Transport) ConnectedAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connectedAt
}
