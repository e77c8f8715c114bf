package network

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gatefield/gatefield/internal/protocol"
)

// FrameConnOptions configures a FrameConn.
type FrameConnOptions struct {
	MaxFrameSize int
	WriteTimeout time.Duration
}

// FrameConn is the server side of a framed connection, used by the dev
// server. Writes are serialised so handlers may push from several goroutines.
type FrameConn struct {
	mu     sync.Mutex
	conn   net.Conn
	opts   FrameConnOptions
	logger zerolog.Logger

	connectedAt  time.Time
	lastActivity time.Time

	closed bool
}

// NewFrameConn wraps an accepted connection.
func NewFrameConn(conn net.Conn, opts FrameConnOptions) *FrameConn {
	if opts.MaxFrameSize <= 0 {
		opts.MaxFrameSize = protocol.MaxFrameSize
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	now := time.Now()
	return &FrameConn{
		conn:         conn,
		opts:         opts,
		connectedAt:  now,
		lastActivity: now,
		logger:       log.With().Str("component", "frame_conn").Str("remote", conn.RemoteAddr().String()).Logger(),
	}
}

// ReadFrame blocks until a frame arrives or the timeout elapses.
func (c *FrameConn) ReadFrame(timeout time.Duration) (protocol.Frame, error) {
	if timeout > 0 {
		c.conn.SetReadDeadline(time.Now().Add(timeout))
	}

	frame, err := protocol.ReadFrame(c.conn, c.opts.MaxFrameSize)
	if err != nil {
		return protocol.Frame{}, err
	}

	c.mu.Lock()
	c.lastActivity = time.Now()
	c.mu.Unlock()

	return frame, nil
}

// Write sends a complete record.
func (c *FrameConn) Write(rec protocol.Record) error {
	return c.WriteRaw(protocol.Encode(rec))
}

// WriteRaw sends pre-built frame bytes.
func (c *FrameConn) WriteRaw(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("connection is closed")
	}

	c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout))
	if _, err := c.conn.Write(frame); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	c.lastActivity = time.Now()
	return nil
}

// Close closes the connection. Safe to call more than once.
func (c *FrameConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	c.logger.Debug().Msg("connection closed")
	return c.conn.Close()
}

// IsClosed returns whether the connection has been closed.
func (c *FrameConn) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// LastActivity returns the time of the last read/write activity.
func (c *FrameConn) LastActivity() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActivity
}

// RemoteAddr returns the remote address of the connection.
func (c *FrameConn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
