package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ConnHandler serves one accepted connection. The connection is closed when
// the handler returns.
type ConnHandler func(ctx context.Context, conn *FrameConn)

// TCPListener accepts connections and serves each in its own goroutine.
type TCPListener struct {
	name     string
	addr     string
	handler  ConnHandler
	opts     FrameConnOptions
	logger   zerolog.Logger
	listener net.Listener
	wg       sync.WaitGroup
}

// NewTCPListener creates a listener for addr. name identifies it in logs.
func NewTCPListener(name, addr string, opts FrameConnOptions, handler ConnHandler) *TCPListener {
	return &TCPListener{
		name:    name,
		addr:    addr,
		handler: handler,
		opts:    opts,
		logger:  log.With().Str("component", "listener").Str("listener", name).Logger(),
	}
}

// Listen binds the socket. Serve must be called afterwards.
func (l *TCPListener) Listen(ctx context.Context) error {
	lc := ReuseAddrListenConfig()
	ln, err := lc.Listen(ctx, "tcp", l.addr)
	if err != nil {
		return fmt.Errorf("failed to start %s listener on %s: %w", l.name, l.addr, err)
	}
	l.listener = ln
	l.logger.Info().Str("addr", ln.Addr().String()).Msg("listener started")
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (l *TCPListener) Addr() net.Addr {
	if l.listener == nil {
		return nil
	}
	return l.listener.Addr()
}

// Serve runs the accept loop until ctx is cancelled, then waits for the
// connection handlers to return.
func (l *TCPListener) Serve(ctx context.Context) error {
	if l.listener == nil {
		return fmt.Errorf("%s listener not bound", l.name)
	}

	stop := context.AfterFunc(ctx, func() {
		l.listener.Close()
	})
	defer stop()

	for {
		conn, err := l.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				l.logger.Info().Msg("listener stopping")
				l.wg.Wait()
				return nil
			}
			l.logger.Error().Err(err).Msg("failed to accept connection")
			continue
		}

		l.logger.Debug().Str("remote", conn.RemoteAddr().String()).Msg("new connection")

		fc := NewFrameConn(conn, l.opts)
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			defer fc.Close()
			stopConn := context.AfterFunc(ctx, func() { fc.Close() })
			defer stopConn()
			l.handler(ctx, fc)
		}()
	}
}

// Start binds and serves.
func (l *TCPListener) Start(ctx context.Context) error {
	if err := l.Listen(ctx); err != nil {
		return err
	}
	return l.Serve(ctx)
}

// Stop closes the listening socket.
func (l *TCPListener) Stop() error {
	if l.listener != nil {
		return l.listener.Close()
	}
	return nil
}
