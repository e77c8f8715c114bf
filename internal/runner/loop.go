// Package runner owns the connector on a single goroutine: it drains inbound
// messages once per tick, keeps the field connection alive with heartbeats
// and runs commands posted from other goroutines (API, CLI) in between.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gatefield/gatefield/internal/config"
	"github.com/gatefield/gatefield/internal/connector"
	"github.com/gatefield/gatefield/internal/events"
	"github.com/gatefield/gatefield/internal/metrics"
	"github.com/gatefield/gatefield/internal/protocol"
)

var (
	ErrBusy    = errors.New("command queue full")
	ErrStopped = errors.New("runner stopped")
)

const commandBuffer = 64

// Command runs on the loop goroutine with exclusive access to the connector.
type Command func(ctx context.Context, c *connector.Connector) error

type command struct {
	fn   Command
	done chan error
}

// Snapshot is the connector status published after every tick.
type Snapshot struct {
	State        events.ConnectionState `json:"state"`
	Session      events.Session         `json:"session"`
	QueueDepths  map[string]int         `json:"queue_depths"`
	HeartbeatSeq uint32                 `json:"heartbeat_seq"`
	Ticks        uint64                 `json:"ticks"`
	At           time.Time              `json:"at"`
}

// Loop drives a Connector.
type Loop struct {
	conn    *connector.Connector
	net     config.NetworkConfig
	account config.AccountConfig
	metrics *metrics.Collector
	logger  zerolog.Logger

	commands chan command
	stopped  chan struct{}
	running  atomic.Bool
	snapshot atomic.Pointer[Snapshot]

	// loop goroutine only
	ticks     uint64
	seq       uint32
	lastBeat  time.Time
	hadField  bool
	autoLogin bool
}

// New creates a Loop for conn. Account credentials, when AutoLogin is set,
// are sent as soon as the field connection opens, and CharacterID, when
// non-zero, is selected from the first character list.
func New(conn *connector.Connector, bus *events.EventBus, netCfg config.NetworkConfig, account config.AccountConfig, m *metrics.Collector) *Loop {
	l := &Loop{
		conn:     conn,
		net:      netCfg,
		account:  account,
		metrics:  m,
		logger:   log.With().Str("component", "runner").Logger(),
		commands: make(chan command, commandBuffer),
		stopped:  make(chan struct{}),
	}
	l.publish(time.Now())

	bus.Subscribe(events.EventStateChanged, "runner", func(ctx context.Context, event events.Event) error {
		p, ok := event.Payload.(events.StateChangedPayload)
		if ok && p.To == events.StateConnectingGate {
			l.autoLogin = l.account.AutoLogin
		}
		return nil
	})

	events.OnMessage(bus, "runner", func(ctx context.Context, m *protocol.CharListResp) error {
		if l.account.CharacterID == 0 || l.conn.State() != events.StateCharSelect {
			return nil
		}
		for _, ch := range m.Characters {
			if ch.CharID == l.account.CharacterID {
				return l.conn.SelectCharacter(ctx, ch.CharID)
			}
		}
		return fmt.Errorf("character %d not on account", l.account.CharacterID)
	})

	return l
}

// Run ticks until ctx is cancelled, then disconnects. It must be called once.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return fmt.Errorf("runner already started")
	}
	defer close(l.stopped)

	interval := l.net.TickInterval()
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.logger.Info().Dur("tick", interval).Msg("runner started")

	for {
		select {
		case <-ctx.Done():
			l.shutdown()
			l.logger.Info().Uint64("ticks", l.ticks).Msg("runner stopped")
			return nil
		case now := <-ticker.C:
			l.tick(ctx, now)
		}
	}
}

func (l *Loop) tick(ctx context.Context, now time.Time) {
	l.ticks++

	// only what was queued before this tick; commands posted by commands wait
	for n := len(l.commands); n > 0; n-- {
		l.execute(ctx, <-l.commands)
	}

	for role, depth := range l.conn.QueueDepths() {
		l.metrics.QueueDepth(string(role), depth)
	}
	l.conn.DrainOnce(ctx)

	l.maybeLogin(ctx)
	l.maybeHeartbeat(ctx, now)
	l.publish(now)
}

func (l *Loop) execute(ctx context.Context, cmd command) {
	err := cmd.fn(ctx, l.conn)
	if cmd.done != nil {
		cmd.done <- err
		return
	}
	if err != nil {
		l.logger.Warn().Err(err).Msg("posted command failed")
	}
}

func (l *Loop) maybeLogin(ctx context.Context) {
	if !l.autoLogin || !l.conn.HasField() || l.conn.State() != events.StateConnectingField {
		return
	}
	l.autoLogin = false
	if err := l.conn.Login(ctx, l.account.Username, l.account.Password); err != nil {
		l.logger.Error().Err(err).Msg("auto login failed")
	}
}

func (l *Loop) maybeHeartbeat(ctx context.Context, now time.Time) {
	hasField := l.conn.HasField()
	if hasField && !l.hadField {
		l.lastBeat = now
	}
	l.hadField = hasField

	interval := l.net.HeartbeatInterval()
	if !hasField || interval <= 0 || now.Sub(l.lastBeat) < interval {
		return
	}

	l.lastBeat = now
	l.seq++
	if err := l.conn.Heartbeat(ctx, l.seq); err != nil {
		l.logger.Warn().Err(err).Uint32("seq", l.seq).Msg("heartbeat failed")
	}
}

func (l *Loop) publish(now time.Time) {
	depths := make(map[string]int, 2)
	for role, depth := range l.conn.QueueDepths() {
		depths[string(role)] = depth
	}
	l.snapshot.Store(&Snapshot{
		State:        l.conn.State(),
		Session:      l.conn.Session(),
		QueueDepths:  depths,
		HeartbeatSeq: l.seq,
		Ticks:        l.ticks,
		At:           now,
	})
}

func (l *Loop) shutdown() {
	// fail anything still waiting
	for n := len(l.commands); n > 0; n-- {
		if cmd := <-l.commands; cmd.done != nil {
			cmd.done <- ErrStopped
		}
	}
	l.conn.Disconnect(context.Background(), "shutdown")
	l.publish(time.Now())
}

// Snapshot returns the status published after the latest tick.
func (l *Loop) Snapshot() Snapshot {
	return *l.snapshot.Load()
}

// Post queues fn without waiting for it. Errors are logged.
func (l *Loop) Post(fn Command) error {
	select {
	case <-l.stopped:
		return ErrStopped
	default:
	}
	select {
	case l.commands <- command{fn: fn}:
		return nil
	default:
		return ErrBusy
	}
}

// Exec queues fn and waits for its result, for at most the lifetime of ctx.
func (l *Loop) Exec(ctx context.Context, fn Command) error {
	cmd := command{fn: fn, done: make(chan error, 1)}
	select {
	case l.commands <- cmd:
	case <-l.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-cmd.done:
		return err
	case <-l.stopped:
		// shutdown may have answered before closing
		select {
		case err := <-cmd.done:
			return err
		default:
			return ErrStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}
