// Package connector implements the client connection state machine: it owns
// the gate and field transports, drives the gate -> field -> login ->
// character select -> in game handshake, and turns drained inbound messages
// into typed events.
//
// A Connector is not safe for concurrent use. All of its methods, DrainOnce
// included, must be called from the goroutine that owns the game tick.
package connector

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gatefield/gatefield/internal/config"
	"github.com/gatefield/gatefield/internal/dispatch"
	"github.com/gatefield/gatefield/internal/events"
	"github.com/gatefield/gatefield/internal/metrics"
	"github.com/gatefield/gatefield/internal/network"
	"github.com/gatefield/gatefield/internal/protocol"
)

var (
	ErrInvalidState   = errors.New("operation not allowed in current state")
	ErrNotConnected   = errors.New("not connected")
	ErrRouteRefused   = errors.New("gate refused route")
	ErrWrongDirection = errors.New("kind is not sent by the client")
)

// Role distinguishes the two transports a connector may own.
type Role string

const (
	RoleGate  Role = "gate"
	RoleField Role = "field"
)

// Transport is the connection contract the connector relies on. The read
// side delivers frames, and finally a dispatch.Message with Disconnect set,
// through DequeueAll.
type Transport interface {
	Connect(ctx context.Context, host string, port uint16) error
	Send(frame []byte) error
	Dispose()
	DequeueAll(fn func(dispatch.Message)) int
}

// Dialer creates a fresh, unconnected transport for role.
type Dialer func(role Role) Transport

// TCPDialer returns a Dialer producing network transports configured from cfg.
func TCPDialer(cfg config.NetworkConfig, m *metrics.Collector) Dialer {
	return func(role Role) Transport {
		return network.NewTransport(network.Options{
			Role:          string(role),
			DialTimeout:   cfg.ConnectTimeout(),
			WriteTimeout:  cfg.WriteTimeout(),
			MaxFrameSize:  cfg.MaxFrameSize,
			QueueCapacity: cfg.QueueCapacity,
			Metrics:       m,
		})
	}
}

// Option configures a Connector.
type Option func(*Connector)

// WithMetrics records protocol and state metrics on m.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Connector) {
		c.metrics = m
	}
}

// Connector is the connection state machine.
type Connector struct {
	cfg     config.NetworkConfig
	dial    Dialer
	bus     *events.EventBus
	metrics *metrics.Collector
	logger  zerolog.Logger

	state   events.ConnectionState
	session events.Session

	gate  Transport
	field Transport
}

// New creates a disconnected Connector.
func New(cfg config.NetworkConfig, dial Dialer, bus *events.EventBus, opts ...Option) *Connector {
	c := &Connector{
		cfg:    cfg,
		dial:   dial,
		bus:    bus,
		logger: log.With().Str("component", "connector").Logger(),
		state:  events.StateDisconnected,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current connection state.
func (c *Connector) State() events.ConnectionState {
	return c.state
}

// Session returns a copy of the session fields.
func (c *Connector) Session() events.Session {
	return c.session
}

// HasField reports whether a field transport is currently owned.
func (c *Connector) HasField() bool {
	return c.field != nil
}

// QueueDepths returns the number of undrained inbound messages per role,
// for transports that expose it.
func (c *Connector) QueueDepths() map[Role]int {
	depths := make(map[Role]int, 2)
	type lener interface{ QueueLen() int }
	if l, ok := c.gate.(lener); ok {
		depths[RoleGate] = l.QueueLen()
	}
	if l, ok := c.field.(lener); ok {
		depths[RoleField] = l.QueueLen()
	}
	return depths
}

// DrainOnce handles every message currently queued on the gate transport,
// then on the field transport, in arrival order. It returns the number of
// messages taken off the queues.
func (c *Connector) DrainOnce(ctx context.Context) int {
	n := 0
	if gate := c.gate; gate != nil {
		n += gate.DequeueAll(func(m dispatch.Message) {
			c.handle(ctx, gate, RoleGate, m)
		})
	}
	if field := c.field; field != nil {
		n += field.DequeueAll(func(m dispatch.Message) {
			c.handle(ctx, field, RoleField, m)
		})
	}
	c.metrics.DrainBatch(n)
	return n
}

func (c *Connector) owner(role Role) Transport {
	if role == RoleGate {
		return c.gate
	}
	return c.field
}

func (c *Connector) handle(ctx context.Context, from Transport, role Role, m dispatch.Message) {
	if c.owner(role) != from {
		// transport was released earlier in this drain
		c.logger.Trace().Str("role", string(role)).Stringer("kind", m.Kind).Msg("dropping message from released transport")
		return
	}

	if m.Disconnect {
		if role == RoleGate {
			c.logger.Debug().Msg("gate disconnect ignored")
			return
		}
		reason := "connection closed"
		if m.Err != nil {
			reason = m.Err.Error()
		}
		c.dropField(ctx, reason)
		return
	}

	rec, err := protocol.Parse(m.Kind, m.Payload)
	if err != nil {
		c.protocolError(ctx, m.Kind, len(m.Payload), err)
		return
	}
	if m.Kind.Direction() != protocol.ToClient {
		c.protocolError(ctx, m.Kind, len(m.Payload), ErrWrongDirection)
		return
	}

	c.logger.Trace().Str("role", string(role)).Stringer("kind", m.Kind).Int("payload_len", len(m.Payload)).Msg("message received")
	c.route(ctx, role, rec)
}

func (c *Connector) protocolError(ctx context.Context, kind protocol.Kind, payloadLen int, err error) {
	reason := "malformed"
	switch {
	case errors.Is(err, protocol.ErrUnknownKind):
		reason = "unknown_kind"
	case errors.Is(err, protocol.ErrTruncated):
		reason = "truncated"
	case errors.Is(err, protocol.ErrInvalidEncoding):
		reason = "invalid_encoding"
	case errors.Is(err, ErrWrongDirection):
		reason = "wrong_direction"
	}

	c.logger.Warn().
		Err(err).
		Uint16("kind", uint16(kind)).
		Int("payload_len", payloadLen).
		Msg("dropping inbound message")
	c.metrics.ProtocolError(kind, reason)
	c.emit(ctx, events.EventProtocolError, events.ProtocolErrorPayload{Kind: kind, Err: err})
}

func (c *Connector) route(ctx context.Context, role Role, rec protocol.Record) {
	switch m := rec.(type) {
	case *protocol.GateRouteResp:
		if role != RoleGate {
			c.logger.Warn().Msg("route response received on field connection, ignoring")
			return
		}
		c.onGateRoute(ctx, m)
		return
	case *protocol.LoginResult:
		c.onLoginResult(ctx, m)
		return
	case *protocol.EnterGame:
		c.onEnterGame(ctx, m)
		return
	case *protocol.ZoneInfo:
		c.session.ZoneID = m.ZoneID
		c.emit(ctx, events.EventSessionUpdate, c.session)
	case *protocol.ChannelInfo:
		c.session.ChannelID = m.ChannelID
		c.emit(ctx, events.EventSessionUpdate, c.session)
	case protocol.EntityBroadcast:
		if c.session.EntityID != 0 && m.Subject() == c.session.EntityID {
			c.metrics.SelfFiltered()
			return
		}
	}
	c.emitMessage(ctx, role, rec)
}

func (c *Connector) setState(ctx context.Context, to events.ConnectionState) {
	from := c.state
	if from == to {
		return
	}
	c.state = to

	c.logger.Info().Stringer("from", from).Stringer("to", to).Msg("connection state changed")
	c.metrics.Transition(from.String(), to.String(), int(to))
	c.emit(ctx, events.EventStateChanged, events.StateChangedPayload{From: from, To: to})
}

func (c *Connector) emit(ctx context.Context, t events.EventType, payload interface{}) {
	c.bus.Emit(ctx, events.Event{Type: t, Source: "connector", Payload: payload})
}

func (c *Connector) emitMessage(ctx context.Context, role Role, rec protocol.Record) {
	c.bus.Emit(ctx, events.Event{
		Type:    events.MessageEvent(rec.Kind()),
		Source:  string(role),
		Payload: rec,
	})
}

func (c *Connector) emitConnectError(ctx context.Context, stage events.Stage, err error) {
	c.logger.Error().Err(err).Str("stage", string(stage)).Msg("connection failed")
	c.metrics.ConnectError(string(stage))
	c.emit(ctx, events.EventConnectError, events.ConnectErrorPayload{Stage: stage, Err: err})
}

// connect dials t, bounded by the configured connect timeout.
func (c *Connector) connect(ctx context.Context, t Transport, host string, port uint16) error {
	cctx, cancel := context.WithTimeout(ctx, c.cfg.ConnectTimeout())
	defer cancel()
	return t.Connect(cctx, host, port)
}

// releaseGate clears the gate handle before disposing it.
func (c *Connector) releaseGate() {
	gate := c.gate
	c.gate = nil
	if gate != nil {
		gate.Dispose()
	}
}

// dropField ends the field session: the handle is cleared and disposed,
// session fields are reset and the disconnect event fires once.
func (c *Connector) dropField(ctx context.Context, reason string) {
	field := c.field
	if field == nil {
		return
	}
	c.field = nil
	field.Dispose()

	ended := c.session
	c.session = events.Session{}
	c.setState(ctx, events.StateDisconnected)

	c.logger.Info().Str("reason", reason).Msg("field session ended")
	c.metrics.Disconnected()
	c.emit(ctx, events.EventDisconnected, events.DisconnectedPayload{Reason: reason, Session: ended})
}

// send encodes rec and writes it on the transport for role. A write failure
// is a transport error: the transport is dropped and the state reset.
func (c *Connector) send(ctx context.Context, role Role, rec protocol.Record) error {
	t := c.owner(role)
	if t == nil {
		return fmt.Errorf("%w: no %s transport", ErrNotConnected, role)
	}

	if err := t.Send(protocol.Encode(rec)); err != nil {
		c.emitConnectError(ctx, events.StageSend, err)
		if role == RoleGate {
			c.releaseGate()
			c.setState(ctx, events.StateDisconnected)
		} else {
			c.dropField(ctx, "send failed")
		}
		return fmt.Errorf("failed to send %s: %w", rec.Kind(), err)
	}

	c.logger.Trace().Str("role", string(role)).Stringer("kind", rec.Kind()).Msg("message sent")
	return nil
}

// Disconnect releases both transports and returns to Disconnected. The
// disconnect event fires if a field session was up.
func (c *Connector) Disconnect(ctx context.Context, reason string) {
	c.releaseGate()
	if c.field != nil {
		c.dropField(ctx, reason)
		return
	}
	c.session = events.Session{}
	c.setState(ctx, events.StateDisconnected)
}
