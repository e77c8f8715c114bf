package connector

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatefield/gatefield/internal/config"
	"github.com/gatefield/gatefield/internal/events"
	"github.com/gatefield/gatefield/internal/protocol"
	"github.com/gatefield/gatefield/internal/testutil"
)

type harness struct {
	c     *Connector
	bus   *events.EventBus
	gate  *testutil.FakeTransport
	field *testutil.FakeTransport
	ctx   context.Context

	dials          map[Role]int
	gateDisposedAt int
	recorded       []events.Event
}

func newHarness(t *testing.T, mutate ...func(*config.NetworkConfig)) *harness {
	t.Helper()

	cfg := config.DefaultConfig().Network
	cfg.GateHost = "gate.test"
	cfg.GatePort = 7100
	cfg.AutoCharList = false
	for _, m := range mutate {
		m(&cfg)
	}

	h := &harness{
		bus:   events.NewEventBus(),
		gate:  testutil.NewFakeTransport(),
		field: testutil.NewFakeTransport(),
		ctx:   testutil.ContextWithTimeout(t, 5*time.Second),
		dials: make(map[Role]int),
	}
	dial := func(role Role) Transport {
		h.dials[role]++
		if role == RoleGate {
			return h.gate
		}
		h.gateDisposedAt = h.gate.Disposed()
		return h.field
	}
	h.bus.SubscribeAll("recorder", func(ctx context.Context, e events.Event) error {
		h.recorded = append(h.recorded, e)
		return nil
	})
	h.c = New(cfg, dial, h.bus)
	return h
}

func (h *harness) drain() int {
	return h.c.DrainOnce(h.ctx)
}

func (h *harness) ofType(t events.EventType) []events.Event {
	var out []events.Event
	for _, e := range h.recorded {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (h *harness) messages() []protocol.Record {
	var out []protocol.Record
	for _, e := range h.recorded {
		if e.Type.IsMessage() {
			out = append(out, e.Payload.(protocol.Record))
		}
	}
	return out
}

func (h *harness) toField(t *testing.T) {
	t.Helper()
	require.NoError(t, h.c.ConnectToGate(h.ctx))
	h.gate.Deliver(&protocol.GateRouteResp{Result: protocol.RouteOK, Port: 7101, IP: "10.0.0.2"})
	h.drain()
	require.Equal(t, events.StateConnectingField, h.c.State())
}

func (h *harness) toCharSelect(t *testing.T) {
	t.Helper()
	h.toField(t)
	require.NoError(t, h.c.Login(h.ctx, "alice", "secret"))
	h.field.Deliver(&protocol.LoginResult{Result: protocol.LoginOK, AccountID: 77})
	h.drain()
	require.Equal(t, events.StateCharSelect, h.c.State())
}

func (h *harness) toInGame(t *testing.T) {
	t.Helper()
	h.toCharSelect(t)
	require.NoError(t, h.c.SelectCharacter(h.ctx, 1))
	h.field.Deliver(&protocol.EnterGame{EntityID: 42, ZoneID: 3, Pos: protocol.Vec3{X: 1, Y: 2, Z: 3}})
	h.drain()
	require.Equal(t, events.StateInGame, h.c.State())
}

func TestGateRouteHandsOffToField(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.c.ConnectToGate(h.ctx))
	assert.Equal(t, events.StateConnectingGate, h.c.State())
	assert.Equal(t, []protocol.Kind{protocol.KindGateRouteReq}, h.gate.SentKinds())
	host, port := h.gate.Target()
	assert.Equal(t, "gate.test", host)
	assert.Equal(t, uint16(7100), port)

	h.gate.Deliver(&protocol.GateRouteResp{Result: protocol.RouteOK, Port: 7101, IP: "10.0.0.2"})
	require.Equal(t, 1, h.drain())

	assert.Equal(t, events.StateConnectingField, h.c.State())
	assert.Equal(t, 1, h.gate.Disposed())
	assert.Equal(t, 1, h.gateDisposedAt, "gate must be disposed before the field is dialed")
	assert.True(t, h.c.HasField())

	host, port = h.field.Target()
	assert.Equal(t, "10.0.0.2", host)
	assert.Equal(t, uint16(7101), port)

	routed := h.ofType(events.EventGateRouted)
	require.Len(t, routed, 1)
	assert.Equal(t, events.GateRoutedPayload{Host: "10.0.0.2", Port: 7101}, routed[0].Payload)
	require.Len(t, h.ofType(events.MessageEvent(protocol.KindGateRouteResp)), 1)

	var states []events.ConnectionState
	for _, e := range h.ofType(events.EventStateChanged) {
		states = append(states, e.Payload.(events.StateChangedPayload).To)
	}
	assert.Equal(t, []events.ConnectionState{events.StateConnectingGate, events.StateConnectingField}, states)
}

func TestEnterGameSetsSession(t *testing.T) {
	h := newHarness(t)
	h.toInGame(t)

	s := h.c.Session()
	assert.Equal(t, uint64(42), s.EntityID)
	assert.Equal(t, int32(3), s.ZoneID)
	assert.Equal(t, uint32(77), s.AccountID)

	entered := h.ofType(events.EventEnteredGame)
	require.Len(t, entered, 1)
	assert.Equal(t, s, entered[0].Payload)

	enter := h.ofType(events.MessageEvent(protocol.KindEnterGame))
	require.Len(t, enter, 1)
	assert.Equal(t, "field", enter[0].Source)
}

func TestFieldDropDisconnectsOnce(t *testing.T) {
	h := newHarness(t)
	h.toInGame(t)
	before := len(h.messages())

	h.field.Deliver(
		&protocol.MoveBroadcast{EntityID: 5},
		&protocol.MoveBroadcast{EntityID: 6},
	)
	h.field.Drop(io.EOF)
	h.field.Deliver(&protocol.MoveBroadcast{EntityID: 7})
	h.field.Drop(io.ErrUnexpectedEOF)

	h.drain()

	assert.Equal(t, events.StateDisconnected, h.c.State())
	assert.Equal(t, events.Session{}, h.c.Session())
	assert.False(t, h.c.HasField())
	assert.Equal(t, 1, h.field.Disposed())

	dropped := h.ofType(events.EventDisconnected)
	require.Len(t, dropped, 1)
	p := dropped[0].Payload.(events.DisconnectedPayload)
	assert.Equal(t, io.EOF.Error(), p.Reason)
	assert.Equal(t, uint64(42), p.Session.EntityID)

	// messages queued ahead of the marker are still delivered, later ones are not
	assert.Len(t, h.messages(), before+2)

	assert.Zero(t, h.drain())
	assert.Len(t, h.ofType(events.EventDisconnected), 1)
}

func TestSelfBroadcastsFiltered(t *testing.T) {
	h := newHarness(t)
	h.toInGame(t)
	before := len(h.messages())

	h.field.Deliver(
		&protocol.Appear{EntityID: 42},
		&protocol.MoveBroadcast{EntityID: 42},
		&protocol.DashBroadcast{EntityID: 42},
		&protocol.MoveBroadcast{EntityID: 7, Pos: protocol.Vec3{X: 9}},
		&protocol.MonsterSpawn{EntityID: 42},
	)
	h.drain()

	got := h.messages()[before:]
	require.Len(t, got, 2)
	assert.Equal(t, &protocol.MoveBroadcast{EntityID: 7, Pos: protocol.Vec3{X: 9}}, got[0])
	// only entity position broadcasts are filtered
	assert.IsType(t, &protocol.MonsterSpawn{}, got[1])
}

func TestSelfFilterInactiveWithoutEntity(t *testing.T) {
	h := newHarness(t)
	h.toCharSelect(t)

	h.field.Deliver(&protocol.Appear{EntityID: 0})
	h.drain()

	require.Len(t, h.ofType(events.MessageEvent(protocol.KindAppear)), 1)
}

func TestBadInboundMessagesDropped(t *testing.T) {
	h := newHarness(t)
	h.toInGame(t)

	h.field.DeliverRaw(protocol.Kind(4242), []byte{1, 2, 3})
	h.field.DeliverRaw(protocol.KindZoneInfo, []byte{1})
	h.field.DeliverRaw(protocol.KindMove, protocol.Marshal(&protocol.Move{}))
	h.field.Deliver(&protocol.ChatBroadcast{Sender: 9, Name: "bob", Text: "hi"})
	h.drain()

	errs := h.ofType(events.EventProtocolError)
	require.Len(t, errs, 3)
	assert.ErrorIs(t, errs[0].Payload.(events.ProtocolErrorPayload).Err, protocol.ErrUnknownKind)
	assert.ErrorIs(t, errs[1].Payload.(events.ProtocolErrorPayload).Err, protocol.ErrTruncated)
	assert.ErrorIs(t, errs[2].Payload.(events.ProtocolErrorPayload).Err, ErrWrongDirection)

	assert.Equal(t, events.StateInGame, h.c.State())
	assert.Equal(t, int32(3), h.c.Session().ZoneID)
	require.Len(t, h.ofType(events.MessageEvent(protocol.KindChatBroadcast)), 1)
}

func TestZoneAndChannelUpdateSession(t *testing.T) {
	h := newHarness(t)
	h.toInGame(t)

	h.field.Deliver(&protocol.ZoneInfo{ZoneID: 8, Name: "harbor"}, &protocol.ChannelInfo{ChannelID: 2})
	h.drain()

	s := h.c.Session()
	assert.Equal(t, int32(8), s.ZoneID)
	assert.Equal(t, int32(2), s.ChannelID)
	assert.Len(t, h.ofType(events.EventSessionUpdate), 2)
	assert.Len(t, h.ofType(events.MessageEvent(protocol.KindZoneInfo)), 1)
}

func TestSendLegality(t *testing.T) {
	h := newHarness(t)

	assert.ErrorIs(t, h.c.Login(h.ctx, "a", "b"), ErrInvalidState)
	assert.ErrorIs(t, h.c.Move(h.ctx, protocol.Vec3{}), ErrNotConnected)
	assert.ErrorIs(t, h.c.Send(h.ctx, &protocol.LoginResult{}), ErrWrongDirection)

	h.toField(t)
	assert.ErrorIs(t, h.c.RequestCharList(h.ctx), ErrInvalidState)
	assert.ErrorIs(t, h.c.Send(h.ctx, &protocol.Login{Username: "a"}), ErrInvalidState)
	assert.ErrorIs(t, h.c.ConnectToGate(h.ctx), ErrInvalidState)
	assert.NoError(t, h.c.Heartbeat(h.ctx, 1))

	require.NoError(t, h.c.Login(h.ctx, "alice", "secret"))
	assert.Equal(t, events.StateLoggingIn, h.c.State())
	assert.ErrorIs(t, h.c.Login(h.ctx, "alice", "secret"), ErrInvalidState)

	h.field.Deliver(&protocol.LoginResult{Result: protocol.LoginOK, AccountID: 77})
	h.drain()
	assert.ErrorIs(t, h.c.Move(h.ctx, protocol.Vec3{}), ErrInvalidState)
	assert.NoError(t, h.c.CreateCharacter(h.ctx, "hero", 2))
	assert.NoError(t, h.c.Logout(h.ctx))

	assert.Equal(t, []protocol.Kind{
		protocol.KindHeartbeat,
		protocol.KindLogin,
		protocol.KindCharCreate,
		protocol.KindLogout,
	}, h.field.SentKinds())
}

func TestLoginRejectedAllowsRetry(t *testing.T) {
	h := newHarness(t)
	h.toField(t)

	require.NoError(t, h.c.Login(h.ctx, "alice", "wrong"))
	h.field.DeliverRaw(protocol.KindLoginResult, []byte{2})
	h.drain()

	assert.Equal(t, events.StateConnectingField, h.c.State())
	assert.Zero(t, h.c.Session().AccountID)
	res := h.ofType(events.MessageEvent(protocol.KindLoginResult))
	require.Len(t, res, 1)
	assert.Equal(t, protocol.LoginWrongPassword, res[0].Payload.(*protocol.LoginResult).Result)

	assert.NoError(t, h.c.Login(h.ctx, "alice", "secret"))
}

func TestAutoCharList(t *testing.T) {
	h := newHarness(t, func(n *config.NetworkConfig) { n.AutoCharList = true })
	h.toCharSelect(t)

	assert.Equal(t, []protocol.Kind{protocol.KindLogin, protocol.KindCharListReq}, h.field.SentKinds())
}

func TestGateConnectFailure(t *testing.T) {
	h := newHarness(t)
	refused := errors.New("connection refused")
	h.gate.FailConnect(refused)

	err := h.c.ConnectToGate(h.ctx)
	require.ErrorIs(t, err, refused)

	assert.Equal(t, events.StateDisconnected, h.c.State())
	assert.Equal(t, 1, h.gate.Disposed())
	errs := h.ofType(events.EventConnectError)
	require.Len(t, errs, 1)
	assert.Equal(t, events.StageGate, errs[0].Payload.(events.ConnectErrorPayload).Stage)

	// ready to retry
	h.gate.FailConnect(nil)
	require.NoError(t, h.c.ConnectToGate(h.ctx))
}

func TestRouteRefused(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.c.ConnectToGate(h.ctx))

	h.gate.Deliver(&protocol.GateRouteResp{Result: protocol.RouteServerFull})
	h.drain()

	assert.Equal(t, events.StateDisconnected, h.c.State())
	assert.Equal(t, 1, h.gate.Disposed())
	assert.Zero(t, h.dials[RoleField])

	errs := h.ofType(events.EventConnectError)
	require.Len(t, errs, 1)
	p := errs[0].Payload.(events.ConnectErrorPayload)
	assert.Equal(t, events.StageRoute, p.Stage)
	assert.ErrorIs(t, p.Err, ErrRouteRefused)
	assert.Empty(t, h.ofType(events.EventDisconnected))
}

func TestFieldConnectFailure(t *testing.T) {
	h := newHarness(t)
	h.field.FailConnect(errors.New("timeout"))

	require.NoError(t, h.c.ConnectToGate(h.ctx))
	h.gate.Deliver(&protocol.GateRouteResp{Result: protocol.RouteOK, Port: 7101, IP: "10.0.0.2"})
	h.drain()

	assert.Equal(t, events.StateDisconnected, h.c.State())
	assert.False(t, h.c.HasField())
	assert.Equal(t, 1, h.field.Disposed())
	errs := h.ofType(events.EventConnectError)
	require.Len(t, errs, 1)
	assert.Equal(t, events.StageField, errs[0].Payload.(events.ConnectErrorPayload).Stage)
}

func TestGateDisconnectIgnored(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.c.ConnectToGate(h.ctx))

	h.gate.Drop(io.EOF)
	h.drain()

	assert.Equal(t, events.StateConnectingGate, h.c.State())
	assert.Empty(t, h.ofType(events.EventDisconnected))
}

func TestEnterGameFailureKeepsCharSelect(t *testing.T) {
	h := newHarness(t)
	h.toCharSelect(t)

	h.field.DeliverRaw(protocol.KindEnterGame, []byte{4})
	h.drain()

	assert.Equal(t, events.StateCharSelect, h.c.State())
	assert.Zero(t, h.c.Session().EntityID)
	assert.Empty(t, h.ofType(events.EventEnteredGame))
	require.Len(t, h.ofType(events.MessageEvent(protocol.KindEnterGame)), 1)
}

func TestSendFailureDropsField(t *testing.T) {
	h := newHarness(t)
	h.toCharSelect(t)
	h.field.FailSend(errors.New("broken pipe"))

	require.Error(t, h.c.RequestCharList(h.ctx))

	assert.Equal(t, events.StateDisconnected, h.c.State())
	require.Len(t, h.ofType(events.EventDisconnected), 1)
	errs := h.ofType(events.EventConnectError)
	require.Len(t, errs, 1)
	assert.Equal(t, events.StageSend, errs[0].Payload.(events.ConnectErrorPayload).Stage)
}

func TestDisconnectIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.toInGame(t)

	h.c.Disconnect(h.ctx, "user")
	h.c.Disconnect(h.ctx, "user")

	assert.Equal(t, events.StateDisconnected, h.c.State())
	dropped := h.ofType(events.EventDisconnected)
	require.Len(t, dropped, 1)
	assert.Equal(t, "user", dropped[0].Payload.(events.DisconnectedPayload).Reason)
	assert.Equal(t, 1, h.field.Disposed())
}
