package devserver

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatefield/gatefield/internal/config"
	"github.com/gatefield/gatefield/internal/connector"
	"github.com/gatefield/gatefield/internal/events"
	"github.com/gatefield/gatefield/internal/network"
	"github.com/gatefield/gatefield/internal/protocol"
	"github.com/gatefield/gatefield/internal/runner"
)

func startServer(t *testing.T) *Server {
	t.Helper()

	srv := New(config.DevServerConfig{
		GateAddr:        "127.0.0.1:0",
		FieldAddr:       "127.0.0.1:0",
		FieldPublicHost: "127.0.0.1",
		Accounts:        map[string]string{"alice": "pw", "bob": "pw"},
	}, network.FrameConnOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, srv.Listen(ctx))

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("dev server did not stop")
		}
	})
	return srv
}

// rawClient speaks the protocol directly, without a connector.
type rawClient struct {
	t    *testing.T
	conn net.Conn
}

func dialRaw(t *testing.T, addr net.Addr) *rawClient {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr.String(), 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &rawClient{t: t, conn: conn}
}

func (c *rawClient) send(rec protocol.Record) {
	c.t.Helper()
	_, err := c.conn.Write(protocol.Encode(rec))
	require.NoError(c.t, err)
}

func (c *rawClient) recv() protocol.Record {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	frame, err := protocol.ReadFrame(c.conn, 0)
	require.NoError(c.t, err)
	rec, err := protocol.Parse(frame.Kind, frame.Payload)
	require.NoError(c.t, err)
	return rec
}

// recvKind skips broadcasts until a record of kind arrives.
func (c *rawClient) recvKind(kind protocol.Kind) protocol.Record {
	c.t.Helper()
	return c.recvMatch(kind, func(protocol.Record) bool { return true })
}

func (c *rawClient) recvMatch(kind protocol.Kind, match func(protocol.Record) bool) protocol.Record {
	c.t.Helper()
	for i := 0; i < 16; i++ {
		if rec := c.recv(); rec.Kind() == kind && match(rec) {
			return rec
		}
	}
	c.t.Fatalf("no matching %s received", kind)
	return nil
}

func (c *rawClient) enter(user string, charID uint32) uint64 {
	c.t.Helper()
	c.send(&protocol.Login{Username: user, Password: "pw"})
	require.Equal(c.t, protocol.LoginOK, c.recv().(*protocol.LoginResult).Result)
	c.send(&protocol.CharSelect{CharID: charID})
	eg := c.recvKind(protocol.KindEnterGame).(*protocol.EnterGame)
	require.Zero(c.t, eg.Result)
	return eg.EntityID
}

func TestGateRoutesToField(t *testing.T) {
	srv := startServer(t)

	c := dialRaw(t, srv.GateAddr())
	c.send(&protocol.GateRouteReq{})
	resp := c.recv().(*protocol.GateRouteResp)

	assert.Equal(t, protocol.RouteOK, resp.Result)
	assert.Equal(t, "127.0.0.1", resp.IP)
	assert.Equal(t, uint16(srv.FieldAddr().(*net.TCPAddr).Port), resp.Port)

	// the gate hangs up after routing
	require.NoError(t, c.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, err := protocol.ReadFrame(c.conn, 0)
	assert.Error(t, err)
}

func TestGateRejectsOtherKinds(t *testing.T) {
	srv := startServer(t)

	c := dialRaw(t, srv.GateAddr())
	c.send(&protocol.Heartbeat{Seq: 1})
	resp := c.recv().(*protocol.ErrorResp)
	assert.Equal(t, uint16(protocol.KindHeartbeat), resp.ReqKind)
}

func TestFieldLogin(t *testing.T) {
	srv := startServer(t)

	tests := []struct {
		name     string
		user     string
		password string
		want     protocol.LoginCode
	}{
		{"unknown account", "mallory", "pw", protocol.LoginNoSuchAccount},
		{"wrong password", "alice", "nope", protocol.LoginWrongPassword},
		{"ok", "alice", "pw", protocol.LoginOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := dialRaw(t, srv.FieldAddr())
			c.send(&protocol.Login{Username: tt.user, Password: tt.password})
			res := c.recv().(*protocol.LoginResult)
			assert.Equal(t, tt.want, res.Result)
			if tt.want == protocol.LoginOK {
				assert.NotZero(t, res.AccountID)
			}
		})
	}
}

func TestFieldRequiresLogin(t *testing.T) {
	srv := startServer(t)
	c := dialRaw(t, srv.FieldAddr())

	c.send(&protocol.Heartbeat{Seq: 7})
	assert.Equal(t, uint32(7), c.recv().(*protocol.HeartbeatAck).Seq)

	c.send(&protocol.CharListReq{})
	assert.Equal(t, uint16(401), c.recv().(*protocol.ErrorResp).Code)
}

func TestFieldAlreadyOnline(t *testing.T) {
	srv := startServer(t)

	first := dialRaw(t, srv.FieldAddr())
	first.send(&protocol.Login{Username: "bob", Password: "pw"})
	require.Equal(t, protocol.LoginOK, first.recv().(*protocol.LoginResult).Result)

	second := dialRaw(t, srv.FieldAddr())
	second.send(&protocol.Login{Username: "bob", Password: "pw"})
	assert.Equal(t, protocol.LoginAlreadyOnline, second.recv().(*protocol.LoginResult).Result)
}

func TestFieldCharacters(t *testing.T) {
	srv := startServer(t)
	c := dialRaw(t, srv.FieldAddr())

	c.send(&protocol.Login{Username: "alice", Password: "pw"})
	require.Equal(t, protocol.LoginOK, c.recv().(*protocol.LoginResult).Result)

	c.send(&protocol.CharListReq{})
	list := c.recv().(*protocol.CharListResp)
	require.Len(t, list.Characters, 1)
	assert.Equal(t, "alice", list.Characters[0].Name)

	c.send(&protocol.CharCreate{Name: "mage", Job: 2})
	created := c.recv().(*protocol.CharCreateResult)
	require.Zero(t, created.Result)

	c.send(&protocol.CharCreate{Name: "mage", Job: 2})
	assert.NotZero(t, c.recv().(*protocol.CharCreateResult).Result)

	c.send(&protocol.CharDelete{CharID: created.CharID})
	assert.Zero(t, c.recv().(*protocol.CharDeleteResult).Result)

	c.send(&protocol.CharSelect{CharID: 999})
	assert.Equal(t, uint8(1), c.recv().(*protocol.EnterGame).Result)

	c.send(&protocol.Move{Pos: protocol.Vec3{X: 1}})
	assert.Equal(t, uint16(409), c.recv().(*protocol.ErrorResp).Code)
}

func TestFieldWorld(t *testing.T) {
	srv := startServer(t)

	alice := dialRaw(t, srv.FieldAddr())
	aliceID := alice.enter("alice", 1)

	bob := dialRaw(t, srv.FieldAddr())
	bobID := bob.enter("bob", 2)
	require.NotEqual(t, aliceID, bobID)

	alice.recvMatch(protocol.KindAppear, func(rec protocol.Record) bool {
		return rec.(*protocol.Appear).EntityID == bobID
	})

	bob.send(&protocol.Move{Pos: protocol.Vec3{X: 5, Y: 0, Z: 6}})
	moved := alice.recvKind(protocol.KindMoveBroadcast).(*protocol.MoveBroadcast)
	assert.Equal(t, bobID, moved.EntityID)
	assert.Equal(t, float32(6), moved.Pos.Z)

	alice.send(&protocol.Whisper{Target: "bob", Text: "psst"})
	assert.Zero(t, alice.recvKind(protocol.KindWhisperResult).(*protocol.WhisperResult).Result)
	w := bob.recvKind(protocol.KindWhisperRecv).(*protocol.WhisperRecv)
	assert.Equal(t, "alice", w.Sender)
	assert.Equal(t, "psst", w.Text)

	alice.send(&protocol.Whisper{Target: "nobody", Text: "hi"})
	assert.Equal(t, uint8(1), alice.recvKind(protocol.KindWhisperResult).(*protocol.WhisperResult).Result)

	bob.send(&protocol.Logout{})
	bob.recvKind(protocol.KindLogoutResult)
	gone := alice.recvKind(protocol.KindDisappear).(*protocol.Disappear)
	assert.Equal(t, bobID, gone.EntityID)
}

func TestClientReachesGame(t *testing.T) {
	srv := startServer(t)
	gate := srv.GateAddr().(*net.TCPAddr)

	netCfg := config.DefaultConfig().Network
	netCfg.GateHost = "127.0.0.1"
	netCfg.GatePort = uint16(gate.Port)
	netCfg.TickIntervalMs = 2

	bus := events.NewEventBus()
	var (
		mu   sync.Mutex
		seen []events.EventType
	)
	bus.SubscribeAll("test", func(ctx context.Context, ev events.Event) error {
		mu.Lock()
		seen = append(seen, ev.Type)
		mu.Unlock()
		return nil
	})
	hits := make(chan *protocol.AttackResult, 4)
	events.OnMessage(bus, "test", func(ctx context.Context, m *protocol.AttackResult) error {
		hits <- m
		return nil
	})
	chats := make(chan *protocol.ChatBroadcast, 4)
	events.OnMessage(bus, "test", func(ctx context.Context, m *protocol.ChatBroadcast) error {
		chats <- m
		return nil
	})

	conn := connector.New(netCfg, connector.TCPDialer(netCfg, nil), bus)
	loop := runner.New(conn, bus, netCfg, config.AccountConfig{
		Username:    "alice",
		Password:    "pw",
		AutoLogin:   true,
		CharacterID: 1,
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, loop.Run(ctx))
	}()
	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})

	require.NoError(t, loop.Exec(ctx, func(ctx context.Context, c *connector.Connector) error {
		return c.ConnectToGate(ctx)
	}))

	require.Eventually(t, func() bool {
		s := loop.Snapshot()
		return s.State == events.StateInGame && s.Session.ChannelID == startChannel
	}, 5*time.Second, 10*time.Millisecond)

	session := loop.Snapshot().Session
	assert.Equal(t, entityBase+1, session.EntityID)
	assert.Equal(t, startZone, session.ZoneID)

	require.NoError(t, loop.Exec(ctx, func(ctx context.Context, c *connector.Connector) error {
		return c.Attack(ctx, 900_001)
	}))
	select {
	case hit := <-hits:
		assert.Equal(t, int32(75), hit.TargetHP)
	case <-time.After(3 * time.Second):
		t.Fatal("no attack result")
	}

	require.NoError(t, loop.Exec(ctx, func(ctx context.Context, c *connector.Connector) error {
		return c.Chat(ctx, connector.ChatNormal, "hello")
	}))
	select {
	case msg := <-chats:
		assert.Equal(t, "alice", msg.Name)
		assert.Equal(t, "hello", msg.Text)
	case <-time.After(3 * time.Second):
		t.Fatal("no chat broadcast")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, seen, events.MessageEvent(protocol.KindMonsterSpawn))
	assert.Contains(t, seen, events.EventEnteredGame)
	// our own arrival is filtered out
	assert.NotContains(t, seen, events.MessageEvent(protocol.KindAppear))
}
