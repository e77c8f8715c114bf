package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatefield/gatefield/internal/config"
	"github.com/gatefield/gatefield/internal/connector"
	"github.com/gatefield/gatefield/internal/events"
	"github.com/gatefield/gatefield/internal/journal"
	"github.com/gatefield/gatefield/internal/metrics"
	"github.com/gatefield/gatefield/internal/protocol"
	"github.com/gatefield/gatefield/internal/runner"
	"github.com/gatefield/gatefield/internal/testutil"
)

type env struct {
	srv   *Server
	cfg   *config.Config
	loop  *runner.Loop
	bus   *events.EventBus
	field *testutil.FakeTransport
}

func newEnv(t *testing.T, mutate func(*config.Config), opts ...Option) *env {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Network.TickIntervalMs = 2
	cfg.Network.AutoCharList = false
	cfg.API.RateLimitRPS = 0
	if mutate != nil {
		mutate(cfg)
	}

	gate := testutil.NewFakeTransport()
	gate.Reply = func(protocol.Record) []protocol.Record {
		return []protocol.Record{&protocol.GateRouteResp{Result: protocol.RouteOK, Port: 7101, IP: "127.0.0.1"}}
	}
	field := testutil.NewFakeTransport()
	field.Reply = func(sent protocol.Record) []protocol.Record {
		if _, ok := sent.(*protocol.Login); ok {
			return []protocol.Record{&protocol.LoginResult{Result: protocol.LoginOK, AccountID: 3}}
		}
		return nil
	}
	dial := func(role connector.Role) connector.Transport {
		if role == connector.RoleGate {
			return gate
		}
		return field
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(metrics.WithRegistry(reg))

	bus := events.NewEventBus()
	conn := connector.New(cfg.Network, dial, bus, connector.WithMetrics(m))
	loop := runner.New(conn, bus, cfg.Network, cfg.Account, m)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = loop.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})

	opts = append([]Option{WithMetrics(reg), WithVersion("test")}, opts...)
	return &env{
		srv:   NewServer(cfg, loop, bus, opts...),
		cfg:   cfg,
		loop:  loop,
		bus:   bus,
		field: field,
	}
}

func (e *env) do(t *testing.T, method, path, body string, header ...string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	w := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(w, req)

	var out map[string]interface{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func (e *env) waitState(t *testing.T, want events.ConnectionState) {
	t.Helper()
	require.Eventually(t, func() bool {
		return e.loop.Snapshot().State == want
	}, 2*time.Second, 5*time.Millisecond)
}

func TestPublicRoutes(t *testing.T) {
	e := newEnv(t, nil)

	w, body := e.do(t, http.MethodGet, "/api/public/ping", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "disconnected", body["state"])
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	_, body = e.do(t, http.MethodGet, "/api/public/version", "")
	assert.Equal(t, "test", body["version"])

	w, _ = e.do(t, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalog(t *testing.T) {
	e := newEnv(t, nil)

	w, body := e.do(t, http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(len(protocol.Kinds())), body["total"])

	w, body = e.do(t, http.MethodGet, "/api/catalog?group=login", "")
	require.Equal(t, http.StatusOK, w.Code)
	kinds := body["kinds"].([]interface{})
	require.NotEmpty(t, kinds)
	for _, k := range kinds {
		assert.Equal(t, "login", k.(map[string]interface{})["group"])
	}

	w, _ = e.do(t, http.MethodGet, "/api/catalog?group=nonsense", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestControlFlow(t *testing.T) {
	e := newEnv(t, nil)

	w, body := e.do(t, http.MethodPost, "/api/control/login", `{"username":"a","password":"b"}`)
	assert.Equal(t, http.StatusConflict, w.Code, body)

	w, body = e.do(t, http.MethodPost, "/api/control/connect", "")
	require.Equal(t, http.StatusOK, w.Code, body)
	assert.Equal(t, "connecting_gate", body["state"])

	e.waitState(t, events.StateConnectingField)

	w, _ = e.do(t, http.MethodPost, "/api/control/login", `{"password":"b"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = e.do(t, http.MethodPost, "/api/control/login", `{"username":"alice","password":"pw"}`)
	require.Equal(t, http.StatusOK, w.Code, body)
	assert.Equal(t, "logging_in", body["state"])

	e.waitState(t, events.StateCharSelect)

	_, body = e.do(t, http.MethodGet, "/api/status", "")
	assert.Equal(t, "char_select", body["state"])
	assert.Equal(t, 3.0, body["session"].(map[string]interface{})["account_id"])

	w, _ = e.do(t, http.MethodPost, "/api/control/move", `{"x":1,"y":2,"z":3}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = e.do(t, http.MethodPost, "/api/control/chars", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, body = e.do(t, http.MethodPost, "/api/control/disconnect", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "disconnected", body["state"])

	assert.Equal(t, []protocol.Kind{protocol.KindLogin, protocol.KindCharListReq}, e.field.SentKinds())

	w, _ = e.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gatefield_state_transitions_total")
	assert.Contains(t, w.Body.String(), `gatefield_state_transitions_total{from="disconnected",to="connecting_gate"} 1`)
}

func TestTokenRequired(t *testing.T) {
	e := newEnv(t, func(c *config.Config) { c.API.Token = "s3cret" })

	w, _ := e.do(t, http.MethodPost, "/api/control/connect", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = e.do(t, http.MethodPost, "/api/control/connect", "", "Authorization", "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = e.do(t, http.MethodPost, "/api/control/connect", "", "Authorization", "Bearer s3cret")
	assert.Equal(t, http.StatusOK, w.Code)

	// monitoring stays open
	w, _ = e.do(t, http.MethodGet, "/api/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetGate(t *testing.T) {
	e := newEnv(t, nil)

	w, body := e.do(t, http.MethodPost, "/api/config/gate", `{"host":"10.1.1.1","port":7300}`)
	require.Equal(t, http.StatusOK, w.Code, body)
	assert.Equal(t, "10.1.1.1", e.cfg.GetNetwork().GateHost)

	_, body = e.do(t, http.MethodGet, "/api/config", "")
	assert.Equal(t, 7300.0, body["network"].(map[string]interface{})["gate_port"])

	w, _ = e.do(t, http.MethodPost, "/api/control/connect", "")
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = e.do(t, http.MethodPost, "/api/config/gate", `{"host":"10.1.1.2","port":7300}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSessions(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		e := newEnv(t, nil)
		w, _ := e.do(t, http.MethodGet, "/api/sessions", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("enabled", func(t *testing.T) {
		j, err := journal.Open(filepath.Join(t.TempDir(), "j.db"))
		require.NoError(t, err)
		t.Cleanup(func() { j.Close() })
		_, err = j.Begin(context.Background(), events.Session{EntityID: 5}, time.Now())
		require.NoError(t, err)

		e := newEnv(t, nil, WithJournal(j))

		w, body := e.do(t, http.MethodGet, "/api/sessions?limit=5", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1.0, body["total"])

		w, _ = e.do(t, http.MethodGet, "/api/sessions?limit=0", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEventStream(t *testing.T) {
	e := newEnv(t, nil)
	ts := httptest.NewServer(e.srv.Handler())
	t.Cleanup(ts.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/api/events", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	resp, err := http.Post(ts.URL+"/api/control/connect", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	seen := map[string]bool{}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for !seen["gate_routed"] {
		var ev map[string]interface{}
		require.NoError(t, conn.ReadJSON(&ev))
		seen[ev["type"].(string)] = true
	}

	assert.True(t, seen["state_changed"])
	assert.True(t, seen["msg:GATE_ROUTE_RESP"])
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1)
	now := time.Now()

	assert.True(t, rl.Allow("a", now))
	assert.True(t, rl.Allow("a", now))
	assert.False(t, rl.Allow("a", now))
	assert.True(t, rl.Allow("b", now))
	assert.True(t, rl.Allow("a", now.Add(time.Second)))

	assert.True(t, NewRateLimiter(0).Allow("a", now))
}
