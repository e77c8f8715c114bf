// Package devserver runs a local gate and field server pair that speaks the
// client protocol. It backs the integration tests and `gatefield devserver`.
package devserver

import (
	"context"
	"fmt"
	"net"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/gatefield/gatefield/internal/config"
	"github.com/gatefield/gatefield/internal/network"
	"github.com/gatefield/gatefield/internal/protocol"
)

const (
	gateReadTimeout  = 10 * time.Second
	fieldIdleTimeout = 2 * time.Minute

	entityBase   uint64 = 1_000_000
	startZone    int32  = 1
	startChannel int32  = 1
	channelCap   int32  = 100
)

var spawnPoint = protocol.Vec3{X: 100, Y: 0, Z: 100}

// Server owns the gate and field listeners and the shared world state.
type Server struct {
	cfg    config.DevServerConfig
	logger zerolog.Logger

	gate  *network.TCPListener
	field *network.TCPListener

	world *world
}

// New creates a dev server. Nothing is bound until Listen.
func New(cfg config.DevServerConfig, opts network.FrameConnOptions) *Server {
	s := &Server{
		cfg:    cfg,
		logger: log.With().Str("component", "devserver").Logger(),
		world:  newWorld(cfg.Accounts),
	}
	s.gate = network.NewTCPListener("gate", cfg.GateAddr, opts, s.serveGate)
	s.field = network.NewTCPListener("field", cfg.FieldAddr, opts, s.serveField)
	return s
}

// Listen binds both sockets. The field is bound first so the gate can hand
// out its real port when FieldAddr uses port 0.
func (s *Server) Listen(ctx context.Context) error {
	if err := s.field.Listen(ctx); err != nil {
		return err
	}
	if err := s.gate.Listen(ctx); err != nil {
		s.field.Stop()
		return err
	}
	return nil
}

// Serve runs both accept loops until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.gate.Serve(ctx) })
	g.Go(func() error { return s.field.Serve(ctx) })
	return g.Wait()
}

// Run binds and serves.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(ctx); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// GateAddr returns the bound gate address, or nil before Listen.
func (s *Server) GateAddr() net.Addr {
	return s.gate.Addr()
}

// FieldAddr returns the bound field address, or nil before Listen.
func (s *Server) FieldAddr() net.Addr {
	return s.field.Addr()
}

// fieldRoute is the address the gate advertises.
func (s *Server) fieldRoute() (string, uint16, error) {
	addr, ok := s.field.Addr().(*net.TCPAddr)
	if !ok {
		return "", 0, fmt.Errorf("field listener not bound")
	}
	host := s.cfg.FieldPublicHost
	if host == "" {
		host = addr.IP.String()
	}
	return host, uint16(addr.Port), nil
}

func (s *Server) serveGate(ctx context.Context, conn *network.FrameConn) {
	logger := s.logger.With().Str("listener", "gate").Str("remote", conn.RemoteAddr().String()).Logger()

	frame, err := conn.ReadFrame(gateReadTimeout)
	if err != nil {
		logger.Debug().Err(err).Msg("gate client left without a request")
		return
	}

	if frame.Kind != protocol.KindGateRouteReq {
		logger.Warn().Stringer("kind", frame.Kind).Msg("unexpected message on gate")
		_ = conn.Write(&protocol.ErrorResp{ReqKind: uint16(frame.Kind), Code: 1})
		return
	}

	host, port, err := s.fieldRoute()
	if err != nil {
		logger.Error().Err(err).Msg("no field server to route to")
		_ = conn.Write(&protocol.GateRouteResp{Result: protocol.RouteNoFieldServer})
		return
	}

	if err := conn.Write(&protocol.GateRouteResp{Result: protocol.RouteOK, Port: port, IP: host}); err != nil {
		logger.Warn().Err(err).Msg("failed to send route")
		return
	}
	logger.Info().Str("field_host", host).Uint16("field_port", port).Msg("client routed to field")
}

// world is the state shared by every field connection.
type world struct {
	mu sync.Mutex

	passwords  map[string]string
	accountIDs map[string]uint32
	characters map[string][]protocol.CharSummary
	online     map[string]*session
	inGame     map[uint64]*session

	nextAccount uint32
	nextChar    uint32

	monster monster
}

type monster struct {
	id    uint64
	hp    int32
	maxHP int32
	pos   protocol.Vec3
}

func newWorld(accounts map[string]string) *world {
	w := &world{
		passwords:  make(map[string]string, len(accounts)),
		accountIDs: make(map[string]uint32, len(accounts)),
		characters: make(map[string][]protocol.CharSummary, len(accounts)),
		online:     make(map[string]*session),
		inGame:     make(map[uint64]*session),
		monster: monster{
			id:    900_001,
			hp:    100,
			maxHP: 100,
			pos:   protocol.Vec3{X: 110, Y: 0, Z: 105},
		},
	}

	names := make([]string, 0, len(accounts))
	for name := range accounts {
		names = append(names, name)
	}
	sort.Strings(names)

	// every account starts with one character named after it
	for _, name := range names {
		w.passwords[name] = accounts[name]
		w.nextAccount++
		w.accountIDs[name] = w.nextAccount
		w.nextChar++
		w.characters[name] = []protocol.CharSummary{{CharID: w.nextChar, Name: name, Level: 1, Job: 0}}
	}
	return w
}

func (w *world) login(s *session, username, password string) (protocol.LoginCode, uint32) {
	w.mu.Lock()
	defer w.mu.Unlock()

	want, ok := w.passwords[username]
	switch {
	case !ok:
		return protocol.LoginNoSuchAccount, 0
	case want != password:
		return protocol.LoginWrongPassword, 0
	}
	if _, busy := w.online[username]; busy {
		return protocol.LoginAlreadyOnline, 0
	}
	w.online[username] = s
	return protocol.LoginOK, w.accountIDs[username]
}

func (w *world) characterList(username string) []protocol.CharSummary {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]protocol.CharSummary(nil), w.characters[username]...)
}

func (w *world) createCharacter(username, name string, job int32) (uint32, bool) {
	if name == "" || len(name) > protocol.NameSize {
		return 0, false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, chars := range w.characters {
		for _, c := range chars {
			if c.Name == name {
				return 0, false
			}
		}
	}
	w.nextChar++
	w.characters[username] = append(w.characters[username], protocol.CharSummary{CharID: w.nextChar, Name: name, Level: 1, Job: job})
	return w.nextChar, true
}

func (w *world) deleteCharacter(username string, charID uint32) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	chars := w.characters[username]
	for i, c := range chars {
		if c.CharID == charID {
			w.characters[username] = append(chars[:i], chars[i+1:]...)
			return true
		}
	}
	return false
}

func (w *world) character(username string, charID uint32) (protocol.CharSummary, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, c := range w.characters[username] {
		if c.CharID == charID {
			return c, true
		}
	}
	return protocol.CharSummary{}, false
}

func (w *world) enter(s *session) int32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.inGame[s.entityID] = s
	return int32(len(w.inGame))
}

func (w *world) leave(s *session) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if s.entityID != 0 {
		delete(w.inGame, s.entityID)
	}
	if w.online[s.username] == s {
		delete(w.online, s.username)
	}
}

func (w *world) leaveGame(s *session) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inGame, s.entityID)
}

func (w *world) findByName(name string) *session {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, s := range w.inGame {
		if s.charName == name {
			return s
		}
	}
	return nil
}

// broadcast writes rec to every session in game.
func (w *world) broadcast(rec protocol.Record) {
	w.mu.Lock()
	targets := make([]*session, 0, len(w.inGame))
	for _, s := range w.inGame {
		targets = append(targets, s)
	}
	w.mu.Unlock()

	frame := protocol.Encode(rec)
	for _, s := range targets {
		if err := s.conn.WriteRaw(frame); err != nil {
			s.logger.Debug().Err(err).Stringer("kind", rec.Kind()).Msg("broadcast write failed")
		}
	}
}

// hit applies damage to the training monster. It respawns at full health.
func (w *world) hit(target uint64, damage int32) (monster, bool, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if target != w.monster.id {
		return monster{}, false, false
	}
	w.monster.hp -= damage
	if w.monster.hp > 0 {
		return w.monster, true, false
	}
	dead := w.monster
	dead.hp = 0
	w.monster.hp = w.monster.maxHP
	return dead, true, true
}

func (w *world) spawn() *protocol.MonsterSpawn {
	w.mu.Lock()
	defer w.mu.Unlock()
	return &protocol.MonsterSpawn{
		EntityID:   w.monster.id,
		TemplateID: 1,
		Level:      1,
		HP:         w.monster.hp,
		MaxHP:      w.monster.maxHP,
		Pos:        w.monster.pos,
	}
}
