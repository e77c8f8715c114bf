package devserver

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gatefield/gatefield/internal/network"
	"github.com/gatefield/gatefield/internal/protocol"
)

// attackDamage is dealt by every ATTACK on the training monster.
const attackDamage int32 = 25

// session is one field connection. Only its own goroutine mutates it, apart
// from the fields the world reads while the session is in game.
type session struct {
	id     string
	conn   *network.FrameConn
	logger zerolog.Logger

	username  string
	accountID uint32

	charName string
	entityID uint64
	pos      protocol.Vec3
	playing  bool
}

func (s *Server) serveField(ctx context.Context, conn *network.FrameConn) {
	sess := &session{
		id:   uuid.NewString(),
		conn: conn,
	}
	sess.logger = s.logger.With().
		Str("listener", "field").
		Str("session", sess.id).
		Str("remote", conn.RemoteAddr().String()).
		Logger()
	sess.logger.Info().Msg("field session opened")

	defer func() {
		if sess.playing {
			s.world.broadcast(&protocol.Disappear{EntityID: sess.entityID})
		}
		s.world.leave(sess)
		sess.logger.Info().Str("account", sess.username).Msg("field session closed")
	}()

	for ctx.Err() == nil {
		frame, err := conn.ReadFrame(fieldIdleTimeout)
		if err != nil {
			var netErr net.Error
			switch {
			case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
			case errors.As(err, &netErr) && netErr.Timeout():
				sess.logger.Info().Msg("field session idle, closing")
			default:
				sess.logger.Warn().Err(err).Msg("field read failed")
			}
			return
		}

		rec, err := protocol.Parse(frame.Kind, frame.Payload)
		if err != nil {
			sess.logger.Warn().Err(err).Msg("dropping malformed message")
			continue
		}
		if rec.Kind().Direction() != protocol.ToServer {
			sess.logger.Warn().Stringer("kind", rec.Kind()).Msg("client sent a server-only kind")
			continue
		}

		if err := s.handleField(sess, rec); err != nil {
			sess.logger.Warn().Err(err).Stringer("kind", rec.Kind()).Msg("field reply failed")
			return
		}
	}
}

// handleField answers one client message. A returned error ends the session.
func (s *Server) handleField(sess *session, rec protocol.Record) error {
	if _, ok := rec.(*protocol.Login); !ok && sess.username == "" {
		if _, hb := rec.(*protocol.Heartbeat); !hb {
			return sess.conn.Write(&protocol.ErrorResp{ReqKind: uint16(rec.Kind()), Code: 401})
		}
	}

	switch m := rec.(type) {
	case *protocol.Heartbeat:
		return sess.conn.Write(&protocol.HeartbeatAck{Seq: m.Seq, ServerTimeMs: time.Now().UnixMilli()})

	case *protocol.Login:
		if sess.username != "" {
			return sess.conn.Write(&protocol.LoginResult{Result: protocol.LoginAlreadyOnline})
		}
		code, accountID := s.world.login(sess, m.Username, m.Password)
		if code == protocol.LoginOK {
			sess.username = m.Username
			sess.accountID = accountID
		}
		sess.logger.Info().Str("account", m.Username).Stringer("result", code).Msg("login")
		return sess.conn.Write(&protocol.LoginResult{Result: code, AccountID: accountID})

	case *protocol.CharListReq:
		return sess.conn.Write(&protocol.CharListResp{Characters: s.world.characterList(sess.username)})

	case *protocol.CharCreate:
		id, ok := s.world.createCharacter(sess.username, m.Name, m.Job)
		if !ok {
			return sess.conn.Write(&protocol.CharCreateResult{Result: 1})
		}
		return sess.conn.Write(&protocol.CharCreateResult{CharID: id})

	case *protocol.CharDelete:
		if sess.playing || !s.world.deleteCharacter(sess.username, m.CharID) {
			return sess.conn.Write(&protocol.CharDeleteResult{Result: 1, CharID: m.CharID})
		}
		return sess.conn.Write(&protocol.CharDeleteResult{CharID: m.CharID})

	case *protocol.CharSelect:
		return s.enterGame(sess, m.CharID)

	case *protocol.Logout:
		if sess.playing {
			s.world.leaveGame(sess)
			sess.playing = false
			s.world.broadcast(&protocol.Disappear{EntityID: sess.entityID})
		}
		return sess.conn.Write(&protocol.LogoutResult{})
	}

	if !sess.playing {
		return sess.conn.Write(&protocol.ErrorResp{ReqKind: uint16(rec.Kind()), Code: 409})
	}

	switch m := rec.(type) {
	case *protocol.Move:
		sess.pos = m.Pos
		s.world.broadcast(&protocol.MoveBroadcast{EntityID: sess.entityID, Pos: m.Pos})
	case *protocol.Stop:
		sess.pos = m.Pos
		s.world.broadcast(&protocol.StopBroadcast{EntityID: sess.entityID, Pos: m.Pos})
	case *protocol.Chat:
		s.world.broadcast(&protocol.ChatBroadcast{Channel: m.Channel, Sender: sess.entityID, Name: sess.charName, Text: m.Text})
	case *protocol.Whisper:
		target := s.world.findByName(m.Target)
		if target == nil {
			return sess.conn.Write(&protocol.WhisperResult{Result: 1})
		}
		if err := target.conn.Write(&protocol.WhisperRecv{Sender: sess.charName, Text: m.Text}); err != nil {
			target.logger.Debug().Err(err).Msg("whisper delivery failed")
		}
		return sess.conn.Write(&protocol.WhisperResult{})
	case *protocol.Attack:
		return s.attack(sess, m.Target)
	default:
		sess.logger.Debug().Stringer("kind", rec.Kind()).Msg("no dev server handler")
		return sess.conn.Write(&protocol.ErrorResp{ReqKind: uint16(rec.Kind()), Code: 501})
	}
	return nil
}

func (s *Server) enterGame(sess *session, charID uint32) error {
	if sess.playing {
		return sess.conn.Write(&protocol.EnterGame{Result: 2})
	}
	char, ok := s.world.character(sess.username, charID)
	if !ok {
		return sess.conn.Write(&protocol.EnterGame{Result: 1})
	}

	sess.charName = char.Name
	sess.entityID = entityBase + uint64(char.CharID)
	sess.pos = spawnPoint
	players := s.world.enter(sess)
	sess.playing = true
	sess.logger.Info().Str("character", char.Name).Uint64("entity", sess.entityID).Msg("entered game")

	for _, rec := range []protocol.Record{
		&protocol.EnterGame{EntityID: sess.entityID, ZoneID: startZone, Pos: sess.pos},
		&protocol.ZoneInfo{ZoneID: startZone, Name: "Training Grounds", Width: 1024, Height: 1024},
		&protocol.ChannelInfo{ChannelID: startChannel, Players: players, Capacity: channelCap},
		s.world.spawn(),
	} {
		if err := sess.conn.Write(rec); err != nil {
			return err
		}
	}

	// everyone in game, the new player included, sees the arrival
	s.world.broadcast(&protocol.Appear{EntityID: sess.entityID, Pos: sess.pos})
	return nil
}

func (s *Server) attack(sess *session, target uint64) error {
	mob, ok, died := s.world.hit(target, attackDamage)
	if !ok {
		return sess.conn.Write(&protocol.AttackResult{Result: 1, Attacker: sess.entityID, Target: target})
	}

	s.world.broadcast(&protocol.AttackResult{
		Attacker:    sess.entityID,
		Target:      target,
		Damage:      attackDamage,
		TargetHP:    mob.hp,
		TargetMaxHP: mob.maxHP,
	})
	if died {
		s.world.broadcast(&protocol.EntityDie{EntityID: target, Killer: sess.entityID})
		s.world.broadcast(s.world.spawn())
	}
	return nil
}
