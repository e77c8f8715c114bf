package connector

import (
	"context"
	"fmt"

	"github.com/gatefield/gatefield/internal/events"
	"github.com/gatefield/gatefield/internal/protocol"
)

// Send writes any client-to-server record on the field connection after
// checking it is legal in the current state:
//
//	HEARTBEAT                    any state with a field connection
//	LOGIN                        use Login
//	GATE_ROUTE_REQ               use ConnectToGate
//	CHAR_* and LOGOUT            character select (LOGOUT also in game)
//	everything else              in game
func (c *Connector) Send(ctx context.Context, rec protocol.Record) error {
	if err := c.checkSendable(rec.Kind()); err != nil {
		return err
	}
	return c.send(ctx, RoleField, rec)
}

func (c *Connector) checkSendable(kind protocol.Kind) error {
	if kind.Direction() != protocol.ToServer {
		return fmt.Errorf("%w: %s", ErrWrongDirection, kind)
	}
	if c.field == nil {
		return fmt.Errorf("%w: no field connection for %s", ErrNotConnected, kind)
	}

	var allowed bool
	switch kind {
	case protocol.KindHeartbeat:
		allowed = true
	case protocol.KindGateRouteReq, protocol.KindLogin:
		// dedicated entry points only
	case protocol.KindCharListReq, protocol.KindCharCreate, protocol.KindCharDelete, protocol.KindCharSelect:
		allowed = c.state == events.StateCharSelect
	case protocol.KindLogout:
		allowed = c.state == events.StateCharSelect || c.state == events.StateInGame
	default:
		allowed = c.state == events.StateInGame
	}

	if !allowed {
		return fmt.Errorf("%w: %s in %s", ErrInvalidState, kind, c.state)
	}
	return nil
}

// Heartbeat sends a keep-alive with sequence number seq.
func (c *Connector) Heartbeat(ctx context.Context, seq uint32) error {
	return c.Send(ctx, &protocol.Heartbeat{Seq: seq})
}

func (c *Connector) Move(ctx context.Context, pos protocol.Vec3) error {
	return c.Send(ctx, &protocol.Move{Pos: pos})
}

func (c *Connector) StopAt(ctx context.Context, pos protocol.Vec3) error {
	return c.Send(ctx, &protocol.Stop{Pos: pos})
}

func (c *Connector) Attack(ctx context.Context, target uint64) error {
	return c.Send(ctx, &protocol.Attack{Target: target})
}

func (c *Connector) UseSkill(ctx context.Context, skillID int32, target uint64) error {
	return c.Send(ctx, &protocol.SkillUse{SkillID: skillID, Target: target})
}

// Chat channels.
const (
	ChatNormal uint8 = iota
	ChatParty
	ChatGuild
	ChatWorld
)

func (c *Connector) Chat(ctx context.Context, channel uint8, text string) error {
	return c.Send(ctx, &protocol.Chat{Channel: channel, Text: text})
}

func (c *Connector) Whisper(ctx context.Context, to, text string) error {
	return c.Send(ctx, &protocol.Whisper{Target: to, Text: text})
}

// Logout ends the game session on the server side. The connection stays open.
func (c *Connector) Logout(ctx context.Context) error {
	return c.Send(ctx, &protocol.Logout{})
}
