package connector

import (
	"context"
	"fmt"

	"github.com/gatefield/gatefield/internal/events"
	"github.com/gatefield/gatefield/internal/protocol"
)

// ConnectToGate opens the gate transport and asks for a field server route.
// It is only valid while Disconnected. The connect blocks for at most the
// configured connect timeout; on failure the state returns to Disconnected
// and a connect_error event is emitted.
func (c *Connector) ConnectToGate(ctx context.Context) error {
	if c.state != events.StateDisconnected {
		return fmt.Errorf("%w: connect requires %s, current %s", ErrInvalidState, events.StateDisconnected, c.state)
	}

	c.setState(ctx, events.StateConnectingGate)

	gate := c.dial(RoleGate)
	if err := c.connect(ctx, gate, c.cfg.GateHost, c.cfg.GatePort); err != nil {
		gate.Dispose()
		c.setState(ctx, events.StateDisconnected)
		c.emitConnectError(ctx, events.StageGate, err)
		return err
	}
	c.gate = gate

	return c.send(ctx, RoleGate, &protocol.GateRouteReq{})
}

func (c *Connector) onGateRoute(ctx context.Context, m *protocol.GateRouteResp) {
	if m.Result != protocol.RouteOK {
		c.releaseGate()
		c.setState(ctx, events.StateDisconnected)
		c.emitConnectError(ctx, events.StageRoute, fmt.Errorf("%w: %s", ErrRouteRefused, m.Result))
		c.emitMessage(ctx, RoleGate, m)
		return
	}

	c.logger.Info().Str("ip", m.IP).Uint16("port", m.Port).Msg("gate routed to field server")
	c.emitMessage(ctx, RoleGate, m)
	c.emit(ctx, events.EventGateRouted, events.GateRoutedPayload{Host: m.IP, Port: m.Port})

	// gate is single use; it must be gone before the field transport exists
	c.releaseGate()
	c.setState(ctx, events.StateConnectingField)

	field := c.dial(RoleField)
	if err := c.connect(ctx, field, m.IP, m.Port); err != nil {
		field.Dispose()
		c.setState(ctx, events.StateDisconnected)
		c.emitConnectError(ctx, events.StageField, err)
		return
	}
	c.field = field
}

// Login sends the account credentials. It is only valid once the field
// transport is open and no login is pending.
func (c *Connector) Login(ctx context.Context, username, password string) error {
	if c.field == nil || c.state != events.StateConnectingField {
		return fmt.Errorf("%w: login requires %s with an open field connection, current %s",
			ErrInvalidState, events.StateConnectingField, c.state)
	}

	if err := c.send(ctx, RoleField, &protocol.Login{Username: username, Password: password}); err != nil {
		return err
	}
	c.setState(ctx, events.StateLoggingIn)
	return nil
}

func (c *Connector) onLoginResult(ctx context.Context, m *protocol.LoginResult) {
	if c.state != events.StateLoggingIn {
		c.logger.Warn().Stringer("state", c.state).Msg("login result without pending login")
		c.emitMessage(ctx, RoleField, m)
		return
	}

	if m.Result != protocol.LoginOK {
		c.logger.Warn().Stringer("result", m.Result).Msg("login rejected")
		c.setState(ctx, events.StateConnectingField)
		c.emitMessage(ctx, RoleField, m)
		return
	}

	c.session.AccountID = m.AccountID
	c.setState(ctx, events.StateCharSelect)
	c.emitMessage(ctx, RoleField, m)

	if c.cfg.AutoCharList && c.field != nil {
		_ = c.send(ctx, RoleField, &protocol.CharListReq{})
	}
}

func (c *Connector) onEnterGame(ctx context.Context, m *protocol.EnterGame) {
	if m.Result == 0 && (c.state == events.StateCharSelect || c.state == events.StateInGame) {
		c.session.EntityID = m.EntityID
		c.session.ZoneID = m.ZoneID
		c.setState(ctx, events.StateInGame)
		c.emit(ctx, events.EventEnteredGame, c.session)
	} else if m.Result == 0 {
		c.logger.Warn().Stringer("state", c.state).Msg("enter game outside character select, ignoring session fields")
	} else {
		c.logger.Warn().Uint8("result", m.Result).Msg("enter game rejected")
	}
	c.emitMessage(ctx, RoleField, m)
}

// RequestCharList asks for the account's characters.
func (c *Connector) RequestCharList(ctx context.Context) error {
	return c.Send(ctx, &protocol.CharListReq{})
}

// CreateCharacter requests a new character.
func (c *Connector) CreateCharacter(ctx context.Context, name string, job int32) error {
	return c.Send(ctx, &protocol.CharCreate{Name: name, Job: job})
}

// DeleteCharacter requests deletion of a character.
func (c *Connector) DeleteCharacter(ctx context.Context, charID uint32) error {
	return c.Send(ctx, &protocol.CharDelete{CharID: charID})
}

// SelectCharacter picks the character to play. The server answers with ENTER_GAME.
func (c *Connector) SelectCharacter(ctx context.Context, charID uint32) error {
	return c.Send(ctx, &protocol.CharSelect{CharID: charID})
}

// SetGate changes the gate address used by the next ConnectToGate. It is
// only valid while Disconnected.
func (c *Connector) SetGate(host string, port uint16) error {
	if c.state != events.StateDisconnected {
		return fmt.Errorf("%w: gate can only change while %s", ErrInvalidState, events.StateDisconnected)
	}
	c.cfg.GateHost = host
	c.cfg.GatePort = port
	c.logger.Info().Str("host", host).Uint16("port", port).Msg("gate address changed")
	return nil
}

// Gate returns the configured gate address.
func (c *Connector) Gate() (string, uint16) {
	return c.cfg.GateHost, c.cfg.GatePort
}
