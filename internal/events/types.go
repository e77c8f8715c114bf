// Package events defines the event surface the protocol engine exposes to
// game and UI code, and the bus that delivers it.
package events

import (
	"github.com/gatefield/gatefield/internal/protocol"
)

// EventType represents the type of event emitted through the EventBus.
type EventType string

const (
	// Connection lifecycle
	EventStateChanged  EventType = "state_changed"
	EventConnectError  EventType = "connect_error"
	EventDisconnected  EventType = "disconnected"
	EventGateRouted    EventType = "gate_routed"
	EventEnteredGame   EventType = "entered_game"
	EventSessionUpdate EventType = "session_update"

	// Inbound messages that could not be handled
	EventProtocolError EventType = "protocol_error"
)

// messagePrefix prefixes the event type of every parsed inbound message.
const messagePrefix = "msg:"

// MessageEvent returns the event type carrying parsed records of kind,
// e.g. "msg:LOGIN_RESULT".
func MessageEvent(kind protocol.Kind) EventType {
	return EventType(messagePrefix + kind.String())
}

// IsMessage reports whether t is a parsed-message event.
func (t EventType) IsMessage() bool {
	return len(t) > len(messagePrefix) && string(t[:len(messagePrefix)]) == messagePrefix
}

// ConnectionState is the position in the gate -> field -> login -> game handshake.
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnectingGate
	StateConnectingField
	StateLoggingIn
	StateCharSelect
	StateInGame
)

var connectionStateStrings = map[ConnectionState]string{
	StateDisconnected:    "disconnected",
	StateConnectingGate:  "connecting_gate",
	StateConnectingField: "connecting_field",
	StateLoggingIn:       "logging_in",
	StateCharSelect:      "char_select",
	StateInGame:          "in_game",
}

// String returns the string representation of ConnectionState.
func (s ConnectionState) String() string {
	if str, ok := connectionStateStrings[s]; ok {
		return str
	}
	return "unknown"
}

// MarshalJSON serializes ConnectionState as a JSON string (e.g. "in_game").
func (s ConnectionState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Stage identifies where a transport failure happened.
type Stage string

const (
	StageGate  Stage = "gate"
	StageField Stage = "field"
	StageSend  Stage = "send"
	StageRoute Stage = "route"
)

// Event represents a single event in the system.
type Event struct {
	Type    EventType
	Source  string
	Payload interface{}
}

// Session holds the fields the connector owns while a field session is up.
type Session struct {
	AccountID uint32 `json:"account_id"`
	EntityID  uint64 `json:"entity_id"`
	ZoneID    int32  `json:"zone_id"`
	ChannelID int32  `json:"channel_id"`
}

// StateChangedPayload is emitted on every state transition.
type StateChangedPayload struct {
	From ConnectionState `json:"from"`
	To   ConnectionState `json:"to"`
}

// ConnectErrorPayload reports a transport failure or a refused gate route.
type ConnectErrorPayload struct {
	Stage Stage `json:"stage"`
	Err   error `json:"-"`
}

// DisconnectedPayload is emitted once when a field session ends. Session
// holds the values at the moment of the drop.
type DisconnectedPayload struct {
	Reason  string  `json:"reason"`
	Session Session `json:"session"`
}

// GateRoutedPayload carries the field address handed out by the gate.
type GateRoutedPayload struct {
	Host string `json:"host"`
	Port uint16 `json:"port"`
}

// ProtocolErrorPayload describes a dropped inbound message.
type ProtocolErrorPayload struct {
	Kind protocol.Kind `json:"kind"`
	Err  error         `json:"-"`
}
