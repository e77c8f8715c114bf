package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/gatefield/gatefield/internal/events"
	"github.com/gatefield/gatefield/internal/protocol"
)

const (
	streamBuffer = 256
	writeWait    = 5 * time.Second
	pingPeriod   = 30 * time.Second
)

// wireEvent is the JSON form of a bus event on the websocket feed.
type wireEvent struct {
	Type    events.EventType `json:"type"`
	Source  string           `json:"source,omitempty"`
	Payload interface{}      `json:"payload,omitempty"`
	Error   string           `json:"error,omitempty"`
	At      time.Time        `json:"at"`
}

func toWire(e events.Event) wireEvent {
	w := wireEvent{Type: e.Type, Source: e.Source, Payload: e.Payload, At: time.Now()}
	switch p := e.Payload.(type) {
	case events.ConnectErrorPayload:
		if p.Err != nil {
			w.Error = p.Err.Error()
		}
	case events.ProtocolErrorPayload:
		if p.Err != nil {
			w.Error = p.Err.Error()
		}
		w.Payload = map[string]interface{}{"kind": p.Kind.String(), "code": uint16(p.Kind)}
	case protocol.Record:
		w.Payload = map[string]interface{}{"kind": p.Kind().String(), "record": p}
	}
	return w
}

// handleEvents upgrades to a websocket and streams every bus event until
// the client goes away. A client that cannot keep up loses events.
func (s *Server) handleEvents(c *gin.Context) {
	name := "ws-" + uuid.NewString()
	// subscribe before the upgrade completes so nothing emitted after the
	// handshake is missed
	stream, cancel := s.bus.Stream(name, streamBuffer)

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		cancel()
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	logger := log.With().Str("component", "api").Str("stream", name).Logger()
	logger.Debug().Str("remote", c.ClientIP()).Msg("event stream opened")

	// reader: only control frames and close are expected
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case e, ok := <-stream:
			if !ok {
				logger.Debug().Msg("event stream closed")
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(toWire(e)); err != nil {
				cancel()
				logger.Debug().Err(err).Msg("event stream write failed")
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				cancel()
				return
			}
		}
	}
}
