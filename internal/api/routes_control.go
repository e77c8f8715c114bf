package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/gatefield/gatefield/internal/connector"
	"github.com/gatefield/gatefield/internal/events"
	"github.com/gatefield/gatefield/internal/protocol"
	"github.com/gatefield/gatefield/internal/runner"
)

const commandTimeout = 5 * time.Second

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
}

type selectRequest struct {
	CharID uint32 `json:"char_id" binding:"required"`
}

type moveRequest struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

type chatRequest struct {
	Channel uint8  `json:"channel"`
	To      string `json:"to"`
	Text    string `json:"text" binding:"required"`
}

// exec runs fn on the runner goroutine and writes the outcome.
func (s *Server) exec(c *gin.Context, action string, fn runner.Command) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), commandTimeout)
	defer cancel()

	var state events.ConnectionState
	err := s.loop.Exec(ctx, func(ctx context.Context, conn *connector.Connector) error {
		err := fn(ctx, conn)
		state = conn.State()
		return err
	})
	if err != nil {
		log.Warn().Err(err).Str("action", action).Msg("API: control command failed")
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "action": action})
		return
	}

	log.Info().Str("action", action).Stringer("state", state).Msg("API: control command executed")
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"action": action,
		"state":  state,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, connector.ErrInvalidState), errors.Is(err, connector.ErrNotConnected):
		return http.StatusConflict
	case errors.Is(err, connector.ErrWrongDirection):
		return http.StatusBadRequest
	case errors.Is(err, runner.ErrStopped), errors.Is(err, runner.ErrBusy):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) handleConnect(c *gin.Context) {
	s.exec(c, "connect", func(ctx context.Context, conn *connector.Connector) error {
		return conn.ConnectToGate(ctx)
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.exec(c, "login", func(ctx context.Context, conn *connector.Connector) error {
		return conn.Login(ctx, req.Username, req.Password)
	})
}

func (s *Server) handleChars(c *gin.Context) {
	s.exec(c, "chars", func(ctx context.Context, conn *connector.Connector) error {
		return conn.RequestCharList(ctx)
	})
}

func (s *Server) handleSelect(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.exec(c, "select", func(ctx context.Context, conn *connector.Connector) error {
		return conn.SelectCharacter(ctx, req.CharID)
	})
}

func (s *Server) handleMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.exec(c, "move", func(ctx context.Context, conn *connector.Connector) error {
		return conn.Move(ctx, protocol.Vec3{X: req.X, Y: req.Y, Z: req.Z})
	})
}

// handleChat sends to a channel, or whispers when "to" is set.
func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.exec(c, "chat", func(ctx context.Context, conn *connector.Connector) error {
		if req.To != "" {
			return conn.Whisper(ctx, req.To, req.Text)
		}
		return conn.Chat(ctx, req.Channel, req.Text)
	})
}

func (s *Server) handleDisconnect(c *gin.Context) {
	s.exec(c, "disconnect", func(ctx context.Context, conn *connector.Connector) error {
		conn.Disconnect(ctx, "requested by api")
		return nil
	})
}
