package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/gatefield/gatefield/internal/connector"
)

type gateRequest struct {
	Host string `json:"host" binding:"required"`
	Port uint16 `json:"port" binding:"required"`
	Save bool   `json:"save"`
}

// handleGetConfig returns the configuration with secrets blanked.
func (s *Server) handleGetConfig(c *gin.Context) {
	account := s.cfg.Account
	if account.Password != "" {
		account.Password = "********"
	}
	c.JSON(http.StatusOK, gin.H{
		"path":    s.cfg.Path(),
		"network": s.cfg.GetNetwork(),
		"account": account,
		"mqtt":    s.cfg.MQTT,
		"journal": s.cfg.Journal,
		"metrics": s.cfg.Metrics,
		"logging": s.cfg.Logging,
	})
}

// handleSetGate repoints the connector at another gate. It is refused
// unless the connector is disconnected.
func (s *Server) handleSetGate(c *gin.Context) {
	var req gateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), commandTimeout)
	defer cancel()
	err := s.loop.Exec(ctx, func(ctx context.Context, conn *connector.Connector) error {
		return conn.SetGate(req.Host, req.Port)
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	s.cfg.SetGate(req.Host, req.Port)
	if req.Save {
		if err := s.cfg.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save config"})
			return
		}
	}

	log.Info().Str("host", req.Host).Uint16("port", req.Port).Bool("saved", req.Save).Msg("API: gate updated")
	c.JSON(http.StatusOK, gin.H{
		"status": "updated",
		"gate":   gin.H{"host": req.Host, "port": req.Port},
	})
}
