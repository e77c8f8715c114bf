package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/gatefield/gatefield/internal/util"
)

// handlePing doubles as a liveness probe; it reports the session state
// without touching the loop goroutine.
func (s *Server) handlePing(c *gin.Context) {
	snap := s.loop.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"state":  snap.State.String(),
		"ticks":  snap.Ticks,
	})
}

func (s *Server) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "gatefield",
		"version": s.version,
	})
}

func (s *Server) handleHost(c *gin.Context) {
	resp := gin.H{"host": util.Host()}
	usage, err := util.Usage()
	if err != nil {
		log.Debug().Err(err).Msg("process usage unavailable")
	} else {
		resp["process"] = usage
	}
	c.JSON(http.StatusOK, resp)
}
