package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gatefield/gatefield/internal/protocol"
)

// handleStatus returns the snapshot published by the runner after its last tick.
func (s *Server) handleStatus(c *gin.Context) {
	snap := s.loop.Snapshot()
	net := s.cfg.GetNetwork()
	c.JSON(http.StatusOK, gin.H{
		"state":         snap.State,
		"session":       snap.Session,
		"queue_depths":  snap.QueueDepths,
		"heartbeat_seq": snap.HeartbeatSeq,
		"ticks":         snap.Ticks,
		"at":            snap.At,
		"gate":          gin.H{"host": net.GateHost, "port": net.GatePort},
	})
}

type kindEntry struct {
	Code      uint16 `json:"code"`
	Name      string `json:"name"`
	Direction string `json:"direction"`
	Group     string `json:"group"`
}

// handleCatalog lists the message catalog, optionally filtered by ?group=.
func (s *Server) handleCatalog(c *gin.Context) {
	filter := protocol.GroupUnknown
	if name := c.Query("group"); name != "" {
		g, ok := protocol.ParseGroup(name)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown group", "group": name})
			return
		}
		filter = g
	}

	kinds := protocol.Kinds()
	entries := make([]kindEntry, 0, len(kinds))
	for _, k := range kinds {
		if filter != protocol.GroupUnknown && k.Group() != filter {
			continue
		}
		entries = append(entries, kindEntry{
			Code:      uint16(k),
			Name:      k.String(),
			Direction: k.Direction().String(),
			Group:     k.Group().String(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"kinds": entries,
		"total": len(entries),
	})
}

// handleSessions lists recent journal rows; ?limit= defaults to 20.
func (s *Server) handleSessions(c *gin.Context) {
	if s.journal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session journal disabled"})
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be 1-500"})
			return
		}
		limit = n
	}

	records, err := s.journal.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sessions": records,
		"total":    len(records),
	})
}
