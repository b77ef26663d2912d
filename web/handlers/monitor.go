package handlers

import (
	"net/http"

	"sales-agent/chatlog"
	"sales-agent/retrieval"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MonitorHandler exposes the conversation log and a health probe for
// operators watching the bot.
type MonitorHandler struct {
	log    *chatlog.Log
	index  *retrieval.ProductIndex
	logger *zap.Logger
}

func NewMonitorHandler(log *chatlog.Log, index *retrieval.ProductIndex, logger *zap.Logger) *MonitorHandler {
	return &MonitorHandler{
		log:    log,
		index:  index,
		logger: logger,
	}
}

// History returns the recorded conversation entries, oldest first.
func (h *MonitorHandler) History(c *gin.Context) {
	entries := h.log.Entries()
	c.JSON(http.StatusOK, gin.H{
		"count":   len(entries),
		"entries": entries,
	})
}

// Healthz reports liveness and the current state of the product index.
func (h *MonitorHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"index":  h.index.State().String(),
	})
}
