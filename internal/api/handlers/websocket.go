package handlers

import (
	"game-service/internal/game"

	"github.com/gin-gonic/gin"
)

type WSHandler struct {
	hub *game.Hub
}

func NewWSHandler(hub *game.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// HandleWebSocket upgrades the request; from there the game protocol
// owns the connection.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	game.ServeWS(h.hub, c.Writer, c.Request)
}
