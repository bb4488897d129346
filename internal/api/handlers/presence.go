package handlers

import (
	"context"
	"net/http"

	"game-service/internal/models"

	"github.com/gin-gonic/gin"
)

// PresenceDirectory reads the online-player set the realtime layer
// maintains, satisfied by the Redis service.
type PresenceDirectory interface {
	IsOnline(ctx context.Context, userID int64) (bool, error)
	GetOnlinePlayers(ctx context.Context) ([]string, error)
}

type PresenceHandler struct {
	presence PresenceDirectory
}

func NewPresenceHandler(presence PresenceDirectory) *PresenceHandler {
	return &PresenceHandler{presence: presence}
}

func (h *PresenceHandler) ListOnlinePlayers(c *gin.Context) {
	players, err := h.presence.GetOnlinePlayers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load online players",
		})
		return
	}
	if players == nil {
		players = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(players), "players": players})
}

func (h *PresenceHandler) GetPlayerOnline(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	online, err := h.presence.IsOnline(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to check player presence",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": id, "online": online})
}
