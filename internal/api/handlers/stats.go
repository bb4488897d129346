package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"game-service/internal/models"
	"game-service/internal/storage"

	"github.com/gin-gonic/gin"
)

// StatsStore is the slice of storage the stats endpoints touch
type StatsStore interface {
	GetPlayerStats(ctx context.Context, userID int64) (*models.PlayerStats, error)
	CreatePlayerStats(ctx context.Context, stats *models.PlayerStats) error
	UpdatePlayerStats(ctx context.Context, userID int64, req *models.UpdateStatsRequest) (*models.PlayerStats, error)
	ListCatches(ctx context.Context, userID int64) ([]models.CatchResponse, error)
	RecordCatch(ctx context.Context, userID, fishSpeciesID int64, size int) (*models.PlayerStats, error)
	HubPosition(ctx context.Context) (float64, float64)
}

type StatsHandler struct {
	store StatsStore
	cache Cache
}

func NewStatsHandler(store StatsStore, cache Cache) *StatsHandler {
	return &StatsHandler{store: store, cache: cache}
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	stats, err := h.store.GetPlayerStats(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrStatsNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Stats not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load stats",
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// CreateStats initializes a stats row at the hub spawn point. Conflicts
// mean the row already exists, which callers treat as success-adjacent.
func (h *StatsHandler) CreateStats(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	x, y := h.store.HubPosition(c.Request.Context())
	stats := &models.PlayerStats{UserID: id, PositionX: x, PositionY: y}
	if err := h.store.CreatePlayerStats(c.Request.Context(), stats); err != nil {
		if errors.Is(err, storage.ErrStatsExist) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Code:    http.StatusConflict,
				Message: "Stats already exist",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create stats",
		})
		return
	}

	c.JSON(http.StatusCreated, stats)
}

func (h *StatsHandler) UpdateStats(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var req models.UpdateStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid input data",
		})
		return
	}

	stats, err := h.store.UpdatePlayerStats(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, storage.ErrStatsNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Stats not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to update stats",
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) ListCatches(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	catches, err := h.store.ListCatches(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load catches",
		})
		return
	}

	c.JSON(http.StatusOK, catches)
}

// RecordCatch is the REST twin of the realtime catch_fish message, for
// clients reconciling offline progress.
func (h *StatsHandler) RecordCatch(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var req models.RecordCatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid input data",
		})
		return
	}

	stats, err := h.store.RecordCatch(c.Request.Context(), id, req.FishSpeciesID, req.Size)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrSpeciesNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Fish species not found",
			})
		case errors.Is(err, storage.ErrStatsNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Stats not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Code:    http.StatusInternalServerError,
				Message: "Failed to record catch",
			})
		}
		return
	}

	// The daily standings just changed; drop the cached copies
	if h.cache != nil {
		now := time.Now().UTC()
		keys := []string{
			leaderboardCacheKey(models.LeaderboardBiggestFish, now),
			leaderboardCacheKey(models.LeaderboardMostFish, now),
		}
		if err := h.cache.Delete(c.Request.Context(), keys...); err != nil {
			slog.Warn("Failed to invalidate leaderboard cache", "error", err)
		}
	}

	c.JSON(http.StatusCreated, stats)
}
