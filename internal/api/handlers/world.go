package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"game-service/internal/models"
	"game-service/internal/storage"

	"github.com/gin-gonic/gin"
)

// WorldStore is the slice of storage the world endpoints read from
type WorldStore interface {
	ListIslands(ctx context.Context) ([]models.Island, error)
	ListFishSpecies(ctx context.Context) ([]models.FishSpecies, error)
	GetFishSpecies(ctx context.Context, id int64) (*models.FishSpecies, error)
	GetDailyLeaderboard(ctx context.Context, category string, date time.Time) ([]models.LeaderboardRow, error)
}

// Cache is the read-through cache surface, satisfied by the Redis
// service. Cache failures degrade to direct reads, never to errors.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Leaderboards served over REST may lag the realtime feed by this much
const leaderboardCacheTTL = 30 * time.Second

func leaderboardCacheKey(category string, date time.Time) string {
	return fmt.Sprintf("leaderboard:%s:%s", category, date.UTC().Format("2006-01-02"))
}

// WorldHandler serves the static world catalog and the daily
// leaderboards.
type WorldHandler struct {
	store WorldStore
	cache Cache
}

func NewWorldHandler(store WorldStore, cache Cache) *WorldHandler {
	return &WorldHandler{store: store, cache: cache}
}

func (h *WorldHandler) ListIslands(c *gin.Context) {
	islands, err := h.store.ListIslands(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load islands",
		})
		return
	}
	c.JSON(http.StatusOK, islands)
}

func (h *WorldHandler) GetFishSpecies(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	species, err := h.store.GetFishSpecies(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrSpeciesNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Fish species not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load fish species",
		})
		return
	}
	c.JSON(http.StatusOK, species)
}

func (h *WorldHandler) ListFishSpecies(c *gin.Context) {
	species, err := h.store.ListFishSpecies(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load fish species",
		})
		return
	}
	c.JSON(http.StatusOK, species)
}

// GetLeaderboard reads through the cache: leaderboard queries dominate
// the REST traffic and tolerate a short staleness window.
func (h *WorldHandler) GetLeaderboard(c *gin.Context) {
	category := c.Param("category")
	if category != models.LeaderboardBiggestFish && category != models.LeaderboardMostFish {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Unknown leaderboard category",
		})
		return
	}

	ctx := c.Request.Context()
	now := time.Now().UTC()
	key := leaderboardCacheKey(category, now)

	if h.cache != nil {
		var cached []models.LeaderboardRow
		if err := h.cache.Get(ctx, key, &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	rows, err := h.store.GetDailyLeaderboard(ctx, category, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load leaderboard",
		})
		return
	}
	if rows == nil {
		rows = []models.LeaderboardRow{}
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, key, rows, leaderboardCacheTTL); err != nil {
			slog.Warn("Failed to cache leaderboard", "category", category, "error", err)
		}
	}
	c.JSON(http.StatusOK, rows)
}
