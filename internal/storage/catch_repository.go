package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"game-service/internal/models"

	"gorm.io/gorm"
)

// Species with rarity 4 or 5 count towards the rare-finds stat
const rareRarityThreshold = 4

// RecordCatch persists one landed fish and all of its durable side
// effects in a single transaction: the catch row, the stats counters
// (fish caught, largest fish, rare finds) and the two daily leaderboard
// categories. Returns the updated stats.
func (s *Storage) RecordCatch(ctx context.Context, userID, fishSpeciesID int64, size int) (*models.PlayerStats, error) {
	var stats models.PlayerStats

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var species models.FishSpecies
		if err := tx.First(&species, "id = ?", fishSpeciesID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSpeciesNotFound
			}
			return err
		}

		if err := tx.Where("user_id = ?", userID).First(&stats).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStatsNotFound
			}
			return err
		}

		now := time.Now().UTC()
		playerCatch := models.PlayerCatch{
			UserID:        userID,
			FishSpeciesID: fishSpeciesID,
			Size:          size,
			CaughtAt:      now,
		}
		if err := tx.Create(&playerCatch).Error; err != nil {
			return fmt.Errorf("failed to record catch: %w", err)
		}

		stats.FishCaught++
		if size > stats.LargestFish {
			stats.LargestFish = size
		}
		if species.Rarity >= rareRarityThreshold {
			stats.RareFinds++
		}
		if err := tx.Save(&stats).Error; err != nil {
			return fmt.Errorf("failed to update stats: %w", err)
		}

		day := truncateToDay(now)
		if err := upsertLeaderboard(tx, userID, models.LeaderboardBiggestFish, size, day); err != nil {
			return err
		}
		return upsertLeaderboard(tx, userID, models.LeaderboardMostFish, stats.FishCaught, day)
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *Storage) ListCatches(ctx context.Context, userID int64) ([]models.CatchResponse, error) {
	var catches []models.PlayerCatch
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("caught_at DESC").
		Find(&catches).Error
	if err != nil {
		return nil, err
	}

	response := make([]models.CatchResponse, 0, len(catches))
	for _, c := range catches {
		var species models.FishSpecies
		if err := s.db.WithContext(ctx).First(&species, "id = ?", c.FishSpeciesID).Error; err != nil {
			return nil, fmt.Errorf("failed to load species for catch %d: %w", c.ID, err)
		}
		response = append(response, models.CatchResponse{PlayerCatch: c, Species: species})
	}
	return response, nil
}

// upsertLeaderboard keeps the best value per user, category and day.
// A new value only replaces the stored one when it is strictly larger.
func upsertLeaderboard(tx *gorm.DB, userID int64, category string, value int, day time.Time) error {
	var entry models.LeaderboardEntry
	err := tx.Where("user_id = ? AND category = ? AND date = ?", userID, category, day).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.LeaderboardEntry{
			UserID:   userID,
			Category: category,
			Value:    value,
			Date:     day,
		}).Error
	}
	if err != nil {
		return err
	}

	if value > entry.Value {
		return tx.Model(&entry).Update("value", value).Error
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
