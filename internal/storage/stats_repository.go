package storage

import (
	"context"
	"errors"
	"fmt"

	"game-service/internal/models"

	"gorm.io/gorm"
)

func (s *Storage) GetPlayerStats(ctx context.Context, userID int64) (*models.PlayerStats, error) {
	var stats models.PlayerStats
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatsNotFound
		}
		return nil, err
	}
	return &stats, nil
}

func (s *Storage) CreatePlayerStats(ctx context.Context, stats *models.PlayerStats) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.PlayerStats
		err := tx.Where("user_id = ?", stats.UserID).First(&existing).Error
		if err == nil {
			return ErrStatsExist
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check player stats: %w", err)
		}

		if err := tx.Create(stats).Error; err != nil {
			return fmt.Errorf("failed to create player stats: %w", err)
		}
		return nil
	})
}

func (s *Storage) UpdatePlayerStats(ctx context.Context, userID int64, req *models.UpdateStatsRequest) (*models.PlayerStats, error) {
	stats, err := s.GetPlayerStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FishCaught != nil {
		updates["fish_caught"] = *req.FishCaught
	}
	if req.LargestFish != nil {
		updates["largest_fish"] = *req.LargestFish
	}
	if req.RareFinds != nil {
		updates["rare_finds"] = *req.RareFinds
	}
	if req.PositionX != nil {
		updates["position_x"] = *req.PositionX
	}
	if req.PositionY != nil {
		updates["position_y"] = *req.PositionY
	}
	if len(updates) == 0 {
		return stats, nil
	}

	if err := s.db.WithContext(ctx).Model(stats).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update player stats: %w", err)
	}
	return stats, nil
}

// UpdatePlayerPosition is the hot path behind position_update messages;
// it touches only the two position columns.
func (s *Storage) UpdatePlayerPosition(ctx context.Context, userID int64, x, y float64) error {
	result := s.db.WithContext(ctx).
		Model(&models.PlayerStats{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"position_x": x, "position_y": y})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatsNotFound
	}
	return nil
}
