package storage

import (
	"context"
	"fmt"
	"time"

	"game-service/internal/models"
)

// GetDailyLeaderboard returns the top 10 entries for a category on the
// given day, highest value first. Ties keep insertion order.
func (s *Storage) GetDailyLeaderboard(ctx context.Context, category string, date time.Time) ([]models.LeaderboardRow, error) {
	if category != models.LeaderboardBiggestFish && category != models.LeaderboardMostFish {
		return nil, fmt.Errorf("unknown leaderboard category %q", category)
	}

	day := truncateToDay(date.UTC())
	var rows []models.LeaderboardRow
	err := s.db.WithContext(ctx).
		Table("leaderboard_entries").
		Select("users.username AS username, leaderboard_entries.value AS value").
		Joins("JOIN users ON users.id = leaderboard_entries.user_id").
		Where("leaderboard_entries.category = ? AND leaderboard_entries.date = ?", category, day).
		Order("leaderboard_entries.value DESC, leaderboard_entries.id ASC").
		Limit(10).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return rows, nil
}

// ResetDailyLeaderboard drops every entry older than today. Meant for a
// scheduled cleanup job.
func (s *Storage) ResetDailyLeaderboard(ctx context.Context) error {
	today := truncateToDay(time.Now().UTC())
	return s.db.WithContext(ctx).
		Where("date < ?", today).
		Delete(&models.LeaderboardEntry{}).Error
}
