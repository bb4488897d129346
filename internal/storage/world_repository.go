package storage

import (
	"context"
	"errors"

	"game-service/internal/models"

	"gorm.io/gorm"
)

func (s *Storage) ListIslands(ctx context.Context) ([]models.Island, error) {
	var islands []models.Island
	err := s.db.WithContext(ctx).Order("id ASC").Find(&islands).Error
	return islands, err
}

func (s *Storage) ListFishSpecies(ctx context.Context) ([]models.FishSpecies, error) {
	var species []models.FishSpecies
	err := s.db.WithContext(ctx).Order("id ASC").Find(&species).Error
	return species, err
}

func (s *Storage) GetFishSpecies(ctx context.Context, id int64) (*models.FishSpecies, error) {
	var species models.FishSpecies
	err := s.db.WithContext(ctx).First(&species, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpeciesNotFound
		}
		return nil, err
	}
	return &species, nil
}

// HubPosition returns the spawn point for new players: the hub island,
// or the first island when no hub is flagged, or (500, 500) on an empty
// world table.
func (s *Storage) HubPosition(ctx context.Context) (float64, float64) {
	islands, err := s.ListIslands(ctx)
	if err != nil || len(islands) == 0 {
		return 500, 500
	}
	for _, island := range islands {
		if island.IsHub {
			return island.PositionX, island.PositionY
		}
	}
	return islands[0].PositionX, islands[0].PositionY
}
