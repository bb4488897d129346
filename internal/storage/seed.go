package storage

import (
	"context"
	"fmt"
	"log/slog"

	"game-service/internal/models"
)

// Seed fills empty world tables with the default fish species and
// islands. Safe to call on every startup; existing rows are left alone.
func (s *Storage) Seed(ctx context.Context) error {
	var speciesCount int64
	if err := s.db.WithContext(ctx).Model(&models.FishSpecies{}).Count(&speciesCount).Error; err != nil {
		return fmt.Errorf("failed to count fish species: %w", err)
	}
	if speciesCount == 0 {
		species := []models.FishSpecies{
			{Name: "Blue Tangler", Description: "A common blue fish found in shallow waters", Rarity: 1, MinSize: 10, MaxSize: 25, GaugeType: "circle", Color: "#1E88E5"},
			{Name: "Striped Bass", Description: "Striped fish that puts up a good fight", Rarity: 2, MinSize: 20, MaxSize: 45, GaugeType: "segmented", Color: "#9E9E9E"},
			{Name: "Golden Glimmer", Description: "Beautiful golden fish that shines in the sunlight", Rarity: 3, MinSize: 8, MaxSize: 20, GaugeType: "triangle", Color: "#FFC107"},
			{Name: "Deep Sea Lurker", Description: "Mysterious fish from the deepest parts of the ocean", Rarity: 4, MinSize: 30, MaxSize: 60, GaugeType: "wave", Color: "#4A148C"},
			{Name: "Rainbow Fin", Description: "Extremely rare fish with rainbow-colored fins", Rarity: 5, MinSize: 15, MaxSize: 35, GaugeType: "zigzag", Color: "#E91E63"},
		}
		if err := s.db.WithContext(ctx).Create(&species).Error; err != nil {
			return fmt.Errorf("failed to seed fish species: %w", err)
		}
		slog.Info("Seeded fish species", "count", len(species))
	}

	var islandCount int64
	if err := s.db.WithContext(ctx).Model(&models.Island{}).Count(&islandCount).Error; err != nil {
		return fmt.Errorf("failed to count islands: %w", err)
	}
	if islandCount == 0 {
		islands := []models.Island{
			{Name: "Harbor Hub", PositionX: 500, PositionY: 500, Size: 100, IsHub: true},
			{Name: "Breezy Isle", PositionX: 200, PositionY: 300, Size: 80},
			{Name: "Coral Cove", PositionX: 800, PositionY: 200, Size: 60},
			{Name: "Mystic Rocks", PositionX: 400, PositionY: 700, Size: 70},
			{Name: "Treasure Bay", PositionX: 700, PositionY: 600, Size: 90},
		}
		if err := s.db.WithContext(ctx).Create(&islands).Error; err != nil {
			return fmt.Errorf("failed to seed islands: %w", err)
		}
		slog.Info("Seeded islands", "count", len(islands))
	}

	return nil
}
