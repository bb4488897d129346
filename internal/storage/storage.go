package storage

import (
	"errors"

	"gorm.io/gorm"
)

// Custom errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("username already exists")
	ErrStatsNotFound   = errors.New("player stats not found")
	ErrStatsExist      = errors.New("player stats already exist")
	ErrSpeciesNotFound = errors.New("fish species not found")
)

// Storage is the durable side of the game: users, world data, per-player
// stats, catches and the daily leaderboard. The realtime layer consumes
// it through the narrow game.Gateway interface.
type Storage struct {
	db *gorm.DB
}

func NewStorage(db *gorm.DB) *Storage {
	return &Storage{db: db}
}
