package models

import (
	"time"
)

/** --------------------ENTITIES-------------------- */

// PlayerStats holds the durable per-player counters and last persisted
// position. One row per user.
type PlayerStats struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64   `gorm:"uniqueIndex;not null" json:"userId"`
	FishCaught  int     `gorm:"default:0;not null" json:"fishCaught"`
	LargestFish int     `gorm:"default:0;not null" json:"largestFish"`
	RareFinds   int     `gorm:"default:0;not null" json:"rareFinds"`
	PositionX   float64 `gorm:"default:0;not null" json:"positionX"`
	PositionY   float64 `gorm:"default:0;not null" json:"positionY"`
}

// PlayerCatch records a single landed fish
type PlayerCatch struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64     `gorm:"index;not null" json:"userId"`
	FishSpeciesID int64     `gorm:"not null" json:"fishSpeciesId"`
	Size          int       `gorm:"not null" json:"size"`
	CaughtAt      time.Time `json:"caughtAt"`
}

// Leaderboard categories tracked per calendar day
const (
	LeaderboardBiggestFish = "biggest_fish"
	LeaderboardMostFish    = "most_fish"
)

// LeaderboardEntry keeps the best value per user, category and day. The
// composite index covers the daily top-10 query path.
type LeaderboardEntry struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   int64     `gorm:"index;not null" json:"userId"`
	Category string    `gorm:"index:idx_leaderboard_category_date,priority:1;size:32;not null" json:"category"`
	Value    int       `gorm:"index:idx_leaderboard_category_date,priority:3;not null" json:"value"`
	Date     time.Time `gorm:"index;index:idx_leaderboard_category_date,priority:2;not null" json:"date"`
}

/** -------------------- DTOs -------------------- */

// Request
type UpdateStatsRequest struct {
	FishCaught  *int     `json:"fishCaught,omitempty"`
	LargestFish *int     `json:"largestFish,omitempty"`
	RareFinds   *int     `json:"rareFinds,omitempty"`
	PositionX   *float64 `json:"positionX,omitempty"`
	PositionY   *float64 `json:"positionY,omitempty"`
}

type RecordCatchRequest struct {
	FishSpeciesID int64 `json:"fishSpeciesId" binding:"required"`
	Size          int   `json:"size" binding:"required,gt=0"`
}

// Response
type CatchResponse struct {
	PlayerCatch
	Species FishSpecies `json:"species"`
}

// LeaderboardRow is one formatted leaderboard line sent to clients
type LeaderboardRow struct {
	Username string `json:"username"`
	Value    int    `json:"value"`
}
