package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"game-service/internal/models"
)

var errNoStore = errors.New("store unavailable")

// fakeCache is an in-memory Cache that records traffic
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.entries[key]
	if !ok {
		return errors.New("cache miss")
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = data
	f.sets++
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.entries, key)
		f.deleted = append(f.deleted, key)
	}
	return nil
}

// fakeWorldStore serves canned world data and counts leaderboard reads
type fakeWorldStore struct {
	islands          []models.Island
	species          []models.FishSpecies
	rows             []models.LeaderboardRow
	leaderboardReads int
}

func (f *fakeWorldStore) ListIslands(ctx context.Context) ([]models.Island, error) {
	return f.islands, nil
}

func (f *fakeWorldStore) ListFishSpecies(ctx context.Context) ([]models.FishSpecies, error) {
	return f.species, nil
}

func (f *fakeWorldStore) GetFishSpecies(ctx context.Context, id int64) (*models.FishSpecies, error) {
	for i := range f.species {
		if f.species[i].ID == id {
			return &f.species[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeWorldStore) GetDailyLeaderboard(ctx context.Context, category string, date time.Time) ([]models.LeaderboardRow, error) {
	f.leaderboardReads++
	return f.rows, nil
}

// fakeStatsStore covers the stats endpoints without a database
type fakeStatsStore struct {
	stats     map[int64]*models.PlayerStats
	recordErr error
}

func newFakeStatsStore() *fakeStatsStore {
	return &fakeStatsStore{stats: make(map[int64]*models.PlayerStats)}
}

func (f *fakeStatsStore) GetPlayerStats(ctx context.Context, userID int64) (*models.PlayerStats, error) {
	stats, ok := f.stats[userID]
	if !ok {
		return nil, errors.New("not found")
	}
	return stats, nil
}

func (f *fakeStatsStore) CreatePlayerStats(ctx context.Context, stats *models.PlayerStats) error {
	f.stats[stats.UserID] = stats
	return nil
}

func (f *fakeStatsStore) UpdatePlayerStats(ctx context.Context, userID int64, req *models.UpdateStatsRequest) (*models.PlayerStats, error) {
	return f.GetPlayerStats(ctx, userID)
}

func (f *fakeStatsStore) ListCatches(ctx context.Context, userID int64) ([]models.CatchResponse, error) {
	return nil, nil
}

func (f *fakeStatsStore) RecordCatch(ctx context.Context, userID, fishSpeciesID int64, size int) (*models.PlayerStats, error) {
	if f.recordErr != nil {
		return nil, f.recordErr
	}
	stats, ok := f.stats[userID]
	if !ok {
		stats = &models.PlayerStats{UserID: userID}
		f.stats[userID] = stats
	}
	stats.FishCaught++
	if size > stats.LargestFish {
		stats.LargestFish = size
	}
	return stats, nil
}

func (f *fakeStatsStore) HubPosition(ctx context.Context) (float64, float64) {
	return 500, 500
}

// fakePresenceDirectory is a canned online-player set
type fakePresenceDirectory struct {
	online map[int64]bool
}

func (f *fakePresenceDirectory) IsOnline(ctx context.Context, userID int64) (bool, error) {
	return f.online[userID], nil
}

func (f *fakePresenceDirectory) GetOnlinePlayers(ctx context.Context) ([]string, error) {
	players := make([]string, 0, len(f.online))
	for id, on := range f.online {
		if on {
			players = append(players, strconv.FormatInt(id, 10))
		}
	}
	return players, nil
}
