package game

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"game-service/internal/models"
	"game-service/internal/storage"
)

// fakeGateway is an in-memory Gateway for hub tests
type fakeGateway struct {
	mu          sync.Mutex
	stats       map[int64]*models.PlayerStats
	islands     []models.Island
	recordErr   error
	islandsErr  error
	positionLog []models.PlayerStats
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		stats: make(map[int64]*models.PlayerStats),
		islands: []models.Island{
			{ID: 1, Name: "Harbor Hub", PositionX: 500, PositionY: 500, Size: 100, IsHub: true},
			{ID: 2, Name: "Breezy Isle", PositionX: 200, PositionY: 300, Size: 80},
		},
	}
}

func (g *fakeGateway) GetPlayerStats(ctx context.Context, userID int64) (*models.PlayerStats, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	stats, ok := g.stats[userID]
	if !ok {
		return nil, storage.ErrStatsNotFound
	}
	copied := *stats
	return &copied, nil
}

func (g *fakeGateway) CreatePlayerStats(ctx context.Context, stats *models.PlayerStats) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.stats[stats.UserID]; ok {
		return storage.ErrStatsExist
	}
	copied := *stats
	g.stats[stats.UserID] = &copied
	return nil
}

func (g *fakeGateway) UpdatePlayerPosition(ctx context.Context, userID int64, x, y float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	stats, ok := g.stats[userID]
	if !ok {
		return storage.ErrStatsNotFound
	}
	stats.PositionX = x
	stats.PositionY = y
	g.positionLog = append(g.positionLog, *stats)
	return nil
}

func (g *fakeGateway) RecordCatch(ctx context.Context, userID, fishSpeciesID int64, size int) (*models.PlayerStats, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.recordErr != nil {
		return nil, g.recordErr
	}
	stats, ok := g.stats[userID]
	if !ok {
		return nil, storage.ErrStatsNotFound
	}
	stats.FishCaught++
	if size > stats.LargestFish {
		stats.LargestFish = size
	}
	copied := *stats
	return &copied, nil
}

func (g *fakeGateway) ListIslands(ctx context.Context) ([]models.Island, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.islandsErr != nil {
		return nil, g.islandsErr
	}
	return g.islands, nil
}

func (g *fakeGateway) GetDailyLeaderboard(ctx context.Context, category string, date time.Time) ([]models.LeaderboardRow, error) {
	return []models.LeaderboardRow{{Username: "alice", Value: 42}}, nil
}

func (g *fakeGateway) HubPosition(ctx context.Context) (float64, float64) {
	return 500, 500
}

func (g *fakeGateway) lastPosition(userID int64) (models.PlayerStats, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	stats, ok := g.stats[userID]
	if !ok {
		return models.PlayerStats{}, false
	}
	return *stats, true
}

// fakePresence records online/offline transitions
type fakePresence struct {
	mu      sync.Mutex
	online  []int64
	offline []int64
}

func (p *fakePresence) SetOnline(ctx context.Context, userID int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.online = append(p.online, userID)
	return nil
}

func (p *fakePresence) SetOffline(ctx context.Context, userID int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.offline = append(p.offline, userID)
	return nil
}

// mockConn satisfies Conn without a network. Tests drive the hub through
// HandleMessage directly, so only Close needs real behavior.
type mockConn struct {
	mu     sync.Mutex
	closed bool
}

func (m *mockConn) ReadMessage() (int, []byte, error)     { select {} }
func (m *mockConn) WriteMessage(t int, data []byte) error { return nil }
func (m *mockConn) SetReadLimit(limit int64)              {}
func (m *mockConn) SetReadDeadline(t time.Time) error     { return nil }
func (m *mockConn) SetWriteDeadline(t time.Time) error    { return nil }
func (m *mockConn) SetPongHandler(h func(string) error)   {}

func (m *mockConn) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockConn) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func newTestHub(gateway *fakeGateway, presence *fakePresence) *Hub {
	var p Presence
	if presence != nil {
		p = presence
	}
	return NewHub(gateway, p, 30*time.Second, 64)
}

func newTestClient(hub *Hub) (*Client, *mockConn) {
	conn := &mockConn{}
	return NewClient(hub, conn), conn
}

// authMessage builds a raw auth frame
func authMessage(t *testing.T, userID int64, username string) []byte {
	t.Helper()
	return rawMessage(t, MessageTypeAuth, AuthPayload{UserID: userID, Username: username})
}

func rawMessage(t *testing.T, msgType MessageType, payload interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	data, err := json.Marshal(Envelope{Type: msgType, Payload: raw})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return data
}

// recvEnvelope pops the next queued outbound message for the client
func recvEnvelope(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case data := <-c.send:
		var envelope Envelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			t.Fatalf("unmarshal outbound message: %v", err)
		}
		return envelope
	default:
		t.Fatal("expected an outbound message, queue is empty")
		return Envelope{}
	}
}

func requireNoMessage(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.send:
		t.Fatalf("expected no outbound message, got %s", data)
	default:
	}
}

func drainMessages(c *Client) {
	for {
		select {
		case <-c.send:
		default:
			return
		}
	}
}

// joinPlayer runs the auth handshake and drains the join messages
func joinPlayer(t *testing.T, hub *Hub, userID int64, username string) (*Client, *mockConn) {
	t.Helper()
	client, conn := newTestClient(hub)
	hub.HandleMessage(client, authMessage(t, userID, username))
	if client.Session() == nil {
		t.Fatalf("auth failed for user %d", userID)
	}
	drainMessages(client)
	return client, conn
}

// waitFor polls until the condition holds or the deadline passes
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}
