package game

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"game-service/internal/models"
	"game-service/internal/storage"
)

// Gateway is the persistence surface the hub needs. *storage.Storage
// satisfies it; tests use a fake.
type Gateway interface {
	GetPlayerStats(ctx context.Context, userID int64) (*models.PlayerStats, error)
	CreatePlayerStats(ctx context.Context, stats *models.PlayerStats) error
	UpdatePlayerPosition(ctx context.Context, userID int64, x, y float64) error
	RecordCatch(ctx context.Context, userID, fishSpeciesID int64, size int) (*models.PlayerStats, error)
	ListIslands(ctx context.Context) ([]models.Island, error)
	GetDailyLeaderboard(ctx context.Context, category string, date time.Time) ([]models.LeaderboardRow, error)
	HubPosition(ctx context.Context) (float64, float64)
}

// Presence tracks which players are online, for consumers outside the
// realtime layer. Both calls are best effort.
type Presence interface {
	SetOnline(ctx context.Context, userID int64) error
	SetOffline(ctx context.Context, userID int64) error
}

// Hub routes messages between connected game clients. Connections
// register themselves on auth and unregister when their read pump exits;
// all broadcast fan-out walks registry snapshots.
type Hub struct {
	registry *Registry
	gateway  Gateway
	presence Presence

	pingInterval time.Duration
	sendBuffer   int

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(gateway Gateway, presence Presence, pingInterval time.Duration, sendBuffer int) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		registry:     NewRegistry(),
		gateway:      gateway,
		presence:     presence,
		pingInterval: pingInterval,
		sendBuffer:   sendBuffer,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Stop closes every connected client and cancels in-flight gateway work
func (h *Hub) Stop() {
	h.cancel()
	for _, session := range h.registry.All() {
		session.client.close()
	}
	slog.Info("Hub stopped")
}

// OnlineCount reports how many authenticated players are connected
func (h *Hub) OnlineCount() int {
	return h.registry.Len()
}

// HandleMessage processes one inbound frame from a client. Called from
// the client's read goroutine, so per-connection handling is sequential.
func (h *Hub) HandleMessage(c *Client, raw []byte) {
	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		c.sendError("Invalid message format")
		return
	}

	if envelope.Type == MessageTypeAuth {
		h.handleAuth(c, envelope.Payload)
		return
	}

	session := c.Session()
	if session == nil {
		c.sendError("Not authenticated")
		return
	}

	switch envelope.Type {
	case MessageTypePositionUpdate:
		h.handlePositionUpdate(c, session, envelope.Payload)
	case MessageTypeFishingStart:
		h.handleFishing(c, session, true)
	case MessageTypeFishingEnd:
		h.handleFishing(c, session, false)
	case MessageTypeAnchorToggle:
		h.handleAnchorToggle(c, session, envelope.Payload)
	case MessageTypeSetDestination:
		h.handleSetDestination(c, session, envelope.Payload)
	case MessageTypeCatchFish:
		h.handleCatchFish(c, session, envelope.Payload)
	default:
		slog.Debug("Ignoring unknown message type", "type", envelope.Type, "clientID", c.id)
	}
}

// handleAuth binds an identity to the connection, loads (or creates) the
// player's stats, and runs the join handshake: world_data to the joiner,
// player_joined to everyone else, then the existing player list.
func (h *Hub) handleAuth(c *Client, raw json.RawMessage) {
	var payload AuthPayload
	if err := decodePayload(raw, &payload); err != nil {
		c.sendError("Invalid message format")
		return
	}
	if err := payload.Validate(); err != nil {
		c.sendError(err.Error())
		return
	}

	if c.Session() != nil {
		c.sendError("Already authenticated")
		return
	}

	stats, err := h.gateway.GetPlayerStats(h.ctx, payload.UserID)
	if errors.Is(err, storage.ErrStatsNotFound) {
		x, y := h.gateway.HubPosition(h.ctx)
		stats = &models.PlayerStats{UserID: payload.UserID, PositionX: x, PositionY: y}
		createErr := h.gateway.CreatePlayerStats(h.ctx, stats)
		if errors.Is(createErr, storage.ErrStatsExist) {
			// Lost a create race; the winner's row is authoritative
			stats, createErr = h.gateway.GetPlayerStats(h.ctx, payload.UserID)
		}
		if createErr != nil {
			slog.Error("Failed to create player stats", "userID", payload.UserID, "error", createErr)
			c.sendError("Failed to join game")
			return
		}
	} else if err != nil {
		slog.Error("Failed to load player stats", "userID", payload.UserID, "error", err)
		c.sendError("Failed to join game")
		return
	}

	// Fetch the static world before touching the registry so a gateway
	// failure leaves the connection unauthenticated and retryable.
	islands, err := h.gateway.ListIslands(h.ctx)
	if err != nil {
		slog.Error("Failed to load islands", "userID", payload.UserID, "error", err)
		c.sendError("Failed to join game")
		return
	}

	session := NewSession(payload.UserID, payload.Username, Position{X: stats.PositionX, Y: stats.PositionY}, c)
	c.session.Store(session)

	// Last auth wins: a prior connection for the same user is cut loose.
	// Its late unregister cannot remove this session (ownership check).
	if prior := h.registry.Upsert(session); prior != nil {
		slog.Info("Superseding existing connection", "userID", payload.UserID, "clientID", prior.client.id)
		prior.client.close()
	}

	if h.presence != nil {
		if err := h.presence.SetOnline(h.ctx, payload.UserID); err != nil {
			slog.Warn("Failed to mark player online", "userID", payload.UserID, "error", err)
		}
	}

	c.enqueue(NewWorldDataMessage(islands))
	h.BroadcastExcept(payload.UserID, NewPlayerJoinedMessage(session.State()))

	others := h.registry.AllExcept(payload.UserID)
	states := make([]PlayerState, 0, len(others))
	for _, other := range others {
		states = append(states, other.State())
	}
	c.enqueue(NewExistingPlayersMessage(states))

	slog.Info("Player joined", "userID", payload.UserID, "username", payload.Username, "online", h.registry.Len())
}

func (h *Hub) handlePositionUpdate(c *Client, session *Session, raw json.RawMessage) {
	var payload PositionUpdatePayload
	if err := decodePayload(raw, &payload); err != nil {
		c.sendError("Invalid message format")
		return
	}

	session.SetMotion(payload.Position, payload.IsMoving, payload.IsAnchored, payload.IsFishing)
	h.BroadcastExcept(session.UserID, NewPlayerUpdateMessage(session.State()))

	// Persist off the message path; a slow write must not stall the feed
	go func(userID int64, pos Position) {
		if err := h.gateway.UpdatePlayerPosition(h.ctx, userID, pos.X, pos.Y); err != nil {
			slog.Warn("Failed to persist position", "userID", userID, "error", err)
		}
	}(session.UserID, payload.Position)
}

func (h *Hub) handleFishing(c *Client, session *Session, isFishing bool) {
	session.SetFishing(isFishing)
	h.BroadcastExcept(session.UserID, NewPlayerUpdateMessage(session.State()))
}

func (h *Hub) handleAnchorToggle(c *Client, session *Session, raw json.RawMessage) {
	var payload AnchorTogglePayload
	if err := decodePayload(raw, &payload); err != nil {
		c.sendError("Invalid message format")
		return
	}

	session.SetAnchored(payload.IsAnchored)
	h.BroadcastExcept(session.UserID, NewPlayerUpdateMessage(session.State()))
}

func (h *Hub) handleSetDestination(c *Client, session *Session, raw json.RawMessage) {
	var payload SetDestinationPayload
	if err := decodePayload(raw, &payload); err != nil {
		c.sendError("Invalid message format")
		return
	}

	// Destination pathing runs client side; the server only marks the
	// boat as underway and relays current state.
	session.SetMoving(true)
	h.BroadcastExcept(session.UserID, NewPlayerUpdateMessage(session.State()))
}

// handleCatchFish records the catch, returns updated stats to the
// catcher, and pushes refreshed leaderboards to everyone.
func (h *Hub) handleCatchFish(c *Client, session *Session, raw json.RawMessage) {
	var payload CatchFishPayload
	if err := decodePayload(raw, &payload); err != nil {
		c.sendError("Invalid message format")
		return
	}
	if err := payload.Validate(); err != nil {
		c.sendError(err.Error())
		return
	}

	stats, err := h.gateway.RecordCatch(h.ctx, session.UserID, payload.FishSpeciesID, payload.Size)
	if err != nil {
		slog.Error("Failed to record catch", "userID", session.UserID, "error", err)
		c.sendError("Failed to record catch")
		return
	}

	// The player may have disconnected while the write was in flight;
	// only a live registration gets the results applied and broadcast.
	if current, ok := h.registry.Get(session.UserID); !ok || current != session {
		return
	}

	c.enqueue(NewStatsUpdateMessage(stats))

	now := time.Now().UTC()
	biggest, err := h.gateway.GetDailyLeaderboard(h.ctx, models.LeaderboardBiggestFish, now)
	if err != nil {
		slog.Error("Failed to load leaderboard", "category", models.LeaderboardBiggestFish, "error", err)
		return
	}
	most, err := h.gateway.GetDailyLeaderboard(h.ctx, models.LeaderboardMostFish, now)
	if err != nil {
		slog.Error("Failed to load leaderboard", "category", models.LeaderboardMostFish, "error", err)
		return
	}
	h.BroadcastAll(NewLeaderboardUpdateMessage(biggest, most))
}

// unregister tears down a client when its read pump exits. Only the
// connection that still owns the registry entry broadcasts player_left.
func (h *Hub) unregister(c *Client) {
	c.close()

	session := c.Session()
	if session == nil {
		return
	}

	if !h.registry.RemoveOwned(session.UserID, c) {
		// Superseded by a newer connection; nothing to announce
		return
	}

	if h.presence != nil {
		if err := h.presence.SetOffline(h.ctx, session.UserID); err != nil {
			slog.Warn("Failed to mark player offline", "userID", session.UserID, "error", err)
		}
	}

	h.BroadcastAll(NewPlayerLeftMessage(session.UserID))
	slog.Info("Player left", "userID", session.UserID, "online", h.registry.Len())
}

// SendTo delivers a message to one online player, if connected
func (h *Hub) SendTo(userID int64, message []byte) {
	if session, ok := h.registry.Get(userID); ok {
		session.client.enqueue(message)
	}
}

// BroadcastAll fans a message out to every connected player. Dead or
// backed-up clients are skipped, never an abort.
func (h *Hub) BroadcastAll(message []byte) {
	for _, session := range h.registry.All() {
		session.client.enqueue(message)
	}
}

// BroadcastExcept is BroadcastAll minus one player
func (h *Hub) BroadcastExcept(userID int64, message []byte) {
	for _, session := range h.registry.AllExcept(userID) {
		session.client.enqueue(message)
	}
}
