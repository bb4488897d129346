package game

import (
	"bytes"
	"encoding/json"
	"fmt"

	"game-service/internal/models"
)

// MessageType tags every envelope on the wire, in both directions
type MessageType string

// Inbound message types
const (
	MessageTypeAuth           MessageType = "auth"
	MessageTypePositionUpdate MessageType = "position_update"
	MessageTypeFishingStart   MessageType = "fishing_start"
	MessageTypeFishingEnd     MessageType = "fishing_end"
	MessageTypeAnchorToggle   MessageType = "anchor_toggle"
	MessageTypeSetDestination MessageType = "set_destination"
	MessageTypeCatchFish      MessageType = "catch_fish"
)

// Outbound message types
const (
	MessageTypeWorldData         MessageType = "world_data"
	MessageTypeExistingPlayers   MessageType = "existing_players"
	MessageTypePlayerJoined      MessageType = "player_joined"
	MessageTypePlayerUpdate      MessageType = "player_update"
	MessageTypePlayerLeft        MessageType = "player_left"
	MessageTypeStatsUpdate       MessageType = "stats_update"
	MessageTypeLeaderboardUpdate MessageType = "leaderboard_update"
	MessageTypeError             MessageType = "error"
)

// Envelope is the wire frame: a type tag plus a type-specific payload
type Envelope struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Position is a 2D point in world coordinates
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

/** -------------------- inbound payloads -------------------- */

type AuthPayload struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

func (p *AuthPayload) Validate() error {
	if p.UserID <= 0 {
		return fmt.Errorf("userId must be positive")
	}
	if p.Username == "" {
		return fmt.Errorf("username is required")
	}
	return nil
}

type PositionUpdatePayload struct {
	Position   Position `json:"position"`
	IsMoving   bool     `json:"isMoving"`
	IsAnchored bool     `json:"isAnchored"`
	IsFishing  bool     `json:"isFishing"`
}

type AnchorTogglePayload struct {
	IsAnchored bool `json:"isAnchored"`
}

type SetDestinationPayload struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Direction float64 `json:"direction"`
}

type CatchFishPayload struct {
	FishSpeciesID int64 `json:"fishSpeciesId"`
	Size          int   `json:"size"`
}

func (p *CatchFishPayload) Validate() error {
	if p.FishSpeciesID <= 0 {
		return fmt.Errorf("fishSpeciesId must be positive")
	}
	if p.Size <= 0 {
		return fmt.Errorf("size must be positive")
	}
	return nil
}

// decodePayload unmarshals a payload into its typed struct, rejecting
// unknown fields so schema violations surface as protocol errors instead
// of silently dropped data.
func decodePayload(raw json.RawMessage, dest interface{}) error {
	if len(raw) == 0 {
		return fmt.Errorf("payload is required")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

/** -------------------- outbound payloads -------------------- */

// PlayerState is the broadcast-facing view of one session
type PlayerState struct {
	UserID     int64    `json:"userId"`
	Username   string   `json:"username"`
	Position   Position `json:"position"`
	IsMoving   bool     `json:"isMoving"`
	IsAnchored bool     `json:"isAnchored"`
	IsFishing  bool     `json:"isFishing"`
}

type WorldDataPayload struct {
	Islands []models.Island `json:"islands"`
}

type PlayerUpdatePayload struct {
	UserID     int64    `json:"userId"`
	Position   Position `json:"position"`
	IsMoving   bool     `json:"isMoving"`
	IsAnchored bool     `json:"isAnchored"`
	IsFishing  bool     `json:"isFishing"`
}

type PlayerLeftPayload struct {
	UserID int64 `json:"userId"`
}

type StatsUpdatePayload struct {
	FishCaught  int `json:"fishCaught"`
	LargestFish int `json:"largestFish"`
	RareFinds   int `json:"rareFinds"`
}

type LeaderboardUpdatePayload struct {
	BiggestFish []models.LeaderboardRow `json:"biggestFish"`
	MostFish    []models.LeaderboardRow `json:"mostFish"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// Message constructors. Marshalling a payload built from our own types
// cannot fail, so constructors return ready-to-send bytes.

func encodeMessage(msgType MessageType, payload interface{}) []byte {
	raw, _ := json.Marshal(payload)
	data, _ := json.Marshal(Envelope{Type: msgType, Payload: raw})
	return data
}

func NewWorldDataMessage(islands []models.Island) []byte {
	return encodeMessage(MessageTypeWorldData, WorldDataPayload{Islands: islands})
}

func NewExistingPlayersMessage(players []PlayerState) []byte {
	return encodeMessage(MessageTypeExistingPlayers, players)
}

func NewPlayerJoinedMessage(state PlayerState) []byte {
	return encodeMessage(MessageTypePlayerJoined, state)
}

func NewPlayerUpdateMessage(state PlayerState) []byte {
	return encodeMessage(MessageTypePlayerUpdate, PlayerUpdatePayload{
		UserID:     state.UserID,
		Position:   state.Position,
		IsMoving:   state.IsMoving,
		IsAnchored: state.IsAnchored,
		IsFishing:  state.IsFishing,
	})
}

func NewPlayerLeftMessage(userID int64) []byte {
	return encodeMessage(MessageTypePlayerLeft, PlayerLeftPayload{UserID: userID})
}

func NewStatsUpdateMessage(stats *models.PlayerStats) []byte {
	return encodeMessage(MessageTypeStatsUpdate, StatsUpdatePayload{
		FishCaught:  stats.FishCaught,
		LargestFish: stats.LargestFish,
		RareFinds:   stats.RareFinds,
	})
}

func NewLeaderboardUpdateMessage(biggestFish, mostFish []models.LeaderboardRow) []byte {
	if biggestFish == nil {
		biggestFish = []models.LeaderboardRow{}
	}
	if mostFish == nil {
		mostFish = []models.LeaderboardRow{}
	}
	return encodeMessage(MessageTypeLeaderboardUpdate, LeaderboardUpdatePayload{
		BiggestFish: biggestFish,
		MostFish:    mostFish,
	})
}

func NewErrorMessage(message string) []byte {
	return encodeMessage(MessageTypeError, ErrorPayload{Message: message})
}
