package game

import (
	"encoding/json"
	"strings"
	"testing"

	"game-service/internal/models"
)

func TestDecodePayloadRejectsUnknownFields(t *testing.T) {
	var payload AuthPayload
	raw := json.RawMessage(`{"userId":1,"username":"alice","admin":true}`)
	if err := decodePayload(raw, &payload); err == nil {
		t.Error("unknown fields should be rejected")
	}
}

func TestDecodePayloadRequiresPayload(t *testing.T) {
	var payload AuthPayload
	if err := decodePayload(nil, &payload); err == nil {
		t.Error("missing payload should be rejected")
	}
}

func TestAuthPayloadValidate(t *testing.T) {
	cases := []struct {
		name    string
		payload AuthPayload
		valid   bool
	}{
		{"valid", AuthPayload{UserID: 1, Username: "alice"}, true},
		{"zero user", AuthPayload{UserID: 0, Username: "alice"}, false},
		{"negative user", AuthPayload{UserID: -3, Username: "alice"}, false},
		{"empty username", AuthPayload{UserID: 1}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.payload.Validate()
			if tc.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCatchFishPayloadValidate(t *testing.T) {
	cases := []struct {
		name    string
		payload CatchFishPayload
		valid   bool
	}{
		{"valid", CatchFishPayload{FishSpeciesID: 2, Size: 14}, true},
		{"zero species", CatchFishPayload{Size: 14}, false},
		{"zero size", CatchFishPayload{FishSpeciesID: 2}, false},
		{"negative size", CatchFishPayload{FishSpeciesID: 2, Size: -1}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.payload.Validate()
			if tc.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestMessageConstructorsTagTypes(t *testing.T) {
	cases := []struct {
		want MessageType
		data []byte
	}{
		{MessageTypeWorldData, NewWorldDataMessage(nil)},
		{MessageTypeExistingPlayers, NewExistingPlayersMessage(nil)},
		{MessageTypePlayerJoined, NewPlayerJoinedMessage(PlayerState{})},
		{MessageTypePlayerUpdate, NewPlayerUpdateMessage(PlayerState{})},
		{MessageTypePlayerLeft, NewPlayerLeftMessage(1)},
		{MessageTypeStatsUpdate, NewStatsUpdateMessage(&models.PlayerStats{})},
		{MessageTypeLeaderboardUpdate, NewLeaderboardUpdateMessage(nil, nil)},
		{MessageTypeError, NewErrorMessage("boom")},
	}

	for _, tc := range cases {
		var envelope Envelope
		if err := json.Unmarshal(tc.data, &envelope); err != nil {
			t.Fatalf("constructor for %s produced invalid JSON: %v", tc.want, err)
		}
		if envelope.Type != tc.want {
			t.Errorf("expected type %s, got %s", tc.want, envelope.Type)
		}
	}
}

func TestLeaderboardMessageEmitsEmptyArrays(t *testing.T) {
	data := NewLeaderboardUpdateMessage(nil, nil)
	text := string(data)
	if strings.Contains(text, "null") {
		t.Errorf("empty leaderboards should serialize as [], got %s", text)
	}

	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	var payload LeaderboardUpdatePayload
	if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.BiggestFish == nil || payload.MostFish == nil {
		t.Error("decoded leaderboards should be empty slices, not nil")
	}
}

func TestPlayerUpdateCarriesFullState(t *testing.T) {
	state := PlayerState{
		UserID:     7,
		Username:   "carol",
		Position:   Position{X: 12.5, Y: 90},
		IsMoving:   true,
		IsFishing:  true,
		IsAnchored: false,
	}
	data := NewPlayerUpdateMessage(state)

	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	var payload PlayerUpdatePayload
	if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.UserID != 7 || payload.Position.X != 12.5 || payload.Position.Y != 90 {
		t.Errorf("unexpected payload %+v", payload)
	}
	if !payload.IsMoving || !payload.IsFishing || payload.IsAnchored {
		t.Errorf("state flags lost in translation: %+v", payload)
	}
}
