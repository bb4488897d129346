package game

import (
	"sync"
)

// Session is the in-memory record of one authenticated player: the
// connection that owns it plus the last activity state the client
// reported. A session lives exactly as long as its registry entry.
type Session struct {
	UserID   int64
	Username string

	mu         sync.RWMutex
	position   Position
	isMoving   bool
	isAnchored bool
	isFishing  bool

	client *Client
}

func NewSession(userID int64, username string, position Position, client *Client) *Session {
	return &Session{
		UserID:   userID,
		Username: username,
		position: position,
		// Players spawn at rest with the anchor down
		isAnchored: true,
		client:     client,
	}
}

// State snapshots the broadcast-facing view of the session
func (s *Session) State() PlayerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return PlayerState{
		UserID:     s.UserID,
		Username:   s.Username,
		Position:   s.position,
		IsMoving:   s.isMoving,
		IsAnchored: s.isAnchored,
		IsFishing:  s.isFishing,
	}
}

func (s *Session) SetMotion(position Position, isMoving, isAnchored, isFishing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = position
	s.isMoving = isMoving
	s.isAnchored = isAnchored
	s.isFishing = isFishing
}

func (s *Session) SetFishing(isFishing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isFishing = isFishing
}

// SetAnchored updates the anchor flag. Dropping anchor always stops
// motion; raising it does not by itself start motion.
func (s *Session) SetAnchored(isAnchored bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isAnchored = isAnchored
	if isAnchored {
		s.isMoving = false
	}
}

func (s *Session) SetMoving(isMoving bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isMoving = isMoving
}
