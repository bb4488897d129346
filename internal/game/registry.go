package game

import (
	"sync"
)

// Registry is the process-wide map of online players. It is the only
// shared mutable structure in the realtime layer; every operation takes
// the lock for the full read-modify-write so concurrent auths for the
// same identity resolve last-write-wins.
type Registry struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	order    []int64
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[int64]*Session),
	}
}

// Upsert installs the session, replacing any prior session for the same
// user. The replaced session (if any) is returned so the caller can
// dispose of its connection.
func (r *Registry) Upsert(session *Session) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	prior, ok := r.sessions[session.UserID]
	if !ok {
		r.order = append(r.order, session.UserID)
	}
	r.sessions[session.UserID] = session
	if ok {
		return prior
	}
	return nil
}

// RemoveOwned deletes the entry for userID, but only while it is still
// owned by the given client. This keeps a superseded connection's late
// cleanup from tearing down its replacement. Returns true when the
// entry was removed.
func (r *Registry) RemoveOwned(userID int64, owner *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[userID]
	if !ok || session.client != owner {
		return false
	}
	delete(r.sessions, userID)
	for i, id := range r.order {
		if id == userID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *Registry) Get(userID int64) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[userID]
	return session, ok
}

// All returns a snapshot of every session in insertion order. Callers
// iterate the snapshot, never the live map, so a broadcast is immune to
// concurrent registration changes.
func (r *Registry) All() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]*Session, 0, len(r.sessions))
	for _, id := range r.order {
		snapshot = append(snapshot, r.sessions[id])
	}
	return snapshot
}

// AllExcept is All without the given user's session
func (r *Registry) AllExcept(userID int64) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]*Session, 0, len(r.sessions))
	for _, id := range r.order {
		if id != userID {
			snapshot = append(snapshot, r.sessions[id])
		}
	}
	return snapshot
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
