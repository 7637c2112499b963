package dialog

import (
	"context"
	"log"
	"sync"
	"time"
)

// Mode is the active guided-question flow for a session.
type Mode string

const (
	ModeIdle    Mode = "idle"
	ModeTriage  Mode = "triage"
	ModeNetwork Mode = "network"
	ModeWindows Mode = "windows"
	ModeAccount Mode = "account"
	ModeApp     Mode = "app"
)

// ModeFor maps a classifier category to its dialog mode.
func ModeFor(c Category) Mode {
	switch c {
	case CategoryNetwork:
		return ModeNetwork
	case CategoryWindows:
		return ModeWindows
	case CategoryAccount:
		return ModeAccount
	case CategoryApp:
		return ModeApp
	default:
		return ModeTriage
	}
}

// Session is the per-conversation dialog state. A session is a convenience
// cache keyed by conversation id, not an identity-verified principal; unknown
// ids transparently become fresh sessions.
type Session struct {
	ID         string
	Mode       Mode
	Step       int
	Ticket     *Ticket
	LastSeenAt time.Time
}

// Store owns the session map and its expiry sweep. One Store is constructed
// at process start and handed to the router; there is no package-level state.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the session for id, creating a default idle session if
// none exists. Every call refreshes LastSeenAt. Never fails.
func (s *Store) GetOrCreate(id string) *Session {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{
			ID:     id,
			Mode:   ModeIdle,
			Step:   0,
			Ticket: NewTicket(),
		}
		s.sessions[id] = sess
	}
	sess.LastSeenAt = now
	return sess
}

// Reset puts the session back to (idle, 0) with an empty ticket.
func (s *Store) Reset(sess *Session) {
	sess.Mode = ModeIdle
	sess.Step = 0
	sess.Ticket = NewTicket()
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// SweepExpired removes every session idle for longer than ttl and returns how
// many were dropped. A sweep may race a concurrent GetOrCreate for the same
// id; the loser simply gets a fresh session on its next turn.
func (s *Store) SweepExpired(now time.Time, ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastSeenAt) > ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs the periodic expiry sweep until ctx is cancelled. This is
// the single background task in the process, decoupled from request handling.
func (s *Store) StartSweeper(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		log.Printf("session sweeper started interval=%s ttl=%s", interval, ttl)
		for {
			select {
			case <-ticker.C:
				if n := s.SweepExpired(time.Now(), ttl); n > 0 {
					log.Printf("session sweep removed=%d live=%d", n, s.Len())
				}
			case <-ctx.Done():
				log.Printf("session sweeper stopped")
				return
			}
		}
	}()
}
