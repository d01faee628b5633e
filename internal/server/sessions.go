package server

import (
	"encoding/base64"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/sweeper/internal/game"
	"github.com/vancomm/sweeper/internal/mines"
)

// Session is one game reachable over the wire. The engine is single
// threaded, so every access goes through mu.
type Session struct {
	mu sync.Mutex

	SessionId string
	game      *game.Controller
	StartedAt time.Time
	EndedAt   time.Time

	// createdAt is when the session and its token were issued.
	createdAt time.Time
}

func newSession(c *game.Controller) *Session {
	u := [16]byte(uuid.New())
	now := time.Now().UTC()
	return &Session{
		SessionId: base64.RawURLEncoding.EncodeToString(u[:]),
		game:      c,
		StartedAt: now,
		createdAt: now,
	}
}

// settle stamps the end time once the game is over.
func (s *Session) settle() {
	if s.game.Status().Over() && s.EndedAt.IsZero() {
		s.EndedAt = time.Now().UTC()
	}
}

func (s *Session) restarted() {
	s.StartedAt = time.Now().UTC()
	s.EndedAt = time.Time{}
}

type GameSessionJSON struct {
	SessionId      string          `json:"session_id"`
	Grid           game.PlayerGrid `json:"grid"`
	Height         int             `json:"height"`
	Width          int             `json:"width"`
	MineCount      int             `json:"mine_count"`
	FlagsRemaining int             `json:"flags_remaining"`
	Revealed       int             `json:"revealed"`
	Status         game.Status     `json:"status"`
	Exploded       *mines.Point    `json:"exploded,omitempty"`
	StartedAt      int64           `json:"started_at"`
	EndedAt        *int64          `json:"ended_at,omitempty"`
}

// JSON renders the player's view of the session. The caller holds mu.
func (s *Session) JSON() GameSessionJSON {
	var endedAt *int64
	if !s.EndedAt.IsZero() {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	var exploded *mines.Point
	if p, ok := s.game.Exploded(); ok {
		exploded = &p
	}
	params := s.game.Params()
	return GameSessionJSON{
		SessionId:      s.SessionId,
		Grid:           s.game.PlayerGrid(),
		Height:         params.Height,
		Width:          params.Width,
		MineCount:      params.MineCount,
		FlagsRemaining: s.game.FlagsRemaining(),
		Revealed:       s.game.RevealedCount(),
		Status:         s.game.Status(),
		Exploded:       exploded,
		StartedAt:      s.StartedAt.UnixMilli(),
		EndedAt:        endedAt,
	}
}

func (s *Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.JSON())
}

type registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func newRegistry() *registry {
	return &registry{sessions: make(map[string]*Session)}
}

func (r *registry) add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.SessionId] = s
}

func (r *registry) get(sessionId string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sessionId]
	return s, ok
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// prune drops sessions created before the given time and returns how many
// were dropped.
func (r *registry) prune(before time.Time) (n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.createdAt.Before(before) {
			delete(r.sessions, id)
			n++
		}
	}
	return
}
