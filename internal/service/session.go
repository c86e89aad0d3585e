package service

import (
	"errors"
	"sync"
	"time"

	"github.com/JothiRam-cm/elevix/internal/domain"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Session owns one conversation's state: an append-only, chronologically
// ordered turn log. turnMu serializes whole turns (turn N's append completes
// before turn N+1 starts processing); mu guards the log for concurrent
// readers such as the history endpoint.
type Session struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	turnMu sync.Mutex
	mu     sync.RWMutex
	turns  []domain.ConversationTurn
}

// History returns a copy of all turns in order.
func (s *Session) History() []domain.ConversationTurn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// Window returns the last k turns flattened into role/content messages,
// oldest first, for the classifier and the retrieval capability.
func (s *Session) Window(k int) []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := len(s.turns) - k
	if start < 0 {
		start = 0
	}

	var msgs []domain.Message
	for _, t := range s.turns[start:] {
		msgs = append(msgs,
			domain.Message{Role: string(domain.SenderUser), Content: t.User.Text},
			domain.Message{Role: string(domain.SenderAgent), Content: t.Agent.Text},
		)
	}
	return msgs
}

func (s *Session) append(t domain.ConversationTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, t)
}

// SessionManager holds the live sessions. Each session is exclusively owned
// by its conversation; the manager only creates, looks up, and discards.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[uuid.UUID]*Session)}
}

func (m *SessionManager) Create() *Session {
	s := &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *SessionManager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *SessionManager) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
