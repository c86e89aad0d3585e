package service

import (
	"errors"
	"testing"
	"time"

	"github.com/JothiRam-cm/elevix/internal/domain"
	"github.com/google/uuid"
)

func TestSessionManager_CreateGetDelete(t *testing.T) {
	m := NewSessionManager()

	s := m.Create()
	if s.ID == uuid.Nil {
		t.Fatal("expected a session ID")
	}

	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != s {
		t.Error("expected the same session instance")
	}

	if err := m.Delete(s.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Get(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}
	if err := m.Delete(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound on double delete, got %v", err)
	}
}

func TestSession_WindowFlattensRecentTurns(t *testing.T) {
	s := &Session{ID: uuid.New(), CreatedAt: time.Now()}

	for i, q := range []string{"first", "second", "third"} {
		s.append(domain.ConversationTurn{
			User:  domain.Utterance{Sender: domain.SenderUser, Text: q},
			Agent: domain.Utterance{Sender: domain.SenderAgent, Text: "reply"},
			State: domain.StateDirect,
		})
		if s.Len() != i+1 {
			t.Fatalf("expected %d turns, got %d", i+1, s.Len())
		}
	}

	msgs := s.Window(2)
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages for a 2-turn window, got %d", len(msgs))
	}
	if msgs[0].Content != "second" || msgs[2].Content != "third" {
		t.Errorf("window not oldest-first: %v", msgs)
	}
	if msgs[0].Role != string(domain.SenderUser) || msgs[1].Role != string(domain.SenderAgent) {
		t.Errorf("expected alternating user/agent roles, got %s/%s", msgs[0].Role, msgs[1].Role)
	}

	// A window larger than the log returns everything.
	if got := len(s.Window(10)); got != 6 {
		t.Errorf("expected 6 messages, got %d", got)
	}
}

func TestSession_HistoryIsACopy(t *testing.T) {
	s := &Session{ID: uuid.New(), CreatedAt: time.Now()}
	s.append(domain.ConversationTurn{
		User: domain.Utterance{Sender: domain.SenderUser, Text: "original"},
	})

	turns := s.History()
	turns[0].User.Text = "mutated"

	if s.History()[0].User.Text != "original" {
		t.Error("mutating the returned history must not affect the session")
	}
}
