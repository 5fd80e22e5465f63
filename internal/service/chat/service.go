package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cvassistenza/backend/internal/model/chat"
	"github.com/cvassistenza/backend/internal/service/ai"
	"github.com/cvassistenza/backend/internal/store"
)

var (
	// ErrEmptyMessage reports a blank user turn.
	ErrEmptyMessage = errors.New("message is required")
	// ErrAssistantUnavailable reports a failed model call. The transcript is
	// left untouched when this is returned.
	ErrAssistantUnavailable = errors.New("assistant unavailable")
)

// DefaultLanguage is assumed when a new session carries no language hint.
const DefaultLanguage = "italiano"

// Oracle is the completion contract the orchestrator depends on.
type Oracle interface {
	Generate(ctx context.Context, system string, history []chat.Message, query string) (string, error)
}

// Service owns the conversation state machine: one user turn in, one
// assistant reply out, both appended to the persisted transcript.
type Service struct {
	store  store.SessionStore
	oracle Oracle

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService wires the orchestrator to its session store and oracle.
func NewService(sessions store.SessionStore, oracle Oracle) *Service {
	return &Service{
		store:  sessions,
		oracle: oracle,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Advance runs one orchestrator turn. An empty sessionID creates a new
// session with the given language hint; otherwise the session is fetched and
// store.ErrSessionNotFound is surfaced for unresolvable keys. On success the
// user turn and the reply are appended and persisted. On a model failure
// nothing is persisted, so a committed exchange always has both halves.
func (s *Service) Advance(ctx context.Context, sessionID, message, language string) (string, string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", "", ErrEmptyMessage
	}

	var session chat.Session
	if sessionID == "" {
		if strings.TrimSpace(language) == "" {
			language = DefaultLanguage
		}
		session = chat.Session{
			ID:           uuid.NewString(),
			UserLanguage: language,
			ChatHistory:  []chat.Message{},
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.store.CreateSession(ctx, session); err != nil {
			return "", "", fmt.Errorf("failed to create session: %w", err)
		}
		log.Printf("[chat] created session=%s language=%s", session.ID, session.UserLanguage)
	}

	key := sessionID
	if key == "" {
		key = session.ID
	}

	// Serialize the read-modify-write of one session's transcript; turns on
	// distinct sessions proceed independently.
	lock := s.sessionLock(key)
	lock.Lock()
	defer lock.Unlock()

	if sessionID != "" {
		var err error
		session, err = s.store.GetSession(ctx, sessionID)
		if err != nil {
			return "", "", err
		}
	}

	reply, err := s.oracle.Generate(ctx, ai.SystemPrompt(session.UserLanguage), session.ChatHistory, message)
	if err != nil {
		log.Printf("[chat] completion failed for session=%s: %v", session.ID, err)
		return "", session.ID, fmt.Errorf("%w: %v", ErrAssistantUnavailable, err)
	}

	history := append(session.ChatHistory,
		chat.Message{Role: chat.RoleUser, Content: message},
		chat.Message{Role: chat.RoleAssistant, Content: reply},
	)
	if err := s.store.UpdateChatHistory(ctx, session.ID, history); err != nil {
		return "", session.ID, fmt.Errorf("failed to persist transcript: %w", err)
	}

	return reply, session.ID, nil
}

func (s *Service) sessionLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}
