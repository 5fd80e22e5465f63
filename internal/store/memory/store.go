package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cvassistenza/backend/internal/model/chat"
	"github.com/cvassistenza/backend/internal/model/cv"
	"github.com/cvassistenza/backend/internal/store"
)

// Store keeps sessions in a process-local map. Default backend when no
// DATABASE_URL is configured, and the backend used by tests.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]chat.Session
}

// NewStore bootstraps an empty in-memory session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]chat.Session)}
}

// GetSession retrieves a session by identifier.
func (s *Store) GetSession(_ context.Context, id string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return chat.Session{}, store.ErrSessionNotFound
	}
	return cloneSession(session), nil
}

// CreateSession stores a new session record.
func (s *Store) CreateSession(_ context.Context, session chat.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = cloneSession(session)
	return nil
}

// UpdateChatHistory replaces the stored transcript for the session.
func (s *Store) UpdateChatHistory(_ context.Context, id string, history []chat.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return store.ErrSessionNotFound
	}

	session.ChatHistory = append([]chat.Message(nil), history...)
	session.UpdatedAt = time.Now().UTC()
	s.sessions[id] = session
	return nil
}

// UpdateGeneratedCV sets the extracted CV record, replacing any prior value.
func (s *Store) UpdateGeneratedCV(_ context.Context, id string, record cv.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return store.ErrSessionNotFound
	}

	session.GeneratedCV = &record
	session.UpdatedAt = time.Now().UTC()
	s.sessions[id] = session
	return nil
}

// cloneSession copies the slices so callers cannot mutate stored state.
func cloneSession(session chat.Session) chat.Session {
	session.ChatHistory = append([]chat.Message(nil), session.ChatHistory...)
	if session.GeneratedCV != nil {
		record := *session.GeneratedCV
		session.GeneratedCV = &record
	}
	return session
}
