package store

import (
	"context"
	"errors"

	"github.com/cvassistenza/backend/internal/model/chat"
	"github.com/cvassistenza/backend/internal/model/cv"
)

// ErrSessionNotFound reports an unresolvable session key. Callers surface it
// as-is; it is never retried.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore is the keyed persistence contract for conversation sessions.
// One record per conversation; the core never deletes.
type SessionStore interface {
	GetSession(ctx context.Context, id string) (chat.Session, error)
	CreateSession(ctx context.Context, session chat.Session) error
	UpdateChatHistory(ctx context.Context, id string, history []chat.Message) error
	UpdateGeneratedCV(ctx context.Context, id string, record cv.Record) error
}
