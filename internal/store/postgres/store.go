package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/cvassistenza/backend/internal/model/chat"
	"github.com/cvassistenza/backend/internal/model/cv"
	"github.com/cvassistenza/backend/internal/store"
)

const createSessionsTable = `
CREATE TABLE IF NOT EXISTS cv_sessions (
    id            uuid PRIMARY KEY,
    user_language text NOT NULL DEFAULT 'italiano',
    chat_history  jsonb NOT NULL DEFAULT '[]'::jsonb,
    generated_cv  jsonb,
    created_at    timestamptz NOT NULL DEFAULT now(),
    updated_at    timestamptz NOT NULL DEFAULT now()
)`

const getSession = `
SELECT id, user_language, chat_history, generated_cv, created_at, updated_at
FROM cv_sessions
WHERE id = $1`

const insertSession = `
INSERT INTO cv_sessions (id, user_language, chat_history, created_at, updated_at)
VALUES ($1, $2, $3, $4, $4)`

const updateChatHistory = `
UPDATE cv_sessions
SET chat_history = $1, updated_at = now()
WHERE id = $2`

const updateGeneratedCV = `
UPDATE cv_sessions
SET generated_cv = $1, updated_at = now()
WHERE id = $2`

// Store persists sessions in a cv_sessions table, transcript and CV record as
// jsonb columns.
type Store struct {
	db *sql.DB
}

// Open connects to Postgres and ensures the cv_sessions table exists.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	if _, err := db.ExecContext(ctx, createSessionsTable); err != nil {
		return nil, fmt.Errorf("failed to ensure cv_sessions table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetSession retrieves a session by identifier.
func (s *Store) GetSession(ctx context.Context, id string) (chat.Session, error) {
	var (
		session    chat.Session
		historyRaw []byte
		cvRaw      []byte
	)

	row := s.db.QueryRowContext(ctx, getSession, id)
	err := row.Scan(&session.ID, &session.UserLanguage, &historyRaw, &cvRaw, &session.CreatedAt, &session.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return chat.Session{}, store.ErrSessionNotFound
	}
	if err != nil {
		return chat.Session{}, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	if err := json.Unmarshal(historyRaw, &session.ChatHistory); err != nil {
		return chat.Session{}, fmt.Errorf("failed to decode chat history for %s: %w", id, err)
	}
	if len(cvRaw) > 0 {
		record := &cv.Record{}
		if err := json.Unmarshal(cvRaw, record); err != nil {
			return chat.Session{}, fmt.Errorf("failed to decode generated cv for %s: %w", id, err)
		}
		session.GeneratedCV = record
	}
	return session, nil
}

// CreateSession inserts a new session row.
func (s *Store) CreateSession(ctx context.Context, session chat.Session) error {
	history := session.ChatHistory
	if history == nil {
		history = []chat.Message{}
	}
	historyRaw, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode chat history: %w", err)
	}

	_, err = s.db.ExecContext(ctx, insertSession, session.ID, session.UserLanguage, historyRaw, session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert session %s: %w", session.ID, err)
	}
	return nil
}

// UpdateChatHistory replaces the stored transcript for the session.
func (s *Store) UpdateChatHistory(ctx context.Context, id string, history []chat.Message) error {
	historyRaw, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode chat history: %w", err)
	}

	result, err := s.db.ExecContext(ctx, updateChatHistory, historyRaw, id)
	if err != nil {
		return fmt.Errorf("failed to update session %s: %w", id, err)
	}
	return checkAffected(result)
}

// UpdateGeneratedCV sets the extracted CV record, replacing any prior value.
func (s *Store) UpdateGeneratedCV(ctx context.Context, id string, record cv.Record) error {
	recordRaw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode cv record: %w", err)
	}

	result, err := s.db.ExecContext(ctx, updateGeneratedCV, recordRaw, id)
	if err != nil {
		return fmt.Errorf("failed to update session %s: %w", id, err)
	}
	return checkAffected(result)
}

func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrSessionNotFound
	}
	return nil
}
