package cv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cvassistenza/backend/internal/model/chat"
	cvmodel "github.com/cvassistenza/backend/internal/model/cv"
	"github.com/cvassistenza/backend/internal/service/ai"
	"github.com/cvassistenza/backend/internal/store"
)

var (
	// ErrExtractionFailed reports a failed model call during extraction.
	ErrExtractionFailed = errors.New("cv extraction failed")
	// ErrMalformedCV reports model output that could not be parsed into the
	// CV record shape. Re-invoking issues a fresh model request.
	ErrMalformedCV = errors.New("cv output malformed")
)

// Oracle is the completion contract the extractor depends on.
type Oracle interface {
	Generate(ctx context.Context, system string, history []chat.Message, query string) (string, error)
}

// Service turns a stored conversation into a structured CV record with a
// single constrained completion call.
type Service struct {
	store  store.SessionStore
	oracle Oracle
}

// NewService wires the extractor to its session store and oracle.
func NewService(sessions store.SessionStore, oracle Oracle) *Service {
	return &Service{store: sessions, oracle: oracle}
}

// Generate extracts the CV record for a session and persists it, replacing
// any prior value. The record always comes back fully normalized: every
// scalar the conversation never supplied carries the placeholder text.
func (s *Service) Generate(ctx context.Context, sessionID string) (cvmodel.Record, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return cvmodel.Record{}, err
	}

	transcript := flattenTranscript(session.ChatHistory)
	log.Printf("[cv] extracting session=%s transcript=%d chars", sessionID, len(transcript))

	raw, err := s.oracle.Generate(ctx, ai.ExtractionPrompt(), nil, "Conversazione da analizzare:\n\n"+transcript)
	if err != nil {
		return cvmodel.Record{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	record, err := parseRecord(raw)
	if err != nil {
		log.Printf("[cv] parse failed for session=%s: %v", sessionID, err)
		return cvmodel.Record{}, fmt.Errorf("%w: %v", ErrMalformedCV, err)
	}
	record.Normalize()

	if err := s.store.UpdateGeneratedCV(ctx, sessionID, record); err != nil {
		return cvmodel.Record{}, fmt.Errorf("failed to persist cv record: %w", err)
	}
	return record, nil
}

// flattenTranscript joins the transcript into one text block, one line per
// turn as "role: text".
func flattenTranscript(messages []chat.Message) string {
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, msg.Role+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}

// parseRecord locates the JSON object in the model output and decodes it.
// Models tend to wrap JSON in markdown fences; both fenced and bare output
// are accepted.
func parseRecord(content string) (cvmodel.Record, error) {
	trimmed := stripFences(content)

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return cvmodel.Record{}, fmt.Errorf("missing json object")
	}
	body := []byte(trimmed[start : end+1])

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return cvmodel.Record{}, err
	}
	if _, ok := keys["personalInfo"]; !ok {
		return cvmodel.Record{}, fmt.Errorf("missing personalInfo key")
	}

	var record cvmodel.Record
	if err := json.Unmarshal(body, &record); err != nil {
		return cvmodel.Record{}, err
	}
	return record, nil
}

func stripFences(content string) string {
	clean := strings.TrimSpace(content)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
