package chat

import (
	"time"

	"github.com/cvassistenza/backend/internal/model/cv"
)

// Session holds one user's conversation state plus, once extraction has run,
// the finalized CV record. The transcript is append-only: a stored turn is
// never edited or reordered.
type Session struct {
	ID           string     `json:"id"`
	UserLanguage string     `json:"user_language"`
	ChatHistory  []Message  `json:"chat_history"`
	GeneratedCV  *cv.Record `json:"generated_cv,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
