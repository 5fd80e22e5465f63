package chat_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	chatmodel "github.com/cvassistenza/backend/internal/model/chat"
	chatservice "github.com/cvassistenza/backend/internal/service/chat"
	"github.com/cvassistenza/backend/internal/store"
	"github.com/cvassistenza/backend/internal/store/memory"
)

type fakeOracle struct {
	reply string
	err   error
	calls int
	// captured from the last call
	system  string
	history []chatmodel.Message
	query   string
}

func (f *fakeOracle) Generate(_ context.Context, system string, history []chatmodel.Message, query string) (string, error) {
	f.calls++
	f.system = system
	f.history = append([]chatmodel.Message(nil), history...)
	f.query = query
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestAdvanceCreatesSession(t *testing.T) {
	sessions := memory.NewStore()
	oracle := &fakeOracle{reply: "Benvenuto! Da quanto tempo lavori come badante?"}
	svc := chatservice.NewService(sessions, oracle)

	reply, sessionID, err := svc.Advance(context.Background(), "", "Cerco lavoro come badante", "it")
	if err != nil {
		t.Fatalf("Advance err: %v", err)
	}
	if reply == "" {
		t.Fatal("expected a non-empty reply")
	}
	if sessionID == "" {
		t.Fatal("expected a fresh session id")
	}

	session, err := sessions.GetSession(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("GetSession err: %v", err)
	}
	if session.UserLanguage != "it" {
		t.Fatalf("unexpected language: %s", session.UserLanguage)
	}
	if len(session.ChatHistory) != 2 {
		t.Fatalf("expected 2 transcript entries, got %d", len(session.ChatHistory))
	}
}

func TestAdvanceTranscriptAlternates(t *testing.T) {
	sessions := memory.NewStore()
	oracle := &fakeOracle{}
	svc := chatservice.NewService(sessions, oracle)
	ctx := context.Background()

	const turns = 4
	sessionID := ""
	for i := 0; i < turns; i++ {
		oracle.reply = fmt.Sprintf("risposta %d", i)
		var err error
		_, sessionID, err = svc.Advance(ctx, sessionID, fmt.Sprintf("messaggio %d", i), "italiano")
		if err != nil {
			t.Fatalf("turn %d err: %v", i, err)
		}
	}

	session, err := sessions.GetSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("GetSession err: %v", err)
	}
	if len(session.ChatHistory) != 2*turns {
		t.Fatalf("expected %d entries, got %d", 2*turns, len(session.ChatHistory))
	}
	for i, msg := range session.ChatHistory {
		want := chatmodel.RoleUser
		if i%2 == 1 {
			want = chatmodel.RoleAssistant
		}
		if msg.Role != want {
			t.Fatalf("entry %d: expected role %s, got %s", i, want, msg.Role)
		}
	}
	if session.ChatHistory[6].Content != "messaggio 3" {
		t.Fatalf("entries out of call order: %q", session.ChatHistory[6].Content)
	}
}

func TestAdvanceForwardsFullHistory(t *testing.T) {
	sessions := memory.NewStore()
	oracle := &fakeOracle{reply: "ok"}
	svc := chatservice.NewService(sessions, oracle)
	ctx := context.Background()

	_, sessionID, err := svc.Advance(ctx, "", "primo", "italiano")
	if err != nil {
		t.Fatalf("Advance err: %v", err)
	}
	if _, _, err := svc.Advance(ctx, sessionID, "secondo", "italiano"); err != nil {
		t.Fatalf("Advance err: %v", err)
	}

	if len(oracle.history) != 2 {
		t.Fatalf("expected 2 history entries on second turn, got %d", len(oracle.history))
	}
	if oracle.query != "secondo" {
		t.Fatalf("unexpected query: %q", oracle.query)
	}
	if oracle.system == "" {
		t.Fatal("expected a system instruction")
	}
}

func TestAdvanceSessionNotFound(t *testing.T) {
	svc := chatservice.NewService(memory.NewStore(), &fakeOracle{reply: "ok"})

	_, _, err := svc.Advance(context.Background(), "missing", "ciao", "italiano")
	if !errors.Is(err, store.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAdvanceEmptyMessage(t *testing.T) {
	svc := chatservice.NewService(memory.NewStore(), &fakeOracle{reply: "ok"})

	_, _, err := svc.Advance(context.Background(), "", "   ", "italiano")
	if !errors.Is(err, chatservice.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestAdvanceOracleFailureLeavesTranscriptUntouched(t *testing.T) {
	sessions := memory.NewStore()
	oracle := &fakeOracle{reply: "ok"}
	svc := chatservice.NewService(sessions, oracle)
	ctx := context.Background()

	_, sessionID, err := svc.Advance(ctx, "", "primo", "italiano")
	if err != nil {
		t.Fatalf("Advance err: %v", err)
	}

	oracle.err = errors.New("upstream timeout")
	_, _, err = svc.Advance(ctx, sessionID, "secondo", "italiano")
	if !errors.Is(err, chatservice.ErrAssistantUnavailable) {
		t.Fatalf("expected ErrAssistantUnavailable, got %v", err)
	}

	session, err := sessions.GetSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("GetSession err: %v", err)
	}
	if len(session.ChatHistory) != 2 {
		t.Fatalf("failed turn must not be persisted, got %d entries", len(session.ChatHistory))
	}
}
