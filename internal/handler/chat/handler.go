package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cvassistenza/backend/internal/service/ai"
	chatservice "github.com/cvassistenza/backend/internal/service/chat"
	"github.com/cvassistenza/backend/internal/store"
	"github.com/cvassistenza/backend/pkg/utils"
)

// apologyMessage is what chat clients show when the model call fails. The
// transcript is not mutated in that case.
const apologyMessage = "Si è verificato un errore. Riprova."

// Handler exposes the conversation endpoints.
type Handler struct {
	chatSvc *chatservice.Service
}

// New creates the chat handler.
func New(chatSvc *chatservice.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes mounts the conversation routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/cv-chat", h.handleChat)
	r.Get("/greeting", h.handleGreeting)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message   string `json:"message"`
		SessionID string `json:"sessionId"`
		Language  string `json:"language"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, sessionID, err := h.chatSvc.Advance(r.Context(), payload.SessionID, payload.Message, payload.Language)
	switch {
	case errors.Is(err, chatservice.ErrEmptyMessage):
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	case errors.Is(err, store.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	case errors.Is(err, chatservice.ErrAssistantUnavailable):
		utils.RespondError(w, http.StatusBadGateway, apologyMessage)
		return
	case err != nil:
		utils.RespondError(w, http.StatusInternalServerError, apologyMessage)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"response":  reply,
		"sessionId": sessionID,
	})
}

func (h *Handler) handleGreeting(w http.ResponseWriter, r *http.Request) {
	langCode := r.URL.Query().Get("language")
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"greeting": ai.Greeting(langCode),
	})
}
