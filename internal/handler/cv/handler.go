package cv

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cvassistenza/backend/internal/render"
	cvservice "github.com/cvassistenza/backend/internal/service/cv"
	"github.com/cvassistenza/backend/internal/store"
	"github.com/cvassistenza/backend/pkg/utils"
)

// generationFailedMessage is the one-line notice shown when extraction or
// rendering fails; no document is produced in that case.
const generationFailedMessage = "Errore durante la generazione del CV. Riprova."

// Handler exposes CV extraction and download endpoints.
type Handler struct {
	cvSvc    *cvservice.Service
	sessions store.SessionStore
}

// New creates the CV handler.
func New(cvSvc *cvservice.Service, sessions store.SessionStore) *Handler {
	return &Handler{cvSvc: cvSvc, sessions: sessions}
}

// RegisterRoutes mounts the CV routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/generate-cv", h.handleGenerate)
	r.Get("/cv/{sessionID}/download", h.handleDownload)
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	record, err := h.cvSvc.Generate(r.Context(), payload.SessionID)
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	case errors.Is(err, cvservice.ErrMalformedCV):
		// Distinct from an upstream failure: the caller may simply ask again,
		// which issues a fresh extraction.
		utils.RespondError(w, http.StatusBadGateway, generationFailedMessage)
		return
	case err != nil:
		utils.RespondError(w, http.StatusBadGateway, generationFailedMessage)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"cv":      record,
	})
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.sessions.GetSession(r.Context(), sessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, generationFailedMessage)
		return
	}
	if session.GeneratedCV == nil {
		utils.RespondError(w, http.StatusNotFound, "no cv generated for this session")
		return
	}

	data, err := render.WritePDF(render.Layout(*session.GeneratedCV))
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, generationFailedMessage)
		return
	}

	filename := render.Filename(*session.GeneratedCV, time.Now())
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
