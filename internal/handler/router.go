package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/cvassistenza/backend/internal/handler/chat"
	cvHandler "github.com/cvassistenza/backend/internal/handler/cv"
	middlewarePkg "github.com/cvassistenza/backend/internal/middleware"
	chatService "github.com/cvassistenza/backend/internal/service/chat"
	cvService "github.com/cvassistenza/backend/internal/service/cv"
	"github.com/cvassistenza/backend/internal/store"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(chatSvc *chatService.Service, cvSvc *cvService.Service, sessions store.SessionStore) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		chatHandler.New(chatSvc).RegisterRoutes(api)
		cvHandler.New(cvSvc, sessions).RegisterRoutes(api)

		api.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	return r
}
