package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cvassistenza/backend/internal/config"
	"github.com/cvassistenza/backend/internal/handler"
	aiservice "github.com/cvassistenza/backend/internal/service/ai"
	chatservice "github.com/cvassistenza/backend/internal/service/chat"
	cvservice "github.com/cvassistenza/backend/internal/service/cv"
	"github.com/cvassistenza/backend/internal/store"
	"github.com/cvassistenza/backend/internal/store/memory"
	"github.com/cvassistenza/backend/internal/store/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	// Missing model credentials are fatal here, not per request.
	if err := cfg.AI.Validate(); err != nil {
		log.Fatalf("configuration missing: %v", err)
	}

	sessions := newSessionStore(ctx, cfg.Database)

	oracle, err := aiservice.NewService(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("failed to initialize AI service: %v", err)
	}

	chatSvc := chatservice.NewService(sessions, oracle)
	cvSvc := cvservice.NewService(sessions, oracle)

	router := handler.NewRouter(chatSvc, cvSvc, sessions)

	startServer(ctx, cfg.Server, router)
}

func newSessionStore(ctx context.Context, cfg config.DatabaseConfig) store.SessionStore {
	if cfg.URL == "" {
		log.Println("DATABASE_URL not set, using in-memory session store")
		return memory.NewStore()
	}

	pg, err := postgres.Open(ctx, cfg.URL)
	if err != nil {
		log.Fatalf("failed to open session store: %v", err)
	}
	log.Println("session store backed by Postgres")
	return pg
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("CV Assistenza backend listening on %s", serverCfg.Addr())
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
