package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inamate/board/internal/auth"
	"github.com/inamate/board/internal/boards"
	"github.com/inamate/board/internal/config"
	mw "github.com/inamate/board/internal/middleware"
	"github.com/inamate/board/internal/session"
	"github.com/inamate/board/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("ping database", "error", err)
		os.Exit(1)
	}

	boardStore := store.New(pool)
	if err := boardStore.Migrate(ctx); err != nil {
		slog.Error("migrate database", "error", err)
		os.Exit(1)
	}

	authService := auth.NewService(cfg.JWTSecret, auth.DefaultTokenTTL)
	boardHandler := boards.NewHandler(boardStore, authService)
	authHandler := auth.NewHandler(authService, boardHandler.Check)

	hub := session.NewHub(boardStore, session.ClientOptions{
		ControllerSize: cfg.ControllerSize,
		MinResizeSize:  cfg.MinResizeSize,
	}, slog.Default())
	go hub.Run(ctx)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Board routes (public)
	r.HandleFunc("/boards", boardHandler.Create).Methods("POST", "OPTIONS")
	r.HandleFunc("/boards/{boardId}/join", authHandler.Join).Methods("POST", "OPTIONS")

	// Protected board routes
	api := r.PathPrefix("/boards/{boardId}").Subrouter()
	api.Use(authService.BoardMiddleware)
	api.HandleFunc("", boardHandler.Get).Methods("GET")

	// WebSocket endpoint
	ws := r.PathPrefix("/ws/board/{boardId}").Subrouter()
	ws.Use(authService.BoardMiddleware)
	ws.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, cfg.Origins())
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)

		slog.Info("saving open boards")
		hub.Flush()
		cancel()
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	<-ctx.Done()
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *session.Hub, origins []string) {
	sess := auth.SessionFromContext(r.Context())

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(origins),
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	slog.Debug("websocket attached", "board", sess.BoardID, "session", sess.ID)
	hub.Serve(r.Context(), conn, sess.BoardID)
}

// originPatterns strips the scheme from allowed origins; websocket.Accept matches hosts.
func originPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			patterns = append(patterns, u.Host)
		} else {
			patterns = append(patterns, o)
		}
	}
	return patterns
}
