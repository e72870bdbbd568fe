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
	"tubemetrics/internal/auth"
	"tubemetrics/internal/config"
	"tubemetrics/internal/db"
	"tubemetrics/internal/handlers"
	"tubemetrics/internal/middleware"
	"tubemetrics/internal/youtube"

	gh "github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	cfg, err := config.Load("DATABASE_URL", "JWT_SECRET")
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	if err := db.Migrate(ctx, conn); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	var fetcher handlers.StatsFetcher
	if cfg.YouTubeAPIKey != "" {
		f, err := youtube.NewFetcher(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			log.Fatalf("Failed to create YouTube client: %v", err)
		}
		fetcher = f
	} else {
		log.Println("YOUTUBE_API_KEY is not set, /stats will report the upstream as unavailable")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newHandler(cfg, db.New(conn), fetcher),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	log.Printf("Starting server on :%s (commit: %s)\n", cfg.Port, CommitSHA)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

// newHandler assembles the router and the cross-cutting middleware.
func newHandler(cfg config.Config, store *db.Store, fetcher handlers.StatsFetcher) http.Handler {
	authService := auth.NewService(store, cfg.JWTSecret, cfg.TokenLifetime)
	sessions := middleware.NewAuthenticator(authService, cfg.CookieSecure)
	limiter := middleware.NewRateLimiterMiddleware(rate.Limit(cfg.StatsRate), cfg.StatsBurst)

	h := handlers.New(store, fetcher, cfg.YouTubeChannelID, authService, sessions)
	router := h.Routes(limiter)

	var handler http.Handler = middleware.CORS(cfg.CORSOrigins)(router)
	handler = gh.CombinedLoggingHandler(os.Stdout, handler)
	return gh.RecoveryHandler(gh.PrintRecoveryStack(true))(handler)
}
