// Command peergramd runs the peergram HTTP backend: identity, profiles,
// posts, and the follow/like relationship engine over PostgreSQL.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"

	"github.com/bilguun/peergram/api"
	"github.com/bilguun/peergram/auth"
	"github.com/bilguun/peergram/cache"
	"github.com/bilguun/peergram/httpx"
	"github.com/bilguun/peergram/media"
	"github.com/bilguun/peergram/social"
	"github.com/bilguun/peergram/store/postgres"
)

type config struct {
	Address      string
	DatabaseURL  string
	TokenSecret  string
	TokenTTL     time.Duration
	MediaGateway string
	MediaDir     string
	MediaBaseURL string
}

func loadConfig() (config, error) {
	_ = godotenv.Load()

	cfg := config{
		Address:      envOr("PEERGRAM_ADDR", ":8080"),
		DatabaseURL:  os.Getenv("PEERGRAM_DATABASE_URL"),
		TokenSecret:  os.Getenv("PEERGRAM_TOKEN_SECRET"),
		MediaGateway: os.Getenv("PEERGRAM_MEDIA_GATEWAY"),
		MediaDir:     envOr("PEERGRAM_MEDIA_DIR", "uploads"),
		MediaBaseURL: envOr("PEERGRAM_MEDIA_BASE_URL", "/files"),
	}
	if cfg.DatabaseURL == "" {
		return config{}, errors.New("PEERGRAM_DATABASE_URL is required")
	}
	if cfg.TokenSecret == "" {
		return config{}, errors.New("PEERGRAM_TOKEN_SECRET is required")
	}
	if raw := os.Getenv("PEERGRAM_TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return config{}, errors.New("PEERGRAM_TOKEN_TTL is not a duration")
		}
		cfg.TokenTTL = ttl
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	logger := log.New("peergram")
	logger.SetLevel(log.INFO)

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	db, err := postgres.Connect(postgres.WithDSN(cfg.DatabaseURL))
	if err != nil {
		logger.Fatalf("postgres: %v", err)
	}
	defer db.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := postgres.Migrate(migrateCtx, db); err != nil {
		cancelMigrate()
		logger.Fatalf("migrate: %v", err)
	}
	cancelMigrate()
	logger.Info("schema up to date")

	var tokenOpts []auth.TokenOption
	if cfg.TokenTTL > 0 {
		tokenOpts = append(tokenOpts, auth.WithTTL(cfg.TokenTTL))
	}
	tokens, err := auth.NewTokenService([]byte(cfg.TokenSecret), tokenOpts...)
	if err != nil {
		logger.Fatalf("tokens: %v", err)
	}

	// A remote gateway takes precedence; otherwise uploads land on local disk.
	var files media.Store
	if cfg.MediaGateway != "" {
		files, err = media.NewUploader(cfg.MediaGateway)
	} else {
		files, err = media.NewDiskStore(cfg.MediaDir, cfg.MediaBaseURL)
	}
	if err != nil {
		logger.Fatalf("media: %v", err)
	}

	users := postgres.NewUserRepository(db)
	posts := postgres.NewPostRepository(db)
	comments := postgres.NewCommentRepository(db)
	edges := postgres.NewEdgeRepository(db)

	profiles := cache.NewMemoryStore()
	accounts, err := social.NewAccountService(social.AccountServiceConfig{
		Users:    users,
		Hasher:   auth.NewHasher(),
		Tokens:   tokens,
		Media:    files,
		Profiles: profiles,
	})
	if err != nil {
		logger.Fatalf("accounts: %v", err)
	}

	toggle, err := social.NewToggle(edges)
	if err != nil {
		logger.Fatalf("toggle: %v", err)
	}
	counters, err := social.NewCounterSync(users, posts)
	if err != nil {
		logger.Fatalf("counters: %v", err)
	}
	feed, err := social.NewFeedService(social.FeedServiceConfig{
		Users:    users,
		Posts:    posts,
		Comments: comments,
		Toggle:   toggle,
		Counters: counters,
		Profiles: profiles,
	})
	if err != nil {
		logger.Fatalf("feed: %v", err)
	}

	gateway, err := auth.NewGateway(tokens, accounts)
	if err != nil {
		logger.Fatalf("gateway: %v", err)
	}

	handler, err := api.NewHandler(api.HandlerConfig{
		Accounts: accounts,
		Feed:     feed,
		Media:    files,
		Gateway:  gateway,
	})
	if err != nil {
		logger.Fatalf("api: %v", err)
	}

	srv := httpx.NewServer(
		httpx.WithAddress(cfg.Address),
		httpx.WithLogger(logger),
		httpx.WithCORS(nil),
	)
	srv.RegisterRoutes(handler.Register)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Infof("listening on %s", cfg.Address)
	if err := srv.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatalf("server: %v", err)
	}
	logger.Info("shutdown complete")
}
