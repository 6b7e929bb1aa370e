package main

import (
	"context"
	"crypto/rsa"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/orgstack/orgd/internal/application/identity"
	"github.com/orgstack/orgd/internal/application/lifecycle"
	"github.com/orgstack/orgd/internal/config"
	infraauth "github.com/orgstack/orgd/internal/infrastructure/auth"
	httprouter "github.com/orgstack/orgd/internal/infrastructure/http"
	"github.com/orgstack/orgd/internal/infrastructure/http/handlers"
	"github.com/orgstack/orgd/internal/infrastructure/http/middleware"
	dbmigrate "github.com/orgstack/orgd/internal/infrastructure/persistence/db/migrate"
	"github.com/orgstack/orgd/internal/infrastructure/persistence/postgres"
	"github.com/orgstack/orgd/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		direction := "up"
		if len(os.Args) > 2 {
			direction = os.Args[2]
		}
		if err := dbmigrate.Run(cfg.Database.URL, direction); err != nil {
			log.Fatal().Err(err).Str("direction", direction).Msg("migrate")
		}
		log.Info().Str("direction", direction).Msg("migrations applied")
		return
	}

	if cfg.Database.MigrateOnStart {
		if err := dbmigrate.Run(cfg.Database.URL, "up"); err != nil {
			log.Fatal().Err(err).Msg("migrate on start")
		}
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	store := postgres.NewStore(pool)
	hasher := security.NewBcryptHasher(cfg.Bcrypt.Cost)

	privateKey, err := loadOrGenerateKey(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("load JWT private key")
	}
	issuer := infraauth.NewTokenIssuer(privateKey, cfg.JWT.Issuer, cfg.JWT.Audience)

	loginUC := identity.NewLogin(store, hasher, issuer, cfg.JWT.AccessExpiry)
	createUC := lifecycle.NewCreateOrganization(store, hasher)
	renameUC := lifecycle.NewRenameOrganization(store, hasher)
	deleteUC := lifecycle.NewDeleteOrganization(store)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP, redisClient)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}

	health := handlers.NewHealthHandler().AddCheck("database", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	if redisClient != nil {
		health.AddCheck("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	router := httprouter.NewRouter(httprouter.RouterConfig{
		OrgHandler:    handlers.NewOrgHandler(createUC, renameUC, deleteUC, log),
		AdminHandler:  handlers.NewAdminHandler(loginUC, log),
		HealthHandler: health,
		RequireJWT:    middleware.NewAuthValidator(issuer).Handler,
		Log:           log,
		Secure:        middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment)),
		CORS:          middleware.CORS(cfg.CORS.AllowedOrigins),
		IPRateLimit:   ipLimit,
		Metrics:       true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}

func loadOrGenerateKey(cfg *config.Config, log zerolog.Logger) (*rsa.PrivateKey, error) {
	pemBytes, err := cfg.LoadJWTPrivateKey()
	if err != nil {
		return nil, err
	}
	if pemBytes != nil {
		return infraauth.LoadRSAPrivateKeyFromPEM(pemBytes)
	}
	// No key configured: generate one. Tokens will not survive a restart,
	// which is acceptable in dev only.
	log.Warn().Msg("JWT_PRIVATE_KEY_PATH not set; using ephemeral signing key")
	return infraauth.GenerateEphemeralKey()
}
