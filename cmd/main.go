package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/immxrtalbeast/yoom/internal/api/http"
	"github.com/immxrtalbeast/yoom/internal/config"
	"github.com/immxrtalbeast/yoom/internal/domain"
	"github.com/immxrtalbeast/yoom/internal/identity"
	"github.com/immxrtalbeast/yoom/internal/metrics"
	"github.com/immxrtalbeast/yoom/internal/repository"
	"github.com/immxrtalbeast/yoom/internal/repository/model"
	"github.com/immxrtalbeast/yoom/internal/service"
	"github.com/immxrtalbeast/yoom/internal/videoclient"
	"github.com/immxrtalbeast/yoom/internal/web"
	"github.com/immxrtalbeast/yoom/lib/logger/sl"
	"github.com/immxrtalbeast/yoom/lib/logger/slogpretty"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	log.Info("starting yoom",
		slog.String("env", cfg.Env),
		slog.String("video_provider", cfg.Video.Provider),
		slog.String("identity_provider", cfg.Identity.Provider),
	)

	identityProvider, err := setupIdentity(cfg.Identity)
	if err != nil {
		log.Error("failed to set up identity provider", sl.Err(err))
		os.Exit(1)
	}

	// A nil client keeps the pages up; meeting creation then does nothing
	// and platform-backed pages report the client as unavailable.
	var client videoclient.Client
	if c, err := setupVideoClient(cfg, log); err != nil {
		log.Error("video client unavailable", sl.Err(err))
	} else {
		client = c
	}

	appMetrics := metrics.New("yoom", nil)
	loc := cfg.Location()

	tmpl, err := web.Templates(loc)
	if err != nil {
		log.Error("failed to parse templates", sl.Err(err))
		os.Exit(1)
	}

	visitService := service.NewVisitService(client, cfg.App.BaseURL, cfg.App.VisitTTL, appMetrics, log)
	callService := service.NewCallService(client, cfg.App.BaseURL, cfg.Video.TokenTTL, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go visitService.Run(ctx)

	homeController := httpapi.NewHomeController(visitService, callService, appMetrics, loc, log)
	callsController := httpapi.NewCallsController(callService, cfg.App.BaseURL, cfg.Video.APIKey, appMetrics, loc, log)
	apiController := httpapi.NewAPIController(callService, cfg.App.BaseURL, cfg.Video.APIKey, log)

	router := httpapi.SetupRouter(httpapi.RouterOptions{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		SignInURL:      cfg.Identity.SignInURL,
		Identity:       identityProvider,
		Templates:      tmpl,
		Metrics:        appMetrics.Handler(),
		RateLimiter:    httpapi.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, appMetrics),
		Log:            log,
	}, homeController, callsController, apiController)

	log.Info("starting application", slog.String("addr", cfg.HTTP.Address))
	if err := router.Run(cfg.HTTP.Address); err != nil {
		log.Error("http server stopped", sl.Err(err))
		os.Exit(1)
	}
}

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}

func setupIdentity(cfg config.IdentityConfig) (identity.Provider, error) {
	switch cfg.Provider {
	case config.IdentityProviderStatic:
		user := domain.NewUser(cfg.StaticUser.ID, cfg.StaticUser.Name, cfg.StaticUser.Email)
		return identity.NewStaticProvider(*user), nil
	case config.IdentityProviderJWT:
		return identity.NewJWTProvider(identity.JWTConfig{
			SessionCookie:     cfg.SessionCookie,
			PublicKeyPEM:      cfg.PublicKeyPEM,
			HMACSecret:        cfg.HMACSecret,
			Issuer:            cfg.Issuer,
			AuthorizedParties: cfg.AuthorizedParties,
			Leeway:            5 * time.Second,
		})
	}
	return nil, errors.New("unknown identity provider: " + cfg.Provider)
}

func setupVideoClient(cfg *config.Config, log *slog.Logger) (videoclient.Client, error) {
	switch cfg.Video.Provider {
	case config.VideoProviderStream:
		return videoclient.NewStreamClient(videoclient.StreamConfig{
			BaseURL:   cfg.Video.BaseURL,
			APIKey:    cfg.Video.APIKey,
			APISecret: cfg.Video.APISecret,
			Timeout:   cfg.Video.Timeout,
		}, log)
	case config.VideoProviderLocal:
		secret := cfg.Video.APISecret
		if secret == "" {
			var err error
			if secret, err = randomSecret(); err != nil {
				return nil, err
			}
			log.Warn("video api secret is empty, client tokens use a random secret")
		}

		if cfg.Database.DSN == "" {
			log.Info("database dsn is empty, calls are kept in memory")
			return videoclient.NewLocalClient(
				repository.NewInMemoryCallRepository(),
				repository.NewInMemoryRecordingRepository(),
				secret,
				log,
			), nil
		}

		db, err := connectDatabase(cfg.Database)
		if err != nil {
			return nil, err
		}
		return videoclient.NewLocalClient(
			repository.NewPostgresCallRepository(db),
			repository.NewPostgresRecordingRepository(db),
			secret,
			log,
		), nil
	}
	return nil, errors.New("unknown video provider: " + cfg.Video.Provider)
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func connectDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, errors.New("database dsn is empty")
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.Call{}, &model.Recording{}); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
