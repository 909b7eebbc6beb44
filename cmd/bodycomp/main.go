package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	adapthttp "bodycomp/internal/adapter/http"
	"bodycomp/internal/adapter/memory"
	"bodycomp/internal/adapter/postgres"
	"bodycomp/internal/app"
	"bodycomp/internal/config"
	"bodycomp/internal/domain"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := buildLogger(cfg.Log)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	var (
		accounts    domain.AccountRepository
		sessions    domain.SessionRepository
		profiles    domain.ProfileRepository
		evaluations domain.EvaluationRepository
		stats       domain.StatsRepository
	)

	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("db open", zap.Error(err))
		}
		defer func() { _ = db.Close() }()
		accounts, sessions, profiles, evaluations, stats = db, postgres.NewSessionRepo(db), db, db, db
		logger.Info("using postgres store")
	} else {
		db := memory.New()
		accounts, sessions, profiles, evaluations, stats = db, db.NewSessionRepo(), db, db, db
		logger.Warn("DATABASE_URL not set, using in-memory store")
	}

	authSvc := app.NewAuthService(accounts, sessions)
	profileSvc := app.NewProfileService(profiles)
	evalSvc := app.NewEvaluationService(profiles, evaluations)
	statsSvc := app.NewStatsService(stats)

	var oidcCfg *adapthttp.OIDCConfig
	if cfg.OIDC.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		oidcCfg, err = adapthttp.NewOIDC(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID, cfg.OIDC.ClientSecret, cfg.OIDC.RedirectURL)
		cancel()
		if err != nil {
			logger.Fatal("oidc setup", zap.Error(err))
		}
		logger.Info("sso enabled", zap.String("issuer", cfg.OIDC.Issuer))
	}

	go purgeSessions(authSvc, logger)

	h := adapthttp.New(authSvc, profileSvc, evalSvc, statsSvc, adapthttp.Options{
		WebDir:    cfg.WebDir,
		AdminUser: cfg.AdminUser,
		Logger:    logger,
		OIDC:      oidcCfg,
	}).Handler()

	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serve", zap.Error(err))
	}
}

// purgeSessions sweeps expired sessions hourly.
func purgeSessions(auth *app.AuthService, logger *zap.Logger) {
	for range time.Tick(time.Hour) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := auth.PurgeExpiredSessions(ctx); err != nil {
			logger.Warn("session purge", zap.Error(err))
		}
		cancel()
	}
}

func buildLogger(lc config.Log) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if lc.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = lc.Format
	return zc.Build()
}
