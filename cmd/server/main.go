package main

import (
	"context"
	"flag"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/Spok95/geosites/internal/api"
	"github.com/Spok95/geosites/internal/auth"
	"github.com/Spok95/geosites/internal/config"
	"github.com/Spok95/geosites/internal/domain/dashboard"
	"github.com/Spok95/geosites/internal/domain/sites"
	"github.com/Spok95/geosites/internal/domain/submissions"
	"github.com/Spok95/geosites/internal/domain/users"
	"github.com/Spok95/geosites/internal/infra/db"
	httpx "github.com/Spok95/geosites/internal/infra/http"
	"github.com/Spok95/geosites/internal/infra/logger"
	"github.com/Spok95/geosites/internal/infra/notify"
)

func newNotifier(cfg config.Config, log *slog.Logger) submissions.Notifier {
	if cfg.Telegram.Token == "" || cfg.Telegram.AdminChatID == 0 {
		log.Info("telegram notifications disabled")
		return nil
	}
	tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.AdminChatID, log.With("component", "telegram"))
	if err != nil {
		log.Error("telegram init failed, notifications disabled", "err", err)
		return nil
	}
	return tg
}

func main() {
	configPath := flag.String("config", "config/example.yaml", "path to the YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)
	if loc, err := time.LoadLocation(cfg.App.Timezone); err == nil {
		time.Local = loc
	} else {
		log.Warn("unknown timezone, keeping local", "tz", cfg.App.Timezone)
	}

	if err := db.Migrate(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	usersRepo := users.NewRepo(pool)
	sitesRepo := sites.NewRepo(pool)
	subsRepo := submissions.NewRepo(pool)

	hasher := auth.NewBcrypt()
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	usersSvc := users.NewService(usersRepo, hasher, log)

	router := api.NewRouter(api.Deps{
		Auth:        auth.NewService(usersSvc, hasher, tokens, log),
		Users:       usersSvc,
		Sites:       sites.NewService(sitesRepo, log),
		Submissions: submissions.NewService(subsRepo, newNotifier(cfg, log), log),
		Dashboard:   dashboard.NewService(dashboard.NewRepo(pool), sitesRepo, subsRepo),
		Tokens:      tokens,
		Log:         log,
		Env:         cfg.App.Env,
	})

	srv := httpx.New(httpx.Options{
		Addr:          cfg.HTTP.Addr,
		ReadTimeout:   cfg.HTTP.ReadTimeout,
		WriteTimeout:  cfg.HTTP.WriteTimeout,
		ExposeMetrics: cfg.Metrics.Enabled,
	}, router)
	go func() {
		if err := srv.Start(); err != nil {
			log.Error("http server error", "err", err)
			stop()
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
