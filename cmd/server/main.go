// DonateHub platform API server.
//
// @title           DonateHub Platform API
// @version         1.0
// @description     REST API connecting fundraising NGOs with individual donors.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/donatehub/platform-api/internal/api"
	"github.com/donatehub/platform-api/internal/core/ports"
	"github.com/donatehub/platform-api/internal/infrastructure/db/mongo"
	"github.com/donatehub/platform-api/internal/infrastructure/db/redis"
	"github.com/donatehub/platform-api/internal/infrastructure/mail"
	"github.com/donatehub/platform-api/internal/pkg/config"
	"github.com/donatehub/platform-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	// --- MongoDB ---
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Redis (optional: disables OTP throttling when unreachable) ---
	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, otp throttle disabled")
		rdb = nil
	} else {
		defer func() { _ = rdb.Close() }()
	}

	// --- Notification sink ---
	var mailer ports.Mailer
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		log.Warn().Msg("no SMTP host configured, using log mail sink")
		mailer = mail.NewLogMailer(log)
	}

	e := api.NewRouter(db, rdb, mailer, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
