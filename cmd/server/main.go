// @title                       SwiftEx Tracking API
// @version                     1.0
// @description                 Shipment tracking with live progress, administration and invoicing.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/swiftex/tracking-service/docs"
	"github.com/swiftex/tracking-service/internal/api"
	"github.com/swiftex/tracking-service/internal/core/ports"
	"github.com/swiftex/tracking-service/internal/core/service"
	"github.com/swiftex/tracking-service/internal/infrastructure/config"
	mongodb "github.com/swiftex/tracking-service/internal/infrastructure/db/mongo"
	redisdb "github.com/swiftex/tracking-service/internal/infrastructure/db/redis"
	"github.com/swiftex/tracking-service/internal/infrastructure/mail"
	"github.com/swiftex/tracking-service/internal/infrastructure/notify"
	"github.com/swiftex/tracking-service/internal/infrastructure/queue"
	"github.com/swiftex/tracking-service/internal/infrastructure/render"
	"github.com/swiftex/tracking-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		File:    cfg.LogFile,
		Service: "tracking-service",
	})

	if err := run(cfg); err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config) error {
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	shipmentRepo := mongodb.NewShipmentRepository(db)
	timelineRepo := mongodb.NewTimelineRepository(db)
	authRepo := mongodb.NewAuthRepository(db)
	if err := mongodb.EnsureIndexes(ctx, shipmentRepo, timelineRepo, authRepo); err != nil {
		return err
	}

	// --- Change notification ---
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.DispatchWorkers, notify.NewRedisPublisher(rdb), log)
	dispatcher.Start(workerCtx)

	pollFeed := notify.NewPollFeed(shipmentRepo, cfg.PollInterval, log)
	if err := pollFeed.Start(workerCtx); err != nil {
		cancelWorkers()
		return err
	}
	feed := notify.NewMergedFeed(log, notify.NewPushFeed(rdb, log), pollFeed)

	// --- Services ---
	var mailer ports.Mailer = mail.NewLogMailer(log)
	if cfg.SMTP.Addr != "" {
		smtpMailer, err := mail.NewSMTPMailer(mail.SMTPConfig{
			Addr:     cfg.SMTP.Addr,
			From:     cfg.SMTP.From,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
		})
		if err != nil {
			cancelWorkers()
			return err
		}
		mailer = smtpMailer
	}

	shipmentService := service.NewShipmentService(shipmentRepo, timelineRepo, dispatcher, log)
	authService := service.NewAuthService(
		authRepo,
		redisdb.NewSessionStore(rdb),
		redisdb.NewResetTokenStore(rdb),
		mailer,
		service.AuthOptions{
			JWTSecret: cfg.JWTSecret,
			TokenTTL:  cfg.TokenTTL,
			ResetTTL:  cfg.ResetTokenTTL,
			ResetURL:  cfg.ResetURL,
		},
		log,
	)
	invoiceService := service.NewInvoiceService(render.NewPDFRenderer(), log)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if _, err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			cancelWorkers()
			return err
		}
	}

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Shipments: shipmentService,
		Auth:      authService,
		Invoices:  invoiceService,
		Feed:      feed,
		DB:        db,
		Redis:     rdb,
		Logger:    log,
	})

	srv := api.NewServer(":"+cfg.Port, e)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			cancelWorkers()
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	pollFeed.Stop()
	cancelWorkers()
	dispatcher.Wait()

	log.Info().Msg("server stopped cleanly")
	return nil
}
