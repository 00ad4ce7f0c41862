package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vivelo/internal/adaptor"
	"vivelo/internal/data/repository"
	"vivelo/internal/jobs"
	"vivelo/internal/usecase"
	"vivelo/internal/wire"
	"vivelo/pkg/calendar"
	"vivelo/pkg/database"
	"vivelo/pkg/mailer"
	"vivelo/pkg/payment"
	"vivelo/pkg/utils"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Run boots the whole application: config, logger, database, services,
// router, sweeps, and the HTTP server with graceful shutdown.
func Run() error {
	cfg, err := utils.LoadConfig()
	if err != nil {
		return err
	}

	log, err := utils.InitLogger(cfg.App.LogPath, cfg.App.Debug)
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	repo := repository.NewRepository(db, log)

	payments := payment.NewClient(cfg.Stripe.APIKey, cfg.Stripe.Currency, cfg.Stripe.WebhookSecret, log)
	googleCalendar := calendar.NewClient(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL, log)
	mail := mailer.New(cfg.Email.Host, cfg.Email.Port, cfg.Email.User, cfg.Email.Password, cfg.Email.From, log)

	svc := usecase.NewService(repo, cfg, payments, googleCalendar, mail, log)
	handler := adaptor.NewHandler(svc, log)
	router := wire.NewRouter(handler, repo, log)

	sweeper := jobs.NewSweeper(svc.Sweep, cfg.Sweep, log)
	if err := sweeper.Start(); err != nil {
		log.Error("Failed to start sweeper", zap.Error(err))
		return err
	}
	defer sweeper.Stop()

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening", zap.String("port", cfg.App.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("Shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(ctx)
}
