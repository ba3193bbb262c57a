package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clubhub/internal/analytics"
	"clubhub/internal/api"
	"clubhub/internal/club"
	"clubhub/internal/config"
	"clubhub/internal/database"
	"clubhub/internal/event"
	"clubhub/internal/repository"
	"clubhub/internal/telemetry"
	"clubhub/internal/user"
	"clubhub/internal/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	pgstorage "github.com/gofiber/storage/postgres/v3"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	inMemory := flag.Bool("memory", false, "run against the in-memory store instead of Postgres")
	flag.Parse()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		slog.Info("Received signal", "signal", sig.String())
		cancel()
	}()

	cfg := config.NewConfig()

	logLevel := slog.LevelInfo
	if cfg.Server.Environment == config.EnvironmentDevelopment {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	tel, err := telemetry.New(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown telemetry", "error", err)
		}
	}()

	var (
		repo         repository.Repository
		sessionStore *session.Store
	)
	if *inMemory {
		logger.Warn("Running with the in-memory store, all data is lost on shutdown")
		repo = repository.NewMemoryRepository()
		sessionStore = session.New(session.Config{
			Expiration:     cfg.Session.ExpiresIn,
			KeyLookup:      "cookie:" + cfg.Session.CookieName,
			CookieHTTPOnly: true,
			CookieSameSite: "Lax",
		})
	} else {
		db, err := database.NewDatabase(ctx, cfg.Database)
		if err != nil {
			logger.Error("Failed to initialize database", "error", err)
			return err
		}
		defer db.Close()

		pgRepo := repository.NewPostgresRepository(db)
		if err := pgRepo.Migrate(ctx); err != nil {
			logger.Error("Failed to run schema migration", "error", err)
			return err
		}
		repo = pgRepo

		storage := pgstorage.New(pgstorage.Config{
			Host:       cfg.Database.Host,
			Port:       cfg.Database.Port,
			Database:   cfg.Database.Name,
			Username:   cfg.Database.User,
			Password:   cfg.Database.Password,
			SSLMode:    cfg.Database.SSLMode,
			Table:      "tbl_session",
			Reset:      false,
			GCInterval: cfg.Session.GCInterval,
		})
		sessionStore = session.New(session.Config{
			Storage:        storage,
			Expiration:     cfg.Session.ExpiresIn,
			KeyLookup:      "cookie:" + cfg.Session.CookieName,
			CookieHTTPOnly: true,
			CookieSecure:   cfg.Server.Environment == config.EnvironmentProduction,
			CookieSameSite: "Lax",
		})
	}

	validate := validator.New()

	eventManager := event.NewManager(logger, repo, validate)
	ledger := event.NewLedger(logger, repo)
	verifier := event.NewVerifier(logger, repo)
	clubManager := club.NewManager(logger, repo, validate)
	userManager := user.NewManager(logger, repo, validate)
	reporter := analytics.NewReporter(logger, repo)

	app := fiber.New(fiber.Config{
		AppName:      "clubhub",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})
	app.Use(telemetry.FiberMiddleware(cfg.Telemetry.ServiceName))

	handler := api.NewHandler(logger, sessionStore, repo, eventManager, ledger, verifier, clubManager, userManager, reporter)
	handler.RegisterRoutes(app)

	errChan := make(chan error, 1)
	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		logger.Info("Starting server", "address", addr, "environment", cfg.Server.Environment)
		errChan <- app.Listen(addr)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Failed to shutdown server gracefully", "error", err)
			return err
		}
	}

	logger.Info("Server stopped")
	return nil
}
