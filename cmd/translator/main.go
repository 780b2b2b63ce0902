package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"techtranslator/internal/client"
	"techtranslator/internal/config"
	"techtranslator/internal/handler"
	"techtranslator/internal/middleware"
	"techtranslator/internal/repository"
	"techtranslator/internal/repository/memory"
	"techtranslator/internal/repository/postgres"
	redisrepo "techtranslator/internal/repository/redis"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Technical Translator bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("translator_url", cfg.TranslatorURL),
		zap.String("history_backend", cfg.History.Backend),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize history persistence
	kv, closeKV, err := openKVStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize history storage", zap.Error(err))
	}
	defer closeKV()

	logger.Info("History storage ready")

	// Initialize translation service client
	translator := client.NewTranslatorClient(cfg.TranslatorURL, nil, logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logger.Error("Unhandled bot error", zap.Error(err))
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Initialize handler
	h := handler.NewHandler(ctx, bot, translator, translator, kv, cfg.History.Key, cfg.Translation, logger)
	bot.Use(middleware.LoggingMiddleware(logger))
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Check translation service configuration once at startup
	checkServiceHealth(ctx, translator, h, logger)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	logger.Info("Bot stopped gracefully")
}

// checkServiceHealth warns when the translation service reports it is not configured.
// Translation attempts are never blocked by the result.
func checkServiceHealth(ctx context.Context, translator *client.TranslatorClient, h *handler.Handler, logger *zap.Logger) {
	healthCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	status, err := translator.Health(healthCtx)
	if err != nil {
		logger.Error("Failed to check translation service status", zap.Error(err))
		return
	}

	if !status.AzureConfigured {
		logger.Warn("Translation service reports Azure Translator is not configured")
		h.SetServiceWarning("Azure Translator não configurado. Verifique as variáveis de ambiente.")
		return
	}

	logger.Info("Translation service is configured", zap.String("status", status.Status))
}

// openKVStore opens the configured history backend
func openKVStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.KVStore, func(), error) {
	switch cfg.History.Backend {
	case config.BackendPostgres:
		// Connect to database with retries
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			return nil, nil, err
		}

		// Run migrations
		if err := runMigrations(db, logger); err != nil {
			db.Close()
			return nil, nil, err
		}

		return postgres.NewKVRepo(db), func() { db.Close() }, nil

	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return redisrepo.NewKVRepo(rdb, cfg.Redis.Prefix, logger), func() { rdb.Close() }, nil

	case config.BackendMemory:
		logger.Warn("Using in-memory history storage, history is lost on restart")
		return memory.NewKVStore(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown history backend %q", cfg.History.Backend)
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations creates the kv_store table
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations applied successfully")
	return nil
}
