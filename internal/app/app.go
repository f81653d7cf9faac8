package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"resumeqa/web/internal/api"
	"resumeqa/web/internal/backend"
	"resumeqa/web/internal/config"
	"resumeqa/web/internal/database"
	"resumeqa/web/internal/repository"
	"resumeqa/web/internal/service"
)

// App is the wired web client: its credential store and the HTTP server
// serving the pages.
type App struct {
	DB       *sql.DB
	Registry *service.Registry
	Server   *http.Server
}

// NewApp opens the database and wires every component for cfg.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	repo := repository.NewSQLiteRepository(db)
	timeout := time.Duration(cfg.BackendTimeoutSeconds) * time.Second
	registry := service.NewRegistry(repo, func() backend.API {
		return backend.NewClient(cfg.BackendURL, &http.Client{Timeout: timeout})
	})

	pages, err := api.LoadPages()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	pageHandler := api.NewPageHandler(registry, pages, cfg.MaxUploadBytes)
	stateHandler := api.NewStateHandler(registry)
	router := api.NewRouter(pageHandler, stateHandler, api.RouterConfig{
		CookieSecure:   cfg.CookieSecure,
		AllowedOrigins: cfg.AllowedOrigins(),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Backend calls have no deadline.
		IdleTimeout:       120 * time.Second,
	}

	return &App{DB: db, Registry: registry, Server: server}, nil
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	if cfg.WaitForBackend {
		waitForBackend(cfg.HealthURL())
	}

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer func() {
		if err := app.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()
	slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)

	if cfg.ShellIdleMinutes > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go app.Registry.RunEviction(ctx, time.Minute, time.Duration(cfg.ShellIdleMinutes)*time.Minute)
	}

	slog.Info("Starting server", "port", cfg.AppPort, "backend_url", cfg.BackendURL)
	if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

func waitForBackend(healthURL string) {
	slog.Info("Waiting for the backend to be ready...", "url", healthURL)
	client := &http.Client{Timeout: 2 * time.Second}
	for {
		resp, err := client.Get(healthURL)
		if err == nil && resp.StatusCode == http.StatusOK {
			if bErr := resp.Body.Close(); bErr != nil {
				slog.Warn("Failed to close response body in backend health check", "error", bErr)
			}
			slog.Info("Backend is ready.")
			return
		}
		if resp != nil {
			if bErr := resp.Body.Close(); bErr != nil {
				slog.Warn("Failed to close response body in backend health check (retry path)", "error", bErr)
			}
		}
		slog.Debug("Backend not ready yet, retrying in 3 seconds...", "url", healthURL, "error", err)
		time.Sleep(3 * time.Second)
	}
}
