package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/books-api/internal/api"
	"github.com/phrazzld/books-api/internal/config"
	"github.com/phrazzld/books-api/internal/platform/postgres"
	"github.com/phrazzld/books-api/internal/schema"
	"github.com/phrazzld/books-api/internal/service"
)

// application holds the wired dependencies of the HTTP server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	router http.Handler
}

// newApplication builds the dependency graph on top of an open database.
// The application takes ownership of db and closes it in cleanup.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	if cfg == nil || logger == nil || db == nil {
		return nil, fmt.Errorf("config, logger and db are required")
	}

	bookStore := postgres.NewPostgresBookStore(db, logger, cfg.Database.QueryTimeout)

	bookService, err := service.NewBookService(bookStore, schema.NewBookSchema(cfg.Schema.MaxYear), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create book service: %w", err)
	}

	maxBody := cfg.Server.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = api.DefaultMaxBodyBytes
	}

	router := api.NewRouter(
		api.NewBookHandler(bookService, logger, maxBody),
		api.NewHealthHandler(db, logger),
		logger,
	)

	return &application{
		config: cfg,
		logger: logger,
		db:     db,
		router: router,
	}, nil
}

// Run serves HTTP until ctx is canceled, then shuts down and releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()
	return app.startHTTPServer(ctx)
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		app.logger.Info("Closing database connection")
		closeDatabase(app.db, app.logger)
	}
}
