// Package server initializes and runs the Habitly backend. It opens the
// database, applies migrations, wires the services, and starts the HTTP
// server with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/TayeEmmanu/Habitly/internal/logging"
	"github.com/TayeEmmanu/Habitly/internal/server/config"
	"github.com/TayeEmmanu/Habitly/internal/server/mail"
	"github.com/TayeEmmanu/Habitly/internal/server/repositories/repomanager"
	"github.com/TayeEmmanu/Habitly/internal/server/rest"
	"github.com/TayeEmmanu/Habitly/internal/server/services"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	userService  *services.UserService
	habitService *services.HabitService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	mailer := selectMailer(c, logger)

	us := services.NewUserService(db, m, mailer, c)
	hs := services.NewHabitService(db, m)

	return &App{config: c, logger: logger, db: db, userService: us, habitService: hs}, nil
}

// selectMailer returns the Mailgun mailer when credentials are configured
// and falls back to console delivery otherwise, so local setups work without
// a Mailgun account.
func selectMailer(c *config.Config, logger logging.Logger) mail.Mailer {
	if c.MailgunDomain != "" && c.MailgunAPIKey != "" {
		return mail.NewMailgunMailer(c.MailgunDomain, c.MailgunAPIKey, c.EmailFrom)
	}
	return mail.NewConsoleMailer(logger)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := rest.NewServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.habitService, app.config.SecretKey, app.config.CORSAllowedOrigins)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
