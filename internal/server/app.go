// Package server initializes and runs the auth server.
// It opens and migrates the credential store, wires the user service into
// the HTTP API and the gRPC health endpoint, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophauth/internal/filex"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/httpserver"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/gin-gonic/gin"

	gs "github.com/dmitrijs2005/gophauth/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
}

// NewApp validates c, opens the store and builds the services. The caller
// must Close the App.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	um, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	dsn, err := prepareDSN(c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	db, err := repomanager.Open(ctx, um, dsn)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hasher, err := auth.NewPasswordHasher(c.PasswordHasher, c.BcryptCost)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	us, err := services.NewUserService(db, um, hasher, c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{config: c, logger: logger, db: db, userService: us}, nil
}

// prepareDSN returns the connection string for c. A plain SQLite file path
// gets its directory created; URIs and :memory: are passed through.
func prepareDSN(c *config.Config) (string, error) {
	dsn := c.DSN()
	if c.DatabaseDriver != config.DriverSQLite || dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return dsn, nil
	}
	return filex.EnsureParentDir(dsn)
}

// UserService exposes the wired service for in-process tools.
func (app *App) UserService() *services.UserService {
	return app.userService
}

func (app *App) Close() error {
	return app.db.Close()
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", sig.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpserver.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService, httpserver.Options{
		Cookie: httpserver.CookieOptions{
			Secure: app.config.CookieSecure,
			Domain: app.config.CookieDomain,
		},
		AllowedOrigin:  app.config.AllowedOrigin,
		RequestTimeout: app.config.RequestTimeout,
	})

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	gin.SetMode(gin.ReleaseMode)

	app.logger.Info(ctx, "Starting app...", "driver", app.config.DatabaseDriver, "hasher", app.config.PasswordHasher)

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
}
