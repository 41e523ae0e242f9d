// Package server initializes and runs the addrkeeper server: it opens the
// database, applies migrations, builds the services and runs the HTTP and
// gRPC servers until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/addrkeeper/internal/logging"
	"github.com/dmitrijs2005/addrkeeper/internal/server/config"
	gs "github.com/dmitrijs2005/addrkeeper/internal/server/grpc"
	"github.com/dmitrijs2005/addrkeeper/internal/server/httpserver"
	"github.com/dmitrijs2005/addrkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/addrkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/addrkeeper/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	registry        *prometheus.Registry
	customerService *services.CustomerService
	addressService  *services.AddressService
}

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger := logging.New(os.Stdout, c.LogFormat, c.LogLevel)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	return &App{
		config:          c,
		logger:          logger,
		db:              db,
		registry:        metrics.NewRegistry(),
		customerService: services.NewCustomerService(db, rm, c, nil, logger),
		addressService:  services.NewAddressService(db, rm, nil, logger),
	}, nil
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
	h := httpserver.NewHandler(app.customerService, app.addressService, app.logger)
	router := httpserver.NewRouter(h, app.registry, app.logger)
	s := httpserver.NewHTTPServer(app.config.EndpointAddrHTTP, router, app.config.ShutdownTimeout, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.customerService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until both servers have stopped. Either server failing to
// start stops the other one.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
