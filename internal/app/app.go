package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/eduadmin/internal/config"
	"github.com/yungbote/eduadmin/internal/data/db"
	httpserver "github.com/yungbote/eduadmin/internal/http"
	"github.com/yungbote/eduadmin/internal/observability"
	"github.com/yungbote/eduadmin/internal/platform/logger"
)

// App is the development API: storage, services and the gin engine.
type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      *config.Config
	Metrics  *observability.Metrics
	Repos    Repos
	Services Services

	dbService *db.Service
	server    *httpserver.Server
	otelStop  func(context.Context) error
}

func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	otelStop := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.OTel.ServiceName + "-devapi",
		Environment: cfg.Env,
		Version:     cfg.OTel.Version,
	})

	dbs, err := db.Open(cfg.DevAPI.DB, log)
	if err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}
	if err := db.AutoMigrateAll(dbs.DB()); err != nil {
		_ = dbs.Close()
		return nil, fmt.Errorf("db automigrate: %w", err)
	}

	metrics := observability.NewMetrics()
	clients, err := wireClients(log, cfg)
	if err != nil {
		_ = dbs.Close()
		return nil, err
	}

	a, err := assemble(cfg, log, dbs.DB(), metrics, clients)
	if err != nil {
		_ = dbs.Close()
		return nil, err
	}
	a.dbService = dbs
	a.otelStop = otelStop
	return a, nil
}

// assemble wires everything above the database. Tests call it with their
// own *gorm.DB.
func assemble(cfg *config.Config, log *logger.Logger, theDB *gorm.DB, metrics *observability.Metrics, clients Clients) (*App, error) {
	reposet := wireRepos(theDB, log)

	serviceset, err := wireServices(log, cfg, reposet, clients, metrics)
	if err != nil {
		return nil, err
	}

	handlerset := wireHandlers(log, theDB, serviceset)
	middleware := wireMiddleware(log, serviceset)
	server := wireServer(log, cfg, metrics, handlerset, middleware)

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   server.Engine,
		Cfg:      cfg,
		Metrics:  metrics,
		Repos:    reposet,
		Services: serviceset,
		server:   server,
	}, nil
}

// NewWithDB builds an App over an already migrated database with no
// external clients. The OTP sender falls back to logging.
func NewWithDB(cfg *config.Config, log *logger.Logger, theDB *gorm.DB) (*App, error) {
	return assemble(cfg, log, theDB, observability.NewMetrics(), Clients{})
}

// Run serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.server.Run(ctx, a.Cfg.DevAPI.Addr, a.Cfg.DevAPI.ShutdownTimeout.Duration)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelStop != nil {
		if err := a.otelStop(context.Background()); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		a.otelStop = nil
	}
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil && a.Log != nil {
			a.Log.Warn("db close failed", "error", err)
		}
		a.dbService = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
