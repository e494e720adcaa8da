package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	redisclient "github.com/renthaus/enlistd/internal/clients/redis"
	"github.com/renthaus/enlistd/internal/data/db"
	"github.com/renthaus/enlistd/internal/notify"
	"github.com/renthaus/enlistd/internal/observability"
	"github.com/renthaus/enlistd/internal/platform/logger"
)

const observabilityShutdownTimeout = 5 * time.Second

type App struct {
	Log    *logger.Logger
	DB     *gorm.DB
	Router *gin.Engine
	Cfg    Config
	Hub    *notify.Hub

	bus          redisclient.NotifyBus
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	observability.Init(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	hub := notify.NewHub(log)
	if m := observability.Current(); m != nil {
		hub.SetInstrumentation(m.IncNotifyDropped, m.SetNotifyClients)
	}

	// redis is optional: without it payment notifications stay in-process
	var bus redisclient.NotifyBus
	if cfg.RedisAddr != "" {
		bus, err = redisclient.NewNotifyBus(log)
		if err != nil {
			log.Warn("redis notify bus unavailable, using local hub only", "error", err)
			bus = nil
		}
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, hub, bus)
	handlerset := wireHandlers(log, serviceset, hub)
	middlewareset := wireMiddleware(log, serviceset)
	router := wireRouter(handlerset, middlewareset)

	return &App{
		Log:    log,
		DB:     theDB,
		Router: router,
		Cfg:    cfg,
		Hub:    hub,
		bus:    bus,
	}, nil
}

// Start launches background work: the otel provider, the metrics server,
// the runtime collector, and the redis forwarder feeding the local hub.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	a.otelShutdown = observability.InitOTel(ctx, a.Log, observability.OtelConfig{
		ServiceName: "enlistd",
		Environment: a.Cfg.Environment,
		Version:     a.Cfg.Version,
	})

	if m := observability.Current(); m != nil {
		m.StartServer(ctx, a.Log, a.Cfg.MetricsAddr)
		if a.bus != nil {
			m.StartRuntimeCollector(ctx, a.Log, a.DB, a.bus.Client())
		} else {
			m.StartRuntimeCollector(ctx, a.Log, a.DB, nil)
		}
	}

	if a.bus != nil {
		if err := a.bus.StartForwarder(ctx, a.Hub.Broadcast); err != nil {
			a.Log.Warn("redis forwarder failed to start", "error", err)
		}
	}
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.otelShutdown != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), observabilityShutdownTimeout)
		_ = a.otelShutdown(shutdownCtx)
		cancel()
	}
	if a.bus != nil {
		_ = a.bus.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
