package app

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/connector/internal/catalog"
	"github.com/MrSnakeDoc/connector/internal/config"
	"github.com/MrSnakeDoc/connector/internal/httpserver"
	"github.com/MrSnakeDoc/connector/internal/httpserver/deps"
	"github.com/MrSnakeDoc/connector/internal/httpserver/mw"
	"github.com/MrSnakeDoc/connector/internal/index"
	"github.com/MrSnakeDoc/connector/internal/logger"
	"github.com/MrSnakeDoc/connector/internal/notify"
	"github.com/MrSnakeDoc/connector/internal/policy"
	"github.com/MrSnakeDoc/connector/internal/redis"
	"github.com/MrSnakeDoc/connector/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/connector/internal/store/redis"
	"github.com/MrSnakeDoc/connector/internal/utils"
	"github.com/MrSnakeDoc/connector/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	reloader    *scheduler.BootstrapReloader
}

// New wires every component. Redis is optional; when configured it must be
// reachable, otherwise New fails.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	permissions, err := policy.NewBuilder(cfg.PermissionBaseURI)
	if err != nil {
		return nil, fmt.Errorf("failed to create permission builder: %w", err)
	}

	memIndex := index.NewMemoryIndex()

	var (
		redisClient *goredis.Client
		store       catalog.Store
		deliveries  deps.DeliveryLog
		persistence deps.Persistence
	)
	if cfg.RedisAddr != "" {
		redisClient, err = redis.Connect(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		rs := redisstore.NewStore(redisClient)
		store, deliveries, persistence = rs, rs, rs

		// Entities persisted by a previous run come back before the bootstrap file is applied
		if err := scheduler.NewRedisSyncer(rs, memIndex, loggerClient).Sync(ctx); err != nil {
			loggerClient.Warn("failed to sync from redis on startup, starting empty",
				logger.Error(err))
		}
	} else {
		loggerClient.Info("redis not configured, catalog is kept in memory only")
	}

	cat := catalog.New(memIndex, store, permissions, loggerClient)

	notifier := notify.NewPseudoPush(notify.Options{
		URL:     cfg.PseudoPushURL,
		APIKey:  cfg.PseudoPushAPIKey,
		Timeout: cfg.PseudoPushTimeout,
	}, loggerClient.Named("pseudopush"))
	if !notifier.Configured() {
		loggerClient.Warn("pseudopush url not configured, notifications will be rejected")
	}

	var (
		reloader      *scheduler.BootstrapReloader
		reloadTrigger chan struct{}
	)
	if cfg.BootstrapFile != "" {
		reloadTrigger = make(chan struct{}, 1)
		reloader = scheduler.NewBootstrapReloader(
			cfg.BootstrapFile,
			cat,
			memIndex,
			loggerClient,
			cfg.ReloadInterval,
			reloadTrigger,
		)
	}

	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		TimeNow:      time.Now,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		CORSOrigins:  cfg.CORSOrigins,
		Catalog:      cat,
		MemoryIndex:  memIndex,
		Persistence:  persistence,
		Notifier:     notifier,
		Deliveries:   deliveries,
		DeliveryTTL:  cfg.DeliveryTTL,
		NotifyRateLimit: mw.RateLimitConfig{
			Burst:             cfg.NotifyBurst,
			RefillPerIPPerMin: cfg.NotifyRefillPerMin,
			MaxEntries:        10_000,
			TrustProxy:        cfg.TrustProxy,
		},
		BootstrapFile: cfg.BootstrapFile,
		ReloadTrigger: reloadTrigger,
	}

	loggerClient.Info("http access controls",
		logger.Strings("allowed_hosts", cfg.AllowedHosts),
		logger.Strings("allowed_cidrs", cfg.AllowedCIDRS),
		logger.Strings("cors_origins", cfg.CORSOrigins),
		logger.Bool("trust_proxy", cfg.TrustProxy))

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
		memIndex:    memIndex,
		reloader:    reloader,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("starting connector",
		logger.String("version", version.String()),
		logger.String("addr", a.cfg.ListenPort))

	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start bootstrap reloader: %w", err)
		}
		a.logger.Info("bootstrap reloader started",
			logger.String("file", a.cfg.BootstrapFile),
			logger.Duration("interval", a.cfg.ReloadInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down gracefully")
	case err := <-errCh:
		return err
	}

	if a.reloader != nil {
		a.reloader.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		utils.MustClose(a.redisClient, "redis", a.logger)
	}

	a.logger.Info("connector stopped cleanly",
		logger.Int("entities", a.memIndex.Count()))
	return nil
}
