package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/config"
	"github.com/oksasatya/go-task-tracker/internal/container"
	esinfra "github.com/oksasatya/go-task-tracker/internal/infrastructure/elasticsearch"
	"github.com/oksasatya/go-task-tracker/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-task-tracker/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-task-tracker/internal/interface/http"
	"github.com/oksasatya/go-task-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-task-tracker/internal/router"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
	"github.com/oksasatya/go-task-tracker/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	c := &container.Container{
		Config: cfg,
		Logger: logger,
		Hasher: helpers.NewPasswordHasher(cfg.BcryptCost),
		JWT:    helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
	}
	if cfg.JWTSecret == "devsecret" && cfg.Env != "development" {
		logger.Warn("JWT_SECRET is the development default")
	}

	// Stores: Postgres must be reachable before anything is served
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		store := memory.NewStore()
		c.Users, c.Tasks = store.Users(), store.Tasks()
		logger.Warn("using in-memory store; data is lost on restart")
	case config.StoreDriverPostgres:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			logger.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			logger.Fatalf("migration failed: %v", err)
		}
		c.Users = pginfra.NewUserRepository(pool, cfg.DBQueryTimeout)
		c.Tasks = pginfra.NewTaskRepository(pool, cfg.DBQueryTimeout)
	default:
		logger.Fatalf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	// Redis backs rate limiting only; without it limits are off
	if rdb := connectRedis(ctx, cfg, logger); rdb != nil {
		defer func() { _ = rdb.Close() }()
		c.Redis = rdb
	}

	// RabbitMQ publisher for welcome emails
	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			helpers.LogWarn(logger, "rabbitmq unavailable; welcome emails disabled", err, nil)
		} else {
			defer pub.Close()
			c.Jobs = pub
		}
	}

	// Elasticsearch task search
	if cfg.ElasticsearchEnabled {
		if idx := connectES(ctx, cfg, logger); idx != nil {
			c.TaskIndex = idx
		}
	}

	if err := c.Validate(); err != nil {
		logger.Fatal(err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP(cfg.TrustProxyHeaders))
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderToken, handlers.HeaderResourceID, middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(middleware.AccessLog(logger))
	}
	r.GET("/healthz", func(ctx *gin.Context) { ctx.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	reg := router.NewRegistry(r)
	router.InitModules(reg, c)
	reg.RegisterAll()
	logger.WithField("modules", reg.Names()).Info("routes registered")

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
		return
	}
	logger.Info("server exited properly")
}

func connectRedis(ctx context.Context, cfg *config.Config, logger *logrus.Logger) *redis.Client {
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := helpers.PingRedis(ctx, rdb); err != nil {
		helpers.LogWarn(logger, "redis unavailable; rate limiting disabled", err, logrus.Fields{"addr": cfg.RedisAddr})
		_ = rdb.Close()
		return nil
	}
	return rdb
}

func connectES(ctx context.Context, cfg *config.Config, logger *logrus.Logger) *esinfra.TaskIndex {
	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		helpers.LogWarn(logger, "elasticsearch client init failed; search disabled", err, nil)
		return nil
	}
	if err := helpers.PingES(ctx, es); err != nil {
		helpers.LogWarn(logger, "elasticsearch unreachable; search disabled", err, logrus.Fields{"addrs": cfg.ESAddrs()})
		return nil
	}
	idx := esinfra.NewTaskIndex(es, cfg.ESTasksIndex)
	if err := idx.EnsureIndex(ctx); err != nil {
		helpers.LogWarn(logger, "elasticsearch unavailable; search disabled", err, nil)
		return nil
	}
	return idx
}
