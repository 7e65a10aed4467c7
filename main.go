package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ticketdesk/ticketdesk/backend/go-services/handlers"
	"github.com/ticketdesk/ticketdesk/backend/go-services/internal/audit"
	"github.com/ticketdesk/ticketdesk/backend/go-services/internal/config"
	"github.com/ticketdesk/ticketdesk/backend/go-services/internal/database"
	"github.com/ticketdesk/ticketdesk/backend/go-services/internal/ticket/handler"
	"github.com/ticketdesk/ticketdesk/backend/go-services/internal/ticket/service"
	"github.com/ticketdesk/ticketdesk/backend/go-services/pkg/logger"
	"github.com/ticketdesk/ticketdesk/backend/go-services/pkg/metrics"
	"github.com/ticketdesk/ticketdesk/backend/go-services/pkg/middleware"
)

var startTime = time.Now()

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	logger.SetJSON(strings.EqualFold(cfg.Log.Format, "json"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())
	logger.Infof("config loaded: env=%s mongo=%v redis=%v rate_limit=%v", cfg.Server.Environment, cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.RateLimit.Enabled)

	if strings.EqualFold(cfg.Server.Environment, "production") {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var deps []handlers.Dependency

	// Redis is only needed for the distributed rate limiter
	var redisClient *redis.Client
	if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to reach Redis (%s): %v", cfg.Redis.Addr(), err)
		} else {
			logger.Infof("connected to Redis for rate limiting: %s", cfg.Redis.Addr())
		}
		deps = append(deps, handlers.Dependency{Name: "redis", Check: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}})
	}

	// MongoDB-backed audit trail (optional)
	var recorder audit.Recorder = audit.NopRecorder{}
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, cfg.MongoDB.ConnectAttempts)
		if err != nil {
			logger.Warnf("audit trail disabled: %v", err)
		} else {
			defer disconnect(client)
			col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.AuditCollection)
			rec, err := audit.NewMongoRecorder(ctx, col)
			if err != nil {
				logger.Warnf("audit trail disabled: %v", err)
			} else {
				recorder = rec
				deps = append(deps, handlers.Dependency{Name: "audit", Check: rec.Ping})
				logger.Infof("audit trail enabled: %s.%s", cfg.MongoDB.Database, cfg.MongoDB.AuditCollection)
			}
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	svc := service.NewMemoryService(service.WithSeed(cfg.Tickets.SeedSample), service.WithRecorder(recorder))
	r := newRouter(cfg, svc, redisClient, deps...)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("starting ticket service on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Errorf("server failed: %v", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Infof("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}

// newRouter assembles middleware and routes. redisClient may be nil.
func newRouter(cfg *config.Config, svc service.Service, redisClient *redis.Client, deps ...handlers.Dependency) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS(cfg.CORS.AllowedOrigins))

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	handlers.RegisterFallbacks(r)
	handlers.RegisterHealth(r, startTime, deps...)
	handlers.RegisterDocs(r)
	handler.RegisterTicketRoutes(r, svc)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

func disconnect(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		logger.Warnf("mongo disconnect: %v", err)
	}
}
