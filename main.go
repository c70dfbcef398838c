package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/princinho/marketplace/config"
	"github.com/princinho/marketplace/controllers"
	"github.com/princinho/marketplace/database"
	"github.com/princinho/marketplace/middleware"
	"github.com/princinho/marketplace/routes"
	"github.com/princinho/marketplace/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const serviceName = "marketplace-api"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := utils.NewLogger(serviceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)
	store := database.Instrument(openStore(context.Background(), cfg, logger), metrics.StoreOperations)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(metrics.Handler())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.Origins))
	logger.Info("cors_configured", zap.Strings("origins", cfg.Origins))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	routes.RegisterRoutes(r, controllers.New(store, logger, cfg.URISet()))

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http_server_start", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error", zap.Error(err))
	} else {
		logger.Info("http_server_stopped")
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Error("store_close_error", zap.Error(err))
	}
}

// openStore never fails: when MongoDB cannot be reached the process keeps
// serving with a store that reports itself unavailable.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) database.Store {
	if cfg.Store.Driver == config.DriverMemory {
		logger.Info("store_ready", zap.String("driver", config.DriverMemory))
		return database.NewMemoryStore(cfg.Store.DatabaseName)
	}

	store, err := database.Connect(ctx, cfg.Store.URI, cfg.Store.DatabaseName, cfg.Store.Timeout)
	if err != nil {
		logger.Error("store_connect_failed", zap.Error(err))
		return database.Unavailable(cfg.Store.DatabaseName)
	}
	logger.Info("store_ready",
		zap.String("driver", config.DriverMongo),
		zap.String("database", store.Name()),
	)
	return store
}
