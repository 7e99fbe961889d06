// Package server boots the vanij process: configuration, stores, background
// machinery and the HTTP listener, with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/vanij/app/controllers"
	"github.com/shashiranjanraj/vanij/app/jobs"
	"github.com/shashiranjanraj/vanij/app/repositories"
	"github.com/shashiranjanraj/vanij/app/routes"
	"github.com/shashiranjanraj/vanij/app/services"
	"github.com/shashiranjanraj/vanij/config"
	"github.com/shashiranjanraj/vanij/pkg/cache"
	"github.com/shashiranjanraj/vanij/pkg/database"
	"github.com/shashiranjanraj/vanij/pkg/logger"
	"github.com/shashiranjanraj/vanij/pkg/metrics"
	"github.com/shashiranjanraj/vanij/pkg/middleware"
	"github.com/shashiranjanraj/vanij/pkg/queue"
	"github.com/shashiranjanraj/vanij/pkg/reqid"
	"github.com/shashiranjanraj/vanij/pkg/router"
	"github.com/shashiranjanraj/vanij/pkg/schedule"
	"github.com/shashiranjanraj/vanij/pkg/workerpool"
	"github.com/shashiranjanraj/vanij/pkg/ws"
)

const (
	queueWorkers     = 4
	alertPoolSize    = 8
	rateLimitPerMin  = 200
	sweepEveryMins   = 5
	shutdownDeadline = 10 * time.Second
)

// Run boots everything and serves until ctx is cancelled.
func Run(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}

	client, err := database.Connect(ctx)
	if err != nil {
		return err
	}
	defer database.Disconnect(client) //nolint:errcheck

	db := client.Database(config.MongoDB())

	// Optional async Mongo log sink, fanned out next to the console handler.
	if colName := config.MongoLogCollection(); colName != "" {
		mh := logger.NewMongoHandler(db.Collection(colName))
		defer mh.Close()
		logger.SetHandler(logger.NewMultiHandler(logger.Handler(), mh))
	}

	if err := cache.Connect(); err != nil {
		// Analytics caching and the Redis queue degrade without it.
		logger.Warn("cache unavailable", "error", err)
	}
	defer cache.Close() //nolint:errcheck

	if err := repositories.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	inventory := repositories.NewInventoryRepository(db)
	orders := repositories.NewOrderRepository(db)

	fulfillment := services.NewFulfillmentService(inventory, orders)
	catalog := services.NewProductService(inventory)
	lowStock := services.NewLowStockService(inventory)
	analytics := services.NewAnalyticsService(orders)

	hub := ws.NewHub()
	go hub.Run()

	jobs.RegisterLowStockAlertJob(hub)

	pool := workerpool.New(alertPoolSize)
	defer pool.Shutdown()
	jobs.WireAlerts(inventory, pool)

	if config.QueueDriver() == "redis" && cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB, ""))
		logger.Info("queue: using redis driver")
	}
	queue.StartWorkers(ctx, queueWorkers)

	schedule.Every(sweepEveryMins).Minutes().Run(func() {
		lowStock.Sweep(context.Background())
	})
	scheduleDone := make(chan struct{})
	defer close(scheduleDone)
	go schedule.Start(scheduleDone)

	r := newRouter()
	routes.Register(r,
		controllers.NewProductController(catalog, lowStock),
		controllers.NewOrderController(fulfillment),
		controllers.NewAnalyticsController(analytics),
		hub,
	)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownDeadline)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func newRouter() *router.Router {
	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(rateLimitPerMin, time.Minute),
	)
	return r
}

// RouterForListing builds the full route table without touching any store.
// Handlers are wired but never invoked; used by the route:list command.
func RouterForListing() *router.Router {
	r := router.New()
	routes.Register(r,
		controllers.NewProductController(services.NewProductService(nil), services.NewLowStockService(nil)),
		controllers.NewOrderController(services.NewFulfillmentService(nil, nil)),
		controllers.NewAnalyticsController(services.NewAnalyticsService(nil)),
		ws.NewHub(),
	)
	return r
}
