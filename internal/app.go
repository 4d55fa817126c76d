package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"hyperstat/internal/controllers"
	"hyperstat/internal/providers"
	"hyperstat/internal/structures"

	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server
}

// NewHandler assembles infrastructure endpoints and the instrumented API
// routes into one gzip-capable handler.
func NewHandler(router providers.RouterProviderInterface, healthController *controllers.HealthController, conf *structures.Config, metrics providers.MetricsProviderInterface) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", healthController.Health)
	if conf.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Group(func(api chi.Router) {
		api.Use(func(next http.Handler) http.Handler {
			return providers.MetricsMiddleware(metrics, next)
		})
		for _, route := range router.GetRoutes() {
			api.Method(route.Method, route.Url, route.Handler)
		}
	})

	return gzhttp.GzipHandler(r)
}

func NewApp(router providers.RouterProviderInterface, healthController *controllers.HealthController, conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (*App, error) {
	defer logger.Close()

	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)
	if conf.Nexon.APIKey == "" {
		logger.Warnf(providers.TypeApp, "No Nexon API key configured, upstream calls will be rejected")
	}

	app := &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      NewHandler(router, healthController, conf, metrics),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: conf.Nexon.Timeout + 5*time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		return nil, fmt.Errorf("server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.WebServer.Shutdown(ctx); err != nil {
		return nil, err
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}
