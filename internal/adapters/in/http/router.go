// Package http exposes the delivery use cases over a REST API served by echo.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"delivery-service/internal/generated/servers"
	"delivery-service/internal/tracing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	Server   *Server
	Verifier *TokenVerifier
	Gatherer prometheus.Gatherer
	Health   HealthChecker
	Logger   *slog.Logger
}

// NewRouter builds the echo instance with every route and middleware.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}

	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(traceRequests())
	e.Use(requestLogger(cfg.Logger))
	e.Use(AuthMiddleware(cfg.Verifier, doc))
	e.Use(validator)

	e.GET("/health", healthHandler(cfg.Health))
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}
	if err = RegisterSwagger(e, doc); err != nil {
		return nil, err
	}

	servers.RegisterHandlers(e, cfg.Server)

	return e, nil
}

func healthHandler(checker HealthChecker) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if checker != nil {
			pingCtx, cancel := context.WithTimeout(ctx.Request().Context(), 2*time.Second)
			defer cancel()
			if err := checker.Ping(pingCtx); err != nil {
				return ctx.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			}
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

// traceRequests opens a server span per request and continues any incoming
// trace context.
func traceRequests() echo.MiddlewareFunc {
	return echo.WrapMiddleware(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "delivery-http")
	})
}

// requestLogger must run inside traceRequests to see the request span.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if traceID := tracing.TraceID(c.Request().Context()); traceID != "" {
				attrs = append(attrs, slog.String("trace_id", traceID))
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
