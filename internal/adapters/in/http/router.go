package http

import (
	"log/slog"
	"net/http"

	_ "shipment/internal/generated/docs" // registers the document served under /swagger
	"shipment/internal/generated/servers"
	"shipment/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig holds the optional parts of the router.
type RouterConfig struct {
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// NewRouter builds the echo instance serving the shipment API, /health,
// /metrics and the Swagger UI.
func NewRouter(server servers.ServerInterface, cfg RouterConfig) (*echo.Echo, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

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
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogRequestID: true,
		LogLatency:   true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.InfoContext(c.Request().Context(), "Request",
				"method", v.Method, "uri", v.URI, "status", v.Status,
				"latency", v.Latency.String(), "request_id", v.RequestID)
			return nil
		},
	}))
	if cfg.Metrics != nil {
		e.Use(cfg.Metrics.Middleware("/metrics", "/health"))
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("", validator)
	servers.RegisterHandlers(api, server)

	return e, nil
}
