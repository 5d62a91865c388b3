package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/swiftex/tracking-service/internal/api/handler"
	"github.com/swiftex/tracking-service/internal/api/middleware"
	"github.com/swiftex/tracking-service/internal/core/ports"
)

const (
	serviceName    = "tracking-service"
	serviceVersion = "1.0"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Shipments ports.ShipmentService
	Auth      ports.AuthService
	Invoices  ports.InvoiceService
	Feed      ports.ChangeFeed

	// Probed by /health/ready.
	DB    *mongo.Database
	Redis *redis.Client

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddleware("tracking"))

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health checks (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Public tracking ---
	trackingHandler := handler.NewTrackingHandler(deps.Shipments, deps.Feed, deps.Logger)
	v1 := e.Group("/v1")
	v1.GET("/tracking", trackingHandler.Track)
	v1.GET("/tracking/:code/stream", trackingHandler.Stream)

	// --- Auth ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	requireAuth := middleware.Auth(deps.Auth)

	authGroup := e.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/sign-in", authHandler.SignIn)
	authGroup.POST("/password-reset", authHandler.RequestPasswordReset)
	authGroup.POST("/password-reset/confirm", authHandler.ConfirmPasswordReset)
	authGroup.POST("/sign-out", authHandler.SignOut, requireAuth)
	authGroup.GET("/session", authHandler.Session, requireAuth)

	// --- Administration ---
	shipmentHandler := handler.NewShipmentHandler(deps.Shipments)
	invoiceHandler := handler.NewInvoiceHandler(deps.Invoices)
	currencyHandler := handler.NewCurrencyHandler()

	admin := v1.Group("/admin", requireAuth, middleware.RequireAdmin())
	admin.GET("/shipments", shipmentHandler.List)
	admin.POST("/shipments", shipmentHandler.Create)
	admin.GET("/shipments/:id", shipmentHandler.Get)
	admin.PATCH("/shipments/:id", shipmentHandler.Update)
	admin.DELETE("/shipments/:id", shipmentHandler.Delete)
	admin.GET("/shipments/:id/timeline", shipmentHandler.Timeline)
	admin.POST("/shipments/:id/timeline", shipmentHandler.AppendTimeline)
	admin.POST("/invoices/preview", invoiceHandler.Preview)
	admin.POST("/invoices/pdf", invoiceHandler.PDF)
	admin.GET("/currencies", currencyHandler.List)

	homeHandler := handler.NewHomeHandler(serviceName, serviceVersion, e.Routes)
	e.GET("/", homeHandler.Index)

	return e
}

// requestLogger writes one access log line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
