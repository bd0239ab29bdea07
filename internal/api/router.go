package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hotelchain/booking-portal/internal/api/handler"
	"github.com/hotelchain/booking-portal/internal/api/middleware"
	"github.com/hotelchain/booking-portal/internal/core/domain"
	"github.com/hotelchain/booking-portal/internal/core/policy"
	"github.com/hotelchain/booking-portal/internal/core/ports"
	"github.com/hotelchain/booking-portal/internal/core/service"
	"github.com/hotelchain/booking-portal/internal/core/session"
	"github.com/hotelchain/booking-portal/internal/gateway"
	"github.com/hotelchain/booking-portal/pkg/logger"
)

// Dependencies carries the wired infrastructure the router needs.
type Dependencies struct {
	Gateway  *gateway.Client
	Sessions *session.Manager
	InFlight ports.InFlightGuard
	Audit    ports.AuditRecorder

	// Readiness is optional; when nil the /health/ready route is omitted.
	Readiness *handler.ReadinessHandler

	// Registry overrides the prometheus registry for the request metrics
	// and /metrics endpoint. nil means the default registry; tests pass a
	// fresh one so routers can be built repeatedly in one process.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	registerer := prometheus.Registerer(prometheus.DefaultRegisterer)
	gatherer := prometheus.Gatherer(prometheus.DefaultGatherer)
	if deps.Registry != nil {
		registerer = deps.Registry
		gatherer = deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "portal",
		Registerer: registerer,
	}))
	e.Use(middleware.Session(deps.Sessions))
	if deps.Audit != nil {
		e.Use(middleware.Audit(deps.Audit))
	}

	// --- Dependencies ---
	authClient := gateway.NewAuthClient(deps.Gateway)
	roomClient := gateway.NewRoomClient(deps.Gateway)
	bookingClient := gateway.NewBookingClient(deps.Gateway)
	reviewClient := gateway.NewReviewClient(deps.Gateway)
	userClient := gateway.NewUserClient(deps.Gateway)
	dashboardClient := gateway.NewDashboardClient(deps.Gateway)

	authService := service.NewAuthService(authClient, log)
	authHandler := handler.NewAuthHandler(authService, deps.InFlight)
	roomHandler := handler.NewRoomHandler(roomClient, reviewClient)
	bookingHandler := handler.NewBookingHandler(bookingClient)
	reviewHandler := handler.NewReviewHandler(reviewClient)
	userHandler := handler.NewUserHandler(userClient)
	dashboardHandler := handler.NewDashboardHandler(dashboardClient)

	authenticated := middleware.Guard(
		domain.RoleClient, domain.RoleEmployee, domain.RoleManager, domain.RoleAdministrator,
	)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authenticated)
	e.GET("/auth/me", authHandler.Me, authenticated)

	// --- Rooms (public browse, staff-managed writes) ---
	e.GET("/rooms", roomHandler.List)
	e.POST("/rooms/filter", roomHandler.Filter)
	e.GET("/rooms/:id", roomHandler.Get)
	e.POST("/rooms", roomHandler.Create, middleware.RequireCapability(policy.CapManageRooms))
	e.PUT("/rooms/:id", roomHandler.Update, middleware.RequireCapability(policy.CapManageRooms))
	e.DELETE("/rooms/:id", roomHandler.Delete, middleware.RequireCapability(policy.CapManageRooms))

	// --- Bookings ---
	e.GET("/bookings", bookingHandler.List, authenticated)
	e.POST("/bookings", bookingHandler.Create, authenticated)
	e.GET("/bookings/availability/:roomId", bookingHandler.Availability)
	e.PUT("/bookings/:id", bookingHandler.Update, middleware.RequireCapability(policy.CapManageBookings))
	e.POST("/bookings/:id/cancel", bookingHandler.Cancel, authenticated)
	e.POST("/bookings/:id/confirm", bookingHandler.Confirm, middleware.RequireCapability(policy.CapManageBookings))

	// --- Reviews (public reads, authenticated writes) ---
	e.GET("/reviews/room/:roomId", reviewHandler.ListByRoom)
	e.GET("/reviews/room/:roomId/average", reviewHandler.AverageRating)
	e.GET("/reviews/mine", reviewHandler.Mine, authenticated)
	e.POST("/reviews", reviewHandler.Create, authenticated)
	e.PUT("/reviews/:id", reviewHandler.Update, authenticated)
	e.DELETE("/reviews/:id", reviewHandler.Delete, authenticated)

	// --- User administration ---
	users := e.Group("/users", middleware.RequireCapability(policy.CapManageUsers))
	users.GET("", userHandler.List)
	users.GET("/type/:userType", userHandler.ListByType)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)
	users.POST("/:id/activate", userHandler.Activate)
	users.POST("/:id/deactivate", userHandler.Deactivate)

	// --- Dashboard ---
	e.GET("/dashboard", dashboardHandler.Summary, middleware.RequireCapability(policy.CapViewDashboard))
	e.GET("/statistics", dashboardHandler.Statistics, middleware.RequireCapability(policy.CapViewStatistics))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness) // liveness – is the process alive?
	if deps.Readiness != nil {
		e.GET("/health/ready", deps.Readiness.Readiness) // readiness – are dependencies up?
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))

	return e
}
