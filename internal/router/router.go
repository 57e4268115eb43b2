package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/Godsaptarshifrtw/subscription-device-api/internal/handler"    // import the handlers that implement business logic
	"github.com/Godsaptarshifrtw/subscription-device-api/internal/middleware" // import middleware for authentication
	"github.com/Godsaptarshifrtw/subscription-device-api/internal/repository" // repositories wired into the authentication middleware
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// This endpoint can be used by load balancers or monitoring systems to
	// verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterUsers registers the user endpoints.  Login and registration are
// open; /users/me requires a valid identity proof — either a bearer token
// or an opaque session token — and the remaining CRUD routes are left open
// like the rest of the peripheral surface.
func RegisterUsers(e *echo.Echo, a *handler.AuthHandler, u *handler.UserHandler, jwtSecret string, users *repository.UserRepo, sessions *repository.SessionRepo) {
	g := e.Group("/users")
	// Credential exchange: email/password in, bearer token out.
	g.POST("/login", a.Login)
	// The identity endpoint accepts both proof mechanisms through one
	// middleware; the handler only ever sees the Identity interface.
	g.GET("/me", a.Me, middleware.Authenticate(jwtSecret, users, sessions))

	g.POST("", u.Create)
	g.GET("", u.List)
	g.GET("/:id", u.Get)
	g.PUT("/:id", u.Update)
	g.DELETE("/:id", u.Delete)
}

// RegisterSessions registers the store-backed session mechanism.  The
// session token travels in the path for the read/delete operations, so no
// middleware is involved; handlers consult the session store directly.
func RegisterSessions(e *echo.Echo, s *handler.SessionHandler) {
	g := e.Group("/sessions")
	g.POST("/login", s.Login)
	g.GET("/me/:token", s.Me)
	g.DELETE("/logout/:token", s.Logout)
	g.GET("/user/:user_id", s.ListForUser)
}

// RegisterEntities registers the peripheral CRUD surface for plans,
// devices, subscriptions and payments.
func RegisterEntities(e *echo.Echo, p *handler.PlanHandler, d *handler.DeviceHandler, sub *handler.SubscriptionHandler, pay *handler.PaymentHandler) {
	plans := e.Group("/plans")
	plans.POST("", p.Create)
	plans.GET("/:id", p.Get)

	devices := e.Group("/devices")
	devices.POST("", d.Create)
	devices.GET("/:id", d.Get)
	devices.GET("/user/:user_id", d.ListByUser)

	subs := e.Group("/subscriptions")
	subs.POST("", sub.Create)
	subs.GET("/:id", sub.Get)

	payments := e.Group("/payments")
	payments.POST("", pay.Create)
	payments.GET("/:id", pay.Get)
}
