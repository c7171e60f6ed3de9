package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/admin"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/auth"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/health"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/middleware"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/order"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/product"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/response"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/wishlist"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/config"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/access"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/session"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/errors"
)

// Dependencies is everything the router wires into the middleware chain and routes.
type Dependencies struct {
	Sessions   *session.Manager
	Access     *access.Engine
	OrderGuard *access.OrderGuard

	Health   *health.Controller
	Auth     *auth.Controller
	Orders   *order.Controller
	Products *product.Controller
	Wishlist *wishlist.Controller
	Admin    *admin.Controller
}

// Router Route configuration
type Router struct {
	engine *gin.Engine
	config *config.Config
	deps   Dependencies
}

// NewRouter Create route configuration
func NewRouter(cfg *config.Config, deps Dependencies) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Order matters: the access check needs the session, the order guard needs the identity.
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))
	engine.Use(middleware.SessionMiddleware(deps.Sessions))
	engine.Use(middleware.AccessMiddleware(deps.Access, deps.Sessions))
	engine.Use(middleware.OrderGuardMiddleware(deps.OrderGuard))

	return &Router{
		engine: engine,
		config: cfg,
		deps:   deps,
	}
}

// SetupRoutes Set up all routes
func (r *Router) SetupRoutes() {
	r.deps.Health.RegisterRoutes(r.engine.Group("/api/v1"))
	r.deps.Auth.RegisterRoutes(r.engine)
	r.deps.Orders.RegisterRoutes(r.engine)
	r.deps.Products.RegisterRoutes(r.engine)
	r.deps.Wishlist.RegisterRoutes(r.engine)
	r.deps.Admin.RegisterRoutes(r.engine)

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})

	// Login and registration pages are rendered by the front end; these
	// endpoints tell it where to send the user afterwards.
	r.engine.GET("/login", func(c *gin.Context) {
		response.HandleSuccess(c, gin.H{"page": "login", "redirect": c.Query("redirect")}, "please log in")
	})
	r.engine.GET("/register", func(c *gin.Context) {
		response.HandleSuccess(c, gin.H{"page": "register"}, "create an account")
	})

	r.engine.NoRoute(func(c *gin.Context) {
		response.HandleAppError(c, errors.NotFound("route not found"))
	})
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
