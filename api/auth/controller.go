/*
Package auth exposes customer and employee sign-in. Login binds the principal
to a fresh server-side session; logout destroys it.
*/
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/ctxutil"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/response"
	authapp "github.com/Fubuki233/WebAppDev-Ca-sub001/application/auth"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/access"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/session"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/errors"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/logger"
)

type Controller struct {
	authService *authapp.Service
	sessions    *session.Manager
}

func NewController(authService *authapp.Service, sessions *session.Manager) *Controller {
	return &Controller{authService: authService, sessions: sessions}
}

func (c *Controller) RegisterRoutes(router gin.IRouter) {
	customer := router.Group("/api/customer")
	{
		customer.POST("/register", c.Register)
		customer.POST("/login", c.Login)
		customer.POST("/logout", c.Logout)
		customer.GET("/me", c.Me)
	}

	staff := router.Group("/api/employee")
	{
		staff.POST("/login", c.EmployeeLogin)
		staff.POST("/logout", c.Logout)
		staff.GET("/me", c.EmployeeMe)
	}
}

// Register POST /api/customer/register
func (c *Controller) Register(ctx *gin.Context) {
	var req authapp.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	customer, err := c.authService.Register(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, customer, "registration successful")
}

// Login POST /api/customer/login
func (c *Controller) Login(ctx *gin.Context) {
	var req authapp.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	customer, err := c.authService.Login(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !c.startSession(ctx, access.Customer(customer.ID)) {
		return
	}
	response.HandleSuccess(ctx, customer, "login successful")
}

// EmployeeLogin POST /api/employee/login
func (c *Controller) EmployeeLogin(ctx *gin.Context) {
	var req authapp.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	staff, err := c.authService.LoginEmployee(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !c.startSession(ctx, access.Employee(staff.ID)) {
		return
	}
	response.HandleSuccess(ctx, staff, "login successful")
}

// Logout POST /api/customer/logout and /api/employee/logout
func (c *Controller) Logout(ctx *gin.Context) {
	who := ctxutil.Identity(ctx)
	if err := c.sessions.Destroy(ctx.Request.Context(), ctx.Writer, ctxutil.Session(ctx)); err != nil {
		response.HandleAppError(ctx, errors.Wrap(err, errors.CodeInternal, "failed to destroy session"))
		return
	}

	logger.Info("Logged out", zap.String("request_id", response.GetRequestID(ctx)), zap.String("identity", who.String()))
	response.HandleSuccess(ctx, nil, "logged out")
}

// Me GET /api/customer/me
func (c *Controller) Me(ctx *gin.Context) {
	id, _ := ctxutil.CustomerID(ctx)
	customer, err := c.authService.GetCustomer(ctxutil.WithRequestID(ctx), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, customer, "customer retrieved successfully")
}

// EmployeeMe GET /api/employee/me
func (c *Controller) EmployeeMe(ctx *gin.Context) {
	id, _ := ctxutil.EmployeeID(ctx)
	staff, err := c.authService.GetEmployee(ctxutil.WithRequestID(ctx), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, staff, "employee retrieved successfully")
}

func (c *Controller) startSession(ctx *gin.Context, who access.Identity) bool {
	s, err := c.sessions.Start(ctx.Request.Context(), ctx.Writer, ctxutil.Session(ctx), who)
	if err != nil {
		response.HandleAppError(ctx, errors.Wrap(err, errors.CodeInternal, "failed to start session"))
		return false
	}
	ctxutil.SetSession(ctx, s)
	ctxutil.SetIdentity(ctx, who)

	logger.Info("Logged in", zap.String("request_id", response.GetRequestID(ctx)), zap.String("identity", who.String()))
	return true
}
