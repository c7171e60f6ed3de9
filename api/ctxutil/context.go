/*
Package ctxutil moves request-scoped values between middleware and controllers.
*/
package ctxutil

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/response"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/access"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/order"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/persistence"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/session"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/errors"
)

const (
	sessionKey  = "session"
	identityKey = "identity"
	orderKey    = "guarded_order"
)

// WithRequestID returns the request context tagged with the request id for SQL logging.
func WithRequestID(ctx *gin.Context) context.Context {
	return persistence.ContextWithRequestID(ctx.Request.Context(), response.GetRequestID(ctx))
}

func SetSession(c *gin.Context, s *session.Session) {
	c.Set(sessionKey, s)
}

// Session returns the loaded session, or an empty one when none was loaded.
func Session(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*session.Session); ok && s != nil {
			return s
		}
	}
	return &session.Session{}
}

func SetIdentity(c *gin.Context, id access.Identity) {
	c.Set(identityKey, id)
}

// Identity is the principal the access check admitted, falling back to the session's.
func Identity(c *gin.Context) access.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(access.Identity); ok {
			return id
		}
	}
	return Session(c).Identity()
}

func CustomerID(c *gin.Context) (uint64, bool) {
	return Identity(c).CustomerID()
}

func EmployeeID(c *gin.Context) (uint64, bool) {
	return Identity(c).EmployeeID()
}

func SetGuardedOrder(c *gin.Context, o *order.Order) {
	c.Set(orderKey, o)
}

// GuardedOrder returns the order the order guard loaded for this request.
func GuardedOrder(c *gin.Context) (*order.Order, bool) {
	if v, ok := c.Get(orderKey); ok {
		o, ok := v.(*order.Order)
		return o, ok && o != nil
	}
	return nil, false
}

// ParamID parses a positive numeric path parameter.
func ParamID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.BadRequest("invalid " + name)
	}
	return id, nil
}
