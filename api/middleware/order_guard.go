package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/ctxutil"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/response"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/access"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/errors"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/logger"
)

// OrderGuardMiddleware checks order-scoped paths after the access check and
// hands the loaded order to the controller. Other paths pass straight through.
func OrderGuardMiddleware(guard *access.OrderGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID, ok := guard.Match(c.Request.URL.Path)
		if !ok {
			c.Next()
			return
		}

		result, err := guard.Check(c.Request.Context(), ctxutil.Identity(c), c.Request.Method, rawID)
		if err != nil {
			response.HandleAppError(c, errors.Wrap(err, errors.CodeInternal, "order lookup failed"))
			c.Abort()
			return
		}
		if !result.Allowed {
			logger.Warn("Order access denied",
				zap.String("request_id", response.GetRequestID(c)),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("identity", ctxutil.Identity(c).String()),
				zap.String("reason", result.Reason),
			)
			c.Redirect(http.StatusFound, result.Location)
			c.Abort()
			return
		}

		ctxutil.SetGuardedOrder(c, result.Order)
		c.Next()
	}
}
