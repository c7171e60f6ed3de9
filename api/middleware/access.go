package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/ctxutil"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/response"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/access"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/session"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/errors"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/logger"
)

// AccessMiddleware runs the access decision and applies it to the response.
// It must run after SessionMiddleware.
func AccessMiddleware(engine *access.Engine, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		s := ctxutil.Session(c)
		who := s.Identity()

		d, err := engine.Decide(ctx, access.Request{
			Method:   c.Request.Method,
			Path:     c.Request.URL.Path,
			RawQuery: c.Request.URL.RawQuery,
			Identity: who,
		})
		if err != nil {
			response.HandleAppError(c, errors.Wrap(err, errors.CodeInternal, "access check failed"))
			c.Abort()
			return
		}

		if d.InvalidateSession {
			if err := sessions.Destroy(ctx, c.Writer, s); err != nil {
				logger.Warn("Failed to destroy session",
					zap.String("request_id", response.GetRequestID(c)),
					zap.Error(err))
			}
		}

		if d.Allowed() {
			ctxutil.SetIdentity(c, d.Identity)
			c.Next()
			return
		}

		logger.Warn("Access denied",
			zap.String("request_id", response.GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("identity", who.String()),
			zap.String("outcome", d.Outcome.String()),
			zap.String("permission", string(d.Permission)),
			zap.String("reason", d.Reason),
		)

		switch d.Outcome {
		case access.OutcomeRedirect:
			c.Redirect(http.StatusFound, d.Location)
			c.Abort()
		case access.OutcomeUnauthorized:
			c.AbortWithStatusJSON(http.StatusUnauthorized, d.Body)
		case access.OutcomeForbidden:
			c.AbortWithStatusJSON(http.StatusForbidden, d.Body)
		default:
			c.AbortWithStatusJSON(http.StatusOK, d.Body)
		}
	}
}
