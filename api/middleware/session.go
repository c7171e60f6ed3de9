package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/ctxutil"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/response"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/session"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/errors"
)

// SessionMiddleware loads the cookie's session into the gin context.
// A store failure aborts with 500; an unknown cookie yields an anonymous session.
func SessionMiddleware(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := sessions.Load(c.Request.Context(), c.Request)
		if err != nil {
			response.HandleAppError(c, errors.Wrap(err, errors.CodeInternal, "session store unavailable"))
			c.Abort()
			return
		}
		ctxutil.SetSession(c, s)
		c.Next()
	}
}
