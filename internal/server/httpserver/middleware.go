package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/gin-gonic/gin"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// gin context keys
const (
	ginClaimsKey    = "auth.claims"
	ginRequestIDKey = "request.id"
)

// requestID assigns each request a random id and echoes it in the response.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := common.MakeRandHexString(8)
		if err != nil {
			id = "unknown"
		}
		c.Set(ginRequestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

// requestLogger returns l bound to the current request id.
func requestLogger(c *gin.Context, l logging.Logger) logging.Logger {
	if id := c.GetString(ginRequestIDKey); id != "" {
		return l.With("request_id", id)
	}
	return l
}

// accessLog logs one line per request after it completes.
func accessLog(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		requestLogger(c, l).Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		)
	}
}

// requestTimeout bounds the request context handed to handlers.
func requestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireSession guards a route with the session cookie: 401 without one,
// 403 when the token does not verify. On success the claims are available
// through ClaimsFromContext and the gin context.
func (s *HTTPServer) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
			return
		}

		claims, err := s.users.Authenticate(token)
		if err != nil {
			s.writeError(c, err)
			c.Abort()
			return
		}

		c.Set(ginClaimsKey, claims)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), claimsKey, claims))
		c.Next()
	}
}

// ClaimsFromContext returns the verified session claims stored by
// RequireSession.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}
