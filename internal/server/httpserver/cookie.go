package httpserver

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/gin-gonic/gin"
)

// CookieOptions are the deployment-dependent session cookie attributes.
type CookieOptions struct {
	Secure bool
	Domain string
}

// setSessionCookie stores token in the session cookie for ttl.
func setSessionCookie(c *gin.Context, opts CookieOptions, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.SessionCookieName, token, int(ttl.Seconds()), "/", opts.Domain, opts.Secure, true)
}

// clearSessionCookie expires the session cookie in the browser. The token
// itself stays valid until exp.
func clearSessionCookie(c *gin.Context, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.SessionCookieName, "", -1, "/", opts.Domain, opts.Secure, true)
}

// sessionToken returns the cookie value, or "" when there is none.
func sessionToken(c *gin.Context) string {
	token, err := c.Cookie(common.SessionCookieName)
	if err != nil {
		return ""
	}
	return token
}
