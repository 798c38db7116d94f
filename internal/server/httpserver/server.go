// Package httpserver exposes the authentication flows over HTTP: signup,
// login and logout, and a session-guarded profile read. Sessions travel in
// an HttpOnly cookie holding a signed token.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// UserService is the part of services.UserService the handlers use.
type UserService interface {
	Signup(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Authenticate(token string) (*auth.Claims, error)
	TokenValidity() time.Duration
}

// Options configure the HTTP surface.
type Options struct {
	Cookie         CookieOptions
	AllowedOrigin  string
	RequestTimeout time.Duration
}

type HTTPServer struct {
	address string
	logger  logging.Logger
	users   UserService
	cookie  CookieOptions
	router  *gin.Engine
}

func NewHTTPServer(a string, l logging.Logger, us UserService, opts Options) *HTTPServer {
	s := &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		cookie:  opts.Cookie,
	}
	s.router = s.newRouter(opts)
	return s
}

func (s *HTTPServer) newRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(requestID(), accessLog(s.logger), gin.Recovery())

	// no origin: same-origin clients only
	if opts.AllowedOrigin != "" {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = []string{opts.AllowedOrigin}
		corsConfig.AllowCredentials = true
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
		corsConfig.ExposeHeaders = []string{common.RequestIDHeaderName}
		r.Use(cors.New(corsConfig))
	}

	if opts.RequestTimeout > 0 {
		r.Use(requestTimeout(opts.RequestTimeout))
	}

	r.GET("/", s.handleRoot)
	r.POST("/signup", s.handleSignup)
	r.POST("/login", s.handleLogin)
	r.POST("/logout", s.handleLogout)

	protected := r.Group("")
	protected.Use(s.RequireSession())
	{
		protected.GET("/profile", s.handleProfile)
	}

	return r
}

// Handler returns the routed handler, for tests and embedding.
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
