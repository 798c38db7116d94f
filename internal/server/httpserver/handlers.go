package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type profileResponse struct {
	Email string `json:"email"`
}

func (s *HTTPServer) handleRoot(c *gin.Context) {
	c.String(http.StatusOK, "Auth server is running")
}

func (s *HTTPServer) handleSignup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "email and password are required as JSON"})
		return
	}

	u, err := s.users.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	requestLogger(c, s.logger).Info(c.Request.Context(), "user created", "user_id", u.ID)
	c.JSON(http.StatusOK, messageResponse{Message: "Signup successful"})
}

func (s *HTTPServer) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "email and password are required as JSON"})
		return
	}

	sess, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	setSessionCookie(c, s.cookie, sess.Token, s.users.TokenValidity())
	c.JSON(http.StatusOK, messageResponse{Message: "Login successful"})
}

func (s *HTTPServer) handleLogout(c *gin.Context) {
	clearSessionCookie(c, s.cookie)
	c.JSON(http.StatusOK, messageResponse{Message: "Logged out"})
}

func (s *HTTPServer) handleProfile(c *gin.Context) {
	v, ok := c.Get(ginClaimsKey)
	claims, _ := v.(*auth.Claims)
	if !ok || claims == nil {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, profileResponse{Email: claims.Email})
}
