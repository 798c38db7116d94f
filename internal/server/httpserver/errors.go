package httpserver

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps a service error to a status and a client-safe body.
// Store and internal failures are logged with their cause and answered with
// a generic message.
func (s *HTTPServer) writeError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	log := requestLogger(c, s.logger)

	switch {
	case errors.Is(err, common.ErrValidation):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})

	case errors.Is(err, common.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, errorResponse{Error: "email already registered"})

	case errors.Is(err, common.ErrAuthFailed):
		reason := "password_mismatch"
		if errors.Is(err, common.ErrUserNotFound) {
			reason = "user_not_found"
		}
		log.Info(ctx, "login rejected", "reason", reason)
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})

	case errors.Is(err, common.ErrTokenExpired):
		c.JSON(http.StatusForbidden, errorResponse{Error: "session expired"})

	case errors.Is(err, common.ErrInvalidToken):
		c.JSON(http.StatusForbidden, errorResponse{Error: "invalid session"})

	case errors.Is(err, common.ErrStoreUnavailable):
		log.Error(ctx, "store failure", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "service unavailable"})

	default:
		log.Error(ctx, "internal failure", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
