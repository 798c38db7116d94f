// Package users implements the credential store: the users table holding
// (email, password hash) pairs, unique on email.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository persists users.
//
// Create fails with common.ErrDuplicateEmail when the email is taken, and
// GetUserByEmail fails with common.ErrorNotFound when it is unknown. Any other
// error is a wrapped driver error.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
