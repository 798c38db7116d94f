// Package services contains server-side business logic. This file implements
// UserService, which handles signup, login and session token verification.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	UserID    string
	Email     string
}

// UserService provides authentication-related operations:
// - Signup: hash the password and create the user
// - Login: verify credentials and mint a session token
// - Authenticate: verify a presented session token
type UserService struct {
	db                    dbx.DBTX
	repomanager           repomanager.RepositoryManager
	hasher                auth.PasswordHasher
	validate              *validator.Validate
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	dummyHash             string
	now                   func() time.Time
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db dbx.DBTX, m repomanager.RepositoryManager, hasher auth.PasswordHasher, cfg *config.Config) (*UserService, error) {
	// unknown-email logins verify against this so they cost the same as a wrong password
	seed, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("dummy password: %w", err)
	}
	dummyHash, err := hasher.Hash(seed)
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}

	return &UserService{
		db:                    db,
		repomanager:           m,
		hasher:                hasher,
		validate:              validator.New(validator.WithRequiredStructEnabled()),
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		dummyHash:             dummyHash,
		now:                   time.Now,
	}, nil
}

// Signup creates a user. It fails with common.ErrValidation for malformed
// input, common.ErrDuplicateEmail when the email is taken and
// common.ErrStoreUnavailable when the store cannot be reached.
func (s *UserService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	email, err := s.checkCredentials(email, password)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password is too long", common.ErrValidation)
		}
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return u, nil
}

// Login verifies the password for email and, on success, returns a signed
// session. Both rejection reasons match common.ErrAuthFailed; the concrete
// error (common.ErrUserNotFound or common.ErrInvalidCredentials) is kept for
// logging.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	email, err := s.checkCredentials(email, password)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: sign token: %v", common.ErrorInternal, err)
	}

	return &Session{
		Token:     token,
		ExpiresAt: s.now().Add(s.tokenValidityDuration),
		UserID:    user.ID,
		Email:     user.Email,
	}, nil
}

// Authenticate verifies a session token. It never re-issues one.
func (s *UserService) Authenticate(token string) (*auth.Claims, error) {
	return auth.ParseToken(token, s.jwtSecret)
}

// TokenValidity is the lifetime of the tokens Login issues.
func (s *UserService) TokenValidity() time.Duration {
	return s.tokenValidityDuration
}

// --- helpers below ---

// checkCredentials trims the email and validates both fields. Email case is
// preserved: addresses are matched exactly.
func (s *UserService) checkCredentials(email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if err := s.validate.Var(email, "required,email,max=254"); err != nil {
		return "", fmt.Errorf("%w: a valid email is required", common.ErrValidation)
	}
	if password == "" {
		return "", fmt.Errorf("%w: password is required", common.ErrValidation)
	}
	return email, nil
}
