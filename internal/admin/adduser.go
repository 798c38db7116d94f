// Package admin implements operator commands that act on the credential
// store directly, bypassing the HTTP API. Users created here go through the
// same validation and hashing as a signup.
package admin

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// Signupper creates users.
type Signupper interface {
	Signup(ctx context.Context, email, password string) (*models.User, error)
}

// Terminal is the operator's console: line input, a password fd and output.
type Terminal struct {
	In  *bufio.Reader
	Fd  int
	Out io.Writer
}

// AddUser creates a user with email, prompting for it when empty. The
// password is read twice without echo and wiped after use.
func AddUser(ctx context.Context, s Signupper, email string, t Terminal) (*models.User, error) {
	if email == "" {
		var err error
		email, err = GetSimpleText(t.In, "Email:", t.Out)
		if err != nil {
			return nil, fmt.Errorf("read email: %w", err)
		}
	}

	pw, err := GetPassword(t.Fd, "Password: ", t.Out)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	defer common.WipeByteArray(pw)

	confirm, err := GetPassword(t.Fd, "Repeat password: ", t.Out)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(pw, confirm) {
		return nil, ErrPasswordMismatch
	}

	u, err := s.Signup(ctx, email, string(pw))
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(t.Out, "created user %s (%s)\n", u.Email, u.ID)
	return u, nil
}
