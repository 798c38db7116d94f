package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken("user-123", "a@x.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.UserID != "user-123" || claims.Email != "a@x.com" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.Subject != "user-123" {
		t.Fatalf("subject mismatch: %q", claims.Subject)
	}
	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != time.Hour {
		t.Fatalf("expected 1h validity window, got %v", ttl)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("u1", "a@x.com", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken(tok, secret)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
	if claims != nil {
		t.Fatalf("expired token must not yield claims, got %+v", claims)
	}
}

func TestParseToken_ExpiredWithWrongSecretIsInvalid(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u1", "a@x.com", []byte("right"), -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := ParseToken(tok, []byte("wrong")); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", "a@x.com", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := ParseToken(tok, []byte("wrong-secret")); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_Tampered(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := GenerateToken("u3", "a@x.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	forged, err := GenerateToken("u3", "admin@x.com", []byte("attacker"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	parts := strings.Split(tok, ".")
	forgedParts := strings.Split(forged, ".")
	spliced := parts[0] + "." + forgedParts[1] + "." + parts[2]

	if _, err := ParseToken(spliced, secret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_MalformedString(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "not.a.jwt", "garbage"} {
		if _, err := ParseToken(in, []byte("k")); !errors.Is(err, common.ErrInvalidToken) {
			t.Fatalf("ParseToken(%q): expected common.ErrInvalidToken, got %v", in, err)
		}
	}
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "u4",
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := ParseToken(hs512, secret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("HS512: expected common.ErrInvalidToken, got %v", err)
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := ParseToken(none, secret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("none: expected common.ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_RequiresExpiry(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "u5"}).SignedString(secret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := ParseToken(tok, secret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}
