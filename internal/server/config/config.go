// Package config handles configuration for the server component,
// including defaults, .env and JSON overlays, environment variables and
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// Supported values for DatabaseDriver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Supported values for PasswordHasher.
const (
	HasherBcrypt   = "bcrypt"
	HasherArgon2id = "argon2id"
)

// DatabaseParams are the discrete connection settings used to assemble a
// PostgreSQL DSN when DatabaseDSN is not given.
type DatabaseParams struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME"`
	SSLMode  string `env:"SSLMODE"`
}

// Config holds runtime settings for the gophauth server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public HTTP API.
//   - EndpointAddrGRPC: bind address for the gRPC health service; empty disables it.
//   - DatabaseDriver / DatabaseDSN: credential store backend ("postgres" or "sqlite").
//   - Database: discrete PostgreSQL settings, used when DatabaseDSN is empty.
//   - SecretKey: HMAC secret for signing session JWTs (HS256).
//   - TokenValidityDuration: session token and cookie lifetime.
//   - CookieSecure / CookieDomain: session cookie attributes.
//   - AllowedOrigin: the single CORS origin allowed to send credentials.
//   - RequestTimeout: upper bound for store and hash work per request.
//   - PasswordHasher / BcryptCost: password hashing algorithm and cost.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP      string         `env:"HTTP_ADDRESS"`
	EndpointAddrGRPC      string         `env:"GRPC_ADDRESS"`
	DatabaseDriver        string         `env:"DATABASE_DRIVER"`
	DatabaseDSN           string         `env:"DATABASE_DSN"`
	Database              DatabaseParams `envPrefix:"DB_"`
	SecretKey             string         `env:"JWT_SECRET"`
	TokenValidityDuration time.Duration  `env:"TOKEN_TTL"`
	CookieSecure          bool           `env:"COOKIE_SECURE"`
	CookieDomain          string         `env:"COOKIE_DOMAIN"`
	AllowedOrigin         string         `env:"CORS_ALLOWED_ORIGIN"`
	RequestTimeout        time.Duration  `env:"REQUEST_TIMEOUT"`
	PasswordHasher        string         `env:"PASSWORD_HASHER"`
	BcryptCost            int            `env:"BCRYPT_COST"`
	LogLevel              string         `env:"LOG_LEVEL"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey is left empty on purpose; Validate rejects it.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDriver = DriverPostgres
	c.DatabaseDSN = ""
	c.Database = DatabaseParams{
		Host:    "localhost",
		Port:    "5432",
		User:    "postgres",
		Name:    "gophauth",
		SSLMode: "disable",
	}
	c.TokenValidityDuration = common.SessionValidityDuration
	c.CookieSecure = false
	c.AllowedOrigin = "http://localhost:3000"
	c.RequestTimeout = 5 * time.Second
	c.PasswordHasher = HasherBcrypt
	c.BcryptCost = 10
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from a .env file, an optional JSON file, the environment and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// DSN returns DatabaseDSN when set. Otherwise, for PostgreSQL, it assembles
// a URL from the discrete Database parameters.
func (c *Config) DSN() string {
	if c.DatabaseDSN != "" || c.DatabaseDriver != DriverPostgres {
		return c.DatabaseDSN
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Database.Host, c.Database.Port),
		Path:   "/" + c.Database.Name,
	}
	if c.Database.User != "" {
		if c.Database.Password != "" {
			u.User = url.UserPassword(c.Database.User, c.Database.Password)
		} else {
			u.User = url.User(c.Database.User)
		}
	}
	if c.Database.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.Database.SSLMode}}.Encode()
	}
	return u.String()
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.SecretKey == "" {
		errs = append(errs, errors.New("JWT secret is required"))
	}
	if c.TokenValidityDuration <= 0 {
		errs = append(errs, errors.New("token validity duration must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	switch c.DatabaseDriver {
	case DriverPostgres:
	case DriverSQLite:
		if c.DatabaseDSN == "" {
			errs = append(errs, errors.New("sqlite driver needs a database DSN (file path)"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.DatabaseDriver))
	}
	if c.AllowedOrigin != "" {
		if u, err := url.Parse(c.AllowedOrigin); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("allowed origin %q must be an http(s) origin", c.AllowedOrigin))
		}
	}
	switch c.PasswordHasher {
	case HasherBcrypt, HasherArgon2id:
	default:
		errs = append(errs, fmt.Errorf("unsupported password hasher %q", c.PasswordHasher))
	}

	return errors.Join(errs...)
}
