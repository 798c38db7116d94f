// Package common contains shared constants and sentinel errors used across
// gophauth components.
package common

import "time"

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "token"

// SessionValidityDuration is the lifetime of a session token and its cookie.
const SessionValidityDuration = time.Hour

// RequestIDHeaderName is the response header echoing the per-request id.
const RequestIDHeaderName = "X-Request-ID"
