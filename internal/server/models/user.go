// Package models holds the persistent records shared by repositories and
// services.
package models

import "time"

// User is a registered identity. Email is matched exactly (case-sensitive)
// and PasswordHash is an encoded one-way hash, never the plaintext.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
