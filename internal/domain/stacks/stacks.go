// Package stacks defines the backend capabilities some blocks are wired
// against, plus in-memory demo implementations. The catalog only records
// which stacks a block supports; nothing in the core depends on this package.
package stacks

import (
	"context"
	"errors"
	"time"

	"github.com/GriffinCanCode/blockhub/internal/shared/id"
)

// Known stacks
const (
	Default  = "default"
	Supabase = "supabase"
	Postgres = "postgres"
)

// Known returns every stack a block may declare
func Known() []string {
	return []string{Default, Supabase, Postgres}
}

// IsKnown reports whether s is a known stack
func IsKnown(s string) bool {
	for _, k := range Known() {
		if k == s {
			return true
		}
	}
	return false
}

// Errors
var (
	ErrAlreadyJoined      = errors.New("already on the waitlist")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError reports input the user must fix
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Waitlist accepts launch signups
type Waitlist interface {
	Submit(ctx context.Context, email string) error
}

// Credentials are sign-in input
type Credentials struct {
	Email    string
	Password string
}

// Session is an authenticated demo session
type Session struct {
	ID        id.SessionID `json:"id"`
	Token     string       `json:"token"` // random bearer secret, never logged
	Email     string       `json:"email"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// Authenticator signs users in
type Authenticator interface {
	SignIn(ctx context.Context, creds Credentials) (Session, error)
}
