package stacks

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/GriffinCanCode/blockhub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/blockhub/internal/shared/id"
	"github.com/GriffinCanCode/blockhub/internal/shared/utils"
)

// Entry is one waitlist signup
type Entry struct {
	ID       id.EntryID
	Email    string
	JoinedAt time.Time
}

// MemoryWaitlist keeps signups in memory, deduplicated by email
type MemoryWaitlist struct {
	mu      sync.Mutex
	entries map[string]Entry
	logger  *logging.Logger
}

// NewMemoryWaitlist creates an empty waitlist
func NewMemoryWaitlist(logger *logging.Logger) *MemoryWaitlist {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &MemoryWaitlist{
		entries: make(map[string]Entry),
		logger:  logger.Named("waitlist"),
	}
}

// Submit adds an email. Invalid input is a *ValidationError.
func (w *MemoryWaitlist) Submit(ctx context.Context, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := utils.ValidateEmail(email); err != nil {
		return &ValidationError{Field: "email", Message: err.Error()}
	}

	key := strings.ToLower(strings.TrimSpace(email))

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.entries[key]; exists {
		return ErrAlreadyJoined
	}

	entry := Entry{ID: id.NewEntryID(), Email: key, JoinedAt: time.Now()}
	w.entries[key] = entry
	w.logger.Info("Waitlist signup", zap.String("entry_id", entry.ID.String()))
	return nil
}

// Count returns the number of signups
func (w *MemoryWaitlist) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

// DemoEmail and DemoPassword sign in to the demo authenticator
const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password123"
)

// SessionTTL is how long demo sessions last
const SessionTTL = 24 * time.Hour

// DemoAuthenticator checks credentials against bcrypt hashes held in memory
type DemoAuthenticator struct {
	mu     sync.RWMutex
	hashes map[string][]byte
	now    func() time.Time
}

// NewDemoAuthenticator creates an authenticator knowing the demo account
func NewDemoAuthenticator() (*DemoAuthenticator, error) {
	a := &DemoAuthenticator{
		hashes: make(map[string][]byte),
		now:    time.Now,
	}
	if err := a.Register(DemoEmail, DemoPassword); err != nil {
		return nil, err
	}
	return a, nil
}

// Register adds an account
func (a *DemoAuthenticator) Register(email, password string) error {
	if err := utils.ValidateEmail(email); err != nil {
		return &ValidationError{Field: "email", Message: err.Error()}
	}
	if err := utils.ValidatePassword(password); err != nil {
		return &ValidationError{Field: "password", Message: err.Error()}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.hashes[strings.ToLower(email)] = hash
	a.mu.Unlock()
	return nil
}

// SignIn verifies credentials and opens a session
func (a *DemoAuthenticator) SignIn(ctx context.Context, creds Credentials) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	if err := utils.ValidateEmail(creds.Email); err != nil {
		return Session{}, &ValidationError{Field: "email", Message: err.Error()}
	}
	if creds.Password == "" {
		return Session{}, &ValidationError{Field: "password", Message: "password is required"}
	}

	email := strings.ToLower(strings.TrimSpace(creds.Email))

	a.mu.RLock()
	hash, ok := a.hashes[email]
	a.mu.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(creds.Password)) != nil {
		return Session{}, ErrInvalidCredentials
	}

	return Session{
		ID:        id.NewSessionID(),
		Token:     uuid.NewString(),
		Email:     email,
		ExpiresAt: a.now().Add(SessionTTL),
	}, nil
}
