// Package id generates the identifiers blockhub hands out.
//
// Every ID is a ULID behind a short kind prefix, e.g. chan_01J9Z3...,
// so IDs sort by creation time and their kind is obvious in logs.
package id

import (
	"crypto/rand"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// RequestID identifies an HTTP request
type RequestID string

// ChannelID identifies a preview sync channel between a host page and its previews
type ChannelID string

// SessionID identifies a demo sign-in session
type SessionID string

// EntryID identifies a waitlist entry
type EntryID string

// Kind prefixes
const (
	RequestPrefix = "req"
	ChannelPrefix = "chan"
	SessionPrefix = "sess"
	EntryPrefix   = "wl"
)

const separator = "_"

// Generator produces ULIDs that increase strictly, even within one
// millisecond. It is safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

var defaultGenerator = NewGenerator()

// Default returns the process-wide generator
func Default() *Generator {
	return defaultGenerator
}

// NewGenerator creates a generator seeded from crypto/rand
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(rand.Reader)
}

// NewGeneratorWithEntropy creates a generator over a custom entropy
// source, for deterministic tests
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{
		entropy: ulid.Monotonic(entropy, 0),
		now:     time.Now,
	}
}

// Generate returns the next ULID
func (g *Generator) Generate() ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
}

// GenerateString returns the next ULID in its canonical form
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix returns prefix_ULID
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return prefix + separator + g.GenerateString()
}

func NewRequestID() RequestID { return RequestID(Default().GenerateWithPrefix(RequestPrefix)) }
func NewChannelID() ChannelID { return ChannelID(Default().GenerateWithPrefix(ChannelPrefix)) }
func NewSessionID() SessionID { return SessionID(Default().GenerateWithPrefix(SessionPrefix)) }
func NewEntryID() EntryID     { return EntryID(Default().GenerateWithPrefix(EntryPrefix)) }

func (id RequestID) String() string { return string(id) }
func (id ChannelID) String() string { return string(id) }
func (id SessionID) String() string { return string(id) }
func (id EntryID) String() string   { return string(id) }

// IsValid reports whether s is a bare ULID
func IsValid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}

// IsValidPrefixed reports whether s is prefix_ULID
func IsValidPrefixed(s, prefix string) bool {
	rest, ok := strings.CutPrefix(s, prefix+separator)
	return ok && IsValid(rest)
}

// Timestamp returns the creation time of a bare or prefixed ID
func Timestamp(s string) (time.Time, error) {
	if i := strings.LastIndex(s, separator); i >= 0 {
		s = s[i+1:]
	}
	parsed, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
