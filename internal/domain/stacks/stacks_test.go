package stacks

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/blockhub/internal/shared/id"
)

func TestKnown(t *testing.T) {
	assert.Equal(t, []string{"default", "supabase", "postgres"}, Known())
	assert.True(t, IsKnown("supabase"))
	assert.False(t, IsKnown("mysql"))
}

func TestWaitlistSubmit(t *testing.T) {
	w := NewMemoryWaitlist(nil)
	ctx := context.Background()

	require.NoError(t, w.Submit(ctx, "Ada@Example.com"))
	assert.ErrorIs(t, w.Submit(ctx, "ada@example.com "), ErrAlreadyJoined)
	assert.Equal(t, 1, w.Count())
}

func TestWaitlistValidation(t *testing.T) {
	w := NewMemoryWaitlist(nil)

	for _, email := range []string{"", "not-an-email", "a@"} {
		err := w.Submit(context.Background(), email)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "%q", email)
		assert.Equal(t, "email", verr.Field)
	}
	assert.Equal(t, 0, w.Count())
}

func TestWaitlistConcurrentDedup(t *testing.T) {
	w := NewMemoryWaitlist(nil)
	var wg sync.WaitGroup
	var joined, dup int32
	var mu sync.Mutex

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := w.Submit(context.Background(), "same@example.com")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				joined++
			} else if errors.Is(err, ErrAlreadyJoined) {
				dup++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), joined)
	assert.Equal(t, int32(19), dup)
}

func TestDemoAuthenticator(t *testing.T) {
	auth, err := NewDemoAuthenticator()
	require.NoError(t, err)
	ctx := context.Background()

	session, err := auth.SignIn(ctx, Credentials{Email: "DEMO@example.com", Password: DemoPassword})
	require.NoError(t, err)
	assert.Equal(t, DemoEmail, session.Email)
	assert.True(t, id.IsValidPrefixed(session.ID.String(), id.SessionPrefix))
	assert.False(t, session.ExpiresAt.IsZero())
	_, err = uuid.Parse(session.Token)
	assert.NoError(t, err)

	other, err := auth.SignIn(ctx, Credentials{Email: DemoEmail, Password: DemoPassword})
	require.NoError(t, err)
	assert.NotEqual(t, session.Token, other.Token)

	_, err = auth.SignIn(ctx, Credentials{Email: DemoEmail, Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.SignIn(ctx, Credentials{Email: "nobody@example.com", Password: DemoPassword})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.SignIn(ctx, Credentials{Email: "bad", Password: "x"})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestRegisterValidatesPassword(t *testing.T) {
	auth, err := NewDemoAuthenticator()
	require.NoError(t, err)

	err = auth.Register("new@example.com", "short")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "password", verr.Field)
}
