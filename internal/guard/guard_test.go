package guard

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack-dev/fintrack/internal/apierr"
)

func TestNewFromSessionState(t *testing.T) {
	assert.Equal(t, Guest, New(false).State())
	assert.Equal(t, Authenticated, New(true).State())
}

func TestRequireAsGuest(t *testing.T) {
	g := New(false)
	err := g.Require()

	var ae *apierr.AuthenticationError
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Detail, "fintrack login")
}

func TestRequireAuthenticated(t *testing.T) {
	require.NoError(t, New(true).Require())
}

func TestRequireGuest(t *testing.T) {
	require.NoError(t, New(false).RequireGuest())
	require.Error(t, New(true).RequireGuest())
}

func TestPromoteDemote(t *testing.T) {
	g := New(false)
	g.Promote()
	assert.Equal(t, Authenticated, g.State())
	g.Demote()
	assert.Equal(t, Guest, g.State())
}

func TestObserveDemotesOnAuthenticationError(t *testing.T) {
	g := New(true)

	demoted := g.Observe(&apierr.AuthenticationError{Status: 401, Detail: "token expired"})
	assert.True(t, demoted)
	assert.Equal(t, Guest, g.State())

	// Subsequent protected access now fails.
	require.Error(t, g.Require())
}

func TestObserveSeesWrappedErrors(t *testing.T) {
	g := New(true)
	wrapped := fmt.Errorf("listing incomes: %w", &apierr.AuthenticationError{Status: 401})
	assert.True(t, g.Observe(wrapped))
	assert.Equal(t, Guest, g.State())
}

func TestObserveIgnoresOtherErrors(t *testing.T) {
	g := New(true)

	assert.False(t, g.Observe(&apierr.NotFoundError{}))
	assert.False(t, g.Observe(apierr.NewValidation("amount", "bad")))
	assert.False(t, g.Observe(errors.New("network down")))
	assert.False(t, g.Observe(nil))
	assert.Equal(t, Authenticated, g.State())
}
