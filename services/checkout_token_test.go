package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/football-clinic/models"
)

func TestCheckoutTokens_RoundTrip(t *testing.T) {
	tokens := NewCheckoutTokens("secret", 0)
	reg := testRegistration()

	signed, err := tokens.Issue(&reg, 250)
	require.NoError(t, err)

	claims, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "reg-42", claims.RegistrationID)
	assert.Equal(t, int64(250), claims.Amount)
	assert.WithinDuration(t, time.Now().Add(CheckoutTokenTTL), claims.ExpiresAt.Time, time.Minute)

	back := claims.Registration()
	assert.Equal(t, "Omar Haddad", back.PlayerName())
	assert.Equal(t, "omar@example.com", back.Email)
}

func TestCheckoutTokens_Rejects(t *testing.T) {
	reg := testRegistration()

	t.Run("expired", func(t *testing.T) {
		tokens := NewCheckoutTokens("secret", time.Hour)
		tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		signed, err := tokens.Issue(&reg, 250)
		require.NoError(t, err)

		_, err = tokens.Parse(signed)
		assert.True(t, errors.Is(err, ErrCheckoutTokenExpired))
	})

	t.Run("wrong secret", func(t *testing.T) {
		signed, err := NewCheckoutTokens("secret", 0).Issue(&reg, 250)
		require.NoError(t, err)

		_, err = NewCheckoutTokens("other", 0).Parse(signed)
		assert.True(t, errors.Is(err, ErrCheckoutTokenInvalid))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := NewCheckoutTokens("secret", 0).Parse("not-a-token")
		assert.True(t, errors.Is(err, ErrCheckoutTokenInvalid))
	})

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := NewCheckoutTokens("secret", 0).Issue(&models.Registration{}, 0)
		assert.True(t, errors.Is(err, ErrInvalidAmount))
	})
}
