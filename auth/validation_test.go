package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/finwallet/wallet-bff/auth"
)

func TestValidateEmail(t *testing.T) {
	v := auth.NewValidator()

	t.Run("valid addresses accepted", func(t *testing.T) {
		for _, email := range []string{
			"smith@example.com",
			"first.last@sub.example.co.uk",
			"  padded@example.com  ",
		} {
			require.NoError(t, v.ValidateEmail(email), email)
		}
	})

	t.Run("empty email", func(t *testing.T) {
		err := v.ValidateEmail("")
		require.EqualError(t, err, "email is required")

		err = v.ValidateEmail("   ")
		require.EqualError(t, err, "email is required")
	})

	t.Run("malformed addresses rejected", func(t *testing.T) {
		for _, email := range []string{
			"not-an-email",
			"missing-at.example.com",
			"no-domain-dot@localhost",
			"two@@example.com",
			"Name <smith@example.com>",
		} {
			err := v.ValidateEmail(email)
			require.EqualError(t, err, "please enter a valid email address", email)
		}
	})
}

func TestValidateCredentials(t *testing.T) {
	v := auth.NewValidator()

	t.Run("valid credentials", func(t *testing.T) {
		require.NoError(t, v.ValidateCredentials("smith@example.com", "pass123"))
	})

	t.Run("email errors reported before password errors", func(t *testing.T) {
		err := v.ValidateCredentials("", "")
		require.EqualError(t, err, "email is required")
	})

	t.Run("missing password", func(t *testing.T) {
		err := v.ValidateCredentials("smith@example.com", "")
		require.EqualError(t, err, "password is required")
	})
}
