package errors

import (
	"errors"
	"fmt"
)

// Common error types for the BFF
var (
	// Login errors
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Session errors
	ErrSessionMissing = errors.New("no session tokens present")

	// Refresh errors
	ErrRefreshFailed = errors.New("token refresh failed")

	// Upstream errors
	ErrUpstreamUnavailable = errors.New("unable to connect to upstream")
	ErrUpstream            = errors.New("upstream request failed")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
