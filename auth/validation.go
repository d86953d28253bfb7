// Package auth holds the credential schema validation run before any
// network call is made on behalf of a login attempt.
package auth

import (
	"fmt"
	"net/mail"
	"strings"
)

// Validator provides centralized validation logic for the login flow.
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCredentials validates login form input. The first failing rule
// short-circuits with its message; credentials are never persisted.
func (v *Validator) ValidateCredentials(email, password string) error {
	if err := v.ValidateEmail(email); err != nil {
		return err
	}

	if password == "" {
		return fmt.Errorf("password is required")
	}

	return nil
}

// ValidateEmail checks that the email is syntactically valid.
func (v *Validator) ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("please enter a valid email address")
	}

	// ParseAddress accepts local addresses without a domain dot
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return fmt.Errorf("please enter a valid email address")
	}

	return nil
}
