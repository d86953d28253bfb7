// Package sessioncookie persists the session token pair as HTTP-only
// cookies on the browser. A Store is bound to a single request/response
// exchange and must only be used while the response headers can still
// be written.
package sessioncookie

import (
	"net/http"
)

const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"
)

// Store reads and writes the session cookies of one exchange.
type Store struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool
}

func New(w http.ResponseWriter, r *http.Request, secure bool) *Store {
	return &Store{w: w, r: r, secure: secure}
}

// Read returns the current token pair. An empty string means the cookie
// is absent; callers must treat either token being absent as "no session".
func (s *Store) Read() (accessToken, refreshToken string) {
	if c, err := s.r.Cookie(accessTokenCookie); err == nil {
		accessToken = c.Value
	}
	if c, err := s.r.Cookie(refreshTokenCookie); err == nil {
		refreshToken = c.Value
	}
	return accessToken, refreshToken
}

// Set stores both tokens. The access cookie expires after expiresIn
// seconds and the refresh cookie after twice that, so a live refresh
// token always outlasts the access token it replaces.
func (s *Store) Set(accessToken, refreshToken string, expiresIn int) {
	http.SetCookie(s.w, s.cookie(accessTokenCookie, accessToken, expiresIn))
	http.SetCookie(s.w, s.cookie(refreshTokenCookie, refreshToken, 2*expiresIn))
}

// Clear removes both cookies unconditionally. Clearing an absent
// session is not an error.
func (s *Store) Clear() {
	http.SetCookie(s.w, s.cookie(accessTokenCookie, "", -1))
	http.SetCookie(s.w, s.cookie(refreshTokenCookie, "", -1))
}

func (s *Store) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	}
}
