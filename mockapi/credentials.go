package mockapi

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/finwallet/wallet-bff/upstream"
)

var (
	ErrBadCredentials  = errors.New("invalid email or password")
	ErrBadAccessToken  = errors.New("invalid access token")
	ErrBadRefreshToken = errors.New("invalid refresh token")
)

const (
	demoEmail    = "smith@example.com"
	demoUserID   = "usr_a1b2c3d4e5f6"
	demoFullName = "Paul Smith"

	accessTokenTTL = 15 * time.Minute
)

// CredentialStore is the demo credential store: a single user, bcrypt
// password verification, HS256 access tokens, and in-memory refresh
// tokens rotated deterministically on every refresh.
type CredentialStore struct {
	signingSecret []byte
	passwordHash  []byte

	mu            sync.Mutex
	refreshTokens map[string]time.Time // token -> expiry
}

func NewCredentialStore(signingSecret []byte, demoPassword string) (*CredentialStore, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("[CredentialStore New] hash demo password: %w", err)
	}

	return &CredentialStore{
		signingSecret: signingSecret,
		passwordHash:  hash,
		refreshTokens: make(map[string]time.Time),
	}, nil
}

// Authenticate validates the demo credentials and issues a fresh token
// pair.
func (c *CredentialStore) Authenticate(email, password string) (*upstream.TokenData, error) {
	if email != demoEmail {
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return c.issueTokens()
}

// Refresh validates a refresh token and issues a replacement pair. The
// presented access token only needs a valid signature, not a live
// expiry, since refresh by definition happens with a stale token. The
// spent refresh token is invalidated so rotation is deterministic.
func (c *CredentialStore) Refresh(accessToken, refreshToken string) (*upstream.TokenData, error) {
	if err := c.verifySignature(accessToken); err != nil {
		return nil, ErrBadAccessToken
	}

	c.mu.Lock()
	expiry, ok := c.refreshTokens[refreshToken]
	if ok {
		delete(c.refreshTokens, refreshToken)
	}
	c.mu.Unlock()

	if !ok || time.Now().After(expiry) {
		return nil, ErrBadRefreshToken
	}

	return c.issueTokens()
}

// VerifyAccessToken fully validates a bearer token, expiry included.
func (c *CredentialStore) VerifyAccessToken(accessToken string) error {
	token, err := jwt.Parse(accessToken, c.keyFunc, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return ErrBadAccessToken
	}
	return nil
}

func (c *CredentialStore) issueTokens() (*upstream.TokenData, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   demoUserID,
		"email": demoEmail,
		"iat":   now.Unix(),
		"exp":   now.Add(accessTokenTTL).Unix(),
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.signingSecret)
	if err != nil {
		return nil, fmt.Errorf("[CredentialStore issueTokens] sign access token: %w", err)
	}

	refreshToken := "rft_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	c.mu.Lock()
	c.refreshTokens[refreshToken] = now.Add(2 * accessTokenTTL)
	for token, expiry := range c.refreshTokens {
		if now.After(expiry) {
			delete(c.refreshTokens, token)
		}
	}
	c.mu.Unlock()

	return &upstream.TokenData{
		AccessToken:  accessToken,
		ExpiresIn:    int(accessTokenTTL.Seconds()),
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		User: upstream.User{
			UserID:   demoUserID,
			FullName: demoFullName,
			Email:    demoEmail,
		},
	}, nil
}

func (c *CredentialStore) verifySignature(accessToken string) error {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if _, err := parser.Parse(accessToken, c.keyFunc); err != nil {
		return err
	}
	return nil
}

func (c *CredentialStore) keyFunc(token *jwt.Token) (interface{}, error) {
	return c.signingSecret, nil
}
