// Package gateway wraps calls to the upstream backend API with the
// session's bearer token and transparently refreshes it on authorization
// failure. Per invocation it issues at most two requests to the target
// path (original + one retry) and at most one refresh call.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/finwallet/wallet-bff/internal/errors"
	"github.com/finwallet/wallet-bff/upstream"
)

// SessionStore gives the gateway access to the caller's persisted token
// pair. The cookie store of the current exchange implements it.
type SessionStore interface {
	// Read returns the stored tokens; empty strings mean absent.
	Read() (accessToken, refreshToken string)
	// Set persists a replacement token pair.
	Set(accessToken, refreshToken string, expiresIn int)
}

// Options customises a single AuthenticatedFetch call. The Authorization
// header is always taken from the session store and cannot be overridden
// through Header.
type Options struct {
	Method string
	Header http.Header
	Body   []byte
}

// RefreshResult carries the outcome of a successful refresh: the parsed
// token pair and the verbatim upstream payload for callers that must
// return it untouched.
type RefreshResult struct {
	Tokens  upstream.TokenData
	Payload []byte
}

type Client struct {
	baseURL      string
	httpClient   *http.Client
	refreshGroup singleflight.Group
}

// New creates a gateway client for the backend at baseURL. Every
// upstream call is bounded by timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// AuthenticatedFetch issues an upstream request with the session's
// access token. With no access token present it fails fast with a
// synthesized 401 and never contacts upstream. On an upstream 401 with a
// refresh token present it runs the refresh sub-protocol once, persists
// the new pair, and retries the original request exactly once; if the
// refresh fails, the original 401 is returned unmodified.
func (c *Client) AuthenticatedFetch(ctx context.Context, sess SessionStore, path string, opts *Options) (*http.Response, error) {
	if opts == nil {
		opts = &Options{}
	}

	accessToken, refreshToken := sess.Read()
	if accessToken == "" {
		return unauthorizedResponse(), nil
	}

	resp, err := c.fetch(ctx, accessToken, path, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "[Gateway AuthenticatedFetch] %s %s", methodOf(opts), path)
	}

	if resp.StatusCode != http.StatusUnauthorized || refreshToken == "" {
		return resp, nil
	}

	result, err := c.refresh(ctx, accessToken, refreshToken)
	if err != nil {
		// Surface the original 401 so callers see a consistent
		// unauthorized status rather than a synthesized error.
		log.Debug().Err(err).Str("path", path).Msg("Token refresh failed, returning original response")
		return resp, nil
	}

	sess.Set(result.Tokens.AccessToken, result.Tokens.RefreshToken, result.Tokens.ExpiresIn)

	drain(resp)
	retry, err := c.fetch(ctx, result.Tokens.AccessToken, path, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "[Gateway AuthenticatedFetch] retry %s %s", methodOf(opts), path)
	}
	return retry, nil
}

// RefreshSession runs the refresh sub-protocol directly and persists the
// new pair on success. With either token absent it fails without an
// upstream call.
func (c *Client) RefreshSession(ctx context.Context, sess SessionStore) (*RefreshResult, error) {
	accessToken, refreshToken := sess.Read()
	if accessToken == "" || refreshToken == "" {
		return nil, errors.ErrSessionMissing
	}

	result, err := c.refresh(ctx, accessToken, refreshToken)
	if err != nil {
		return nil, err
	}

	sess.Set(result.Tokens.AccessToken, result.Tokens.RefreshToken, result.Tokens.ExpiresIn)
	return result, nil
}

// Login exchanges credentials for a token pair. Upstream 401/403 maps to
// ErrInvalidCredentials, any other non-2xx to ErrUpstream, and transport
// failures to ErrUpstreamUnavailable; upstream error detail is never
// surfaced.
func (c *Client) Login(ctx context.Context, email, password string) (*upstream.AuthResponse, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, errors.Wrapf(err, "[Gateway Login] marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+upstream.PathLogin, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "[Gateway Login] build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrUpstreamUnavailable, err)
	}
	defer drain(resp)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errors.ErrInvalidCredentials
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: status %d", errors.ErrUpstream, resp.StatusCode)
	}

	var auth upstream.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return nil, errors.Wrapf(err, "[Gateway Login] decode response")
	}
	return &auth, nil
}

// refresh calls the upstream refresh endpoint with the stale access
// token as the bearer credential and the refresh token in the body.
// Concurrent refreshes for the same refresh token collapse into a single
// upstream call; every caller receives the one result.
func (c *Client) refresh(ctx context.Context, accessToken, refreshToken string) (*RefreshResult, error) {
	v, err, _ := c.refreshGroup.Do(refreshToken, func() (interface{}, error) {
		return c.doRefresh(ctx, accessToken, refreshToken)
	})
	if err != nil {
		return nil, err
	}
	return v.(*RefreshResult), nil
}

func (c *Client) doRefresh(ctx context.Context, accessToken, refreshToken string) (*RefreshResult, error) {
	body, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return nil, errors.Wrapf(err, "[Gateway refresh] marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+upstream.PathTokenRefresh, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "[Gateway refresh] build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrRefreshFailed, err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", errors.ErrRefreshFailed, resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrRefreshFailed, err)
	}

	var auth upstream.AuthResponse
	if err := json.Unmarshal(payload, &auth); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrRefreshFailed, err)
	}
	if auth.Data.AccessToken == "" || auth.Data.RefreshToken == "" {
		return nil, fmt.Errorf("%w: incomplete token pair", errors.ErrRefreshFailed)
	}

	return &RefreshResult{Tokens: auth.Data, Payload: payload}, nil
}

// fetch issues one request to the target path. Caller headers are merged
// first so the Authorization header set from the session always wins.
func (c *Client) fetch(ctx context.Context, accessToken, path string, opts *Options) (*http.Response, error) {
	var body io.Reader
	if len(opts.Body) > 0 {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, methodOf(opts), c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, values := range opts.Header {
		req.Header[http.CanonicalHeaderKey(key)] = append([]string(nil), values...)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	return c.httpClient.Do(req)
}

func methodOf(opts *Options) string {
	if opts.Method == "" {
		return http.MethodGet
	}
	return opts.Method
}

// unauthorizedResponse is the fail-fast result when no access token is
// present; upstream is never contacted in that case.
func unauthorizedResponse() *http.Response {
	body := `{"status":"error","message":"Unauthorized"}`
	return &http.Response{
		Status:        "401 Unauthorized",
		StatusCode:    http.StatusUnauthorized,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        http.Header{"Content-Type": []string{"application/json"}},
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: int64(len(body)),
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	_ = resp.Body.Close()
}
