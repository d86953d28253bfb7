package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/finwallet/wallet-bff/gateway"
	"github.com/finwallet/wallet-bff/server"
)

// testConfig satisfies config.Config with fixed values so tests do not
// depend on the environment.
type testConfig struct{}

func (testConfig) GetPort() string                   { return ":0" }
func (testConfig) GetAppName() string                { return "Wallet BFF" }
func (testConfig) GetEnv() string                    { return "TEST" }
func (testConfig) GetUpstreamBaseURL() string        { return "http://127.0.0.1:0" }
func (testConfig) GetUpstreamTimeout() time.Duration { return time.Second }
func (testConfig) GetSecureCookies() bool            { return false }

func newTestServer(upstreamURL string) *server.Server {
	return server.New(testConfig{}, gateway.New(upstreamURL, time.Second))
}

func withSessionCookies(r *http.Request, access, refresh string) *http.Request {
	if access != "" {
		r.AddCookie(&http.Cookie{Name: "access_token", Value: access})
	}
	if refresh != "" {
		r.AddCookie(&http.Cookie{Name: "refresh_token", Value: refresh})
	}
	return r
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want server.RouteClass
	}{
		{"/", server.RouteClassPublic},
		{"/login", server.RouteClassAuthOnly},
		{"/login/", server.RouteClassAuthOnly},
		{"/auth/login", server.RouteClassPublic},
		{"/auth/logout", server.RouteClassPublic},
		{"/api/v1/transactions", server.RouteClassPublic},
		{"/api/v1/token/refresh", server.RouteClassPublic},
		{"/transactions", server.RouteClassProtected},
		{"/transactions/details", server.RouteClassProtected},
		{"/settings", server.RouteClassProtected},
		{"/loginx", server.RouteClassProtected},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.want, server.Classify(tt.path))
			// Classification must be stable
			require.Equal(t, tt.want, server.Classify(tt.path))
		})
	}
}

func TestRouteGuard(t *testing.T) {
	s := newTestServer("http://127.0.0.1:0")

	t.Run("protected path without session redirects to login with returnTo", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions", nil))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/login?returnTo=%2Ftransactions", rec.Header().Get("Location"))
	})

	t.Run("unknown path is protected by default", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/monthly", nil))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/login?returnTo=%2Freports%2Fmonthly", rec.Header().Get("Location"))
	})

	t.Run("auth route with session redirects to default landing page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := withSessionCookies(httptest.NewRequest(http.MethodGet, "/login", nil), "A1", "R1")
		s.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/transactions", rec.Header().Get("Location"))
	})

	t.Run("auth route without session passes through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Sign in")
	})

	t.Run("public route passes through either way", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		req := withSessionCookies(httptest.NewRequest(http.MethodGet, "/", nil), "A1", "R1")
		s.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("session presence is cookie presence only", func(t *testing.T) {
		// The guard does not validate the token value; a garbage
		// cookie still counts as a session here.
		rec := httptest.NewRecorder()
		req := withSessionCookies(httptest.NewRequest(http.MethodGet, "/login", nil), "not-a-real-token", "")
		s.ServeHTTP(rec, req)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/transactions", rec.Header().Get("Location"))
	})
}
