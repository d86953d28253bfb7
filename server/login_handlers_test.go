package server_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func cookieByName(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func loginForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestLoginSubmission(t *testing.T) {
	t.Run("invalid email never reaches upstream", func(t *testing.T) {
		var upstreamCalls int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&upstreamCalls, 1)
		}))
		defer ts.Close()

		s := newTestServer(ts.URL)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, loginForm(url.Values{"email": {"not-an-email"}, "password": {"pass123"}}))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		location := rec.Header().Get("Location")
		require.Contains(t, location, "/login?error=")
		require.Contains(t, location, url.QueryEscape("valid email address"))
		require.Zero(t, atomic.LoadInt32(&upstreamCalls))
	})

	t.Run("empty password short-circuits with its message", func(t *testing.T) {
		var upstreamCalls int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&upstreamCalls, 1)
		}))
		defer ts.Close()

		s := newTestServer(ts.URL)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, loginForm(url.Values{"email": {"smith@example.com"}, "password": {""}}))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Contains(t, rec.Header().Get("Location"), url.QueryEscape("password is required"))
		require.Zero(t, atomic.LoadInt32(&upstreamCalls))
	})

	t.Run("rejected credentials produce the generic message", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status":"Failure","message":"secret upstream detail"}`))
		}))
		defer ts.Close()

		s := newTestServer(ts.URL)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, loginForm(url.Values{"email": {"smith@example.com"}, "password": {"wrong"}}))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		location := rec.Header().Get("Location")
		require.Contains(t, location, url.QueryEscape("Invalid email or password"))
		require.NotContains(t, location, "secret")
	})

	t.Run("upstream outage produces the generic failure message", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		s := newTestServer(ts.URL)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, loginForm(url.Values{"email": {"smith@example.com"}, "password": {"pass123"}}))

		require.Contains(t, rec.Header().Get("Location"), url.QueryEscape("Login failed"))
	})

	t.Run("unreachable upstream produces the connectivity message", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		ts.Close()

		s := newTestServer(ts.URL)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, loginForm(url.Values{"email": {"smith@example.com"}, "password": {"pass123"}}))

		require.Contains(t, rec.Header().Get("Location"), url.QueryEscape("Unable to connect to server"))
	})

	t.Run("success seeds cookies and redirects to the landing page", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"success","message":"Authentication successful","data":{"access_token":"A1","expires_in":900,"refresh_token":"R1","token_type":"Bearer","user":{"user_id":"usr_1","full_name":"Paul Smith","email":"smith@example.com"}}}`))
		}))
		defer ts.Close()

		s := newTestServer(ts.URL)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, loginForm(url.Values{"email": {"smith@example.com"}, "password": {"pass123"}}))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/transactions", rec.Header().Get("Location"))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 2)
		access := cookieByName(t, cookies, "access_token")
		require.Equal(t, "A1", access.Value)
		require.Equal(t, 900, access.MaxAge)
		refresh := cookieByName(t, cookies, "refresh_token")
		require.Equal(t, "R1", refresh.Value)
		require.Equal(t, 1800, refresh.MaxAge)
	})

	t.Run("returnTo is honoured only for local paths", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"success","message":"ok","data":{"access_token":"A1","expires_in":900,"refresh_token":"R1","token_type":"Bearer"}}`))
		}))
		defer ts.Close()

		s := newTestServer(ts.URL)

		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, loginForm(url.Values{
			"email": {"smith@example.com"}, "password": {"pass123"}, "returnTo": {"/settings"},
		}))
		require.Equal(t, "/settings", rec.Header().Get("Location"))

		rec = httptest.NewRecorder()
		s.ServeHTTP(rec, loginForm(url.Values{
			"email": {"smith@example.com"}, "password": {"pass123"}, "returnTo": {"//evil.example.com"},
		}))
		require.Equal(t, "/transactions", rec.Header().Get("Location"))
	})
}

func TestLogout(t *testing.T) {
	s := newTestServer("http://127.0.0.1:0")

	t.Run("clears both cookies and redirects", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := withSessionCookies(httptest.NewRequest(http.MethodGet, "/auth/logout", nil), "A1", "R1")
		s.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/login", rec.Header().Get("Location"))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 2)
		for _, c := range cookies {
			require.Less(t, c.MaxAge, 0)
			require.Empty(t, c.Value)
		}
	})

	t.Run("succeeds with no session at all", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/logout", nil))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/login", rec.Header().Get("Location"))
		require.Len(t, rec.Result().Cookies(), 2)
	})
}

func TestLoginPage(t *testing.T) {
	s := newTestServer("http://127.0.0.1:0")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login?error=Invalid+email+or+password&email=smith%40example.com&returnTo=%2Fsettings", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Invalid email or password")
	require.Contains(t, body, "smith@example.com")
	require.Contains(t, body, `value="/settings"`)
}
