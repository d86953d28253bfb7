package server

import (
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/finwallet/wallet-bff/internal/errors"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName  string
	Error    string
	Email    string // Preserve email on error
	ReturnTo string
}

const loginPageTemplate = `<!DOCTYPE html>
<html>
<head><title>{{.AppName}} - Sign in</title></head>
<body>
<h1>Sign in</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="POST" action="/auth/login">
  <input type="hidden" name="returnTo" value="{{.ReturnTo}}">
  <label>Email <input type="email" name="email" value="{{.Email}}"></label>
  <label>Password <input type="password" name="password"></label>
  <button type="submit">Sign in</button>
</form>
</body>
</html>`

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	loginTmpl := template.Must(template.New("login").Parse(loginPageTemplate))

	return func(w http.ResponseWriter, r *http.Request) {
		data := LoginPageData{
			AppName:  s.config.GetAppName(),
			Error:    r.URL.Query().Get("error"),
			Email:    r.URL.Query().Get("email"),
			ReturnTo: r.URL.Query().Get(ReturnToParam),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := loginTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render login template")
			http.Error(w, "Failed to render login page", http.StatusInternalServerError)
		}
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Parse form data
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("password")
		returnTo := r.FormValue(ReturnToParam)

		// Schema validation runs before any network call; the first
		// failure short-circuits with its message
		if err := s.validator.ValidateCredentials(email, password); err != nil {
			redirectWithErrorAndEmail(w, r, RouteLogin, err.Error(), email)
			return
		}

		authResponse, err := s.gateway.Login(r.Context(), email, password)
		if err != nil {
			redirectWithErrorAndEmail(w, r, RouteLogin, loginErrorMessage(err), email)
			return
		}

		tokens := authResponse.Data
		s.sessionStore(w, r).Set(tokens.AccessToken, tokens.RefreshToken, tokens.ExpiresIn)

		redirectSuccess(w, r, loginRedirectTarget(returnTo))
	}
}

// LogoutHandler clears the session and returns to the login page. It
// never queries upstream and succeeds even when no session existed.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.sessionStore(w, r).Clear()
		redirectSuccess(w, r, RouteLogin)
	}
}

// loginErrorMessage maps gateway failures to the generic messages shown
// to the user; upstream error detail is deliberately suppressed.
func loginErrorMessage(err error) string {
	switch {
	case errors.Is(err, errors.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, errors.ErrUpstreamUnavailable):
		return "Unable to connect to server. Please try again."
	default:
		return "Login failed. Please try again."
	}
}

// loginRedirectTarget only honours local paths so the returnTo parameter
// cannot be abused as an open redirect.
func loginRedirectTarget(returnTo string) string {
	if strings.HasPrefix(returnTo, "/") && !strings.HasPrefix(returnTo, "//") && !strings.Contains(returnTo, "\\") {
		return returnTo
	}
	return DefaultLoginRedirect
}

// redirectWithErrorAndEmail redirects back to a page with an error
// message, preserving the typed email
func redirectWithErrorAndEmail(w http.ResponseWriter, r *http.Request, path, errorMsg, email string) {
	fullPath := path + "?error=" + url.QueryEscape(errorMsg)
	if email != "" {
		fullPath += "&email=" + url.QueryEscape(email)
	}
	http.Redirect(w, r, fullPath, http.StatusSeeOther)
}

// redirectSuccess helper for post-action redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}
