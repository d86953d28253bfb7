package server

import (
	"net/http"
	"net/url"
	"strings"
)

// RouteClass is the authorization class of a request path. Every path
// belongs to exactly one class; protected is the default for anything
// not explicitly listed public.
type RouteClass int

const (
	RouteClassProtected RouteClass = iota
	RouteClassPublic
	RouteClassAuthOnly
)

// Classify maps a request path to its route class. It is total and pure:
// the same path always yields the same class and nothing is mutated.
func Classify(path string) RouteClass {
	for _, route := range authRoutes {
		if matchesRoute(path, route) {
			return RouteClassAuthOnly
		}
	}
	for _, route := range publicRoutes {
		if matchesRoute(path, route) {
			return RouteClassPublic
		}
	}
	return RouteClassProtected
}

// matchesRoute treats a listed route as covering itself and everything
// below it.
func matchesRoute(path, route string) bool {
	return path == route || strings.HasPrefix(path, route+"/")
}

// RouteGuardMiddleware runs once per inbound request, before any
// handler. Session presence is judged solely on the presence of the
// access-token cookie; validating its value is the gateway's job on
// actual use, which keeps this check cheap enough for every request.
func (s *Server) RouteGuardMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessToken, _ := s.sessionStore(w, r).Read()
		hasSession := accessToken != ""

		switch Classify(r.URL.Path) {
		case RouteClassAuthOnly:
			if hasSession {
				http.Redirect(w, r, DefaultLoginRedirect, http.StatusSeeOther)
				return
			}
		case RouteClassPublic:
			// pass through
		default:
			if !hasSession {
				query := url.Values{ReturnToParam: {r.URL.Path}}
				http.Redirect(w, r, RouteLogin+"?"+query.Encode(), http.StatusSeeOther)
				return
			}
		}

		next(w, r)
	}
}
