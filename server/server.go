package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/finwallet/wallet-bff/auth"
	"github.com/finwallet/wallet-bff/gateway"
	"github.com/finwallet/wallet-bff/internal/config"
	"github.com/finwallet/wallet-bff/server/sessioncookie"
)

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	handler   http.HandlerFunc
	routes    []string
	config    config.Config
	gateway   *gateway.Client
	validator *auth.Validator
}

func New(config config.Config, gw *gateway.Client) *Server {
	s := &Server{
		mux:       http.NewServeMux(),
		config:    config,
		gateway:   gw,
		validator: auth.NewValidator(),
	}
	s.env = config.GetEnv()

	s.initRoutes()
	s.logRoutes()

	// The route guard runs once per inbound request, before any handler
	s.handler = ChainMiddleware(s.mux.ServeHTTP,
		s.LoggingMiddleware,
		s.RecoverMiddleware,
		s.SecurityHeadersMiddleware,
		s.RouteGuardMiddleware,
	)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// sessionStore binds a cookie store to the current exchange.
func (s *Server) sessionStore(w http.ResponseWriter, r *http.Request) *sessioncookie.Store {
	return sessioncookie.New(w, r, s.config.GetSecureCookies())
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
