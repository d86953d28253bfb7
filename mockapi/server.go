// Package mockapi implements the demo backend API the BFF proxies to: a
// credential store with a single demo user and a transaction store with
// a fixed dataset. It exists so the whole stack can run and be
// integration-tested without a real banking backend.
package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/finwallet/wallet-bff/upstream"
)

type Server struct {
	mux   *http.ServeMux
	creds *CredentialStore
}

func New(signingSecret []byte, demoPassword string) (*Server, error) {
	creds, err := NewCredentialStore(signingSecret, demoPassword)
	if err != nil {
		return nil, fmt.Errorf("[MockAPI New] %w", err)
	}

	s := &Server{
		mux:   http.NewServeMux(),
		creds: creds,
	}
	s.initRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) initRoutes() {
	s.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("API is up and running!"))
	})
	s.mux.HandleFunc("POST "+upstream.PathLogin, s.LoginHandler())
	s.mux.HandleFunc("POST "+upstream.PathTokenRefresh, s.RefreshHandler())
	s.mux.HandleFunc("GET "+upstream.PathTransactions, s.TransactionsHandler())
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, upstream.ErrorResponse{
				Status:  "Failure",
				Message: "Invalid request body",
			})
			return
		}

		tokens, err := s.creds.Authenticate(req.Email, req.Password)
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, upstream.ErrorResponse{
				Status:  "Failure",
				Message: "Email or password is incorrect. Use email: " + demoEmail,
			})
			return
		}

		respondJSON(w, http.StatusOK, upstream.AuthResponse{
			Status:  "success",
			Message: "Authentication successful",
			Data:    *tokens,
		})
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessToken, ok := bearerToken(r)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, upstream.ErrorResponse{
				Status:  "Failure",
				Message: "Invalid request body",
			})
			return
		}

		tokens, err := s.creds.Refresh(accessToken, req.RefreshToken)
		switch {
		case err == nil:
		case errors.Is(err, ErrBadAccessToken):
			w.WriteHeader(http.StatusUnauthorized)
			return
		default:
			respondJSON(w, http.StatusUnauthorized, upstream.ErrorResponse{
				Status:  "Failure",
				Message: "Refresh token is invalid.",
			})
			return
		}

		respondJSON(w, http.StatusOK, upstream.AuthResponse{
			Status:  "success",
			Message: "Token refreshed",
			Data:    *tokens,
		})
	}
}

func (s *Server) TransactionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessToken, ok := bearerToken(r)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err := s.creds.VerifyAccessToken(accessToken); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil {
			page = 1
		}

		respondJSON(w, http.StatusOK, transactionPage(page))
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Err(err).Msg("Failed to encode response")
	}
}
