package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/finwallet/wallet-bff/upstream"
)

// RefreshTokenHandler lets a client-side caller invoke the refresh
// protocol directly (POST /api/v1/token/refresh). On success the
// upstream payload is returned verbatim and the cookies are rotated; on
// failure only a generic message is surfaced, never upstream detail.
func (s *Server) RefreshTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.sessionStore(w, r)

		accessToken, refreshToken := sess.Read()
		if accessToken == "" || refreshToken == "" {
			respondError(w, http.StatusUnauthorized, "No tokens available")
			return
		}

		result, err := s.gateway.RefreshSession(r.Context(), sess)
		if err != nil {
			log.Debug().Err(err).Msg("Session refresh failed")
			respondError(w, http.StatusUnauthorized, "Token refresh failed")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(result.Payload)
	}
}

// TransactionsProxyHandler proxies GET /api/v1/transactions to upstream
// through the gateway, forwarding the status code and body verbatim.
func (s *Server) TransactionsProxyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page == "" {
			page = "1"
		}

		path := upstream.PathTransactions + "?page=" + url.QueryEscape(page)
		resp, err := s.gateway.AuthenticatedFetch(r.Context(), s.sessionStore(w, r), path, nil)
		if err != nil {
			log.Err(err).Msg("Transactions proxy call failed")
			respondError(w, http.StatusBadGateway, "Unable to connect to server")
			return
		}
		defer resp.Body.Close()

		if contentType := resp.Header.Get("Content-Type"); contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(resp.StatusCode)
		_, _ = io.Copy(w, resp.Body)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(upstream.ErrorResponse{Status: "error", Message: message})
}
