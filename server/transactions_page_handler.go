package server

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/finwallet/wallet-bff/upstream"
)

type transactionsPageData struct {
	AppName      string
	Transactions []upstream.Transaction
	Pagination   upstream.Pagination
}

const transactionsPageTemplate = `<!DOCTYPE html>
<html>
<head><title>{{.AppName}} - Transactions</title></head>
<body>
<h1>Transactions</h1>
<p><a href="/auth/logout">Sign out</a></p>
<table>
<tr><th>ID</th><th>Type</th><th>Amount (cents)</th><th>Currency</th><th>Status</th><th>Date</th></tr>
{{range .Transactions}}
<tr><td>{{.ID}}</td><td>{{.Type}}</td><td>{{.AmountInCents}}</td><td>{{.Currency}}</td><td>{{.Status}}</td><td>{{.CreatedAt}}</td></tr>
{{end}}
</table>
<p>Page {{.Pagination.CurrentPage}} of {{.Pagination.TotalPages}}</p>
</body>
</html>`

// TransactionsPageHandler server-renders the first page of transactions
// through the gateway. A 401 that survives the gateway's refresh retry
// means the session is truly dead, so the browser goes back to login.
func (s *Server) TransactionsPageHandler() http.HandlerFunc {
	tmpl := template.Must(template.New("transactions").Parse(transactionsPageTemplate))

	return func(w http.ResponseWriter, r *http.Request) {
		path := upstream.PathTransactions + "?page=1"
		resp, err := s.gateway.AuthenticatedFetch(r.Context(), s.sessionStore(w, r), path, nil)
		if err != nil {
			log.Err(err).Msg("Failed to load transactions")
			http.Error(w, "Unable to connect to server", http.StatusBadGateway)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized {
			query := url.Values{ReturnToParam: {r.URL.Path}}
			http.Redirect(w, r, RouteLogin+"?"+query.Encode(), http.StatusSeeOther)
			return
		}
		if resp.StatusCode != http.StatusOK {
			http.Error(w, "Failed to load transactions", http.StatusBadGateway)
			return
		}

		var page upstream.TransactionsResponse
		if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
			log.Err(err).Msg("Failed to decode transactions response")
			http.Error(w, "Failed to load transactions", http.StatusBadGateway)
			return
		}

		data := transactionsPageData{
			AppName:      s.config.GetAppName(),
			Transactions: page.Data,
			Pagination:   page.Pagination,
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render transactions template")
		}
	}
}
