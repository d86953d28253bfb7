// Package upstream defines the wire types of the backend API the BFF
// proxies to. The envelope is always {status, message, ...}; token and
// user payloads are passed through without interpretation.
package upstream

// User is the opaque identity payload attached to a successful auth.
type User struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// TokenData is the token pair issued by the credential store. ExpiresIn
// is seconds until access-token expiry; the refresh token is expected to
// outlive it.
type TokenData struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	User         User   `json:"user"`
}

// AuthResponse is the envelope returned by the login and token refresh
// endpoints.
type AuthResponse struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	Data    TokenData `json:"data"`
}

// ErrorResponse is the envelope for failed upstream calls.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type TransactionType string

const (
	TransactionTransfer TransactionType = "TRANSFER"
	TransactionTopup    TransactionType = "TOPUP"
)

type Transaction struct {
	ID            string          `json:"id"`
	AmountInCents int64           `json:"amount_in_cents"`
	Currency      string          `json:"currency"`
	Type          TransactionType `json:"type"`
	Status        string          `json:"status"`
	CreatedAt     string          `json:"created_at"`
	DestinationID string          `json:"destination_id"`
}

type Pagination struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalItems   int `json:"total_items"`
	ItemsPerPage int `json:"items_per_page"`
}

// TransactionsResponse is the envelope returned by the transactions
// endpoint.
type TransactionsResponse struct {
	Status     string        `json:"status"`
	Message    string        `json:"message"`
	Pagination Pagination    `json:"pagination"`
	Data       []Transaction `json:"data"`
}

// API paths on the upstream backend.
const (
	PathLogin        = "/api/v1/login"
	PathTokenRefresh = "/api/v1/token/refresh"
	PathTransactions = "/api/v1/transactions"
)
