package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex        = "/"
	RouteLogin        = "/login"
	RouteAuthLogin    = "/auth/login"
	RouteAuthLogout   = "/auth/logout"
	RouteTransactions = "/transactions"

	// BFF API surface exposed to the browser
	RouteAPIBase         = "/api/v1"
	RouteAPITokenRefresh = "/api/v1/token/refresh"
	RouteAPITransactions = "/api/v1/transactions"

	// DefaultLoginRedirect is where authenticated users land after login
	// and when they revisit an auth-only route
	DefaultLoginRedirect = RouteTransactions

	// ReturnToParam carries the originally requested path through the
	// login redirect
	ReturnToParam = "returnTo"
)

// publicRoutes lists the paths reachable without a session. Everything
// absent from this list is protected; the login and logout form
// endpoints must stay listed or no one could ever sign in or out. The
// API routes enforce their own session checks and answer 401 JSON,
// because redirecting a fetch call to an HTML login page would break
// API clients.
var publicRoutes = []string{
	RouteIndex,
	RouteLogin,
	RouteAuthLogin,
	RouteAuthLogout,
	RouteAPIBase,
}

// authRoutes lists the paths that only make sense without a session;
// authenticated visitors are bounced to DefaultLoginRedirect.
var authRoutes = []string{
	RouteLogin,
}
