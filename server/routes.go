package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET /", s.IndexHandler())

	// LOGIN
	s.RegisterRouteFunc("GET "+RouteLogin, s.LoginPageHandler())
	s.RegisterRouteFunc("POST "+RouteAuthLogin, s.LoginSubmissionHandler())
	s.RegisterRouteFunc("GET "+RouteAuthLogout, s.LogoutHandler())

	// Protected pages
	s.RegisterRouteFunc("GET "+RouteTransactions, s.TransactionsPageHandler())

	// BFF API routes
	s.RegisterRouteFunc("POST "+RouteAPITokenRefresh, s.RefreshTokenHandler())
	s.RegisterRouteFunc("GET "+RouteAPITransactions, s.TransactionsProxyHandler())
}
