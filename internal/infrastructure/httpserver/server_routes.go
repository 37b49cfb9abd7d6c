package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	s.echo.POST("/subscriptions", s.subscribe)

	// The emailed confirmation link is a plain GET; POST is routed too for
	// clients that confirm programmatically.
	s.echo.GET("/subscriptions/confirm", s.confirmSubscription)
	s.echo.POST("/subscriptions/confirm", s.confirmSubscription)

	s.echo.POST("/newsletters", s.publishNewsletter)
}
