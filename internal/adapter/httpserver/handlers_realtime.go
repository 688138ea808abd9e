package httpserver

import "github.com/labstack/echo/v4"

func (s *Server) registerRealtimeRoutes() {
	if s.websocketHandler == nil {
		return
	}
	s.echo.GET("/connection/websocket",
		echo.WrapHandler(s.centrifugeAuthMiddleware(s.websocketHandler)),
		s.connectionLimitMiddleware,
	)
}
