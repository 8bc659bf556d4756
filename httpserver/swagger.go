package httpserver

import echoSwagger "github.com/swaggo/echo-swagger"

// @title MovieDB API
// @version 1.0
// @description Titles, names, credits, crews, alternate titles and episodes.
// @BasePath /
func (s *Server) RegisterSwaggerRoutes() {
	s.Router.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.DocExpansion("none")))
}
