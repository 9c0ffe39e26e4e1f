package httpserver

import echoSwagger "github.com/swaggo/echo-swagger"

// @title Agenda API
// @version 1.0
// @description Contacts and appointments addressed by numeric ids.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// RegisterSwaggerRoutes serves the generated API docs UI.
func (s *Server) RegisterSwaggerRoutes() {
	s.Router.GET("/swagger/*", echoSwagger.WrapHandler)
}
