package httpserver

import (
	"agenda/appointment"
	"agenda/contact"
	"agenda/pkg/jwt"
	"net/http"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// RegisterCallerRoutes exposes the records kept per authenticated caller.
// The caller is the subject of the access token.
func (s *Server) RegisterCallerRoutes(g *echo.Group) {
	me := g.Group("/me")
	me.GET("/contact", s.handleGetMyContact)
	me.PUT("/contact", s.handlePutMyContact)
	me.DELETE("/contact", s.handleDeleteMyContact)
	me.GET("/appointment", s.handleGetMyAppointment)
	me.PUT("/appointment", s.handlePutMyAppointment)
	me.DELETE("/appointment", s.handleDeleteMyAppointment)
}

func caller(c echo.Context) (string, error) {
	token, _ := c.Get("user").(*gojwt.Token)
	return jwt.Caller(token)
}

func (s *Server) handleGetMyContact(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}

	found, ok, err := s.ContactService.CallerContact(c.Request().Context(), who)
	if err != nil {
		return err
	}
	if !ok {
		return contact.ErrNotFound
	}
	return writeSuccess(c, http.StatusOK, found)
}

func (s *Server) handlePutMyContact(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	var req ContactRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	ct, err := req.ToContact()
	if err != nil {
		return err
	}

	if err := s.ContactService.PutCallerContact(c.Request().Context(), who, ct); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeleteMyContact(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}

	deleted, err := s.ContactService.DeleteCallerContact(c.Request().Context(), who)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, DeletedResponse{Deleted: deleted})
}

func (s *Server) handleGetMyAppointment(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}

	found, ok, err := s.AppointmentService.CallerAppointment(c.Request().Context(), who)
	if err != nil {
		return err
	}
	if !ok {
		return appointment.ErrNotFound
	}
	return writeSuccess(c, http.StatusOK, found)
}

func (s *Server) handlePutMyAppointment(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	var req AppointmentRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	ap, err := req.ToAppointment()
	if err != nil {
		return err
	}

	if err := s.AppointmentService.PutCallerAppointment(c.Request().Context(), who, ap); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeleteMyAppointment(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}

	deleted, err := s.AppointmentService.DeleteCallerAppointment(c.Request().Context(), who)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, DeletedResponse{Deleted: deleted})
}
