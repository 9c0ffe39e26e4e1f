package httpserver

import (
	"agenda/appointment"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterPublicAppointmentRoutes(g *echo.Group) {
	g.GET("/appointments", s.handleListAppointments)
	g.GET("/appointments/:id", s.handleGetAppointment)
}

func (s *Server) RegisterPrivateAppointmentRoutes(g *echo.Group) {
	g.POST("/appointments", s.handleCreateAppointment)
	g.PUT("/appointments/:id", s.handleUpdateAppointment)
	g.DELETE("/appointments/:id", s.handleDeleteAppointment)
}

// handleListAppointments godoc
// @Summary List appointments
// @Description Surviving appointments in ascending id order
// @Tags appointments
// @Success 200 {object} APIResponse
// @Router /api/appointments [get]
func (s *Server) handleListAppointments(c echo.Context) error {
	entries, err := s.AppointmentService.ListAppointments(c.Request().Context())
	if err != nil {
		return err
	}

	data := make([]AppointmentResponse, len(entries))
	for i, e := range entries {
		data[i] = AppointmentResponse{ID: e.ID, Appointment: e.Value}
	}
	return writeList(c, http.StatusOK, data)
}

// handleGetAppointment godoc
// @Summary Get appointment
// @Tags appointments
// @Param id path int true "Appointment ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/appointments/{id} [get]
func (s *Server) handleGetAppointment(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	found, ok, err := s.AppointmentService.ReadAppointment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !ok {
		return appointment.ErrNotFound
	}
	return writeSuccess(c, http.StatusOK, AppointmentResponse{ID: id, Appointment: found})
}

// handleCreateAppointment godoc
// @Summary Create appointment
// @Tags appointments
// @Security BearerAuth
// @Param body body AppointmentRequest true "Appointment"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/appointments [post]
func (s *Server) handleCreateAppointment(c echo.Context) error {
	var req AppointmentRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	ap, err := req.ToAppointment()
	if err != nil {
		return err
	}

	id, err := s.AppointmentService.CreateAppointment(c.Request().Context(), ap)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusCreated, CreatedResponse{ID: id})
}

// handleUpdateAppointment godoc
// @Summary Replace appointment
// @Tags appointments
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Param body body AppointmentRequest true "Appointment"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/appointments/{id} [put]
func (s *Server) handleUpdateAppointment(c echo.Context) error {
	id, err := parseID(c.Param("id"))
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

	if err := s.AppointmentService.UpdateAppointment(c.Request().Context(), id, ap); err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, CreatedResponse{ID: id})
}

// handleDeleteAppointment godoc
// @Summary Delete appointment
// @Tags appointments
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} APIResponse
// @Router /api/appointments/{id} [delete]
func (s *Server) handleDeleteAppointment(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	deleted, err := s.AppointmentService.DeleteAppointment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, DeletedResponse{Deleted: deleted})
}
