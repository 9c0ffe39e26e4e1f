package httpserver

import (
	"agenda/contact"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterPublicContactRoutes(g *echo.Group) {
	g.GET("/contacts", s.handleListContacts)
	g.GET("/contacts/:id", s.handleGetContact)
}

func (s *Server) RegisterPrivateContactRoutes(g *echo.Group) {
	g.POST("/contacts", s.handleCreateContact)
	g.PUT("/contacts/:id", s.handleUpdateContact)
	g.DELETE("/contacts/:id", s.handleDeleteContact)
}

// handleListContacts godoc
// @Summary List contacts
// @Description Surviving contacts in ascending id order
// @Tags contacts
// @Success 200 {object} APIResponse
// @Router /api/contacts [get]
func (s *Server) handleListContacts(c echo.Context) error {
	entries, err := s.ContactService.ListContacts(c.Request().Context())
	if err != nil {
		return err
	}

	data := make([]ContactResponse, len(entries))
	for i, e := range entries {
		data[i] = ContactResponse{ID: e.ID, Contact: e.Value}
	}
	return writeList(c, http.StatusOK, data)
}

// handleGetContact godoc
// @Summary Get contact
// @Tags contacts
// @Param id path int true "Contact ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/contacts/{id} [get]
func (s *Server) handleGetContact(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	found, ok, err := s.ContactService.ReadContact(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !ok {
		return contact.ErrNotFound
	}
	return writeSuccess(c, http.StatusOK, ContactResponse{ID: id, Contact: found})
}

// handleCreateContact godoc
// @Summary Create contact
// @Tags contacts
// @Security BearerAuth
// @Param body body ContactRequest true "Contact"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/contacts [post]
func (s *Server) handleCreateContact(c echo.Context) error {
	var req ContactRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	ct, err := req.ToContact()
	if err != nil {
		return err
	}

	id, err := s.ContactService.CreateContact(c.Request().Context(), ct)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusCreated, CreatedResponse{ID: id})
}

// handleUpdateContact godoc
// @Summary Replace contact
// @Tags contacts
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Param body body ContactRequest true "Contact"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/contacts/{id} [put]
func (s *Server) handleUpdateContact(c echo.Context) error {
	id, err := parseID(c.Param("id"))
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

	if err := s.ContactService.UpdateContact(c.Request().Context(), id, ct); err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, CreatedResponse{ID: id})
}

// handleDeleteContact godoc
// @Summary Delete contact
// @Tags contacts
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} APIResponse
// @Router /api/contacts/{id} [delete]
func (s *Server) handleDeleteContact(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	deleted, err := s.ContactService.DeleteContact(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, DeletedResponse{Deleted: deleted})
}
