package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nexaboard/nexaboard/internal/core/domain"
	"github.com/nexaboard/nexaboard/internal/core/ports"
)

// UserHandler exposes the team directory.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}  identity.Identity
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identities(users))
}

// Leads handles GET /api/users/leads: the users eligible to own a
// project (managers and admins).
//
// @Summary      List project leads
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}  identity.Identity
// @Router       /api/users/leads [get]
func (h *UserHandler) Leads(c echo.Context) error {
	users, err := h.service.ListLeads(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identities(users))
}

// identities strips password hashes and timestamps from the listing.
func identities(users []*domain.User) []any {
	out := make([]any, 0, len(users))
	for _, u := range users {
		out = append(out, u.Identity())
	}
	return out
}
