package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nexaboard/nexaboard/internal/core/ports"
)

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type createProjectRequest struct {
	Name        string    `json:"name"        validate:"required"`
	Description string    `json:"description"`
	ManagerID   string    `json:"manager_id"  validate:"required"`
	TeamIDs     []string  `json:"team_ids"`
	Deadline    time.Time `json:"deadline"`
}

// Create handles POST /api/projects. Requires the manager role.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	project, err := h.service.CreateProject(c.Request().Context(), ports.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   req.ManagerID,
		TeamIDs:     req.TeamIDs,
		Deadline:    req.Deadline,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, project)
}

// List handles GET /api/projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}  domain.Project
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.service.ListProjects(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Mine handles GET /api/projects/my-projects?userId=: projects the
// user manages or belongs to.
//
// @Summary      List a user's projects
// @Tags         projects
// @Produce      json
// @Security     CookieAuth
// @Param        userId  query     string  true  "User id"
// @Success      200     {array}   domain.Project
// @Failure      400     {object}  map[string]string
// @Router       /api/projects/my-projects [get]
func (h *ProjectHandler) Mine(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "userId query parameter required"})
	}

	projects, err := h.service.ListUserProjects(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Get handles GET /api/projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  domain.Project
// @Failure      404  {object}  map[string]string
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.service.GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Delete handles DELETE /api/projects/:id. Requires the manager role.
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  statusResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteProject(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "deleted"})
}
