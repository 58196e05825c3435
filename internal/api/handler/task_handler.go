package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nexaboard/nexaboard/internal/core/domain"
	"github.com/nexaboard/nexaboard/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	ProjectID   string    `json:"project_id"  validate:"required"`
	Title       string    `json:"title"       validate:"required"`
	Description string    `json:"description"`
	Status      string    `json:"status"      validate:"omitempty,oneof=todo in_progress review done"`
	Priority    string    `json:"priority"    validate:"omitempty,oneof=low medium high"`
	AssigneeID  string    `json:"assignee_id"`
	DueDate     time.Time `json:"due_date"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"      validate:"omitempty,oneof=todo in_progress review done"`
	Priority    *string    `json:"priority"    validate:"omitempty,oneof=low medium high"`
	AssigneeID  *string    `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
}

// Create handles POST /api/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	task, err := h.service.CreateTask(c.Request().Context(), ports.CreateTaskInput{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

// ByProject handles GET /api/tasks/project/:projectId — one board
// column set.
//
// @Summary      List a project's tasks
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Param        projectId  path     string  true  "Project id"
// @Success      200        {array}  domain.Task
// @Router       /api/tasks/project/{projectId} [get]
func (h *TaskHandler) ByProject(c echo.Context) error {
	tasks, err := h.service.ListProjectTasks(c.Request().Context(), c.Param("projectId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Mine handles GET /api/tasks/my-tasks?userId=.
//
// @Summary      List a user's tasks
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Param        userId  query     string  true  "Assignee user id"
// @Success      200     {array}   domain.Task
// @Failure      400     {object}  map[string]string
// @Router       /api/tasks/my-tasks [get]
func (h *TaskHandler) Mine(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "userId query parameter required"})
	}

	tasks, err := h.service.ListUserTasks(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Update handles PUT /api/tasks/:id with a partial update body.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  domain.Task
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	input := ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	task, err := h.service.UpdateTask(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateStatus handles PATCH /api/tasks/:id/status?status=, the
// drag-and-drop path of the kanban board.
//
// @Summary      Move a task to another column
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Param        id      path      string  true  "Task id"
// @Param        status  query     string  true  "Target column"  Enums(todo, in_progress, review, done)
// @Success      200     {object}  domain.Task
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /api/tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	status := c.QueryParam("status")
	if status == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "status query parameter required"})
	}

	task, err := h.service.UpdateTaskStatus(c.Request().Context(), c.Param("id"), domain.TaskStatus(status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  statusResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "deleted"})
}
