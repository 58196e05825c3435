package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nexaboard/nexaboard/internal/core/domain"
	"github.com/nexaboard/nexaboard/internal/core/ports"
)

// MessageHandler handles HTTP requests for the team feed.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

type createMessageRequest struct {
	Content     string `json:"content"      validate:"required"`
	Type        string `json:"type"         validate:"omitempty,oneof=message decision announcement"`
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
}

// Create handles POST /api/messages. Sender identity comes from the
// session claims, never from the body.
//
// @Summary      Post a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createMessageRequest  true  "Message"
// @Success      201   {object}  domain.Message
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/messages [post]
func (h *MessageHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	msg, err := h.service.CreateMessage(c.Request().Context(), ports.CreateMessageInput{
		SenderID:    claims.UserID,
		SenderName:  claims.Name,
		SenderRole:  claims.Role,
		Content:     req.Content,
		Type:        domain.MessageType(req.Type),
		ProjectID:   req.ProjectID,
		ProjectName: req.ProjectName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, msg)
}

// List handles GET /api/messages, newest first.
//
// @Summary      List messages
// @Tags         messages
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}  domain.Message
// @Router       /api/messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	messages, err := h.service.ListMessages(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messages)
}

// ByProject handles GET /api/messages/project/:projectId.
//
// @Summary      List a project's messages
// @Tags         messages
// @Produce      json
// @Security     CookieAuth
// @Param        projectId  path     string  true  "Project id"
// @Success      200        {array}  domain.Message
// @Router       /api/messages/project/{projectId} [get]
func (h *MessageHandler) ByProject(c echo.Context) error {
	messages, err := h.service.ListProjectMessages(c.Request().Context(), c.Param("projectId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messages)
}
