package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/vanguard/directory/internal/api/middleware"
	"github.com/vanguard/directory/internal/core/domain"
	"github.com/vanguard/directory/internal/core/ports"
)

// ChatHandler handles chat boards and their messages.
type ChatHandler struct {
	service ports.ChatService
	paging  Paging
}

func NewChatHandler(service ports.ChatService, paging Paging) *ChatHandler {
	return &ChatHandler{service: service, paging: paging}
}

// List handles GET /api/chats.
//
// @Summary      List chat boards
// @Tags         chats
// @Produce      json
// @Param        cursor  query     string  false  "Opaque cursor"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  envelope
// @Router       /api/chats [get]
func (h *ChatHandler) List(c echo.Context) error {
	page, err := h.service.List(c.Request().Context(), c.QueryParam("cursor"), h.paging.limit(c.QueryParam("limit")))
	if err != nil {
		return err
	}
	return ok(c, newPageResponse(page.Items, page.Next))
}

// Create handles POST /api/chats.
//
// @Summary      Open a chat board
// @Tags         chats
// @Accept       json
// @Produce      json
// @Param        body  body      createChatRequest  true  "Board"
// @Success      200   {object}  envelope
// @Failure      400   {object}  errorBody
// @Router       /api/chats [post]
func (h *ChatHandler) Create(c echo.Context) error {
	var req createChatRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewInputError("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.NewInputError(err.Error())
	}

	chat, err := h.service.Create(c.Request().Context(), req.Title)
	if err != nil {
		return err
	}
	return ok(c, chat)
}

// Messages handles GET /api/chats/:id/messages.
//
// @Summary      List messages of a board
// @Tags         chats
// @Produce      json
// @Param        id   path      string  true  "Chat id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorBody
// @Router       /api/chats/{id}/messages [get]
func (h *ChatHandler) Messages(c echo.Context) error {
	msgs, err := h.service.Messages(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, msgs)
}

// Send handles POST /api/chats/:id/messages.
//
// @Summary      Post a message
// @Tags         chats
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Chat id"
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      200   {object}  envelope
// @Failure      400   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /api/chats/{id}/messages [post]
func (h *ChatHandler) Send(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewInputError("invalid payload")
	}
	userID := req.UserID
	if userID == "" {
		userID = middleware.ActorFrom(c).ID
	}

	msg, err := h.service.Send(c.Request().Context(), c.Param("id"), userID, req.Text)
	if err != nil {
		return err
	}
	return ok(c, msg)
}
