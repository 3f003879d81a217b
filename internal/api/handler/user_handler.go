package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/vanguard/directory/internal/api/middleware"
	"github.com/vanguard/directory/internal/core/domain"
	"github.com/vanguard/directory/internal/core/ports"
)

// UserHandler handles the user directory and the session endpoint.
type UserHandler struct {
	service ports.UserService
	paging  Paging
}

func NewUserHandler(service ports.UserService, paging Paging) *UserHandler {
	return &UserHandler{service: service, paging: paging}
}

// List handles GET /api/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        cursor  query     string  false  "Opaque cursor"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  envelope
// @Failure      400     {object}  errorBody
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, err := h.service.List(c.Request().Context(), c.QueryParam("cursor"), h.paging.limit(c.QueryParam("limit")))
	if err != nil {
		return err
	}
	return ok(c, newPageResponse(page.Items, page.Next))
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorBody
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	u, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, u)
}

// Create handles POST /api/users.
//
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User"
// @Success      200   {object}  envelope
// @Failure      400   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewInputError("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.NewInputError(err.Error())
	}

	u, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		ID:        req.ID,
		Name:      req.Name,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
		Role:      req.Role,
	})
	if err != nil {
		return err
	}
	return ok(c, u)
}

// Session handles GET /api/session.
//
// @Summary      Current identity
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  errorBody
// @Router       /api/session [get]
func (h *UserHandler) Session(c echo.Context) error {
	return ok(c, middleware.ActorFrom(c))
}
