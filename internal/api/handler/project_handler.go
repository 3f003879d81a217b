package handler

import (
	"io"

	"github.com/labstack/echo/v4"

	"github.com/vanguard/directory/internal/api/middleware"
	"github.com/vanguard/directory/internal/core/domain"
	"github.com/vanguard/directory/internal/core/ports"
)

// ProjectHandler handles HTTP requests for the project directory.
type ProjectHandler struct {
	service ports.ProjectService
	paging  Paging
}

func NewProjectHandler(service ports.ProjectService, paging Paging) *ProjectHandler {
	return &ProjectHandler{service: service, paging: paging}
}

// List handles GET /api/projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Param        cursor   query     string  false  "Opaque cursor from a previous page"
// @Param        limit    query     int     false  "Page size"
// @Param        ownerId  query     string  false  "Keep only projects of this owner (applied to the fetched page)"
// @Success      200      {object}  envelope
// @Failure      400      {object}  errorBody
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	page, err := h.service.List(c.Request().Context(), ports.ListProjectsInput{
		Cursor:  c.QueryParam("cursor"),
		Limit:   h.paging.limit(c.QueryParam("limit")),
		OwnerID: c.QueryParam("ownerId"),
	})
	if err != nil {
		return err
	}
	return ok(c, newPageResponse(page.Items, page.Next))
}

// Get handles GET /api/projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorBody
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, p)
}

// Create handles POST /api/projects.
//
// @Summary      Submit a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      createProjectRequest  true  "Project"
// @Success      200   {object}  envelope
// @Failure      400   {object}  errorBody
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewInputError("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.NewInputError("Missing required fields: title, tagline, url")
	}

	p, err := h.service.Create(c.Request().Context(), ports.CreateProjectInput{
		Title:         req.Title,
		Tagline:       req.Tagline,
		Description:   req.Description,
		URL:           req.URL,
		LogoURL:       req.LogoURL,
		ScreenshotURL: req.ScreenshotURL,
		Tags:          req.Tags,
		OwnerID:       req.OwnerID,
	})
	if err != nil {
		return err
	}
	return ok(c, p)
}

// Update handles PUT /api/projects/:id.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Project id"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  envelope
// @Failure      400   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewInputError("invalid payload")
	}

	p, err := h.service.Update(c.Request().Context(), middleware.ActorFrom(c), c.Param("id"), ports.ProjectUpdate{
		Title:         req.Title,
		Tagline:       req.Tagline,
		Description:   req.Description,
		URL:           req.URL,
		LogoURL:       req.LogoURL,
		ScreenshotURL: req.ScreenshotURL,
		Tags:          req.Tags,
		Votes:         req.Votes,
	})
	if err != nil {
		return err
	}
	return ok(c, p)
}

// Vote handles POST /api/projects/:id/vote.
//
// @Summary      Upvote a project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorBody
// @Router       /api/projects/{id}/vote [post]
func (h *ProjectHandler) Vote(c echo.Context) error {
	p, err := h.service.Vote(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, p)
}

// Delete handles DELETE /api/projects/:id.
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  envelope
// @Failure      403  {object}  errorBody
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	deleted, err := h.service.Delete(c.Request().Context(), middleware.ActorFrom(c), id)
	if err != nil {
		return err
	}
	return ok(c, deleteResponse{ID: id, Deleted: deleted})
}

// BulkDelete handles POST /api/projects/bulk-delete.
//
// @Summary      Delete many projects
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      bulkDeleteRequest  true  "Ids to delete"
// @Success      200   {object}  envelope
// @Failure      400   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Router       /api/projects/bulk-delete [post]
func (h *ProjectHandler) BulkDelete(c echo.Context) error {
	var req bulkDeleteRequest
	if err := c.Bind(&req); err != nil || req.IDs == nil {
		return domain.NewInputError("Invalid IDs array")
	}

	n, err := h.service.BulkDelete(c.Request().Context(), req.IDs)
	if err != nil {
		return err
	}
	return ok(c, countResponse{Count: n})
}

// Export handles GET /api/projects/export.
//
// @Summary      Export projects
// @Tags         admin
// @Produce      json
// @Success      200  {object}  envelope
// @Failure      403  {object}  errorBody
// @Router       /api/projects/export [get]
func (h *ProjectHandler) Export(c echo.Context) error {
	items, err := h.service.Export(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.Project{}
	}
	return ok(c, items)
}

// Import handles POST /api/projects/import.
//
// @Summary      Import projects
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string  false  "Replays the first result for a repeated key"
// @Success      200              {object}  envelope
// @Failure      400              {object}  errorBody
// @Failure      403              {object}  errorBody
// @Router       /api/projects/import [post]
func (h *ProjectHandler) Import(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return domain.NewInputError("Import failed: " + err.Error())
	}

	res, err := h.service.Import(c.Request().Context(), ports.ImportInput{
		Payload:        body,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}
	return ok(c, countResponse{Count: res.Count, Replayed: res.Replayed})
}
