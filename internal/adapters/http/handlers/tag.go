package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naadamki/quotehub/internal/adapters/http/dto"
	"github.com/naadamki/quotehub/internal/app"
	"github.com/naadamki/quotehub/internal/domain"
)

// TagHandler handles tag-related HTTP endpoints.
type TagHandler struct {
	catalog *app.CatalogService
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(catalog *app.CatalogService) *TagHandler {
	return &TagHandler{catalog: catalog}
}

// TagRequest is the HTTP request body for creating or updating a tag.
type TagRequest struct {
	Name string `json:"name" validate:"required,notempty"`
}

// TagResponse is the HTTP response structure for a tag.
type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func toTagResponse(t *domain.Tag) *TagResponse {
	return &TagResponse{ID: t.ID, Name: t.Name}
}

func toTagResponses(tags []domain.Tag) []TagResponse {
	out := make([]TagResponse, len(tags))
	for i := range tags {
		out[i] = *toTagResponse(&tags[i])
	}

	return out
}

// CreateTag handles POST /api/v1/tags.
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req TagRequest
	if !bindBody(c, &req) {
		return
	}

	tag, err := h.catalog.CreateTag(c.Request.Context(), domain.Tag{Name: req.Name})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTagResponse(tag))
}

// GetTag handles GET /api/v1/tags/:id.
func (h *TagHandler) GetTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tag, err := h.catalog.GetTag(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTagResponse(tag))
}

// ListTags handles GET /api/v1/tags.
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.catalog.ListTags(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTagResponses(tags))
}

// UpdateTag handles PUT /api/v1/tags/:id.
func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req TagRequest
	if !bindBody(c, &req) {
		return
	}

	tag, err := h.catalog.UpdateTag(c.Request.Context(), domain.Tag{ID: id, Name: req.Name})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTagResponse(tag))
}

// DeleteTag handles DELETE /api/v1/tags/:id.
func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteTag(c.Request.Context(), id); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterTagRoutes registers tag routes on the given router group.
func (h *TagHandler) RegisterTagRoutes(rg *gin.RouterGroup) {
	tags := rg.Group("/tags")
	tags.POST("", h.CreateTag)
	tags.GET("", h.ListTags)
	tags.GET("/:id", h.GetTag)
	tags.PUT("/:id", h.UpdateTag)
	tags.DELETE("/:id", h.DeleteTag)
}
