package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naadamki/quotehub/internal/adapters/http/dto"
	"github.com/naadamki/quotehub/internal/app"
	"github.com/naadamki/quotehub/internal/domain"
)

// CategoryHandler handles category-related HTTP endpoints.
type CategoryHandler struct {
	catalog *app.CatalogService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(catalog *app.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

// CategoryRequest is the HTTP request body for creating or updating a category.
type CategoryRequest struct {
	Name     string   `json:"name" validate:"required,notempty"`
	Keywords []string `json:"keywords"`
}

// CategoryResponse is the HTTP response structure for a category.
type CategoryResponse struct {
	ID       uint     `json:"id"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords,omitempty"`
}

func toCategoryResponse(c *domain.Category) *CategoryResponse {
	return &CategoryResponse{ID: c.ID, Name: c.Name, Keywords: c.Keywords}
}

func toCategoryResponses(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = *toCategoryResponse(&categories[i])
	}

	return out
}

// CreateCategory handles POST /api/v1/categories.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if !bindBody(c, &req) {
		return
	}

	category, err := h.catalog.CreateCategory(c.Request.Context(), domain.Category{
		Name:     req.Name,
		Keywords: req.Keywords,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// GetCategory handles GET /api/v1/categories/:id.
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	category, err := h.catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCategoryResponse(category))
}

// ListCategories handles GET /api/v1/categories.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCategoryResponses(categories))
}

// UpdateCategory handles PUT /api/v1/categories/:id.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if !bindBody(c, &req) {
		return
	}

	category, err := h.catalog.UpdateCategory(c.Request.Context(), domain.Category{
		ID:       id,
		Name:     req.Name,
		Keywords: req.Keywords,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCategoryResponse(category))
}

// DeleteCategory handles DELETE /api/v1/categories/:id.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterCategoryRoutes registers category routes on the given router group.
func (h *CategoryHandler) RegisterCategoryRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	categories.POST("", h.CreateCategory)
	categories.GET("", h.ListCategories)
	categories.GET("/:id", h.GetCategory)
	categories.PUT("/:id", h.UpdateCategory)
	categories.DELETE("/:id", h.DeleteCategory)
}
