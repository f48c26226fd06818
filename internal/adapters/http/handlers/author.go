package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naadamki/quotehub/internal/adapters/http/dto"
	"github.com/naadamki/quotehub/internal/app"
	"github.com/naadamki/quotehub/internal/domain"
)

// AuthorHandler handles author-related HTTP endpoints.
type AuthorHandler struct {
	catalog *app.CatalogService
}

// NewAuthorHandler creates a new author handler.
func NewAuthorHandler(catalog *app.CatalogService) *AuthorHandler {
	return &AuthorHandler{catalog: catalog}
}

// AuthorRequest is the HTTP request body for creating or updating an author.
type AuthorRequest struct {
	Name string `json:"name" validate:"required,notempty"`
}

// AuthorResponse is the HTTP response structure for an author.
type AuthorResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func toAuthorResponse(a *domain.Author) *AuthorResponse {
	return &AuthorResponse{ID: a.ID, Name: a.Name}
}

// CreateAuthor handles POST /api/v1/authors.
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req AuthorRequest
	if !bindBody(c, &req) {
		return
	}

	author, err := h.catalog.CreateAuthor(c.Request.Context(), domain.Author{Name: req.Name})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toAuthorResponse(author))
}

// GetAuthor handles GET /api/v1/authors/:id.
func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	author, err := h.catalog.GetAuthor(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAuthorResponse(author))
}

// ListAuthors handles GET /api/v1/authors.
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	authors, err := h.catalog.ListAuthors(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	out := make([]AuthorResponse, len(authors))
	for i := range authors {
		out[i] = *toAuthorResponse(&authors[i])
	}

	c.JSON(http.StatusOK, out)
}

// UpdateAuthor handles PUT /api/v1/authors/:id.
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AuthorRequest
	if !bindBody(c, &req) {
		return
	}

	author, err := h.catalog.UpdateAuthor(c.Request.Context(), domain.Author{ID: id, Name: req.Name})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAuthorResponse(author))
}

// DeleteAuthor handles DELETE /api/v1/authors/:id.
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteAuthor(c.Request.Context(), id); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterAuthorRoutes registers author routes on the given router group.
func (h *AuthorHandler) RegisterAuthorRoutes(rg *gin.RouterGroup) {
	authors := rg.Group("/authors")
	authors.POST("", h.CreateAuthor)
	authors.GET("", h.ListAuthors)
	authors.GET("/:id", h.GetAuthor)
	authors.PUT("/:id", h.UpdateAuthor)
	authors.DELETE("/:id", h.DeleteAuthor)
}
