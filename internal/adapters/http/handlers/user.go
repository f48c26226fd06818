package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naadamki/quotehub/internal/adapters/http/dto"
	"github.com/naadamki/quotehub/internal/app"
	"github.com/naadamki/quotehub/internal/domain"
)

// UserHandler handles user and favorites HTTP endpoints.
type UserHandler struct {
	catalog *app.CatalogService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(catalog *app.CatalogService) *UserHandler {
	return &UserHandler{catalog: catalog}
}

// UserRequest is the HTTP request body for creating or updating a user.
type UserRequest struct {
	Name  string `json:"name" validate:"required,min=3"`
	Email string `json:"email" validate:"required,email"`
}

// UserResponse is the HTTP response structure for a user.
type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProfileResponse aggregates a user's favorites with the authors and
// tags those favorites carry.
type ProfileResponse struct {
	User    UserResponse     `json:"user"`
	Quotes  []QuoteResponse  `json:"quotes"`
	Authors []AuthorResponse `json:"authors"`
	Tags    []TagResponse    `json:"tags"`
}

func toUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// CreateUser handles POST /api/v1/users.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req UserRequest
	if !bindBody(c, &req) {
		return
	}

	user, err := h.catalog.CreateUser(c.Request.Context(), domain.User{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// GetUser handles GET /api/v1/users/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.catalog.GetUser(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateUser handles PUT /api/v1/users/:id.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UserRequest
	if !bindBody(c, &req) {
		return
	}

	user, err := h.catalog.UpdateUser(c.Request.Context(), domain.User{
		ID:    id,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// DeleteUser handles DELETE /api/v1/users/:id.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteUser(c.Request.Context(), id); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListFavorites handles GET /api/v1/users/:id/favorites.
func (h *UserHandler) ListFavorites(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	quotes, err := h.catalog.ListFavorites(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponses(quotes))
}

// AddFavorite handles PUT /api/v1/users/:id/favorites/:quoteId.
func (h *UserHandler) AddFavorite(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	quoteID, ok := pathID(c, "quoteId")
	if !ok {
		return
	}

	if err := h.catalog.AddFavorite(c.Request.Context(), id, quoteID); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveFavorite handles DELETE /api/v1/users/:id/favorites/:quoteId.
func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	quoteID, ok := pathID(c, "quoteId")
	if !ok {
		return
	}

	if err := h.catalog.RemoveFavorite(c.Request.Context(), id, quoteID); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetProfile handles GET /api/v1/users/:id/profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	profile, err := h.catalog.Profile(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	resp := ProfileResponse{
		User:    *toUserResponse(&profile.User),
		Quotes:  toQuoteResponses(profile.Quotes),
		Tags:    toTagResponses(profile.Tags),
		Authors: make([]AuthorResponse, len(profile.Authors)),
	}

	for i := range profile.Authors {
		resp.Authors[i] = *toAuthorResponse(&profile.Authors[i])
	}

	c.JSON(http.StatusOK, resp)
}

// RegisterUserRoutes registers user routes on the given router group.
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.POST("", h.CreateUser)
	users.GET("/:id", h.GetUser)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)
	users.GET("/:id/favorites", h.ListFavorites)
	users.PUT("/:id/favorites/:quoteId", h.AddFavorite)
	users.DELETE("/:id/favorites/:quoteId", h.RemoveFavorite)
	users.GET("/:id/profile", h.GetProfile)
}
