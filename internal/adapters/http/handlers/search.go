package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naadamki/quotehub/internal/adapters/http/dto"
	"github.com/naadamki/quotehub/internal/app"
)

// SearchHandler handles search HTTP endpoints.
type SearchHandler struct {
	search *app.SearchService
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(search *app.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// SearchRequest is the HTTP request body for an advanced search.
// Tags and categories match any of the given names unless the
// corresponding matchAll flag is set.
type SearchRequest struct {
	Author             string   `json:"author"`
	Text               string   `json:"text"`
	Tags               []string `json:"tags"`
	MatchAllTags       bool     `json:"matchAllTags"`
	Categories         []string `json:"categories"`
	MatchAllCategories bool     `json:"matchAllCategories"`
}

// Search handles POST /api/v1/search. Criteria intersect; an empty
// request matches nothing.
func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if !bindBody(c, &req) {
		return
	}

	quotes, err := h.search.Advanced(c.Request.Context(), app.SearchCriteria{
		Author:             req.Author,
		Text:               req.Text,
		Tags:               req.Tags,
		MatchAllTags:       req.MatchAllTags,
		Categories:         req.Categories,
		MatchAllCategories: req.MatchAllCategories,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponses(quotes))
}

// SearchAll handles GET /api/v1/search?q=fragment, matching quote
// text, author names, and tag names.
func (h *SearchHandler) SearchAll(c *gin.Context) {
	fragment := c.Query("q")

	quotes, err := h.search.SearchAll(c.Request.Context(), fragment)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponses(quotes))
}

// RegisterSearchRoutes registers search routes on the given router group.
func (h *SearchHandler) RegisterSearchRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.SearchAll)
	rg.POST("/search", h.Search)
}
