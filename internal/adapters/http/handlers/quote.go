package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/naadamki/quotehub/internal/adapters/http/dto"
	"github.com/naadamki/quotehub/internal/app"
	"github.com/naadamki/quotehub/internal/domain"
)

// QuoteHandler handles quote-related HTTP endpoints.
type QuoteHandler struct {
	catalog *app.CatalogService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(catalog *app.CatalogService) *QuoteHandler {
	return &QuoteHandler{catalog: catalog}
}

// QuoteRequest is the HTTP request body for creating or updating a quote.
type QuoteRequest struct {
	Text     string `json:"text" validate:"required,notempty"`
	Source   string `json:"source"`
	AuthorID uint   `json:"authorId" validate:"required"`
}

// QuoteResponse is the HTTP response structure for a quote.
type QuoteResponse struct {
	ID       uint   `json:"id"`
	Text     string `json:"text"`
	Source   string `json:"source,omitempty"`
	AuthorID uint   `json:"authorId"`
}

func toQuoteResponse(q *domain.Quote) *QuoteResponse {
	return &QuoteResponse{
		ID:       q.ID,
		Text:     q.Text,
		Source:   q.Source,
		AuthorID: q.AuthorID,
	}
}

func toQuoteResponses(quotes []domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, len(quotes))
	for i := range quotes {
		out[i] = *toQuoteResponse(&quotes[i])
	}

	return out
}

// CreateQuote handles POST /api/v1/quotes.
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req QuoteRequest
	if !bindBody(c, &req) {
		return
	}

	quote, err := h.catalog.CreateQuote(c.Request.Context(), domain.Quote{
		Text:     req.Text,
		Source:   req.Source,
		AuthorID: req.AuthorID,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toQuoteResponse(quote))
}

// GetQuote handles GET /api/v1/quotes/:id.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	quote, err := h.catalog.GetQuote(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// ListQuotes handles GET /api/v1/quotes with cursor pagination.
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		dto.HandleError(c, domain.NewValidationError("", "pagination parameters are not valid"))
		return
	}

	var afterID uint

	cursor, err := page.DecodeCursor()
	switch {
	case err == nil:
		parsed, parseErr := strconv.ParseUint(cursor.ID, 10, 32)
		if parseErr != nil {
			dto.HandleError(c, domain.NewValidationError("cursor", "cursor is not valid"))
			return
		}

		afterID = uint(parsed)
	case err == dto.ErrNoCursor:
		// First page.
	default:
		dto.HandleError(c, domain.NewValidationError("cursor", "cursor is not valid"))
		return
	}

	limit := page.GetLimit()

	// Fetch one extra record to detect whether another page follows.
	quotes, err := h.catalog.ListQuotes(c.Request.Context(), afterID, limit+1)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	resp := dto.NewPaginatedResponse(toQuoteResponses(quotes), limit, func(q QuoteResponse) *dto.CursorData {
		id := strconv.FormatUint(uint64(q.ID), 10)
		return dto.NewCursor("id", id, id)
	})

	c.JSON(http.StatusOK, resp)
}

// UpdateQuote handles PUT /api/v1/quotes/:id.
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req QuoteRequest
	if !bindBody(c, &req) {
		return
	}

	quote, err := h.catalog.UpdateQuote(c.Request.Context(), domain.Quote{
		ID:       id,
		Text:     req.Text,
		Source:   req.Source,
		AuthorID: req.AuthorID,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// DeleteQuote handles DELETE /api/v1/quotes/:id.
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteQuote(c.Request.Context(), id); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListQuoteTags handles GET /api/v1/quotes/:id/tags.
func (h *QuoteHandler) ListQuoteTags(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tags, err := h.catalog.QuoteTags(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTagResponses(tags))
}

// AttachTag handles PUT /api/v1/quotes/:id/tags/:tagId.
func (h *QuoteHandler) AttachTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tagID, ok := pathID(c, "tagId")
	if !ok {
		return
	}

	if err := h.catalog.TagQuote(c.Request.Context(), id, tagID); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DetachTag handles DELETE /api/v1/quotes/:id/tags/:tagId.
func (h *QuoteHandler) DetachTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tagID, ok := pathID(c, "tagId")
	if !ok {
		return
	}

	if err := h.catalog.UntagQuote(c.Request.Context(), id, tagID); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListQuoteCategories handles GET /api/v1/quotes/:id/categories.
func (h *QuoteHandler) ListQuoteCategories(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	categories, err := h.catalog.QuoteCategories(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCategoryResponses(categories))
}

// AttachCategory handles PUT /api/v1/quotes/:id/categories/:categoryId.
func (h *QuoteHandler) AttachCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	categoryID, ok := pathID(c, "categoryId")
	if !ok {
		return
	}

	if err := h.catalog.CategorizeQuote(c.Request.Context(), id, categoryID); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DetachCategory handles DELETE /api/v1/quotes/:id/categories/:categoryId.
func (h *QuoteHandler) DetachCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	categoryID, ok := pathID(c, "categoryId")
	if !ok {
		return
	}

	if err := h.catalog.UncategorizeQuote(c.Request.Context(), id, categoryID); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterQuoteRoutes registers quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.POST("", h.CreateQuote)
	quotes.GET("", h.ListQuotes)
	quotes.GET("/:id", h.GetQuote)
	quotes.PUT("/:id", h.UpdateQuote)
	quotes.DELETE("/:id", h.DeleteQuote)
	quotes.GET("/:id/tags", h.ListQuoteTags)
	quotes.PUT("/:id/tags/:tagId", h.AttachTag)
	quotes.DELETE("/:id/tags/:tagId", h.DetachTag)
	quotes.GET("/:id/categories", h.ListQuoteCategories)
	quotes.PUT("/:id/categories/:categoryId", h.AttachCategory)
	quotes.DELETE("/:id/categories/:categoryId", h.DetachCategory)
}
