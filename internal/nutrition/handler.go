package nutrition

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	searcher Searcher
}

func NewHandler(searcher Searcher) *Handler {
	return &Handler{searcher: searcher}
}

// GET /api/search?query=
func (h *Handler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.JSON(http.StatusOK, []string{})
		return
	}

	names, err := h.searcher.Search(c.Request.Context(), query)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusOK, []string{})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "food search failed",
		})
		return
	}

	c.JSON(http.StatusOK, names)
}
