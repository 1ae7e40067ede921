package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cardslip/internal/domain/models"
	"cardslip/internal/service/catalog"
)

// SearchHandler serves catalog queries.
type SearchHandler struct {
	catalog *catalog.Service
	logger  *zap.Logger
}

// NewSearchHandler constructs the HTTP handler adapter for search.
func NewSearchHandler(svc *catalog.Service, logger *zap.Logger) *SearchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchHandler{catalog: svc, logger: logger}
}

// Search filters the catalog by the query parameter and retains the
// result set in the caller's session so selections can reference it.
func (h *SearchHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "search query is required"})
		return
	}

	cards, err := h.catalog.Search(c.Request.Context(), query)
	if err != nil {
		switch {
		case models.IsSchema(err):
			h.logger.Error("catalog schema unusable", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "number column not found"})
		default:
			h.logger.Error("catalog search failed", zap.String("query", query), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog is unavailable"})
		}
		return
	}

	sess := sessionFrom(c)
	version := sess.SetResults(cards)

	c.JSON(http.StatusOK, models.SearchResponse{Version: version, Cards: cards})
}

// Refresh forces a re-read of the catalog sheet.
func (h *SearchHandler) Refresh(c *gin.Context) {
	snap, err := h.catalog.Refresh(c.Request.Context())
	if err != nil {
		h.logger.Error("catalog refresh failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog is unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": len(snap.Rows), "fetchedAt": snap.FetchedAt})
}
