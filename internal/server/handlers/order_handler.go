package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cardslip/internal/domain/models"
)

// OrderHandler exposes the delivery-slip operations over HTTP. All
// state lives in the session resolved by the middleware.
type OrderHandler struct {
	logger *zap.Logger
}

// NewOrderHandler constructs the HTTP handler adapter for order edits.
func NewOrderHandler(logger *zap.Logger) *OrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderHandler{logger: logger}
}

// UpdateSelection dials the pending quantity for one displayed card.
func (h *OrderHandler) UpdateSelection(c *gin.Context) {
	var req models.SelectionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid selection payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := sessionFrom(c).SetPending(req.Version, req.Position, req.Quantity); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CommitSelection copies the pending quantity into the slip as a new line.
func (h *OrderHandler) CommitSelection(c *gin.Context) {
	var req models.CommitSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid commit payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	line, err := sessionFrom(c).Commit(req.Version, req.Position)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, line)
}

// AddManual appends a hand-entered line to the slip.
func (h *OrderHandler) AddManual(c *gin.Context) {
	var req models.ManualLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid manual line payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	line, err := sessionFrom(c).AppendManual(req.Name, req.Number, req.Rarity, req.Price, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, line)
}

// EditPrice replaces the price of the line at :index.
func (h *OrderHandler) EditPrice(c *gin.Context) {
	index, ok := h.lineIndex(c)
	if !ok {
		return
	}

	var req models.PriceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Price == nil {
		h.logger.Warn("invalid price payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := sessionFrom(c).EditPrice(index, *req.Price); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveLine deletes the line at :index.
func (h *OrderHandler) RemoveLine(c *gin.Context) {
	index, ok := h.lineIndex(c)
	if !ok {
		return
	}

	if err := sessionFrom(c).RemoveLine(index); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Clear empties the whole slip.
func (h *OrderHandler) Clear(c *gin.Context) {
	sessionFrom(c).Clear()
	c.Status(http.StatusNoContent)
}

// View returns the editable projection of the slip.
func (h *OrderHandler) View(c *gin.Context) {
	c.JSON(http.StatusOK, sessionFrom(c).View())
}

// Print returns the fixed print projection of the slip.
func (h *OrderHandler) Print(c *gin.Context) {
	c.JSON(http.StatusOK, sessionFrom(c).PrintSheet())
}

func (h *OrderHandler) lineIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line index"})
		return 0, false
	}
	return index, true
}

func (h *OrderHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case models.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.logger.Error("order operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
