package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cardslip/internal/domain/models"
	"cardslip/pkg/clients/images"
)

// ImageHandler proxies card images through the backend.
type ImageHandler struct {
	client *images.Client
	logger *zap.Logger
}

// NewImageHandler constructs the image proxy handler.
func NewImageHandler(client *images.Client, logger *zap.Logger) *ImageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageHandler{client: client, logger: logger}
}

// Proxy fetches the image at the url parameter and re-serves it.
func (h *ImageHandler) Proxy(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image url is required"})
		return
	}

	img, err := h.client.Fetch(c.Request.Context(), rawURL)
	if err != nil {
		if models.IsValidation(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		h.logger.Warn("image fetch failed", zap.String("url", rawURL), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "image is unavailable"})
		return
	}

	c.Data(http.StatusOK, img.ContentType, img.Body)
}
