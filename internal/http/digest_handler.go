package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fanlens/internal/service"
)

// DigestHandler expone el envio manual del resumen semanal de un target.
type DigestHandler struct {
	logger  *zap.Logger
	digests *service.DigestService
}

func NewDigestHandler(logger *zap.Logger, digests *service.DigestService) *DigestHandler {
	return &DigestHandler{logger: logger, digests: digests}
}

type sendDigestRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendDigest maneja POST /targets/:targetID/digest.
func (h *DigestHandler) SendDigest(c *gin.Context) {
	targetID := c.Param("targetID")

	var req sendDigestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.digests.SendTargetDigest(c.Request.Context(), targetID, req.Email); err != nil {
		h.logger.Error("send digest failed", zap.String("target_id", targetID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send digest"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}
