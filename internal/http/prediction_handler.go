package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fanlens/internal/service"
)

// PredictionHandler mantiene dependencias para endpoints de prediccion.
type PredictionHandler struct {
	logger      *zap.Logger
	predictions *service.PredictionService
}

func NewPredictionHandler(logger *zap.Logger, predictions *service.PredictionService) *PredictionHandler {
	return &PredictionHandler{logger: logger, predictions: predictions}
}

// GetPrediction maneja GET /predictions/:subjectID/:targetID.
// ?force=true saltea el cache y recomputa.
func (h *PredictionHandler) GetPrediction(c *gin.Context) {
	subjectID := c.Param("subjectID")
	targetID := c.Param("targetID")
	force := c.Query("force") == "true"

	pred, cached, err := h.predictions.Get(c.Request.Context(), subjectID, targetID, force)
	if err != nil {
		if errors.Is(err, service.ErrPredictionInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pair"})
			return
		}
		h.logger.Error("prediction failed", zap.Error(err),
			zap.String("subject_id", subjectID), zap.String("target_id", targetID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute prediction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prediction": pred,
		"cached":     cached,
	})
}
