package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fanlens/internal/domain"
	"fanlens/internal/service"
)

// AssessmentHandler mantiene dependencias para los endpoints de evaluacion.
type AssessmentHandler struct {
	logger      *zap.Logger
	assessments *service.AssessmentService
}

func NewAssessmentHandler(logger *zap.Logger, assessments *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{logger: logger, assessments: assessments}
}

// GetQuestions maneja GET /assessment/:subjectID/questions.
func (h *AssessmentHandler) GetQuestions(c *gin.Context) {
	subjectID := c.Param("subjectID")

	cfg := service.SelectionConfig{}
	if raw := c.Query("max_items"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			cfg.MaxItems = parsed
		}
	}

	result, err := h.assessments.StartSession(c.Request.Context(), subjectID, cfg)
	if err != nil {
		if errors.Is(err, service.ErrAssessmentInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subject"})
			return
		}
		h.logger.Error("start session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":                result.Items,
		"estimated_confidence": result.EstimatedConfidence,
		"estimated_duration_s": int(result.EstimatedDuration.Seconds()),
	})
}

// SubmitResponses maneja POST /assessment/:subjectID/responses.
func (h *AssessmentHandler) SubmitResponses(c *gin.Context) {
	subjectID := c.Param("subjectID")

	var req struct {
		Responses []struct {
			ItemID   string `json:"item_id" binding:"required"`
			OptionID string `json:"option_id" binding:"required"`
		} `json:"responses" binding:"required"`
		Aux *struct {
			Scheme string `json:"scheme"`
			Label  string `json:"label"`
		} `json:"aux,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submit responses request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	responses := make([]domain.ResponseEvent, 0, len(req.Responses))
	for _, r := range req.Responses {
		responses = append(responses, domain.ResponseEvent{ItemID: r.ItemID, OptionID: r.OptionID})
	}

	var aux *domain.AuxTyping
	if req.Aux != nil {
		aux = &domain.AuxTyping{Scheme: req.Aux.Scheme, Label: req.Aux.Label}
	}

	profile, assignment, err := h.assessments.SubmitResponses(c.Request.Context(), subjectID, responses, aux)
	if err != nil {
		if errors.Is(err, service.ErrAssessmentInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		h.logger.Error("submit responses failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not score responses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":    profile,
		"assignment": assignment,
	})
}
