package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fanlens/internal/domain"
	"fanlens/internal/service"
)

// SignalHandler mantiene dependencias para endpoints de senales y visitas.
type SignalHandler struct {
	logger  *zap.Logger
	signals *service.SignalService
}

func NewSignalHandler(logger *zap.Logger, signals *service.SignalService) *SignalHandler {
	return &SignalHandler{logger: logger, signals: signals}
}

// RecordSignal maneja POST /signals.
func (h *SignalHandler) RecordSignal(c *gin.Context) {
	var req struct {
		SubjectID string  `json:"subject_id" binding:"required"`
		TargetID  string  `json:"target_id" binding:"required"`
		Kind      string  `json:"kind" binding:"required"`
		ContentID string  `json:"content_id"`
		Weight    float64 `json:"weight"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid record signal request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	signal, err := h.signals.RecordSignal(c.Request.Context(), req.SubjectID, req.TargetID, domain.SignalKind(req.Kind), req.ContentID, req.Weight)
	if err != nil {
		if errors.Is(err, service.ErrSignalInvalidInput) || errors.Is(err, service.ErrUnknownSignalKind) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("record signal failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record signal"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"signal": signal})
}

// StartVisit maneja POST /visits.
func (h *SignalHandler) StartVisit(c *gin.Context) {
	var req struct {
		SubjectID string `json:"subject_id" binding:"required"`
		TargetID  string `json:"target_id"`
		Origin    string `json:"origin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid start visit request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	visit, err := h.signals.StartVisit(c.Request.Context(), req.SubjectID, req.TargetID, domain.VisitOrigin(req.Origin))
	if err != nil {
		if errors.Is(err, service.ErrSignalInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		h.logger.Error("start visit failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start visit"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"visit": visit})
}

// EndVisit maneja POST /visits/:visitID/end.
func (h *SignalHandler) EndVisit(c *gin.Context) {
	visitID := c.Param("visitID")
	if err := h.signals.EndVisit(c.Request.Context(), visitID); err != nil {
		if errors.Is(err, service.ErrSignalInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid visit id"})
			return
		}
		h.logger.Error("end visit failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not end visit"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ended": true})
}

// GetDashboard maneja GET /targets/:targetID/dashboard.
func (h *SignalHandler) GetDashboard(c *gin.Context) {
	targetID := c.Param("targetID")

	window := 7 * 24 * time.Hour
	if raw := c.Query("days"); raw != "" {
		if days, err := strconv.Atoi(raw); err == nil && days > 0 {
			window = time.Duration(days) * 24 * time.Hour
		}
	}

	stats, err := h.signals.TargetDashboard(c.Request.Context(), targetID, window)
	if err != nil {
		if errors.Is(err, service.ErrSignalInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target"})
			return
		}
		h.logger.Error("dashboard failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": stats})
}
