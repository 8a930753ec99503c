package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fanlens/internal/repository"
)

// ProfileHandler mantiene dependencias para endpoints de perfil.
type ProfileHandler struct {
	logger      *zap.Logger
	estimates   repository.EstimateRepository
	assignments repository.AssignmentRepository
}

func NewProfileHandler(logger *zap.Logger, estimates repository.EstimateRepository, assignments repository.AssignmentRepository) *ProfileHandler {
	return &ProfileHandler{logger: logger, estimates: estimates, assignments: assignments}
}

// GetProfile maneja GET /profiles/:subjectID.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	subjectID := c.Param("subjectID")

	profile, err := h.estimates.GetBySubject(c.Request.Context(), subjectID)
	if err != nil {
		h.logger.Error("get profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	assignment, err := h.assignments.GetBySubject(c.Request.Context(), subjectID)
	if err != nil {
		h.logger.Error("get assignment failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load assignment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":    profile,
		"assignment": assignment,
	})
}

// GetSimilar maneja GET /profiles/:subjectID/similar.
func (h *ProfileHandler) GetSimilar(c *gin.Context) {
	subjectID := c.Param("subjectID")

	profile, err := h.estimates.GetBySubject(c.Request.Context(), subjectID)
	if err != nil {
		h.logger.Error("get profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	k := 5
	if raw := c.Query("k"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 50 {
			k = parsed
		}
	}

	similar, err := h.estimates.FindSimilar(c.Request.Context(), profile.Vector(), k+1)
	if err != nil {
		h.logger.Error("find similar failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not find similar profiles"})
		return
	}

	// El propio sujeto siempre es su vecino mas cercano; se filtra.
	filtered := similar[:0]
	for _, sp := range similar {
		if sp.SubjectID != subjectID {
			filtered = append(filtered, sp)
		}
	}
	if len(filtered) > k {
		filtered = filtered[:k]
	}

	c.JSON(http.StatusOK, gin.H{"similar": filtered})
}
