package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"fanlens/internal/domain"
	"fanlens/internal/repository"
)

var ErrAssessmentInvalidInput = errors.New("assessment invalid input")

// AssessmentService orquesta una sesion de evaluacion completa: seleccion
// de items segun el prior, scoring de respuestas y clasificacion, con
// persistencia de estimados y asignacion.
type AssessmentService struct {
	selector   *ItemSelector
	scorer     *TraitScorer
	classifier *ArchetypeClassifier
	estimates  repository.EstimateRepository
	assigns    repository.AssignmentRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewAssessmentService(
	selector *ItemSelector,
	scorer *TraitScorer,
	classifier *ArchetypeClassifier,
	estimates repository.EstimateRepository,
	assigns repository.AssignmentRepository,
	logger *zap.Logger,
) *AssessmentService {
	return &AssessmentService{
		selector:   selector,
		scorer:     scorer,
		classifier: classifier,
		estimates:  estimates,
		assigns:    assigns,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// StartSession arma el set de preguntas para el sujeto usando su perfil
// previo como prior (nil para sujetos nuevos).
func (s *AssessmentService) StartSession(ctx context.Context, subjectID string, cfg SelectionConfig) (SelectionResult, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return SelectionResult{}, ErrAssessmentInvalidInput
	}

	prior, err := s.estimates.GetBySubject(ctx, subjectID)
	if err != nil {
		return SelectionResult{}, fmt.Errorf("load prior profile: %w", err)
	}

	result := s.selector.Select(prior, cfg)
	s.logger.Info("assessment session started",
		zap.String("subject_id", subjectID),
		zap.Int("items", len(result.Items)),
		zap.Float64("estimated_confidence", result.EstimatedConfidence))
	return result, nil
}

// SubmitResponses recalcula el perfil desde el set de respuestas, clasifica
// el vector resultante y persiste ambos.
func (s *AssessmentService) SubmitResponses(ctx context.Context, subjectID string, responses []domain.ResponseEvent, aux *domain.AuxTyping) (domain.TraitProfile, domain.ArchetypeAssignment, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" || len(responses) == 0 {
		return domain.TraitProfile{}, domain.ArchetypeAssignment{}, ErrAssessmentInvalidInput
	}

	prior, err := s.estimates.GetBySubject(ctx, subjectID)
	if err != nil {
		return domain.TraitProfile{}, domain.ArchetypeAssignment{}, fmt.Errorf("load prior profile: %w", err)
	}

	result := s.scorer.Score(responses)
	if result.Skipped > 0 {
		s.logger.Warn("responses skipped during scoring",
			zap.String("subject_id", subjectID), zap.Int("skipped", result.Skipped))
	}

	profile := domain.TraitProfile{
		SubjectID:         subjectID,
		Estimates:         result.Estimates,
		OverallConfidence: result.OverallConfidence,
		Reliability:       result.Reliability,
		EstimatedAccuracy: result.EstimatedAccuracy,
		SessionCount:      1,
		UpdatedAt:         s.now(),
	}
	if prior != nil {
		profile.SessionCount = prior.SessionCount + 1
	}

	if err := s.estimates.Upsert(ctx, profile); err != nil {
		return domain.TraitProfile{}, domain.ArchetypeAssignment{}, fmt.Errorf("persist estimates: %w", err)
	}

	assignment := s.classifier.Classify(result.Vector(), aux)
	assignment.SubjectID = subjectID
	assignment.UpdatedAt = profile.UpdatedAt

	if err := s.assigns.Upsert(ctx, assignment); err != nil {
		return domain.TraitProfile{}, domain.ArchetypeAssignment{}, fmt.Errorf("persist assignment: %w", err)
	}

	s.logger.Info("assessment scored",
		zap.String("subject_id", subjectID),
		zap.String("primary_archetype", assignment.PrimaryID),
		zap.Float64("overall_confidence", profile.OverallConfidence))

	return profile, assignment, nil
}
