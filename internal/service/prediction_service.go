package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"fanlens/internal/domain"
	"fanlens/internal/repository"
)

var ErrPredictionInvalidInput = errors.New("prediction invalid input")

// PredictionService aplica la politica de cache sobre el predictor puro:
// sirve la entrada cacheada si es fresca, recomputa y sobreescribe si no.
// Ultima escritura gana; no hay merge.
type PredictionService struct {
	predictor   *EngagementPredictor
	cache       PredictionCache
	assignments repository.AssignmentRepository
	signals     repository.SignalRepository
	visits      repository.VisitRepository
	staleAfter  time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

func NewPredictionService(
	predictor *EngagementPredictor,
	cache PredictionCache,
	assignments repository.AssignmentRepository,
	signals repository.SignalRepository,
	visits repository.VisitRepository,
	staleAfter time.Duration,
	logger *zap.Logger,
) *PredictionService {
	if staleAfter <= 0 {
		staleAfter = 7 * 24 * time.Hour
	}
	return &PredictionService{
		predictor:   predictor,
		cache:       cache,
		assignments: assignments,
		signals:     signals,
		visits:      visits,
		staleAfter:  staleAfter,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Get devuelve la prediccion para el par y si vino del cache. Un error del
// cache degrada a recomputo, no falla la operacion.
func (s *PredictionService) Get(ctx context.Context, subjectID, targetID string, force bool) (domain.EngagementPrediction, bool, error) {
	if subjectID == "" || targetID == "" {
		return domain.EngagementPrediction{}, false, ErrPredictionInvalidInput
	}

	if !force {
		cached, err := s.cache.Get(ctx, subjectID, targetID)
		if err != nil {
			s.logger.Warn("prediction cache get failed", zap.Error(err))
		} else if cached != nil && s.now().Sub(cached.ComputedAt) < s.staleAfter {
			return *cached, true, nil
		}
	}

	pred, err := s.recompute(ctx, subjectID, targetID)
	if err != nil {
		return domain.EngagementPrediction{}, false, err
	}
	return pred, false, nil
}

// Invalidate borra la entrada del par, ignorando su TTL.
func (s *PredictionService) Invalidate(ctx context.Context, subjectID, targetID string) error {
	return s.cache.Invalidate(ctx, subjectID, targetID)
}

func (s *PredictionService) recompute(ctx context.Context, subjectID, targetID string) (domain.EngagementPrediction, error) {
	subjectWeights, err := s.blendWeights(ctx, subjectID)
	if err != nil {
		return domain.EngagementPrediction{}, fmt.Errorf("load subject assignment: %w", err)
	}
	targetWeights, err := s.blendWeights(ctx, targetID)
	if err != nil {
		return domain.EngagementPrediction{}, fmt.Errorf("load target assignment: %w", err)
	}
	signals, err := s.signals.ListBySubjectTarget(ctx, subjectID, targetID)
	if err != nil {
		return domain.EngagementPrediction{}, fmt.Errorf("load signals: %w", err)
	}
	visits, err := s.visits.ListBySubjectTarget(ctx, subjectID, targetID)
	if err != nil {
		return domain.EngagementPrediction{}, fmt.Errorf("load visits: %w", err)
	}

	pred := s.predictor.Predict(subjectWeights, targetWeights, signals, visits)
	pred.SubjectID = subjectID
	pred.TargetID = targetID

	if err := s.cache.Put(ctx, pred); err != nil {
		s.logger.Warn("prediction cache put failed", zap.Error(err),
			zap.String("subject_id", subjectID), zap.String("target_id", targetID))
	}
	return pred, nil
}

// blendWeights carga el blend de un sujeto; sin asignacion devuelve nil
// (peso vacio: el predictor lo trata como dato faltante, no como desajuste).
func (s *PredictionService) blendWeights(ctx context.Context, subjectID string) (map[string]float64, error) {
	assignment, err := s.assignments.GetBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, nil
	}
	return assignment.BlendWeights, nil
}

// SubjectTarget identifica una entrada de prediccion.
type SubjectTarget struct {
	SubjectID string `json:"subject_id"`
	TargetID  string `json:"target_id"`
}

// RefreshReport resume una pasada de recomputo en lote.
type RefreshReport struct {
	Refreshed int `json:"refreshed"`
	Failed    int `json:"failed"`
}

// RefreshStale recomputa pares en lotes acotados: cada lote lanza los
// recomputos en paralelo y entre lotes se espera un delay corto para acotar
// carga. El fallo de una entrada se cuenta y no aborta el lote; el recomputo
// es idempotente y seguro de reintentar.
func (s *PredictionService) RefreshStale(ctx context.Context, pairs []SubjectTarget, batchSize int, pause time.Duration) RefreshReport {
	if batchSize <= 0 {
		batchSize = 20
	}

	var report RefreshReport
	var mu sync.Mutex

	for start := 0; start < len(pairs); start += batchSize {
		end := min(start+batchSize, len(pairs))
		batch := pairs[start:end]

		var wg sync.WaitGroup
		for _, pair := range batch {
			wg.Add(1)
			go func(pair SubjectTarget) {
				defer wg.Done()
				_, err := s.recompute(ctx, pair.SubjectID, pair.TargetID)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					report.Failed++
					s.logger.Warn("stale refresh failed", zap.Error(err),
						zap.String("subject_id", pair.SubjectID), zap.String("target_id", pair.TargetID))
					return
				}
				report.Refreshed++
			}(pair)
		}
		wg.Wait()

		if end < len(pairs) && pause > 0 {
			time.Sleep(pause)
		}
	}
	return report
}
