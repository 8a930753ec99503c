package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fanlens/internal/domain"
	"fanlens/internal/repository"
)

var (
	ErrSignalInvalidInput = errors.New("signal invalid input")
	ErrUnknownSignalKind  = errors.New("unknown signal kind")
)

// PredictionInvalidator desacopla el tracker del servicio de predicciones:
// solo necesita poder invalidar una entrada.
type PredictionInvalidator interface {
	Invalidate(ctx context.Context, subjectID, targetID string) error
}

// DeepDiveConfig parametriza la deteccion de "catalog deep dive".
type DeepDiveConfig struct {
	// Threshold: contenidos distintos de un mismo target dentro de la ventana.
	Threshold int `json:"threshold"`
	// Window: ventana movil de deteccion y de supresion de duplicados.
	Window time.Duration `json:"window"`
}

// DefaultDeepDiveConfig devuelve los parametros estandar (5 en 24h).
func DefaultDeepDiveConfig() DeepDiveConfig {
	return DeepDiveConfig{Threshold: 5, Window: 24 * time.Hour}
}

// SignalService registra senales y visitas, dispara la invalidacion de
// cache y arma estadisticas de dashboard.
type SignalService struct {
	signals     repository.SignalRepository
	visits      repository.VisitRepository
	invalidator PredictionInvalidator
	deepDive    DeepDiveConfig
	logger      *zap.Logger
	now         func() time.Time
}

func NewSignalService(
	signals repository.SignalRepository,
	visits repository.VisitRepository,
	invalidator PredictionInvalidator,
	deepDive DeepDiveConfig,
	logger *zap.Logger,
) *SignalService {
	if deepDive.Threshold <= 0 || deepDive.Window <= 0 {
		deepDive = DefaultDeepDiveConfig()
	}
	return &SignalService{
		signals:     signals,
		visits:      visits,
		invalidator: invalidator,
		deepDive:    deepDive,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// RecordSignal persiste la senal e invalida incondicionalmente la entrada
// de cache del par: una prediccion vieja tras una senal fuerte es peor que
// un recomputo de mas.
func (s *SignalService) RecordSignal(ctx context.Context, subjectID, targetID string, kind domain.SignalKind, contentID string, weight float64) (domain.EngagementSignal, error) {
	subjectID = strings.TrimSpace(subjectID)
	targetID = strings.TrimSpace(targetID)
	if subjectID == "" || targetID == "" {
		return domain.EngagementSignal{}, ErrSignalInvalidInput
	}
	if !kind.IsValid() {
		return domain.EngagementSignal{}, fmt.Errorf("%w: %s", ErrUnknownSignalKind, kind)
	}
	if weight <= 0 {
		weight = 1
	}

	signal := domain.EngagementSignal{
		ID:        uuid.NewString(),
		SubjectID: subjectID,
		TargetID:  targetID,
		Kind:      kind,
		Weight:    weight,
		ContentID: contentID,
		CreatedAt: s.now(),
	}
	if err := s.signals.Insert(ctx, signal); err != nil {
		return domain.EngagementSignal{}, fmt.Errorf("insert signal: %w", err)
	}

	s.invalidate(ctx, subjectID, targetID)

	if contentID != "" && kind != domain.SignalCatalogDeepDive {
		s.maybeRecordDeepDive(ctx, subjectID, targetID)
	}

	return signal, nil
}

func (s *SignalService) invalidate(ctx context.Context, subjectID, targetID string) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx, subjectID, targetID); err != nil {
		s.logger.Warn("prediction invalidate failed", zap.Error(err),
			zap.String("subject_id", subjectID), zap.String("target_id", targetID))
	}
}

// maybeRecordDeepDive emite la senal derivada cuando el sujeto toco 5+
// contenidos distintos del target en la ventana movil. Se suprime si ya hay
// un deep dive dentro de la misma ventana. Bajo escrituras concurrentes dos
// registradores pueden observar "sin deep dive reciente" y duplicar cerca
// del borde de la ventana; se acepta tal cual.
func (s *SignalService) maybeRecordDeepDive(ctx context.Context, subjectID, targetID string) {
	since := s.now().Add(-s.deepDive.Window)

	distinct, err := s.signals.CountDistinctContentSince(ctx, subjectID, targetID, since)
	if err != nil {
		s.logger.Warn("deep dive count failed", zap.Error(err))
		return
	}
	if distinct < s.deepDive.Threshold {
		return
	}

	exists, err := s.signals.HasKindSince(ctx, subjectID, targetID, domain.SignalCatalogDeepDive, since)
	if err != nil {
		s.logger.Warn("deep dive lookup failed", zap.Error(err))
		return
	}
	if exists {
		return
	}

	dive := domain.EngagementSignal{
		ID:        uuid.NewString(),
		SubjectID: subjectID,
		TargetID:  targetID,
		Kind:      domain.SignalCatalogDeepDive,
		Weight:    1,
		CreatedAt: s.now(),
	}
	if err := s.signals.Insert(ctx, dive); err != nil {
		s.logger.Warn("deep dive insert failed", zap.Error(err))
		return
	}
	s.logger.Info("catalog deep dive detected",
		zap.String("subject_id", subjectID), zap.String("target_id", targetID),
		zap.Int("distinct_content", distinct))
	s.invalidate(ctx, subjectID, targetID)
}

// StartVisit abre una sesion de visita.
func (s *SignalService) StartVisit(ctx context.Context, subjectID, targetID string, origin domain.VisitOrigin) (domain.VisitSession, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return domain.VisitSession{}, ErrSignalInvalidInput
	}
	switch origin {
	case domain.OriginOrganic, domain.OriginAlgorithmic, domain.OriginSocial, domain.OriginExternal:
	default:
		origin = domain.OriginExternal
	}

	visit := domain.VisitSession{
		ID:        uuid.NewString(),
		SubjectID: subjectID,
		TargetID:  strings.TrimSpace(targetID),
		Origin:    origin,
		StartedAt: s.now(),
	}
	if err := s.visits.Insert(ctx, visit); err != nil {
		return domain.VisitSession{}, fmt.Errorf("insert visit: %w", err)
	}
	return visit, nil
}

// EndVisit cierra una sesion abierta. Cerrar dos veces es un no-op.
func (s *SignalService) EndVisit(ctx context.Context, visitID string) error {
	if strings.TrimSpace(visitID) == "" {
		return ErrSignalInvalidInput
	}
	return s.visits.SetEnd(ctx, visitID, s.now())
}

// SubjectActivity resume la actividad de un sujeto hacia el target.
type SubjectActivity struct {
	SubjectID   string  `json:"subject_id"`
	SignalCount int     `json:"signal_count"`
	TotalWeight float64 `json:"total_weight"`
}

// DashboardStats agrega la actividad reciente de un target.
type DashboardStats struct {
	TargetID       string            `json:"target_id"`
	Window         time.Duration     `json:"window"`
	TotalSignals   int               `json:"total_signals"`
	UniqueSubjects int               `json:"unique_subjects"`
	CountsByKind   map[string]int    `json:"counts_by_kind"`
	TopSubjects    []SubjectActivity `json:"top_subjects"`
}

// TargetDashboard agrega las senales del target dentro de la ventana.
func (s *SignalService) TargetDashboard(ctx context.Context, targetID string, window time.Duration) (DashboardStats, error) {
	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return DashboardStats{}, ErrSignalInvalidInput
	}
	if window <= 0 {
		window = 7 * 24 * time.Hour
	}

	signals, err := s.signals.ListByTargetSince(ctx, targetID, s.now().Add(-window))
	if err != nil {
		return DashboardStats{}, fmt.Errorf("list target signals: %w", err)
	}

	stats := DashboardStats{
		TargetID:     targetID,
		Window:       window,
		TotalSignals: len(signals),
		CountsByKind: make(map[string]int),
	}

	perSubject := make(map[string]*SubjectActivity)
	for _, sig := range signals {
		stats.CountsByKind[string(sig.Kind)]++
		activity, ok := perSubject[sig.SubjectID]
		if !ok {
			activity = &SubjectActivity{SubjectID: sig.SubjectID}
			perSubject[sig.SubjectID] = activity
		}
		activity.SignalCount++
		activity.TotalWeight += sig.Weight
	}

	stats.UniqueSubjects = len(perSubject)
	for _, activity := range perSubject {
		stats.TopSubjects = append(stats.TopSubjects, *activity)
	}
	sort.Slice(stats.TopSubjects, func(i, j int) bool {
		a, b := stats.TopSubjects[i], stats.TopSubjects[j]
		if a.TotalWeight != b.TotalWeight {
			return a.TotalWeight > b.TotalWeight
		}
		return a.SubjectID < b.SubjectID
	})
	if len(stats.TopSubjects) > 10 {
		stats.TopSubjects = stats.TopSubjects[:10]
	}

	return stats, nil
}
