package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"fanlens/internal/catalog"
	"fanlens/internal/domain"
)

type mockAssignmentRepo struct {
	assignments map[string]*domain.ArchetypeAssignment
	upserts     int
	err         error
}

func (m *mockAssignmentRepo) Upsert(ctx context.Context, assignment domain.ArchetypeAssignment) error {
	if m.err != nil {
		return m.err
	}
	if m.assignments == nil {
		m.assignments = make(map[string]*domain.ArchetypeAssignment)
	}
	m.upserts++
	copied := assignment
	m.assignments[assignment.SubjectID] = &copied
	return nil
}

func (m *mockAssignmentRepo) GetBySubject(ctx context.Context, subjectID string) (*domain.ArchetypeAssignment, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.assignments[subjectID], nil
}

type mockSignalRepo struct {
	signals     []domain.EngagementSignal
	listErr     error
	insertErr   error
	distinct    int
	hasDeepDive bool
	countErr    error
	hasKindErr  error
}

func (m *mockSignalRepo) Insert(ctx context.Context, signal domain.EngagementSignal) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.signals = append(m.signals, signal)
	return nil
}

func (m *mockSignalRepo) ListBySubjectTarget(ctx context.Context, subjectID, targetID string) ([]domain.EngagementSignal, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.EngagementSignal
	for _, s := range m.signals {
		if s.SubjectID == subjectID && s.TargetID == targetID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSignalRepo) ListByTargetSince(ctx context.Context, targetID string, since time.Time) ([]domain.EngagementSignal, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.EngagementSignal
	for _, s := range m.signals {
		if s.TargetID == targetID && !s.CreatedAt.Before(since) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSignalRepo) CountDistinctContentSince(ctx context.Context, subjectID, targetID string, since time.Time) (int, error) {
	return m.distinct, m.countErr
}

func (m *mockSignalRepo) HasKindSince(ctx context.Context, subjectID, targetID string, kind domain.SignalKind, since time.Time) (bool, error) {
	return m.hasDeepDive, m.hasKindErr
}

type mockVisitRepo struct {
	visits    []domain.VisitSession
	ended     map[string]time.Time
	insertErr error
	listErr   error
}

func (m *mockVisitRepo) Insert(ctx context.Context, visit domain.VisitSession) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.visits = append(m.visits, visit)
	return nil
}

func (m *mockVisitRepo) SetEnd(ctx context.Context, visitID string, endedAt time.Time) error {
	if m.ended == nil {
		m.ended = make(map[string]time.Time)
	}
	m.ended[visitID] = endedAt
	return nil
}

func (m *mockVisitRepo) ListBySubjectTarget(ctx context.Context, subjectID, targetID string) ([]domain.VisitSession, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.VisitSession
	for _, v := range m.visits {
		if v.SubjectID == subjectID && v.TargetID == targetID {
			out = append(out, v)
		}
	}
	return out, nil
}

func newTestPredictionService(signals *mockSignalRepo, visits *mockVisitRepo, assigns *mockAssignmentRepo) *PredictionService {
	predictor := NewEngagementPredictor(catalog.Default(), DefaultPredictorConfig(), nil)
	return NewPredictionService(predictor, NewMemoryPredictionCache(), assigns, signals, visits, 7*24*time.Hour, zap.NewNop())
}

func TestPredictionGetRecomputesThenServesCache(t *testing.T) {
	signals := &mockSignalRepo{}
	svc := newTestPredictionService(signals, &mockVisitRepo{}, &mockAssignmentRepo{})
	ctx := context.Background()

	first, cached, err := svc.Get(ctx, "s1", "t1", false)
	if err != nil {
		t.Fatalf("first get failed: %v", err)
	}
	if cached {
		t.Fatalf("first get should recompute, not hit cache")
	}
	if first.SubjectID != "s1" || first.TargetID != "t1" {
		t.Fatalf("prediction pair not stamped: %+v", first)
	}

	second, cached, err := svc.Get(ctx, "s1", "t1", false)
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if !cached {
		t.Fatalf("second get should hit cache")
	}
	if !second.ComputedAt.Equal(first.ComputedAt) {
		t.Fatalf("cached prediction should be the stored one")
	}
}

func TestPredictionGetForceBypassesCache(t *testing.T) {
	svc := newTestPredictionService(&mockSignalRepo{}, &mockVisitRepo{}, &mockAssignmentRepo{})
	ctx := context.Background()

	if _, _, err := svc.Get(ctx, "s1", "t1", false); err != nil {
		t.Fatalf("seed get failed: %v", err)
	}
	_, cached, err := svc.Get(ctx, "s1", "t1", true)
	if err != nil {
		t.Fatalf("forced get failed: %v", err)
	}
	if cached {
		t.Fatalf("forced get must recompute")
	}
}

func TestPredictionGetRecomputesAfterInvalidate(t *testing.T) {
	svc := newTestPredictionService(&mockSignalRepo{}, &mockVisitRepo{}, &mockAssignmentRepo{})
	ctx := context.Background()

	if _, _, err := svc.Get(ctx, "s1", "t1", false); err != nil {
		t.Fatalf("seed get failed: %v", err)
	}
	if err := svc.Invalidate(ctx, "s1", "t1"); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}

	_, cached, err := svc.Get(ctx, "s1", "t1", false)
	if err != nil {
		t.Fatalf("get after invalidate failed: %v", err)
	}
	if cached {
		t.Fatalf("get after invalidate must recompute")
	}
}

func TestPredictionGetRecomputesStaleEntry(t *testing.T) {
	svc := newTestPredictionService(&mockSignalRepo{}, &mockVisitRepo{}, &mockAssignmentRepo{})
	ctx := context.Background()

	if _, _, err := svc.Get(ctx, "s1", "t1", false); err != nil {
		t.Fatalf("seed get failed: %v", err)
	}

	// Adelanta el reloj del servicio mas alla de la ventana de frescura.
	svc.now = func() time.Time { return time.Now().UTC().Add(8 * 24 * time.Hour) }

	_, cached, err := svc.Get(ctx, "s1", "t1", false)
	if err != nil {
		t.Fatalf("get after staleness failed: %v", err)
	}
	if cached {
		t.Fatalf("stale entry must trigger recompute")
	}
}

func TestPredictionGetRejectsEmptyPair(t *testing.T) {
	svc := newTestPredictionService(&mockSignalRepo{}, &mockVisitRepo{}, &mockAssignmentRepo{})

	if _, _, err := svc.Get(context.Background(), "", "t1", false); !errors.Is(err, ErrPredictionInvalidInput) {
		t.Fatalf("expected ErrPredictionInvalidInput, got %v", err)
	}
}

func TestPredictionGetPropagatesRepoErrors(t *testing.T) {
	signals := &mockSignalRepo{listErr: errors.New("db down")}
	svc := newTestPredictionService(signals, &mockVisitRepo{}, &mockAssignmentRepo{})

	if _, _, err := svc.Get(context.Background(), "s1", "t1", false); err == nil {
		t.Fatalf("expected error when signal listing fails")
	}
}

func TestRefreshStaleCountsFailures(t *testing.T) {
	signals := &mockSignalRepo{}
	svc := newTestPredictionService(signals, &mockVisitRepo{}, &mockAssignmentRepo{})

	pairs := []SubjectTarget{
		{SubjectID: "s1", TargetID: "t1"},
		{SubjectID: "s2", TargetID: "t1"},
		{SubjectID: "s3", TargetID: "t1"},
	}

	report := svc.RefreshStale(context.Background(), pairs, 2, 0)
	if report.Refreshed != 3 || report.Failed != 0 {
		t.Fatalf("expected 3 refreshed, got %+v", report)
	}

	signals.listErr = errors.New("db down")
	report = svc.RefreshStale(context.Background(), pairs, 2, 0)
	if report.Failed != 3 || report.Refreshed != 0 {
		t.Fatalf("expected 3 failures, got %+v", report)
	}
}
