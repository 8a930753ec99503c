package service

import (
	"testing"
	"time"

	"fanlens/internal/catalog"
	"fanlens/internal/domain"
)

var predictorNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestPredictor() *EngagementPredictor {
	return NewEngagementPredictor(catalog.Default(), DefaultPredictorConfig(), func() time.Time {
		return predictorNow
	})
}

func TestTasteCoherenceIdenticalBlends(t *testing.T) {
	p := newTestPredictor()
	blend := map[string]float64{"explorer": 0.6, "analyst": 0.3, "dabbler": 0.1}

	got := p.tasteCoherence(blend, blend)
	if got < 0.99 {
		t.Fatalf("identical blends should be fully coherent, got %f", got)
	}
}

func TestTasteCoherenceMissingDataIsNeutral(t *testing.T) {
	p := newTestPredictor()
	blend := map[string]float64{"explorer": 1}

	if got := p.tasteCoherence(nil, blend); got != 0.5 {
		t.Fatalf("missing subject blend should be neutral 0.5, got %f", got)
	}
	if got := p.tasteCoherence(blend, map[string]float64{}); got != 0.5 {
		t.Fatalf("empty target blend should be neutral 0.5, got %f", got)
	}
}

func TestTasteCoherenceDisjointBlends(t *testing.T) {
	p := newTestPredictor()

	// Blends ortogonales: coseno 0 reescalado a 0.5.
	got := p.tasteCoherence(
		map[string]float64{"explorer": 1},
		map[string]float64{"devotee": 1},
	)
	if got != 0.5 {
		t.Fatalf("orthogonal blends should rescale to 0.5, got %f", got)
	}
}

func TestTasteCoherenceIsSymmetric(t *testing.T) {
	p := newTestPredictor()

	a := map[string]float64{"explorer": 0.5, "analyst": 0.3, "curator": 0.2}
	b := map[string]float64{"analyst": 0.7, "curator": 0.1, "devotee": 0.2}

	if ab, ba := p.tasteCoherence(a, b), p.tasteCoherence(b, a); ab != ba {
		t.Fatalf("coherence should not depend on argument order: got %f and %f", ab, ba)
	}
}

func TestSignalScoreDecaysWithAge(t *testing.T) {
	p := newTestPredictor()

	fresh := []domain.EngagementSignal{{Kind: domain.SignalShare, Weight: 1, CreatedAt: predictorNow.Add(-time.Hour)}}
	old := []domain.EngagementSignal{{Kind: domain.SignalShare, Weight: 1, CreatedAt: predictorNow.Add(-60 * 24 * time.Hour)}}

	if p.signalScore(fresh) <= p.signalScore(old) {
		t.Fatalf("fresh signal should outscore old one: %f vs %f",
			p.signalScore(fresh), p.signalScore(old))
	}
}

func TestSignalScoreFloorKeepsOldSignals(t *testing.T) {
	p := newTestPredictor()

	ancient := []domain.EngagementSignal{{Kind: domain.SignalSubscribe, Weight: 1, CreatedAt: predictorNow.Add(-365 * 24 * time.Hour)}}

	if p.signalScore(ancient) <= 0 {
		t.Fatalf("decay floor should keep ancient signals above zero, got %f", p.signalScore(ancient))
	}
}

func TestSignalScoreUnknownKindGetsMinimalWeight(t *testing.T) {
	p := newTestPredictor()
	at := predictorNow.Add(-time.Hour)

	unknown := p.signalScore([]domain.EngagementSignal{{Kind: "mystery", Weight: 1, CreatedAt: at}})
	ret := p.signalScore([]domain.EngagementSignal{{Kind: domain.SignalUnpromptedReturn, Weight: 1, CreatedAt: at}})

	if unknown <= 0 {
		t.Fatalf("unknown kind should still contribute, got %f", unknown)
	}
	if unknown >= ret {
		t.Fatalf("unknown kind should weigh less than unprompted return: %f vs %f", unknown, ret)
	}
}

func TestReturnScoreNeutralWithoutVisits(t *testing.T) {
	p := newTestPredictor()

	if got := p.returnScore(nil); got != 0.5 {
		t.Fatalf("no visits should be neutral 0.5, got %f", got)
	}
}

func TestReturnScoreFavorsOrganicVisits(t *testing.T) {
	p := newTestPredictor()

	mkVisits := func(origin domain.VisitOrigin) []domain.VisitSession {
		visits := make([]domain.VisitSession, 6)
		for i := range visits {
			visits[i] = domain.VisitSession{
				Origin:    origin,
				StartedAt: predictorNow.Add(-time.Duration(i*48) * time.Hour),
			}
		}
		return visits
	}

	organic := p.returnScore(mkVisits(domain.OriginOrganic))
	pushed := p.returnScore(mkVisits(domain.OriginAlgorithmic))

	if organic <= pushed {
		t.Fatalf("organic visits should outscore algorithmic: %f vs %f", organic, pushed)
	}
}

func TestPredictGeometricSuppression(t *testing.T) {
	p := newTestPredictor()
	blend := map[string]float64{"explorer": 1}

	visits := []domain.VisitSession{
		{Origin: domain.OriginOrganic, StartedAt: predictorNow.Add(-24 * time.Hour)},
		{Origin: domain.OriginOrganic, StartedAt: predictorNow.Add(-48 * time.Hour)},
	}

	pred := p.Predict(blend, blend, nil, visits)

	// Coherencia perfecta y visitas organicas, pero cero senales: la media
	// geometrica hunde el resultado a cero.
	if pred.SignalScore != 0 {
		t.Fatalf("expected zero signal score, got %f", pred.SignalScore)
	}
	if pred.Combined != 0 {
		t.Fatalf("expected combined score suppressed to zero, got %f", pred.Combined)
	}
	if pred.Tier != domain.TierPasserby {
		t.Fatalf("expected passerby tier, got %s", pred.Tier)
	}
}

func TestPredictTracksLastSignal(t *testing.T) {
	p := newTestPredictor()
	latest := predictorNow.Add(-2 * time.Hour)

	pred := p.Predict(nil, nil, []domain.EngagementSignal{
		{Kind: domain.SignalLike, Weight: 1, CreatedAt: predictorNow.Add(-100 * time.Hour)},
		{Kind: domain.SignalShare, Weight: 1, CreatedAt: latest},
	}, nil)

	if pred.SignalCount != 2 {
		t.Fatalf("expected signal count 2, got %d", pred.SignalCount)
	}
	if pred.LastSignalAt == nil || !pred.LastSignalAt.Equal(latest) {
		t.Fatalf("expected last signal at %v, got %v", latest, pred.LastSignalAt)
	}
	if !pred.ComputedAt.Equal(predictorNow) {
		t.Fatalf("expected computed at injected now, got %v", pred.ComputedAt)
	}
}

func TestTierForScoreThresholds(t *testing.T) {
	cases := []struct {
		score float64
		tier  string
	}{
		{0, domain.TierPasserby},
		{14.9, domain.TierPasserby},
		{15, domain.TierCurious},
		{35, domain.TierEngaged},
		{55, domain.TierDevoted},
		{74.9, domain.TierDevoted},
		{75, domain.TierSuperfan},
		{100, domain.TierSuperfan},
	}
	for _, tc := range cases {
		if got := TierForScore(tc.score); got != tc.tier {
			t.Fatalf("score %f: expected tier %s, got %s", tc.score, tc.tier, got)
		}
	}
}
