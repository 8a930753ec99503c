package service

import (
	"testing"

	"fanlens/internal/catalog"
	"fanlens/internal/domain"
)

func newTestScorer() *TraitScorer {
	return NewTraitScorer(catalog.Default())
}

func TestScoreDeterministic(t *testing.T) {
	scorer := newTestScorer()
	responses := []domain.ResponseEvent{
		{ItemID: "opn-1", OptionID: "a"},
		{ItemID: "con-2", OptionID: "c"},
		{ItemID: "ext-3", OptionID: "b"},
	}

	a := scorer.Score(responses)
	b := scorer.Score(responses)

	for tr := range a.Estimates {
		if a.Estimates[tr].Score != b.Estimates[tr].Score {
			t.Fatalf("trait %d: scores differ between runs: %f vs %f",
				tr, a.Estimates[tr].Score, b.Estimates[tr].Score)
		}
	}
	if a.OverallConfidence != b.OverallConfidence {
		t.Fatalf("overall confidence differs: %f vs %f", a.OverallConfidence, b.OverallConfidence)
	}
}

func TestScoreEmptyTraitGetsNeutralDefault(t *testing.T) {
	scorer := newTestScorer()

	result := scorer.Score([]domain.ResponseEvent{{ItemID: "opn-1", OptionID: "a"}})

	est := result.Estimates[domain.TraitExtraversion]
	if est.Score != 0.5 {
		t.Fatalf("expected neutral score 0.5, got %f", est.Score)
	}
	if est.Confidence != 0 {
		t.Fatalf("expected zero confidence, got %f", est.Confidence)
	}
	if est.Dispersion != 0.25 {
		t.Fatalf("expected default dispersion 0.25, got %f", est.Dispersion)
	}
}

func TestScoreResultVectorMirrorsEstimates(t *testing.T) {
	scorer := newTestScorer()

	result := scorer.Score([]domain.ResponseEvent{
		{ItemID: "opn-1", OptionID: "a"},
		{ItemID: "con-2", OptionID: "c"},
	})

	vec := result.Vector()
	for tr := domain.Trait(0); tr < domain.TraitCount; tr++ {
		if vec[tr] != result.Estimates[tr].Score {
			t.Fatalf("trait %d: vector %f does not match estimate %f",
				tr, vec[tr], result.Estimates[tr].Score)
		}
	}
}

func TestScoreNoResponsesIsAllNeutral(t *testing.T) {
	scorer := newTestScorer()

	result := scorer.Score(nil)

	for tr := domain.Trait(0); tr < domain.TraitCount; tr++ {
		est := result.Estimates[tr]
		if est.Score != 0.5 || est.Confidence != 0 || est.Dispersion != 0.25 {
			t.Fatalf("trait %d: expected neutral default, got score=%f confidence=%f dispersion=%f",
				tr, est.Score, est.Confidence, est.Dispersion)
		}
	}
	if result.OverallConfidence != 0 {
		t.Fatalf("expected zero overall confidence, got %f", result.OverallConfidence)
	}
}

func TestScoreMonotonicity(t *testing.T) {
	scorer := newTestScorer()

	high := []domain.ResponseEvent{
		{ItemID: "agr-1", OptionID: "a"},
		{ItemID: "agr-2", OptionID: "d"},
		{ItemID: "agr-3", OptionID: "a"},
		{ItemID: "agr-4", OptionID: "d"},
		{ItemID: "agr-5", OptionID: "a"},
		{ItemID: "agr-6", OptionID: "d"},
	}
	low := []domain.ResponseEvent{
		{ItemID: "agr-1", OptionID: "b"},
		{ItemID: "agr-2", OptionID: "a"},
		{ItemID: "agr-3", OptionID: "b"},
		{ItemID: "agr-4", OptionID: "a"},
		{ItemID: "agr-5", OptionID: "b"},
		{ItemID: "agr-6", OptionID: "a"},
	}

	highScore := scorer.Score(high).Estimates[domain.TraitAgreeableness].Score
	lowScore := scorer.Score(low).Estimates[domain.TraitAgreeableness].Score

	if highScore <= 0.65 {
		t.Fatalf("expected strongly positive responses above 0.65, got %f", highScore)
	}
	if lowScore >= 0.35 {
		t.Fatalf("expected strongly negative responses below 0.35, got %f", lowScore)
	}
}

func TestScoreConfidenceGrowsWithItems(t *testing.T) {
	scorer := newTestScorer()

	one := scorer.Score([]domain.ResponseEvent{
		{ItemID: "neu-1", OptionID: "a"},
	}).Estimates[domain.TraitNeuroticism]
	five := scorer.Score([]domain.ResponseEvent{
		{ItemID: "neu-1", OptionID: "a"},
		{ItemID: "neu-2", OptionID: "d"},
		{ItemID: "neu-3", OptionID: "a"},
		{ItemID: "neu-4", OptionID: "d"},
		{ItemID: "neu-5", OptionID: "a"},
	}).Estimates[domain.TraitNeuroticism]

	if five.Confidence <= one.Confidence {
		t.Fatalf("expected confidence to grow with items: 1 item %f, 5 items %f",
			one.Confidence, five.Confidence)
	}
	if five.Confidence > 0.95 {
		t.Fatalf("expected confidence capped at 0.95, got %f", five.Confidence)
	}
}

func TestScoreSkipsUnknownReferences(t *testing.T) {
	scorer := newTestScorer()

	result := scorer.Score([]domain.ResponseEvent{
		{ItemID: "opn-1", OptionID: "a"},
		{ItemID: "made-up", OptionID: "a"},
		{ItemID: "opn-3", OptionID: "z"},
	})

	if result.Skipped != 2 {
		t.Fatalf("expected 2 skipped responses, got %d", result.Skipped)
	}
	if result.Estimates[domain.TraitOpenness].ItemCount != 1 {
		t.Fatalf("expected 1 openness contribution, got %d",
			result.Estimates[domain.TraitOpenness].ItemCount)
	}
}

func TestScoreSecondaryLoadingsBleed(t *testing.T) {
	// opn-2 carga en secundario sobre novelty_seeking (0.4): responderlo
	// alto debe mover ambos traits.
	scorer := newTestScorer()

	result := scorer.Score([]domain.ResponseEvent{{ItemID: "opn-2", OptionID: "d"}})

	if result.Estimates[domain.TraitNoveltySeeking].ItemCount != 1 {
		t.Fatalf("expected secondary contribution on novelty_seeking")
	}
	if result.Estimates[domain.TraitNoveltySeeking].Score <= 0.5 {
		t.Fatalf("expected positive bleed, got %f", result.Estimates[domain.TraitNoveltySeeking].Score)
	}
}

func TestScoreNegativeLoadingReflects(t *testing.T) {
	// nov-3 carga -0.25 sobre conscientiousness: afirmar aburrimiento ante
	// la formula repetida empuja conscientiousness hacia abajo.
	scorer := newTestScorer()

	result := scorer.Score([]domain.ResponseEvent{{ItemID: "nov-3", OptionID: "a"}})

	if result.Estimates[domain.TraitConscientiousness].Score >= 0.5 {
		t.Fatalf("expected negative loading to pull below 0.5, got %f",
			result.Estimates[domain.TraitConscientiousness].Score)
	}
}

func TestScoreEndToEndProfile(t *testing.T) {
	scorer := newTestScorer()

	responses := []domain.ResponseEvent{
		// Openness alto.
		{ItemID: "opn-1", OptionID: "a"},
		{ItemID: "opn-2", OptionID: "d"},
		{ItemID: "opn-3", OptionID: "a"},
		{ItemID: "opn-4", OptionID: "d"},
		// Conscientiousness bajo.
		{ItemID: "con-1", OptionID: "b"},
		{ItemID: "con-2", OptionID: "a"},
		{ItemID: "con-4", OptionID: "a"},
		{ItemID: "con-5", OptionID: "b"},
	}

	result := scorer.Score(responses)

	if got := result.Estimates[domain.TraitOpenness].Score; got <= 0.7 {
		t.Fatalf("expected openness above 0.7, got %f", got)
	}
	if got := result.Estimates[domain.TraitConscientiousness].Score; got >= 0.4 {
		t.Fatalf("expected conscientiousness below 0.4, got %f", got)
	}
	if result.Reliability <= 0 || result.Reliability > 1 {
		t.Fatalf("reliability %f out of (0,1]", result.Reliability)
	}
	if result.EstimatedAccuracy < 0.5 {
		t.Fatalf("expected estimated accuracy at least 0.5, got %f", result.EstimatedAccuracy)
	}
}

func TestScoreReliabilityNeedsThreeContributions(t *testing.T) {
	scorer := newTestScorer()

	result := scorer.Score([]domain.ResponseEvent{{ItemID: "con-1", OptionID: "a"}})

	if result.Reliability != 0.5 {
		t.Fatalf("expected fallback reliability 0.5, got %f", result.Reliability)
	}
}
