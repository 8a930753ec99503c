package service

import (
	"math/rand"
	"testing"

	"fanlens/internal/catalog"
	"fanlens/internal/domain"
)

func newTestSelector(seed int64) *ItemSelector {
	return NewItemSelector(catalog.Default(), rand.New(rand.NewSource(seed)))
}

func TestSelectRespectsSessionBounds(t *testing.T) {
	cfg := DefaultSelectionConfig()

	for seed := int64(1); seed <= 20; seed++ {
		selector := newTestSelector(seed)
		result := selector.Select(nil, cfg)

		if len(result.Items) < cfg.MinItems || len(result.Items) > cfg.MaxItems {
			t.Fatalf("seed %d: got %d items, want between %d and %d",
				seed, len(result.Items), cfg.MinItems, cfg.MaxItems)
		}

		seen := make(map[string]bool)
		for _, item := range result.Items {
			if seen[item.ID] {
				t.Fatalf("seed %d: duplicate item %s", seed, item.ID)
			}
			seen[item.ID] = true
		}

		for tr := domain.Trait(0); tr < domain.TraitCount; tr++ {
			if result.Coverage[tr] < cfg.MinPerTrait {
				t.Fatalf("seed %d: trait %s covered %d times, want at least %d",
					seed, tr, result.Coverage[tr], cfg.MinPerTrait)
			}
			if result.Coverage[tr] > cfg.MaxPerTrait {
				t.Fatalf("seed %d: trait %s covered %d times, want at most %d",
					seed, tr, result.Coverage[tr], cfg.MaxPerTrait)
			}
		}
	}
}

func TestSelectReturningSubjectGetsAnchors(t *testing.T) {
	selector := newTestSelector(7)
	prior := &domain.TraitProfile{SubjectID: "subject-1", SessionCount: 2}
	for tr := range prior.Estimates {
		prior.Estimates[tr] = domain.TraitEstimate{Score: 0.6, Confidence: 0.5, Dispersion: 0.1, ItemCount: 3}
	}

	result := selector.Select(prior, DefaultSelectionConfig())

	selected := make(map[string]bool)
	for _, item := range result.Items {
		selected[item.ID] = true
	}
	for _, anchor := range catalog.Default().Anchors() {
		if !selected[anchor.ID] {
			t.Fatalf("expected anchor %s in returning subject session", anchor.ID)
		}
	}
}

func TestSelectNewSubjectNotForcedToAnchors(t *testing.T) {
	// Con SessionCount 0 el prior se trata como sujeto nuevo: las anclas
	// compiten como cualquier otro item.
	selector := newTestSelector(3)
	result := selector.Select(&domain.TraitProfile{SubjectID: "s"}, DefaultSelectionConfig())

	if len(result.Items) == 0 {
		t.Fatalf("expected items for new subject")
	}
}

func TestSelectSwapsIncoherentBounds(t *testing.T) {
	selector := newTestSelector(5)
	cfg := SelectionConfig{MinItems: 24, MaxItems: 12, MinPerTrait: 3, MaxPerTrait: 2}

	result := selector.Select(nil, cfg)

	if len(result.Items) < 12 || len(result.Items) > 24 {
		t.Fatalf("expected swapped bounds to hold, got %d items", len(result.Items))
	}
}

func TestSelectDeterministicForFixedSeed(t *testing.T) {
	a := newTestSelector(42).Select(nil, DefaultSelectionConfig())
	b := newTestSelector(42).Select(nil, DefaultSelectionConfig())

	if len(a.Items) != len(b.Items) {
		t.Fatalf("expected same item count, got %d and %d", len(a.Items), len(b.Items))
	}
	for i := range a.Items {
		if a.Items[i].ID != b.Items[i].ID {
			t.Fatalf("position %d: expected %s, got %s", i, a.Items[i].ID, b.Items[i].ID)
		}
	}
}

func TestSelectEstimates(t *testing.T) {
	result := newTestSelector(9).Select(nil, DefaultSelectionConfig())

	if result.EstimatedConfidence <= 0 || result.EstimatedConfidence > 1 {
		t.Fatalf("estimated confidence %f out of (0,1]", result.EstimatedConfidence)
	}
	if result.EstimatedDuration <= 0 {
		t.Fatalf("expected positive estimated duration, got %v", result.EstimatedDuration)
	}
}

func TestSelectPrioritizesUncertainTraits(t *testing.T) {
	// Con un trait muy disperso en el prior, la cuota de ese trait deberia
	// tocar el techo por trait en la mayoria de las corridas.
	prior := &domain.TraitProfile{SubjectID: "s", SessionCount: 0}
	for tr := range prior.Estimates {
		prior.Estimates[tr] = domain.TraitEstimate{Score: 0.9, Confidence: 0.8, Dispersion: 0.02, ItemCount: 6}
	}
	prior.Estimates[domain.TraitImmersion] = domain.TraitEstimate{Score: 0.5, Confidence: 0.1, Dispersion: 0.45, ItemCount: 2}

	cfg := DefaultSelectionConfig()
	atCap := 0
	for seed := int64(1); seed <= 10; seed++ {
		result := newTestSelector(seed).Select(prior, cfg)
		if result.Coverage[domain.TraitImmersion] == cfg.MaxPerTrait {
			atCap++
		}
	}
	if atCap < 5 {
		t.Fatalf("expected uncertain trait at cap in most runs, got %d/10", atCap)
	}
}
