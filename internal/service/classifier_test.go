package service

import (
	"math"
	"testing"

	"fanlens/internal/catalog"
	"fanlens/internal/domain"
)

func newTestClassifier() *ArchetypeClassifier {
	return NewArchetypeClassifier(catalog.Default(), DefaultClassifierConfig())
}

func TestClassifyBlendIsDistribution(t *testing.T) {
	classifier := newTestClassifier()

	vectors := []domain.TraitVector{
		domain.NeutralVector(),
		{},
		{1, 1, 1, 1, 1, 1, 1, 1},
		{0.85, 0.40, 0.55, 0.50, 0.40, 0.90, 0.60, 0.45},
	}

	for i, v := range vectors {
		assignment := classifier.Classify(v, nil)

		var sum float64
		for id, w := range assignment.BlendWeights {
			if w < 0 {
				t.Fatalf("vector %d: negative weight %f for %s", i, w, id)
			}
			sum += w
		}
		if math.Abs(sum-1.0) > 0.05 {
			t.Fatalf("vector %d: blend sums to %f, want ~1", i, sum)
		}
		if assignment.PrimaryID == "" {
			t.Fatalf("vector %d: expected a primary archetype", i)
		}
		if assignment.SecondaryID == assignment.PrimaryID && assignment.SecondaryID != "" {
			t.Fatalf("vector %d: secondary equals primary", i)
		}
	}
}

func TestClassifyMatchesNearestCentroid(t *testing.T) {
	classifier := newTestClassifier()
	cat := catalog.Default()

	// Un vector exactamente sobre un centroide debe clasificar a ese
	// arquetipo como primario.
	for _, arch := range cat.Archetypes() {
		assignment := classifier.Classify(arch.Centroid, nil)
		if assignment.PrimaryID != arch.ID {
			t.Fatalf("centroid of %s classified as %s", arch.ID, assignment.PrimaryID)
		}
	}
}

func TestClassifyDegenerateVectorStaysBalanced(t *testing.T) {
	classifier := newTestClassifier()

	assignment := classifier.Classify(domain.NeutralVector(), nil)

	// El vector neutro no deberia producir una asignacion muy concentrada.
	if assignment.PrimaryConfidence > 0.6 {
		t.Fatalf("neutral vector too concentrated: primary confidence %f", assignment.PrimaryConfidence)
	}
	if assignment.Concentration > 60 {
		t.Fatalf("neutral vector concentration %f too high", assignment.Concentration)
	}
}

func TestClassifyAuxTypingBonus(t *testing.T) {
	classifier := newTestClassifier()
	vector := domain.NeutralVector()

	without := classifier.Classify(vector, nil)
	with := classifier.Classify(vector, &domain.AuxTyping{Scheme: "mbti", Label: "ENTP"})

	// ENTP tiene afinidad fuerte con explorer: el bonus debe subir su peso.
	if with.BlendWeights["explorer"] <= without.BlendWeights["explorer"] {
		t.Fatalf("expected aux bonus to raise explorer weight: %f vs %f",
			with.BlendWeights["explorer"], without.BlendWeights["explorer"])
	}
}

func TestClassifyIndicesInRange(t *testing.T) {
	classifier := newTestClassifier()

	for _, v := range []domain.TraitVector{{}, domain.NeutralVector(), {1, 1, 1, 1, 1, 1, 1, 1}} {
		assignment := classifier.Classify(v, nil)
		if assignment.Evangelism < 0 || assignment.Evangelism > 100 {
			t.Fatalf("evangelism %f out of [0,100]", assignment.Evangelism)
		}
		if assignment.ImmersionIdx < 0 || assignment.ImmersionIdx > 100 {
			t.Fatalf("immersion index %f out of [0,100]", assignment.ImmersionIdx)
		}
		if assignment.Concentration < 0 || assignment.Concentration > 100 {
			t.Fatalf("concentration %f out of [0,100]", assignment.Concentration)
		}
	}
}

func TestClassifierConfigNormalizes(t *testing.T) {
	classifier := NewArchetypeClassifier(catalog.Default(), ClassifierConfig{Temperature: -1})

	// Temperatura invalida cae al default; la clasificacion sigue sana.
	assignment := classifier.Classify(domain.NeutralVector(), nil)
	if assignment.PrimaryID == "" {
		t.Fatalf("expected classification with normalized config")
	}
}
