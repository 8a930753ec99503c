package catalog

import (
	"testing"

	"fanlens/internal/domain"
)

func TestDefaultCatalogShape(t *testing.T) {
	cat := Default()

	if len(cat.Items()) != 48 {
		t.Fatalf("expected 48 items, got %d", len(cat.Items()))
	}
	if len(cat.Archetypes()) != 8 {
		t.Fatalf("expected 8 archetypes, got %d", len(cat.Archetypes()))
	}

	seen := make(map[string]bool)
	for _, item := range cat.Items() {
		if seen[item.ID] {
			t.Fatalf("duplicate item id %s", item.ID)
		}
		seen[item.ID] = true
	}

	for tr := domain.Trait(0); tr < domain.TraitCount; tr++ {
		items := cat.ItemsByTrait(tr)
		if len(items) != 6 {
			t.Fatalf("trait %s: expected 6 items, got %d", tr, len(items))
		}
		anchors := 0
		for _, item := range items {
			if item.IsAnchor {
				anchors++
			}
		}
		if anchors != 2 {
			t.Fatalf("trait %s: expected 2 anchors, got %d", tr, anchors)
		}
	}
}

func TestDefaultCatalogParamsInBounds(t *testing.T) {
	cat := Default()

	for _, item := range cat.Items() {
		if item.Difficulty < MinDifficulty || item.Difficulty > MaxDifficulty {
			t.Fatalf("item %s: difficulty %f out of bounds", item.ID, item.Difficulty)
		}
		if item.Discrimination < MinDiscrimination || item.Discrimination > MaxDiscrimination {
			t.Fatalf("item %s: discrimination %f out of bounds", item.ID, item.Discrimination)
		}
		if len(item.Options) < 2 {
			t.Fatalf("item %s: expected at least 2 options", item.ID)
		}
		for _, opt := range item.Options {
			if item.Type == domain.ItemTypeBinary {
				if opt.Value < -1 || opt.Value > 1 {
					t.Fatalf("item %s option %s: binary value %f out of [-1,1]", item.ID, opt.ID, opt.Value)
				}
			} else if opt.Value < 0 || opt.Value > 1 {
				t.Fatalf("item %s option %s: multi value %f out of [0,1]", item.ID, opt.ID, opt.Value)
			}
		}
	}
}

func TestDefaultCatalogCentroidsInRange(t *testing.T) {
	cat := Default()

	for _, arch := range cat.Archetypes() {
		for i, v := range arch.Centroid {
			if v < 0 || v > 1 {
				t.Fatalf("archetype %s: centroid[%d] = %f out of [0,1]", arch.ID, i, v)
			}
		}
	}
}

func TestNewSkipsDuplicatesAndClamps(t *testing.T) {
	items := []domain.TraitItem{
		{
			ID: "x-1", Type: domain.ItemTypeBinary, Primary: domain.TraitOpenness,
			Difficulty: 9.0, Discrimination: 0.01,
			Options: []domain.AnswerOption{{ID: "a", Value: 1}, {ID: "b", Value: -1}},
		},
		{
			ID: "x-1", Type: domain.ItemTypeBinary, Primary: domain.TraitOpenness,
			Difficulty: 0, Discrimination: 1,
			Options: []domain.AnswerOption{{ID: "a", Value: 1}, {ID: "b", Value: -1}},
		},
		{
			ID: "", Type: domain.ItemTypeBinary, Primary: domain.TraitOpenness,
			Options: []domain.AnswerOption{{ID: "a", Value: 1}},
		},
	}

	cat := New(items, nil)

	if len(cat.Items()) != 1 {
		t.Fatalf("expected 1 item after dedup, got %d", len(cat.Items()))
	}
	item, ok := cat.Item("x-1")
	if !ok {
		t.Fatalf("expected item x-1 present")
	}
	if item.Difficulty != MaxDifficulty {
		t.Fatalf("expected difficulty clamped to %f, got %f", MaxDifficulty, item.Difficulty)
	}
	if item.Discrimination != MinDiscrimination {
		t.Fatalf("expected discrimination clamped to %f, got %f", MinDiscrimination, item.Discrimination)
	}
}

func TestItemLookup(t *testing.T) {
	cat := Default()

	if _, ok := cat.Item("opn-1"); !ok {
		t.Fatalf("expected opn-1 present")
	}
	if _, ok := cat.Item("missing"); ok {
		t.Fatalf("expected missing item to be absent")
	}
	if _, ok := cat.Archetype("explorer"); !ok {
		t.Fatalf("expected explorer archetype present")
	}
}
