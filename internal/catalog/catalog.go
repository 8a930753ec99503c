// Package catalog expone los catalogos estaticos de items de evaluacion y
// arquetipos como tablas de solo lectura inyectables. Nada aqui es estado
// global: los tests pueden construir un catalogo chico de fixture.
package catalog

import (
	"fanlens/internal/domain"
)

// Limites autorales de los parametros IRT. Valores fuera de rango se
// recortan al construir el catalogo, nunca se rechazan.
const (
	MinDifficulty     = -3.0
	MaxDifficulty     = 3.0
	MinDiscrimination = 0.3
	MaxDiscrimination = 3.0
)

// Catalog agrupa items y arquetipos ya validados e indexados.
type Catalog struct {
	items      []domain.TraitItem
	itemIndex  map[string]int
	byTrait    [domain.TraitCount][]int
	archetypes []domain.ArchetypeDefinition
	archIndex  map[string]int
}

// New construye un catalogo a partir de definiciones autoradas, recortando
// parametros fuera de rango.
func New(items []domain.TraitItem, archetypes []domain.ArchetypeDefinition) *Catalog {
	c := &Catalog{
		itemIndex: make(map[string]int, len(items)),
		archIndex: make(map[string]int, len(archetypes)),
	}

	for _, item := range items {
		if item.ID == "" || item.Primary < 0 || item.Primary >= domain.TraitCount {
			continue
		}
		if _, dup := c.itemIndex[item.ID]; dup {
			continue
		}
		item.Difficulty = clamp(item.Difficulty, MinDifficulty, MaxDifficulty)
		item.Discrimination = clamp(item.Discrimination, MinDiscrimination, MaxDiscrimination)
		item.Secondary = clampLoadings(item.Secondary)
		for oi := range item.Options {
			item.Options[oi].Deltas = clampLoadings(item.Options[oi].Deltas)
			lo, hi := 0.0, 1.0
			if item.Type == domain.ItemTypeBinary {
				lo = -1.0
			}
			item.Options[oi].Value = clamp(item.Options[oi].Value, lo, hi)
		}
		idx := len(c.items)
		c.items = append(c.items, item)
		c.itemIndex[item.ID] = idx
		c.byTrait[item.Primary] = append(c.byTrait[item.Primary], idx)
	}

	for _, arch := range archetypes {
		if arch.ID == "" {
			continue
		}
		if _, dup := c.archIndex[arch.ID]; dup {
			continue
		}
		for i := range arch.Centroid {
			arch.Centroid[i] = clamp(arch.Centroid[i], 0, 1)
		}
		c.archIndex[arch.ID] = len(c.archetypes)
		c.archetypes = append(c.archetypes, arch)
	}

	return c
}

// Default arma el catalogo autorado de produccion.
func Default() *Catalog {
	return New(defaultItems(), defaultArchetypes())
}

// Items devuelve todos los items en orden de catalogo.
func (c *Catalog) Items() []domain.TraitItem {
	return c.items
}

// Item busca un item por id.
func (c *Catalog) Item(id string) (domain.TraitItem, bool) {
	idx, ok := c.itemIndex[id]
	if !ok {
		return domain.TraitItem{}, false
	}
	return c.items[idx], true
}

// ItemsByTrait devuelve los items cuyo trait primario es t.
func (c *Catalog) ItemsByTrait(t domain.Trait) []domain.TraitItem {
	if t < 0 || t >= domain.TraitCount {
		return nil
	}
	out := make([]domain.TraitItem, 0, len(c.byTrait[t]))
	for _, idx := range c.byTrait[t] {
		out = append(out, c.items[idx])
	}
	return out
}

// Anchors devuelve los items marcados como ancla, en orden de catalogo.
func (c *Catalog) Anchors() []domain.TraitItem {
	var out []domain.TraitItem
	for _, item := range c.items {
		if item.IsAnchor {
			out = append(out, item)
		}
	}
	return out
}

// Archetypes devuelve el catalogo de arquetipos en orden estable.
func (c *Catalog) Archetypes() []domain.ArchetypeDefinition {
	return c.archetypes
}

// Archetype busca un arquetipo por id.
func (c *Catalog) Archetype(id string) (domain.ArchetypeDefinition, bool) {
	idx, ok := c.archIndex[id]
	if !ok {
		return domain.ArchetypeDefinition{}, false
	}
	return c.archetypes[idx], true
}

func clampLoadings(loadings []domain.TraitLoading) []domain.TraitLoading {
	if len(loadings) == 0 {
		return nil
	}
	out := make([]domain.TraitLoading, 0, len(loadings))
	for _, l := range loadings {
		if l.Trait < 0 || l.Trait >= domain.TraitCount {
			continue
		}
		l.Weight = clamp(l.Weight, -1, 1)
		out = append(out, l)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
