package service

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"fanlens/internal/catalog"
	"fanlens/internal/domain"
)

// SelectionConfig acota una sesion de evaluacion. Limites incoherentes
// (min > max) se corrigen, nunca se rechazan.
type SelectionConfig struct {
	MinItems    int `json:"min_items"`
	MaxItems    int `json:"max_items"`
	MinPerTrait int `json:"min_per_trait"`
	MaxPerTrait int `json:"max_per_trait"`
}

// DefaultSelectionConfig devuelve los limites estandar de una sesion.
func DefaultSelectionConfig() SelectionConfig {
	return SelectionConfig{
		MinItems:    12,
		MaxItems:    24,
		MinPerTrait: 2,
		MaxPerTrait: 3,
	}
}

func (c SelectionConfig) normalized() SelectionConfig {
	def := DefaultSelectionConfig()
	if c.MinItems <= 0 {
		c.MinItems = def.MinItems
	}
	if c.MaxItems <= 0 {
		c.MaxItems = def.MaxItems
	}
	if c.MinPerTrait <= 0 {
		c.MinPerTrait = def.MinPerTrait
	}
	if c.MaxPerTrait <= 0 {
		c.MaxPerTrait = def.MaxPerTrait
	}
	if c.MinItems > c.MaxItems {
		c.MinItems, c.MaxItems = c.MaxItems, c.MinItems
	}
	if c.MinPerTrait > c.MaxPerTrait {
		c.MinPerTrait, c.MaxPerTrait = c.MaxPerTrait, c.MinPerTrait
	}
	return c
}

// SelectionResult es el set de preguntas armado para una sesion.
type SelectionResult struct {
	Items               []domain.TraitItem     `json:"items"`
	Coverage            [domain.TraitCount]int `json:"coverage"`
	EstimatedConfidence float64                `json:"estimated_confidence"`
	EstimatedDuration   time.Duration          `json:"estimated_duration"`
}

// ItemSelector arma sets de items balanceados por trait, priorizando los
// traits con mas incertidumbre en el prior. La fuente aleatoria se inyecta
// para que los tests fijen la semilla.
type ItemSelector struct {
	catalog *catalog.Catalog
	rng     *rand.Rand
}

func NewItemSelector(cat *catalog.Catalog, rng *rand.Rand) *ItemSelector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ItemSelector{catalog: cat, rng: rng}
}

// Select arma el set de items para la sesion. prior puede ser nil (sujeto
// nuevo). Si el catalogo no alcanza para cubrir un trait, sigue con menos
// items para ese trait; nunca falla.
func (s *ItemSelector) Select(prior *domain.TraitProfile, cfg SelectionConfig) SelectionResult {
	cfg = cfg.normalized()

	selected := make([]domain.TraitItem, 0, cfg.MaxItems)
	chosen := make(map[string]bool)
	var coverage [domain.TraitCount]int

	add := func(item domain.TraitItem) bool {
		if chosen[item.ID] || len(selected) >= cfg.MaxItems {
			return false
		}
		chosen[item.ID] = true
		selected = append(selected, item)
		coverage[item.Primary]++
		return true
	}

	// Sujetos que vuelven arrancan con todas las anclas para que los
	// puntajes entre sesiones sean comparables.
	returning := prior != nil && prior.SessionCount > 0
	if returning {
		for _, anchor := range s.catalog.Anchors() {
			add(anchor)
		}
	}

	priorities := s.traitPriorities(prior)
	quotas := s.allocateQuotas(priorities, coverage, cfg)

	for t := domain.Trait(0); t < domain.TraitCount; t++ {
		s.fillTrait(t, quotas[t], prior, chosen, add)
	}

	// Pasada final: garantiza cobertura minima tomando uniformemente de lo
	// que quedo sin seleccionar.
	for t := domain.Trait(0); t < domain.TraitCount; t++ {
		for coverage[t] < cfg.MinPerTrait {
			pool := s.unselected(t, chosen)
			if len(pool) == 0 || len(selected) >= cfg.MaxItems {
				break
			}
			add(pool[s.rng.Intn(len(pool))])
		}
	}

	s.rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})

	return SelectionResult{
		Items:               selected,
		Coverage:            coverage,
		EstimatedConfidence: estimateConfidence(len(selected), coverage),
		EstimatedDuration:   estimateDuration(selected),
	}
}

// traitPriorities calcula la prioridad de medicion por trait: base 1.0 mas
// un termino de varianza conocida y otro de cercania al punto neutro (0.5),
// que es donde menos se sabe del sujeto.
func (s *ItemSelector) traitPriorities(prior *domain.TraitProfile) [domain.TraitCount]float64 {
	var p [domain.TraitCount]float64
	for t := range p {
		p[t] = 1.0
		if prior == nil || prior.Estimates[t].ItemCount == 0 {
			p[t] += 0.75
			continue
		}
		est := prior.Estimates[t]
		p[t] += est.Dispersion * 1.5
		p[t] += (1.0 - math.Abs(est.Score-0.5)*2.0) * 0.5
	}
	return p
}

// allocateQuotas reparte los lugares restantes proporcionalmente a la
// prioridad, acotado por [MinPerTrait, MaxPerTrait]; el resto se asigna de
// mayor a menor prioridad.
func (s *ItemSelector) allocateQuotas(priorities [domain.TraitCount]float64, coverage [domain.TraitCount]int, cfg SelectionConfig) [domain.TraitCount]int {
	slots := cfg.MaxItems
	for _, c := range coverage {
		slots -= c
	}
	if slots < 0 {
		slots = 0
	}

	var total float64
	for _, p := range priorities {
		total += p
	}

	var quotas [domain.TraitCount]int
	assigned := 0
	for t := range quotas {
		target := int(math.Floor(float64(slots) * priorities[t] / total))
		if target+coverage[t] > cfg.MaxPerTrait {
			target = cfg.MaxPerTrait - coverage[t]
		}
		if target < 0 {
			target = 0
		}
		quotas[t] = target
		assigned += target
	}

	// Resto: de mayor prioridad a menor, respetando el tope por trait.
	order := make([]int, domain.TraitCount)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return priorities[order[a]] > priorities[order[b]]
	})
	for assigned < slots {
		progressed := false
		for _, t := range order {
			if assigned >= slots {
				break
			}
			if quotas[t]+coverage[t] < cfg.MaxPerTrait {
				quotas[t]++
				assigned++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return quotas
}

type rankedItem struct {
	item  domain.TraitItem
	score float64
}

// fillTrait elige quota items para un trait: la mitad determinista (mejor
// ranking) y la otra mitad por muestreo ponderado sin reemplazo, para
// balancear eficiencia con variedad entre sesiones.
func (s *ItemSelector) fillTrait(t domain.Trait, quota int, prior *domain.TraitProfile, chosen map[string]bool, add func(domain.TraitItem) bool) {
	if quota <= 0 {
		return
	}

	ability := 0.0
	if prior != nil && prior.Estimates[t].ItemCount > 0 {
		ability = (prior.Estimates[t].Score - 0.5) * 6.0
	}

	var ranked []rankedItem
	for _, item := range s.catalog.ItemsByTrait(t) {
		if chosen[item.ID] {
			continue
		}
		score := item.Discrimination
		score += 1.0 - math.Abs(item.Difficulty-ability)/6.0
		if len(item.Secondary) > 0 {
			score += 0.15
		}
		score += s.rng.Float64() * 0.3
		ranked = append(ranked, rankedItem{item: item, score: score})
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].score != ranked[b].score {
			return ranked[a].score > ranked[b].score
		}
		return ranked[a].item.ID < ranked[b].item.ID
	})

	topK := (quota + 1) / 2
	taken := 0
	for i := 0; i < len(ranked) && taken < topK; i++ {
		if add(ranked[i].item) {
			taken++
		}
	}
	rest := ranked[min(topK, len(ranked)):]
	for taken < quota && len(rest) > 0 {
		idx := s.weightedPick(rest)
		if add(rest[idx].item) {
			taken++
		}
		rest = append(rest[:idx], rest[idx+1:]...)
	}
}

// weightedPick muestrea un indice proporcional al score de ranking.
func (s *ItemSelector) weightedPick(pool []rankedItem) int {
	var total float64
	for _, r := range pool {
		total += math.Max(r.score, 0.01)
	}
	target := s.rng.Float64() * total
	acc := 0.0
	for i, r := range pool {
		acc += math.Max(r.score, 0.01)
		if target <= acc {
			return i
		}
	}
	return len(pool) - 1
}

func (s *ItemSelector) unselected(t domain.Trait, chosen map[string]bool) []domain.TraitItem {
	var pool []domain.TraitItem
	for _, item := range s.catalog.ItemsByTrait(t) {
		if !chosen[item.ID] {
			pool = append(pool, item)
		}
	}
	return pool
}

// estimateConfidence es una funcion saturante del total de items, penalizada
// por varianza de cobertura entre traits y bonificada al cruzar los umbrales
// de cobertura minima.
func estimateConfidence(total int, coverage [domain.TraitCount]int) float64 {
	if total == 0 {
		return 0
	}
	conf := float64(total) / (float64(total) + 12.0)

	mean := float64(total) / float64(domain.TraitCount)
	var variance float64
	for _, c := range coverage {
		d := float64(c) - mean
		variance += d * d
	}
	variance /= float64(domain.TraitCount)
	conf -= math.Min(variance*0.02, 0.15)

	allTwo, allThree := true, true
	for _, c := range coverage {
		if c < 2 {
			allTwo = false
		}
		if c < 3 {
			allThree = false
		}
	}
	if allTwo {
		conf += 0.05
	}
	if allThree {
		conf += 0.05
	}

	return clamp01(conf)
}

// estimateDuration asume ~12s por item binario y ~18s por item de escala.
func estimateDuration(items []domain.TraitItem) time.Duration {
	var total time.Duration
	for _, item := range items {
		if item.Type == domain.ItemTypeBinary {
			total += 12 * time.Second
		} else {
			total += 18 * time.Second
		}
	}
	return total
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
