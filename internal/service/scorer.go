package service

import (
	"math"

	"fanlens/internal/catalog"
	"fanlens/internal/domain"
)

// ScoreResult es la salida completa del scorer para un set de respuestas.
type ScoreResult struct {
	Estimates         [domain.TraitCount]domain.TraitEstimate `json:"estimates"`
	OverallConfidence float64                                 `json:"overall_confidence"`
	Reliability       float64                                 `json:"reliability"`
	EstimatedAccuracy float64                                 `json:"estimated_accuracy"`
	Skipped           int                                     `json:"skipped"`
}

// Vector arma el TraitVector de puntajes del resultado.
func (r *ScoreResult) Vector() domain.TraitVector {
	var v domain.TraitVector
	for i := range r.Estimates {
		v[i] = r.Estimates[i].Score
	}
	return v
}

// TraitScorer agrega respuestas en estimados por trait. Es una funcion pura
// del set de respuestas: el mismo set produce siempre el mismo resultado.
type TraitScorer struct {
	catalog *catalog.Catalog
}

func NewTraitScorer(cat *catalog.Catalog) *TraitScorer {
	return &TraitScorer{catalog: cat}
}

type contribution struct {
	value  float64
	weight float64
	itemID string
}

// Score recalcula los estimados desde cero. Respuestas que referencian un
// item u opcion desconocida se saltean, no invalidan el lote.
func (s *TraitScorer) Score(responses []domain.ResponseEvent) ScoreResult {
	var contribs [domain.TraitCount][]contribution
	skipped := 0

	for _, resp := range responses {
		item, ok := s.catalog.Item(resp.ItemID)
		if !ok {
			skipped++
			continue
		}
		opt, ok := item.Option(resp.OptionID)
		if !ok {
			skipped++
			continue
		}

		value := normalizeValue(opt.Value, item.Type)

		// Trait primario con peso completo (la discriminacion del item).
		contribs[item.Primary] = append(contribs[item.Primary], contribution{
			value:  value,
			weight: item.Discrimination,
			itemID: item.ID,
		})

		// Cargas secundarias: peso = discriminacion x |carga|. Una carga
		// negativa aporta el valor reflejado para que la media ponderada
		// nunca vea pesos negativos.
		for _, loading := range item.Secondary {
			v := value
			if loading.Weight < 0 {
				v = 1 - value
			}
			contribs[loading.Trait] = append(contribs[loading.Trait], contribution{
				value:  v,
				weight: item.Discrimination * math.Abs(loading.Weight),
				itemID: item.ID,
			})
		}

		// Deltas de la opcion elegida: ajustes menores sobre otros traits.
		for _, delta := range opt.Deltas {
			contribs[delta.Trait] = append(contribs[delta.Trait], contribution{
				value:  clamp01(0.5 + delta.Weight/2),
				weight: item.Discrimination * 0.4,
				itemID: item.ID,
			})
		}
	}

	var result ScoreResult
	result.Skipped = skipped

	var confSum float64
	covered := 0
	totalContribs := 0
	var dispSum float64

	for t := range result.Estimates {
		result.Estimates[t] = aggregateTrait(contribs[t])
		if result.Estimates[t].ItemCount > 0 {
			confSum += result.Estimates[t].Confidence
			dispSum += result.Estimates[t].Dispersion
			covered++
			totalContribs += result.Estimates[t].ItemCount
		}
	}

	if covered > 0 {
		result.OverallConfidence = confSum / float64(covered)
	}
	result.Reliability = approximateReliability(totalContribs, covered, dispSum)
	result.EstimatedAccuracy = clamp01(0.5 + 0.45*result.OverallConfidence*result.Reliability)

	return result
}

// normalizeValue lleva el valor de la opcion a [0,1]. Los items binarios
// usan [-1,1] y se mapean afinmente.
func normalizeValue(v float64, itemType domain.ItemType) float64 {
	if itemType == domain.ItemTypeBinary {
		v = (v + 1) / 2
	}
	return clamp01(v)
}

// aggregateTrait reduce las contribuciones de un trait a un estimado.
// Sin contribuciones devuelve el default neutro documentado:
// score 0.5, confianza 0, dispersion 0.25.
func aggregateTrait(contribs []contribution) domain.TraitEstimate {
	if len(contribs) == 0 {
		return domain.TraitEstimate{Score: 0.5, Confidence: 0, Dispersion: 0.25}
	}

	var weightSum, weightedSum float64
	itemIDs := make([]string, 0, len(contribs))
	for _, c := range contribs {
		weightSum += c.weight
		weightedSum += c.value * c.weight
		itemIDs = append(itemIDs, c.itemID)
	}
	mean := weightedSum / weightSum

	var varianceSum float64
	var discSum float64
	for _, c := range contribs {
		d := c.value - mean
		varianceSum += c.weight * d * d
		discSum += c.weight
	}
	dispersion := math.Sqrt(varianceSum / weightSum)
	avgWeight := discSum / float64(len(contribs))

	n := float64(len(contribs))
	confidence := n / (n + 4.0)
	confidence += math.Max(0.25-dispersion, 0) * 0.4
	confidence += math.Max(math.Min((avgWeight-1.0)*0.1, 0.1), 0)
	if confidence > 0.95 {
		confidence = 0.95
	}

	return domain.TraitEstimate{
		Score:      mean,
		Confidence: clamp01(confidence),
		Dispersion: dispersion,
		ItemCount:  len(contribs),
		RawSum:     weightedSum,
		ItemIDs:    itemIDs,
	}
}

// approximateReliability aproxima el alfa de Cronbach a partir del total de
// contribuciones y un termino de varianza por item. Con menos de 3 items el
// estimado no tiene sentido y se devuelve 0.5.
func approximateReliability(totalContribs, covered int, dispSum float64) float64 {
	if totalContribs < 3 {
		return 0.5
	}
	meanDisp := 0.0
	if covered > 0 {
		meanDisp = dispSum / float64(covered)
	}
	// 1/12 es la varianza de una uniforme en [0,1]; sirve de techo.
	k := float64(totalContribs)
	alpha := (k / (k - 1)) * (1 - (meanDisp*meanDisp)/(1.0/12.0))
	return clamp01(alpha)
}
