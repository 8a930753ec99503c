package service

import (
	"math"
	"time"

	"fanlens/internal/catalog"
	"fanlens/internal/domain"
)

// ClassifierConfig reune las constantes ajustadas a mano del clasificador.
// No son estadistica validada: se tratan como configuracion.
type ClassifierConfig struct {
	// Temperature controla que tan concentrado queda el blend del softmax.
	Temperature float64 `json:"temperature"`
	// AestheticWeight multiplica las dimensiones esteticas en la distancia.
	AestheticWeight float64 `json:"aesthetic_weight"`
	// AffinityBonus escala el bonus por coincidencia de tipado auxiliar.
	AffinityBonus float64 `json:"affinity_bonus"`
	// SecondaryThreshold es el peso minimo para reportar un secundario.
	SecondaryThreshold float64 `json:"secondary_threshold"`
}

// DefaultClassifierConfig devuelve las constantes ajustadas a mano.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		Temperature:        0.12,
		AestheticWeight:    1.5,
		AffinityBonus:      0.15,
		SecondaryThreshold: 0.15,
	}
}

func (c ClassifierConfig) normalized() ClassifierConfig {
	def := DefaultClassifierConfig()
	if c.Temperature <= 0 {
		c.Temperature = def.Temperature
	}
	if c.AestheticWeight <= 0 {
		c.AestheticWeight = def.AestheticWeight
	}
	if c.AffinityBonus < 0 {
		c.AffinityBonus = def.AffinityBonus
	}
	if c.SecondaryThreshold <= 0 {
		c.SecondaryThreshold = def.SecondaryThreshold
	}
	return c
}

// ArchetypeClassifier mapea un vector de traits al catalogo fijo de
// arquetipos via similitud ponderada y softmax de temperatura fija.
// Funcion total: nunca falla para vectores extremos o degenerados.
type ArchetypeClassifier struct {
	catalog *catalog.Catalog
	cfg     ClassifierConfig
}

func NewArchetypeClassifier(cat *catalog.Catalog, cfg ClassifierConfig) *ArchetypeClassifier {
	return &ArchetypeClassifier{catalog: cat, cfg: cfg.normalized()}
}

// Classify produce la asignacion blanda. aux es opcional; si su etiqueta
// coincide con una afinidad conocida del arquetipo, suma un bonus al fit.
func (c *ArchetypeClassifier) Classify(vector domain.TraitVector, aux *domain.AuxTyping) domain.ArchetypeAssignment {
	archetypes := c.catalog.Archetypes()
	if len(archetypes) == 0 {
		return domain.ArchetypeAssignment{BlendWeights: map[string]float64{}, UpdatedAt: time.Now().UTC()}
	}

	fits := make([]float64, len(archetypes))
	for i, arch := range archetypes {
		fits[i] = 1.0 - c.weightedDistance(vector, arch.Centroid)
		if aux != nil && aux.Label != "" {
			if affinity, ok := arch.Affinities[aux.Label]; ok {
				fits[i] += c.cfg.AffinityBonus * affinity
			}
		}
	}

	weights := softmax(fits, c.cfg.Temperature)

	// Primario y secundario; empates se resuelven por orden de catalogo.
	primary, secondary := 0, -1
	for i := 1; i < len(weights); i++ {
		if weights[i] > weights[primary] {
			secondary = primary
			primary = i
		} else if secondary < 0 || weights[i] > weights[secondary] {
			secondary = i
		}
	}

	blend := make(map[string]float64, len(archetypes))
	for i, arch := range archetypes {
		blend[arch.ID] = weights[i]
	}

	assignment := domain.ArchetypeAssignment{
		PrimaryID:         archetypes[primary].ID,
		PrimaryConfidence: weights[primary],
		BlendWeights:      blend,
		Concentration:     concentrationIndex(weights),
		Evangelism:        evangelismIndex(vector),
		ImmersionIdx:      immersionIndex(vector),
		UpdatedAt:         time.Now().UTC(),
	}
	if secondary >= 0 && weights[secondary] >= c.cfg.SecondaryThreshold {
		assignment.SecondaryID = archetypes[secondary].ID
	}
	return assignment
}

// weightedDistance es la distancia euclidea normalizada entre el vector del
// sujeto y el centroide, con las dimensiones esteticas sobreponderadas.
func (c *ArchetypeClassifier) weightedDistance(v, centroid domain.TraitVector) float64 {
	var sum, weightSum float64
	for t := domain.Trait(0); t < domain.TraitCount; t++ {
		w := 1.0
		if t.IsAesthetic() {
			w = c.cfg.AestheticWeight
		}
		d := v[t] - centroid[t]
		sum += w * d * d
		weightSum += w
	}
	return math.Sqrt(sum / weightSum)
}

// softmax con el truco de restar el maximo para estabilidad numerica.
func softmax(fits []float64, temperature float64) []float64 {
	maxFit := fits[0]
	for _, f := range fits[1:] {
		if f > maxFit {
			maxFit = f
		}
	}

	weights := make([]float64, len(fits))
	var total float64
	for i, f := range fits {
		weights[i] = math.Exp((f - maxFit) / temperature)
		total += weights[i]
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}

// concentrationIndex = 100 x (1 - entropia de Shannon normalizada).
// Un blend uniforme da 0; todo el peso en un arquetipo da 100.
func concentrationIndex(weights []float64) float64 {
	if len(weights) < 2 {
		return 100
	}
	var entropy float64
	for _, w := range weights {
		if w > 0 {
			entropy -= w * math.Log(w)
		}
	}
	normalized := entropy / math.Log(float64(len(weights)))
	return clamp01(1-normalized) * 100
}

// evangelismIndex estima la propension a reclutar fans: combinacion lineal
// ponderada de traits, renormalizada a [0,100].
func evangelismIndex(v domain.TraitVector) float64 {
	raw := 0.35*v[domain.TraitExtraversion] +
		0.25*v[domain.TraitAgreeableness] +
		0.20*v[domain.TraitNoveltySeeking] +
		0.20*v[domain.TraitOpenness]
	return clamp01(raw) * 100
}

// immersionIndex estima la propension a sumergirse en un catalogo.
func immersionIndex(v domain.TraitVector) float64 {
	raw := 0.40*v[domain.TraitImmersion] +
		0.30*v[domain.TraitAestheticSensitivity] +
		0.20*v[domain.TraitOpenness] +
		0.10*(1-v[domain.TraitExtraversion])
	return clamp01(raw) * 100
}
