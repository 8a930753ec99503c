package service

import (
	"math"
	"sort"
	"time"

	"fanlens/internal/catalog"
	"fanlens/internal/domain"
)

// Pesos base por tipo de senal, segun su fuerza predictiva: una vuelta no
// inducida vale mucho mas que una reproduccion pasiva. Autorados a mano.
var signalBaseWeights = map[domain.SignalKind]float64{
	domain.SignalUnpromptedReturn: 3.0,
	domain.SignalSubscribe:        2.5,
	domain.SignalCatalogDeepDive:  2.2,
	domain.SignalShare:            1.8,
	domain.SignalComment:          1.4,
	domain.SignalFullView:         1.0,
	domain.SignalLike:             0.6,
	domain.SignalPassiveReplay:    0.3,
}

// PredictorConfig reune las constantes ajustadas a mano del predictor.
type PredictorConfig struct {
	// HalfLife del decaimiento exponencial de las senales.
	HalfLife time.Duration `json:"half_life"`
	// DecayFloor evita que una senal vieja valga exactamente cero.
	DecayFloor float64 `json:"decay_floor"`
	// ExpectedMaxSignal es la constante de compresion log1p del sub-score.
	ExpectedMaxSignal float64 `json:"expected_max_signal"`
	// Pesos fijos del sub-score de patron de retorno.
	OrganicWeight     float64 `json:"organic_weight"`
	FrequencyWeight   float64 `json:"frequency_weight"`
	ConsistencyWeight float64 `json:"consistency_weight"`
	// ReferenceGap calibra el termino de consistencia entre visitas.
	ReferenceGap time.Duration `json:"reference_gap"`
	// ExpectedWeeklyVisits satura el termino de frecuencia.
	ExpectedWeeklyVisits float64 `json:"expected_weekly_visits"`
}

// DefaultPredictorConfig devuelve las constantes estandar.
func DefaultPredictorConfig() PredictorConfig {
	return PredictorConfig{
		HalfLife:             168 * time.Hour,
		DecayFloor:           0.05,
		ExpectedMaxSignal:    40,
		OrganicWeight:        0.5,
		FrequencyWeight:      0.25,
		ConsistencyWeight:    0.25,
		ReferenceGap:         96 * time.Hour,
		ExpectedWeeklyVisits: 7,
	}
}

func (c PredictorConfig) normalized() PredictorConfig {
	def := DefaultPredictorConfig()
	if c.HalfLife <= 0 {
		c.HalfLife = def.HalfLife
	}
	if c.DecayFloor <= 0 || c.DecayFloor >= 1 {
		c.DecayFloor = def.DecayFloor
	}
	if c.ExpectedMaxSignal <= 0 {
		c.ExpectedMaxSignal = def.ExpectedMaxSignal
	}
	if c.OrganicWeight <= 0 || c.FrequencyWeight <= 0 || c.ConsistencyWeight <= 0 {
		c.OrganicWeight = def.OrganicWeight
		c.FrequencyWeight = def.FrequencyWeight
		c.ConsistencyWeight = def.ConsistencyWeight
	}
	if c.ReferenceGap <= 0 {
		c.ReferenceGap = def.ReferenceGap
	}
	if c.ExpectedWeeklyVisits <= 0 {
		c.ExpectedWeeklyVisits = def.ExpectedWeeklyVisits
	}
	return c
}

// EngagementPredictor combina coherencia de gusto, fuerza de senales y
// patron de retorno en una prediccion acotada [0,100]. Funcion total sobre
// sus entradas; el reloj se inyecta para tests deterministas.
type EngagementPredictor struct {
	catalog *catalog.Catalog
	cfg     PredictorConfig
	now     func() time.Time
}

func NewEngagementPredictor(cat *catalog.Catalog, cfg PredictorConfig, now func() time.Time) *EngagementPredictor {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &EngagementPredictor{catalog: cat, cfg: cfg.normalized(), now: now}
}

// Predict calcula los tres sub-scores y los combina por media geometrica:
// un componente cercano a cero hunde la prediccion en lugar de promediarse.
func (p *EngagementPredictor) Predict(subjectWeights, targetWeights map[string]float64, signals []domain.EngagementSignal, visits []domain.VisitSession) domain.EngagementPrediction {
	coherence := p.tasteCoherence(subjectWeights, targetWeights)
	signalScore := p.signalScore(signals)
	returnScore := p.returnScore(visits)

	combined := 100 * math.Cbrt(coherence*signalScore*returnScore)

	pred := domain.EngagementPrediction{
		TasteCoherence: coherence,
		SignalScore:    signalScore,
		ReturnScore:    returnScore,
		Combined:       combined,
		Tier:           TierForScore(combined),
		SignalCount:    len(signals),
		ComputedAt:     p.now(),
	}
	for i := range signals {
		if pred.LastSignalAt == nil || signals[i].CreatedAt.After(*pred.LastSignalAt) {
			t := signals[i].CreatedAt
			pred.LastSignalAt = &t
		}
	}
	return pred
}

// tasteCoherence es la similitud coseno entre los blends de arquetipos del
// sujeto y del target sobre el catalogo fijo completo (entradas ausentes
// valen 0), reescalada de [-1,1] a [0,1]. Un vector vacio devuelve el
// neutro 0.5: falta de datos no es desajuste.
func (p *EngagementPredictor) tasteCoherence(subject, target map[string]float64) float64 {
	if len(subject) == 0 || len(target) == 0 {
		return 0.5
	}

	var dot, normA, normB float64
	for _, arch := range p.catalog.Archetypes() {
		a := subject[arch.ID]
		b := target[arch.ID]
		dot += a * b
		normA += a * a
		normB += b * b
	}
	if normA == 0 || normB == 0 {
		return 0.5
	}
	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return clamp01((cos + 1) / 2)
}

// signalScore suma contribuciones con decaimiento exponencial (half-life
// configurada, con piso) y comprime via log1p contra un maximo esperado:
// satura, no crece sin limite.
func (p *EngagementPredictor) signalScore(signals []domain.EngagementSignal) float64 {
	now := p.now()
	var sum float64
	for _, sig := range signals {
		base, ok := signalBaseWeights[sig.Kind]
		if !ok {
			base = 0.3
		}
		weight := sig.Weight
		if weight <= 0 {
			weight = 1
		}
		age := now.Sub(sig.CreatedAt)
		if age < 0 {
			age = 0
		}
		decay := math.Pow(0.5, age.Hours()/p.cfg.HalfLife.Hours())
		if decay < p.cfg.DecayFloor {
			decay = p.cfg.DecayFloor
		}
		sum += base * weight * decay
	}
	return clamp01(math.Log1p(sum) / math.Log1p(p.cfg.ExpectedMaxSignal))
}

// returnScore combina ratio organico, frecuencia log-escalada y un termino
// de consistencia (gaps cortos y regulares puntuan mas alto) con pesos
// fijos; el ratio organico pesa mas.
func (p *EngagementPredictor) returnScore(visits []domain.VisitSession) float64 {
	if len(visits) == 0 {
		return 0.5
	}

	organic := 0
	starts := make([]time.Time, 0, len(visits))
	for _, v := range visits {
		if v.Origin == domain.OriginOrganic {
			organic++
		}
		starts = append(starts, v.StartedAt)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	organicRatio := float64(organic) / float64(len(visits))

	span := starts[len(starts)-1].Sub(starts[0])
	weeks := span.Hours() / (24 * 7)
	if weeks < 1 {
		weeks = 1
	}
	perWeek := float64(len(visits)) / weeks
	frequency := clamp01(math.Log1p(perWeek) / math.Log1p(p.cfg.ExpectedWeeklyVisits))

	consistency := 0.5
	if len(starts) >= 3 {
		var gapSum float64
		for i := 1; i < len(starts); i++ {
			gapSum += starts[i].Sub(starts[i-1]).Hours()
		}
		meanGap := gapSum / float64(len(starts)-1)
		consistency = math.Exp(-meanGap / p.cfg.ReferenceGap.Hours())
	}

	total := p.cfg.OrganicWeight + p.cfg.FrequencyWeight + p.cfg.ConsistencyWeight
	score := (p.cfg.OrganicWeight*organicRatio +
		p.cfg.FrequencyWeight*frequency +
		p.cfg.ConsistencyWeight*consistency) / total
	return clamp01(score)
}

// TierForScore mapea el score combinado a su tier ordinal. Umbrales fijos
// y no solapados.
func TierForScore(combined float64) string {
	switch {
	case combined >= 75:
		return domain.TierSuperfan
	case combined >= 55:
		return domain.TierDevoted
	case combined >= 35:
		return domain.TierEngaged
	case combined >= 15:
		return domain.TierCurious
	default:
		return domain.TierPasserby
	}
}
