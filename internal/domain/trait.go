package domain

import (
	"strings"
	"time"
)

// Trait es una de las ocho dimensiones continuas del perfil.
// Las primeras cinco son de personalidad (modelo OCEAN), las ultimas tres
// son dimensiones esteticas propias del dominio de gustos.
type Trait int

const (
	TraitOpenness Trait = iota
	TraitConscientiousness
	TraitExtraversion
	TraitAgreeableness
	TraitNeuroticism
	TraitNoveltySeeking
	TraitAestheticSensitivity
	TraitImmersion

	// TraitCount cierra el enum; los arrays indexados por Trait usan este tamano.
	TraitCount
)

var traitNames = [TraitCount]string{
	"openness",
	"conscientiousness",
	"extraversion",
	"agreeableness",
	"neuroticism",
	"novelty_seeking",
	"aesthetic_sensitivity",
	"immersion",
}

func (t Trait) String() string {
	if t < 0 || t >= TraitCount {
		return "unknown"
	}
	return traitNames[t]
}

// IsAesthetic indica si la dimension pertenece al bloque estetico del perfil.
func (t Trait) IsAesthetic() bool {
	return t >= TraitNoveltySeeking && t < TraitCount
}

// ParseTrait resuelve el nombre de un trait; devuelve false si no existe.
func ParseTrait(s string) (Trait, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range traitNames {
		if name == s {
			return Trait(i), true
		}
	}
	return 0, false
}

// TraitVector es el vector denso de puntajes por trait, cada uno en [0,1].
type TraitVector [TraitCount]float64

// NeutralVector devuelve el vector sin informacion (todo en 0.5).
func NeutralVector() TraitVector {
	var v TraitVector
	for i := range v {
		v[i] = 0.5
	}
	return v
}

// TraitLoading asocia un trait con un peso en [-1,1]. Se usa tanto para
// cargas secundarias de items como para deltas de opciones.
type TraitLoading struct {
	Trait  Trait   `json:"trait"`
	Weight float64 `json:"weight"`
}

// TraitEstimate es el resultado agregado para un trait.
type TraitEstimate struct {
	Score      float64  `json:"score"`
	Confidence float64  `json:"confidence"`
	Dispersion float64  `json:"dispersion"`
	ItemCount  int      `json:"item_count"`
	RawSum     float64  `json:"raw_sum"`
	ItemIDs    []string `json:"item_ids,omitempty"`
}

// TraitProfile agrupa los estimados de un sujeto mas metricas globales.
type TraitProfile struct {
	SubjectID         string                    `json:"subject_id"`
	Estimates         [TraitCount]TraitEstimate `json:"estimates"`
	OverallConfidence float64                   `json:"overall_confidence"`
	Reliability       float64                   `json:"reliability"`
	EstimatedAccuracy float64                   `json:"estimated_accuracy"`
	SessionCount      int                       `json:"session_count"`
	UpdatedAt         time.Time                 `json:"updated_at"`
}

// Vector arma el TraitVector de puntajes del perfil.
func (p *TraitProfile) Vector() TraitVector {
	var v TraitVector
	for i := range p.Estimates {
		v[i] = p.Estimates[i].Score
	}
	return v
}
