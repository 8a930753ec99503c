package domain

import "time"

// ArchetypeDefinition describe un arquetipo de gusto del catalogo fijo.
// El centroide marca la region del espacio de traits donde vive el
// arquetipo; Affinities mapea etiquetas del esquema de tipado auxiliar
// (cuatro letras) a un peso de afinidad en [0,1].
type ArchetypeDefinition struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Centroid    TraitVector        `json:"centroid"`
	Affinities  map[string]float64 `json:"affinities,omitempty"`
}

// AuxTyping es una senal de tipado externa opcional (p. ej. un resultado
// tipo MBTI autoreportado) que el clasificador usa solo como bonus.
type AuxTyping struct {
	Scheme string `json:"scheme"`
	Label  string `json:"label"`
}

// ArchetypeAssignment es la clasificacion blanda de un sujeto.
// Invariante: los pesos del blend son >= 0 y suman ~1.
type ArchetypeAssignment struct {
	SubjectID         string             `json:"subject_id"`
	PrimaryID         string             `json:"primary_id"`
	PrimaryConfidence float64            `json:"primary_confidence"`
	SecondaryID       string             `json:"secondary_id,omitempty"`
	BlendWeights      map[string]float64 `json:"blend_weights"`

	// Indices derivados, todos en [0,100].
	Concentration float64 `json:"concentration"`
	Evangelism    float64 `json:"evangelism"`
	ImmersionIdx  float64 `json:"immersion_index"`

	UpdatedAt time.Time `json:"updated_at"`
}
