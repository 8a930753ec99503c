package domain

import "time"

// ItemType distingue el formato de respuesta de un item.
type ItemType string

const (
	// ItemTypeBinary usa opciones con valores normalizados en [-1,1].
	ItemTypeBinary ItemType = "binary"
	// ItemTypeMulti usa opciones con valores normalizados en [0,1].
	ItemTypeMulti ItemType = "multi"
)

// AnswerOption es una opcion de respuesta con valor normalizado y deltas
// opcionales sobre traits que no son el primario del item.
type AnswerOption struct {
	ID     string         `json:"id"`
	Label  string         `json:"label"`
	Value  float64        `json:"value"`
	Deltas []TraitLoading `json:"deltas,omitempty"`
}

// TraitItem es un item de evaluacion autorado una sola vez; inmutable.
// Difficulty y Discrimination son parametros estilo IRT: a que nivel de
// habilidad apunta el item y cuanta informacion aporta.
type TraitItem struct {
	ID             string         `json:"id"`
	Prompt         string         `json:"prompt"`
	Type           ItemType       `json:"type"`
	Primary        Trait          `json:"primary_trait"`
	Secondary      []TraitLoading `json:"secondary_loadings,omitempty"`
	Difficulty     float64        `json:"difficulty"`
	Discrimination float64        `json:"discrimination"`
	IsAnchor       bool           `json:"is_anchor"`
	Options        []AnswerOption `json:"options"`
}

// Option busca una opcion por id; devuelve false si no existe.
func (i *TraitItem) Option(optionID string) (AnswerOption, bool) {
	for _, opt := range i.Options {
		if opt.ID == optionID {
			return opt, true
		}
	}
	return AnswerOption{}, false
}

// ResponseEvent es la respuesta de un sujeto a un item. Entrada de solo
// lectura para el scorer.
type ResponseEvent struct {
	ItemID     string        `json:"item_id"`
	OptionID   string        `json:"option_id"`
	Latency    time.Duration `json:"latency,omitempty"`
	AnsweredAt time.Time     `json:"answered_at,omitempty"`
}
