package domain

import "time"

// SignalKind clasifica un evento de engagement. Cada tipo tiene un peso
// base distinto en el predictor segun su fuerza predictiva.
type SignalKind string

const (
	SignalUnpromptedReturn SignalKind = "unprompted_return"
	SignalSubscribe        SignalKind = "subscribe"
	SignalShare            SignalKind = "share"
	SignalComment          SignalKind = "comment"
	SignalFullView         SignalKind = "full_view"
	SignalLike             SignalKind = "like"
	SignalPassiveReplay    SignalKind = "passive_replay"
	// SignalCatalogDeepDive es derivado: lo emite el tracker cuando detecta
	// 5+ contenidos distintos de un mismo target en una ventana de 24h.
	SignalCatalogDeepDive SignalKind = "catalog_deep_dive"
)

// KnownSignalKinds lista los tipos aceptados, en orden estable.
var KnownSignalKinds = []SignalKind{
	SignalUnpromptedReturn,
	SignalSubscribe,
	SignalShare,
	SignalComment,
	SignalFullView,
	SignalLike,
	SignalPassiveReplay,
	SignalCatalogDeepDive,
}

// IsValid indica si el tipo de senal pertenece al conjunto conocido.
func (k SignalKind) IsValid() bool {
	for _, known := range KnownSignalKinds {
		if k == known {
			return true
		}
	}
	return false
}

// EngagementSignal es un evento discreto y fechado de interes hacia un
// target. Registro append-only.
type EngagementSignal struct {
	ID        string     `json:"id"`
	SubjectID string     `json:"subject_id"`
	TargetID  string     `json:"target_id"`
	Kind      SignalKind `json:"kind"`
	Weight    float64    `json:"weight"`
	ContentID string     `json:"content_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// VisitOrigin clasifica como llego el sujeto a la visita.
type VisitOrigin string

const (
	OriginOrganic     VisitOrigin = "organic"
	OriginAlgorithmic VisitOrigin = "algorithmic"
	OriginSocial      VisitOrigin = "social"
	OriginExternal    VisitOrigin = "external"
)

// VisitSession es una visita registrada. Append-only salvo EndedAt.
type VisitSession struct {
	ID        string      `json:"id"`
	SubjectID string      `json:"subject_id"`
	TargetID  string      `json:"target_id,omitempty"`
	Origin    VisitOrigin `json:"origin"`
	StartedAt time.Time   `json:"started_at"`
	EndedAt   *time.Time  `json:"ended_at,omitempty"`
}
