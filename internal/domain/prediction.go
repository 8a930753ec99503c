package domain

import "time"

// Niveles ordinales de la prediccion, de menor a mayor.
const (
	TierPasserby = "passerby"
	TierCurious  = "curious"
	TierEngaged  = "engaged"
	TierDevoted  = "devoted"
	TierSuperfan = "superfan"
)

// EngagementPrediction es el resultado cacheado para un par
// (subject, target): tres sub-puntajes, combinado en [0,100] y tier.
type EngagementPrediction struct {
	SubjectID      string     `json:"subject_id"`
	TargetID       string     `json:"target_id"`
	TasteCoherence float64    `json:"taste_coherence"`
	SignalScore    float64    `json:"signal_score"`
	ReturnScore    float64    `json:"return_score"`
	Combined       float64    `json:"combined"`
	Tier           string     `json:"tier"`
	SignalCount    int        `json:"signal_count"`
	LastSignalAt   *time.Time `json:"last_signal_at,omitempty"`
	ComputedAt     time.Time  `json:"computed_at"`
}
