package events

import "time"

// Evento publicado no tópico "analysis_generated" após cada geração (cache miss).
type AnalysisGenerated struct {
	MatchID     string    `json:"match_id"`
	Home        string    `json:"home"`
	Away        string    `json:"away"`
	League      string    `json:"league"`
	GeneratedAt time.Time `json:"generated_at"`
	Source      string    `json:"source"` // "analysis-service"
}
