package dto

import "time"

// Match é uma entrada da cartelera diária vinda do colaborador de feed.
// ScheduledTime pode faltar; entradas sem horário passam direto pelo filtro
// de "hoje" como fallback.
type Match struct {
	Home          string     `json:"home"`
	Away          string     `json:"away"`
	League        string     `json:"league"`
	ScheduledTime *time.Time `json:"scheduled_time,omitempty"`
	Fact          string     `json:"fact,omitempty"`
}

// Source é uma referência citada pela IA no análisis
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

// AnalysisResult é a resposta da rota de análise, cacheada ou recém-gerada
type AnalysisResult struct {
	MatchID     string    `json:"match_id"`
	Content     string    `json:"content"`
	Sources     []Source  `json:"sources,omitempty"`
	Cached      bool      `json:"cached"`
	GeneratedAt time.Time `json:"generated_at"`
}

type AnalyzeRequest struct {
	Home          string     `json:"home"`
	Away          string     `json:"away"`
	League        string     `json:"league"`
	ScheduledTime *time.Time `json:"scheduled_time,omitempty"`
}
