package events

// Evento publicado no tópico "bet_registered" quando o usuário cadastra uma aposta.
type BetRegistered struct {
	BetID       string  `json:"bet_id"`
	UserID      string  `json:"user_id"`
	Label       string  `json:"label"`
	Kind        string  `json:"kind"` // "SIMPLE" | "COMBINED"
	Market      string  `json:"market,omitempty"`
	Stake       float64 `json:"stake"`
	DecimalOdds float64 `json:"decimal_odds"`
	TsUnixMs    int64   `json:"ts_unix_ms"`
}
