package events

// Evento publicado no tópico "bet_settled" quando o resultado de uma aposta muda.
// O outcome pode voltar para PENDING: nenhuma máquina de estados restringe a transição.
type BetSettled struct {
	BetID    string `json:"bet_id"`
	UserID   string `json:"user_id"`
	Outcome  string `json:"outcome"` // "PENDING" | "WON" | "LOST"
	TsUnixMs int64  `json:"ts_unix_ms"`
}
