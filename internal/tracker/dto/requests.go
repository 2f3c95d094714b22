package dto

import "github.com/radieske/bet-companion-platform/internal/tracker/engine"

type CreateBetRequest struct {
	UserID string `json:"user_id"`
	Label  string `json:"label"`
	Kind   string `json:"kind"` // "SIMPLE" (default) | "COMBINED"

	// Só para COMBINED; a odd final é sempre o produto das legs,
	// calculado no servidor
	Legs []engine.Leg `json:"legs,omitempty"`

	Market      string  `json:"market,omitempty"`
	Stake       float64 `json:"stake"`
	DecimalOdds float64 `json:"decimal_odds,omitempty"` // ignorado para COMBINED
}

type UpdateOutcomeRequest struct {
	UserID  string `json:"user_id"`
	Outcome string `json:"outcome"` // "PENDING" | "WON" | "LOST"
}

type StakeSuggestionRequest struct {
	UserID            string  `json:"user_id"`
	DecimalOdds       float64 `json:"decimal_odds"`
	ConfidencePercent float64 `json:"confidence_percent"`

	// Opcional: quando zero, usa o bankroll corrente calculado pelo engine
	Bankroll float64 `json:"bankroll,omitempty"`
}

type SetBankrollRequest struct {
	UserID          string  `json:"user_id"`
	InitialBankroll float64 `json:"initial_bankroll"`
}
