package dto

import "github.com/radieske/bet-companion-platform/internal/tracker/engine"

type CreateBetResponse struct {
	BetID       string  `json:"bet_id"`
	DecimalOdds float64 `json:"decimal_odds"`
	Outcome     string  `json:"outcome"`
}

type EquityCurveResponse struct {
	Points []engine.Point `json:"points"`
}

type StakeSuggestionResponse struct {
	SuggestedStake float64 `json:"suggested_stake"`
	// Consultivo: o cliente nunca preenche o stake automaticamente com isso
	Advisory bool `json:"advisory"`
}

type BankrollResponse struct {
	InitialBankroll float64 `json:"initial_bankroll"`
}
