package engine

import "math"

// kellyFraction é a fração fixa aplicada sobre o Kelly cheio (quarter Kelly)
const kellyFraction = 0.25

// SuggestStake sugere um stake via Kelly fracionado (1/4 do Kelly cheio).
// Entradas fora de faixa (odds <= 1, confiança fora de (0,100), bankroll <= 0)
// retornam 0 em vez de erro. Edge não-positivo na confiança declarada também
// retorna 0: a leitura é "não aposte". Saída arredondada em 2 casas.
// O valor é consultivo: nunca preenche o stake sem confirmação do usuário.
func SuggestStake(decimalOdds, confidencePercent, bankroll float64) float64 {
	if decimalOdds <= 1 || confidencePercent <= 0 || confidencePercent >= 100 || bankroll <= 0 {
		return 0
	}

	b := decimalOdds - 1
	p := confidencePercent / 100
	q := 1 - p

	fullKelly := (b*p - q) / b
	safeFraction := fullKelly * kellyFraction
	if safeFraction <= 0 {
		return 0
	}

	return math.Round(bankroll*safeFraction*100) / 100
}
