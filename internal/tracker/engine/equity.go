package engine

// projectionPoints é quantos pontos sintéticos entram na projeção linear,
// e projectionMinSettled o mínimo de liquidadas para ela ser emitida
const (
	projectionPoints     = 10
	projectionMinSettled = 5
)

// BuildEquityCurve monta a série temporal do bankroll acumulado.
// Ponto 0 é o bankroll inicial; cada aposta liquidada (ordem cronológica)
// aplica seu lucro com sinal ao acumulado. Com mais de 5 liquidadas, a curva
// ganha 10 pontos de projeção linear baseados no lucro médio por aposta,
// marcados com Projected=true.
func BuildEquityCurve(bets []BetRecord, initialBankroll float64) []Point {
	curve := realCurve(bets, initialBankroll)

	settled := len(curve) - 1
	if settled <= projectionMinSettled {
		return curve
	}

	avg := (curve[settled].Value - initialBankroll) / float64(settled)
	last := curve[settled].Value
	for i := 1; i <= projectionPoints; i++ {
		last += avg
		curve = append(curve, Point{
			Index:     settled + i,
			Value:     last,
			Projected: true,
		})
	}

	return curve
}

// realCurve é a sequência canônica (sem projeção) usada também pelo drawdown
func realCurve(bets []BetRecord, initialBankroll float64) []Point {
	settled := settledChronological(bets)

	curve := make([]Point, 0, len(settled)+1)
	curve = append(curve, Point{Index: 0, Value: initialBankroll})

	running := initialBankroll
	for i, b := range settled {
		running += b.SignedProfit()
		curve = append(curve, Point{Index: i + 1, Value: running})
	}
	return curve
}
