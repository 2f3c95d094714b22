package engine

import "sort"

// ComputeMetrics agrega a lista de apostas em métricas de desempenho.
// Só apostas liquidadas entram na conta; casos degenerados (nenhuma liquidada,
// investimento zero) retornam zeros, nunca NaN/Infinity. Função pura: chamadas
// repetidas sobre a mesma lista produzem saída idêntica.
func ComputeMetrics(bets []BetRecord, initialBankroll float64) Metrics {
	m := Metrics{
		CurrentBankroll: initialBankroll,
		MarketProfit:    map[string]float64{},
	}

	perMarket := map[string]float64{}

	for _, b := range bets {
		if !b.Settled() {
			continue
		}
		profit := b.SignedProfit()
		m.NetProfit += profit
		m.TotalInvested += b.Stake // todo stake liquidado conta, ganhe ou perca
		m.SettledCount++

		perMarket[b.MarketOrDefault()] += profit
	}

	m.CurrentBankroll = initialBankroll + m.NetProfit

	if m.TotalInvested > 0 {
		m.ROI = m.NetProfit / m.TotalInvested * 100
	}
	// mesma fórmula por design: a UI mostra os dois
	m.Yield = m.ROI

	if m.SettledCount > 0 {
		m.AvgProfitPerSettledBet = m.NetProfit / float64(m.SettledCount)
	}

	// grupos com saldo exatamente zero ficam de fora do breakdown
	for mk, p := range perMarket {
		if p != 0 {
			m.MarketProfit[mk] = p
		}
	}

	// drawdown é calculado sobre a sequência cronológica da curva de equity,
	// nunca sobre a ordem de inserção da lista
	m.MaxDrawdown = maxDrawdown(realCurve(bets, initialBankroll))

	return m
}

// maxDrawdown retorna a maior queda pico-a-vale em %, pico inicial = primeiro
// ponto da curva (o bankroll inicial)
func maxDrawdown(curve []Point) float64 {
	if len(curve) == 0 {
		return 0
	}

	peak := curve[0].Value
	worst := 0.0
	for _, p := range curve {
		if p.Value > peak {
			peak = p.Value
		}
		if peak > 0 {
			if dd := (peak - p.Value) / peak; dd > worst {
				worst = dd
			}
		}
	}
	return worst * 100
}

// settledChronological filtra liquidadas e ordena por createdAt ascendente.
// Empates preservam a ordem de entrada (sort estável).
func settledChronological(bets []BetRecord) []BetRecord {
	settled := make([]BetRecord, 0, len(bets))
	for _, b := range bets {
		if b.Settled() {
			settled = append(settled, b)
		}
	}
	sort.SliceStable(settled, func(i, j int) bool {
		return settled[i].CreatedAt < settled[j].CreatedAt
	})
	return settled
}
