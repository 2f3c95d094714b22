package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMetrics_NoSettledBets(t *testing.T) {
	bets := []BetRecord{
		{ID: "1", Stake: 10, DecimalOdds: 2.0, Outcome: OutcomePending},
		{ID: "2", Stake: 25, DecimalOdds: 1.5, Outcome: OutcomePending},
	}

	m := ComputeMetrics(bets, 500)

	assert.Equal(t, 500.0, m.CurrentBankroll)
	assert.Zero(t, m.NetProfit)
	assert.Zero(t, m.TotalInvested)
	assert.Zero(t, m.ROI)
	assert.Zero(t, m.Yield)
	assert.Zero(t, m.MaxDrawdown)
	assert.Zero(t, m.AvgProfitPerSettledBet)
	assert.Zero(t, m.SettledCount)
	assert.Empty(t, m.MarketProfit)
}

func TestComputeMetrics_Scenario(t *testing.T) {
	// cenário de referência: +10 na vitória, -20 na derrota
	bets := []BetRecord{
		{ID: "1", CreatedAt: 1, Stake: 10, DecimalOdds: 2.0, Outcome: OutcomeWon},
		{ID: "2", CreatedAt: 2, Stake: 20, DecimalOdds: 1.5, Outcome: OutcomeLost},
	}

	m := ComputeMetrics(bets, 100)

	assert.InDelta(t, -10.0, m.NetProfit, 1e-9)
	assert.InDelta(t, 90.0, m.CurrentBankroll, 1e-9)
	assert.InDelta(t, 30.0, m.TotalInvested, 1e-9)
	assert.InDelta(t, -33.3333, m.ROI, 0.001)
	assert.Equal(t, m.ROI, m.Yield, "yield e roi compartilham a fórmula")
	assert.Equal(t, 2, m.SettledCount)
	assert.InDelta(t, -5.0, m.AvgProfitPerSettledBet, 1e-9)
}

func TestComputeMetrics_Idempotent(t *testing.T) {
	bets := []BetRecord{
		{ID: "1", CreatedAt: 3, Stake: 50, DecimalOdds: 1.8, Outcome: OutcomeWon, Market: "corners"},
		{ID: "2", CreatedAt: 1, Stake: 30, DecimalOdds: 2.2, Outcome: OutcomeLost},
		{ID: "3", CreatedAt: 2, Stake: 15, DecimalOdds: 3.0, Outcome: OutcomePending},
	}

	first := ComputeMetrics(bets, 1000)
	second := ComputeMetrics(bets, 1000)

	assert.Equal(t, first, second)
}

func TestComputeMetrics_BreakEvenOddsWin(t *testing.T) {
	bets := []BetRecord{
		{ID: "1", CreatedAt: 1, Stake: 40, DecimalOdds: 1.0, Outcome: OutcomeWon},
	}

	m := ComputeMetrics(bets, 200)

	// odds 1.0 vencedora é break-even, não erro
	assert.Zero(t, m.NetProfit)
	assert.Equal(t, 200.0, m.CurrentBankroll)
	assert.Equal(t, 40.0, m.TotalInvested)
	assert.Equal(t, 1, m.SettledCount)
}

func TestComputeMetrics_MarketBreakdown(t *testing.T) {
	bets := []BetRecord{
		{ID: "1", CreatedAt: 1, Stake: 10, DecimalOdds: 2.0, Outcome: OutcomeWon, Market: "cards"},
		{ID: "2", CreatedAt: 2, Stake: 20, DecimalOdds: 1.5, Outcome: OutcomeLost},
		{ID: "3", CreatedAt: 3, Stake: 10, DecimalOdds: 2.0, Outcome: OutcomeWon, Market: "corners"},
		{ID: "4", CreatedAt: 4, Stake: 10, DecimalOdds: 2.0, Outcome: OutcomeLost, Market: "corners"},
	}

	m := ComputeMetrics(bets, 100)

	require.Contains(t, m.MarketProfit, "cards")
	assert.InDelta(t, 10.0, m.MarketProfit["cards"], 1e-9)

	require.Contains(t, m.MarketProfit, MarketOther)
	assert.InDelta(t, -20.0, m.MarketProfit[MarketOther], 1e-9)

	// corners fechou exatamente em zero: sai do breakdown
	assert.NotContains(t, m.MarketProfit, "corners")
}

func TestComputeMetrics_DrawdownChronological(t *testing.T) {
	// lista fora de ordem de propósito: o drawdown deve seguir createdAt.
	// cronologia: +100 (pico 1100), -300 (800), +50 (850)
	bets := []BetRecord{
		{ID: "3", CreatedAt: 3000, Stake: 50, DecimalOdds: 2.0, Outcome: OutcomeWon},
		{ID: "1", CreatedAt: 1000, Stake: 100, DecimalOdds: 2.0, Outcome: OutcomeWon},
		{ID: "2", CreatedAt: 2000, Stake: 300, DecimalOdds: 1.5, Outcome: OutcomeLost},
	}

	m := ComputeMetrics(bets, 1000)

	// (1100 - 800) / 1100
	assert.InDelta(t, 300.0/1100.0*100, m.MaxDrawdown, 0.001)
}

func TestComputeMetrics_DrawdownPeakIsInitialBankroll(t *testing.T) {
	bets := []BetRecord{
		{ID: "1", CreatedAt: 1, Stake: 250, DecimalOdds: 1.9, Outcome: OutcomeLost},
	}

	m := ComputeMetrics(bets, 1000)

	assert.InDelta(t, 25.0, m.MaxDrawdown, 1e-9)
}

func TestCombinedOdds(t *testing.T) {
	legs := []Leg{
		{Description: "Real Madrid ML", DecimalOdds: 1.5},
		{Description: "Over 2.5", DecimalOdds: 2.0},
		{Description: "BTTS", DecimalOdds: 1.8},
	}

	assert.InDelta(t, 5.4, CombinedOdds(legs), 1e-9)
}
