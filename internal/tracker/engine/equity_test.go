package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEquityCurve_SeedAndSteps(t *testing.T) {
	bets := []BetRecord{
		{ID: "2", CreatedAt: 2000, Stake: 20, DecimalOdds: 1.5, Outcome: OutcomeLost},
		{ID: "1", CreatedAt: 1000, Stake: 10, DecimalOdds: 2.0, Outcome: OutcomeWon},
		{ID: "x", CreatedAt: 1500, Stake: 99, DecimalOdds: 4.0, Outcome: OutcomePending},
	}

	curve := BuildEquityCurve(bets, 100)

	require.Len(t, curve, 3) // seed + 2 liquidadas, pendente fica de fora
	assert.Equal(t, Point{Index: 0, Value: 100}, curve[0])
	assert.Equal(t, Point{Index: 1, Value: 110}, curve[1])
	assert.Equal(t, Point{Index: 2, Value: 90}, curve[2])
}

func TestBuildEquityCurve_StableTies(t *testing.T) {
	// mesmo createdAt: mantém a ordem de entrada da lista
	bets := []BetRecord{
		{ID: "a", CreatedAt: 1000, Stake: 10, DecimalOdds: 2.0, Outcome: OutcomeWon},
		{ID: "b", CreatedAt: 1000, Stake: 30, DecimalOdds: 1.5, Outcome: OutcomeLost},
	}

	curve := BuildEquityCurve(bets, 100)

	require.Len(t, curve, 3)
	assert.Equal(t, 110.0, curve[1].Value)
	assert.Equal(t, 80.0, curve[2].Value)
}

func TestBuildEquityCurve_NoProjectionAtFiveSettled(t *testing.T) {
	bets := make([]BetRecord, 0, 5)
	for i := 0; i < 5; i++ {
		bets = append(bets, BetRecord{
			ID: string(rune('a' + i)), CreatedAt: int64(i), Stake: 10, DecimalOdds: 2.0, Outcome: OutcomeWon,
		})
	}

	curve := BuildEquityCurve(bets, 100)

	require.Len(t, curve, 6)
	for _, p := range curve {
		assert.False(t, p.Projected)
	}
}

func TestBuildEquityCurve_ProjectionAboveFiveSettled(t *testing.T) {
	bets := make([]BetRecord, 0, 6)
	for i := 0; i < 6; i++ {
		bets = append(bets, BetRecord{
			ID: string(rune('a' + i)), CreatedAt: int64(i), Stake: 10, DecimalOdds: 2.0, Outcome: OutcomeWon,
		})
	}

	curve := BuildEquityCurve(bets, 100)

	// 1 seed + 6 reais + 10 projetados
	require.Len(t, curve, 17)

	real := curve[:7]
	projected := curve[7:]
	for _, p := range real {
		assert.False(t, p.Projected)
	}

	// lucro médio = 60/6 = 10 por aposta; projeção incrementa linear
	last := real[6].Value
	for i, p := range projected {
		assert.True(t, p.Projected, "ponto %d deveria estar marcado como projeção", p.Index)
		assert.Equal(t, 7+i, p.Index)
		assert.InDelta(t, last+10, p.Value, 1e-9)
		last = p.Value
	}
}

func TestBuildEquityCurve_EmptyList(t *testing.T) {
	curve := BuildEquityCurve(nil, 250)

	require.Len(t, curve, 1)
	assert.Equal(t, Point{Index: 0, Value: 250}, curve[0])
}
