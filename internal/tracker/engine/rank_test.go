package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateRank(t *testing.T) {
	cases := []struct {
		name     string
		count    int
		yield    float64
		tier     string
		progress float64
		target   int
	}{
		{"novato no meio do caminho", 5, 0, TierNovice, 50, 10},
		{"novato mesmo lucrando", 9, 50, TierNovice, 90, 10},
		{"analista por volume", 30, -10, TierAnalyst, 50, 50},
		{"profissional lucrativo", 75, 5, TierProfessional, 50, 100},
		{"master terminal", 120, 15, TierMaster, 100, 120},
		{"volume alto sem yield suficiente pra master", 120, 5, TierProfessional, 100, 100},
		{"volume alto no prejuízo estaciona em analista", 120, -5, TierAnalyst, 100, 120},
		{"cem apostas exige yield acima de 10", 100, 10, TierProfessional, 100, 100},
		{"zero apostas", 0, 0, TierNovice, 0, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := EvaluateRank(tc.count, tc.yield)
			assert.Equal(t, tc.tier, r.Tier)
			assert.InDelta(t, tc.progress, r.Progress, 1e-9)
			assert.Equal(t, tc.target, r.NextTarget)
		})
	}
}

func TestEvaluateRank_ProgressClamped(t *testing.T) {
	for count := 0; count <= 300; count += 7 {
		for _, y := range []float64{-50, 0, 5, 25} {
			r := EvaluateRank(count, y)
			assert.GreaterOrEqual(t, r.Progress, 0.0)
			assert.LessOrEqual(t, r.Progress, 100.0)
		}
	}
}
