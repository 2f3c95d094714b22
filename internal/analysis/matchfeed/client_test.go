package matchfeed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/bet-companion-platform/internal/analysis/dto"
)

func TestFilterToday(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	tonight := time.Date(2024, 3, 10, 20, 0, 0, 0, time.Local)
	tomorrow := now.AddDate(0, 0, 1)

	matches := []dto.Match{
		{Home: "Real Madrid", Away: "Barcelona", ScheduledTime: &tonight},
		{Home: "Milan", Away: "Inter", ScheduledTime: &tomorrow},
		{Home: "Boca", Away: "River"}, // sem horário: passa direto
	}

	got := FilterToday(matches, now)

	require.Len(t, got, 2)
	assert.Equal(t, "Real Madrid", got[0].Home)
	assert.Equal(t, "Boca", got[1].Home)
}

func TestFilterToday_Empty(t *testing.T) {
	assert.Empty(t, FilterToday(nil, time.Now()))
}
