package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/bet-companion-platform/internal/analysis/dto"
	"github.com/radieske/bet-companion-platform/internal/analysis/generator"
	"github.com/radieske/bet-companion-platform/internal/analysis/store"
)

type fakeStore struct {
	analyses map[string]*store.CachedAnalysis
	daily    *store.DailyList

	getErr error
	putErr error

	puts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{analyses: map[string]*store.CachedAnalysis{}}
}

func (f *fakeStore) GetAnalysis(_ context.Context, matchID string) (*store.CachedAnalysis, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.analyses[matchID], nil
}

func (f *fakeStore) PutAnalysis(_ context.Context, c *store.CachedAnalysis) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.puts++
	f.analyses[c.MatchID] = c
	return nil
}

func (f *fakeStore) GetDailyList(_ context.Context) (*store.DailyList, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.daily, nil
}

func (f *fakeStore) PutDailyList(_ context.Context, d store.DailyList) error {
	f.daily = &d
	return nil
}

type fakeGen struct {
	calls int
	err   error
	text  string
}

func (f *fakeGen) Generate(_ context.Context, _, _, _, _ string) (generator.Generated, error) {
	f.calls++
	if f.err != nil {
		return generator.Generated{}, f.err
	}
	return generator.Generated{
		Text:    f.text,
		Sources: []dto.Source{{URI: "https://example.com/xg"}},
	}, nil
}

type fakeFeed struct {
	matches []dto.Match
	err     error
	calls   int
}

func (f *fakeFeed) FetchMatches(_ context.Context) ([]dto.Match, error) {
	f.calls++
	return f.matches, f.err
}

func newController(st Store, gen Generator, feed Feed, now time.Time) *Controller {
	c := New(zap.NewNop(), st, gen, feed, DefaultTTL)
	c.Now = func() time.Time { return now }
	return c
}

func TestGetOrGenerate_FreshCacheHit(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	st := newFakeStore()
	st.analyses["real-madrid-vs-fc-barcelona-2024-03-10"] = &store.CachedAnalysis{
		MatchID:     "real-madrid-vs-fc-barcelona-2024-03-10",
		Content:     "informe cacheado",
		LastUpdated: now.Add(-3 * time.Hour),
	}
	gen := &fakeGen{text: "novo informe"}
	ctrl := newController(st, gen, &fakeFeed{}, now)

	kickoff := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)
	res, err := ctrl.GetOrGenerateAnalysis(context.Background(), "Real Madrid", "FC Barcelona", "LaLiga", &kickoff)

	require.NoError(t, err)
	assert.True(t, res.Cached)
	assert.Equal(t, "informe cacheado", res.Content, "hit serve o conteudo cacheado literal")
	assert.Zero(t, gen.calls, "cache fresco não pode chamar o gerador")
}

func TestGetOrGenerate_StaleEntryRegenerates(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	matchID := "real-madrid-vs-fc-barcelona-2024-03-10"
	st := newFakeStore()
	st.analyses[matchID] = &store.CachedAnalysis{
		MatchID:     matchID,
		Content:     "informe velho",
		LastUpdated: now.Add(-5 * time.Hour),
	}
	gen := &fakeGen{text: "informe novo"}
	ctrl := newController(st, gen, &fakeFeed{}, now)

	kickoff := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)
	res, err := ctrl.GetOrGenerateAnalysis(context.Background(), "Real Madrid", "FC Barcelona", "LaLiga", &kickoff)

	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Equal(t, "informe novo", res.Content)
	assert.Equal(t, 1, gen.calls)

	// sobrescrito com lastUpdated fresco
	require.Contains(t, st.analyses, matchID)
	assert.Equal(t, "informe novo", st.analyses[matchID].Content)
	assert.Equal(t, now, st.analyses[matchID].LastUpdated)
}

func TestGetOrGenerate_MissGeneratesAndCaches(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	st := newFakeStore()
	gen := &fakeGen{text: "informe"}
	ctrl := newController(st, gen, &fakeFeed{}, now)

	res, err := ctrl.GetOrGenerateAnalysis(context.Background(), "Milan", "Inter", "Serie A", nil)

	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Equal(t, 1, st.puts)
	// kickoff ausente: matchId usa a data UTC de "agora"
	assert.Equal(t, "milan-vs-inter-2024-03-10", res.MatchID)
}

func TestGetOrGenerate_LookupFailureDoesNotBlock(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	st := newFakeStore()
	st.getErr = errors.New("redis down")
	gen := &fakeGen{text: "informe"}
	ctrl := newController(st, gen, &fakeFeed{}, now)

	lookupFails := 0
	ctrl.OnLookupFail = func() { lookupFails++ }

	_, err := ctrl.GetOrGenerateAnalysis(context.Background(), "Milan", "Inter", "Serie A", nil)

	require.NoError(t, err, "falha de lookup vira miss, não erro")
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 1, lookupFails)
}

func TestGetOrGenerate_GeneratorFailureSurfaces(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	ctrl := newController(newFakeStore(), &fakeGen{err: errors.New("quota")}, &fakeFeed{}, now)

	_, err := ctrl.GetOrGenerateAnalysis(context.Background(), "Milan", "Inter", "Serie A", nil)

	assert.Error(t, err)
}

func TestGetOrGenerate_StorePutFailureOnlyLogged(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	st := newFakeStore()
	st.putErr = errors.New("redis down")
	gen := &fakeGen{text: "informe"}
	ctrl := newController(st, gen, &fakeFeed{}, now)

	res, err := ctrl.GetOrGenerateAnalysis(context.Background(), "Milan", "Inter", "Serie A", nil)

	require.NoError(t, err)
	assert.Equal(t, "informe", res.Content)
}

func TestTodayMatches_ServesValidSlot(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)
	st := newFakeStore()
	st.daily = &store.DailyList{
		Date:    now.Local().Format("2006-01-02"),
		Matches: []dto.Match{{Home: "Betis", Away: "Sevilla"}},
	}
	feed := &fakeFeed{matches: []dto.Match{{Home: "Outro", Away: "Jogo"}}}
	ctrl := newController(st, &fakeGen{}, feed, now)

	got, err := ctrl.TodayMatches(context.Background(), false)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Betis", got[0].Home)
	assert.Zero(t, feed.calls, "slot válido não refaz o fetch")
}

func TestTodayMatches_StaleSlotDiscarded(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)
	st := newFakeStore()
	st.daily = &store.DailyList{
		Date:    "2024-03-09", // ontem
		Matches: []dto.Match{{Home: "Velho", Away: "Jogo"}},
	}
	feed := &fakeFeed{matches: []dto.Match{{Home: "Betis", Away: "Sevilla"}}}
	ctrl := newController(st, &fakeGen{}, feed, now)

	got, err := ctrl.TodayMatches(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, 1, feed.calls)
	require.Len(t, got, 1)
	assert.Equal(t, "Betis", got[0].Home)

	// slot sobrescrito por inteiro com a data de hoje
	require.NotNil(t, st.daily)
	assert.Equal(t, now.Local().Format("2006-01-02"), st.daily.Date)
}

func TestTodayMatches_ForceSkipsCache(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)
	st := newFakeStore()
	st.daily = &store.DailyList{
		Date:    now.Local().Format("2006-01-02"),
		Matches: []dto.Match{{Home: "Cacheado", Away: "Jogo"}},
	}
	feed := &fakeFeed{matches: []dto.Match{{Home: "Fresco", Away: "Jogo"}}}
	ctrl := newController(st, &fakeGen{}, feed, now)

	got, err := ctrl.TodayMatches(context.Background(), true)

	require.NoError(t, err)
	assert.Equal(t, 1, feed.calls)
	require.Len(t, got, 1)
	assert.Equal(t, "Fresco", got[0].Home)
}

func TestTodayMatches_FeedErrorPropagates(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)
	ctrl := newController(newFakeStore(), &fakeGen{}, &fakeFeed{err: errors.New("feed down")}, now)

	_, err := ctrl.TodayMatches(context.Background(), false)

	assert.Error(t, err)
}

func TestTodayMatches_RawFallbackWhenFilterEmpty(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)
	tomorrow := now.AddDate(0, 0, 1)
	feed := &fakeFeed{matches: []dto.Match{{Home: "Amanhã", Away: "Jogo", ScheduledTime: &tomorrow}}}
	ctrl := newController(newFakeStore(), &fakeGen{}, feed, now)

	got, err := ctrl.TodayMatches(context.Background(), false)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Amanhã", got[0].Home)
}
