package controller

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/bet-companion-platform/internal/analysis/dto"
	"github.com/radieske/bet-companion-platform/internal/analysis/generator"
	"github.com/radieske/bet-companion-platform/internal/analysis/matchfeed"
	"github.com/radieske/bet-companion-platform/internal/analysis/slug"
	"github.com/radieske/bet-companion-platform/internal/analysis/store"
	"github.com/radieske/bet-companion-platform/pkg/contracts/events"
)

// DefaultTTL é a janela de frescor padrão de uma análise cacheada
const DefaultTTL = 4 * time.Hour

// Store é o colaborador de persistência do cache (Redis em produção)
type Store interface {
	GetAnalysis(ctx context.Context, matchID string) (*store.CachedAnalysis, error)
	PutAnalysis(ctx context.Context, c *store.CachedAnalysis) error
	GetDailyList(ctx context.Context) (*store.DailyList, error)
	PutDailyList(ctx context.Context, d store.DailyList) error
}

// Generator é o colaborador de IA
type Generator interface {
	Generate(ctx context.Context, home, away, league, matchID string) (generator.Generated, error)
}

// Feed é o colaborador da cartelera de partidas
type Feed interface {
	FetchMatches(ctx context.Context) ([]dto.Match, error)
}

// Controller aplica a política de cache/frescor das análises e da cartelera.
// Estado explícito injetado no main (nada de singleton de módulo); não há
// dedup de chamadas concorrentes pro mesmo matchId: as duas geram e o último
// upsert vence — corrida aceita pro perfil single-user.
type Controller struct {
	Log   *zap.Logger
	Store Store
	Gen   Generator
	Feed  Feed
	TTL   time.Duration

	// Publ é opcional; quando presente, cada geração emite um evento
	Publ interface {
		PublishAnalysisGenerated(context.Context, events.AnalysisGenerated) error
	}

	// relógio injetável pros testes
	Now func() time.Time

	// callbacks de métricas ligadas no main
	OnCacheHit   func()
	OnCacheMiss  func()
	OnGenerated  func()
	OnLookupFail func()
}

func New(log *zap.Logger, st Store, gen Generator, feed Feed, ttl time.Duration) *Controller {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Controller{
		Log:   log,
		Store: st,
		Gen:   gen,
		Feed:  feed,
		TTL:   ttl,
		Now:   time.Now,
	}
}

// GetOrGenerateAnalysis devolve a análise do confronto, do cache quando fresca
// (< TTL desde lastUpdated), regenerando e sobrescrevendo caso contrário.
// Falha de lookup no store NUNCA bloqueia a geração: vira miss com log.
// kickoff nulo usa "agora" na derivação do matchId.
func (c *Controller) GetOrGenerateAnalysis(ctx context.Context, home, away, league string, kickoff *time.Time) (dto.AnalysisResult, error) {
	now := c.Now()

	at := now
	if kickoff != nil {
		at = *kickoff
	}
	matchID := slug.Derive(home, away, at)

	cached, err := c.Store.GetAnalysis(ctx, matchID)
	if err != nil {
		// store fora do ar não pode travar o pedido do usuário
		c.Log.Warn("analysis cache lookup failed", zap.String("matchId", matchID), zap.Error(err))
		if c.OnLookupFail != nil {
			c.OnLookupFail()
		}
		cached = nil
	}

	if cached != nil && now.Sub(cached.LastUpdated) < c.TTL {
		if c.OnCacheHit != nil {
			c.OnCacheHit()
		}
		return dto.AnalysisResult{
			MatchID:     matchID,
			Content:     cached.Content,
			Sources:     cached.Sources,
			Cached:      true,
			GeneratedAt: cached.LastUpdated,
		}, nil
	}

	if c.OnCacheMiss != nil {
		c.OnCacheMiss()
	}

	gen, err := c.Gen.Generate(ctx, home, away, league, matchID)
	if err != nil {
		return dto.AnalysisResult{}, err
	}
	if c.OnGenerated != nil {
		c.OnGenerated()
	}

	// upsert incondicional com lastUpdated fresco; last-write-wins
	entry := &store.CachedAnalysis{
		MatchID:     matchID,
		Content:     gen.Text,
		Sources:     gen.Sources,
		LastUpdated: now,
	}
	if err := c.Store.PutAnalysis(ctx, entry); err != nil {
		c.Log.Warn("analysis cache upsert failed", zap.String("matchId", matchID), zap.Error(err))
	}

	if c.Publ != nil {
		if err := c.Publ.PublishAnalysisGenerated(ctx, events.AnalysisGenerated{
			MatchID:     matchID,
			Home:        home,
			Away:        away,
			League:      league,
			GeneratedAt: now,
			Source:      "analysis-service",
		}); err != nil {
			c.Log.Warn("publish analysis_generated", zap.String("matchId", matchID), zap.Error(err))
		}
	}

	return dto.AnalysisResult{
		MatchID:     matchID,
		Content:     gen.Text,
		Sources:     gen.Sources,
		Cached:      false,
		GeneratedAt: now,
	}, nil
}

// TodayMatches devolve a cartelera do dia. O slot de cache (valor único) só
// vale se a data gravada for a data local de hoje; senão descarta e refaz o
// fetch. force pula o cache de propósito.
func (c *Controller) TodayMatches(ctx context.Context, force bool) ([]dto.Match, error) {
	now := c.Now()
	today := now.Local().Format("2006-01-02")

	if !force {
		slot, err := c.Store.GetDailyList(ctx)
		if err != nil {
			c.Log.Warn("daily list lookup failed", zap.Error(err))
		} else if slot != nil && slot.Date == today && len(slot.Matches) > 0 {
			return slot.Matches, nil
		}
	}

	raw, err := c.Feed.FetchMatches(ctx)
	if err != nil {
		return nil, err
	}

	matches := matchfeed.FilterToday(raw, now)
	if len(matches) == 0 && len(raw) > 0 {
		// feed devolveu partidas mas nenhuma caiu em "hoje": melhor mostrar
		// o que veio do que uma tela vazia
		c.Log.Info("no matches passed the today filter, serving raw list", zap.Int("raw", len(raw)))
		matches = raw
	}

	if len(matches) > 0 {
		if err := c.Store.PutDailyList(ctx, store.DailyList{Date: today, Matches: matches}); err != nil {
			c.Log.Warn("daily list cache write failed", zap.Error(err))
		}
	}

	return matches, nil
}
