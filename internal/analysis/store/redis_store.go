package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/bet-companion-platform/internal/analysis/dto"
)

// dailyListTTL é só uma rede de segurança: a validade real do slot é a
// comparação da data armazenada com a data local de hoje
const dailyListTTL = 48 * time.Hour

// CachedAnalysis é o valor persistido por matchId no Redis
type CachedAnalysis struct {
	MatchID     string       `json:"match_id"`
	Content     string       `json:"content"`
	Sources     []dto.Source `json:"sources,omitempty"`
	LastUpdated time.Time    `json:"last_updated"`
}

// DailyList é o slot único da cartelera do dia: um valor inteiro, sobrescrito
// a cada refetch bem-sucedido (granularidade de 1 chave, não um map)
type DailyList struct {
	Date    string      `json:"date"` // data local do viewer, "2006-01-02"
	Matches []dto.Match `json:"matches"`
}

type Redis struct{ R *redis.Client }

func New(r *redis.Client) *Redis { return &Redis{R: r} }

func keyAnalysis(matchID string) string { return "analysis:match:" + matchID }

const keyDailyList = "analysis:matchlist:today"

// GetAnalysis busca a análise cacheada; (nil, nil) quando não existe
func (s *Redis) GetAnalysis(ctx context.Context, matchID string) (*CachedAnalysis, error) {
	b, err := s.R.Get(ctx, keyAnalysis(matchID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var c CachedAnalysis
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// PutAnalysis faz upsert incondicional: last-write-wins, sem lock otimista.
// A expiração é julgada pelo lastUpdated, nunca por TTL do Redis (eviction
// fica por conta do store).
func (s *Redis) PutAnalysis(ctx context.Context, c *CachedAnalysis) error {
	b, _ := json.Marshal(c)
	return s.R.Set(ctx, keyAnalysis(c.MatchID), b, 0).Err()
}

// GetDailyList lê o slot da cartelera; (nil, nil) quando vazio
func (s *Redis) GetDailyList(ctx context.Context) (*DailyList, error) {
	b, err := s.R.Get(ctx, keyDailyList).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var d DailyList
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// PutDailyList sobrescreve o slot inteiro
func (s *Redis) PutDailyList(ctx context.Context, d DailyList) error {
	b, _ := json.Marshal(d)
	return s.R.Set(ctx, keyDailyList, b, dailyListTTL).Err()
}
