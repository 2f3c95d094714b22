package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/radieske/bet-companion-platform/internal/analysis/dto"
)

// Client fala com o colaborador externo de IA que gera os informes de partida.
// Um circuit breaker evita martelar o serviço quando ele está fora: depois de
// falhas consecutivas as chamadas falham rápido até o próximo probe.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	cb      *gobreaker.CircuitBreaker
}

// Generated é a resposta crua do gerador
type Generated struct {
	Text    string       `json:"text"`
	Sources []dto.Source `json:"sources,omitempty"`
}

type generateRequest struct {
	Home    string `json:"home"`
	Away    string `json:"away"`
	League  string `json:"league"`
	MatchID string `json:"match_id"`
}

func New(base string) *Client {
	st := gobreaker.Settings{Name: "ai-generator"}
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 3
	}
	st.Timeout = 30 * time.Second

	return &Client{
		BaseURL: base,
		// geração é lenta por natureza (busca + LLM); timeout generoso
		HTTP: &http.Client{Timeout: 60 * time.Second},
		cb:   gobreaker.NewCircuitBreaker(st),
	}
}

// Generate pede um novo análisis. Qualquer falha (rede, quota, filtro de
// conteúdo) vira erro pro chamador tratar como "sem resultado"; nunca pânico.
func (c *Client) Generate(ctx context.Context, home, away, league, matchID string) (Generated, error) {
	out, err := c.cb.Execute(func() (interface{}, error) {
		return c.doGenerate(ctx, home, away, league, matchID)
	})
	if err != nil {
		return Generated{}, err
	}
	return out.(Generated), nil
}

func (c *Client) doGenerate(ctx context.Context, home, away, league, matchID string) (Generated, error) {
	body, _ := json.Marshal(generateRequest{Home: home, Away: away, League: league, MatchID: matchID})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/analyses", bytes.NewReader(body))
	if err != nil {
		return Generated{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return Generated{}, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return Generated{}, fmt.Errorf("ai generate http %d", res.StatusCode)
	}

	var out Generated
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return Generated{}, err
	}
	return out, nil
}
