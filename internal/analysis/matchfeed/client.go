package matchfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/radieske/bet-companion-platform/internal/analysis/dto"
)

// Client busca a cartelera do dia no colaborador externo de partidas
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) FetchMatches(ctx context.Context) ([]dto.Match, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/matches/today", nil)
	if err != nil {
		return nil, err
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("match feed http %d", res.StatusCode)
	}

	var out []dto.Match
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// FilterToday mantém só partidas cuja data de calendário LOCAL é a de hoje.
// Entrada sem horário passa direto (fallback incondicional).
func FilterToday(matches []dto.Match, now time.Time) []dto.Match {
	today := now.Local().Format("2006-01-02")

	out := make([]dto.Match, 0, len(matches))
	for _, m := range matches {
		if m.ScheduledTime == nil || m.ScheduledTime.Local().Format("2006-01-02") == today {
			out = append(out, m)
		}
	}
	return out
}
