package repo

import (
	"context"
	"fmt"

	"github.com/radieske/bet-companion-platform/internal/tracker/engine"
)

// Snapshot é a foto de desempenho materializada pelo settlement-worker
// depois de cada liquidação
type Snapshot struct {
	UserID       string
	Bankroll     float64
	NetProfit    float64
	ROI          float64
	Yield        float64
	MaxDrawdown  float64
	SettledCount int
	TotalBets    int
	RankTier     string
}

// SnapshotFrom monta a foto a partir das saídas do engine
func SnapshotFrom(userID string, totalBets int, m engine.Metrics, r engine.RankResult) Snapshot {
	return Snapshot{
		UserID:       userID,
		Bankroll:     m.CurrentBankroll,
		NetProfit:    m.NetProfit,
		ROI:          m.ROI,
		Yield:        m.Yield,
		MaxDrawdown:  m.MaxDrawdown,
		SettledCount: m.SettledCount,
		TotalBets:    totalBets,
		RankTier:     r.Tier,
	}
}

// UpsertSnapshot grava a foto mais recente do usuário (uma linha por usuário)
func (p *Postgres) UpsertSnapshot(ctx context.Context, s Snapshot) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO performance_snapshots
			(user_id, bankroll, net_profit, roi, yield, max_drawdown, settled_count, total_bets, rank_tier, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,now())
		ON CONFLICT (user_id) DO UPDATE SET
			bankroll=EXCLUDED.bankroll,
			net_profit=EXCLUDED.net_profit,
			roi=EXCLUDED.roi,
			yield=EXCLUDED.yield,
			max_drawdown=EXCLUDED.max_drawdown,
			settled_count=EXCLUDED.settled_count,
			total_bets=EXCLUDED.total_bets,
			rank_tier=EXCLUDED.rank_tier,
			updated_at=now()`,
		s.UserID, s.Bankroll, s.NetProfit, s.ROI, s.Yield, s.MaxDrawdown, s.SettledCount, s.TotalBets, s.RankTier,
	)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}
