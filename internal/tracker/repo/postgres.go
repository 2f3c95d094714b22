package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/radieske/bet-companion-platform/internal/tracker/engine"
)

// DefaultInitialBankroll é a baseline usada enquanto o usuário não configura a sua
const DefaultInitialBankroll = 1000

// Postgres implementa a persistência de apostas e da config de bankroll
type Postgres struct{ db *sql.DB }

// NewPostgres retorna uma instância do repositório
func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// Create insere uma nova aposta com outcome PENDING e retorna o id gerado
func (p *Postgres) Create(ctx context.Context, userID string, b *engine.BetRecord) (string, error) {
	id := uuid.NewString()
	createdAt := time.Now().UnixMilli()

	legs, err := marshalLegs(b.Legs)
	if err != nil {
		return "", err
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO bets (id,user_id,label,kind,legs,market,stake,decimal_odds,outcome,created_at_ms)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,'PENDING',$9)`,
		id, userID, b.Label, string(b.Kind), legs, nullableString(b.Market), b.Stake, b.DecimalOdds, createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert bet: %w", err)
	}

	b.ID = id
	b.CreatedAt = createdAt
	b.Outcome = engine.OutcomePending
	return id, nil
}

// List retorna todas as apostas do usuário (inclusive pendentes)
func (p *Postgres) List(ctx context.Context, userID string) ([]engine.BetRecord, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id,label,kind,legs,market,stake,decimal_odds,outcome,created_at_ms
		FROM bets WHERE user_id=$1 ORDER BY created_at_ms DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list bets: %w", err)
	}
	defer rows.Close()

	out := make([]engine.BetRecord, 0)
	for rows.Next() {
		var (
			b      engine.BetRecord
			kind   string
			legs   []byte
			market sql.NullString
			oc     string
		)
		if err := rows.Scan(&b.ID, &b.Label, &kind, &legs, &market, &b.Stake, &b.DecimalOdds, &oc, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Kind = engine.Kind(kind)
		b.Outcome = engine.Outcome(oc)
		b.Market = market.String
		if len(legs) > 0 {
			if err := json.Unmarshal(legs, &b.Legs); err != nil {
				return nil, fmt.Errorf("decode legs of bet %s: %w", b.ID, err)
			}
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateOutcome muda o resultado de uma aposta. Qualquer transição é válida,
// inclusive voltar pra PENDING (re-liquidação livre, sem máquina de estados).
func (p *Postgres) UpdateOutcome(ctx context.Context, userID, betID string, outcome engine.Outcome) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE bets SET outcome=$1 WHERE id=$2 AND user_id=$3`,
		string(outcome), betID, userID)
	if err != nil {
		return fmt.Errorf("update outcome: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete remove uma aposta de vez; não existe expiração automática
func (p *Postgres) Delete(ctx context.Context, userID, betID string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM bets WHERE id=$1 AND user_id=$2`, betID, userID)
	if err != nil {
		return fmt.Errorf("delete bet: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetBankroll retorna a baseline do usuário (default quando nunca configurada)
func (p *Postgres) GetBankroll(ctx context.Context, userID string) (float64, error) {
	var v float64
	err := p.db.QueryRowContext(ctx,
		`SELECT initial_bankroll FROM bankroll_configs WHERE user_id=$1`, userID).Scan(&v)
	if err == sql.ErrNoRows {
		return DefaultInitialBankroll, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get bankroll: %w", err)
	}
	return v, nil
}

// SetBankroll sobrescreve a baseline inteira; mudar o valor reconfigura
// retroativamente todas as métricas derivadas (não é um lançamento de ledger)
func (p *Postgres) SetBankroll(ctx context.Context, userID string, amount float64) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO bankroll_configs (user_id, initial_bankroll) VALUES ($1,$2)
		ON CONFLICT (user_id) DO UPDATE SET initial_bankroll=EXCLUDED.initial_bankroll`,
		userID, amount)
	if err != nil {
		return fmt.Errorf("set bankroll: %w", err)
	}
	return nil
}

// ReplaceAll troca o estado completo do usuário numa transação só.
// Semântica de import: sobrescreve, nunca faz merge.
func (p *Postgres) ReplaceAll(ctx context.Context, userID string, bankroll float64, bets []engine.BetRecord) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bets WHERE user_id=$1`, userID); err != nil {
		return fmt.Errorf("clear bets: %w", err)
	}

	for _, b := range bets {
		legs, err := marshalLegs(b.Legs)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO bets (id,user_id,label,kind,legs,market,stake,decimal_odds,outcome,created_at_ms)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			b.ID, userID, b.Label, string(b.Kind), legs, nullableString(b.Market),
			b.Stake, b.DecimalOdds, string(b.Outcome), b.CreatedAt,
		); err != nil {
			return fmt.Errorf("import bet %s: %w", b.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO bankroll_configs (user_id, initial_bankroll) VALUES ($1,$2)
		ON CONFLICT (user_id) DO UPDATE SET initial_bankroll=EXCLUDED.initial_bankroll`,
		userID, bankroll); err != nil {
		return fmt.Errorf("import bankroll: %w", err)
	}

	return tx.Commit()
}

func marshalLegs(legs []engine.Leg) ([]byte, error) {
	if len(legs) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(legs)
	if err != nil {
		return nil, fmt.Errorf("encode legs: %w", err)
	}
	return b, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
