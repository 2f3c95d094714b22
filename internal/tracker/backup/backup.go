package backup

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/radieske/bet-companion-platform/internal/tracker/engine"
)

// CurrentVersion é a versão do envelope de backup gravada em todo export
const CurrentVersion = 2

// Envelope é o formato versionado de export/import. Import tem semântica de
// sobrescrita total: nada de merge.
type Envelope struct {
	Version         int                `json:"version"`
	InitialBankroll float64            `json:"initial_bankroll"`
	Bets            []engine.BetRecord `json:"bets"`
}

// legado v1: formato do localStorage da primeira versão do app
// {"initial": 1000, "history": [{"event","stake","odds","result","date"}]}
type legacyEnvelope struct {
	Initial *float64    `json:"initial"`
	History []legacyBet `json:"history"`
}

type legacyBet struct {
	ID     string  `json:"id"`
	Date   int64   `json:"date"`
	Event  string  `json:"event"`
	Stake  float64 `json:"stake"`
	Odds   float64 `json:"odds"`
	Result string  `json:"result"` // "pending" | "won" | "lost"
}

// Encode serializa o estado completo no envelope da versão corrente.
// O round-trip Encode -> Decode é sem perda.
func Encode(initialBankroll float64, bets []engine.BetRecord) ([]byte, error) {
	if bets == nil {
		bets = []engine.BetRecord{}
	}
	return json.Marshal(Envelope{
		Version:         CurrentVersion,
		InitialBankroll: initialBankroll,
		Bets:            bets,
	})
}

// Decode valida e decodifica um backup, migrando o formato legado v1 quando
// necessário. JSON corrompido vira erro (o chamador responde 400, nunca
// derruba o dashboard); campos opcionais ausentes caem nos defaults
// documentados (kind SIMPLE, outcome PENDING, id novo).
func Decode(raw []byte) (Envelope, error) {
	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Envelope{}, fmt.Errorf("backup inválido: %w", err)
	}

	if probe.Version == 0 {
		return decodeLegacy(raw)
	}
	if probe.Version != CurrentVersion {
		return Envelope{}, fmt.Errorf("versão de backup não suportada: %d", probe.Version)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("backup inválido: %w", err)
	}
	if err := normalize(&env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

func decodeLegacy(raw []byte) (Envelope, error) {
	var legacy legacyEnvelope
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return Envelope{}, fmt.Errorf("backup legado inválido: %w", err)
	}
	if legacy.Initial == nil && legacy.History == nil {
		return Envelope{}, fmt.Errorf("backup sem formato reconhecível")
	}

	env := Envelope{Version: CurrentVersion, InitialBankroll: engineDefaultBankroll}
	if legacy.Initial != nil {
		env.InitialBankroll = *legacy.Initial
	}

	env.Bets = make([]engine.BetRecord, 0, len(legacy.History))
	for _, h := range legacy.History {
		env.Bets = append(env.Bets, engine.BetRecord{
			ID:          h.ID,
			CreatedAt:   h.Date,
			Label:       h.Event,
			Kind:        engine.KindSimple,
			Stake:       h.Stake,
			DecimalOdds: h.Odds,
			Outcome:     legacyOutcome(h.Result),
		})
	}

	if err := normalize(&env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

const engineDefaultBankroll = 1000

func legacyOutcome(result string) engine.Outcome {
	switch result {
	case "won":
		return engine.OutcomeWon
	case "lost":
		return engine.OutcomeLost
	default:
		return engine.OutcomePending
	}
}

// normalize aplica defaults e valida invariantes básicas de cada registro
func normalize(env *Envelope) error {
	if env.InitialBankroll < 0 {
		return fmt.Errorf("bankroll inicial negativo: %v", env.InitialBankroll)
	}
	for i := range env.Bets {
		b := &env.Bets[i]
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		if b.Kind == "" {
			b.Kind = engine.KindSimple
		}
		switch b.Outcome {
		case engine.OutcomePending, engine.OutcomeWon, engine.OutcomeLost:
		case "":
			b.Outcome = engine.OutcomePending
		default:
			return fmt.Errorf("outcome desconhecido em %s: %q", b.ID, b.Outcome)
		}
		if b.Stake <= 0 {
			return fmt.Errorf("stake inválido em %s: %v", b.ID, b.Stake)
		}
		if b.DecimalOdds < 1 {
			return fmt.Errorf("odds inválidas em %s: %v", b.ID, b.DecimalOdds)
		}
		if b.Kind == engine.KindCombined && len(b.Legs) < 2 {
			return fmt.Errorf("combinada %s precisa de pelo menos 2 legs", b.ID)
		}
	}
	return nil
}
