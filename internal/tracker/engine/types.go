package engine

// Outcome é o resultado de uma aposta. Transições são livres: o usuário pode
// re-liquidar quantas vezes quiser (WON -> LOST -> PENDING, tudo válido).
type Outcome string

const (
	OutcomePending Outcome = "PENDING"
	OutcomeWon     Outcome = "WON"
	OutcomeLost    Outcome = "LOST"
)

type Kind string

const (
	KindSimple   Kind = "SIMPLE"
	KindCombined Kind = "COMBINED"
)

const (
	// MarketCombined é o market fixo de apostas combinadas (parlay)
	MarketCombined = "combined-parlay"
	// MarketOther é o bucket default quando a aposta não tem market
	MarketOther = "OTHER"
)

// Leg é uma seleção dentro de uma aposta combinada
type Leg struct {
	Description string  `json:"description"`
	DecimalOdds float64 `json:"decimal_odds"`
}

// BetRecord é o registro de aposta como o engine enxerga.
// Valores monetários na mesma moeda do bankroll; odds na convenção europeia
// (multiplicador de payout incluindo o stake).
type BetRecord struct {
	ID          string  `json:"id"`
	CreatedAt   int64   `json:"created_at"` // epoch millis
	Label       string  `json:"label"`
	Kind        Kind    `json:"kind"`
	Legs        []Leg   `json:"legs,omitempty"` // só para COMBINED (>= 2 legs)
	Market      string  `json:"market,omitempty"`
	Stake       float64 `json:"stake"`
	DecimalOdds float64 `json:"decimal_odds"`
	Outcome     Outcome `json:"outcome"`
}

// Settled indica se a aposta já foi liquidada
func (b BetRecord) Settled() bool { return b.Outcome != OutcomePending }

// SignedProfit retorna o lucro com sinal de uma aposta liquidada.
// WON: stake * (odds - 1); LOST: -stake; PENDING: 0.
// Odds 1.0 vencedora dá lucro zero (break-even), válido.
func (b BetRecord) SignedProfit() float64 {
	switch b.Outcome {
	case OutcomeWon:
		return b.Stake * (b.DecimalOdds - 1)
	case OutcomeLost:
		return -b.Stake
	default:
		return 0
	}
}

// MarketOrDefault resolve o bucket de agrupamento por market
func (b BetRecord) MarketOrDefault() string {
	if b.Market == "" {
		return MarketOther
	}
	return b.Market
}

// CombinedOdds calcula a odd de uma combinada: produto das odds de cada leg.
// A odd da aposta COMBINED é sempre derivada daqui, nunca editada direto.
func CombinedOdds(legs []Leg) float64 {
	odd := 1.0
	for _, l := range legs {
		odd *= l.DecimalOdds
	}
	return odd
}

// Metrics é a saída agregada do engine financeiro.
// Yield e ROI têm a mesma fórmula de propósito: a UI exibe os dois campos.
type Metrics struct {
	CurrentBankroll        float64            `json:"current_bankroll"`
	NetProfit              float64            `json:"net_profit"`
	TotalInvested          float64            `json:"total_invested"`
	ROI                    float64            `json:"roi"`
	Yield                  float64            `json:"yield"`
	MaxDrawdown            float64            `json:"max_drawdown"`
	AvgProfitPerSettledBet float64            `json:"avg_profit_per_settled_bet"`
	SettledCount           int                `json:"settled_count"`
	MarketProfit           map[string]float64 `json:"market_profit"`
}

// Point é um ponto da curva de equity. Projected marca pontos sintéticos
// de projeção, que nunca devem ser confundidos com histórico real.
type Point struct {
	Index     int     `json:"index"`
	Value     float64 `json:"value"`
	Projected bool    `json:"projected,omitempty"`
}

// RankResult classifica o usuário na escada de progressão
type RankResult struct {
	Tier       string  `json:"tier"`
	Progress   float64 `json:"progress"` // sempre em [0,100]
	NextTarget int     `json:"next_target"`
}
