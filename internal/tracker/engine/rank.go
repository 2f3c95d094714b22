package engine

// Tiers da escada de progressão, do iniciante ao terminal
const (
	TierNovice       = "Novice"
	TierAnalyst      = "Analyst"
	TierProfessional = "Professional"
	TierMaster       = "Master"
)

// EvaluateRank classifica o usuário por volume e yield. A escada é avaliada
// de cima pra baixo, primeira regra que casa vence; volume vem antes de
// lucratividade de propósito (um apostador prolífico no prejuízo só passa um
// lucrativo de baixo volume depois dos limiares do tier Master).
func EvaluateRank(totalBetsCount int, yieldPercent float64) RankResult {
	switch {
	case totalBetsCount < 10:
		return RankResult{
			Tier:       TierNovice,
			Progress:   clampProgress(float64(totalBetsCount) / 10 * 100),
			NextTarget: 10,
		}
	case totalBetsCount < 50:
		return RankResult{
			Tier:       TierAnalyst,
			Progress:   clampProgress(float64(totalBetsCount-10) / 40 * 100),
			NextTarget: 50,
		}
	case totalBetsCount >= 100 && yieldPercent > 10:
		// tier terminal: o alvo é o próprio volume atual
		return RankResult{Tier: TierMaster, Progress: 100, NextTarget: totalBetsCount}
	case yieldPercent > 0:
		return RankResult{
			Tier:       TierProfessional,
			Progress:   clampProgress(float64(totalBetsCount-50) / 50 * 100),
			NextTarget: 100,
		}
	default:
		// volume alto sem lucratividade: estaciona em Analyst
		return RankResult{Tier: TierAnalyst, Progress: 100, NextTarget: totalBetsCount}
	}
}

func clampProgress(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
