package topics

const (
	// Apostas
	BetRegistered = "bet_registered"
	BetSettled    = "bet_settled"

	// Análises
	AnalysisGenerated = "analysis_generated"

	// DLQs
	BetSettledDLQ = "bet_settled_dlq"
)
