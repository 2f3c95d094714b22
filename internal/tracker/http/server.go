package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/bet-companion-platform/internal/tracker/backup"
	"github.com/radieske/bet-companion-platform/internal/tracker/dto"
	"github.com/radieske/bet-companion-platform/internal/tracker/engine"
	"github.com/radieske/bet-companion-platform/internal/tracker/repo"
	"github.com/radieske/bet-companion-platform/pkg/contracts/events"
)

// defaultUserID cobre o modo single-profile do app (um usuário, um device)
const defaultUserID = "local"

type Server struct {
	log  *zap.Logger
	repo *repo.Postgres
	publ interface {
		PublishBetRegistered(context.Context, events.BetRegistered) error
		PublishBetSettled(context.Context, events.BetSettled) error
	}

	// callbacks de métricas ligadas no main
	OnBetRegistered func()
	OnBetSettled    func()
}

func NewServer(log *zap.Logger, r *repo.Postgres, p interface {
	PublishBetRegistered(context.Context, events.BetRegistered) error
	PublishBetSettled(context.Context, events.BetSettled) error
}) *Server {
	return &Server{log: log, repo: r, publ: p}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/bets", s.bets)               // POST cria, GET lista
	mux.HandleFunc("/bets/", s.betByID)           // PATCH /bets/{id}/outcome, DELETE /bets/{id}
	mux.HandleFunc("/stats", s.stats)             // GET métricas agregadas
	mux.HandleFunc("/stats/equity", s.equity)     // GET curva + projeção
	mux.HandleFunc("/stake-suggestion", s.kelly)  // POST sugestão de stake
	mux.HandleFunc("/rank", s.rank)               // GET tier de progressão
	mux.HandleFunc("/bankroll", s.bankroll)       // GET/PUT baseline
	mux.HandleFunc("/backup/export", s.doExport)  // GET dump versionado
	mux.HandleFunc("/backup/import", s.doImport)  // POST sobrescreve tudo
	return mux
}

func (s *Server) bets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createBet(w, r)
	case http.MethodGet:
		s.listBets(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) createBet(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	// validação de borda: stake/odds malformados nunca chegam no engine
	if req.Stake <= 0 {
		http.Error(w, "stake must be positive", http.StatusBadRequest)
		return
	}

	bet := engine.BetRecord{
		Label:       req.Label,
		Kind:        engine.KindSimple,
		Market:      req.Market,
		Stake:       req.Stake,
		DecimalOdds: req.DecimalOdds,
	}

	if strings.EqualFold(req.Kind, string(engine.KindCombined)) {
		if len(req.Legs) < 2 {
			http.Error(w, "combined bet requires at least 2 legs", http.StatusBadRequest)
			return
		}
		for _, l := range req.Legs {
			if l.DecimalOdds <= 0 {
				http.Error(w, "leg odds must be positive", http.StatusBadRequest)
				return
			}
		}
		bet.Kind = engine.KindCombined
		bet.Legs = req.Legs
		bet.Market = engine.MarketCombined
		// odd da combinada é derivada, nunca vem do cliente
		bet.DecimalOdds = engine.CombinedOdds(req.Legs)
		if bet.Label == "" {
			bet.Label = fmt.Sprintf("Combined (%d picks)", len(req.Legs))
		}
	}

	if bet.DecimalOdds < 1 {
		http.Error(w, "decimal odds must be >= 1.0", http.StatusBadRequest)
		return
	}

	uid := userID(req.UserID)
	betID, err := s.repo.Create(r.Context(), uid, &bet)
	if err != nil {
		s.log.Error("create bet", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// publicação é fire-and-forget: falha de kafka não derruba o cadastro
	if err := s.publ.PublishBetRegistered(r.Context(), events.BetRegistered{
		BetID:       betID,
		UserID:      uid,
		Label:       bet.Label,
		Kind:        string(bet.Kind),
		Market:      bet.Market,
		Stake:       bet.Stake,
		DecimalOdds: bet.DecimalOdds,
	}); err != nil {
		s.log.Warn("publish bet_registered", zap.String("betId", betID), zap.Error(err))
	}
	if s.OnBetRegistered != nil {
		s.OnBetRegistered()
	}

	writeJSON(w, http.StatusCreated, dto.CreateBetResponse{
		BetID:       betID,
		DecimalOdds: bet.DecimalOdds,
		Outcome:     string(engine.OutcomePending),
	})
}

func (s *Server) listBets(w http.ResponseWriter, r *http.Request) {
	bets, err := s.repo.List(r.Context(), userID(r.URL.Query().Get("user_id")))
	if err != nil {
		s.log.Error("list bets", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, bets)
}

func (s *Server) betByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/bets/")

	switch {
	case r.Method == http.MethodPatch && strings.HasSuffix(rest, "/outcome"):
		s.updateOutcome(w, r, strings.TrimSuffix(rest, "/outcome"))
	case r.Method == http.MethodDelete:
		s.deleteBet(w, r, rest)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) updateOutcome(w http.ResponseWriter, r *http.Request, betID string) {
	if betID == "" {
		http.Error(w, "betId required", http.StatusBadRequest)
		return
	}
	var req dto.UpdateOutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	outcome := engine.Outcome(strings.ToUpper(req.Outcome))
	switch outcome {
	case engine.OutcomePending, engine.OutcomeWon, engine.OutcomeLost:
	default:
		http.Error(w, "invalid outcome", http.StatusBadRequest)
		return
	}

	uid := userID(req.UserID)
	if err := s.repo.UpdateOutcome(r.Context(), uid, betID, outcome); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		s.log.Error("update outcome", zap.String("betId", betID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := s.publ.PublishBetSettled(r.Context(), events.BetSettled{
		BetID:   betID,
		UserID:  uid,
		Outcome: string(outcome),
	}); err != nil {
		s.log.Warn("publish bet_settled", zap.String("betId", betID), zap.Error(err))
	}
	if s.OnBetSettled != nil {
		s.OnBetSettled()
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteBet(w http.ResponseWriter, r *http.Request, betID string) {
	if betID == "" {
		http.Error(w, "betId required", http.StatusBadRequest)
		return
	}
	uid := userID(r.URL.Query().Get("user_id"))
	if err := s.repo.Delete(r.Context(), uid, betID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		s.log.Error("delete bet", zap.String("betId", betID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	bets, bankroll, err := s.loadState(r.Context(), userID(r.URL.Query().Get("user_id")))
	if err != nil {
		s.log.Error("load state", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, engine.ComputeMetrics(bets, bankroll))
}

func (s *Server) equity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	bets, bankroll, err := s.loadState(r.Context(), userID(r.URL.Query().Get("user_id")))
	if err != nil {
		s.log.Error("load state", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dto.EquityCurveResponse{
		Points: engine.BuildEquityCurve(bets, bankroll),
	})
}

func (s *Server) kelly(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.StakeSuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	bankroll := req.Bankroll
	if bankroll == 0 {
		// sem override: usa o bankroll corrente derivado do histórico
		bets, initial, err := s.loadState(r.Context(), userID(req.UserID))
		if err != nil {
			s.log.Error("load state", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		bankroll = engine.ComputeMetrics(bets, initial).CurrentBankroll
	}

	writeJSON(w, http.StatusOK, dto.StakeSuggestionResponse{
		SuggestedStake: engine.SuggestStake(req.DecimalOdds, req.ConfidencePercent, bankroll),
		Advisory:       true,
	})
}

func (s *Server) rank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	bets, bankroll, err := s.loadState(r.Context(), userID(r.URL.Query().Get("user_id")))
	if err != nil {
		s.log.Error("load state", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	m := engine.ComputeMetrics(bets, bankroll)
	writeJSON(w, http.StatusOK, engine.EvaluateRank(len(bets), m.Yield))
}

func (s *Server) bankroll(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		v, err := s.repo.GetBankroll(r.Context(), userID(r.URL.Query().Get("user_id")))
		if err != nil {
			s.log.Error("get bankroll", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, dto.BankrollResponse{InitialBankroll: v})
	case http.MethodPut:
		var req dto.SetBankrollRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.InitialBankroll < 0 {
			http.Error(w, "bankroll must be >= 0", http.StatusBadRequest)
			return
		}
		if err := s.repo.SetBankroll(r.Context(), userID(req.UserID), req.InitialBankroll); err != nil {
			s.log.Error("set bankroll", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) doExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	bets, bankroll, err := s.loadState(r.Context(), userID(r.URL.Query().Get("user_id")))
	if err != nil {
		s.log.Error("load state", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	raw, err := backup.Encode(bankroll, bets)
	if err != nil {
		s.log.Error("encode backup", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="matador-backup-%s.json"`, time.Now().UTC().Format("2006-01-02")))
	_, _ = w.Write(raw)
}

func (s *Server) doImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	env, err := backup.Decode(raw)
	if err != nil {
		s.log.Warn("import rejected", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	uid := userID(r.URL.Query().Get("user_id"))
	if err := s.repo.ReplaceAll(r.Context(), uid, env.InitialBankroll, env.Bets); err != nil {
		s.log.Error("import", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// loadState carrega lista de apostas + baseline, insumos de todo cálculo
func (s *Server) loadState(ctx context.Context, uid string) ([]engine.BetRecord, float64, error) {
	bets, err := s.repo.List(ctx, uid)
	if err != nil {
		return nil, 0, err
	}
	bankroll, err := s.repo.GetBankroll(ctx, uid)
	if err != nil {
		return nil, 0, err
	}
	return bets, bankroll, nil
}

func userID(v string) string {
	if v == "" {
		return defaultUserID
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
