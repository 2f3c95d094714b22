package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/bet-companion-platform/internal/analysis/controller"
	"github.com/radieske/bet-companion-platform/internal/analysis/dto"
)

// API expõe os endpoints REST da cartelera diária e das análises de partida
// A geração em si fica com o colaborador de IA; aqui só mora a política de cache
type API struct {
	Log  *zap.Logger
	Ctrl *controller.Controller
}

// Router retorna o roteador HTTP com os endpoints REST
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/matches", a.listMatches) // Cartelera de hoje (?refresh=true força refetch)
	r.Post("/v1/analyses", a.analyze)   // Análise de um confronto (cache ou geração)
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// listMatches retorna a cartelera do dia, preferencialmente do slot de cache
func (a *API) listMatches(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("refresh") == "true"

	matches, err := a.Ctrl.TodayMatches(r.Context(), force)
	if err != nil {
		a.Log.Warn("match feed unavailable", zap.Error(err))
		// feed fora do ar: estado vazio pro cliente, nunca crash
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "match feed unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// analyze devolve a análise do confronto, cacheada quando fresca
func (a *API) analyze(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
		return
	}
	if req.Home == "" || req.Away == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "home and away required"})
		return
	}

	res, err := a.Ctrl.GetOrGenerateAnalysis(r.Context(), req.Home, req.Away, req.League, req.ScheduledTime)
	if err != nil {
		a.Log.Error("analysis generation failed", zap.String("home", req.Home), zap.String("away", req.Away), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "analysis unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, res)
}
