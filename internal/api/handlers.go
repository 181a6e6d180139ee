package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pullcast/internal/forecast"
	"pullcast/internal/gacha"
	"pullcast/internal/pricing"
	"pullcast/internal/token"
)

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
	Pools  int    `json:"pools"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Uptime: time.Since(s.startTime).Round(time.Second).String(),
		Pools:  len(gacha.Keys()),
	})
}

type poolSummary struct {
	Game     string  `json:"game"`
	Pool     string  `json:"pool"`
	BaseRate float64 `json:"baseRate"`
	HardPity int     `json:"hardPity"`
	UpRate   float64 `json:"upRate,omitempty"`
	Mechanic string  `json:"mechanic"`
}

func (s *Server) handleListPools(w http.ResponseWriter, r *http.Request) {
	pools := make([]poolSummary, 0, len(gacha.Keys()))
	for _, key := range gacha.Keys() {
		game, pool, ok := strings.Cut(key, "/")
		if !ok {
			continue
		}
		// Surface overrides when the server runs with a config source.
		cfg, err := s.src.Lookup(game, pool)
		if err != nil {
			continue
		}
		sum := poolSummary{
			Game:     cfg.Game,
			Pool:     cfg.Pool,
			BaseRate: cfg.BaseRate,
			HardPity: cfg.HardPity,
			Mechanic: string(cfg.Mechanic),
		}
		if cfg.HasFiftyFifty {
			sum.UpRate = cfg.UpRate
		}
		pools = append(pools, sum)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"pools": pools})
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	var req forecast.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, r, "body", "invalid JSON: "+err.Error())
		return
	}
	res, err := forecast.Run(r.Context(), s.src, &req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

type planRequest struct {
	Game        string          `json:"game"`
	Pulls       int             `json:"pulls,omitempty"`
	BudgetCents int64           `json:"budgetCents,omitempty"`
	FirstTime   map[string]bool `json:"firstTime,omitempty"`
}

type planResponse struct {
	Currency     string       `json:"currency"`
	TokensNeeded int          `json:"tokensNeeded,omitempty"`
	PullsFunded  int          `json:"pullsFunded"`
	Plan         pricing.Plan `json:"plan"`
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, r, "body", "invalid JSON: "+err.Error())
		return
	}
	cur, ok := token.ForGame(req.Game)
	if !ok {
		s.badRequest(w, r, "game", "unknown game")
		return
	}
	switch {
	case req.Pulls > 0 && req.BudgetCents > 0:
		s.badRequest(w, r, "pulls", "set either pulls or budgetCents, not both")
	case req.Pulls > 0:
		need := cur.CostForPulls(req.Pulls)
		plan, err := pricing.MinCostForTokens(s.catalog, need, req.FirstTime)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, planResponse{
			Currency:     cur.Name,
			TokensNeeded: need,
			PullsFunded:  req.Pulls,
			Plan:         plan,
		})
	case req.BudgetCents > 0:
		plan, err := pricing.MaxTokensUnderBudget(s.catalog, req.BudgetCents, req.FirstTime)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, planResponse{
			Currency:    cur.Name,
			PullsFunded: cur.PullsForTokens(plan.TotalTokens),
			Plan:        plan,
		})
	default:
		s.badRequest(w, r, "pulls", "set pulls or budgetCents")
	}
}
