package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pullcast/internal/forecast"
)

func testServer() http.Handler {
	return NewServer(forecast.Registry(), nil).Routes()
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := testServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var body healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Pools == 0 {
		t.Errorf("body: %+v", body)
	}
}

func TestListPools(t *testing.T) {
	h := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pools", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var body struct {
		Pools []poolSummary `json:"pools"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, p := range body.Pools {
		if p.Game == "genshin" && p.Pool == "character" {
			found = true
			if p.HardPity != 90 || p.BaseRate != 0.006 {
				t.Errorf("summary: %+v", p)
			}
		}
	}
	if !found {
		t.Error("genshin/character missing from pool list")
	}
}

func TestForecastEndpoint(t *testing.T) {
	rec := postJSON(t, testServer(), "/api/v1/forecast",
		`{"game":"genshin","pool":"character","mode":"expectation","initialState":{"pity":89,"isGuaranteed":true}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var res forecast.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	// Guaranteed at max pity: the next pull is the item.
	if res.Pulls.Mean != 1 {
		t.Errorf("mean: got %v, want 1", res.Pulls.Mean)
	}
	if res.Cost == nil || res.Cost.Mean != 160 {
		t.Errorf("cost: %+v", res.Cost)
	}
}

func TestForecastValidationStatus(t *testing.T) {
	rec := postJSON(t, testServer(), "/api/v1/forecast",
		`{"game":"genshin","pool":"character","mode":"vibes"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var body apiError
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Kind != string(forecast.KindValidation) || body.Field != "mode" {
		t.Errorf("body: %+v", body)
	}
	if body.RequestID == "" {
		t.Error("error body carries no request id")
	}
}

func TestForecastUnknownPoolStatus(t *testing.T) {
	rec := postJSON(t, testServer(), "/api/v1/forecast",
		`{"game":"genshin","pool":"standard","mode":"expectation"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
}

func TestForecastMalformedBody(t *testing.T) {
	rec := postJSON(t, testServer(), "/api/v1/forecast", `{"game":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestPlanByPulls(t *testing.T) {
	rec := postJSON(t, testServer(), "/api/v1/plan", `{"game":"genshin","pulls":90}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var body planResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.TokensNeeded != 90*160 {
		t.Errorf("tokens needed: %d", body.TokensNeeded)
	}
	if body.Plan.TotalTokens < body.TokensNeeded {
		t.Errorf("plan underfunds: %+v", body.Plan)
	}
	if body.Currency != "Primogem" {
		t.Errorf("currency: %s", body.Currency)
	}
}

func TestPlanByBudget(t *testing.T) {
	rec := postJSON(t, testServer(), "/api/v1/plan", `{"game":"hsr","budgetCents":9999}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var body planResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Plan.SubtotalCents > 9999 {
		t.Errorf("plan overspends: %+v", body.Plan)
	}
	if body.PullsFunded < 50 {
		t.Errorf("pulls funded: %d", body.PullsFunded)
	}
}

func TestPlanRejectsAmbiguousRequest(t *testing.T) {
	rec := postJSON(t, testServer(), "/api/v1/plan", `{"game":"zzz","pulls":10,"budgetCents":100}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
	rec = postJSON(t, testServer(), "/api/v1/plan", `{"game":"chess","pulls":10}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown game status %d", rec.Code)
	}
	var body apiError
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Field != "game" {
		t.Errorf("field: %q", body.Field)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	h := testServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "caller-supplied")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	rec = postJSON(t, h, "/api/v1/forecast", `{"game":"x","pool":"y","mode":"expectation"}`)
	var body apiError
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.RequestID == "" || strings.TrimSpace(body.RequestID) == "" {
		t.Error("generated request id missing from error body")
	}
}
