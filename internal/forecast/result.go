package forecast

// PullBlock carries the pull-count statistics. Mean is always present;
// percentiles and the solver cross-check only under distribution mode.
type PullBlock struct {
	Mean      float64 `json:"mean"`
	P25       int     `json:"p25,omitempty"`
	P50       int     `json:"p50,omitempty"`
	P75       int     `json:"p75,omitempty"`
	P95       int     `json:"p95,omitempty"`
	ExactMean float64 `json:"exactMean,omitempty"`
}

// GlitterBlock carries byproduct-currency statistics for pools that
// accrue one.
type GlitterBlock struct {
	Name string  `json:"name"`
	Mean float64 `json:"mean"`
	P25  int     `json:"p25"`
	P50  int     `json:"p50"`
	P75  int     `json:"p75"`
}

// CostBlock prices the forecast in the game's premium currency.
type CostBlock struct {
	Currency string `json:"currency"`
	Mean     int    `json:"mean"`
	P95      int    `json:"p95,omitempty"`
}

// Result is the engine's self-contained response.
type Result struct {
	Pulls       PullBlock     `json:"pulls"`
	SuccessRate *float64      `json:"successRate,omitempty"` // percent
	Glitter     *GlitterBlock `json:"glitter,omitempty"`
	Cost        *CostBlock    `json:"cost,omitempty"`
}
