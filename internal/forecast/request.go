package forecast

// Mode selects what the engine computes for a request.
type Mode string

const (
	// ModeExpectation: exact expected pull count, no sampling.
	ModeExpectation Mode = "expectation"
	// ModeDistribution: Monte Carlo percentiles, budget success rate, and
	// byproduct currency.
	ModeDistribution Mode = "distribution"
)

// State is the caller-supplied starting progress. Streak and Points feed
// the pool's guarantee-accelerator mechanic where it has one; a pool
// without that mechanic rejects a non-zero value.
type State struct {
	Pity         int  `json:"pity"`
	IsGuaranteed bool `json:"isGuaranteed"`
	Streak       int  `json:"streak,omitempty"`
	Points       int  `json:"points,omitempty"`
}

// Request is one self-contained forecast request. Nothing persists across
// requests; prior progress arrives here, never from stored state.
type Request struct {
	Game         string `json:"game"`
	Pool         string `json:"pool"`
	Mode         Mode   `json:"mode"`
	TargetCount  int    `json:"targetCount"` // default 1
	InitialState State  `json:"initialState"`

	// Distribution-mode knobs; ignored under expectation mode.
	Budget   *int    `json:"budget,omitempty"`
	Up4Owned bool    `json:"up4Owned,omitempty"`
	Trials   int     `json:"trials,omitempty"` // default per pool config
	Seed     *uint64 `json:"seed,omitempty"`   // fresh entropy when absent

	// Workers caps simulator parallelism; zero means GOMAXPROCS. Not part
	// of the wire contract.
	Workers int `json:"-"`
}
