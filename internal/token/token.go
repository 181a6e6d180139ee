// Package token converts pull counts into the premium currency each game
// prices pulls in.
package token

// Currency defines how many units one pull costs.
type Currency struct {
	Name       string
	PerPull    int
	PerTenPull int // discounted ten-batch price; 0 means 10 * PerPull
}

// CostForPulls returns how many currency units n pulls cost, using the
// ten-batch price where it applies.
func (c Currency) CostForPulls(n int) int {
	if n <= 0 {
		return 0
	}
	if c.PerTenPull > 0 && n >= 10 {
		return (n/10)*c.PerTenPull + (n%10)*c.PerPull
	}
	return n * c.PerPull
}

// PullsForTokens returns how many pulls n currency units afford, buying
// ten-batches first where they are discounted.
func (c Currency) PullsForTokens(n int) int {
	if n <= 0 || c.PerPull <= 0 {
		return 0
	}
	if c.PerTenPull > 0 && c.PerTenPull < 10*c.PerPull {
		tens := n / c.PerTenPull
		return tens*10 + (n-tens*c.PerTenPull)/c.PerPull
	}
	return n / c.PerPull
}

var byGame = map[string]Currency{
	"genshin": {Name: "Primogem", PerPull: 160},
	"hsr":     {Name: "Stellar Jade", PerPull: 160},
	"zzz":     {Name: "Polychrome", PerPull: 160},
}

// ForGame returns the pull currency of a supported game.
func ForGame(game string) (Currency, bool) {
	c, ok := byGame[game]
	return c, ok
}
