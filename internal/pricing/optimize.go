package pricing

import (
	"errors"
	"sort"
)

var (
	ErrEmptyCatalog    = errors.New("pricing: catalog has no packs")
	ErrCatalogTooLarge = errors.New("pricing: too many first-time packs to optimize")
	ErrBudgetTooLarge  = errors.New("pricing: budget exceeds planner limit")
)

const (
	maxFirstTimePacks = 16
	maxBudgetCents    = 5_000_000
)

func regularGrant(p Pack) int { return p.Tokens + p.BonusTokens }

func firstGrant(p Pack) int { return 2*p.Tokens + p.BonusTokens }

type lineKey struct {
	packID string
	first  bool
}

func buildPlan(cat Catalog, qty map[lineKey]int) Plan {
	keys := make([]lineKey, 0, len(qty))
	for k := range qty {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].packID != keys[j].packID {
			return keys[i].packID < keys[j].packID
		}
		return keys[i].first && !keys[j].first
	})
	byID := make(map[string]Pack, len(cat.Packs))
	for _, p := range cat.Packs {
		byID[p.ID] = p
	}
	plan := Plan{Currency: cat.Currency}
	for _, k := range keys {
		p := byID[k.packID]
		n := qty[k]
		tokens := regularGrant(p)
		name := p.Name
		if k.first {
			tokens = firstGrant(p)
			name += " (first purchase)"
		}
		sub := int64(n) * p.PriceCents
		plan.Purchases = append(plan.Purchases, Purchase{
			PackID:         p.ID,
			Name:           name,
			Qty:            n,
			UnitPriceCents: p.PriceCents,
			UnitTokens:     tokens,
			SubtotalCents:  sub,
		})
		plan.SubtotalCents += sub
		plan.TotalTokens += n * tokens
	}
	plan.TaxCents, plan.TotalCents = applyTax(plan.SubtotalCents, cat.TaxRate)
	return plan
}

func firstTimePacks(cat Catalog, first FirstTimeState) []Pack {
	var out []Pack
	for _, p := range cat.Packs {
		if p.FirstTimeX2 && first[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// MinCostForTokens returns the cheapest pack combination granting at least
// target tokens. First-time doubles listed in first are each usable once.
func MinCostForTokens(cat Catalog, target int, first FirstTimeState) (Plan, error) {
	if len(cat.Packs) == 0 {
		return Plan{}, ErrEmptyCatalog
	}
	if target <= 0 {
		return buildPlan(cat, nil), nil
	}
	ft := firstTimePacks(cat, first)
	if len(ft) > maxFirstTimePacks {
		return Plan{}, ErrCatalogTooLarge
	}

	// Unbounded knapsack over regular purchases: minCost[t] is the cheapest
	// way to reach at least t tokens, choice[t] the pack index used last.
	const inf = int64(1) << 62
	minCost := make([]int64, target+1)
	choice := make([]int, target+1)
	for t := 1; t <= target; t++ {
		minCost[t] = inf
		choice[t] = -1
		for i, p := range cat.Packs {
			g := regularGrant(p)
			if g <= 0 {
				continue
			}
			rest := t - g
			if rest < 0 {
				rest = 0
			}
			if minCost[rest] == inf {
				continue
			}
			c := minCost[rest] + p.PriceCents
			if c < minCost[t] {
				minCost[t] = c
				choice[t] = i
			}
		}
	}

	best := int64(-1)
	bestMask := 0
	for mask := 0; mask < 1<<len(ft); mask++ {
		var cost int64
		tokens := 0
		for i, p := range ft {
			if mask&(1<<i) != 0 {
				cost += p.PriceCents
				tokens += firstGrant(p)
			}
		}
		rest := target - tokens
		if rest < 0 {
			rest = 0
		}
		if minCost[rest] == inf {
			continue
		}
		cost += minCost[rest]
		if best < 0 || cost < best {
			best = cost
			bestMask = mask
		}
	}
	if best < 0 {
		return Plan{}, ErrEmptyCatalog
	}

	qty := make(map[lineKey]int)
	rest := target
	for i, p := range ft {
		if bestMask&(1<<i) != 0 {
			qty[lineKey{p.ID, true}]++
			rest -= firstGrant(p)
		}
	}
	if rest < 0 {
		rest = 0
	}
	for rest > 0 {
		i := choice[rest]
		if i < 0 {
			break
		}
		p := cat.Packs[i]
		qty[lineKey{p.ID, false}]++
		rest -= regularGrant(p)
		if rest < 0 {
			rest = 0
		}
	}
	return buildPlan(cat, qty), nil
}

// MaxTokensUnderBudget returns the pack combination granting the most tokens
// whose pre-tax subtotal fits within budgetCents.
func MaxTokensUnderBudget(cat Catalog, budgetCents int64, first FirstTimeState) (Plan, error) {
	if len(cat.Packs) == 0 {
		return Plan{}, ErrEmptyCatalog
	}
	if budgetCents > maxBudgetCents {
		return Plan{}, ErrBudgetTooLarge
	}
	if budgetCents < 0 {
		budgetCents = 0
	}
	ft := firstTimePacks(cat, first)
	if len(ft) > maxFirstTimePacks {
		return Plan{}, ErrCatalogTooLarge
	}

	b := int(budgetCents)
	bestTokens := make([]int, b+1)
	choice := make([]int, b+1)
	for c := 0; c <= b; c++ {
		choice[c] = -1
		if c > 0 {
			bestTokens[c] = bestTokens[c-1]
		}
		for i, p := range cat.Packs {
			price := int(p.PriceCents)
			if price <= 0 || price > c {
				continue
			}
			if v := bestTokens[c-price] + regularGrant(p); v > bestTokens[c] {
				bestTokens[c] = v
				choice[c] = i
			}
		}
	}

	best := -1
	bestMask := 0
	for mask := 0; mask < 1<<len(ft); mask++ {
		var cost int64
		tokens := 0
		for i, p := range ft {
			if mask&(1<<i) != 0 {
				cost += p.PriceCents
				tokens += firstGrant(p)
			}
		}
		if cost > budgetCents {
			continue
		}
		tokens += bestTokens[budgetCents-cost]
		if tokens > best {
			best = tokens
			bestMask = mask
		}
	}

	qty := make(map[lineKey]int)
	rem := b
	for i, p := range ft {
		if bestMask&(1<<i) != 0 {
			qty[lineKey{p.ID, true}]++
			rem -= int(p.PriceCents)
		}
	}
	for rem > 0 {
		i := choice[rem]
		if i < 0 {
			rem--
			continue
		}
		p := cat.Packs[i]
		qty[lineKey{p.ID, false}]++
		rem -= int(p.PriceCents)
	}
	return buildPlan(cat, qty), nil
}
