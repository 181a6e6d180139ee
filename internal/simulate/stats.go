package simulate

import (
	"math"
	"sort"
)

// Stats summarizes one per-trial metric. Percentiles use the nearest-rank
// convention: the smallest sample value v such that at least that fraction
// of trials is <= v, with ties resolved toward the lower value.
type Stats struct {
	Mean float64
	P25  int
	P50  int
	P75  int
	P95  int
}

func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum int64
	for _, v := range xs {
		sum += int64(v)
	}

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	rank := func(q float64) int {
		r := int(math.Ceil(q * float64(n)))
		if r < 1 {
			r = 1
		}
		if r > n {
			r = n
		}
		return cp[r-1]
	}

	return Stats{
		Mean: float64(sum) / float64(n),
		P25:  rank(0.25),
		P50:  rank(0.50),
		P75:  rank(0.75),
		P95:  rank(0.95),
	}
}
