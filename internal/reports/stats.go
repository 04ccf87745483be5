package reports

import (
	"math"
	"sort"
	"strconv"
)

// ntile partitions count rows into n ordered buckets of as-equal-as-possible
// size, matching SQL NTILE semantics: the first count%n buckets in order take
// one extra row. Ordering is the stable sort induced by less over original
// positions, so ties keep input order. The returned slice maps original
// position to 1-based bucket number.
func ntile(n, count int, less func(a, b int) bool) []int {
	order := make([]int, count)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return less(order[i], order[j]) })

	buckets := make([]int, count)
	base, extra := count/n, count%n

	pos := 0
	for b := 1; b <= n; b++ {
		size := base
		if b <= extra {
			size++
		}
		for k := 0; k < size; k++ {
			buckets[order[pos]] = b
			pos++
		}
	}

	return buckets
}

// rowNumber assigns 1-based sequential ranks (no gaps) by the stable sort
// order induced by less; ties keep input order. The returned slice maps
// original position to rank.
func rowNumber(count int, less func(a, b int) bool) []int {
	order := make([]int, count)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return less(order[i], order[j]) })

	ranks := make([]int, count)
	for rank, idx := range order {
		ranks[idx] = rank + 1
	}

	return ranks
}

// pctOf computes part*100/total rounded to the given number of decimal
// places. A zero total yields zero rather than dividing.
func pctOf(part, total float64, decimals int) float64 {
	if total == 0 {
		return 0
	}
	return roundTo(part*100/total, decimals)
}

// roundTo rounds half away from zero, like SQL ROUND.
func roundTo(x float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(x*p) / p
}

// mean returns the arithmetic mean, or zero for an empty slice.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// median returns the middle value of xs, averaging the two middle values for
// an even count. Zero for an empty slice.
func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// minMax returns the smallest and largest values of xs. Zeros for an empty slice.
func minMax(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}

// group collects the original positions belonging to one grouping key, in
// first-appearance order.
type group[K comparable] struct {
	key K
	idx []int
}

// groupBy partitions positions 0..count-1 by key, preserving both the order
// groups first appear and the input order within each group.
func groupBy[K comparable](count int, key func(i int) K) []group[K] {
	var groups []group[K]
	seen := make(map[K]int)

	for i := 0; i < count; i++ {
		k := key(i)
		gi, ok := seen[k]
		if !ok {
			gi = len(groups)
			seen[k] = gi
			groups = append(groups, group[K]{key: k})
		}
		groups[gi].idx = append(groups[gi].idx, i)
	}

	return groups
}

// fstr formats a float with a fixed number of decimals for table output.
func fstr(x float64, decimals int) string {
	return strconv.FormatFloat(x, 'f', decimals, 64)
}
