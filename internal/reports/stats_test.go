package reports

import (
	"reflect"
	"testing"
)

func TestNtile(t *testing.T) {
	t.Run("even distribution with remainder", func(t *testing.T) {
		// 10 values into 4 buckets: sizes 3,3,2,2
		values := []float64{9, 1, 7, 3, 8, 2, 6, 4, 10, 5}
		buckets := ntile(4, len(values), func(a, b int) bool { return values[a] < values[b] })

		counts := map[int]int{}
		for _, b := range buckets {
			counts[b]++
		}
		want := map[int]int{1: 3, 2: 3, 3: 2, 4: 2}
		if !reflect.DeepEqual(counts, want) {
			t.Errorf("bucket sizes = %v, want %v", counts, want)
		}

		// lowest three values land in bucket 1
		for i, v := range values {
			if v <= 3 && buckets[i] != 1 {
				t.Errorf("value %v assigned bucket %d, want 1", v, buckets[i])
			}
			if v >= 9 && buckets[i] != 4 {
				t.Errorf("value %v assigned bucket %d, want 4", v, buckets[i])
			}
		}
	})

	t.Run("ties keep input order", func(t *testing.T) {
		values := []float64{5, 5, 5, 5}
		buckets := ntile(4, len(values), func(a, b int) bool { return values[a] < values[b] })

		if !reflect.DeepEqual(buckets, []int{1, 2, 3, 4}) {
			t.Errorf("buckets = %v, want input-order assignment", buckets)
		}
	})

	t.Run("fewer rows than buckets", func(t *testing.T) {
		values := []float64{2, 1}
		buckets := ntile(4, len(values), func(a, b int) bool { return values[a] < values[b] })

		if buckets[0] != 2 || buckets[1] != 1 {
			t.Errorf("buckets = %v, want [2 1]", buckets)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := ntile(4, 0, nil); len(got) != 0 {
			t.Errorf("expected empty assignment, got %v", got)
		}
	})
}

func TestRowNumber(t *testing.T) {
	t.Run("ranks descending with stable ties", func(t *testing.T) {
		counts := []int{3, 7, 3, 9}
		ranks := rowNumber(len(counts), func(a, b int) bool { return counts[a] > counts[b] })

		// 9 -> 1, 7 -> 2, first 3 -> 3, second 3 -> 4
		want := []int{3, 2, 4, 1}
		if !reflect.DeepEqual(ranks, want) {
			t.Errorf("ranks = %v, want %v", ranks, want)
		}
	})

	t.Run("no gaps", func(t *testing.T) {
		values := []float64{1, 1, 1}
		ranks := rowNumber(len(values), func(a, b int) bool { return values[a] > values[b] })

		if !reflect.DeepEqual(ranks, []int{1, 2, 3}) {
			t.Errorf("ranks = %v, want [1 2 3]", ranks)
		}
	})
}

func TestPctOf(t *testing.T) {
	if got := pctOf(2, 3, 2); got != 66.67 {
		t.Errorf("pctOf(2,3,2) = %v, want 66.67", got)
	}
	if got := pctOf(1, 3, 2); got != 33.33 {
		t.Errorf("pctOf(1,3,2) = %v, want 33.33", got)
	}
	if got := pctOf(5, 0, 2); got != 0 {
		t.Errorf("pctOf with zero total = %v, want 0", got)
	}
}

func TestRounding(t *testing.T) {
	cases := []struct {
		x        float64
		decimals int
		want     float64
	}{
		{2.345, 2, 2.35},
		{2.344, 2, 2.34},
		{149.5, 0, 150},
		{28.333333, 2, 28.33},
	}
	for _, c := range cases {
		if got := roundTo(c.x, c.decimals); got != c.want {
			t.Errorf("roundTo(%v, %d) = %v, want %v", c.x, c.decimals, got, c.want)
		}
	}
}

func TestMedian(t *testing.T) {
	if got := median([]float64{40, 92, 65, 50, 85}); got != 65 {
		t.Errorf("odd median = %v, want 65", got)
	}
	if got := median([]float64{10, 30, 20, 40}); got != 25 {
		t.Errorf("even median = %v, want 25", got)
	}
	if got := median(nil); got != 0 {
		t.Errorf("empty median = %v, want 0", got)
	}
}

func TestGroupBy(t *testing.T) {
	keys := []string{"b", "a", "b", "c", "a"}
	groups := groupBy(len(keys), func(i int) string { return keys[i] })

	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].key != "b" || groups[1].key != "a" || groups[2].key != "c" {
		t.Errorf("groups not in first-appearance order: %+v", groups)
	}
	if !reflect.DeepEqual(groups[0].idx, []int{0, 2}) {
		t.Errorf("group b indexes = %v, want [0 2]", groups[0].idx)
	}
}
