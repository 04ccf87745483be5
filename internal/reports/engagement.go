package reports

import (
	"sort"
)

// Engagement level labels.
const (
	LevelLow    = "Low"
	LevelMedium = "Medium"
	LevelHigh   = "High"
)

// EngagementLevel buckets an engagement percentage: below 30 is Low, above 70
// is High, everything between (inclusive) is Medium.
func EngagementLevel(pct float64) string {
	switch {
	case pct < 30:
		return LevelLow
	case pct > 70:
		return LevelHigh
	default:
		return LevelMedium
	}
}

// EngagementLevelRow is one (churned, engagement level) cell of the
// engagement vs churn distribution.
type EngagementLevelRow struct {
	Churned       bool    `json:"churned"`
	Level         string  `json:"engagement_level"`
	AvgEngagement float64 `json:"avg_engagement"`
	MinEngagement float64 `json:"min_engagement"`
	MaxEngagement float64 `json:"max_engagement"`
	Count         int     `json:"total_count"`
	PctInGroup    float64 `json:"percentage_in_group"`
}

// EngagementDistribution buckets every customer by engagement level and
// reports each level's share within its churned/retained group.
//
// Levels sort by literal string comparison descending (Medium, Low, High),
// reproducing the source dataset's ordering of the label column.
func EngagementDistribution(ds *Dataset) []EngagementLevelRow {
	customers := ds.Customers

	groupTotals := make(map[bool]int)
	for _, c := range customers {
		groupTotals[c.Churned]++
	}

	type cell struct {
		churned bool
		level   string
	}
	groups := groupBy(len(customers), func(i int) cell {
		return cell{customers[i].Churned, EngagementLevel(customers[i].EngagementPct)}
	})

	rows := make([]EngagementLevelRow, 0, len(groups))
	for _, g := range groups {
		var eng []float64
		for _, i := range g.idx {
			eng = append(eng, customers[i].EngagementPct)
		}
		lo, hi := minMax(eng)

		rows = append(rows, EngagementLevelRow{
			Churned:       g.key.churned,
			Level:         g.key.level,
			AvgEngagement: roundTo(mean(eng), 2),
			MinEngagement: lo,
			MaxEngagement: hi,
			Count:         len(g.idx),
			PctInGroup:    pctOf(float64(len(g.idx)), float64(groupTotals[g.key.churned]), 2),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Churned != rows[j].Churned {
			return !rows[i].Churned
		}
		if rows[i].Level != rows[j].Level {
			return rows[i].Level > rows[j].Level
		}
		return rows[i].PctInGroup > rows[j].PctInGroup
	})

	return rows
}

// AdoptionQuartileRow is one (churned, adoption quartile) group. Median, min,
// and max are window aggregates over the whole churned/retained partition and
// therefore repeat across that partition's quartiles; only the average and
// count are per-quartile.
type AdoptionQuartileRow struct {
	Churned        bool    `json:"churned"`
	Quartile       int     `json:"adoption_quartile"`
	AvgAdoption    float64 `json:"avg_adoption"`
	MedianAdoption float64 `json:"median_adoption"`
	MinAdoption    float64 `json:"min_adoption"`
	MaxAdoption    float64 `json:"max_adoption"`
	Count          int     `json:"quartile_count"`
}

// AdoptionQuartiles assigns each customer an adoption quartile within its
// churned/retained partition (quartile 1 holds the lowest adoption values)
// and summarizes the quartile populations.
func AdoptionQuartiles(ds *Dataset) []AdoptionQuartileRow {
	var rows []AdoptionQuartileRow

	for _, churned := range []bool{false, true} {
		partition := ds.filter(churned)
		if len(partition) == 0 {
			continue
		}

		adoption := make([]float64, len(partition))
		for i, c := range partition {
			adoption[i] = c.AdoptionPct
		}

		quartiles := ntile(4, len(partition), func(a, b int) bool {
			return adoption[a] < adoption[b]
		})

		med := median(adoption)
		lo, hi := minMax(adoption)

		groups := groupBy(len(partition), func(i int) int { return quartiles[i] })
		for _, g := range groups {
			var qa []float64
			for _, i := range g.idx {
				qa = append(qa, adoption[i])
			}

			rows = append(rows, AdoptionQuartileRow{
				Churned:        churned,
				Quartile:       g.key,
				AvgAdoption:    roundTo(mean(qa), 2),
				MedianAdoption: roundTo(med, 2),
				MinAdoption:    lo,
				MaxAdoption:    hi,
				Count:          len(g.idx),
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Churned != rows[j].Churned {
			return !rows[i].Churned
		}
		return rows[i].Quartile < rows[j].Quartile
	})

	return rows
}
