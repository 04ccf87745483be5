package reports

import (
	"sort"
)

// TopRetainedRow is one of an industry's five strongest retained customers,
// with its engagement/adoption quartiles over the whole retained population
// and its rank within the industry.
type TopRetainedRow struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Industry           string  `json:"industry"`
	AgeDays            int     `json:"age_days"`
	EngagementPct      float64 `json:"engagement_pct"`
	AdoptionPct        float64 `json:"adoption_pct"`
	Type               string  `json:"type"`
	Plan               string  `json:"plan"`
	EngagementQuartile int     `json:"engagement_quartile"`
	AdoptionQuartile   int     `json:"adoption_quartile"`
	IndustryRank       int     `json:"industry_rank"`
}

// TopRetained ranks non-churned customers within each industry by engagement
// then adoption (both descending) and keeps the top five per industry.
// Quartile 1 holds the highest values since both quartile orderings descend.
func TopRetained(ds *Dataset) []TopRetainedRow {
	retained := ds.Retained()
	if len(retained) == 0 {
		return nil
	}

	engQuartiles := ntile(4, len(retained), func(a, b int) bool {
		return retained[a].EngagementPct > retained[b].EngagementPct
	})
	adoptQuartiles := ntile(4, len(retained), func(a, b int) bool {
		return retained[a].AdoptionPct > retained[b].AdoptionPct
	})

	ranks := make([]int, len(retained))
	industries := groupBy(len(retained), func(i int) string { return retained[i].Industry })
	for _, g := range industries {
		idx := g.idx
		local := rowNumber(len(idx), func(a, b int) bool {
			ca, cb := retained[idx[a]], retained[idx[b]]
			if ca.EngagementPct != cb.EngagementPct {
				return ca.EngagementPct > cb.EngagementPct
			}
			return ca.AdoptionPct > cb.AdoptionPct
		})
		for pos, i := range idx {
			ranks[i] = local[pos]
		}
	}

	var rows []TopRetainedRow
	for i, c := range retained {
		if ranks[i] > 5 {
			continue
		}
		rows = append(rows, TopRetainedRow{
			ID:                 c.ID,
			Name:               c.Name,
			Industry:           c.Industry,
			AgeDays:            c.AgeDays,
			EngagementPct:      c.EngagementPct,
			AdoptionPct:        c.AdoptionPct,
			Type:               c.Type,
			Plan:               c.Plan,
			EngagementQuartile: engQuartiles[i],
			AdoptionQuartile:   adoptQuartiles[i],
			IndustryRank:       ranks[i],
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Industry != rows[j].Industry {
			return rows[i].Industry < rows[j].Industry
		}
		if rows[i].IndustryRank != rows[j].IndustryRank {
			return rows[i].IndustryRank < rows[j].IndustryRank
		}
		if rows[i].EngagementQuartile != rows[j].EngagementQuartile {
			return rows[i].EngagementQuartile < rows[j].EngagementQuartile
		}
		return rows[i].AdoptionQuartile < rows[j].AdoptionQuartile
	})

	return rows
}

// UpsellRow is a retained customer with high engagement and adoption.
type UpsellRow struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	EngagementPct float64 `json:"engagement_pct"`
	AdoptionPct   float64 `json:"adoption_pct"`
	Type          string  `json:"type"`
	Plan          string  `json:"plan"`
}

// UpsellCandidates lists non-churned customers with engagement and adoption
// both at or above 70, strongest first.
func UpsellCandidates(ds *Dataset) []UpsellRow {
	var rows []UpsellRow
	for _, c := range ds.Retained() {
		if c.EngagementPct < 70 || c.AdoptionPct < 70 {
			continue
		}
		rows = append(rows, UpsellRow{
			ID:            c.ID,
			Name:          c.Name,
			EngagementPct: c.EngagementPct,
			AdoptionPct:   c.AdoptionPct,
			Type:          c.Type,
			Plan:          c.Plan,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].EngagementPct != rows[j].EngagementPct {
			return rows[i].EngagementPct > rows[j].EngagementPct
		}
		return rows[i].AdoptionPct > rows[j].AdoptionPct
	})

	return rows
}

// VerticalRow is an industry whose churned customers engage below the grand
// average across industries.
type VerticalRow struct {
	Industry           string  `json:"industry"`
	AvgEngagement      float64 `json:"avg_engagement"`
	AvgAdoption        float64 `json:"avg_adoption"`
	GrandAvgEngagement float64 `json:"grand_avg_engagement"`
}

// UnderperformingVerticals averages churned engagement and adoption per
// industry and keeps industries strictly below the grand average engagement.
// The grand average is a mean of the per-industry means, not row-weighted.
func UnderperformingVerticals(ds *Dataset) []VerticalRow {
	churned := ds.Churned()

	groups := groupBy(len(churned), func(i int) string { return churned[i].Industry })
	if len(groups) == 0 {
		return nil
	}

	type vertical struct {
		industry      string
		avgEngagement float64
		avgAdoption   float64
	}

	verticals := make([]vertical, 0, len(groups))
	var industryMeans []float64
	for _, g := range groups {
		var eng, adoption []float64
		for _, i := range g.idx {
			eng = append(eng, churned[i].EngagementPct)
			adoption = append(adoption, churned[i].AdoptionPct)
		}
		m := mean(eng)
		industryMeans = append(industryMeans, m)
		verticals = append(verticals, vertical{g.key, m, mean(adoption)})
	}

	grand := mean(industryMeans)

	var rows []VerticalRow
	for _, v := range verticals {
		if v.avgEngagement >= grand {
			continue
		}
		rows = append(rows, VerticalRow{
			Industry:           v.industry,
			AvgEngagement:      roundTo(v.avgEngagement, 2),
			AvgAdoption:        roundTo(v.avgAdoption, 2),
			GrandAvgEngagement: roundTo(grand, 2),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Industry < rows[j].Industry
	})

	return rows
}
