package reports

import (
	"sort"
)

// SegmentProfileRow is one (industry, loss reason) churn segment with its
// aggregate age, engagement, and adoption statistics.
type SegmentProfileRow struct {
	Industry            string  `json:"industry"`
	LossReason          string  `json:"loss_reason"`
	TotalChurnedRecords int     `json:"total_churned_records"`
	AvgAccountAge       float64 `json:"avg_account_age"`
	MaxAccountAge       int     `json:"max_account_age"`
	AvgEngagement       float64 `json:"avg_engagement"`
	MaxEngagement       float64 `json:"max_engagement"`
	AvgAdoption         float64 `json:"avg_adoption"`
	MaxAdoption         float64 `json:"max_adoption"`
}

// SegmentProfile profiles churned customers grouped by industry and loss
// reason. Ages are averaged to whole days, percentage metrics to one decimal.
func SegmentProfile(ds *Dataset) []SegmentProfileRow {
	churned := ds.Churned()

	type segment struct{ industry, reason string }
	groups := groupBy(len(churned), func(i int) segment {
		return segment{churned[i].Industry, churned[i].LossReason}
	})

	rows := make([]SegmentProfileRow, 0, len(groups))
	for _, g := range groups {
		var ages, eng, adoption []float64
		for _, i := range g.idx {
			c := churned[i]
			ages = append(ages, float64(c.AgeDays))
			eng = append(eng, c.EngagementPct)
			adoption = append(adoption, c.AdoptionPct)
		}

		_, maxAge := minMax(ages)
		_, maxEng := minMax(eng)
		_, maxAdopt := minMax(adoption)

		rows = append(rows, SegmentProfileRow{
			Industry:            g.key.industry,
			LossReason:          g.key.reason,
			TotalChurnedRecords: len(g.idx),
			AvgAccountAge:       roundTo(mean(ages), 0),
			MaxAccountAge:       int(maxAge),
			AvgEngagement:       roundTo(mean(eng), 1),
			MaxEngagement:       maxEng,
			AvgAdoption:         roundTo(mean(adoption), 1),
			MaxAdoption:         maxAdopt,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Industry != rows[j].Industry {
			return rows[i].Industry < rows[j].Industry
		}
		if rows[i].TotalChurnedRecords != rows[j].TotalChurnedRecords {
			return rows[i].TotalChurnedRecords > rows[j].TotalChurnedRecords
		}
		return rows[i].LossReason < rows[j].LossReason
	})

	return rows
}

// Churn reason categories.
const (
	CategoryCost    = "Cost-Related"
	CategoryService = "Service-Related"
	CategoryProduct = "Product-Related"
	CategoryOther   = "Other"
)

// ReasonCategory maps a raw loss reason onto its coarse churn category.
func ReasonCategory(reason string) string {
	switch reason {
	case "Pricing", "Cost":
		return CategoryCost
	case "Support", "Service":
		return CategoryService
	case "Features", "Product Fit":
		return CategoryProduct
	default:
		return CategoryOther
	}
}

// ChurnReasonRow is one (industry, category, loss reason) churn count with
// its share of the industry's total churn.
type ChurnReasonRow struct {
	Industry               string  `json:"industry"`
	Category               string  `json:"churn_category"`
	LossReason             string  `json:"loss_reason"`
	Occurrences            int     `json:"occurrences"`
	TotalChurnedInIndustry int     `json:"total_churned_in_industry"`
	PctOfChurn             float64 `json:"percentage_of_churn"`
}

// ChurnReasons breaks each industry's churn down by categorized loss reason.
func ChurnReasons(ds *Dataset) []ChurnReasonRow {
	churned := ds.Churned()

	industryTotals := make(map[string]int)
	for _, c := range churned {
		industryTotals[c.Industry]++
	}

	type segment struct{ industry, category, reason string }
	groups := groupBy(len(churned), func(i int) segment {
		c := churned[i]
		return segment{c.Industry, ReasonCategory(c.LossReason), c.LossReason}
	})

	rows := make([]ChurnReasonRow, 0, len(groups))
	for _, g := range groups {
		total := industryTotals[g.key.industry]
		rows = append(rows, ChurnReasonRow{
			Industry:               g.key.industry,
			Category:               g.key.category,
			LossReason:             g.key.reason,
			Occurrences:            len(g.idx),
			TotalChurnedInIndustry: total,
			PctOfChurn:             pctOf(float64(len(g.idx)), float64(total), 2),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Industry != rows[j].Industry {
			return rows[i].Industry < rows[j].Industry
		}
		if rows[i].PctOfChurn != rows[j].PctOfChurn {
			return rows[i].PctOfChurn > rows[j].PctOfChurn
		}
		return rows[i].Occurrences > rows[j].Occurrences
	})

	return rows
}

// TypeChurnRow is the churn volume of one entity type and its share of all churn.
type TypeChurnRow struct {
	Type            string  `json:"type"`
	ChurnedCount    int     `json:"churned_count"`
	ChurnPercentage float64 `json:"churn_percentage"`
}

// ChurnByType splits churn volume across entity types (accounts vs opportunities).
func ChurnByType(ds *Dataset) []TypeChurnRow {
	churned := ds.Churned()

	groups := groupBy(len(churned), func(i int) string { return churned[i].Type })

	rows := make([]TypeChurnRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, TypeChurnRow{
			Type:            g.key,
			ChurnedCount:    len(g.idx),
			ChurnPercentage: pctOf(float64(len(g.idx)), float64(len(churned)), 1),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ChurnPercentage > rows[j].ChurnPercentage
	})

	return rows
}
