package reports

import (
	"fmt"
	"strconv"

	"github.com/fathomlabs/churnlens/internal/models"
	"github.com/fathomlabs/churnlens/internal/shared"
)

// Report is one registered report: a stable slug for the CLI, a human title,
// and a runner producing the rendered result table.
type Report struct {
	Slug  string
	Title string
	Run   func(*Dataset) (*Table, error)
}

// All returns the full report suite in its canonical order.
func All() []Report {
	return []Report{
		{
			Slug:  "segment-profile",
			Title: "Churned Segment Profile",
			Run:   tabled(segmentProfileTable),
		},
		{
			Slug:  "churn-reasons",
			Title: "Categorized Churn Reasons by Industry",
			Run:   tabled(churnReasonsTable),
		},
		{
			Slug:  "engagement-distribution",
			Title: "Engagement vs Churn Distribution",
			Run:   tabled(engagementDistributionTable),
		},
		{
			Slug:  "adoption-quartiles",
			Title: "Adoption Quartile Distribution",
			Run:   tabled(adoptionQuartilesTable),
		},
		{
			Slug:  "top-retained",
			Title: "Top Retained Entities per Industry",
			Run:   tabled(topRetainedTable),
		},
		{
			Slug:  "rep-churn-share",
			Title: "Churn Rate by Representative",
			Run:   tabled(repChurnShareTable),
		},
		{
			Slug:  "rep-churn-reasons",
			Title: "Top 3 Churn Reasons per Representative",
			Run:   tabled(repChurnReasonsTable),
		},
		{
			Slug:  "churn-by-type",
			Title: "Churn by Entity Type",
			Run:   tabled(churnByTypeTable),
		},
		{
			Slug:  "upsell-candidates",
			Title: "Upsell Candidates",
			Run:   tabled(upsellCandidatesTable),
		},
		{
			Slug:  "underperforming-verticals",
			Title: "Underperforming Verticals",
			Run:   tabled(underperformingVerticalsTable),
		},
	}
}

// Get looks up a report by slug.
func Get(slug string) (Report, error) {
	for _, r := range All() {
		if r.Slug == slug {
			return r, nil
		}
	}
	return Report{}, fmt.Errorf("%w: %s", shared.ErrUnknownReport, slug)
}

// tabled adapts a pure table builder to the Report runner signature.
func tabled(build func(*Dataset) *Table) func(*Dataset) (*Table, error) {
	return func(ds *Dataset) (*Table, error) {
		return build(ds), nil
	}
}

func segmentProfileTable(ds *Dataset) *Table {
	t := &Table{
		Slug:  "segment-profile",
		Title: "Churned Segment Profile",
		Columns: []string{
			"Industry", "Loss_Reason", "Total_Churned_Records",
			"Avg_Account_Age", "Max_Account_Age",
			"Avg_Engagement", "Max_Engagement",
			"Avg_Adoption", "Max_Adoption",
		},
	}
	for _, r := range SegmentProfile(ds) {
		t.Rows = append(t.Rows, []string{
			r.Industry, r.LossReason, strconv.Itoa(r.TotalChurnedRecords),
			fstr(r.AvgAccountAge, 0), strconv.Itoa(r.MaxAccountAge),
			fstr(r.AvgEngagement, 1), fstr(r.MaxEngagement, -1),
			fstr(r.AvgAdoption, 1), fstr(r.MaxAdoption, -1),
		})
	}
	return t
}

func churnReasonsTable(ds *Dataset) *Table {
	t := &Table{
		Slug:  "churn-reasons",
		Title: "Categorized Churn Reasons by Industry",
		Columns: []string{
			"Industry", "Churn_Category", "Loss_Reason",
			"Occurrences", "Total_Churned_In_Industry", "Percentage_Of_Churn",
		},
	}
	for _, r := range ChurnReasons(ds) {
		t.Rows = append(t.Rows, []string{
			r.Industry, r.Category, r.LossReason,
			strconv.Itoa(r.Occurrences), strconv.Itoa(r.TotalChurnedInIndustry), fstr(r.PctOfChurn, 2),
		})
	}
	return t
}

func engagementDistributionTable(ds *Dataset) *Table {
	t := &Table{
		Slug:  "engagement-distribution",
		Title: "Engagement vs Churn Distribution",
		Columns: []string{
			"Churned", "Engagement_Level",
			"Avg_Engagement", "Min_Engagement", "Max_Engagement",
			"Total_Count", "Percentage_In_Group",
		},
	}
	for _, r := range EngagementDistribution(ds) {
		t.Rows = append(t.Rows, []string{
			models.ChurnedString(r.Churned), r.Level,
			fstr(r.AvgEngagement, 2), fstr(r.MinEngagement, -1), fstr(r.MaxEngagement, -1),
			strconv.Itoa(r.Count), fstr(r.PctInGroup, 2),
		})
	}
	return t
}

func adoptionQuartilesTable(ds *Dataset) *Table {
	t := &Table{
		Slug:  "adoption-quartiles",
		Title: "Adoption Quartile Distribution",
		Columns: []string{
			"Churned", "Adoption_Quartile",
			"Avg_Adoption", "Median_Adoption", "Min_Adoption", "Max_Adoption",
			"Quartile_Count",
		},
	}
	for _, r := range AdoptionQuartiles(ds) {
		t.Rows = append(t.Rows, []string{
			models.ChurnedString(r.Churned), strconv.Itoa(r.Quartile),
			fstr(r.AvgAdoption, 2), fstr(r.MedianAdoption, 2), fstr(r.MinAdoption, -1), fstr(r.MaxAdoption, -1),
			strconv.Itoa(r.Count),
		})
	}
	return t
}

func topRetainedTable(ds *Dataset) *Table {
	t := &Table{
		Slug:  "top-retained",
		Title: "Top Retained Entities per Industry",
		Columns: []string{
			"ID", "Name", "Industry", "Age_Days",
			"Engagement_Pct", "Adoption_Pct", "Type", "Plan",
			"Engagement_Quartile", "Adoption_Quartile", "Industry_Rank",
		},
	}
	for _, r := range TopRetained(ds) {
		t.Rows = append(t.Rows, []string{
			r.ID, r.Name, r.Industry, strconv.Itoa(r.AgeDays),
			fstr(r.EngagementPct, -1), fstr(r.AdoptionPct, -1), r.Type, r.Plan,
			strconv.Itoa(r.EngagementQuartile), strconv.Itoa(r.AdoptionQuartile), strconv.Itoa(r.IndustryRank),
		})
	}
	return t
}

func repChurnShareTable(ds *Dataset) *Table {
	t := &Table{
		Slug:    "rep-churn-share",
		Title:   "Churn Rate by Representative",
		Columns: []string{"Representative", "Churned_Entities", "Churn_Rate_Pct"},
	}
	for _, r := range RepChurnShare(ds) {
		t.Rows = append(t.Rows, []string{
			r.Owner, strconv.Itoa(r.ChurnedEntities), fstr(r.ChurnRatePct, 2),
		})
	}
	return t
}

func repChurnReasonsTable(ds *Dataset) *Table {
	t := &Table{
		Slug:    "rep-churn-reasons",
		Title:   "Top 3 Churn Reasons per Representative",
		Columns: []string{"Representative", "Loss_Reason", "Occurrences", "Reason_Rank"},
	}
	for _, r := range RepChurnReasons(ds) {
		t.Rows = append(t.Rows, []string{
			r.Owner, r.LossReason, strconv.Itoa(r.Occurrences), strconv.Itoa(r.Rank),
		})
	}
	return t
}

func churnByTypeTable(ds *Dataset) *Table {
	t := &Table{
		Slug:    "churn-by-type",
		Title:   "Churn by Entity Type",
		Columns: []string{"Type", "Churned_Count", "Churn_Percentage"},
	}
	for _, r := range ChurnByType(ds) {
		t.Rows = append(t.Rows, []string{
			r.Type, strconv.Itoa(r.ChurnedCount), fstr(r.ChurnPercentage, 1),
		})
	}
	return t
}

func upsellCandidatesTable(ds *Dataset) *Table {
	t := &Table{
		Slug:    "upsell-candidates",
		Title:   "Upsell Candidates",
		Columns: []string{"ID", "Name", "Engagement_Pct", "Adoption_Pct", "Type", "Plan"},
	}
	for _, r := range UpsellCandidates(ds) {
		t.Rows = append(t.Rows, []string{
			r.ID, r.Name, fstr(r.EngagementPct, -1), fstr(r.AdoptionPct, -1), r.Type, r.Plan,
		})
	}
	return t
}

func underperformingVerticalsTable(ds *Dataset) *Table {
	t := &Table{
		Slug:    "underperforming-verticals",
		Title:   "Underperforming Verticals",
		Columns: []string{"Industry", "Avg_Engagement", "Avg_Adoption", "Grand_Avg_Engagement"},
	}
	for _, r := range UnderperformingVerticals(ds) {
		t.Rows = append(t.Rows, []string{
			r.Industry, fstr(r.AvgEngagement, 2), fstr(r.AvgAdoption, 2), fstr(r.GrandAvgEngagement, 2),
		})
	}
	return t
}
