package reports

import (
	"sort"

	"github.com/fathomlabs/churnlens/internal/models"
)

// RepChurnRow is one representative's churn volume and share of all churn.
//
// ChurnRatePct keeps the source dataset's field name: it is the owner's share
// of total churned customers, not a rate against the owner's full book.
type RepChurnRow struct {
	Owner           string  `json:"representative"`
	ChurnedEntities int     `json:"churned_entities"`
	ChurnRatePct    float64 `json:"churn_rate_pct"`
}

// RepChurnShare attributes churned customers to their owning representative.
// Links without a matching customer are excluded (inner join).
func RepChurnShare(ds *Dataset) []RepChurnRow {
	var churned []ownedCustomer
	for _, oc := range ds.joinOwners() {
		if oc.customer.Churned {
			churned = append(churned, oc)
		}
	}

	groups := groupBy(len(churned), func(i int) string { return churned[i].owner })

	rows := make([]RepChurnRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, RepChurnRow{
			Owner:           g.key,
			ChurnedEntities: len(g.idx),
			ChurnRatePct:    pctOf(float64(len(g.idx)), float64(len(churned)), 2),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ChurnRatePct > rows[j].ChurnRatePct
	})

	return rows
}

// RepReasonRow is one of a representative's three most common loss reasons.
type RepReasonRow struct {
	Owner       string `json:"representative"`
	LossReason  string `json:"loss_reason"`
	Occurrences int    `json:"occurrences"`
	Rank        int    `json:"reason_rank"`
}

// RepChurnReasons ranks each representative's loss reasons by occurrence and
// keeps the top three. Customers with the "N/A" sentinel reason are skipped.
func RepChurnReasons(ds *Dataset) []RepReasonRow {
	var churned []ownedCustomer
	for _, oc := range ds.joinOwners() {
		if oc.customer.Churned && oc.customer.LossReason != models.LossReasonNA {
			churned = append(churned, oc)
		}
	}

	type reasonKey struct{ owner, reason string }
	groups := groupBy(len(churned), func(i int) reasonKey {
		return reasonKey{churned[i].owner, churned[i].customer.LossReason}
	})

	byOwner := groupBy(len(groups), func(i int) string { return groups[i].key.owner })

	var rows []RepReasonRow
	for _, og := range byOwner {
		idx := og.idx
		ranks := rowNumber(len(idx), func(a, b int) bool {
			return len(groups[idx[a]].idx) > len(groups[idx[b]].idx)
		})
		for pos, gi := range idx {
			if ranks[pos] > 3 {
				continue
			}
			rows = append(rows, RepReasonRow{
				Owner:       groups[gi].key.owner,
				LossReason:  groups[gi].key.reason,
				Occurrences: len(groups[gi].idx),
				Rank:        ranks[pos],
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Owner != rows[j].Owner {
			return rows[i].Owner < rows[j].Owner
		}
		return rows[i].Rank < rows[j].Rank
	})

	return rows
}
