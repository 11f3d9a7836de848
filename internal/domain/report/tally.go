package report

import (
	"sort"

	"github.com/taller/backend/internal/domain/shared/valueobject"
	"github.com/taller/backend/internal/domain/workshop"
)

// TopClients groups orders by client name and keeps the top n rows,
// ranked by job count with total spent breaking ties.
func TopClients(orders []workshop.WorkOrder, n int) []ClientTally {
	jobs := make(map[string]int64)
	spent := make(map[string]valueobject.Money)
	var names []string
	for i := range orders {
		name := orders[i].ClientName
		if _, seen := jobs[name]; !seen {
			names = append(names, name)
			spent[name] = valueobject.ZeroCRC()
		}
		jobs[name]++
		// order totals are all CRC, Add cannot mismatch
		sum, _ := spent[name].Add(orders[i].TotalMoney())
		spent[name] = sum
	}

	sort.SliceStable(names, func(a, b int) bool {
		if jobs[names[a]] != jobs[names[b]] {
			return jobs[names[a]] > jobs[names[b]]
		}
		return spent[names[a]].Amount().GreaterThan(spent[names[b]].Amount())
	})
	if len(names) > n {
		names = names[:n]
	}

	out := make([]ClientTally, len(names))
	for i, name := range names {
		out[i] = ClientTally{
			ClientName: name,
			Jobs:       jobs[name],
			TotalSpent: spent[name].Round().Amount(),
		}
	}
	return out
}
