// Package report derives read-only counts, distributions and filtered
// views from history records. Nothing in this package mutates its input.
package report

import (
	"sort"
	"strings"

	"github.com/notifica-ued/notifica/internal/model"
)

// TypeTotal is the notified count for one notification type.
type TypeTotal struct {
	Type  string
	Count int
}

// CountNotified counts records that were reached, optionally restricted
// to one notification type. An empty type counts across all types.
func CountNotified(records []model.HistoryRecord, notifyType string) int {
	count := 0
	for i := range records {
		if !records[i].Notified() {
			continue
		}
		if notifyType != "" && records[i].NotifyType != notifyType {
			continue
		}
		count++
	}
	return count
}

// TotalsByType groups notified records by notification type, ordered by
// count descending. Equal counts order by type label ascending so the
// result is deterministic across runs.
func TotalsByType(records []model.HistoryRecord) []TypeTotal {
	counts := make(map[string]int)
	order := make([]string, 0)
	for i := range records {
		if !records[i].Notified() {
			continue
		}
		t := records[i].NotifyType
		if _, seen := counts[t]; !seen {
			order = append(order, t)
		}
		counts[t]++
	}

	totals := make([]TypeTotal, 0, len(order))
	for _, t := range order {
		totals = append(totals, TypeTotal{Type: t, Count: counts[t]})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Count != totals[j].Count {
			return totals[i].Count > totals[j].Count
		}
		return totals[i].Type < totals[j].Type
	})

	return totals
}

// StatusDistribution counts notification-status labels among records of
// the given type (every matching record counts, reached or not). An
// empty type spans all records.
func StatusDistribution(records []model.HistoryRecord, notifyType string) map[string]int {
	dist := make(map[string]int)
	for i := range records {
		if notifyType != "" && records[i].NotifyType != notifyType {
			continue
		}
		dist[records[i].NotifyStatus]++
	}
	return dist
}

// DistinctTypes returns the non-empty notification types present in the
// records, sorted ascending.
func DistinctTypes(records []model.HistoryRecord) []string {
	seen := make(map[string]bool)
	types := make([]string, 0)
	for i := range records {
		t := strings.TrimSpace(records[i].NotifyType)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
