package report

import (
	"strings"
	"time"

	"github.com/notifica-ued/notifica/internal/model"
	"github.com/notifica-ued/notifica/internal/service"
)

// Filter returns the records matching every set field of the filter.
// Date bounds compare on the date portion of the notification timestamp
// only, inclusive on both ends; a record without a notification date
// never matches a date-bounded filter. The free-text query matches
// case-insensitively by substring against phone, raw contact, name and
// supply id, any one of which is enough.
func Filter(records []model.HistoryRecord, f service.RecordFilter) []model.HistoryRecord {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]model.HistoryRecord, 0, len(records))
	for i := range records {
		r := &records[i]
		if !matchesDateRange(r, f.From, f.To) {
			continue
		}
		if !matchesAny(r.NotifyType, f.Types) {
			continue
		}
		if !matchesAny(r.Distributor, f.Distributors) {
			continue
		}
		if !matchesAny(r.Department, f.Departments) {
			continue
		}
		if !matchesAny(string(r.CaseStatus), f.CaseStatuses) {
			continue
		}
		if f.NotifiedOnly && !r.Notified() {
			continue
		}
		if query != "" && !matchesQuery(r, query) {
			continue
		}
		out = append(out, *r)
	}
	return out
}

func matchesDateRange(r *model.HistoryRecord, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if r.NotifiedAt == nil || r.NotifiedAt.IsZero() {
		return false
	}
	day := dateOnly(*r.NotifiedAt)
	if from != nil && day.Before(dateOnly(*from)) {
		return false
	}
	if to != nil && day.After(dateOnly(*to)) {
		return false
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func matchesAny(value string, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		if value == w {
			return true
		}
	}
	return false
}

func matchesQuery(r *model.HistoryRecord, query string) bool {
	for _, field := range []string{r.Phone, r.Contact, r.Name, r.SupplyID} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
