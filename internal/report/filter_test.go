package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notifica-ued/notifica/internal/model"
	"github.com/notifica-ued/notifica/internal/service"
)

func filterFixture() []model.HistoryRecord {
	feb3 := time.Date(2026, 2, 3, 23, 59, 0, 0, time.UTC)
	feb10 := time.Date(2026, 2, 10, 0, 1, 0, 0, time.UTC)
	return []model.HistoryRecord{
		{
			SupplyID:    "7001",
			Name:        "María Pérez",
			Contact:     "261 555 1234",
			Phone:       "5492615551234",
			Distributor: "EDEMSA",
			Department:  "Godoy Cruz",
			NotifiedAt:  &feb3,
			NotifyType:  "Primer Aviso",
			CaseStatus:  model.CaseStatusFollowUp,
		},
		{
			SupplyID:     "7002",
			Name:         "Juan Gómez",
			Phone:        "5492614440000",
			Distributor:  "EDESTE",
			Department:   "San Martín",
			NotifiedAt:   &feb10,
			NotifyStatus: "ENVIADO",
			NotifyType:   "Reiteración",
		},
		{
			SupplyID:    "7003",
			Name:        "Ana López",
			Distributor: "EDEMSA",
			Department:  "Capital",
			CaseStatus:  model.CaseStatusNoContact,
		},
	}
}

func TestFilterEmptyMatchesAll(t *testing.T) {
	records := filterFixture()
	assert.Len(t, Filter(records, service.RecordFilter{}), len(records))
}

func TestFilterDateRangeInclusive(t *testing.T) {
	records := filterFixture()
	from := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	// Bounds compare on the date portion only, so a record notified at
	// 23:59 on the from-day and one at 00:01 on the to-day both match.
	got := Filter(records, service.RecordFilter{From: &from, To: &to})
	require.Len(t, got, 2)
	assert.Equal(t, "7001", got[0].SupplyID)
	assert.Equal(t, "7002", got[1].SupplyID)
}

func TestFilterDateRangeExcludesUnnotified(t *testing.T) {
	records := filterFixture()
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	got := Filter(records, service.RecordFilter{From: &from})
	for _, r := range got {
		assert.NotNil(t, r.NotifiedAt, "records without a date never match a bounded range")
	}
	assert.Len(t, got, 2)
}

func TestFilterByType(t *testing.T) {
	got := Filter(filterFixture(), service.RecordFilter{Types: []string{"Reiteración"}})
	require.Len(t, got, 1)
	assert.Equal(t, "7002", got[0].SupplyID)
}

func TestFilterConjunctive(t *testing.T) {
	got := Filter(filterFixture(), service.RecordFilter{
		Distributors: []string{"EDEMSA"},
		Departments:  []string{"Capital"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "7003", got[0].SupplyID)
}

func TestFilterByCaseStatus(t *testing.T) {
	got := Filter(filterFixture(), service.RecordFilter{CaseStatuses: []string{"Sin contacto"}})
	require.Len(t, got, 1)
	assert.Equal(t, "7003", got[0].SupplyID)
}

func TestFilterNotifiedOnly(t *testing.T) {
	got := Filter(filterFixture(), service.RecordFilter{NotifiedOnly: true})
	assert.Len(t, got, 2)
}

func TestFilterFreeTextQuery(t *testing.T) {
	records := filterFixture()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"name case-insensitive", "maría", []string{"7001"}},
		{"supply id", "7002", []string{"7002"}},
		{"phone substring", "444", []string{"7002"}},
		{"raw contact cell", "261 555", []string{"7001"}},
		{"whitespace-only query matches all", "   ", []string{"7001", "7002", "7003"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, service.RecordFilter{Query: tt.query})
			ids := make([]string, 0, len(got))
			for _, r := range got {
				ids = append(ids, r.SupplyID)
			}
			if tt.want == nil {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.want, ids)
			}
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	records := filterFixture()
	before := make([]model.HistoryRecord, len(records))
	copy(before, records)

	_ = Filter(records, service.RecordFilter{Types: []string{"Primer Aviso"}})

	assert.Equal(t, before, records)
}
