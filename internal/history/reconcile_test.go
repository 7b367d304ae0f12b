package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notifica-ued/notifica/internal/model"
)

func entry(supplyID, phone string) model.PadronEntry {
	return model.PadronEntry{
		SupplyID: supplyID,
		Name:     "Titular " + supplyID,
		Phone:    phone,
		Vigencia: "VENCIDA",
	}
}

func TestReconcileAddsNewRecords(t *testing.T) {
	h := New(nil)

	added := Reconcile(h, []model.PadronEntry{
		entry("1", "5492615551234"),
		entry("2", "5492614440000"),
		entry("3", ""),
	})

	assert.Equal(t, 3, added)
	assert.Equal(t, 3, h.Len())
	assert.True(t, h.Contains("3|"), "entries without a phone are still tracked")
}

func TestReconcileIsIdempotent(t *testing.T) {
	h := New(nil)
	eligible := []model.PadronEntry{
		entry("1", "5492615551234"),
		entry("2", "5492614440000"),
	}

	require.Equal(t, 2, Reconcile(h, eligible))
	before := h.Records()

	assert.Equal(t, 0, Reconcile(h, eligible))
	assert.Equal(t, before, h.Records())
}

func TestReconcileKeepsExistingState(t *testing.T) {
	when := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	existing := model.HistoryRecord{
		SupplyID:     "1",
		Name:         "Nombre Viejo",
		Phone:        "5492615551234",
		NotifiedAt:   &when,
		NotifyStatus: "ENVIADO",
		NotifyType:   "Primer Aviso",
		Seen:         true,
		Responded:    true,
		Response:     "ya presentó papeles",
		CaseStatus:   model.CaseStatusFollowUp,
	}
	h := New([]model.HistoryRecord{existing})

	// The re-imported padrón carries a fresher name for the same
	// identity plus one genuinely new record.
	added := Reconcile(h, []model.PadronEntry{
		{SupplyID: "1", Name: "Nombre Nuevo", Phone: "5492615551234", Vigencia: "VENCIDA"},
		entry("2", "5492614440000"),
	})

	assert.Equal(t, 1, added)
	assert.Equal(t, 2, h.Len())

	got, ok := h.Get("1|5492615551234")
	require.True(t, ok)
	assert.Equal(t, existing, got, "existing records win every conflict")
}

func TestReconcileSamePhoneDifferentSupply(t *testing.T) {
	h := New(nil)

	added := Reconcile(h, []model.PadronEntry{
		entry("1", "5492615551234"),
		entry("2", "5492615551234"),
	})

	assert.Equal(t, 2, added, "identity is the supply/phone pair, not the phone alone")
}

func TestNewDeduplicatesOnLoad(t *testing.T) {
	h := New([]model.HistoryRecord{
		{SupplyID: "1", Phone: "5492615551234", Response: "primera"},
		{SupplyID: "1", Phone: "5492615551234", Response: "segunda"},
	})

	assert.Equal(t, 1, h.Len())
	got, ok := h.Get("1|5492615551234")
	require.True(t, ok)
	assert.Equal(t, "primera", got.Response, "first occurrence wins")
}

func TestRecordsReturnsCopy(t *testing.T) {
	h := New([]model.HistoryRecord{{SupplyID: "1", Phone: "5492615551234"}})

	records := h.Records()
	records[0].Response = "mutado"

	got, _ := h.Get("1|5492615551234")
	assert.Empty(t, got.Response)
}
