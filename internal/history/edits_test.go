package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notifica-ued/notifica/internal/common"
	"github.com/notifica-ued/notifica/internal/model"
)

func testHistory() *History {
	return New([]model.HistoryRecord{
		{SupplyID: "1", Phone: "5492615551234", Response: "sin novedades"},
		{SupplyID: "2", Phone: "5492614440000"},
	})
}

func TestEditSetApply(t *testing.T) {
	h := testHistory()

	edits := NewEditSet()
	edits.SetSeen("1|5492615551234", true)
	edits.SetResponded("1|5492615551234", true)
	edits.SetResponse("1|5492615551234", "presentó certificado")
	require.NoError(t, edits.SetCaseStatus("1|5492615551234", "Documentación recibida"))

	require.NoError(t, edits.Apply(h))

	got, ok := h.Get("1|5492615551234")
	require.True(t, ok)
	assert.True(t, got.Seen)
	assert.True(t, got.Responded)
	assert.Equal(t, "presentó certificado", got.Response)
	assert.Equal(t, model.CaseStatusDocsReceived, got.CaseStatus)

	// The other record is untouched.
	other, _ := h.Get("2|5492614440000")
	assert.False(t, other.Seen)
	assert.Equal(t, model.CaseStatusNone, other.CaseStatus)
}

func TestEditSetPartialEditKeepsOtherFields(t *testing.T) {
	h := testHistory()

	edits := NewEditSet()
	edits.SetSeen("1|5492615551234", true)
	require.NoError(t, edits.Apply(h))

	got, _ := h.Get("1|5492615551234")
	assert.Equal(t, "sin novedades", got.Response, "unstaged fields keep their value")
	assert.False(t, got.Responded)
}

func TestEditSetRejectsUnknownCaseStatus(t *testing.T) {
	edits := NewEditSet()

	err := edits.SetCaseStatus("1|5492615551234", "Resuelto")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidEdit)
	assert.Equal(t, 0, edits.Len(), "nothing is staged on rejection")
}

func TestEditSetClearCaseStatus(t *testing.T) {
	h := testHistory()

	edits := NewEditSet()
	require.NoError(t, edits.SetCaseStatus("1|5492615551234", "Caso cerrado"))
	require.NoError(t, edits.Apply(h))

	edits = NewEditSet()
	require.NoError(t, edits.SetCaseStatus("1|5492615551234", ""))
	require.NoError(t, edits.Apply(h))

	got, _ := h.Get("1|5492615551234")
	assert.Equal(t, model.CaseStatusNone, got.CaseStatus)
}

func TestEditSetApplyMissingKeyChangesNothing(t *testing.T) {
	h := testHistory()

	edits := NewEditSet()
	edits.SetSeen("1|5492615551234", true)
	edits.SetSeen("99|", true)

	err := edits.Apply(h)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)

	got, _ := h.Get("1|5492615551234")
	assert.False(t, got.Seen, "a missing key rejects the whole batch")
}

func TestEditSetLastWriteWinsWithinBatch(t *testing.T) {
	h := testHistory()

	edits := NewEditSet()
	edits.SetResponse("1|5492615551234", "primera")
	edits.SetResponse("1|5492615551234", "segunda")
	assert.Equal(t, 1, edits.Len())

	require.NoError(t, edits.Apply(h))

	got, _ := h.Get("1|5492615551234")
	assert.Equal(t, "segunda", got.Response)
}
