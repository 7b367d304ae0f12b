package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notifica-ued/notifica/internal/model"
)

func TestWriteCSV(t *testing.T) {
	sent := time.Date(2026, 2, 3, 14, 30, 0, 0, time.UTC)
	records := []model.HistoryRecord{
		{
			SupplyID:     "7001",
			Name:         "María Pérez",
			Contact:      "261 555 1234",
			Phone:        "5492615551234",
			Distributor:  "EDEMSA",
			Department:   "Godoy Cruz",
			NotifiedAt:   &sent,
			NotifyStatus: "ENVIADO",
			NotifyType:   "Primer Aviso",
			Seen:         true,
			Response:     "respuesta, con coma",
			CaseStatus:   model.CaseStatusFollowUp,
		},
		{SupplyID: "7002", Phone: "5492614440000"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{
		"7001", "María Pérez", "261 555 1234", "5492615551234",
		"EDEMSA", "Godoy Cruz",
		"2026-02-03 14:30:00", "ENVIADO", "Primer Aviso",
		"TRUE", "", "respuesta, con coma", "En seguimiento",
	}, rows[1])
	assert.Equal(t, []string{
		"7002", "", "", "5492614440000", "", "", "", "", "", "", "", "", "",
	}, rows[2])
}

func TestWriteCSVEmptyStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Header, rows[0])
}

func TestRowsIncludesHeader(t *testing.T) {
	rows := Rows([]model.HistoryRecord{{SupplyID: "7001"}})
	require.Len(t, rows, 2)
	assert.Equal(t, Header, rows[0])
	assert.Len(t, rows[1], len(Header))
}
