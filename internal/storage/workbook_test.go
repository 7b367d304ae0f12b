package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/notifica-ued/notifica/internal/model"
)

func historyFixture() []model.HistoryRecord {
	sent := time.Date(2026, 2, 3, 14, 30, 0, 0, time.UTC)
	return []model.HistoryRecord{
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
			Responded:    true,
			Response:     "presentó certificado",
			CaseStatus:   model.CaseStatusDocsReceived,
		},
		{
			SupplyID: "7002",
			Name:     "Juan Gómez",
			Phone:    "5492614440000",
		},
	}
}

func TestWorkbookRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "historial.xlsx")

	store, err := NewWorkbookStorage(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	records := historyFixture()
	require.NoError(t, store.Save(ctx, records))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, records[0].SupplyID, loaded[0].SupplyID)
	assert.Equal(t, records[0].Name, loaded[0].Name)
	assert.Equal(t, records[0].Phone, loaded[0].Phone)
	require.NotNil(t, loaded[0].NotifiedAt)
	assert.True(t, records[0].NotifiedAt.Equal(*loaded[0].NotifiedAt))
	assert.Equal(t, "ENVIADO", loaded[0].NotifyStatus)
	assert.True(t, loaded[0].Seen)
	assert.True(t, loaded[0].Responded)
	assert.Equal(t, "presentó certificado", loaded[0].Response)
	assert.Equal(t, model.CaseStatusDocsReceived, loaded[0].CaseStatus)

	assert.Nil(t, loaded[1].NotifiedAt)
	assert.False(t, loaded[1].Seen)
	assert.Equal(t, model.CaseStatusNone, loaded[1].CaseStatus)
}

func TestWorkbookLoadMissingFile(t *testing.T) {
	store, err := NewWorkbookStorage(filepath.Join(t.TempDir(), "historial.xlsx"))
	require.NoError(t, err)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded, "a missing workbook is an empty store")
}

func TestWorkbookSaveReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "historial.xlsx")

	store, err := NewWorkbookStorage(path)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, historyFixture()))
	require.NoError(t, store.Save(ctx, historyFixture()[:1]))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 1, "each save is a whole snapshot, not an append")

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "no temp file left behind")
}

func TestWorkbookSaveEmptyWritesHeader(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "historial.xlsx")

	store, err := NewWorkbookStorage(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, []model.HistoryRecord{}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(HistorySheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, historyColumns, rows[0])
}

func TestWorkbookLoadLegacyColumnDrift(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "historial.xlsx")

	// Legacy file: columns in a different order, tracking columns
	// missing, flags in Spanish spellings, sheet under an older name.
	f := excelize.NewFile()
	sheet := "Hoja1"
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	rows := [][]any{
		{"telefonos", "Nº SUMINISTRO", "Visto", "Fecha Notificación"},
		{"5492615551234", "7001", "VERDADERO", "03/02/2026"},
		{"", "", "", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	store, err := NewWorkbookStorage(path)
	require.NoError(t, err)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1, "fully empty rows are skipped")

	assert.Equal(t, "7001", loaded[0].SupplyID)
	assert.Equal(t, "5492615551234", loaded[0].Phone)
	assert.True(t, loaded[0].Seen)
	require.NotNil(t, loaded[0].NotifiedAt)
	assert.Equal(t, time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), *loaded[0].NotifiedAt)
	assert.Empty(t, loaded[0].NotifyStatus, "missing columns read as empty")
}
