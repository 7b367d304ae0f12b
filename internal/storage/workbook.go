package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/notifica-ued/notifica/internal/model"
)

// WorkbookStorage persists the history as a whole-snapshot xlsx workbook,
// the format the tracking files have always used. Saves go through a
// temp file and a rename, so a crash mid-write leaves the previous
// snapshot intact.
type WorkbookStorage struct {
	path  string
	sheet string
}

// NewWorkbookStorage creates a workbook store at the given path.
func NewWorkbookStorage(path string) (*WorkbookStorage, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	return &WorkbookStorage{path: path, sheet: HistorySheet}, nil
}

// Load reads every record from the workbook. A missing file is an empty
// store, not an error: query, edit and aggregate features degrade to
// "no data" downstream. Missing columns are schema drift and read as
// empty for every row.
func (s *WorkbookStorage) Load(ctx context.Context) ([]model.HistoryRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		slog.Info("History workbook not found, starting empty", "path", s.path)
		return nil, nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(s.loadSheet(f))
	if err != nil {
		return nil, fmt.Errorf("failed to read history sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := headerIndex(rows[0])
	records := make([]model.HistoryRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := rowToRecord(row, cols)
		if rec.SupplyID == "" && rec.Phone == "" {
			continue
		}
		records = append(records, rec)
	}

	slog.Debug("Loaded history workbook", "path", s.path, "records", len(records))

	return records, nil
}

// Save writes the full record set with the complete column schema and
// atomically replaces the previous snapshot. Permission failures here
// must surface: a silently lost commit is worse than a visible one.
func (s *WorkbookStorage) Save(ctx context.Context, records []model.HistoryRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecords(records); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), s.sheet); err != nil {
		return fmt.Errorf("failed to name history sheet: %w", err)
	}

	header := make([]any, len(historyColumns))
	for i, c := range historyColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(s.sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute row cell: %w", err)
		}
		row := recordToRow(&records[i])
		if err := f.SetSheetRow(s.sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write record row %d: %w", i+1, err)
		}
	}

	tmp := s.path + ".tmp"
	if err := f.SaveAs(tmp); err != nil {
		return fmt.Errorf("failed to write history workbook: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to commit history workbook: %w", err)
	}

	slog.Info("Saved history workbook", "path", s.path, "records", len(records))

	return nil
}

// Close is a no-op; the workbook is only held open during Load and Save.
func (s *WorkbookStorage) Close() error {
	return nil
}

// loadSheet prefers the configured sheet but falls back to the first one
// so history files written by older tooling still load.
func (s *WorkbookStorage) loadSheet(f *excelize.File) string {
	for _, name := range f.GetSheetList() {
		if name == s.sheet {
			return name
		}
	}
	return f.GetSheetName(0)
}
