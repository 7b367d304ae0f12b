// Package padron reads imported padrón workbooks and classifies which
// rows are currently eligible for notification.
package padron

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/notifica-ued/notifica/internal/model"
)

// DefaultSheet is the worksheet the padrón ships on.
const DefaultSheet = "Padrón"

// Column headers as they appear in the padrón workbook. Lookup is
// case-insensitive and whitespace-trimmed; a missing column is schema
// drift, recovered by treating every cell of that column as empty.
const (
	colSupplyID    = "Nº SUMINISTRO"
	colName        = "NOMBRE ELECTRODEPENDIENTE"
	colContact     = "Contacto"
	colVigencia    = "VIGENCIA"
	colDistributor = "Distribuidora"
	colDepartment  = "Departamento"
)

// Parser reads padrón workbooks into model entries.
type Parser struct {
	sheet string
}

// NewParser creates a parser for the given worksheet name. An empty name
// falls back to the default padrón sheet.
func NewParser(sheet string) *Parser {
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &Parser{sheet: sheet}
}

// ParseFile reads every row of the padrón sheet. Rows with an empty
// supply id are skipped; every other malformation degrades to empty
// fields rather than failing. Canonical phones are derived by the
// caller, normalization being its own pipeline stage.
func (p *Parser) ParseFile(ctx context.Context, path string) ([]model.PadronEntry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open padrón workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(p.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", p.sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := headerIndex(rows[0])
	for _, missing := range []string{colSupplyID, colName, colContact, colVigencia} {
		if _, ok := cols[headerKey(missing)]; !ok {
			slog.Warn("Padrón column missing, treating as empty",
				"column", missing,
				"sheet", p.sheet)
		}
	}

	entries := make([]model.PadronEntry, 0, len(rows)-1)
	skipped := 0
	for _, row := range rows[1:] {
		entry := model.PadronEntry{
			SupplyID:    cell(row, cols, colSupplyID),
			Name:        cell(row, cols, colName),
			Contact:     cell(row, cols, colContact),
			Vigencia:    cell(row, cols, colVigencia),
			Distributor: cell(row, cols, colDistributor),
			Department:  cell(row, cols, colDepartment),
		}
		if entry.SupplyID == "" {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}

	slog.Info("Parsed padrón workbook",
		"path", path,
		"sheet", p.sheet,
		"entries", len(entries),
		"skipped_rows", skipped)

	return entries, nil
}

// Eligible returns the entries whose vigencia marks them as expired. The
// input slice is never modified.
func Eligible(entries []model.PadronEntry) []model.PadronEntry {
	eligible := make([]model.PadronEntry, 0, len(entries))
	for _, e := range entries {
		if e.Expired() {
			eligible = append(eligible, e)
		}
	}
	return eligible
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := headerKey(h)
		if key == "" {
			continue
		}
		if _, exists := cols[key]; !exists {
			cols[key] = i
		}
	}
	return cols
}

func headerKey(h string) string {
	return strings.ToUpper(strings.TrimSpace(h))
}

func cell(row []string, cols map[string]int, column string) string {
	idx, ok := cols[headerKey(column)]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
