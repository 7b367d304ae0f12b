package storage

import (
	"strings"
	"time"

	"github.com/notifica-ued/notifica/internal/model"
)

// HistorySheet is the worksheet the history workbook persists to.
const HistorySheet = "Historial"

// History column headers, in persisted order. The names match the legacy
// tracking files so existing workbooks load without conversion.
const (
	colSupplyID    = "Nº SUMINISTRO"
	colName        = "NOMBRE ELECTRODEPENDIENTE"
	colContact     = "Contacto"
	colPhone       = "telefonos"
	colDistributor = "Distribuidora"
	colDepartment  = "Departamento"
	colNotifiedAt  = "Fecha Notificación"
	colStatus      = "Estado Notificación"
	colType        = "Tipo Notificación"
	colSeen        = "Visto"
	colResponded   = "Respondió"
	colResponse    = "Respuesta"
	colCaseStatus  = "Estado Caso"
)

// historyColumns is the full fixed column set. Every save writes all of
// them, even when no import ever populated a tracking field.
var historyColumns = []string{
	colSupplyID,
	colName,
	colContact,
	colPhone,
	colDistributor,
	colDepartment,
	colNotifiedAt,
	colStatus,
	colType,
	colSeen,
	colResponded,
	colResponse,
	colCaseStatus,
}

const timestampLayout = "2006-01-02 15:04:05"

// timestampLayouts are accepted on load. The send script and older
// tooling wrote dates in a few shapes.
var timestampLayouts = []string{
	timestampLayout,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

func parseTimestamp(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func formatTimestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(timestampLayout)
}

// truthyCells covers the flag spellings found in legacy workbooks.
var truthyCells = map[string]bool{
	"true":      true,
	"verdadero": true,
	"sí":        true,
	"si":        true,
	"x":         true,
	"1":         true,
}

func parseFlag(raw string) bool {
	return truthyCells[strings.ToLower(strings.TrimSpace(raw))]
}

func formatFlag(v bool) string {
	if v {
		return "TRUE"
	}
	return ""
}

func recordToRow(r *model.HistoryRecord) []any {
	return []any{
		r.SupplyID,
		r.Name,
		r.Contact,
		r.Phone,
		r.Distributor,
		r.Department,
		formatTimestamp(r.NotifiedAt),
		r.NotifyStatus,
		r.NotifyType,
		formatFlag(r.Seen),
		formatFlag(r.Responded),
		r.Response,
		string(r.CaseStatus),
	}
}

// rowToRecord maps one sheet row through the header index. Case status
// labels are taken as-is: validation happens at the edit boundary, not
// on load, so a legacy file with an odd label still loads.
func rowToRecord(row []string, cols map[string]int) model.HistoryRecord {
	return model.HistoryRecord{
		SupplyID:     cellValue(row, cols, colSupplyID),
		Name:         cellValue(row, cols, colName),
		Contact:      cellValue(row, cols, colContact),
		Phone:        cellValue(row, cols, colPhone),
		Distributor:  cellValue(row, cols, colDistributor),
		Department:   cellValue(row, cols, colDepartment),
		NotifiedAt:   parseTimestamp(cellValue(row, cols, colNotifiedAt)),
		NotifyStatus: cellValue(row, cols, colStatus),
		NotifyType:   cellValue(row, cols, colType),
		Seen:         parseFlag(cellValue(row, cols, colSeen)),
		Responded:    parseFlag(cellValue(row, cols, colResponded)),
		Response:     cellValue(row, cols, colResponse),
		CaseStatus:   model.CaseStatus(cellValue(row, cols, colCaseStatus)),
	}
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

func cellValue(row []string, cols map[string]int, column string) string {
	idx, ok := cols[headerKey(column)]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
