// Package export projects history records into tabular views for
// downloads and report uploads. These are read-only projections; nothing
// here writes back into the store.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/notifica-ued/notifica/internal/model"
)

// Header is the exported column set, matching the legacy download
// format.
var Header = []string{
	"Nº SUMINISTRO",
	"NOMBRE ELECTRODEPENDIENTE",
	"Contacto",
	"telefonos",
	"Distribuidora",
	"Departamento",
	"Fecha Notificación",
	"Estado Notificación",
	"Tipo Notificación",
	"Visto",
	"Respondió",
	"Respuesta",
	"Estado Caso",
}

// Rows renders the records as text cells in Header order, header row
// included.
func Rows(records []model.HistoryRecord) [][]string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, Header)
	for i := range records {
		r := &records[i]
		rows = append(rows, []string{
			r.SupplyID,
			r.Name,
			r.Contact,
			r.Phone,
			r.Distributor,
			r.Department,
			formatDate(r.NotifiedAt),
			r.NotifyStatus,
			r.NotifyType,
			formatFlag(r.Seen),
			formatFlag(r.Responded),
			r.Response,
			string(r.CaseStatus),
		})
	}
	return rows
}

// WriteCSV writes the records as comma-separated text with the fixed
// header. An empty record set still produces the header row, so the
// download is never an empty file.
func WriteCSV(w io.Writer, records []model.HistoryRecord) error {
	cw := csv.NewWriter(w)

	for i, row := range Rows(records) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return nil
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatFlag(v bool) string {
	if v {
		return "TRUE"
	}
	return ""
}
