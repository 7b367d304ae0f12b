package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notifica-ued/notifica/internal/cli"
	"github.com/notifica-ued/notifica/internal/export"
	"github.com/notifica-ued/notifica/internal/model"
	"github.com/notifica-ued/notifica/internal/report"
)

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Search and filter the notification history",
		Long: `Search the history with conjunctive filters: date range over the
notification date, notification type, distributor, department, case
status and a free-text search over supply id, name, contact and phone.`,
		RunE: runQuery,
	}

	addFilterFlags(cmd)
	cmd.Flags().String("csv", "", "write the filtered view to this CSV file")

	return cmd
}

func runQuery(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	h, store, err := loadHistory(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if h.Len() == 0 {
		slog.Info(cli.FormatWarning("No history data available yet"))
		return nil
	}

	results := report.Filter(h.Records(), filter)
	if len(results) == 0 {
		slog.Info(cli.FormatWarning("No records match the filters"))
		return nil
	}

	printRecordTable(results)
	slog.Info(fmt.Sprintf("%d of %d records match", len(results), h.Len()))

	if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
		if err := writeCSVFile(csvPath, results); err != nil {
			return err
		}
		slog.Info(cli.FormatSuccess(fmt.Sprintf("Wrote filtered view to %s", csvPath)))
	}

	return nil
}

func printRecordTable(records []model.HistoryRecord) {
	header := fmt.Sprintf("%-12s %-28s %-14s %-11s %-12s %-14s %-20s",
		"SUMINISTRO", "NOMBRE", "TELÉFONO", "NOTIFICADO", "ESTADO", "TIPO", "CASO")
	fmt.Println(cli.TableHeaderStyle.Render(header))

	for i := range records {
		r := &records[i]
		fmt.Printf("%-12s %-28s %-14s %-11s %-12s %-14s %-20s\n",
			clip(r.SupplyID, 12), clip(r.Name, 28), clip(r.Phone, 14),
			formatNotifiedAt(r.NotifiedAt), clip(r.NotifyStatus, 12),
			clip(r.NotifyType, 14), clip(string(r.CaseStatus), 20))
	}
}

func clip(s string, limit int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit-1]) + "…"
}

func writeCSVFile(path string, records []model.HistoryRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := export.WriteCSV(f, records); err != nil {
		return err
	}
	return f.Close()
}
