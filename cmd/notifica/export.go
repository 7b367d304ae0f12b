package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notifica-ued/notifica/internal/cli"
	"github.com/notifica-ued/notifica/internal/report"
	"github.com/notifica-ued/notifica/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a history view to CSV or Google Sheets",
		Long: `Export the history, optionally filtered, to a CSV file or to the
shared Google Sheets report. Exports are projections only: nothing
written here is ever read back into the history store.`,
		RunE: runExport,
	}

	addFilterFlags(cmd)
	cmd.Flags().String("out", "", "CSV file to write")
	cmd.Flags().Bool("sheets", false, "upload to the configured Google Sheets report")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	outPath, _ := cmd.Flags().GetString("out")
	toSheets, _ := cmd.Flags().GetBool("sheets")
	if outPath == "" && !toSheets {
		return fmt.Errorf("nothing to do: pass --out <file.csv> or --sheets")
	}

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
	slog.Info(fmt.Sprintf("Exporting %d of %d records", len(results), h.Len()))

	if outPath != "" {
		if err := writeCSVFile(outPath, results); err != nil {
			return err
		}
		slog.Info(cli.FormatSuccess(fmt.Sprintf("Wrote %s", outPath)))
	}

	if toSheets {
		writer, err := sheets.NewWriter(ctx, sheetsConfigFromViper())
		if err != nil {
			return fmt.Errorf("failed to set up sheets writer: %w", err)
		}
		if err := writer.Write(ctx, results); err != nil {
			return fmt.Errorf("failed to upload report: %w", err)
		}
		slog.Info(cli.FormatSuccess("Report uploaded to Google Sheets"))
	}

	return nil
}

// sheetsConfigFromViper builds the report config, falling back to the
// package defaults for anything unset.
func sheetsConfigFromViper() sheets.Config {
	cfg := sheets.DefaultConfig()

	if v := viper.GetString("sheets.client_id"); v != "" {
		cfg.ClientID = v
	}
	if v := viper.GetString("sheets.client_secret"); v != "" {
		cfg.ClientSecret = v
	}
	if v := viper.GetString("sheets.refresh_token"); v != "" {
		cfg.RefreshToken = v
	}
	if v := viper.GetString("sheets.service_account_path"); v != "" {
		cfg.ServiceAccountPath = v
	}
	if v := viper.GetString("sheets.spreadsheet_id"); v != "" {
		cfg.SpreadsheetID = v
	}
	if v := viper.GetString("sheets.spreadsheet_name"); v != "" {
		cfg.SpreadsheetName = v
	}
	if v := viper.GetString("sheets.sheet_name"); v != "" {
		cfg.SheetName = v
	}
	if v := viper.GetInt("sheets.retry_attempts"); v > 0 {
		cfg.RetryAttempts = v
	}

	return cfg
}
