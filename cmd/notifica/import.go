package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notifica-ued/notifica/internal/cli"
	"github.com/notifica-ued/notifica/internal/history"
	"github.com/notifica-ued/notifica/internal/model"
	"github.com/notifica-ued/notifica/internal/padron"
	"github.com/notifica-ued/notifica/internal/phone"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <padron.xlsx>",
		Short: "Import a padrón workbook into the history",
		Long: `Import a freshly uploaded padrón workbook.

Contacts are normalized to canonical WhatsApp numbers, rows with an
expired certification are selected, and new supply/phone identities are
added to the follow-up history. Records already tracked keep their state
untouched, so re-importing the same padrón is always safe.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("sheet", "", "padrón worksheet name (default from config)")
	cmd.Flags().Bool("dry-run", false, "show what would be imported without saving")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	sheet, _ := cmd.Flags().GetString("sheet")
	if sheet == "" {
		sheet = viper.GetString("padron.sheet")
	}

	slog.Info(cli.FormatTitle("Importing padrón"))

	parser := padron.NewParser(sheet)
	entries, err := parser.ParseFile(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to parse padrón: %w", err)
	}
	if len(entries) == 0 {
		slog.Info(cli.FormatWarning("Padrón has no usable rows"))
		return nil
	}

	bar := newImportBar(len(entries))
	withPhone := 0
	for i := range entries {
		entries[i].Phone = phone.Normalize(entries[i].Contact)
		if entries[i].Phone != "" {
			withPhone++
		}
		_ = bar.Add(1)
	}

	eligible := padron.Eligible(entries)
	slog.Info(cli.FormatSuccess(fmt.Sprintf("Found %d expired records of %d entries", len(eligible), len(entries))))

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		slog.Info(cli.FormatWarning("Dry run mode - not saving to history"))
		displayImportSummary(entries, eligible, withPhone, 0, 0)
		return nil
	}

	h, store, err := loadHistory(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	added := history.Reconcile(h, eligible)
	if err := store.Save(ctx, h.Records()); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}

	slog.Info(cli.FormatSuccess("Import complete"))
	displayImportSummary(entries, eligible, withPhone, added, h.Len())

	return nil
}

func newImportBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Normalizing contacts...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}

func displayImportSummary(entries, eligible []model.PadronEntry, withPhone, added, total int) {
	content := fmt.Sprintf(`Padrón rows: %d
With usable phone: %d
Expired (eligible): %d
New records added: %d
History total: %d`,
		len(entries), withPhone, len(eligible), added, total)

	fmt.Println(cli.RenderBox("Import Summary", content))
}
