package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notifica-ued/notifica/internal/cli"
	"github.com/notifica-ued/notifica/internal/history"
	"github.com/notifica-ued/notifica/internal/model"
	"github.com/notifica-ued/notifica/internal/report"
	"github.com/notifica-ued/notifica/internal/service"
)

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Walk through history records updating follow-up state",
		Long: `Walk record by record through the history, prompting for the seen
flag, the responded flag, the user's response and the case status.
Pressing enter keeps the current value; "q" stops the walk. Nothing is
persisted until the end, when all accumulated changes are committed in
one save.`,
		RunE: runReview,
	}

	cmd.Flags().StringSlice("type", nil, "restrict the walk to these notification types")

	return cmd
}

func runReview(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	h, store, err := loadHistory(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if h.Len() == 0 {
		slog.Info(cli.FormatWarning("No history data available yet"))
		return nil
	}

	types, _ := cmd.Flags().GetStringSlice("type")
	records := report.Filter(h.Records(), service.RecordFilter{Types: types})
	if len(records) == 0 {
		slog.Info(cli.FormatWarning("No records match the type filter"))
		return nil
	}

	reader := cli.NewLineReader(os.Stdin)
	edits := history.NewEditSet()

	for i := range records {
		rec := &records[i]
		fmt.Println(cli.RenderBox(
			fmt.Sprintf("%d/%d %s", i+1, len(records), rec.Name),
			fmt.Sprintf("Suministro: %s\nTel: %s\nNotificado: %s  Estado: %s\nCaso: %s",
				rec.SupplyID, rec.Phone, formatNotifiedAt(rec.NotifiedAt),
				rec.NotifyStatus, rec.CaseStatus),
		))

		stop, err := promptRecord(ctx, reader, edits, rec)
		if err != nil {
			if errors.Is(err, cli.ErrInputCancelled) || errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if stop {
			break
		}
	}

	if edits.Len() == 0 {
		slog.Info(cli.FormatInfo("No changes made"))
		return nil
	}

	if err := edits.Apply(h); err != nil {
		return err
	}
	if err := store.Save(ctx, h.Records()); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Saved changes to %d records", edits.Len())))

	return nil
}

// promptRecord asks for the four tracking fields of one record. Empty
// answers keep current values; "q" on any prompt stops the whole walk.
func promptRecord(ctx context.Context, reader *cli.LineReader, edits *history.EditSet, rec *model.HistoryRecord) (bool, error) {
	key := rec.Key()

	answer, err := ask(ctx, reader, fmt.Sprintf("Visto [y/n, now %s]", yesNo(rec.Seen)))
	if err != nil || strings.EqualFold(answer, "q") {
		return true, err
	}
	if v, ok := parseYesNo(answer); ok {
		edits.SetSeen(key, v)
	}

	answer, err = ask(ctx, reader, fmt.Sprintf("Respondió [y/n, now %s]", yesNo(rec.Responded)))
	if err != nil || strings.EqualFold(answer, "q") {
		return true, err
	}
	if v, ok := parseYesNo(answer); ok {
		edits.SetResponded(key, v)
	}

	answer, err = ask(ctx, reader, "Respuesta (enter keeps current)")
	if err != nil || strings.EqualFold(answer, "q") {
		return true, err
	}
	if answer != "" {
		edits.SetResponse(key, answer)
	}

	for i, s := range model.CaseStatuses {
		label := string(s)
		if label == "" {
			label = "(sin estado)"
		}
		fmt.Printf("  %d. %s\n", i, label)
	}
	answer, err = ask(ctx, reader, fmt.Sprintf("Estado del caso [0-%d]", len(model.CaseStatuses)-1))
	if err != nil || strings.EqualFold(answer, "q") {
		return true, err
	}
	if answer != "" {
		idx, convErr := strconv.Atoi(answer)
		if convErr != nil || idx < 0 || idx >= len(model.CaseStatuses) {
			slog.Warn("Ignoring invalid case status choice", "answer", answer)
		} else if err := edits.SetCaseStatus(key, string(model.CaseStatuses[idx])); err != nil {
			return true, err
		}
	}

	return false, nil
}

// ask returns the trimmed answer as typed; free-text answers keep their
// casing.
func ask(ctx context.Context, reader *cli.LineReader, prompt string) (string, error) {
	fmt.Print(cli.FormatPrompt(prompt))
	line, err := reader.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func yesNo(v bool) string {
	if v {
		return "y"
	}
	return "n"
}

func parseYesNo(answer string) (value, ok bool) {
	switch strings.ToLower(answer) {
	case "y", "yes", "s", "si", "sí":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}
