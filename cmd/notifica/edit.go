package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/notifica-ued/notifica/internal/cli"
	"github.com/notifica-ued/notifica/internal/common"
	"github.com/notifica-ued/notifica/internal/history"
	"github.com/notifica-ued/notifica/internal/model"
)

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the tracking fields of one history record",
		Long: fmt.Sprintf(`Edit the follow-up state of a record, addressed by supply id and
canonical phone. Only the flags you pass change; everything else keeps
its value. All changes land in one atomic save.

Valid case statuses: %q, %q, %q, %q or "" to clear.`,
			model.CaseStatusNoContact, model.CaseStatusFollowUp,
			model.CaseStatusDocsReceived, model.CaseStatusClosed),
		RunE: runEdit,
	}

	cmd.Flags().String("supply", "", "supply id (Nº SUMINISTRO) of the record")
	cmd.Flags().String("phone", "", "canonical phone of the record (empty for records without one)")
	cmd.Flags().Bool("seen", false, "mark whether the message was seen")
	cmd.Flags().Bool("responded", false, "mark whether the user responded")
	cmd.Flags().String("response", "", "free-text response from the user")
	cmd.Flags().String("case-status", "", "case status label")

	return cmd
}

func runEdit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	key, err := recordKeyFromFlags(cmd)
	if err != nil {
		return err
	}

	edits := history.NewEditSet()
	if cmd.Flags().Changed("seen") {
		seen, _ := cmd.Flags().GetBool("seen")
		edits.SetSeen(key, seen)
	}
	if cmd.Flags().Changed("responded") {
		responded, _ := cmd.Flags().GetBool("responded")
		edits.SetResponded(key, responded)
	}
	if cmd.Flags().Changed("response") {
		response, _ := cmd.Flags().GetString("response")
		edits.SetResponse(key, response)
	}
	if cmd.Flags().Changed("case-status") {
		status, _ := cmd.Flags().GetString("case-status")
		if err := edits.SetCaseStatus(key, status); err != nil {
			return err
		}
	}

	if edits.Len() == 0 {
		slog.Info(cli.FormatWarning("Nothing to change: pass at least one tracking flag"))
		return nil
	}

	h, store, err := loadHistory(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if h.Len() == 0 {
		return common.ErrNoHistory
	}

	if err := edits.Apply(h); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewUserError(
				fmt.Sprintf("no record tracked for %q", key), err)
		}
		return err
	}
	if err := store.Save(ctx, h.Records()); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}

	rec, _ := h.Get(key)
	slog.Info(cli.FormatSuccess(fmt.Sprintf("Updated %s (%s)", rec.Name, rec.SupplyID)))

	return nil
}
