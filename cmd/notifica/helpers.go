package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notifica-ued/notifica/internal/config"
	"github.com/notifica-ued/notifica/internal/history"
	"github.com/notifica-ued/notifica/internal/model"
	"github.com/notifica-ued/notifica/internal/service"
	"github.com/notifica-ued/notifica/internal/storage"
)

const dateLayout = "2006-01-02"

// openStorage builds the history backend from config, expanding the
// path first.
func openStorage() (service.Storage, error) {
	path := config.ExpandPath(viper.GetString("history.path"))
	return storage.Open(path)
}

// loadHistory opens the store and loads the current snapshot. A missing
// store yields an empty history.
func loadHistory(ctx context.Context) (*history.History, service.Storage, error) {
	store, err := openStorage()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history store: %w", err)
	}

	records, err := store.Load(ctx)
	if err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to load history: %w", err)
	}

	return history.New(records), store, nil
}

// addFilterFlags registers the shared record filter flags on a command.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "start of the notification date range (2006-01-02)")
	cmd.Flags().String("to", "", "end of the notification date range (2006-01-02)")
	cmd.Flags().Bool("last-week", false, "shorthand for the last 7 days")
	cmd.Flags().StringSlice("type", nil, "notification types to include")
	cmd.Flags().StringSlice("distributor", nil, "distributors to include")
	cmd.Flags().StringSlice("department", nil, "departments to include")
	cmd.Flags().StringSlice("case-status", nil, "case statuses to include")
	cmd.Flags().StringP("search", "s", "", "free-text search over supply id, name, contact and phone")
	cmd.Flags().Bool("notified", false, "only records that were reached")
}

// filterFromFlags builds the record filter from the shared flags.
func filterFromFlags(cmd *cobra.Command) (service.RecordFilter, error) {
	var f service.RecordFilter

	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	lastWeek, _ := cmd.Flags().GetBool("last-week")

	if lastWeek {
		if fromStr != "" || toStr != "" {
			return f, fmt.Errorf("--last-week cannot be combined with --from/--to")
		}
		to := time.Now()
		from := to.AddDate(0, 0, -7)
		f.From, f.To = &from, &to
	} else {
		var err error
		if f.From, err = parseDateFlag(fromStr, "from"); err != nil {
			return f, err
		}
		if f.To, err = parseDateFlag(toStr, "to"); err != nil {
			return f, err
		}
	}

	f.Types, _ = cmd.Flags().GetStringSlice("type")
	f.Distributors, _ = cmd.Flags().GetStringSlice("distributor")
	f.Departments, _ = cmd.Flags().GetStringSlice("department")
	f.CaseStatuses, _ = cmd.Flags().GetStringSlice("case-status")
	f.Query, _ = cmd.Flags().GetString("search")
	f.NotifiedOnly, _ = cmd.Flags().GetBool("notified")

	return f, nil
}

func parseDateFlag(value, name string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date %q (want %s): %w", name, value, dateLayout, err)
	}
	return &t, nil
}

func formatNotifiedAt(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

func recordKeyFromFlags(cmd *cobra.Command) (string, error) {
	supply, _ := cmd.Flags().GetString("supply")
	phoneNum, _ := cmd.Flags().GetString("phone")
	if supply == "" {
		return "", fmt.Errorf("--supply is required")
	}
	return model.RecordKey(supply, phoneNum), nil
}
