package main

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notifica-ued/notifica/internal/cli"
	"github.com/notifica-ued/notifica/internal/report"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show notification totals and case status distribution",
		Long: `Show how many users were reached, broken down by notification type,
plus the distribution of notification statuses. With --type the
distribution covers only that type; without it, the whole history.`,
		RunE: runStats,
	}

	cmd.Flags().String("type", "", "restrict the status distribution to one notification type")

	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
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

	records := h.Records()
	notifyType, _ := cmd.Flags().GetString("type")

	var b strings.Builder
	fmt.Fprintf(&b, "Records tracked: %d\n", len(records))
	fmt.Fprintf(&b, "Users reached:   %d\n", report.CountNotified(records, ""))

	totals := report.TotalsByType(records)
	if len(totals) > 0 {
		b.WriteString("\nReached by type:\n")
		for _, t := range totals {
			label := t.Type
			if label == "" {
				label = "(sin tipo)"
			}
			fmt.Fprintf(&b, "  %-24s %d\n", label, t.Count)
		}
	}

	dist := report.StatusDistribution(records, notifyType)
	if len(dist) > 0 {
		if notifyType != "" {
			fmt.Fprintf(&b, "\nEstado Notificación (%s):\n", notifyType)
		} else {
			b.WriteString("\nEstado Notificación:\n")
		}
		statuses := make([]string, 0, len(dist))
		for s := range dist {
			statuses = append(statuses, s)
		}
		sort.Slice(statuses, func(i, j int) bool {
			if dist[statuses[i]] != dist[statuses[j]] {
				return dist[statuses[i]] > dist[statuses[j]]
			}
			return statuses[i] < statuses[j]
		})
		for _, s := range statuses {
			label := s
			if label == "" {
				label = "(sin estado)"
			}
			fmt.Fprintf(&b, "  %-24s %d\n", label, dist[s])
		}
	}

	fmt.Println(cli.RenderBox("Notification Stats", strings.TrimRight(b.String(), "\n")))

	return nil
}
