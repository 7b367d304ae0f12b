package history

import (
	"log/slog"

	"github.com/notifica-ued/notifica/internal/model"
)

// Reconcile merges newly imported eligible entries into the history: a
// left-biased union keyed by supply/phone identity. Existing records win
// every conflict and are left byte-identical, so re-importing an
// overlapping or fully duplicate padrón never resets tracked state.
// Running it twice with the same input is a no-op the second time.
//
// New keys are inserted as fresh records with every tracking field at
// its empty default. Entries without an extractable phone are still
// tracked; reaching them is the send process's problem, not ours.
//
// Returns the number of records added. The eligible slice is read-only.
func Reconcile(h *History, eligible []model.PadronEntry) int {
	added := 0
	for _, e := range eligible {
		if h.add(model.NewHistoryRecord(e)) {
			added++
		}
	}

	slog.Info("Reconciled padrón into history",
		"eligible", len(eligible),
		"added", added,
		"total", h.Len())

	return added
}
