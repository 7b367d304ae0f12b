// Package history holds the durable notification-tracking store and the
// only two writers it has: the import reconciler and the edit set.
package history

import (
	"github.com/notifica-ued/notifica/internal/model"
)

// History is the in-memory form of the durable store: an ordered record
// collection with a key index. No two records share a key. It is loaded
// as a whole snapshot, mutated through Reconcile or an EditSet, and
// persisted as a whole snapshot.
type History struct {
	records []model.HistoryRecord
	index   map[string]int
}

// New builds a History from persisted records. Duplicate keys keep the
// first occurrence, so a store that was valid when saved loads unchanged.
func New(records []model.HistoryRecord) *History {
	h := &History{
		records: make([]model.HistoryRecord, 0, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for _, r := range records {
		h.add(r)
	}
	return h
}

// Len returns the number of tracked records.
func (h *History) Len() int {
	return len(h.records)
}

// Contains reports whether a record exists for the given key.
func (h *History) Contains(key string) bool {
	_, ok := h.index[key]
	return ok
}

// Get returns a copy of the record for the given key.
func (h *History) Get(key string) (model.HistoryRecord, bool) {
	idx, ok := h.index[key]
	if !ok {
		return model.HistoryRecord{}, false
	}
	return h.records[idx], true
}

// Records returns a copy of every record in insertion order. Callers can
// filter and aggregate the result without touching the store.
func (h *History) Records() []model.HistoryRecord {
	out := make([]model.HistoryRecord, len(h.records))
	copy(out, h.records)
	return out
}

func (h *History) add(r model.HistoryRecord) bool {
	key := r.Key()
	if _, exists := h.index[key]; exists {
		return false
	}
	h.index[key] = len(h.records)
	h.records = append(h.records, r)
	return true
}
