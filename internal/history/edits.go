package history

import (
	"fmt"

	"github.com/notifica-ued/notifica/internal/common"
	"github.com/notifica-ued/notifica/internal/model"
)

// recordEdit accumulates pending changes to one record. Nil fields were
// not touched.
type recordEdit struct {
	seen       *bool
	responded  *bool
	response   *string
	caseStatus *model.CaseStatus
}

// EditSet batches operator edits to tracking fields, addressed by record
// key rather than by any transient position. Edits accumulate in memory;
// Apply pushes them into a History all at once, after which the caller
// commits the store in a single save. Either every edit lands in the
// persisted snapshot or none does.
type EditSet struct {
	edits map[string]*recordEdit
	order []string
}

// NewEditSet creates an empty edit batch.
func NewEditSet() *EditSet {
	return &EditSet{edits: make(map[string]*recordEdit)}
}

// Len returns the number of records with pending edits.
func (s *EditSet) Len() int {
	return len(s.edits)
}

// SetSeen stages the seen flag for a record.
func (s *EditSet) SetSeen(key string, seen bool) {
	s.edit(key).seen = &seen
}

// SetResponded stages the responded flag for a record.
func (s *EditSet) SetResponded(key string, responded bool) {
	s.edit(key).responded = &responded
}

// SetResponse stages the free-text response for a record.
func (s *EditSet) SetResponse(key string, response string) {
	s.edit(key).response = &response
}

// SetCaseStatus stages the case status for a record. The label is
// validated here, at the mutation boundary: an unknown label is rejected
// and nothing is staged, leaving any prior value intact.
func (s *EditSet) SetCaseStatus(key string, raw string) error {
	status, err := model.ParseCaseStatus(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidEdit, err)
	}
	s.edit(key).caseStatus = &status
	return nil
}

// Apply pushes every staged edit into the history. All keys are checked
// before anything changes, so a missing record leaves the history exactly
// as it was. Fields without a staged edit keep their current value.
func (s *EditSet) Apply(h *History) error {
	for _, key := range s.order {
		if !h.Contains(key) {
			return fmt.Errorf("%w: record %q", common.ErrNotFound, key)
		}
	}

	for _, key := range s.order {
		idx := h.index[key]
		rec := &h.records[idx]
		e := s.edits[key]
		if e.seen != nil {
			rec.Seen = *e.seen
		}
		if e.responded != nil {
			rec.Responded = *e.responded
		}
		if e.response != nil {
			rec.Response = *e.response
		}
		if e.caseStatus != nil {
			rec.CaseStatus = *e.caseStatus
		}
	}

	return nil
}

func (s *EditSet) edit(key string) *recordEdit {
	e, ok := s.edits[key]
	if !ok {
		e = &recordEdit{}
		s.edits[key] = e
		s.order = append(s.order, key)
	}
	return e
}
