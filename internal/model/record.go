package model

import (
	"fmt"
	"strings"
	"time"
)

// CaseStatus is the enumerated resolution stage of a followed-up case.
// The labels are persisted verbatim, so they stay in the wording the
// legacy tracking files already use.
type CaseStatus string

// Case status values. Empty means the case has not been staged yet.
const (
	CaseStatusNone         CaseStatus = ""
	CaseStatusNoContact    CaseStatus = "Sin contacto"
	CaseStatusFollowUp     CaseStatus = "En seguimiento"
	CaseStatusDocsReceived CaseStatus = "Documentación recibida"
	CaseStatusClosed       CaseStatus = "Caso cerrado"
)

// CaseStatuses lists every valid case status in presentation order.
var CaseStatuses = []CaseStatus{
	CaseStatusNone,
	CaseStatusNoContact,
	CaseStatusFollowUp,
	CaseStatusDocsReceived,
	CaseStatusClosed,
}

// ParseCaseStatus validates a raw status label. Unknown labels are
// rejected rather than coerced.
func ParseCaseStatus(raw string) (CaseStatus, error) {
	candidate := CaseStatus(strings.TrimSpace(raw))
	for _, s := range CaseStatuses {
		if candidate == s {
			return s, nil
		}
	}
	return CaseStatusNone, fmt.Errorf("invalid case status: %q", raw)
}

// notifiedStatuses are the notification-status values that count as a
// completed send, regardless of whether a date was recorded.
var notifiedStatuses = map[string]bool{
	"ENVIADO":   true,
	"ENTREGADO": true,
	"OK":        true,
}

// HistoryRecord is the durable unit of tracked state, one per
// supply/phone identity. The identity fields are copied from the padrón
// at first sight and never touched again; the tracking fields start empty
// and are owned by operator edits and the external send process.
type HistoryRecord struct {
	// Immutable on import.
	SupplyID    string
	Name        string
	Contact     string
	Phone       string
	Distributor string
	Department  string

	// Written by the external send process.
	NotifiedAt   *time.Time
	NotifyStatus string
	NotifyType   string

	// Operator-owned tracking fields.
	Seen       bool
	Responded  bool
	Response   string
	CaseStatus CaseStatus
}

// Key returns the record's identity within the history store.
func (r *HistoryRecord) Key() string {
	return RecordKey(r.SupplyID, r.Phone)
}

// RecordKey builds the history identity for a supply/phone pair. Records
// without an extractable phone still get a key and stay tracked.
func RecordKey(supplyID, phone string) string {
	return supplyID + "|" + phone
}

// Notified reports whether the record has been reached: either a
// notification date exists or the status is one of the sent set.
func (r *HistoryRecord) Notified() bool {
	if r.NotifiedAt != nil && !r.NotifiedAt.IsZero() {
		return true
	}
	return notifiedStatuses[strings.ToUpper(strings.TrimSpace(r.NotifyStatus))]
}

// NewHistoryRecord seeds a history record from an eligible padrón entry.
// Every tracking field starts at its empty default.
func NewHistoryRecord(e PadronEntry) HistoryRecord {
	return HistoryRecord{
		SupplyID:    e.SupplyID,
		Name:        e.Name,
		Contact:     e.Contact,
		Phone:       e.Phone,
		Distributor: e.Distributor,
		Department:  e.Department,
	}
}
