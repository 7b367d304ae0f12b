// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/notifica-ued/notifica/internal/model"
)

// Storage defines the contract for history persistence. The store is a
// whole snapshot: Load reads every record at session start and Save
// replaces the persisted set in one atomic commit. A missing store loads
// as an empty record set, not an error.
type Storage interface {
	Load(ctx context.Context) ([]model.HistoryRecord, error)
	Save(ctx context.Context, records []model.HistoryRecord) error
	Close() error
}

// RecordFilter defines the conjunctive filters for history queries.
// Every set field must match; slice fields match any of their values.
// The free-text query matches case-insensitively against phone, raw
// contact, name and supply id.
type RecordFilter struct {
	From         *time.Time
	To           *time.Time
	Types        []string
	Distributors []string
	Departments  []string
	CaseStatuses []string
	Query        string
	NotifiedOnly bool
}

// Deliverer runs the external send process and returns its output
// verbatim. The process writes its own notification updates into the
// persistence layer; we only read them back on the next load.
type Deliverer interface {
	Run(ctx context.Context) (string, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
