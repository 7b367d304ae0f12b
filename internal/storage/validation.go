// Package storage provides the history persistence backends.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/notifica-ued/notifica/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidRecord = errors.New("invalid history record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecords validates a snapshot before it is persisted. An empty
// snapshot is legal; a nil one is a caller bug.
func validateRecords(records []model.HistoryRecord) error {
	if records == nil {
		return fmt.Errorf("%w: records", ErrNilParameter)
	}
	for i := range records {
		if records[i].SupplyID == "" && records[i].Phone == "" {
			return fmt.Errorf("%w: record at index %d has no identity", ErrInvalidRecord, i)
		}
	}
	return nil
}
