package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/notifica-ued/notifica/internal/service"
)

// Open builds the history backend for a path or DSN. The workbook
// backend is the default; a sqlite path or "sqlite:" prefix selects the
// database backend. Both sit behind the same Storage contract, so the
// rest of the program never knows which one it got.
func Open(pathOrDSN string) (service.Storage, error) {
	trimmed := strings.TrimSpace(pathOrDSN)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: history path", ErrEmptyString)
	}

	if rest, ok := strings.CutPrefix(trimmed, "sqlite:"); ok {
		return NewSQLiteStorage(rest)
	}

	switch strings.ToLower(filepath.Ext(trimmed)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteStorage(trimmed)
	case ".xlsx", ".xlsm":
		return NewWorkbookStorage(trimmed)
	default:
		return nil, fmt.Errorf("unsupported history store %q (use .xlsx or .db)", trimmed)
	}
}
