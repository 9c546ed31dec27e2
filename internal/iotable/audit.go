package iotable

import (
	"fmt"
	"os"
)

// AuditLog is an append-only list of function names, one per line.
// It is never read back; an empty path disables it.
type AuditLog struct {
	path string
}

// NewAuditLog returns a log appending to path.
func NewAuditLog(path string) AuditLog {
	return AuditLog{path: path}
}

// Record appends name to the log.
func (l AuditLog) Record(name string) error {
	if l.path == "" {
		return nil
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) //nolint:gosec // G304: log path comes from configuration
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", l.path, err)
	}
	if _, err := fmt.Fprintln(f, name); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append to %s: %w", l.path, err)
	}
	return f.Close()
}
