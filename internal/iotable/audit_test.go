package iotable

import (
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/iodoc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "functions-doc.txt")
	l := NewAuditLog(path)

	require.NoError(t, l.Record("a"))
	require.NoError(t, NewAuditLog(path).Record("b"))
	assert.Equal(t, []string{"a", "b"}, testutil.ReadLog(t, path))
}

func TestAuditLogDisabled(t *testing.T) {
	assert.NoError(t, NewAuditLog("").Record("a"))
}

func TestAuditLogBadPath(t *testing.T) {
	err := NewAuditLog(filepath.Join(t.TempDir(), "missing", "log.txt")).Record("a")
	assert.Error(t, err)
}
