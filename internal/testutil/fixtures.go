package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Project is a throwaway trace directory laid out the way the instrumented
// build writes it.
type Project struct {
	Root        string
	ExamplesDir string
	IndexFile   string
}

// NewProject creates an empty project under t.TempDir().
func NewProject(t testing.TB) *Project {
	t.Helper()
	root := t.TempDir()
	p := &Project{
		Root:        root,
		ExamplesDir: filepath.Join(root, "ioexamples"),
		IndexFile:   filepath.Join(root, "parameterids.txt"),
	}
	require.NoError(t, os.MkdirAll(p.ExamplesDir, 0o750))
	return p
}

// Trace writes a trace file for function. lines are joined with newlines.
func (p *Project) Trace(t testing.TB, function, suffix string, lines ...string) {
	t.Helper()
	body := strings.Join(lines, "\n")
	if len(lines) > 0 {
		body += "\n"
	}
	p.write(t, filepath.Join(p.ExamplesDir, function+suffix), body)
}

// Index writes the parameter id index. Each row is joined with tabs.
func (p *Project) Index(t testing.TB, rows ...[]string) {
	t.Helper()
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(strings.Join(r, "\t"))
		b.WriteByte('\n')
	}
	p.write(t, p.IndexFile, b.String())
}

// Path joins elem onto the project root.
func (p *Project) Path(elem ...string) string {
	return filepath.Join(append([]string{p.Root}, elem...)...)
}

// ReadLog returns the lines of an append-only log, or nil if it was never
// created.
func ReadLog(t testing.TB, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // G304: test fixture path
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func (p *Project) write(t testing.TB, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}
