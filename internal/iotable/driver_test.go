package iotable

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leapstack-labs/iodoc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDriver(t *testing.T, p *testutil.Project, opts Options) *Driver {
	t.Helper()
	opts.ExamplesDir = p.ExamplesDir
	opts.IndexFile = p.IndexFile
	if opts.OverflowLog == "" {
		opts.OverflowLog = p.Path(DefaultOverflowLog)
	}
	if opts.ProcessedLog == "" {
		opts.ProcessedLog = p.Path(DefaultProcessedLog)
	}
	opts.Logger = testutil.NewTestLogger(t)
	return NewDriver(opts)
}

func sumProject(t *testing.T) *testutil.Project {
	t.Helper()
	p := testutil.NewProject(t)
	p.Index(t,
		[]string{"3", "0", "sum", "int", "first"},
		[]string{"3", "1", "sum", "int", "last"},
	)
	p.Trace(t, "sum", BeforeSuffix, "first\t1", "last\t10")
	p.Trace(t, "sum", AfterSuffix, "first\t1", "last\t10")
	p.Trace(t, "sum", ReturnSuffix, "$return_value\t55")
	return p
}

func TestVisualize(t *testing.T) {
	p := sumProject(t)
	d := newTestDriver(t, p, Options{})

	c := &Collector{}
	res, err := d.Visualize("sum", c)
	require.NoError(t, err)
	assert.Equal(t, StatusRendered, res.Status)
	assert.Equal(t, 3, res.Rows)

	require.Len(t, c.Tables, 1)
	assert.Equal(t, FunctionHeader, c.Tables[0].Header)

	assert.Equal(t, []summary{
		{ID: "3_0_", Name: "first", Before: "1", After: "1"},
		{ID: "3_1_", Name: "last", Before: "10", After: "10"},
		{ID: "3_2_", Name: "return", After: "55"},
	}, summarize(c.Rows()))
	assert.Equal(t, SourceAfter, c.Rows()[2].Source)

	assert.Equal(t, []string{"sum"}, testutil.ReadLog(t, p.Path(DefaultProcessedLog)))
	assert.Nil(t, testutil.ReadLog(t, p.Path(DefaultOverflowLog)))
	assert.Equal(t, Stats{Rendered: 1}, d.Stats())
}

func TestVisualizeWithoutReturnTrace(t *testing.T) {
	p := testutil.NewProject(t)
	p.Index(t, []string{"4", "0", "clear", "struct s *", "s"})
	p.Trace(t, "clear", BeforeSuffix, "s\t0x1", "*s\t{}", "*s.n\t3")
	p.Trace(t, "clear", AfterSuffix, "s\t0x1", "*s\t{}", "*s.n\t0")

	c := &Collector{}
	res, err := newTestDriver(t, p, Options{}).Visualize("clear", c)
	require.NoError(t, err)
	assert.Equal(t, StatusRendered, res.Status)
	assert.Equal(t, []summary{
		{ID: "4_0_", Name: "*s", Before: "{}", After: "{}"},
		{ID: "4_0_0_", Name: "*n", Before: "3", After: "0"},
	}, summarize(c.Rows()))
}

func TestVisualizeShowDerefdPointer(t *testing.T) {
	p := testutil.NewProject(t)
	p.Index(t, []string{"4", "0", "clear", "int *", "p"})
	p.Trace(t, "clear", BeforeSuffix, "p\t0x1", "*p\t3")
	p.Trace(t, "clear", AfterSuffix, "p\t0x1", "*p\t0")

	c := &Collector{}
	_, err := newTestDriver(t, p, Options{ShowDerefdPointer: true}).Visualize("clear", c)
	require.NoError(t, err)
	assert.Len(t, c.Rows(), 2)
}

func TestVisualizeSkips(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(t *testing.T, p *testutil.Project)
		want      Status
		processed []string
	}{
		{
			name: "missing after trace",
			setup: func(t *testing.T, p *testutil.Project) {
				p.Trace(t, "f", BeforeSuffix, "a\t1")
				p.Index(t, []string{"1", "0", "f", "int", "a"})
			},
			want: StatusMissingTrace,
		},
		{
			name: "empty before trace",
			setup: func(t *testing.T, p *testutil.Project) {
				p.Trace(t, "f", BeforeSuffix)
				p.Trace(t, "f", AfterSuffix, "a\t1")
				p.Index(t, []string{"1", "0", "f", "int", "a"})
			},
			want: StatusMissingTrace,
		},
		{
			name: "missing index",
			setup: func(t *testing.T, p *testutil.Project) {
				p.Trace(t, "f", BeforeSuffix, "a\t1")
				p.Trace(t, "f", AfterSuffix, "a\t1")
			},
			want: StatusMissingIndex,
		},
		{
			name: "function not in index",
			setup: func(t *testing.T, p *testutil.Project) {
				p.Trace(t, "f", BeforeSuffix, "a\t1")
				p.Trace(t, "f", AfterSuffix, "a\t1")
				p.Index(t, []string{"1", "0", "g", "int", "a"})
			},
			want:      StatusUnknownFunction,
			processed: []string{"f"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testutil.NewProject(t)
			tt.setup(t, p)
			d := newTestDriver(t, p, Options{})

			c := &Collector{}
			res, err := d.Visualize("f", c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Status)
			assert.Empty(t, c.Tables)
			assert.Equal(t, tt.processed, testutil.ReadLog(t, p.Path(DefaultProcessedLog)))
			assert.Nil(t, testutil.ReadLog(t, p.Path(DefaultOverflowLog)))
			assert.Equal(t, Stats{Skipped: 1}, d.Stats())
		})
	}
}

func TestVisualizeOverflow(t *testing.T) {
	p := testutil.NewProject(t)
	p.Index(t, []string{"1", "0", "big", "int *", "a"})

	lines := make([]string, DefaultMaxTraceLines+1)
	for i := range lines {
		lines[i] = fmt.Sprintf("a[%d]\t%d", i, i)
	}
	p.Trace(t, "big", BeforeSuffix, lines...)
	p.Trace(t, "big", AfterSuffix, "a\t1")

	d := newTestDriver(t, p, Options{})
	c := &Collector{}
	res, err := d.Visualize("big", c)
	require.NoError(t, err)
	assert.Equal(t, StatusOverflow, res.Status)
	assert.Empty(t, c.Tables)
	assert.Equal(t, []string{"big"}, testutil.ReadLog(t, p.Path(DefaultOverflowLog)))
	assert.Nil(t, testutil.ReadLog(t, p.Path(DefaultProcessedLog)))

	// Exactly at the ceiling still renders.
	p.Trace(t, "big", BeforeSuffix, lines[:DefaultMaxTraceLines]...)
	res, err = d.Visualize("big", c)
	require.NoError(t, err)
	assert.Equal(t, StatusRendered, res.Status)

	assert.Equal(t, Stats{Rendered: 1, Skipped: 1, Overflow: 1}, d.Stats())
}

func TestVisualizeCustomCeiling(t *testing.T) {
	p := sumProject(t)
	d := newTestDriver(t, p, Options{MaxTraceLines: 1})

	res, err := d.Visualize("sum", &Collector{})
	require.NoError(t, err)
	assert.Equal(t, StatusOverflow, res.Status)
}

func TestVisualizeLogsAppend(t *testing.T) {
	p := sumProject(t)
	d := newTestDriver(t, p, Options{})

	for range 2 {
		_, err := d.Visualize("sum", &Collector{})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"sum", "sum"}, testutil.ReadLog(t, p.Path(DefaultProcessedLog)))
}

func TestVisualizeDisabledLogs(t *testing.T) {
	p := sumProject(t)
	d := NewDriver(Options{ExamplesDir: p.ExamplesDir, IndexFile: p.IndexFile})

	res, err := d.Visualize("sum", &Collector{})
	require.NoError(t, err)
	assert.Equal(t, StatusRendered, res.Status)
	assert.Nil(t, testutil.ReadLog(t, p.Path(DefaultProcessedLog)))
}

func TestVisualizeUniqueIDs(t *testing.T) {
	p := testutil.NewProject(t)
	p.Index(t, []string{"5", "0", "split", "struct pair *", "pr"})
	p.Trace(t, "split", BeforeSuffix, "pr\t0x1", "*pr\t{}", "*pr.a\t1", "*pr.b\t2", "n\t4")
	p.Trace(t, "split", AfterSuffix, "pr\t0x1", "*pr\t{}", "*pr.a\t9", "*pr.b\t2", "n\t4")
	p.Trace(t, "split", ReturnSuffix, "$return_value\t{}", "$return_value.x\t1", "$return_value.y\t2")

	c := &Collector{}
	_, err := newTestDriver(t, p, Options{}).Visualize("split", c)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, r := range c.Rows() {
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
	assert.Len(t, seen, 7)
	assert.True(t, seen["5_2_"], "return row continues the root index")
	assert.True(t, seen["5_2_1_"])
}

type failingWriter struct {
	Collector
}

func (failingWriter) WriteRow(Row) error { return errors.New("disk full") }

func TestVisualizeWriterError(t *testing.T) {
	p := sumProject(t)
	_, err := newTestDriver(t, p, Options{}).Visualize("sum", &failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
