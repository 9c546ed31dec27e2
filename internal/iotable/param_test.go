package iotable

import (
	"testing"

	"github.com/leapstack-labs/iodoc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramProject(t *testing.T) *testutil.Project {
	t.Helper()
	p := testutil.NewProject(t)
	p.Index(t,
		[]string{"7", "0", "f", "struct S", "s"},
		[]string{"7", "1", "f", "int", "t"},
	)
	p.Trace(t, "f", BeforeSuffix, "s\t{}", "s.a\t1", "t\t2", "s.b\t3")
	p.Trace(t, "f", AfterSuffix, "s\t{}", "s.a\t5", "t\t2", "s.b\t4")
	return p
}

func TestVisualizeParameter(t *testing.T) {
	p := paramProject(t)
	d := newTestDriver(t, p, Options{})

	c := &Collector{}
	res, err := d.VisualizeParameter("f", "s", c)
	require.NoError(t, err)
	assert.Equal(t, StatusRendered, res.Status)
	assert.Equal(t, 3, res.Rows)

	require.Len(t, c.Tables, 1)
	assert.Equal(t, ParameterHeader, c.Tables[0].Header)

	rows := c.Rows()
	assert.Equal(t, []summary{
		{ID: "7_0_0_", Name: "s", Before: "{}", After: "{}"},
		{ID: "7_0_0_0_", Name: "a", Before: "1", After: "5"},
		{ID: "7_0_0_1_", Name: "b", Before: "3", After: "4"},
	}, summarize(rows))
	assert.True(t, rows[0].Collapsible)
	assert.False(t, rows[1].Collapsible)
	assert.True(t, rows[0].Visible)
	assert.Equal(t, IndentUnit, rows[2].Indent)

	// Per-parameter tables never touch the audit logs.
	assert.Nil(t, testutil.ReadLog(t, p.Path(DefaultProcessedLog)))
}

func TestVisualizeParameterMisalignedAfter(t *testing.T) {
	p := paramProject(t)
	p.Trace(t, "f", AfterSuffix, "s\t{}", "t\t2")

	c := &Collector{}
	_, err := newTestDriver(t, p, Options{}).VisualizeParameter("f", "s", c)
	require.NoError(t, err)

	rows := c.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "{}", rows[0].After)
	assert.Empty(t, rows[1].After, "after values are paired by position and path")
	assert.Equal(t, SourceBefore, rows[1].Source)
}

func TestVisualizeParameterEmptyAfterValue(t *testing.T) {
	p := paramProject(t)
	p.Trace(t, "f", AfterSuffix, "s\t{}", "s.a\t", "t\t2", "s.b\t4")

	c := &Collector{}
	_, err := newTestDriver(t, p, Options{}).VisualizeParameter("f", "s", c)
	require.NoError(t, err)

	rows := c.Rows()
	require.Len(t, rows, 3)
	assert.Empty(t, rows[1].After)
	assert.Equal(t, SourceMerged, rows[1].Source, "a paired line with an empty value is still merged")
}

func TestVisualizeParameterOnlyBefore(t *testing.T) {
	p := paramProject(t)
	p.Trace(t, "f", AfterSuffix)

	c := &Collector{}
	res, err := newTestDriver(t, p, Options{}).VisualizeParameter("f", "t", c)
	require.NoError(t, err)
	assert.Equal(t, StatusRendered, res.Status)
	assert.Equal(t, []summary{{ID: "7_1_0_", Name: "t", Before: "2"}}, summarize(c.Rows()))
}

func TestVisualizeParameterSkips(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(t *testing.T, p *testutil.Project)
		parameter string
		want      Status
	}{
		{
			name:      "unknown parameter",
			setup:     func(*testing.T, *testutil.Project) {},
			parameter: "zz",
			want:      StatusUnknownParameter,
		},
		{
			name: "no traces",
			setup: func(t *testing.T, p *testutil.Project) {
				p.Trace(t, "f", BeforeSuffix)
				p.Trace(t, "f", AfterSuffix)
			},
			parameter: "s",
			want:      StatusMissingTrace,
		},
		{
			name: "missing index",
			setup: func(t *testing.T, p *testutil.Project) {
				p.Index(t)
			},
			parameter: "s",
			want:      StatusMissingIndex,
		},
		{
			name: "too long",
			setup: func(t *testing.T, p *testutil.Project) {
				lines := make([]string, DefaultMaxTraceLines+1)
				for i := range lines {
					lines[i] = "s.a\t1"
				}
				p.Trace(t, "f", AfterSuffix, lines...)
			},
			parameter: "s",
			want:      StatusOverflow,
		},
		{
			name: "too long after an empty line",
			setup: func(t *testing.T, p *testutil.Project) {
				lines := []string{"s\t{}", ""}
				for range DefaultMaxTraceLines {
					lines = append(lines, "s.a\t1")
				}
				p.Trace(t, "f", BeforeSuffix, lines...)
			},
			parameter: "s",
			want:      StatusOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paramProject(t)
			tt.setup(t, p)

			c := &Collector{}
			res, err := newTestDriver(t, p, Options{}).VisualizeParameter("f", tt.parameter, c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Status)
			assert.Empty(t, c.Tables)
			assert.Nil(t, testutil.ReadLog(t, p.Path(DefaultOverflowLog)))
		})
	}
}
