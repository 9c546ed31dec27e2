// Package iotable builds the collapsible parameter value tables shown in the
// "I/O Example" section of a function's documentation.
//
// Values come from trace files recorded before and after a call. The two
// traces are merged line by line into one table whose rows nest according to
// the access paths of the traced values. Rows are handed to a RowWriter, which
// decides the output format.
package iotable

import (
	"strings"

	"github.com/leapstack-labs/iodoc/internal/trace"
)

// Source records which trace contributed a row's values.
type Source int

const (
	// SourceMerged rows carry a value from both traces.
	SourceMerged Source = iota
	// SourceBefore rows only appear in the trace recorded before the call.
	SourceBefore
	// SourceAfter rows only appear in the trace recorded after the call.
	SourceAfter
)

func (s Source) String() string {
	switch s {
	case SourceMerged:
		return "merged"
	case SourceBefore:
		return "before"
	case SourceAfter:
		return "after"
	default:
		return "unknown"
	}
}

// Row is one line of a value table.
type Row struct {
	ID          string `json:"id"`          // "<parent id><sibling index>_"
	Path        string `json:"path"`        // raw access path from the trace
	Name        string `json:"name"`        // display label
	Depth       int    `json:"depth"`       // number of path segments
	Indent      int    `json:"indent"`      // pixels, multiple of IndentUnit
	Visible     bool   `json:"visible"`     // shown before any row is expanded
	Collapsible bool   `json:"collapsible"` // has child rows to expand
	Before      string `json:"before"`      // value before the call
	After       string `json:"after"`       // value after the call
	Source      Source `json:"source"`
}

// Header describes a table.
type Header struct {
	Title  string // optional section title wrapped around the table
	Name   string
	Before string
	After  string
}

// FunctionHeader heads the merged before/after table of a function.
var FunctionHeader = Header{
	Title:  "I/O Example",
	Name:   "parameter name",
	Before: "value before",
	After:  "value after",
}

// ParameterHeader heads the table of a single parameter.
var ParameterHeader = Header{
	Name:   "parameter name",
	Before: "value when function called",
	After:  "value when function returns",
}

// RowWriter receives tables in document order.
// StartTable is only called once a table is known to be rendered, so a
// skipped function produces no calls at all.
type RowWriter interface {
	StartTable(h Header) error
	WriteRow(r Row) error
	EndTable() error
}

// Table is a rendered table held in memory.
type Table struct {
	Header Header `json:"header"`
	Rows   []Row  `json:"rows"`
}

// Collector is a RowWriter that keeps every table in memory.
type Collector struct {
	Tables []Table
}

// StartTable opens a new table.
func (c *Collector) StartTable(h Header) error {
	c.Tables = append(c.Tables, Table{Header: h})
	return nil
}

// WriteRow appends r to the open table.
func (c *Collector) WriteRow(r Row) error {
	if len(c.Tables) == 0 {
		c.Tables = append(c.Tables, Table{})
	}
	t := &c.Tables[len(c.Tables)-1]
	t.Rows = append(t.Rows, r)
	return nil
}

// EndTable closes the open table.
func (c *Collector) EndTable() error {
	return nil
}

// Rows returns the rows of every collected table in order.
func (c *Collector) Rows() []Row {
	var rows []Row
	for _, t := range c.Tables {
		rows = append(rows, t.Rows...)
	}
	return rows
}

// DisplayName returns the label shown for a path. The return value sentinel
// is shown as "return" so it cannot be mistaken for a parameter.
func DisplayName(path string) string {
	return strings.ReplaceAll(trace.Label(path), trace.ReturnValue, "return")
}
