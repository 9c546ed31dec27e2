package iotable

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/iodoc/internal/trace"
)

// Default file names and limits.
const (
	DefaultExamplesDir   = "ioexamples"
	DefaultIndexFile     = "parameterids.txt"
	DefaultOverflowLog   = "functions-over200.txt"
	DefaultProcessedLog  = "functions-doc.txt"
	DefaultMaxTraceLines = 200
)

// Trace file suffixes, relative to the function name.
const (
	BeforeSuffix = ".parameter.example.i"
	AfterSuffix  = ".parameter.example.o"
	ReturnSuffix = ".return.example"
)

// Status tells why a table was or was not rendered.
type Status int

const (
	// StatusRendered means the table was written.
	StatusRendered Status = iota
	// StatusMissingTrace means a trace file is missing or empty.
	StatusMissingTrace
	// StatusMissingIndex means the index file is missing or empty.
	StatusMissingIndex
	// StatusOverflow means a trace exceeds the line ceiling or both are empty.
	StatusOverflow
	// StatusUnknownFunction means the index has no id for the function.
	StatusUnknownFunction
	// StatusUnknownParameter means the index has no id for the parameter.
	StatusUnknownParameter
)

func (s Status) String() string {
	switch s {
	case StatusRendered:
		return "rendered"
	case StatusMissingTrace:
		return "missing trace"
	case StatusMissingIndex:
		return "missing index"
	case StatusOverflow:
		return "overflow"
	case StatusUnknownFunction:
		return "unknown function"
	case StatusUnknownParameter:
		return "unknown parameter"
	default:
		return "unknown"
	}
}

// Result describes one visualization call.
type Result struct {
	Function  string
	Parameter string
	Status    Status
	Rows      int
}

// Stats counts the outcomes of every call made through a Driver.
type Stats struct {
	Rendered int
	Skipped  int
	Overflow int
}

// Options configures a Driver.
type Options struct {
	ExamplesDir       string
	IndexFile         string
	OverflowLog       string
	ProcessedLog      string
	MaxTraceLines     int
	ShowDerefdPointer bool
	Logger            *slog.Logger
}

// Driver renders the value tables of documented functions.
// A Driver is not safe for concurrent use.
type Driver struct {
	examplesDir string
	indexFile   string
	maxLines    int
	overflow    AuditLog
	processed   AuditLog
	policy      trace.Policy
	logger      *slog.Logger
	stats       Stats
}

// NewDriver creates a Driver. Zero options fall back to the defaults; log
// paths are used as given so an empty path disables that log.
func NewDriver(opts Options) *Driver {
	if opts.ExamplesDir == "" {
		opts.ExamplesDir = DefaultExamplesDir
	}
	if opts.IndexFile == "" {
		opts.IndexFile = DefaultIndexFile
	}
	if opts.MaxTraceLines <= 0 {
		opts.MaxTraceLines = DefaultMaxTraceLines
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Driver{
		examplesDir: opts.ExamplesDir,
		indexFile:   opts.IndexFile,
		maxLines:    opts.MaxTraceLines,
		overflow:    NewAuditLog(opts.OverflowLog),
		processed:   NewAuditLog(opts.ProcessedLog),
		policy:      trace.Policy{ShowDerefdPointer: opts.ShowDerefdPointer},
		logger:      logger,
	}
}

// Stats returns the counters accumulated so far.
func (d *Driver) Stats() Stats {
	return d.stats
}

// TracePath returns the path of a function's trace file with the given suffix.
func (d *Driver) TracePath(function, suffix string) string {
	return filepath.Join(d.examplesDir, function+suffix)
}

// Visualize writes the I/O example table of function to w.
//
// The table holds two merge passes sharing the function's id prefix: the
// before-call trace against the after-call trace, then the (by then consumed)
// before-call cursor against the return value trace. Any problem with the
// inputs skips the function silently and is reported through the Status; the
// returned error is reserved for failures writing output or logs.
func (d *Driver) Visualize(function string, w RowWriter) (Result, error) {
	res := Result{Function: function}
	beforePath := d.TracePath(function, BeforeSuffix)
	afterPath := d.TracePath(function, AfterSuffix)

	if !nonEmpty(beforePath) || !nonEmpty(afterPath) {
		return d.skip(res, StatusMissingTrace), nil
	}
	if !nonEmpty(d.indexFile) {
		return d.skip(res, StatusMissingIndex), nil
	}

	nBefore, errBefore := countFileLines(beforePath)
	nAfter, errAfter := countFileLines(afterPath)
	if errBefore != nil || errAfter != nil {
		return d.skip(res, StatusMissingTrace), nil
	}
	if nBefore > d.maxLines || nAfter > d.maxLines || (nBefore == 0 && nAfter == 0) {
		if err := d.overflow.Record(function); err != nil {
			return res, fmt.Errorf("failed to record overflow for %s: %w", function, err)
		}
		d.stats.Overflow++
		d.logger.Debug("trace exceeds line limit", "function", function, "before", nBefore, "after", nAfter, "limit", d.maxLines)
		return d.skip(res, StatusOverflow), nil
	}

	if err := d.processed.Record(function); err != nil {
		return res, fmt.Errorf("failed to record %s: %w", function, err)
	}

	prefix, ok := d.lookup(func(x *Index) (string, bool) { return x.FunctionPrefix(function) })
	if !ok {
		return d.skip(res, StatusUnknownFunction), nil
	}

	beforeFile, err := os.Open(beforePath) //nolint:gosec // G304: trace paths come from configuration
	if err != nil {
		return d.skip(res, StatusMissingTrace), nil //nolint:nilerr // unreadable traces are skipped
	}
	defer func() { _ = beforeFile.Close() }()

	afterFile, err := os.Open(afterPath) //nolint:gosec // G304: trace paths come from configuration
	if err != nil {
		return d.skip(res, StatusMissingTrace), nil //nolint:nilerr // unreadable traces are skipped
	}
	defer func() { _ = afterFile.Close() }()

	// The return trace is optional.
	var returnReader io.Reader = strings.NewReader("")
	if returnFile, err := os.Open(d.TracePath(function, ReturnSuffix)); err == nil { //nolint:gosec // G304: trace paths come from configuration
		defer func() { _ = returnFile.Close() }()
		returnReader = returnFile
	}

	d.logger.Debug("generating I/O example", "function", function, "prefix", prefix)

	if err := w.StartTable(FunctionHeader); err != nil {
		return res, err
	}

	before := trace.NewCursor(beforeFile)
	tree := newAncestry(prefix, -1)
	n, err := mergeStreams(before, trace.NewCursor(afterFile), tree, d.policy, w)
	res.Rows += n
	if err != nil {
		return res, err
	}

	// The before cursor is exhausted by now, so this pass only adds the
	// return value rows. Root indices continue so ids stay unique.
	tree = newAncestry(prefix, tree.rootCounter())
	n, err = mergeStreams(before, trace.NewCursor(returnReader), tree, d.policy, w)
	res.Rows += n
	if err != nil {
		return res, err
	}

	if err := w.EndTable(); err != nil {
		return res, err
	}

	res.Status = StatusRendered
	d.stats.Rendered++
	return res, nil
}

// lookup loads the index and applies find. An unreadable index counts as a
// failed lookup.
func (d *Driver) lookup(find func(*Index) (string, bool)) (string, bool) {
	idx, err := LoadIndex(d.indexFile)
	if err != nil {
		d.logger.Debug("failed to load index", "path", d.indexFile, "error", err)
		return "", false
	}
	return find(idx)
}

func (d *Driver) skip(res Result, status Status) Result {
	res.Status = status
	d.stats.Skipped++
	d.logger.Debug("skipping value table", "function", res.Function, "parameter", res.Parameter, "reason", status.String())
	return res
}

// nonEmpty reports whether path is a readable, non-empty regular file.
func nonEmpty(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() > 0
}

func countFileLines(path string) (int, error) {
	f, err := os.Open(path) //nolint:gosec // G304: trace paths come from configuration
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	return trace.CountLines(f)
}
