package iotable

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/iodoc/internal/trace"
)

// paramLine is a before-call line that belongs to the requested parameter,
// with the after-call value recorded at the same position.
type paramLine struct {
	line    trace.Line
	after   string
	matched bool
	segs    []string
}

// VisualizeParameter writes the value table of one parameter of function.
//
// Unlike Visualize, the traces are paired by position: line i of the
// before-call trace goes with line i of the after-call trace. Only lines whose
// access path starts at parameter are kept.
func (d *Driver) VisualizeParameter(function, parameter string, w RowWriter) (Result, error) {
	res := Result{Function: function, Parameter: parameter}
	beforePath := d.TracePath(function, BeforeSuffix)
	afterPath := d.TracePath(function, AfterSuffix)

	if !nonEmpty(beforePath) && !nonEmpty(afterPath) {
		return d.skip(res, StatusMissingTrace), nil
	}
	if !nonEmpty(d.indexFile) {
		return d.skip(res, StatusMissingIndex), nil
	}

	prefix, ok := d.lookup(func(x *Index) (string, bool) { return x.ParameterPrefix(function, parameter) })
	if !ok {
		return d.skip(res, StatusUnknownParameter), nil
	}

	before, err := readTrace(beforePath)
	if err != nil {
		return d.skip(res, StatusMissingTrace), nil //nolint:nilerr // unreadable traces are skipped
	}
	after, err := readTrace(afterPath)
	if err != nil {
		return d.skip(res, StatusMissingTrace), nil //nolint:nilerr // unreadable traces are skipped
	}
	nBefore, errBefore := optionalLineCount(beforePath)
	nAfter, errAfter := optionalLineCount(afterPath)
	if errBefore != nil || errAfter != nil {
		return d.skip(res, StatusMissingTrace), nil
	}
	if nBefore > d.maxLines || nAfter > d.maxLines {
		return d.skip(res, StatusOverflow), nil
	}

	var kept []paramLine
	for i, line := range before {
		segs, ok := trace.RootedSegments(line.Path, parameter)
		if !ok {
			continue
		}
		pl := paramLine{line: line, segs: segs}
		if i < len(after) && after[i].Path == line.Path {
			pl.after = after[i].Value
			pl.matched = true
		}
		kept = append(kept, pl)
	}

	if err := w.StartTable(ParameterHeader); err != nil {
		return res, err
	}

	tree := newAncestry(prefix, -1)
	for i, pl := range kept {
		collapsible := i+1 < len(kept) && trace.Collapsible(pl.segs, kept[i+1].segs)
		place := tree.place(len(pl.segs))
		row := Row{
			ID:          place.ID,
			Path:        pl.line.Path,
			Name:        DisplayName(pl.line.Path),
			Depth:       len(pl.segs),
			Indent:      place.Indent,
			Visible:     place.Visible,
			Collapsible: collapsible,
			Before:      pl.line.Value,
			After:       pl.after,
			Source:      SourceMerged,
		}
		if !pl.matched {
			row.Source = SourceBefore
		}
		if err := w.WriteRow(row); err != nil {
			return res, fmt.Errorf("failed to write row %s: %w", row.ID, err)
		}
		res.Rows++
	}

	if err := w.EndTable(); err != nil {
		return res, err
	}

	res.Status = StatusRendered
	d.stats.Rendered++
	return res, nil
}

// optionalLineCount counts the raw lines of a trace file, past any empty
// line. A missing file has none.
func optionalLineCount(path string) (int, error) {
	n, err := countFileLines(path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	return n, err
}

// readTrace reads a whole trace file. A missing file reads as empty.
func readTrace(path string) ([]trace.Line, error) {
	f, err := os.Open(path) //nolint:gosec // G304: trace paths come from configuration
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return trace.ReadLines(f)
}
