package iotable

import (
	"fmt"

	"github.com/leapstack-labs/iodoc/internal/trace"
)

// mergePass merges a before-call and an after-call trace into rows.
//
// The traces are recorded independently, so they need not list the same
// entries. Lines with equal paths share a row; otherwise one side is consumed
// alone while the other waits. A side stays "deferred" after its row turned
// out to be a parent or a raw pointer of the following line, so that its
// children (or the dereferenced value) are emitted before the other side
// catches up.
type mergePass struct {
	before *trace.Cursor
	after  *trace.Cursor
	tree   *ancestry
	policy trace.Policy
	w      RowWriter

	deferBefore bool
	deferAfter  bool
	rows        int
}

// lookahead is the parsed next line of one side.
type lookahead struct {
	ok   bool
	path string
	segs []string
}

func peek(c *trace.Cursor) lookahead {
	next, ok := c.Lookahead()
	if !ok {
		return lookahead{}
	}
	return lookahead{ok: true, path: next.Path, segs: trace.Segments(next.Path)}
}

// mergeStreams runs one merge pass and returns the number of rows written.
func mergeStreams(before, after *trace.Cursor, tree *ancestry, policy trace.Policy, w RowWriter) (int, error) {
	p := &mergePass{
		before: before,
		after:  after,
		tree:   tree,
		policy: policy,
		w:      w,
	}
	for !before.Exhausted() || !after.Exhausted() {
		if err := p.step(); err != nil {
			return p.rows, err
		}
	}
	if err := before.Err(); err != nil {
		return p.rows, fmt.Errorf("failed to read before trace: %w", err)
	}
	if err := after.Err(); err != nil {
		return p.rows, fmt.Errorf("failed to read after trace: %w", err)
	}
	return p.rows, nil
}

// classify decides which side(s) the next row comes from.
func (p *mergePass) classify() Source {
	if p.before.Exhausted() {
		return SourceAfter
	}
	if p.after.Exhausted() {
		return SourceBefore
	}

	b, _ := p.before.Current()
	a, _ := p.after.Current()
	switch {
	case b.Path == a.Path:
		return SourceMerged
	case p.deferBefore:
		return SourceBefore
	case p.deferAfter:
		return SourceAfter
	}

	// Neither side is mid-hierarchy: one trace has an entry the other lacks.
	// Consume the side whose next line is where the other side already is.
	if next, ok := p.before.Lookahead(); ok && next.Path == a.Path {
		return SourceBefore
	}
	if next, ok := p.after.Lookahead(); ok && next.Path == b.Path {
		return SourceAfter
	}
	return SourceBefore
}

func (p *mergePass) step() error {
	src := p.classify()
	useBefore := src != SourceAfter
	useAfter := src != SourceBefore

	var line, beforeLine, afterLine trace.Line
	if useBefore {
		beforeLine, _ = p.before.Current()
		line = beforeLine
	}
	if useAfter {
		afterLine, _ = p.after.Current()
		if !useBefore {
			line = afterLine
		}
	}
	segs := trace.Segments(line.Path)

	// A row is skipped only if every side it comes from agrees.
	var nextBefore, nextAfter lookahead
	skip := true
	if useBefore {
		nextBefore = peek(p.before)
		skip = skip && nextBefore.ok && p.policy.Skippable(segs, nextBefore.segs, line.Path, nextBefore.path)
	}
	if useAfter {
		nextAfter = peek(p.after)
		skip = skip && nextAfter.ok && p.policy.Skippable(segs, nextAfter.segs, line.Path, nextAfter.path)
	}

	collBefore := useBefore && !skip && nextBefore.ok && trace.Collapsible(segs, nextBefore.segs)
	collAfter := useAfter && !skip && nextAfter.ok && trace.Collapsible(segs, nextAfter.segs)

	if skip {
		p.tree.skip(len(segs))
	} else {
		pl := p.tree.place(len(segs))
		row := Row{
			ID:          pl.ID,
			Path:        line.Path,
			Name:        DisplayName(line.Path),
			Depth:       len(segs),
			Indent:      pl.Indent,
			Visible:     pl.Visible,
			Collapsible: collBefore || collAfter,
			Before:      beforeLine.Value,
			After:       afterLine.Value,
			Source:      src,
		}
		if err := p.w.WriteRow(row); err != nil {
			return fmt.Errorf("failed to write row %s: %w", row.ID, err)
		}
		p.rows++
	}

	if useBefore {
		if nextBefore.ok {
			p.deferBefore = trace.DereferenceOf(segs, nextBefore.segs, line.Path, nextBefore.path) || collBefore
		}
		p.before.Advance()
	}
	if useAfter {
		if nextAfter.ok {
			p.deferAfter = trace.DereferenceOf(segs, nextAfter.segs, line.Path, nextAfter.path) || collAfter
		}
		p.after.Advance()
	}
	return nil
}
