// Package trace reads I/O example trace files and decomposes the variable
// references they contain into access paths.
//
// A trace line names a value by a C-style access expression such as
// "a.b->c" or "*p.x". The expression is never parsed as a real syntax tree;
// nesting is inferred from the dereference and member-access separators alone.
package trace

import "strings"

// ReturnValue is the path root used by return traces for the function result.
const ReturnValue = "$return_value"

// Segments splits a variable reference into its access path.
// The reference is split on "*" (dereference), then on "." (member access),
// then every "->" (pointer member access) inside a fragment starts a new
// segment. Segments are trimmed and empty ones are dropped, so a leading "*"
// adds a boundary but never a segment.
func Segments(raw string) []string {
	var segs []string
	for _, deref := range strings.Split(raw, "*") {
		for _, member := range strings.Split(deref, ".") {
			for {
				i := strings.Index(member, "->")
				if i < 0 {
					break
				}
				segs = appendSegment(segs, member[:i])
				member = member[i+2:]
			}
			segs = appendSegment(segs, member)
		}
	}
	return segs
}

// RootedSegments splits raw like Segments but only accepts references whose
// first segment is exactly root. It reports false for references that belong
// to another variable; that is not an error.
func RootedSegments(raw, root string) ([]string, bool) {
	segs := Segments(raw)
	if len(segs) == 0 || segs[0] != root {
		return nil, false
	}
	return segs, true
}

// Label returns the short display name for a reference: the leading
// dereference operators of the whole expression followed by its last segment.
// "x.y" becomes "y", "*p" stays "*p" and "*s->p" becomes "*p".
func Label(raw string) string {
	trimmed := strings.TrimSpace(raw)
	segs := Segments(trimmed)
	if len(segs) == 0 {
		return trimmed
	}
	stars := len(trimmed) - len(strings.TrimLeft(trimmed, "*"))
	return strings.Repeat("*", stars) + segs[len(segs)-1]
}

func appendSegment(segs []string, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return segs
	}
	return append(segs, s)
}
