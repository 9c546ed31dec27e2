package trace

import "strings"

// Collapsible reports whether next is nested below cur, in which case the row
// for cur needs an expand control.
func Collapsible(cur, next []string) bool {
	return len(next) > len(cur)
}

// DereferenceOf reports whether nextName is curName with a single leading "*"
// at the same nesting depth, e.g. "p" followed by "*p".
func DereferenceOf(cur, next []string, curName, nextName string) bool {
	if len(next) != len(cur) {
		return false
	}
	if !strings.HasPrefix(nextName, "*") {
		return false
	}
	return nextName[1:] == curName
}

// Policy holds the display options that decide which rows are skipped.
type Policy struct {
	// ShowDerefdPointer keeps the raw pointer row in front of its
	// dereferenced value instead of showing only the dereferenced value.
	ShowDerefdPointer bool
}

// Skippable reports whether the row for cur can be dropped because the next
// row shows the value it points to.
func (p Policy) Skippable(cur, next []string, curName, nextName string) bool {
	if p.ShowDerefdPointer {
		return false
	}
	return DereferenceOf(cur, next, curName, nextName)
}
