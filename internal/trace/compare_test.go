package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapsible(t *testing.T) {
	assert.True(t, Collapsible(Segments("s"), Segments("s.a")))
	assert.True(t, Collapsible(Segments("s"), Segments("t->a")), "depth alone decides")
	assert.False(t, Collapsible(Segments("s.a"), Segments("s.b")))
	assert.False(t, Collapsible(Segments("s.a"), Segments("t")))
	assert.False(t, Collapsible(Segments("p"), Segments("*p")))
}

func TestDereferenceOf(t *testing.T) {
	tests := []struct {
		name     string
		cur      string
		next     string
		expected bool
	}{
		{name: "pointer then pointee", cur: "p", next: "*p", expected: true},
		{name: "pointee then double dereference", cur: "*p", next: "**p", expected: true},
		{name: "different variable", cur: "p", next: "*q", expected: false},
		{name: "no dereference", cur: "p", next: "q", expected: false},
		{name: "deeper row", cur: "p", next: "*p.x", expected: false},
		{name: "member dereference", cur: "s.p", next: "*s.p", expected: true},
		{name: "empty next name", cur: "p", next: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DereferenceOf(Segments(tt.cur), Segments(tt.next), tt.cur, tt.next)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPolicySkippable(t *testing.T) {
	cur, next := Segments("p"), Segments("*p")

	assert.True(t, Policy{}.Skippable(cur, next, "p", "*p"))
	assert.False(t, Policy{ShowDerefdPointer: true}.Skippable(cur, next, "p", "*p"))
	assert.False(t, Policy{}.Skippable(cur, Segments("q"), "p", "q"))
}
