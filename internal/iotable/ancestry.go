package iotable

import "strconv"

// IndentUnit is the indentation in pixels added per nesting level.
const IndentUnit = 16

// frame is an open parent: the id its children are prefixed with, the
// sibling index of its last child and the segment depth of that child.
type frame struct {
	id      string
	counter int
	depth   int
}

// placement is where the next row goes in the table.
type placement struct {
	ID      string
	Indent  int
	Visible bool
}

// ancestry tracks the open parents while rows are emitted.
// The bottom frame is the synthetic root carrying the table's id prefix and is
// never popped.
type ancestry struct {
	frames    []frame
	prevDepth int
	lastID    string
}

// newAncestry starts a tree under prefix. rootCounter is the sibling index
// before the first root row, -1 for a fresh table.
func newAncestry(prefix string, rootCounter int) *ancestry {
	return &ancestry{
		frames: []frame{{id: prefix, counter: rootCounter}},
	}
}

// place assigns the id, indent and visibility of a row at depth segments,
// relative to the previous row.
func (a *ancestry) place(depth int) placement {
	if depth < 1 {
		depth = 1
	}

	switch {
	case a.lastID == "":
		a.frames = a.frames[:1]
		a.top().counter++
	case depth > a.prevDepth:
		// Children are only ever one level below their parent, however many
		// segments deeper they are.
		a.frames = append(a.frames, frame{id: a.lastID, counter: 0})
	default:
		// Close every frame whose parent already holds rows this shallow.
		for depth < a.prevDepth && len(a.frames) > 1 && depth <= a.frames[len(a.frames)-2].depth {
			a.frames = a.frames[:len(a.frames)-1]
		}
		a.top().counter++
	}

	top := a.top()
	top.depth = depth
	id := top.id + strconv.Itoa(top.counter) + "_"
	a.lastID = id
	a.prevDepth = depth

	return placement{
		ID:      id,
		Indent:  IndentUnit * (len(a.frames) - 1),
		Visible: len(a.frames) == 1,
	}
}

// skip records a row that was not emitted. It still becomes the previous row
// for depth comparison but creates no node.
func (a *ancestry) skip(depth int) {
	if depth < 1 {
		depth = 1
	}
	a.prevDepth = depth
}

// rootCounter returns the sibling index of the last root row.
func (a *ancestry) rootCounter() int {
	return a.frames[0].counter
}

func (a *ancestry) top() *frame {
	return &a.frames[len(a.frames)-1]
}
