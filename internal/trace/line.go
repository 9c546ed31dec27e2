package trace

import (
	"bufio"
	"io"
	"strings"
)

// maxLineSize bounds a single trace line. Values of large buffers are dumped
// on one line, so the bufio default of 64KB is too small.
const maxLineSize = 1024 * 1024

// Line is one record of a trace file: an access path and the value observed
// for it.
type Line struct {
	Path  string
	Value string
}

// ParseLine splits a "path\tvalue" record. Both parts are trimmed; a record
// without a tab has an empty value.
func ParseLine(s string) Line {
	path, value, _ := strings.Cut(s, "\t")
	return Line{
		Path:  strings.TrimSpace(path),
		Value: strings.TrimSpace(value),
	}
}

// Cursor walks a trace stream keeping the current line and one line of
// lookahead. The stream ends at EOF or at the first empty line.
type Cursor struct {
	sc      *bufio.Scanner
	cur     Line
	next    Line
	hasCur  bool
	hasNext bool
	done    bool
	err     error
}

// NewCursor returns a cursor positioned on the first line of r.
func NewCursor(r io.Reader) *Cursor {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	c := &Cursor{sc: sc}
	c.cur, c.hasCur = c.read()
	c.next, c.hasNext = c.read()
	return c
}

// Current returns the line under the cursor.
func (c *Cursor) Current() (Line, bool) {
	return c.cur, c.hasCur
}

// Lookahead returns the line after the current one.
func (c *Cursor) Lookahead() (Line, bool) {
	if !c.hasCur {
		return Line{}, false
	}
	return c.next, c.hasNext
}

// Exhausted reports whether every line has been consumed.
func (c *Cursor) Exhausted() bool {
	return !c.hasCur
}

// Advance consumes the current line.
func (c *Cursor) Advance() {
	if !c.hasCur {
		return
	}
	c.cur, c.hasCur = c.next, c.hasNext
	c.next, c.hasNext = c.read()
}

// Err returns the first read error, if any. A failed read ends the stream.
func (c *Cursor) Err() error {
	return c.err
}

func (c *Cursor) read() (Line, bool) {
	if c.done {
		return Line{}, false
	}
	if !c.sc.Scan() {
		c.done = true
		c.err = c.sc.Err()
		return Line{}, false
	}
	text := c.sc.Text()
	if strings.TrimRight(text, "\r") == "" {
		c.done = true
		return Line{}, false
	}
	return ParseLine(text), true
}

// ReadLines returns every line of a trace stream up to its end.
func ReadLines(r io.Reader) ([]Line, error) {
	c := NewCursor(r)
	var lines []Line
	for !c.Exhausted() {
		line, _ := c.Current()
		lines = append(lines, line)
		c.Advance()
	}
	return lines, c.Err()
}

// CountLines counts the raw lines of r, empty ones included.
func CountLines(r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	n := 0
	for sc.Scan() {
		n++
	}
	return n, sc.Err()
}
