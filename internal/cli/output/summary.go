package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/iodoc/internal/site"
	"github.com/muesli/termenv"
)

// BuildSummary prints the outcome of a site build in a bordered box.
func (r *Renderer) BuildSummary(m *site.Manifest, outputDir string) {
	s := r.styles
	lines := []string{
		s.Bold.Render(m.Title),
		r.FormatKeyValue("functions", m.Stats.Functions, 10),
		r.FormatKeyValue("rendered", s.Success.Render(fmt.Sprint(m.Stats.Rendered)), 10),
		r.FormatKeyValue("skipped", m.Stats.Skipped, 10),
		r.FormatKeyValue("overflow", overflow(s, m.Stats.Overflow), 10),
		r.FormatKeyValue("rows", m.Stats.Rows, 10),
		r.FormatKeyValue("output", r.link(outputDir), 10),
		r.FormatKeyValue("build", s.Muted.Render(m.BuildID), 10),
	}
	r.Println(s.Box.Render(strings.Join(lines, "\n")))
}

// link makes dir clickable in terminals that support hyperlinks.
func (r *Renderer) link(dir string) string {
	if !r.isTTY {
		return dir
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return termenv.Hyperlink("file://"+filepath.ToSlash(abs), dir)
}

func overflow(s *Styles, n int) string {
	if n == 0 {
		return "0"
	}
	return s.Warning.Render(fmt.Sprint(n))
}
