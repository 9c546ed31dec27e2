// Package site generates a static documentation site from recorded I/O
// examples: one page per indexed function with its I/O example table and the
// value table of every parameter, plus an index page and a build manifest.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/iodoc/internal/iotable"
	"github.com/leapstack-labs/iodoc/internal/render"
)

//go:embed static/*
var staticFiles embed.FS

// ManifestPath is the manifest location relative to the output directory.
const ManifestPath = "data/manifest.json"

// Config configures a Generator.
type Config struct {
	Driver     iotable.Options
	Title      string
	OutputDir  string
	LiveReload bool // adds the reload script used by the dev server
	Logger     *slog.Logger
}

// Generator builds the site.
type Generator struct {
	cfg    Config
	logger *slog.Logger
}

// NewGenerator creates a Generator. Empty fields fall back to defaults.
func NewGenerator(cfg Config) *Generator {
	if cfg.Driver.IndexFile == "" {
		cfg.Driver.IndexFile = iotable.DefaultIndexFile
	}
	if cfg.Title == "" {
		cfg.Title = "I/O examples"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "iodoc-site"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg.Driver.Logger = logger
	return &Generator{cfg: cfg, logger: logger}
}

// OutputDir returns the directory the site is written to.
func (g *Generator) OutputDir() string {
	return g.cfg.OutputDir
}

// Build renders every function listed in the index and writes the site.
func (g *Generator) Build() (*Manifest, error) {
	idx, err := iotable.LoadIndex(g.cfg.Driver.IndexFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load index: %w", err)
	}

	out := g.cfg.OutputDir
	for _, dir := range []string{out, filepath.Join(out, "functions"), filepath.Join(out, "data")} {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	d := iotable.NewDriver(g.cfg.Driver)
	m := newManifest(g.cfg.Title)

	for _, fn := range idx.Functions() {
		page, entry, res, err := g.renderFunction(d, idx, fn)
		if err != nil {
			return nil, err
		}
		if err := g.writePage(filepath.Join(out, entry.Page), "function", page); err != nil {
			return nil, err
		}
		m.add(entry, res)
	}

	if err := g.writePage(filepath.Join(out, "index.html"), "index", indexPage{
		pageCommon: g.common(""),
		Manifest:   m,
	}); err != nil {
		return nil, err
	}

	if err := copyStaticFiles(out); err != nil {
		return nil, fmt.Errorf("failed to copy static files: %w", err)
	}
	if err := WriteJSON(filepath.Join(out, ManifestPath), m); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	g.logger.Debug("site built", "output", out, "functions", m.Stats.Functions, "rendered", m.Stats.Rendered)
	return m, nil
}

func (g *Generator) renderFunction(d *iotable.Driver, idx *iotable.Index, fn string) (functionPage, FunctionEntry, iotable.Result, error) {
	var buf bytes.Buffer
	res, err := d.Visualize(fn, render.NewHTMLWriter(&buf))
	if err != nil {
		return functionPage{}, FunctionEntry{}, res, fmt.Errorf("failed to render %s: %w", fn, err)
	}

	entry := FunctionEntry{
		Name:   fn,
		Page:   PagePath(fn),
		Status: res.Status.String(),
		Rows:   res.Rows,
	}
	page := functionPage{
		pageCommon: g.common("../"),
		Name:       fn,
		Status:     res.Status.String(),
		Example:    trusted(&buf),
	}

	for _, p := range idx.Parameters(fn) {
		buf.Reset()
		pres, err := d.VisualizeParameter(fn, p.Parameter, render.NewHTMLWriter(&buf))
		if err != nil {
			return functionPage{}, FunctionEntry{}, res, fmt.Errorf("failed to render %s(%s): %w", fn, p.Parameter, err)
		}
		page.Parameters = append(page.Parameters, parameterSection{
			Name:   p.Parameter,
			Type:   p.ParameterType,
			Status: pres.Status.String(),
			Table:  trusted(&buf),
		})
		entry.Parameters = append(entry.Parameters, ParameterEntry{
			Name:   p.Parameter,
			Type:   p.ParameterType,
			Status: pres.Status.String(),
			Rows:   pres.Rows,
		})
	}

	return page, entry, res, nil
}

func (g *Generator) common(root string) pageCommon {
	return pageCommon{Title: g.cfg.Title, Root: root, LiveReload: g.cfg.LiveReload}
}

func (g *Generator) writePage(path, name string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// PagePath returns the page of function relative to the output directory.
// Characters that are unsafe in file names are replaced by "_".
func PagePath(function string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, function)
	return "functions/" + slug + ".html"
}

// trusted wraps markup produced by render.HTMLWriter, which escapes every
// value it writes.
func trusted(buf *bytes.Buffer) template.HTML {
	return template.HTML(buf.String()) //nolint:gosec // G203: escaped by render.HTMLWriter
}

// copyStaticFiles copies the embedded script and stylesheet to outputDir.
func copyStaticFiles(outputDir string) error {
	return fs.WalkDir(staticFiles, "static", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == "static" {
			return nil
		}

		outPath := filepath.Join(outputDir, strings.TrimPrefix(path, "static/"))
		if d.IsDir() {
			return os.MkdirAll(outPath, 0750)
		}

		content, err := staticFiles.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		return os.WriteFile(outPath, content, 0600)
	})
}
