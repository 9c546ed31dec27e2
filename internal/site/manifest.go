package site

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/iodoc/internal/iotable"
)

// Manifest records what a build produced. It is written to
// data/manifest.json next to the pages.
type Manifest struct {
	BuildID     string          `json:"build_id"`
	Title       string          `json:"title"`
	GeneratedAt time.Time       `json:"generated_at"`
	Functions   []FunctionEntry `json:"functions"`
	Stats       Stats           `json:"stats"`
}

// FunctionEntry is the build outcome of one function page.
type FunctionEntry struct {
	Name       string           `json:"name"`
	Page       string           `json:"page"`
	Status     string           `json:"status"`
	Rows       int              `json:"rows"`
	Parameters []ParameterEntry `json:"parameters,omitempty"`
}

// ParameterEntry is the build outcome of one parameter table.
type ParameterEntry struct {
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
	Status string `json:"status"`
	Rows   int    `json:"rows"`
}

// Stats summarizes a build.
type Stats struct {
	Functions int `json:"functions"`
	Rendered  int `json:"rendered"`
	Skipped   int `json:"skipped"`
	Overflow  int `json:"overflow"`
	Rows      int `json:"rows"`
}

func newManifest(title string) *Manifest {
	return &Manifest{
		BuildID:     uuid.NewString(),
		Title:       title,
		GeneratedAt: time.Now().UTC(),
		Functions:   []FunctionEntry{},
	}
}

// add records a function and updates the totals.
func (m *Manifest) add(e FunctionEntry, res iotable.Result) {
	m.Functions = append(m.Functions, e)
	m.Stats.Functions++
	m.Stats.Rows += res.Rows
	switch res.Status {
	case iotable.StatusRendered:
		m.Stats.Rendered++
	case iotable.StatusOverflow:
		m.Stats.Overflow++
		m.Stats.Skipped++
	default:
		m.Stats.Skipped++
	}
}

// ReadManifest loads a manifest written by a previous build.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is inside the output directory
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// WriteJSON writes data as indented JSON to path.
func WriteJSON(path string, data any) error {
	f, err := os.Create(path) //nolint:gosec // G304: path is inside the output directory
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
