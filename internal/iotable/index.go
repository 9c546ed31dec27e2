package iotable

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// IndexEntry is one line of the parameter id index:
// functionId, parameterId, functionName, parameterType, parameterName.
type IndexEntry struct {
	FunctionID    string
	ParameterID   string
	Function      string
	ParameterType string
	Parameter     string
}

// Index maps function and parameter names to the stable ids that prefix
// their table rows.
type Index struct {
	entries []IndexEntry
}

// ReadIndex parses a tab separated index. Missing trailing fields are left
// empty and extra fields are ignored.
func ReadIndex(r io.Reader) (*Index, error) {
	sc := bufio.NewScanner(r)
	idx := &Index{}
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		for len(fields) < 5 {
			fields = append(fields, "")
		}
		idx.entries = append(idx.entries, IndexEntry{
			FunctionID:    fields[0],
			ParameterID:   fields[1],
			Function:      fields[2],
			ParameterType: fields[3],
			Parameter:     fields[4],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	return idx, nil
}

// LoadIndex reads the index file at path.
func LoadIndex(path string) (*Index, error) {
	f, err := os.Open(path) //nolint:gosec // G304: index path comes from configuration
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return ReadIndex(f)
}

// FunctionPrefix returns "<functionId>_" for the first entry of function.
func (x *Index) FunctionPrefix(function string) (string, bool) {
	for _, e := range x.entries {
		if e.Function == function {
			return e.FunctionID + "_", true
		}
	}
	return "", false
}

// ParameterPrefix returns "<functionId>_<parameterId>_" for a parameter of
// function.
func (x *Index) ParameterPrefix(function, parameter string) (string, bool) {
	for _, e := range x.entries {
		if e.Function == function && e.Parameter == parameter {
			return e.FunctionID + "_" + e.ParameterID + "_", true
		}
	}
	return "", false
}

// Functions lists the distinct function names in first-seen order.
func (x *Index) Functions() []string {
	seen := make(map[string]bool)
	var names []string
	for _, e := range x.entries {
		if e.Function == "" || seen[e.Function] {
			continue
		}
		seen[e.Function] = true
		names = append(names, e.Function)
	}
	return names
}

// Parameters returns the index entries of function's parameters in order.
func (x *Index) Parameters(function string) []IndexEntry {
	var params []IndexEntry
	for _, e := range x.entries {
		if e.Function == function && e.Parameter != "" {
			params = append(params, e)
		}
	}
	return params
}
