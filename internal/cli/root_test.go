package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/iodoc/internal/cli"
	"github.com/leapstack-labs/iodoc/internal/cli/config"
	"github.com/leapstack-labs/iodoc/internal/cli/testutil"
	"github.com/leapstack-labs/iodoc/internal/iotable"
	rootutil "github.com/leapstack-labs/iodoc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) testutil.Result {
	t.Helper()
	t.Cleanup(config.ResetConfig)
	return testutil.Execute(context.Background(), cli.NewRootCmd(), args...)
}

func project(t *testing.T) *rootutil.Project {
	t.Helper()
	p := rootutil.NewProject(t)
	p.Index(t, []string{"2", "0", "inc", "int *", "p"})
	p.Trace(t, "inc", iotable.BeforeSuffix, "p\t0x10", "*p\t1")
	p.Trace(t, "inc", iotable.AfterSuffix, "p\t0x10", "*p\t2")
	return p
}

func TestRootCommands(t *testing.T) {
	cmd := cli.NewRootCmd()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"build", "completion", "init", "list", "params", "render", "serve", "version"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "project-dir", "examples-dir", "index-file", "overflow-log",
		"processed-log", "output-dir", "max-trace-lines", "show-derefd-pointer", "verbose", "output"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootRenderWithProjectDir(t *testing.T) {
	p := project(t)

	res := execute(t, "--project-dir", p.Root, "-o", "html", "render", "inc")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, `id="row_2_0_"`)
	assert.NotContains(t, res.Stdout, `id="row_2_1_"`)

	// The logs land in the project root by default.
	assert.Equal(t, []string{"inc"}, rootutil.ReadLog(t, p.Path(iotable.DefaultProcessedLog)))
}

func TestRootFlagsOverrideConfigFile(t *testing.T) {
	p := project(t)
	cfgPath := p.Path("iodoc.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: markdown\nprocessed_log: \"\"\n"), 0600))

	res := execute(t, "--config", cfgPath, "--show-derefd-pointer", "-o", "html", "render", "inc")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, `id="row_2_1_"`)
	assert.Nil(t, rootutil.ReadLog(t, p.Path(iotable.DefaultProcessedLog)), "disabled in the config file")
}

func TestRootMaxTraceLinesFlag(t *testing.T) {
	p := project(t)
	overflow := filepath.Join(t.TempDir(), "over.txt")

	res := execute(t, "--project-dir", p.Root, "--max-trace-lines", "1", "--overflow-log", overflow, "render", "inc")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stderr, "overflow")
	assert.Equal(t, []string{"inc"}, rootutil.ReadLog(t, overflow))
}

func TestRootInvalidConfig(t *testing.T) {
	p := project(t)

	res := execute(t, "--project-dir", p.Root, "-o", "pdf", "list")
	assert.ErrorContains(t, res.Err, "invalid configuration")
}

func TestRootVersionSkipsConfig(t *testing.T) {
	// An unreadable config file would fail any command that loads it.
	res := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "iodoc v"+cli.Version)
}

func TestRootVerboseLogging(t *testing.T) {
	p := project(t)

	res := execute(t, "--project-dir", p.Root, "-v", "-o", "text", "render", "missing")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stderr, "level=DEBUG")
	assert.Contains(t, res.Stderr, "no I/O example for missing")
}

func TestCompletion(t *testing.T) {
	res := execute(t, "completion", "bash")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "iodoc")
}
