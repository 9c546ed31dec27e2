package commands

import (
	"log/slog"

	"github.com/leapstack-labs/iodoc/internal/cli/config"
	"github.com/leapstack-labs/iodoc/internal/cli/output"
	"github.com/leapstack-labs/iodoc/internal/iotable"
	"github.com/leapstack-labs/iodoc/internal/render"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the config and logger stored by the root
// command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:      config.FromContext(cmd.Context()),
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	}
}

// Driver creates a table driver from the config.
func (c *CommandContext) Driver() *iotable.Driver {
	return iotable.NewDriver(c.Cfg.DriverOptions(c.Logger))
}

// TableWriter returns a RowWriter for the configured output format.
func (c *CommandContext) TableWriter() (iotable.RowWriter, error) {
	mode, err := render.ParseMode(c.Cfg.OutputFormat)
	if err != nil {
		return nil, err
	}
	return render.NewWriter(mode, c.Renderer.Writer(), c.Renderer.IsTTY()), nil
}
