package commands

import (
	"fmt"

	"github.com/leapstack-labs/iodoc/internal/iotable"
	"github.com/spf13/cobra"
)

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "render [function...]",
		Short: "Render the I/O example table of functions",
		Long: `Render the I/O example table of one or more functions.

The table merges the values recorded before the call with the values recorded
after it, followed by the return value. Functions without usable traces are
skipped.

Output format follows --output: html, markdown or text. The default picks text
on a terminal and html otherwise.`,
		Example: `  # Show a function in the terminal
  iodoc render parse_header

  # Emit the HTML fragment of every indexed function
  iodoc render --all -o html > examples.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("requires a function name or --all")
			}
			c := NewCommandContext(cmd)
			if err := c.Cfg.ValidateInputs(); err != nil {
				return err
			}
			return runRender(c, args, all)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Render every function listed in the index")

	return cmd
}

func runRender(c *CommandContext, functions []string, all bool) error {
	if all {
		idx, err := iotable.LoadIndex(c.Cfg.IndexFile)
		if err != nil {
			return fmt.Errorf("failed to load index: %w", err)
		}
		functions = idx.Functions()
	}

	w, err := c.TableWriter()
	if err != nil {
		return err
	}

	d := c.Driver()
	for _, fn := range functions {
		res, err := d.Visualize(fn, w)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", fn, err)
		}
		if res.Status != iotable.StatusRendered && !all {
			c.Renderer.Warn(fmt.Sprintf("no I/O example for %s: %s", fn, res.Status))
		}
	}

	stats := d.Stats()
	c.Logger.Debug("render finished", "rendered", stats.Rendered, "skipped", stats.Skipped, "overflow", stats.Overflow)
	return nil
}
