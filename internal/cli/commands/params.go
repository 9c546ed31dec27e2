package commands

import (
	"fmt"

	"github.com/leapstack-labs/iodoc/internal/iotable"
	"github.com/spf13/cobra"
)

// NewParamsCommand creates the params command.
func NewParamsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params <function> [parameter...]",
		Short: "Render the value tables of a function's parameters",
		Long: `Render one value table per parameter, holding only the lines of the traces
that start at that parameter. Without parameter names every parameter listed
in the index for the function is rendered.`,
		Example: `  iodoc params parse_header hdr
  iodoc params parse_header -o markdown`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			if err := c.Cfg.ValidateInputs(); err != nil {
				return err
			}
			return runParams(c, args[0], args[1:])
		},
	}

	return cmd
}

func runParams(c *CommandContext, function string, params []string) error {
	if len(params) == 0 {
		idx, err := iotable.LoadIndex(c.Cfg.IndexFile)
		if err != nil {
			return fmt.Errorf("failed to load index: %w", err)
		}
		for _, e := range idx.Parameters(function) {
			params = append(params, e.Parameter)
		}
		if len(params) == 0 {
			return fmt.Errorf("no parameters indexed for %s", function)
		}
	}

	w, err := c.TableWriter()
	if err != nil {
		return err
	}

	d := c.Driver()
	for _, p := range params {
		res, err := d.VisualizeParameter(function, p, w)
		if err != nil {
			return fmt.Errorf("failed to render %s.%s: %w", function, p, err)
		}
		if res.Status != iotable.StatusRendered {
			c.Renderer.Warn(fmt.Sprintf("no values for %s.%s: %s", function, p, res.Status))
		}
	}
	return nil
}
