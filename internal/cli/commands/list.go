package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/iodoc/internal/iotable"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List indexed functions and their trace status",
		Long: `List every function in the parameter index together with its parameter
count and what rendering its I/O example would do. Nothing is written to the
overflow or processed logs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)
			if err := c.Cfg.ValidateInputs(); err != nil {
				return err
			}
			return runList(c)
		},
	}

	return cmd
}

func runList(c *CommandContext) error {
	idx, err := iotable.LoadIndex(c.Cfg.IndexFile)
	if err != nil {
		return fmt.Errorf("failed to load index: %w", err)
	}

	opts := c.Cfg.DriverOptions(c.Logger)
	opts.OverflowLog = ""
	opts.ProcessedLog = ""
	d := iotable.NewDriver(opts)

	t := table.NewWriter()
	t.SetOutputMirror(c.Renderer.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Function", "Params", "Return", "Rows", "Status"})

	titleCaser := cases.Title(language.English)

	for _, fn := range idx.Functions() {
		var rows iotable.Collector
		res, err := d.Visualize(fn, &rows)
		if err != nil {
			return err
		}
		hasReturn := "no"
		if info, err := os.Stat(d.TracePath(fn, iotable.ReturnSuffix)); err == nil && info.Size() > 0 {
			hasReturn = "yes"
		}
		t.AppendRow(table.Row{fn, len(idx.Parameters(fn)), hasReturn, res.Rows, titleCaser.String(res.Status.String())})
	}

	stats := d.Stats()
	t.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%d rendered, %d skipped", stats.Rendered, stats.Skipped)})
	t.Render()
	return nil
}
