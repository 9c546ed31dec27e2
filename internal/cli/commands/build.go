package commands

import (
	"fmt"

	"github.com/leapstack-labs/iodoc/internal/site"
	"github.com/spf13/cobra"
)

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the static I/O example site",
		Long: `Render every function in the parameter index into a static HTML site.

The site holds an index page, one page per function with its I/O example and
parameter tables, the stylesheet and script that fold nested rows, and a
data/manifest.json describing the build.`,
		Example: `  iodoc build
  iodoc build --output-dir public`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)
			if err := c.Cfg.ValidateInputs(); err != nil {
				return err
			}
			return runBuild(c)
		},
	}

	return cmd
}

func runBuild(c *CommandContext) error {
	gen := site.NewGenerator(c.Cfg.SiteGenerator(c.Logger, false))
	m, err := gen.Build()
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	c.Renderer.BuildSummary(m, gen.OutputDir())
	return nil
}
