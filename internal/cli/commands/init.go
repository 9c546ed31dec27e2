package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/iodoc/internal/cli/config"
	"github.com/leapstack-labs/iodoc/internal/cli/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const configHeader = `# iodoc configuration.
# Paths are relative to this file. Empty log paths disable the log.
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize an iodoc project",
		Long: `Write an iodoc.yaml holding the default settings and create the directory
the instrumented build writes its trace files to.`,
		Example: `  # Initialize in the current directory
  iodoc init

  # Initialize in another directory
  iodoc init docs/examples

  # Overwrite an existing config
  iodoc init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr())
			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, config.ConfigFileNames[0])
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileNames[0])
	}

	cfg := config.Default()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(configPath, append([]byte(configHeader), data...), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	if err := os.MkdirAll(filepath.Join(dir, cfg.ExamplesDir), 0750); err != nil {
		return fmt.Errorf("failed to create examples directory: %w", err)
	}

	r.Success("iodoc project initialized")
	r.Println("")
	r.Println("Next steps:")
	r.Printf("  1. Point the instrumented build at %s/\n", cfg.ExamplesDir)
	r.Printf("  2. Generate %s next to %s\n", cfg.IndexFile, config.ConfigFileNames[0])
	r.Println("  3. Run 'iodoc list' to check the traces")
	r.Println("  4. Run 'iodoc build' or 'iodoc serve'")
	return nil
}
