// Package cli provides the command-line interface for iodoc.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/iodoc/internal/cli/commands"
	"github.com/leapstack-labs/iodoc/internal/cli/config"
	"github.com/leapstack-labs/iodoc/internal/render"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "iodoc",
		Short: "iodoc - I/O example tables for C functions",
		Long: `iodoc turns the value traces recorded around calls of C functions into
collapsible tables showing every parameter before and after the call, together
with the return value.

Traces are read from the examples directory, one set per function:
  <function>.parameter.example.i   values when the function is called
  <function>.parameter.example.o   values when the function returns
  <function>.return.example        the return value
and row ids come from the parameter index (parameterids.txt).`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			switch cmd.Name() {
			case "help", "completion", "__complete", "version", "init":
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./iodoc.yaml)")
	rootCmd.PersistentFlags().String("project-dir", "", "Directory relative config paths are resolved against")
	rootCmd.PersistentFlags().String("examples-dir", "", "Directory holding the trace files")
	rootCmd.PersistentFlags().String("index-file", "", "Path to the parameter id index")
	rootCmd.PersistentFlags().String("overflow-log", "", "Log of functions whose traces are too long")
	rootCmd.PersistentFlags().String("processed-log", "", "Log of functions whose tables were generated")
	rootCmd.PersistentFlags().String("output-dir", "", "Directory the static site is written to")
	rootCmd.PersistentFlags().Int("max-trace-lines", 0, "Skip functions whose traces have more lines than this")
	rootCmd.PersistentFlags().Bool("show-derefd-pointer", false, "Keep pointer rows that are followed by their dereference")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|html|markdown|text)")

	// Register completion for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		modes := make([]string, len(render.Modes))
		for i, m := range render.Modes {
			modes[i] = string(m)
		}
		return modes, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit, BuildDate))
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewRenderCommand())
	rootCmd.AddCommand(commands.NewParamsCommand())
	rootCmd.AddCommand(commands.NewBuildCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for iodoc.

To load completions:

Bash:
  $ source <(iodoc completion bash)
  
  # To load completions for each session, execute once:
  # Linux:
  $ iodoc completion bash > /etc/bash_completion.d/iodoc
  # macOS:
  $ iodoc completion bash > $(brew --prefix)/etc/bash_completion.d/iodoc

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  
  # To load completions for each session, execute once:
  $ iodoc completion zsh > "${fpath[1]}/_iodoc"
  
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ iodoc completion fish | source
  
  # To load completions for each session, execute once:
  $ iodoc completion fish > ~/.config/fish/completions/iodoc.fish

PowerShell:
  PS> iodoc completion powershell | Out-String | Invoke-Expression
  
  # To load completions for every new session, run:
  PS> iodoc completion powershell > iodoc.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}
	return cmd
}
