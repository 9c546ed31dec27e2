package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/iodoc/internal/site"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port    int
	NoWatch bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the site and serve it with live reload",
		Long: `Build the static site, serve it over HTTP and rebuild whenever a trace file
or the parameter index changes. Open pages reload after each rebuild.`,
		Example: `  # Serve on the configured port (default 8080)
  iodoc serve

  # Serve on another port without watching
  iodoc serve --port 3000 --no-watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)
			if err := c.Cfg.ValidateInputs(); err != nil {
				return err
			}
			return runServe(cmd, c, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: site.port)")
	cmd.Flags().BoolVar(&opts.NoWatch, "no-watch", false, "Don't rebuild on trace changes")

	return cmd
}

func runServe(cmd *cobra.Command, c *CommandContext, opts *ServeOptions) error {
	port := c.Cfg.Site.Port
	if opts.Port != 0 {
		port = opts.Port
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	watch := c.Cfg.Site.Watch && !opts.NoWatch

	gen := site.NewGenerator(c.Cfg.SiteGenerator(c.Logger, watch))
	srv := site.NewServer(gen, site.ServerConfig{
		Port:     port,
		Watch:    watch,
		Debounce: c.Cfg.Site.Debounce,
		Logger:   c.Logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c.Renderer.Success(fmt.Sprintf("serving %s on http://localhost:%d", gen.OutputDir(), port))
	return srv.Serve(ctx)
}
