package cli

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	uerrors "github.com/matzehuels/umlgraph/pkg/errors"
	"github.com/matzehuels/umlgraph/pkg/metrics"
	"github.com/matzehuels/umlgraph/pkg/observability"
	"github.com/matzehuels/umlgraph/pkg/server"
)

// serveCommand creates the serve command that starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noCache   bool
		noMetrics bool
		rateLimit float64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagram pipeline over HTTP",
		Long: `Start the HTTP API. POST diagram text to /v1/diagrams to get the laid
out graph; Prometheus metrics are exposed at /metrics.`,
		Example: `  umlgraph serve --addr :9090
  curl --data-binary @diagram.mmd 'localhost:9090/v1/diagrams?format=svg'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := server.Config{
				Addr:          c.cfg.Server.Addr,
				MaxBodyBytes:  c.cfg.Server.MaxBodyBytes,
				DefaultFormat: c.cfg.Render.Format,
				TTL:           c.cfg.Cache.TTL.Duration,
				RateLimit:     c.cfg.Server.RateLimit,
				Burst:         c.cfg.Server.Burst,
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("rate-limit") {
				cfg.RateLimit = rateLimit
			}

			if !noMetrics {
				reg := metrics.NewRegistry()
				observability.SetPipelineHooks(reg)
				observability.SetCacheHooks(reg)
				observability.SetHTTPHooks(reg)
				defer observability.Reset()
				cfg.Metrics = reg.Handler()
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return uerrors.Wrap(uerrors.ErrCodeInvalidConfig, err, "listen on %s", cfg.Addr)
			}

			printSuccess("Listening on %s", ln.Addr())
			printKeyValue("cache", c.cacheBackend(noCache))
			if cfg.RateLimit > 0 {
				printKeyValue("rate limit", fmt.Sprintf("%g/s", cfg.RateLimit))
			}
			return server.New(cfg, runner, c.Logger).Serve(ctx, ln)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not expose /metrics")
	cmd.Flags().Float64Var(&rateLimit, "rate-limit", 0, "diagram requests per second, 0 for unlimited (default from config)")
	return cmd
}

func (c *CLI) cacheBackend(noCache bool) string {
	if noCache {
		return "none"
	}
	return c.cfg.Cache.Backend
}
