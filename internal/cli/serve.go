package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/workflowgraph/pkg/api"
	"github.com/matzehuels/workflowgraph/pkg/cache"
	"github.com/matzehuels/workflowgraph/pkg/observability"
	"github.com/matzehuels/workflowgraph/pkg/pipeline"
)

// serverKeyPrefix scopes server cache entries apart from CLI ones when both
// share a cache directory.
const serverKeyPrefix = "api"

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout pipeline over HTTP",
		Long: `Serve the layout pipeline over HTTP.

Routes:
  GET  /healthz
  POST /v1/layout    graph JSON in, layout JSON out
  POST /v1/render    graph JSON in, ?format=svg|json|dot|png|pdf out
  GET  /metrics      Prometheus metrics

Results are cached in Redis when [redis] addr is configured (or --redis is
given), otherwise in the local cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			if addr == "" {
				addr = defaultAddr
			}
			redisCfg := c.Config.Redis
			if redisAddr != "" {
				redisCfg.Addr = redisAddr
			}
			return c.runServe(cmd.Context(), addr, redisCfg, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: [server] addr or "+defaultAddr+")")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the shared cache (overrides [redis] addr)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, redisCfg cache.RedisConfig, noCache bool) error {
	backend, err := c.serverCache(ctx, redisCfg, noCache)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	hooks := observability.NewPrometheusHooks(reg)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	runner := pipeline.NewRunner(backend, cache.NewScopedKeyer(nil, serverKeyPrefix), c.Logger)
	defer runner.Close()

	opts := []api.Option{
		api.WithBaseOptions(c.baseOptions()),
		api.WithLogger(c.Logger),
		api.WithMetrics(reg),
	}
	if n := c.Config.Server.MaxBodySize; n > 0 {
		opts = append(opts, api.WithMaxBodySize(n))
	}

	printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(addr)))
	return api.New(runner, opts...).ListenAndServe(ctx, addr)
}

// serverCache picks Redis when configured, else the file cache.
func (c *CLI) serverCache(ctx context.Context, redisCfg cache.RedisConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisCfg.Addr == "" {
		return newCache(false)
	}
	rc, err := cache.NewRedisCache(ctx, redisCfg)
	if err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", redisCfg.Addr, err)
	}
	c.Logger.Info("using redis cache", "addr", redisCfg.Addr)
	return rc, nil
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
