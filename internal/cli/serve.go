package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sprout/internal/server"
	"github.com/matzehuels/sprout/pkg/config"
	"github.com/matzehuels/sprout/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered plants over HTTP",
		Long: `Serve the HTTP API.

Plants are drawn on request and cached with the configured backend
(file, redis or none). Specimens are stored in MongoDB when
specimens.mongo_uri is set, otherwise in local files.

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Example: `  sprout serve --addr :9000
  curl 'localhost:9000/v1/plant.svg?genome=3,4,3,1&stage=3&pot=bowl'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the runner and specimen store into the server and blocks
// until ctx is canceled.
func (c *CLI) runServe(ctx context.Context, cfg config.Config, noCache bool) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	store, err := newStore(ctx, cfg.Specimens)
	if err != nil {
		return fmt.Errorf("open specimen store: %w", err)
	}
	defer store.Close()

	srv := server.New(server.Options{
		Runner: runner,
		Store:  store,
		Logger: logger,
		Defaults: func(o pipeline.Options) pipeline.Options {
			return cfg.RenderOptions(o)
		},
	})

	if noCache {
		printWarning("Caching disabled; every request renders from scratch")
	}
	logger.Info("Serving", "addr", cfg.Server.Addr, "cache", cacheBackend(cfg, noCache), "specimens", storeBackend(cfg))
	err = srv.ListenAndServe(ctx, cfg.Server.Addr, server.Timeouts{
		Read:     cfg.Server.ReadTimeout.Duration,
		Write:    cfg.Server.WriteTimeout.Duration,
		Shutdown: cfg.Server.ShutdownTimeout.Duration,
	})
	if errors.Is(err, http.ErrServerClosed) || errors.Is(err, context.Canceled) {
		err = nil
	}
	if err == nil {
		logger.Info("Server stopped")
	}
	return err
}

func cacheBackend(cfg config.Config, noCache bool) string {
	if noCache {
		return config.BackendNone
	}
	return cfg.Cache.Backend
}

func storeBackend(cfg config.Config) string {
	if cfg.Specimens.MongoURI != "" {
		return "mongo"
	}
	return "file"
}
