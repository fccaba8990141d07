package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowlines/flowlines/pkg/cache"
	"github.com/flowlines/flowlines/pkg/errors"
	"github.com/flowlines/flowlines/pkg/pipeline"
	"github.com/flowlines/flowlines/pkg/server"
)

// serveFlags holds the command-line flags for the serve command.
type serveFlags struct {
	addr      string
	backend   string // cache backend: file, redis, mongo, none
	redisURL  string
	mongoURL  string
	mongoDB   string
	mongoColl string
	namespace string // cache key namespace for shared backends
}

// serveCommand creates the serve command exposing the pipeline over HTTP.
//
// The cache backend defaults to the local file cache. Multi-instance
// deployments point --cache at redis or mongo so instances share traced
// datasets, optionally separated by --namespace.
func (c *CLI) serveCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tracing pipeline over HTTP",
		Long: `Serve starts an HTTP server with a GET /render endpoint that traces and
renders in one request:

  flowlines serve --addr :8080
  curl "localhost:8080/render?field=vortex&style=arrow&d_sep=0.3"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&flags.backend, "cache", "file", "cache backend: file, redis, mongo, none")
	cmd.Flags().StringVar(&flags.redisURL, "redis-url", "redis://localhost:6379/0", "Redis URL for --cache redis")
	cmd.Flags().StringVar(&flags.mongoURL, "mongo-url", "mongodb://localhost:27017", "MongoDB URI for --cache mongo")
	cmd.Flags().StringVar(&flags.mongoDB, "mongo-db", appName, "MongoDB database for --cache mongo")
	cmd.Flags().StringVar(&flags.mongoColl, "mongo-collection", "cache", "MongoDB collection for --cache mongo")
	cmd.Flags().StringVar(&flags.namespace, "namespace", "", "cache key prefix for shared backends")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, flags serveFlags) error {
	store, err := serveCache(ctx, flags)
	if err != nil {
		return err
	}

	var keyer cache.Keyer
	if flags.namespace != "" {
		keyer = cache.NewScopedKeyer(nil, flags.namespace+":")
	}

	runner := pipeline.NewRunner(store, keyer, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              flags.addr,
		Handler:           server.New(runner, c.Logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", flags.addr, "cache", flags.backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// serveCache builds the cache backend selected by --cache.
func serveCache(ctx context.Context, flags serveFlags) (cache.Cache, error) {
	switch flags.backend {
	case "file":
		return newCache(false)
	case "redis":
		return cache.NewRedisCache(ctx, flags.redisURL)
	case "mongo":
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return cache.NewMongoCache(connectCtx, flags.mongoURL, flags.mongoDB, flags.mongoColl)
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"cache backend must be file, redis, mongo, or none, got %q", flags.backend)
	}
}
