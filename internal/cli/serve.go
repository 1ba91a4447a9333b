package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/placardlabs/placard/pkg/cache"
	"github.com/placardlabs/placard/pkg/pipeline"
	"github.com/placardlabs/placard/pkg/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisURL  string
		mongoURI  string
		mongoDB   string
		mongoColl string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the label-placement HTTP API",
		Long: `Run the label-placement HTTP API.

Scenes posted to /v1/layouts are solved and stored; stored layouts can
be fetched and rendered on demand. Without --mongo-uri, layouts live in
process memory and are lost on restart. With --redis-url, solved layouts
and rendered artifacts are cached in Redis instead of on disk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisURL, mongoURI, mongoDB, mongoColl, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis URL for the pipeline cache (e.g., redis://localhost:6379/0)")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB URI for layout storage (e.g., mongodb://localhost:27017)")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", "", "MongoDB database name")
	cmd.Flags().StringVar(&mongoColl, "mongo-collection", "", "MongoDB collection name")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the pipeline cache")

	return cmd
}

// runServe wires the cache, store, and runner and serves until ctx is
// cancelled.
func (c *CLI) runServe(ctx context.Context, addr, redisURL, mongoURI, mongoDB, mongoColl string, noCache bool) error {
	pipelineCache, err := c.serveCache(ctx, redisURL, noCache)
	if err != nil {
		return err
	}

	store, err := c.serveStore(ctx, mongoURI, mongoDB, mongoColl)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	runner := pipeline.NewRunner(pipelineCache, nil, c.Logger)
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:   addr,
		Store:  store,
		Runner: runner,
		Logger: c.Logger,
	})
	return srv.ListenAndServe(ctx)
}

func (c *CLI) serveCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	switch {
	case noCache:
		return cache.NewNullCache(), nil
	case redisURL != "":
		rc, err := cache.NewRedisCache(ctx, redisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache")
		return rc, nil
	default:
		return newCache(false)
	}
}

func (c *CLI) serveStore(ctx context.Context, mongoURI, mongoDB, mongoColl string) (server.Store, error) {
	if mongoURI == "" {
		c.Logger.Info("using in-memory layout store")
		return server.NewMemoryStore(), nil
	}
	store, err := server.NewMongoStore(ctx, mongoURI, mongoDB, mongoColl)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	c.Logger.Info("using mongodb layout store", "database", mongoDB)
	return store, nil
}
