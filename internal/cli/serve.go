package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sbusard/graphlayout/pkg/cache"
	"github.com/sbusard/graphlayout/pkg/store"
)

// serveCommand creates the serve command for running the HTTP layout server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisStr string
		mongoStr string
		mongoDB  string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout server",
		Long: `Run the HTTP layout server.

The server accepts graphs over HTTP, runs the layout pipeline, and persists
results so they can be fetched later by ID:

  POST   /layouts          compute a layout
  GET    /layouts/{id}     fetch a stored layout
  GET    /layouts/{id}/svg fetch a stored layout rendered as SVG
  DELETE /layouts/{id}     delete a stored layout
  GET    /healthz          liveness probe

By default layouts are stored in memory and cached on disk. With --mongo-uri
layouts are persisted in MongoDB; with --redis the cache is shared through a
redis server, which is what multi-instance deployments want.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				if env := os.Getenv("GRAPHLAYOUT_ADDR"); env != "" {
					addr = env
				}
			}
			return c.runServe(cmd.Context(), addr, redisStr, mongoStr, mongoDB, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (or GRAPHLAYOUT_ADDR)")
	cmd.Flags().StringVar(&redisStr, "redis", "", "redis address for a shared cache (host:port)")
	cmd.Flags().StringVar(&mongoStr, "mongo-uri", "", "MongoDB connection URI for persistent storage")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", appName, "MongoDB database name")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires up the cache and store backends and serves until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, redisAddr, mongoURI, mongoDB string, noCache bool) error {
	lc, err := c.serverCache(ctx, redisAddr, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer lc.Close()

	st, err := c.serverStore(ctx, mongoURI, mongoDB)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = st.Close(shutdownCtx)
	}()

	srv := &http.Server{
		Addr:              addr,
		Handler:           NewServer(lc, st, c.Logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// serverCache picks the cache backend for server use.
func (c *CLI) serverCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		c.Logger.Info("using redis cache", "addr", redisAddr)
		return cache.NewRedisCache(ctx, redisAddr)
	}
	return newCache(false)
}

// serverStore picks the store backend for server use.
func (c *CLI) serverStore(ctx context.Context, mongoURI, mongoDB string) (store.Store, error) {
	if mongoURI != "" {
		c.Logger.Info("using mongodb store", "database", mongoDB)
		return store.NewMongoStore(ctx, mongoURI, mongoDB)
	}
	c.Logger.Warn("using in-memory store; layouts are lost on restart")
	return store.NewMemoryStore(), nil
}
