package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowstep/internal/server"
	"github.com/matzehuels/flowstep/pkg/config"
	"github.com/matzehuels/flowstep/pkg/view"
)

// shutdownTimeout bounds how long serve waits for in-flight requests.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

The server accepts step payload submissions, renders them, and keeps one
view per browser session. Sessions are tracked with a cookie; views live
in memory by default, or in Redis when the cache backend is redis or
tiered.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable render caching")

	return cmd
}

// runServe builds the runner and view store and serves until the context
// is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	if addr == "" {
		addr = c.cfg.Server.Addr
	}
	sessionTTL := c.cfg.Server.SessionTTL.Duration

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	views, err := c.newViewStore(ctx, sessionTTL)
	if err != nil {
		return fmt.Errorf("initialize view store: %w", err)
	}

	srv := server.New(runner, views, server.Config{
		Addr:       addr,
		SessionTTL: sessionTTL,
		Render:     c.baseOptions(),
		Logger:     c.Logger,
	})

	printInfo("Serving on %s", StyleLink.Render(serveURL(addr)))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// newViewStore picks the view store backend. Redis-backed deployments
// share sessions across instances; everything else keeps views in memory.
func (c *CLI) newViewStore(ctx context.Context, ttl time.Duration) (view.Store, error) {
	switch c.cfg.Cache.Backend {
	case config.BackendRedis, config.BackendTiered:
		store, err := view.NewRedisStore(ctx, view.RedisConfig{
			Addr:     c.cfg.Cache.Redis.Addr,
			Password: c.cfg.Cache.Redis.Password,
			DB:       c.cfg.Cache.Redis.DB,
			TTL:      ttl,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return view.NewMemoryStore(ttl), nil
	}
}

// serveURL renders a clickable URL for the listen address.
func serveURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
