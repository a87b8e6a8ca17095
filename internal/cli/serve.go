package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackgrid/internal/server"
	"github.com/matzehuels/stackgrid/pkg/cache"
	"github.com/matzehuels/stackgrid/pkg/pipeline"
)

const (
	defaultAddr     = ":8080"
	shutdownTimeout = 10 * time.Second

	// apiKeyPrefix keeps API cache entries apart from CLI ones when both
	// share a Redis instance.
	apiKeyPrefix = "api:"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		cf   cacheFlags
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the grid API over HTTP",
		Long: `Serve the grid API over HTTP.

  POST /v1/grid              resolve a JSON grid document
  POST /v1/render/{format}   render it as svg, png, pdf or json
  GET  /healthz              liveness check

Pass ?strict=true to reject out-of-range percentages and ?refresh=true to
bypass the cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), cmd.ErrOrStderr(), addr, cf)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cf.register(cmd)
	return cmd
}

func (c *CLI) runServe(ctx context.Context, status io.Writer, addr string, cf cacheFlags) error {
	cc, err := c.newCache(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	logger := loggerFromContext(ctx)
	runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), apiKeyPrefix), logger)
	defer runner.Close()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           server.New(runner, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	p := newPrinter(status)
	p.success("Serving grid API")
	p.keyValue("Address", styleLink.Render("http://"+listenHost(ln.Addr())))
	p.keyValue("Cache", cacheName(cc))

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// listenHost renders a listener address as host:port, using localhost for
// wildcard addresses.
func listenHost(a net.Addr) string {
	host, port, err := net.SplitHostPort(a.String())
	if err != nil {
		return a.String()
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}

func cacheName(cc cache.Cache) string {
	switch v := cc.(type) {
	case *cache.FileCache:
		return v.Dir()
	case *cache.RedisCache:
		return "redis"
	case cache.NullCache:
		return v.String()
	}
	return "disabled"
}
