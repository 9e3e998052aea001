package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/focuskeeper/internal/client/debug"
)

// shutdownTimeout время на остановку debug сервера
const shutdownTimeout = 5 * time.Second

func (c *Cli) daemonCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run background sync until interrupted",
		Long: "Run background sync: connectivity probing, periodic push and pull, reconnect catch-up\n" +
			"and, with --debug-addr, the debug HTTP server.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runDaemon(cmd.Context())
		},
	}
}

func (c *Cli) runDaemon(ctx context.Context) error {
	if err := c.app.Start(); err != nil {
		return err
	}

	c.io.Printf("focuskeeper daemon running for %s against %s\n", c.cfg.UserID, c.cfg.ServerURL)

	g, gctx := errgroup.WithContext(ctx)

	if c.cfg.DebugAddr != "" {
		srv := debug.NewServer(c.cfg.DebugAddr, debug.NewHandler(c.app, c.logger.With("component", "debug")))

		g.Go(func() error {
			c.logger.Info("Debug server listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("debug server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-c.app.Context().Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	c.logger.Info("Daemon stopping")
	return nil
}
