package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/internal/server"
	"github.com/matzehuels/tilegrid/pkg/observability"
)

// serveCommand creates the serve command for running the HTTP session service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		backend string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layout sessions over HTTP",
		Long: `Serve layout sessions over HTTP.

Sessions are persisted in the store selected by [store] backend in the config
file (memory, file, redis or mongo), so several instances sharing a redis or
mongo store can serve the same sessions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("store") {
				c.cfg.Store.Backend = backend
				if err := c.cfg.Validate(); err != nil {
					return err
				}
			}
			return c.runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.cfg.Server.Addr, "listen address")
	cmd.Flags().StringVar(&backend, "store", c.cfg.Store.Backend, "session store: memory, file, redis, mongo")
	completeValues(cmd, "store", backendValues)

	return cmd
}

func (c *CLI) runServe(ctx context.Context) error {
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	store, err := c.openStore(ctx)
	if err != nil {
		return fmt.Errorf("open %s store: %w", c.cfg.Store.Backend, err)
	}
	defer store.Close()
	prog.done(fmt.Sprintf("Opened %s session store", c.cfg.Store.Backend))

	observability.SetStoreHooks(storeLogHooks{logger: logger})
	defer observability.Reset()

	go cleanupLoop(ctx, store.Cleanup, time.Hour, logger.Warn)

	srv := server.New(server.Config{
		Store:  store,
		TTL:    c.cfg.Store.TTL.Duration,
		Logger: logger,
		Aspect: c.cfg.Layout.Aspect,
	})
	err = srv.ListenAndServe(ctx, c.cfg.Server.Addr, c.cfg.Server.ShutdownTimeout.Duration)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// cleanupLoop calls cleanup every interval until ctx is done.
func cleanupLoop(ctx context.Context, cleanup func(context.Context) error, interval time.Duration, warn func(any, ...any)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := cleanup(ctx); err != nil {
				warn("session cleanup failed", "err", err)
			}
		}
	}
}

// storeLogHooks reports snapshot store traffic at debug level.
type storeLogHooks struct {
	logger *log.Logger
}

func (h storeLogHooks) OnStoreHit(_ context.Context, backend string) {
	h.logger.Debug("session hit", "backend", backend)
}

func (h storeLogHooks) OnStoreMiss(_ context.Context, backend string) {
	h.logger.Debug("session miss", "backend", backend)
}

func (h storeLogHooks) OnStoreSet(_ context.Context, backend string, size int) {
	h.logger.Debug("session stored", "backend", backend, "bytes", size)
}
