package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/attrmerge/internal/errors"
	"github.com/vango-dev/attrmerge/pkg/inspect"
	"github.com/vango-dev/attrmerge/pkg/rebind"
	"github.com/vango-dev/attrmerge/pkg/tree"
	"github.com/vango-dev/attrmerge/playground"
)

func serveCmd() *cobra.Command {
	var (
		addr     string
		scenario string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the inspector over a scenario tree",
		Long: `Build a scenario, finalize its tree, and serve the inspector:

  GET /snapshot   resolved attribute snapshots as JSON
  GET /live       WebSocket stream of attribute patches
  GET /metrics    Prometheus metrics
  GET /healthz    liveness probe`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				return errors.New("E120").WithDetail("listen address is empty")
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			metrics := inspect.NewMetrics()
			sc, err := playground.Get(scenario)
			if err != nil {
				return err
			}
			comp, err := sc.Build()
			if err != nil {
				return err
			}

			srv := inspect.NewServer(comp.Root,
				inspect.WithAddr(addr),
				inspect.WithLogger(logger),
				inspect.WithMetrics(metrics),
			)

			// Subscribe every surviving dynamic slot so source changes
			// stream to /live as patches.
			binder := rebind.NewBinder(srv.Broadcast, rebind.WithLogger(logger))
			tree.Walk(comp.Root, func(n *tree.Node) {
				if snap := n.Snapshot(); snap != nil {
					binder.Bind(n.ID, snap)
				}
			})
			defer binder.Teardown()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if len(comp.Signals) > 0 {
				go driveSignals(ctx, comp.Signals, interval)
			}

			info("serving scenario %q on %s (%d dynamic slots)", sc.Name, addr, binder.Bound())
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":7070", "Listen address")
	cmd.Flags().StringVarP(&scenario, "scenario", "s", "pass-through", "Scenario to serve")
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "How often to flip the scenario's signals")

	return cmd
}

// driveSignals flips every boolean scenario signal on a fixed interval so a
// served scenario keeps producing patches to watch.
func driveSignals(ctx context.Context, signals map[string]*playground.Signal, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, sig := range signals {
				if v, ok := sig.Current().(bool); ok {
					sig.Set(!v)
				}
			}
		}
	}
}
