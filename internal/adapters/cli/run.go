package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/mediator-go/internal/adapters/logging"
	"github.com/andrescamacho/mediator-go/internal/adapters/metrics"
	"github.com/andrescamacho/mediator-go/internal/application/demo"
	applogging "github.com/andrescamacho/mediator-go/internal/application/logging"
	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	var (
		ambiguity string
		strategy  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Send Ping and OneWay, then publish PingNotification",
		Long: `Run the demo scenario:

  1. Send Ping          - three handlers are registered for it, so the
                          ambiguity policy decides the outcome
  2. Send OneWay        - a no-result request, answered with Unit
  3. Publish PingNotification - delivered to Pong1 and Pong2

Examples:
  mediator-demo run
  mediator-demo run --ambiguity first
  mediator-demo run --strategy concurrent`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if ambiguity != "" {
				cfg.Mediator.AmbiguityPolicy = ambiguity
			}
			if strategy != "" {
				cfg.Mediator.PublishStrategy = strategy
			}

			logger, err := logging.NewSlogLogger(cfg.Logging)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer logger.Close()

			app, err := Bootstrap(cfg)
			if err != nil {
				return err
			}

			ctx := applogging.WithLogger(cmd.Context(), logger)
			return runScenario(ctx, cmd.OutOrStdout(), app)
		},
	}

	cmd.Flags().StringVar(&ambiguity, "ambiguity", "", "Ambiguity policy override: reject, first, last")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Publish strategy override: sequential, concurrent")

	return cmd
}

// runScenario replays the demo; dispatch errors are printed, not returned,
// so every step runs
func runScenario(ctx context.Context, out io.Writer, app *App) error {
	if ctx == nil {
		ctx = context.Background()
	}

	pong, err := mediator.Send[string](ctx, app.Mediator, &demo.Ping{})
	if err != nil {
		fmt.Fprintf(out, "Send(Ping) failed: %v\n", err)
		var ambiguous *mediator.AmbiguousHandlerError
		if errors.As(err, &ambiguous) {
			fmt.Fprintln(out, "  hint: use --ambiguity first|last to opt into a tie-break")
		}
	} else {
		fmt.Fprintf(out, "Send(Ping) -> %s\n", pong)
	}

	if _, err := app.Mediator.Send(ctx, &demo.OneWay{}); err != nil {
		fmt.Fprintf(out, "Send(OneWay) failed: %v\n", err)
	} else {
		fmt.Fprintf(out, "Send(OneWay) -> ok (%d call)\n", app.Module.OneWayCalls.Load())
	}

	if err := app.Mediator.Publish(ctx, &demo.PingNotification{}); err != nil {
		fmt.Fprintf(out, "Publish(PingNotification) failed: %v\n", err)
	} else {
		fmt.Fprintln(out, "Publish(PingNotification) -> ok")
	}
	for _, entry := range app.Module.Journal.Entries() {
		fmt.Fprintf(out, "  %s\n", entry)
	}

	if metrics.IsEnabled() {
		lines, err := metrics.Summary()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "\nMetrics:")
		for _, line := range lines {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}

	return nil
}
