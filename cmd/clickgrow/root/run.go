package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/clickgrow/growcore/pkg/domain"
	"github.com/clickgrow/growcore/pkg/errors"
	"github.com/clickgrow/growcore/pkg/scheduler"
	"github.com/clickgrow/growcore/pkg/telemetry"
)

func newRunCmd() *cobra.Command {
	var (
		autoplay time.Duration
		seed     int64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Keep the game running with scheduled decay and resets",
		Long: "Runs until interrupted. The plant decays on the tick interval and challenges reset at local midnight. " +
			"With --autoplay a simulated player cares for the plant whenever an action is off cooldown.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, cleanup, err := openGame(ctx, cmd.OutOrStdout(), simulatedPlayer(seed))
			if err != nil {
				return err
			}
			defer cleanup()

			shutdown, err := telemetry.Setup(ctx, "clickgrow", s.settings.OTelEndpoint)
			if err != nil {
				s.logger.Warn("Tracing disabled", "error", err)
			}
			defer func() {
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(flushCtx)
			}()

			loc, err := s.settings.Location()
			if err != nil {
				return err
			}
			sched, err := scheduler.New(s.core, s.settings.TickInterval, loc, s.logger)
			if err != nil {
				return err
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				sched.Start(gctx)
				<-gctx.Done()
				sched.Stop()
				return nil
			})
			if autoplay > 0 {
				g.Go(func() error {
					return autoplayLoop(gctx, s, autoplay)
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), Muted.Render("running, press Ctrl+C to stop"))
			return g.Wait()
		},
	}

	cmd.Flags().DurationVar(&autoplay, "autoplay", 0, "how often the simulated player checks for a ready action (0 disables)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for the simulated player (0 uses the clock)")
	return cmd
}

// autoplayLoop performs every action that is off cooldown on each tick of every.
// It stops quietly when the plant dies.
func autoplayLoop(ctx context.Context, s *session, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		for _, action := range domain.AllActions {
			if s.core.CooldownRemaining(action) > 0 {
				continue
			}
			_, err := s.core.PerformAction(ctx, action)
			switch {
			case err == nil:
			case errors.IsCode(err, errors.ErrCodePlantDead):
				s.logger.Warn("Autoplay stopped, the plant is dead")
				return nil
			case errors.IsRecoverable(err):
				s.logger.Debug("Autoplay skipped action", "action", action, "reason", errors.CodeOf(err))
			default:
				return fmt.Errorf("autoplay %s: %w", action, err)
			}
		}
	}
}
