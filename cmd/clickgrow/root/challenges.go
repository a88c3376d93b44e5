package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clickgrow/growcore/pkg/common"
)

func newChallengesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "challenges",
		Short: "Show active challenges",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := openGame(ctx, cmd.OutOrStdout(), noMinigame)
			if err != nil {
				return err
			}
			defer cleanup()

			w := cmd.OutOrStdout()
			stats := s.core.ChallengeStats()
			fmt.Fprintln(w, Heading(IconTarget, "Challenges"))
			fmt.Fprintln(w, Muted.Render(fmt.Sprintf("%d active, %d completed now, %d completions all time",
				stats.Active, stats.Completed, stats.Completions)))

			kind := ""
			for _, ac := range s.core.ActiveChallenges() {
				def := ac.Definition
				if string(def.Type) != kind {
					kind = string(def.Type)
					fmt.Fprintln(w, H2.Render(kind))
				}
				left := ""
				if d, ok, err := s.core.ChallengeTimeLeft(def.ID); err == nil && ok {
					left = Warn.Render(" " + IconClock + " " + common.FormatDuration(d))
				}
				fmt.Fprintf(w, "- %s %s %s %s%s\n", def.Icon, Key.Render(def.Name),
					Bar(float64(ac.Progress.Current), float64(def.Target), 10),
					Muted.Render(fmt.Sprintf("%d/%d", ac.Progress.Current, def.Target)), left)
			}
			return nil
		},
	}
}
