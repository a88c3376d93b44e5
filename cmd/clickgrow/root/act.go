package root

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/clickgrow/growcore/pkg/client"
)

func newActCmd() *cobra.Command {
	var (
		score   int
		decline bool
		seed    int64
	)

	cmd := &cobra.Command{
		Use:       "act <water|fertilizer|sunlight|music>",
		Short:     "Care for the plant",
		Long:      "Performs a care action. Without --score a simulated mini-game decides the result.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"water", "fertilizer", "sunlight", "music"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := parseAction(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			factory := simulatedPlayer(seed)
			switch {
			case decline:
				factory = noMinigame
			case score >= 0:
				factory = func(*slog.Logger) client.MinigameProvider {
					return &client.StaticMinigame{Score: score}
				}
			}
			s, cleanup, err := openGame(ctx, cmd.OutOrStdout(), factory)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := s.core.PerformAction(ctx, action)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			r := res.Reward
			fmt.Fprintln(w, Heading(IconSparkle, fmt.Sprintf("%s done (score %d)", action, r.Score)))
			fmt.Fprintln(w, LabelValue("Experience", fmt.Sprintf("+%d%s", r.Experience, boosted(r.ExperienceBoosted))))
			coins := fmt.Sprintf("+%d%s", r.Coins, boosted(r.CoinsBoosted))
			if r.BonusCoins > 0 {
				coins += Muted.Render(fmt.Sprintf(" (+%d mini-game bonus)", r.BonusCoins))
			}
			fmt.Fprintln(w, LabelValue("Coins", coins))
			fmt.Fprintln(w, Muted.Render(fmt.Sprintf("happiness +%.0f, health +%.0f, growth +%.0f", r.Happiness, r.Health, r.Growth)))
			return nil
		},
	}

	cmd.Flags().IntVar(&score, "score", -1, "mini-game score to submit (0-100); negative simulates a player")
	cmd.Flags().BoolVar(&decline, "decline", false, "close the mini-game without playing")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for the simulated player (0 uses the clock)")
	return cmd
}

func boosted(on bool) string {
	if on {
		return " " + Gold.Render("x2")
	}
	return ""
}
