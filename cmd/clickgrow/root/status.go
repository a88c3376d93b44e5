package root

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/clickgrow/growcore/pkg/common"
	"github.com/clickgrow/growcore/pkg/domain"
	"github.com/clickgrow/growcore/pkg/engine"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the plant, wallet and cooldowns",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := openGame(ctx, cmd.OutOrStdout(), noMinigame)
			if err != nil {
				return err
			}
			defer cleanup()

			w := cmd.OutOrStdout()
			p := s.core.Snapshot()

			name := p.PlantName
			if name == "" {
				name = "Your plant"
			}
			fmt.Fprintln(w, Heading(IconPlant, fmt.Sprintf("%s (level %d)", name, p.Level)))
			if p.Dead {
				fmt.Fprintln(w, Bad.Render(IconSkull+" withered, last cared for "+lastSeen(p.LastInteractionAt)))
				fmt.Fprintln(w, Muted.Render("run `clickgrow reset --yes` to start over"))
				return nil
			}

			need := engine.RequiredExpForLevel(p.Level)
			fmt.Fprintln(w, LabelValue("Experience", fmt.Sprintf("%s %s / %s",
				Bar(float64(p.Experience), float64(need), 20), humanize.Comma(p.Experience), humanize.Comma(need))))
			fmt.Fprintln(w, LabelValue("Happiness", fmt.Sprintf("%s %.0f", Bar(p.Happiness, domain.MaxStat, 20), p.Happiness)))
			fmt.Fprintln(w, LabelValue("Health", fmt.Sprintf("%s %.0f", Bar(p.Health, domain.MaxStat, 20), p.Health)))
			fmt.Fprintln(w, LabelValue("Growth", fmt.Sprintf("%s %.0f", Bar(p.Growth, domain.MaxStat, 20), p.Growth)))
			fmt.Fprintln(w, LabelValue("Wallet", Coins(p.Coins)+"  "+Gems(p.Gems)))
			fmt.Fprintln(w, LabelValue("Last care", lastSeen(p.LastInteractionAt)))
			fmt.Fprintln(w, "")

			fmt.Fprintln(w, H2.Render(IconClock+" Actions"))
			for _, action := range domain.AllActions {
				ready := Good.Render("ready")
				if left := s.core.CooldownRemaining(action); left > 0 {
					ready = Warn.Render("in " + common.FormatDuration(left))
				}
				fmt.Fprintf(w, "- %s %s %s\n", Key.Render(string(action)+":"), ready,
					Muted.Render(fmt.Sprintf("(%s done)", humanize.Comma(p.ActionCounts[action]))))
			}

			if len(p.Inventory) > 0 {
				fmt.Fprintln(w, "")
				fmt.Fprintln(w, H2.Render(IconShop+" Inventory"))
				for _, item := range s.core.ShopItems() {
					if n := p.Inventory[item.ID]; n > 0 {
						fmt.Fprintf(w, "- %s %s x%d\n", item.Icon, item.Name, n)
					}
				}
			}

			fmt.Fprintln(w, "")
			fmt.Fprintln(w, Muted.Render(fmt.Sprintf("%d/%d achievements, %d challenges completed",
				len(p.UnlockedAchievements), len(s.core.Achievements()), p.ChallengesCompleted())))
			return nil
		},
	}
}
