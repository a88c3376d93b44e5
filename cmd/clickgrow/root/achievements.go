package root

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newAchievementsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "Show unlocked achievements and progress on the rest",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := openGame(ctx, cmd.OutOrStdout(), noMinigame)
			if err != nil {
				return err
			}
			defer cleanup()

			w := cmd.OutOrStdout()
			views := s.core.Achievements()
			unlocked := 0
			for _, v := range views {
				if v.Unlocked {
					unlocked++
				}
			}
			fmt.Fprintln(w, Heading(IconTrophy, fmt.Sprintf("Achievements %d/%d", unlocked, len(views))))

			category := ""
			for _, v := range views {
				if !all && !v.Unlocked && v.Progress.Current == 0 {
					continue
				}
				if v.Definition.Category != category {
					category = v.Definition.Category
					fmt.Fprintln(w, H2.Render(category))
				}
				status := Bar(float64(v.Progress.Current), float64(v.Progress.Target), 10) +
					Muted.Render(fmt.Sprintf(" %s/%s", humanize.Comma(v.Progress.Current), humanize.Comma(v.Progress.Target)))
				if v.Unlocked {
					status = Good.Render("unlocked")
				}
				fmt.Fprintf(w, "- %s %s %s\n  %s\n", v.Definition.Icon, Key.Render(v.Definition.Name), status, Muted.Render(v.Definition.Description))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include achievements with no progress yet")
	return cmd
}
