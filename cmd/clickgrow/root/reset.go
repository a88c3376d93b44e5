package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the saved game and plant a new seed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset deletes all progress; pass --yes to confirm")
			}

			ctx := context.Background()
			s, cleanup, err := openGame(ctx, cmd.OutOrStdout(), noMinigame)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := s.core.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), Good.Render(IconPlant+" a new seed has been planted"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
