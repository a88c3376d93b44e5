package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clickgrow/growcore/pkg/domain"
)

func newShopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "List shop items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := openGame(ctx, cmd.OutOrStdout(), noMinigame)
			if err != nil {
				return err
			}
			defer cleanup()

			w := cmd.OutOrStdout()
			p := s.core.Snapshot()
			fmt.Fprintln(w, Heading(IconShop, "Shop"))
			fmt.Fprintln(w, LabelValue("Wallet", Coins(p.Coins)+"  "+Gems(p.Gems)))
			fmt.Fprintln(w, "")

			category := ""
			for _, item := range s.core.ShopItems() {
				if item.Category != category {
					category = item.Category
					fmt.Fprintln(w, H2.Render(category))
				}
				price := Coins(item.Price)
				if item.Currency == domain.ResourceGems {
					price = Gems(item.Price)
				}
				owned := ""
				if n := p.Inventory[item.ID]; n > 0 {
					owned = Muted.Render(fmt.Sprintf(" (own %d)", n))
				}
				fmt.Fprintf(w, "- %s %s %s %s%s\n  %s\n", item.Icon, Key.Render(item.Name), Muted.Render("["+item.ID+"]"), price, owned, Muted.Render(item.Description))
			}
			return nil
		},
	}
}

func newBuyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <item-id>",
		Short: "Buy one shop item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := openGame(ctx, cmd.OutOrStdout(), noMinigame)
			if err != nil {
				return err
			}
			defer cleanup()

			item, err := s.core.Purchase(ctx, args[0])
			if err != nil {
				return err
			}
			p := s.core.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "%s bought %s %s, balance %s %s\n",
				IconShop, item.Icon, Key.Render(item.Name), Coins(p.Coins), Gems(p.Gems))
			return nil
		},
	}
}

func newUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <item-id>",
		Short: "Use one item from the inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := openGame(ctx, cmd.OutOrStdout(), noMinigame)
			if err != nil {
				return err
			}
			defer cleanup()

			item, err := s.core.UseItem(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s used %s, %d left\n",
				item.Icon, Key.Render(item.Name), s.core.Snapshot().Inventory[item.ID])
			return nil
		},
	}
}
