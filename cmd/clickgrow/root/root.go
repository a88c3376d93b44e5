package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const Version = "0.2.0"

var rootCmd = &cobra.Command{
	Use:           "clickgrow",
	Short:         "ClickGrow: raise a virtual plant from the terminal",
	Long:          "ClickGrow is an idle plant game. Care actions earn experience and coins, unlock achievements and complete challenges. Settings come from CLICKGROW_* environment variables.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newStatusCmd(),
		newActCmd(),
		newShopCmd(),
		newBuyCmd(),
		newUseCmd(),
		newAchievementsCmd(),
		newChallengesCmd(),
		newResetCmd(),
		newRunCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, Bad.Render(IconError+" "+describeError(err)))
		os.Exit(1)
	}
}
