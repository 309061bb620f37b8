package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AijingLI-KCLLP/find-path-ratp/tui"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Ask for departure and arrival stations until you quit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := loadService(cmd.Context())
		if err != nil {
			return err
		}
		return tui.RunInteractive(cmd.Context(), rs, cfg.AccentColor)
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
