package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AijingLI-KCLLP/find-path-ratp/tui"
)

var stationsCmd = &cobra.Command{
	Use:   "stations [QUERY]",
	Short: "List stations, optionally filtered by name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		rs, err := loadService(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderStations(rs.Stations(query, limit)))
		return nil
	},
}

var linesCmd = &cobra.Command{
	Use:   "lines",
	Short: "List the lines of the network",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := loadService(cmd.Context())
		if err != nil {
			return err
		}
		tui.SetAccent(cfg.AccentColor)
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderLines(rs.Lines()))
		return nil
	},
}

func init() {
	stationsCmd.Flags().Int("limit", 0, "maximum number of stations to print (0 for all)")
	rootCmd.AddCommand(stationsCmd)
	rootCmd.AddCommand(linesCmd)
}
