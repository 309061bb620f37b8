package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AijingLI-KCLLP/find-path-ratp/models"
	"github.com/AijingLI-KCLLP/find-path-ratp/tui"
)

var routeCmd = &cobra.Command{
	Use:   "route FROM TO",
	Short: "Print the fastest path between two stations",
	Example: `  ratp route "Gare du Nord" Bastille
  ratp route concorde "gare de lyon" --json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		req := models.RouteRequest{From: args[0], To: args[1]}
		if cmd.Flags().Changed("hour") {
			hour, _ := cmd.Flags().GetFloat64("hour")
			if hour < 0 || hour >= 24 {
				return fmt.Errorf("--hour must be in [0, 24), got %g", hour)
			}
			req.Preferences.Hour = &hour
		}

		rs, err := loadService(cmd.Context())
		if err != nil {
			return err
		}
		itinerary, err := rs.CalculateRoute(cmd.Context(), req)
		if itinerary == nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			data, jerr := json.MarshalIndent(itinerary, "", "  ")
			if jerr != nil {
				return jerr
			}
			fmt.Fprintln(out, string(data))
		} else {
			tui.SetAccent(cfg.AccentColor)
			fmt.Fprint(out, tui.RenderItinerary(itinerary))
		}
		return err
	},
}

func init() {
	routeCmd.Flags().Bool("json", false, "print the itinerary as JSON")
	routeCmd.Flags().Float64("hour", 8, "hour of day handed to the cost modifiers")
	rootCmd.AddCommand(routeCmd)
}
