package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AijingLI-KCLLP/find-path-ratp/preprocessing"
)

var convertCmd = &cobra.Command{
	Use:   "convert SOURCE DEST",
	Short: "Convert a network between formats",
	Long: `Reads SOURCE (embedded, a GTFS directory, .yaml or .db) and writes DEST
as YAML (.yaml/.yml) or SQLite (.db/.sqlite/.sqlite3).`,
	Example: `  ratp convert ./gtfs paris.db
  ratp convert embedded paris.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		net, err := preprocessing.Load(cmd.Context(), args[0], logger)
		if err != nil {
			return err
		}
		if err := preprocessing.Save(cmd.Context(), args[1], net); err != nil {
			return err
		}
		logger.Info("Network converted",
			zap.String("from", args[0]),
			zap.String("to", args[1]),
			zap.Int("stations", len(net.Stations)),
			zap.Int("lines", len(net.Lines)))
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d stations and %d lines to %s\n", len(net.Stations), len(net.Lines), args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
