package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AijingLI-KCLLP/find-path-ratp/config"
	"github.com/AijingLI-KCLLP/find-path-ratp/preprocessing"
	"github.com/AijingLI-KCLLP/find-path-ratp/services"
)

var (
	cfgFile    string
	dotenvFile string

	settings = config.New()
	cfg      *config.Config
	logger   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "ratp",
	Short: "Fastest paths across the Paris metro",
	Long: `ratp loads a static metro network (embedded, YAML, GTFS or SQLite),
finds the fastest path between two stations with A* and splits it into
line segments. It runs as a one-shot CLI, an interactive prompt or an HTTP API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(settings, dotenvFile, cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		l, err := config.NewLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "YAML config file")
	pf.StringVar(&dotenvFile, "env-file", ".env", "dotenv file loaded before reading RATP_* variables")
	pf.String("network", "", "network source: embedded, a .yaml or .db file, or a GTFS directory")
	pf.String("log-level", "", "debug, info, warn or error")
	pf.Float64("speed", 0, "average speed in km/h used for travel times")
	pf.Int("max-iterations", 0, "A* expansion cap")

	_ = settings.BindPFlag(config.KeyNetworkSource, pf.Lookup("network"))
	_ = settings.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	_ = settings.BindPFlag(config.KeySpeedKmh, pf.Lookup("speed"))
	_ = settings.BindPFlag(config.KeyMaxIterations, pf.Lookup("max-iterations"))
}

// loadService reads the configured network and builds the routing service.
func loadService(ctx context.Context) (*services.RoutingService, error) {
	net, err := preprocessing.Load(ctx, cfg.NetworkSource, logger)
	if err != nil {
		return nil, err
	}
	return services.NewRoutingService(logger, net, services.Options{
		SpeedKmh:      cfg.SpeedKmh,
		MaxIterations: cfg.MaxIterations,
	})
}
