package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AijingLI-KCLLP/find-path-ratp/config"
	"github.com/AijingLI-KCLLP/find-path-ratp/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the routing HTTP API",
	Long:  "Loads the network once, then answers GET /route, POST /api/route, GET /stations, GET /lines and GET /health until interrupted.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rs, err := loadService(ctx)
		if err != nil {
			return err
		}

		if cfg.LogLevel != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}
		router := handlers.NewRouter(
			handlers.NewRoutingHandler(rs, logger.Named("handler")),
			logger,
			handlers.RouterOptions{AllowAllOrigins: cfg.CORSAllowAll},
		)
		srv := &http.Server{Addr: cfg.ListenAddr, Handler: router}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("Metro routing server starting", zap.String("addr", cfg.ListenAddr), zap.String("network", rs.NetworkName()))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("Shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "listen address, e.g. :8080")
	_ = settings.BindPFlag(config.KeyListenAddr, serveCmd.Flags().Lookup("listen"))
	rootCmd.AddCommand(serveCmd)
}
