package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/byteik/site/internal/logging"
	"github.com/byteik/site/internal/server"
	"github.com/byteik/site/internal/store"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the site",
	Long: `Start the landing page server.

Routes:
  GET  /            redirect to the visitor's locale
  GET  /{locale}    the page (en, id)
  POST /api/contact contact submissions (rate limited per client)
  GET  /live        live navigation and form session (websocket)
  GET  /health      health check

Examples:
  byteik serve                          # localhost:8080, diskv backend
  byteik serve -p 3000 --host 0.0.0.0   # listen on all interfaces
  BYTEIK_CONTACT_BACKEND=sqlite byteik serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8080, "Port to serve on")
	serveCmd.Flags().String("host", "localhost", "Host to bind to")
	serveCmd.Flags().String("backend", "", "Contact backend (notion, diskv, sqlite, memory)")

	bindFlags(serveCmd.Flags(), map[string]string{
		"port":    "server.port",
		"host":    "server.host",
		"backend": "contact.backend",
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.New(cfg.StoreOptions())
	if err != nil {
		return fmt.Errorf("failed to open contact store: %w", err)
	}
	defer st.Close()

	srv, err := server.New(cfg, st, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	watchLogLevel(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Serve returns as soon as shutdown begins. The store stays open until
	// Shutdown has drained the live submissions still writing to it.
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		logger.Info(context.Background(), "Shutting down server...")

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Error(shutdownCtx, shutdownErr, "Error during server shutdown")
		}
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Starting Byteik site at http://%s\n", cfg.Address())

	err = srv.Start(ctx)
	cancel()
	<-stopped
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// watchLogLevel re-applies log.level whenever the config file changes.
func watchLogLevel(logger *logging.SiteLogger) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		applyLogLevel(logger, e, viper.GetString("log.level"))
	})
	viper.WatchConfig()
}

func applyLogLevel(logger *logging.SiteLogger, e fsnotify.Event, raw string) {
	level, err := logging.ParseLevel(raw)
	if err != nil {
		logger.Warn(context.Background(), err, "Ignoring invalid log level from config file", "file", e.Name)
		return
	}
	if level != logger.Level() {
		logger.SetLevel(level)
		logger.Info(context.Background(), "Log level changed", "level", level.String(), "file", e.Name, "op", e.Op.String())
	}
}
