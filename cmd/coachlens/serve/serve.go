// Package servecmder provides the serve command for running the coachlens
// API server.
package servecmder

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coachlens/coachlens/api"
	"github.com/coachlens/coachlens/pkg/config"
	"github.com/coachlens/coachlens/pkg/engine"
	"github.com/coachlens/coachlens/pkg/logger"
)

type ServeCommander struct {
	listen string

	configDir string
	debug     bool
	logger    *zap.Logger
}

const serveLongDesc string = `Run the coachlens API server.

Serves search, stats, and record management over HTTP against the
configured vector store and embedder:
  GET    /ping
  GET    /v1/search
  GET    /v1/stats
  DELETE /v1/records/:id

Examples:
  coachlens serve
  coachlens serve --listen :9090`

const serveShortDesc string = "Run the coachlens API server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			cfger, err := config.NewConfiger(cmder.configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cfg, err := cfger.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if !cmd.Flags().Changed("listen") {
				cmder.listen = cfg.API.Listen
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run()
		},
	}

	defaults := config.NewDefaultConfig()
	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", defaults.API.Listen, "Address for API server to listen on")

	return cmd
}

func (c *ServeCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	cfger, err := config.NewConfiger(c.configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg, err := cfger.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	eng, err := engine.New(cfg, c.logger)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	server := api.NewServer(api.Config{
		ListenAddr: c.listen,
	}, eng.Searcher, eng.Store, c.logger)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return server.Shutdown()
	}
}
