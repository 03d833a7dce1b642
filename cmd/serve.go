package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helmcode/bug-autopsy/pkg/analyzer"
	"github.com/helmcode/bug-autopsy/pkg/config"
	"github.com/helmcode/bug-autopsy/pkg/llm"
	"github.com/helmcode/bug-autopsy/pkg/observability"
	"github.com/helmcode/bug-autopsy/pkg/server"
	"github.com/helmcode/bug-autopsy/pkg/store"
)

var (
	serveConfigPath string
	serveAddr       string
)

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Bug Autopsy web UI and API",
		Long: `Start the HTTP server: the JSON API for analysis, language detection and
case-file management, plus the embedded web front-end.

Examples:
  # Serve on the default address (:8080)
  bug-autopsy serve

  # Serve on another port with an explicit config file
  bug-autopsy serve --addr :9000 --config ./config.yaml`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config file (default ~/.bug-autopsy/config.yaml)")
	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	logger := observability.NewLogger(cfg.Logger)
	defer func() { _ = logger.Sync() }()

	gateway, err := analyzer.New(llm.Options{
		Provider: llm.Provider(cfg.LLM.Provider),
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
		APIKey:   cfg.LLM.APIKey(),
	})
	if err != nil {
		return fmt.Errorf("configure LLM client: %w", err)
	}

	cases, err := store.New(cfg.Store.Path, logger)
	if err != nil {
		return fmt.Errorf("open case store: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting Bug Autopsy server",
		zap.String("addr", cfg.Server.Addr),
		zap.String("provider", cfg.LLM.Provider),
		zap.String("store", cfg.Store.Path))

	return server.New(cfg.Server.Addr, gateway, cases, logger).Run(ctx)
}
