package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/comigor/korea-opendata-go/internal/config"
	"github.com/comigor/korea-opendata-go/internal/fetch"
	"github.com/comigor/korea-opendata-go/internal/kasi"
	"github.com/comigor/korea-opendata-go/internal/logger"
	"github.com/comigor/korea-opendata-go/internal/nts"
	"github.com/comigor/korea-opendata-go/internal/server"
	"github.com/comigor/korea-opendata-go/pkg/tools"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.L.Error("fatal error", "error", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           server.Name,
		Short:         "MCP server for Korean business registration and special-day open APIs",
		Version:       server.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("transport", config.TransportStdio, "MCP transport: stdio or http")
	pf.String("host", "127.0.0.1", "listen host for the http transport")
	pf.String("port", "8483", "listen port for the http transport")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-file", "", "also write logs to this file, rotated")
	pf.Bool("log-json", false, "write logs as JSON")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the tools over MCP (default)",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "tools",
		Short: "List the available tools",
		Args:  cobra.NoArgs,
		RunE:  runTools,
	})
	return rootCmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	closer, err := logger.Init(logger.Config{Level: cfg.Log.Level, File: cfg.Log.File, JSON: cfg.Log.JSON})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closer.Close()

	if _, err := cfg.Credentials.APIKey(); err != nil {
		logger.L.Warn("api key is not set; tool calls will fail until it is", "env", config.EnvAPIKey)
	}

	srv := server.New(newToolManager(cfg), logger.L)
	ctx := cmd.Context()

	switch strings.ToLower(cfg.Server.Transport) {
	case config.TransportHTTP:
		return srv.ServeHTTP(ctx, cfg.Server.Addr())
	default:
		return srv.ServeStdio(ctx)
	}
}

func runTools(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger.SetLevel(cfg.Log.Level)
	return printTools(cmd.OutOrStdout(), newToolManager(cfg))
}

// newToolManager wires the upstream clients into the tool catalog.
func newToolManager(cfg *config.Config) *tools.ToolManager {
	hc := fetch.New(cfg.HTTP.Timeout)

	registry := nts.NewClient(cfg.NTS.BaseURL, cfg.Credentials, hc)
	formatter := nts.NewFormatter(nts.DefaultLabels())
	aggregator := kasi.NewAggregator(kasi.NewClient(cfg.KASI.BaseURL, cfg.Credentials, hc), kasi.DefaultCategories())

	return tools.NewToolManager(
		tools.NewBusinessStatusTool(registry, formatter),
		tools.NewBusinessValidateTool(registry, formatter),
		tools.NewHolidaysTool(aggregator),
	)
}

func printTools(w io.Writer, m *tools.ToolManager) error {
	for _, t := range m.List() {
		def := t.Definition()
		if _, err := fmt.Fprintf(w, "%s\n  %s\n", t.Name(), t.Description()); err != nil {
			return err
		}
		for _, arg := range def.InputSchema.Required {
			if _, err := fmt.Fprintf(w, "  - %s (required)\n", arg); err != nil {
				return err
			}
		}
	}
	return nil
}
