// Command ponde is the pointer-device remapper's entry point: load a
// YAML config, construct the sink device and event bus, and run the
// event loop until killed (spec.md §4.5/§6).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/buzztaiki/ponde/internal/ponde/app"
	"github.com/buzztaiki/ponde/internal/ponde/config"
	"github.com/buzztaiki/ponde/internal/ponde/evdevbus"
	"github.com/buzztaiki/ponde/internal/ponde/log"
	"github.com/buzztaiki/ponde/internal/ponde/sink"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string
	var logFormat string

	cmd := &cobra.Command{
		Use:   "ponde <config-file>",
		Short: "Remap and republish pointer devices through a single virtual mouse",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if logFormat != "text" && logFormat != "json" {
				return fmt.Errorf("invalid --log-format %q: want text or json", logFormat)
			}
			return run(cmd.Context(), args[0], logLevel, logFormat == "json")
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "", fmt.Sprintf("log level (overrides %s)", log.EnvLevel))
	cmd.Flags().StringVar(&logFormat, "log-format", "text", "log output format: text or json")

	ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	cmd.SetContext(ctx)

	return cmd
}

func run(ctx context.Context, configPath, logLevel string, logFormatJSON bool) error {
	logger := log.New(logLevel, logFormatJSON)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sinkDev, err := sink.Open()
	if err != nil {
		return fmt.Errorf("create sink device: %w", err)
	}
	defer sinkDev.Close()

	bus := evdevbus.New(sink.Name)
	defer bus.Close()

	cursor := evdevbus.NewNext(bus)
	a := app.New(bus, cursor, sinkDev, cfg, logger)

	if err := a.Start(); err != nil {
		return fmt.Errorf("start event loop: %w", err)
	}

	logger.Info("ponde running", "config", configPath)
	if err := a.Run(ctx); err != nil {
		return fmt.Errorf("event loop: %w", err)
	}
	return nil
}
