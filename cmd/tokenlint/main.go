// Package main provides the tokenlint binary entry point.
// Tokenlint validates hierarchical design tokens against scoped rule
// sets and resolves per-brand effective token sets.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kamishino/design-tokens-sub001/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "tokenlint"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	logLevel   string
	jsonOut    bool
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Design token validation and resolution",
		Long: `Tokenlint validates design tokens and resolves brand inheritance.

It provides:
- Path, type grammar and alias-reference validation for token documents
- WCAG 2.1 and APCA color-contrast analysis
- Brand > Project > Global inheritance resolution
- Scoped validation rule sets with cascading fallback

Token documents are nested YAML or JSON trees; rule sets and tokens can
also live in a NATS JetStream KV store.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(flags.logLevel)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&flags.jsonOut, "json", false, "Emit JSON instead of human-readable output")

	cmd.AddCommand(
		validateCmd(flags),
		contrastCmd(flags),
		resolveCmd(flags),
		rulesCmd(flags),
		versionCmd(),
	)

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

func configureLogging(level string) {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
}

// loadConfig loads the layered configuration, with an explicit file
// taking precedence over discovery.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	if flags.configPath != "" {
		cfg, err := config.LoadFromFile(flags.configPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return cfg, nil
	}
	return config.NewLoader(nil).Load()
}
