package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/kamishino/design-tokens-sub001/config"
	"github.com/kamishino/design-tokens-sub001/contrast"
	"github.com/kamishino/design-tokens-sub001/metrics"
	"github.com/kamishino/design-tokens-sub001/resolve"
	"github.com/kamishino/design-tokens-sub001/rules"
	"github.com/kamishino/design-tokens-sub001/source"
	"github.com/kamishino/design-tokens-sub001/validate"
)

func validateCmd(flags *globalFlags) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "validate [glob...]",
		Short: "Validate token documents",
		Long: `Validate loads token documents matching the given globs (or the
configured patterns when none are given), validates every token against
the effective rule set, and reports per-token findings plus a summary.
The exit status is non-zero when any token is invalid.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			patterns := args
			if len(patterns) == 0 {
				patterns = cfg.Tokens.Patterns
			}

			rs, err := effectiveRules(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			engineMetrics := metrics.New(prometheus.DefaultRegisterer)

			runOnce := func() (*validate.BatchResult, error) {
				tokens, err := source.LoadGlobs(patterns)
				if err != nil {
					return nil, err
				}
				start := time.Now()
				batch := validate.ValidateBatch(tokens, rs)
				engineMetrics.ObserveBatch(batch, time.Since(start))
				return batch, nil
			}

			batch, err := runOnce()
			if err != nil {
				return err
			}
			printBatch(batch, flags.jsonOut)

			if !watch {
				if batch.Summary.Invalid > 0 {
					return fmt.Errorf("%d of %d token(s) invalid", batch.Summary.Invalid, batch.Summary.Total)
				}
				return nil
			}

			return watchAndRevalidate(cmd.Context(), cfg, patterns, runOnce, flags.jsonOut)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Revalidate on file changes")
	return cmd
}

func watchAndRevalidate(ctx context.Context, cfg *config.Config, patterns []string, runOnce func() (*validate.BatchResult, error), jsonOut bool) error {
	watcher, err := source.NewWatcher(source.WatcherConfig{
		Patterns:      patterns,
		DebounceDelay: cfg.Tokens.WatchDebounce,
	})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			slog.Info("Revalidating", slog.Int("changed_files", len(event.Paths)))
			batch, err := runOnce()
			if err != nil {
				slog.Error("Revalidation failed", slog.String("error", err.Error()))
				continue
			}
			printBatch(batch, jsonOut)
		}
	}
}

func contrastCmd(flags *globalFlags) *cobra.Command {
	var size string

	cmd := &cobra.Command{
		Use:   "contrast <text-color> <background-color>",
		Short: "Analyze color contrast (WCAG 2.1 + APCA)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			rs, err := effectiveRules(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			report, err := contrast.Analyze(args[0], args[1], contrast.TextSize(size), rs.Contrast)
			if err != nil {
				return err
			}
			printContrast(report, flags.jsonOut)
			if !report.Valid {
				return fmt.Errorf("contrast below required thresholds")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&size, "size", string(contrast.SizeNormal), "Text size class (normal, large)")
	return cmd
}

func resolveCmd(flags *globalFlags) *cobra.Command {
	var project string
	var useStore bool

	cmd := &cobra.Command{
		Use:   "resolve <brand>",
		Short: "Resolve the effective token set for a brand",
		Long: `Resolve merges global, project and brand tokens into the effective
set for one brand (brand overrides project overrides global). Tokens
come from the configured documents, or from the NATS store with --nats.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			brand := args[0]
			if project == "" {
				project = cfg.Rules.Project
			}

			var src resolve.Source
			if useStore {
				app := NewApp(cfg)
				if err := app.Start(cmd.Context()); err != nil {
					return err
				}
				defer app.Stop()
				src = app.Store()
			} else {
				tokens, err := source.LoadGlobs(cfg.Tokens.Patterns)
				if err != nil {
					return err
				}
				src = resolve.SliceSource(tokens)
			}

			set, err := resolve.NewResolver(src, nil).BrandTokens(cmd.Context(), project, brand)
			if err != nil {
				return err
			}
			printResolved(set, flags.jsonOut)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project the brand belongs to (defaults to rules.project)")
	cmd.Flags().BoolVar(&useStore, "nats", false, "Read tokens from the NATS store instead of files")
	return cmd
}

func rulesCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the effective validation rule set",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			rs, err := effectiveRules(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			printRules(rs, flags.jsonOut)
			return nil
		},
	}
	return cmd
}

// effectiveRules resolves the rule set for the configured scope: from
// the rules file when one is configured, otherwise the built-in
// defaults via the cascade.
func effectiveRules(ctx context.Context, cfg *config.Config) (*rules.RuleSet, error) {
	var src rules.Source
	if cfg.Rules.File != "" {
		loaded, err := rules.LoadFile(cfg.Rules.File)
		if err != nil {
			return nil, err
		}
		src = loaded
	}
	return rules.NewResolver(src, nil).Resolve(ctx, cfg.Rules.Project, cfg.Rules.Brand)
}
