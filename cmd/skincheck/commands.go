package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"skincare-client/internal/bootstrap"
	"skincare-client/internal/contentnorm"
	"skincare-client/internal/poller"
	"skincare-client/internal/preferences"
	"skincare-client/internal/resultcache"
	"skincare-client/internal/results"
)

// --- watch ---

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [analysis-id]",
		Short: "Poll an analysis until it completes or fails",
		Long: `Poll an analysis until it completes or fails, then print the result.

With --latest the most recent analysis is watched instead, and watching
switches over whenever a newer analysis appears before it settles.

Examples:
  skincheck watch 3f0c9a51-2d7e-4d0b-9c36-3c1f3f5d2f11
  skincheck watch 3f0c9a51-2d7e-4d0b-9c36-3c1f3f5d2f11 --json
  skincheck watch --latest`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			followLatest, _ := cmd.Flags().GetBool("latest")
			if followLatest == (len(args) == 1) {
				return errors.New("pass either an analysis id or --latest")
			}

			ctx := cmd.Context()
			app, err := bootstrap.Build(ctx, loadConfig(cmd))
			if err != nil {
				return err
			}
			defer app.Close()

			w := poller.NewWatcher(app.Results.Watch)
			defer w.Stop()
			out := cmd.ErrOrStderr()
			cb := poller.Callbacks{
				OnStatus: func(s poller.Snapshot) {
					fmt.Fprintf(out, "%s %s attempt %d: %s\n", colorize(colorCyan, "poll"), s.AnalysisID, s.Attempts, s.LastStatus)
				},
			}

			if !followLatest {
				session := w.Watch(ctx, args[0], cb)
				select {
				case <-session.Done():
				case <-ctx.Done():
					return ctx.Err()
				}
				return finishWatch(cmd, app, session.Snapshot(), asJSON)
			}
			return watchLatest(cmd, app, w, cb, asJSON)
		},
	}
	cmd.Flags().Bool("json", false, "print the result as JSON")
	cmd.Flags().Bool("latest", false, "follow the most recent analysis")
	return cmd
}

// watchLatest re-reads the latest analysis every poll interval and moves the
// watcher to it until the watched analysis settles.
func watchLatest(cmd *cobra.Command, app *bootstrap.App, w *poller.Watcher, cb poller.Callbacks, asJSON bool) error {
	ctx := cmd.Context()
	follow := func() error {
		latest, err := app.Backend.Latest(ctx)
		if err != nil {
			return err
		}
		if latest == nil {
			return errors.New("no analyses yet")
		}
		if id, cur := w.Current(); id != latest.ID || cur == nil {
			if cur != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s switching to %s\n", colorize(colorYellow, "latest"), latest.ID)
			}
			w.Watch(ctx, latest.ID, cb)
		}
		return nil
	}
	if err := follow(); err != nil {
		return err
	}

	ticker := time.NewTicker(app.Config.PollInterval)
	defer ticker.Stop()
	for {
		_, session := w.Current()
		select {
		case <-session.Done():
			snap := session.Snapshot()
			if !snap.Cancelled {
				return finishWatch(cmd, app, snap, asJSON)
			}
		case <-ticker.C:
			if err := follow(); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func finishWatch(cmd *cobra.Command, app *bootstrap.App, snap poller.Snapshot, asJSON bool) error {
	switch snap.State {
	case poller.StateCompleted:
		view, err := app.Results.Result(cmd.Context(), snap.AnalysisID)
		if err != nil {
			return err
		}
		return writeView(cmd, view, asJSON)
	case poller.StateFailed:
		return errors.New(snap.Message)
	default:
		return fmt.Errorf("watch stopped before analysis %s settled", snap.AnalysisID)
	}
}

// --- result ---

func newResultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "result <analysis-id>",
		Short: "Print the display-ready result of a completed analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			ctx := cmd.Context()
			app, err := bootstrap.Build(ctx, loadConfig(cmd))
			if err != nil {
				return err
			}
			defer app.Close()

			view, err := app.Results.Result(ctx, args[0])
			if errors.Is(err, results.ErrNotReady) {
				return fmt.Errorf("analysis %s is %s; try: skincheck watch %s", args[0], view.Status, args[0])
			}
			if err != nil {
				return err
			}
			return writeView(cmd, view, asJSON)
		},
	}
	cmd.Flags().Bool("json", false, "print the result as JSON")
	return cmd
}

// --- latest ---

func newLatestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Print the most recent analysis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			ctx := cmd.Context()
			app, err := bootstrap.Build(ctx, loadConfig(cmd))
			if err != nil {
				return err
			}
			defer app.Close()

			view, err := app.Results.Latest(ctx)
			switch {
			case view == nil && err == nil:
				fmt.Fprintln(cmd.OutOrStdout(), "No analyses yet.")
				return nil
			case errors.Is(err, results.ErrNotReady):
				fmt.Fprintf(cmd.OutOrStdout(), "Latest analysis %s is %s.\n", view.AnalysisID, view.Status)
				return nil
			case err != nil:
				return err
			}
			return writeView(cmd, *view, asJSON)
		},
	}
	cmd.Flags().Bool("json", false, "print the result as JSON")
	return cmd
}

// --- inspect ---

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <analysis-id>",
		Short: "Show the stored boosted-metrics record for an analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := bootstrap.BuildStore(ctx, loadConfig(cmd))
			if err != nil {
				return err
			}
			defer app.Close()

			rec, ok, err := resultcache.New(app.Store, nil).Lookup(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no stored record for %s", args[0])
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"key":             resultcache.Key(strings.TrimSpace(args[0])),
				"originalMetrics": rec.OriginalMetrics,
				"boostedMetrics":  rec.BoostedMetrics,
				"timestamp":       rec.Timestamp,
			})
		},
	}
}

// --- translate ---

func newTranslateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate <text>",
		Short: "Run backend text through the content normalizer",
		Long: `Run backend text through the content normalizer.

Examples:
  skincheck translate "Gentle Cleanser" --lang es
  skincheck translate "Use SPF 50 and reapply every 2 hours" --kind instructions --lang es`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("kind")
			rawLang, _ := cmd.Flags().GetString("lang")

			var locale language.Tag
			if strings.TrimSpace(rawLang) != "" {
				tag, err := preferences.ParseLanguage(rawLang)
				if err != nil {
					return err
				}
				locale = tag
			} else {
				tag, err := storedLanguage(cmd)
				if err != nil {
					return err
				}
				locale = tag
			}

			tr := contentnorm.New(contentnorm.StaticLocale(locale))
			text := strings.Join(args, " ")
			var out string
			switch strings.ToLower(kind) {
			case "", "auto":
				out = tr.Translate(text)
			case "step":
				out = tr.StepName(text)
			case "instructions":
				out = tr.Instructions(text)
			case "product":
				out = tr.ProductName(text)
			default:
				return fmt.Errorf("unknown kind %q (want auto, step, instructions or product)", kind)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().String("kind", "auto", "content kind: auto, step, instructions or product")
	cmd.Flags().String("lang", "", "display language (defaults to the stored preference)")
	return cmd
}

// --- demo ---

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the simulated progress indicator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			err := poller.Demo(cmd.Context(), nil, func(percent int) {
				fmt.Fprintf(out, "\r%s", progressBar(percent))
			})
			fmt.Fprintln(out)
			return err
		},
	}
}

// --- lang ---

func newLangCmd() *cobra.Command {
	langCmd := &cobra.Command{
		Use:   "lang",
		Short: "Show or change the display language",
	}
	langCmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the display language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := storedLanguage(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tag)
			return nil
		},
	})
	langCmd.AddCommand(&cobra.Command{
		Use:   "set <tag>",
		Short: "Persist the display language (en or es)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := loadConfig(cmd)
			app, err := bootstrap.BuildStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			tag, err := preferences.NewLanguage(app.Store, language.English).Set(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), colorize(colorGreen, "✓ language saved"))
			fmt.Fprintln(cmd.OutOrStdout(), tag)
			return nil
		},
	})
	return langCmd
}

// storedLanguage loads the persisted display language, falling back to APP_LANGUAGE.
func storedLanguage(cmd *cobra.Command) (language.Tag, error) {
	ctx := cmd.Context()
	cfg := loadConfig(cmd)
	app, err := bootstrap.BuildStore(ctx, cfg)
	if err != nil {
		return language.Und, err
	}
	defer app.Close()

	fallback, err := preferences.ParseLanguage(cfg.AppLanguage)
	if err != nil {
		fallback = language.English
	}
	return preferences.NewLanguage(app.Store, fallback).Load(ctx)
}

func writeView(cmd *cobra.Command, v results.View, asJSON bool) error {
	if asJSON {
		return printJSON(cmd.OutOrStdout(), v)
	}
	printView(cmd.OutOrStdout(), v)
	return nil
}
