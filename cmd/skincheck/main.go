// Command skincheck inspects skin analyses from a terminal: it polls running
// analyses, prints display-ready results and manages the display language.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"skincare-client/internal/shared/config"
)

var noColor bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "skincheck",
		Short:         "Inspect skin analyses from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("backend", "", "analysis backend base URL (overrides BACKEND_BASE_URL)")
	root.PersistentFlags().String("kv", "", "key-value backend (overrides KV_BACKEND)")
	root.PersistentFlags().BoolVar(&noColor, "no-color", os.Getenv("NO_COLOR") != "", "disable colored output")

	root.AddCommand(
		newWatchCmd(),
		newResultCmd(),
		newLatestCmd(),
		newInspectCmd(),
		newTranslateCmd(),
		newDemoCmd(),
		newLangCmd(),
	)
	return root
}

// loadConfig reads the environment and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg := config.Load()
	if v, _ := cmd.Flags().GetString("backend"); strings.TrimSpace(v) != "" {
		cfg.BackendBaseURL = strings.TrimRight(strings.TrimSpace(v), "/")
	}
	if v, _ := cmd.Flags().GetString("kv"); strings.TrimSpace(v) != "" {
		cfg.KVBackend = strings.TrimSpace(v)
	}
	// The CLI never publishes settle events.
	cfg.SQSQueueURL = ""
	return cfg
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
