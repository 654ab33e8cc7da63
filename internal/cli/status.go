package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/napleton/fueltrakr/internal/infra/search"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the resolved configuration and backend reachability",
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	ctx := context.Background()

	mode := "live"
	if cfg.App.DemoMode {
		mode = "demo"
	}

	searchStatus := "not configured"
	if cfg.App.DemoMode {
		searchStatus = "skipped (demo mode)"
	} else if cfg.Search.Node != "" || cfg.Search.CloudID != "" {
		client, err := search.NewClient(cfg.Search, cfg.Retry.Policy())
		if err != nil {
			searchStatus = fmt.Sprintf("misconfigured: %v", err)
		} else if _, err := client.IndexExists(ctx, client.IndexName(search.KindUsers)); err != nil {
			searchStatus = fmt.Sprintf("unreachable: %v", err)
		} else {
			searchStatus = "reachable"
		}
	}

	sessionStore := "memory"
	if cfg.Redis.URL != "" {
		sessionStore = "redis"
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "SETTING\tVALUE")
	_, _ = fmt.Fprintf(w, "mode\t%s\n", mode)
	_, _ = fmt.Fprintf(w, "default role\t%s\n", cfg.App.DefaultRole)
	_, _ = fmt.Fprintf(w, "supabase project\t%s\n", cfg.Supabase.ProjectID)
	_, _ = fmt.Fprintf(w, "search store\t%s\n", searchStatus)
	_, _ = fmt.Fprintf(w, "session store\t%s\n", sessionStore)
	_, _ = fmt.Fprintf(w, "retry budget\t%d retries, %s..%s\n",
		cfg.Retry.MaxRetries, cfg.Retry.BaseDelay, cfg.Retry.MaxDelay)
	if err := w.Flush(); err != nil {
		slog.Error("Failed to render status", "error", err)
		os.Exit(1)
	}
}
