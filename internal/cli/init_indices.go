package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/napleton/fueltrakr/internal/infra/search"
)

var initIndicesCmd = &cobra.Command{
	Use:   "init-indices",
	Short: "Provision the search store indices (idempotent)",
	Run:   runInitIndices,
}

func init() {
	rootCmd.AddCommand(initIndicesCmd)
}

func runInitIndices(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	client, err := search.NewClient(cfg.Search, cfg.Retry.Policy())
	if err != nil {
		slog.Error("Failed to create search client", "error", err)
		os.Exit(1)
	}

	if err := client.EnsureIndices(context.Background()); err != nil {
		slog.Error("Failed to provision indices", "error", err)
		os.Exit(1)
	}
	slog.Info("Search indices ready",
		"users", client.IndexName(search.KindUsers),
		"fuel_entries", client.IndexName(search.KindFuelEntries))
}
