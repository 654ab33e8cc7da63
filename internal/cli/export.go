package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/napleton/fueltrakr/internal/export"
)

var (
	exportEmail    string
	exportPassword string
	exportOut      string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the accounting CSV report",
	Run:   runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportEmail, "email", "", "admin email (omit to reuse a stored session)")
	exportCmd.Flags().StringVar(&exportPassword, "password", "", "admin password")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default fueltrakr-export-<date>.csv)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	svc := buildServices(cfg)
	ctx := context.Background()

	sess := svc.Auth.Session(ctx)
	if sess == nil {
		if exportEmail == "" {
			slog.Error("No stored session; pass --email and --password")
			os.Exit(1)
		}
		var err error
		sess, err = svc.Auth.SignIn(ctx, exportEmail, exportPassword)
		if err != nil {
			slog.Error("Sign in failed", "error", err)
			os.Exit(1)
		}
	}

	data, err := svc.Admin.ExportCSV(ctx, *sess)
	if err != nil {
		slog.Error("Export failed", "error", err)
		os.Exit(1)
	}

	out := exportOut
	if out == "" {
		out = export.Filename(time.Now())
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		slog.Error("Failed to write export file", "path", out, "error", err)
		os.Exit(1)
	}
	slog.Info("Export written", "path", out, "bytes", len(data))
}
