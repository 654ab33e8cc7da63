package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/vietddude/stylelog"

	"github.com/napleton/fueltrakr/internal/core/config"
	"github.com/napleton/fueltrakr/internal/infra/memory"
	redisstore "github.com/napleton/fueltrakr/internal/infra/redis"
	"github.com/napleton/fueltrakr/internal/service"
)

var (
	cfgPath  string
	isDebug  bool
	demoMode bool
)

var rootCmd = &cobra.Command{
	Use:   "fueltrakr",
	Short: "FuelTrakr dealership fuel tracking",
	Long:  `FuelTrakr tracks vehicle fuel purchases at a dealership: porters log fill-ups, admins review entries and export accounting reports.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "config file (default is config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&demoMode, "demo", false, "force demo mode (in-memory fixture data)")
}

// loadConfig resolves configuration and initializes logging. Exits on a
// config error; every command needs both.
func loadConfig() *config.AppConfig {
	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		stylelog.InitDefault()
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if demoMode {
		cfg.App.DemoMode = true
	}

	slogLevel := slog.LevelInfo
	if isDebug || cfg.Logging.Level == "debug" {
		slogLevel = slog.LevelDebug
	}

	stylelog.InitDefault(&tint.Options{
		Level:      slogLevel,
		TimeFormat: time.RFC3339,
	})

	return cfg
}

// buildServices wires the facades, preferring the Redis session store when
// one is configured.
func buildServices(cfg *config.AppConfig) *service.Services {
	var sessions service.SessionStore
	if !cfg.App.DemoMode && cfg.Redis.URL != "" {
		store, err := redisstore.NewSessionStore(cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable, sessions will not survive restarts", "error", err)
		} else {
			sessions = store
		}
	}
	if sessions == nil {
		sessions = memory.NewSessionStore()
	}
	return service.New(*cfg, sessions)
}
