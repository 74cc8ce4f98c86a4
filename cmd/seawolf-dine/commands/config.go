package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/haoyu-chen-me/seawolf-dine/internal/archive"
	"github.com/haoyu-chen-me/seawolf-dine/internal/components/configutil"
	"github.com/haoyu-chen-me/seawolf-dine/internal/components/telemetry"
	"github.com/haoyu-chen-me/seawolf-dine/internal/notify"
	"github.com/haoyu-chen-me/seawolf-dine/internal/scrapers/nutrislice"
	"github.com/haoyu-chen-me/seawolf-dine/internal/vendors"
)

type DaemonConfig struct {
	// Cron is a standard 5 field cron spec in America/New_York standard time.
	Cron string `json:"cron"`
}

type Config struct {
	OutputDir string `json:"output_dir"`
	// VendorsFile replaces the builtin vendor catalog.
	VendorsFile      string `json:"vendors_file"`
	TimeoutSeconds   int    `json:"timeout_seconds"`
	CloudflareBypass bool   `json:"cloudflare_bypass"`
	// ApiBaseUrl overrides the nutrislice api host.
	ApiBaseUrl string `json:"api_base_url"`
	// HttpDumpDir receives a dump of every http exchange in verbose mode.
	HttpDumpDir string `json:"http_dump_dir"`

	Archive archive.Config `json:"archive"`
	Notify  notify.Config  `json:"notify"`
	Daemon  DaemonConfig   `json:"daemon"`
}

func defaultConfig() Config {
	return Config{
		OutputDir:      ".",
		TimeoutSeconds: int(nutrislice.DefaultTimeout / time.Second),
		HttpDumpDir:    ".dev/http",
		Daemon: DaemonConfig{
			Cron: "0 6 * * *",
		},
	}
}

func loadConfig() (Config, error) {
	cfg, err := configutil.ReadConfigOr(configPath, defaultConfig())
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file, using defaults", "path", configPath)
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}

func loadCatalog(cfg Config) (vendors.Catalog, error) {
	if cfg.VendorsFile == "" {
		return vendors.Builtin()
	}
	return vendors.LoadFile(cfg.VendorsFile)
}

func newClient(cfg Config, tel telemetry.API) (*nutrislice.Client, error) {
	opts := nutrislice.Options{
		ApiBaseUrl:       cfg.ApiBaseUrl,
		Timeout:          time.Duration(cfg.TimeoutSeconds) * time.Second,
		CloudflareBypass: cfg.CloudflareBypass,
	}
	if verbose {
		output, err := telemetry.NewFilesystemOutput(cfg.HttpDumpDir)
		if err != nil {
			return nil, fmt.Errorf("http dump dir: %w", err)
		}
		opts.HttpOutput = output
	}
	return nutrislice.NewClient(opts, tel), nil
}
