package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/haoyu-chen-me/seawolf-dine/internal/components/chrono"
	"github.com/haoyu-chen-me/seawolf-dine/internal/components/telemetry"
	"github.com/haoyu-chen-me/seawolf-dine/internal/scraper"

	"github.com/spf13/cobra"
)

var daemonRunNow bool

// exclusive wraps `job` so that at most one call runs at a time, calls made
// while it is running invoke `skipped` instead.
func exclusive(job func(), skipped func()) func() {
	var mutex sync.Mutex
	return func() {
		if !mutex.TryLock() {
			skipped()
			return
		}
		defer mutex.Unlock()
		job()
	}
}

func init() {
	daemonCmd.Flags().BoolVar(&daemonRunNow, "now", false, "Also scrape once on startup.")
	rootCmd.AddCommand(daemonCmd)
}

var daemonCmd = &cobra.Command{
	Use:   "daemon [vendor...] [--now]",
	Short: "Scrapes the given vendors (or all of them) on the configured cron schedule until interrupted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// fail on unknown vendors before anything is scheduled
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		_, err = catalog.Select(args)
		if err != nil {
			return err
		}

		clocks, err := scraper.DefaultClocks()
		if err != nil {
			return err
		}

		tel := telemetry.SlogAPI{}
		telemetry.InstrumentPerfStats(ctx, tel)

		scrape := exclusive(func() {
			runs, err := runScrape(ctx, runOptions{
				cfg:       cfg,
				keys:      args,
				outputDir: cfg.OutputDir,
				clocks:    clocks,
			}, tel)
			if err != nil {
				tel.ReportBroken("commands.daemon", err)
				return
			}
			slog.Info("scrape finished", "statuses", statusCounts(runs))
		}, func() {
			tel.ReportWarning("commands.daemon", "previous scrape still running, skipping")
		})

		cron := chrono.NewStandardCron(tel, chrono.Eastern)
		err = cron.Cron(cfg.Daemon.Cron, scrape)
		if err != nil {
			cron.Stop()
			return fmt.Errorf("daemon.cron %q: %w", cfg.Daemon.Cron, err)
		}
		slog.Info("daemon started", "cron", cfg.Daemon.Cron, "output_dir", cfg.OutputDir)

		if daemonRunNow {
			scrape()
		}

		<-ctx.Done()
		slog.Info("stopping daemon", "reason", context.Cause(ctx))
		cron.Stop()
		return nil
	},
}
