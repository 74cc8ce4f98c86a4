package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/haoyu-chen-me/seawolf-dine/internal/archive"
	"github.com/haoyu-chen-me/seawolf-dine/internal/components/telemetry"
	"github.com/haoyu-chen-me/seawolf-dine/internal/document"
	"github.com/haoyu-chen-me/seawolf-dine/internal/notify"
	"github.com/haoyu-chen-me/seawolf-dine/internal/scraper"
	"github.com/haoyu-chen-me/seawolf-dine/internal/vendors"
)

type vendorRun struct {
	vendor   vendors.Vendor
	doc      document.Document
	path     string
	writeErr error
}

type runOptions struct {
	cfg       Config
	keys      []string
	outputDir string
	clocks    scraper.Clocks
}

// runScrape scrapes the selected vendors and writes their documents. Problems
// with individual vendors end up in the documents, only setup errors are returned.
func runScrape(ctx context.Context, opts runOptions, tel telemetry.API) ([]vendorRun, error) {
	catalog, err := loadCatalog(opts.cfg)
	if err != nil {
		return nil, fmt.Errorf("load vendors: %w", err)
	}
	selected, err := catalog.Select(opts.keys)
	if err != nil {
		return nil, err
	}

	client, err := newClient(opts.cfg, tel)
	if err != nil {
		return nil, err
	}
	s := scraper.NewScraper(client, opts.clocks, tel)

	startedAt := time.Now()
	runs := make([]vendorRun, 0, len(selected))
	for _, v := range selected {
		doc := s.Run(ctx, v)
		path := filepath.Join(opts.outputDir, v.Output)
		err := document.Write(path, doc)
		if err != nil {
			tel.ReportBroken("commands.write-document", v.Key, err)
		}
		runs = append(runs, vendorRun{vendor: v, doc: doc, path: path, writeErr: err})
		slog.Info("scraped vendor", "vendor", v.Key, "status", doc.Status, "items", doc.ItemCount())
	}
	finishedAt := time.Now()

	if opts.cfg.Archive.Enabled() {
		err := recordRun(ctx, opts.cfg.Archive, startedAt, finishedAt, runs)
		if err != nil {
			tel.ReportBroken("commands.archive", err)
		}
	}
	if opts.cfg.Notify.Enabled() {
		err := notifyFailures(ctx, opts.cfg.Notify, runs, opts.clocks.Fixed.Now())
		if err != nil {
			tel.ReportBroken("commands.notify", err)
		}
	}

	return runs, nil
}

func recordRun(ctx context.Context, cfg archive.Config, startedAt, finishedAt time.Time, runs []vendorRun) error {
	store, err := archive.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	results := make([]archive.Result, len(runs))
	for i, r := range runs {
		results[i] = archive.Result{Vendor: r.vendor.Key, Document: r.doc}
	}
	id, err := store.Record(ctx, archive.Run{
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Results:    results,
	})
	if err != nil {
		return err
	}
	slog.Debug("recorded run", "id", id)
	return nil
}

func notifyFailures(ctx context.Context, cfg notify.Config, runs []vendorRun, at time.Time) error {
	outcomes := make([]notify.Outcome, len(runs))
	for i, r := range runs {
		outcomes[i] = notify.Outcome{
			Vendor:   r.vendor.Key,
			Location: r.vendor.Location,
			Status:   r.doc.Status,
			Message:  r.doc.Message,
		}
		if r.writeErr != nil {
			outcomes[i].Status = document.StatusFetchError
			outcomes[i].Message = fmt.Sprintf("write %s: %v", r.path, r.writeErr)
		}
	}

	subject, body, ok := notify.Compose(outcomes, at)
	if !ok {
		return nil
	}
	return notify.NewMailer(cfg).Send(ctx, subject, body)
}
