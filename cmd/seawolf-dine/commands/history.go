package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/haoyu-chen-me/seawolf-dine/internal/archive"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	historyLimit  int
	historyLatest bool
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "The maximum amount of results to print.")
	historyCmd.Flags().BoolVar(&historyLatest, "latest", false, "Print the latest archived document of the vendor instead of a table.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [vendor] [--limit <n>] [--latest]",
	Short: "Prints archived scrape results.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.Archive.Enabled() {
			return errors.New("the archive is not configured, set archive.file or archive.url in the config")
		}

		vendor := ""
		if len(args) > 0 {
			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			v, err := catalog.Find(args[0])
			if err != nil {
				return err
			}
			vendor = v.Key
		}

		store, err := archive.Open(ctx, cfg.Archive)
		if err != nil {
			return err
		}
		defer store.Close()

		if historyLatest {
			if vendor == "" {
				return errors.New("--latest needs a vendor")
			}
			entry, err := store.Latest(ctx, vendor)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(os.Stdout, entry.Document)
			return err
		}

		entries, err := store.History(ctx, vendor, historyLimit)
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"Recorded", "Vendor", "Date", "Status", "Items", "Message", "Run"})
		for _, e := range entries {
			t.AppendRow(table.Row{
				e.RecordedAt.Format("2006-01-02 15:04:05"),
				e.Vendor,
				e.Date,
				e.Status,
				e.ItemCount,
				e.Message,
				e.RunID,
			})
		}
		t.Render()
		return nil
	},
}
