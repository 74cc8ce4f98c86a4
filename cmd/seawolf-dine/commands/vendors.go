package commands

import (
	"strings"

	"github.com/haoyu-chen-me/seawolf-dine/internal/vendors"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(vendorsCmd)
}

func describeSource(v vendors.Vendor) string {
	if v.Layout != vendors.LayoutStalls {
		return v.School + "/" + v.MenuType
	}
	var stalls []string
	for _, s := range v.ResolvedStalls() {
		if s.Type == vendors.StallChain {
			stalls = append(stalls, s.Section+" (chain)")
			continue
		}
		if s.Daily {
			stalls = append(stalls, s.Section+" (daily)")
			continue
		}
		stalls = append(stalls, s.Section)
	}
	return strings.Join(stalls, "\n")
}

var vendorsCmd = &cobra.Command{
	Use:   "vendors",
	Short: "Prints the vendors that can be scraped.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"Key", "Location", "Layout", "Clock", "Menu date", "Source", "Output"})
		for _, v := range catalog.All() {
			menuDate := "today"
			if v.FixedMenuDate != "" {
				menuDate = v.FixedMenuDate
			}
			clock := v.Clock
			if clock == "" {
				clock = vendors.ClockFixed
			}
			t.AppendRow(table.Row{v.Key, v.Location, v.Layout, clock, menuDate, describeSource(v), v.Output})
			t.AppendSeparator()
		}
		t.Render()
		return nil
	},
}
