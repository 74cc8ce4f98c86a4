package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/haoyu-chen-me/seawolf-dine/internal/components/assert"
	"github.com/haoyu-chen-me/seawolf-dine/internal/components/chrono"
	"github.com/haoyu-chen-me/seawolf-dine/internal/components/telemetry"
	"github.com/haoyu-chen-me/seawolf-dine/internal/document"
	"github.com/haoyu-chen-me/seawolf-dine/internal/menu"
	"github.com/haoyu-chen-me/seawolf-dine/internal/scrapers/nutrislice"
	"github.com/haoyu-chen-me/seawolf-dine/internal/vendors"
)

const (
	report_scraper_run       = "scraper.run"
	report_scraper_fetch_day = "scraper.fetch-day"
)

const (
	Timezone = "America/New_York"

	messageFetched     = "Menu fetched."
	messageCategorized = "Menu fetched and categorized."
	messageClosedToday = "Closed today"
)

// Fetcher is the upstream menu feed.
type Fetcher interface {
	FetchWeek(ctx context.Context, school, menuType string, date time.Time) (nutrislice.Week, error)
	WeekURL(school, menuType string, date time.Time) string
	MenuPageURL(school, menuType string, date time.Time) string
}

// Clocks holds the clock of each vendors.ClockPolicy.
type Clocks struct {
	Fixed chrono.TimeAPI
	Zoned chrono.TimeAPI
}

// DefaultClocks is a fixed UTC-5 clock and an America/New_York clock.
func DefaultClocks() (Clocks, error) {
	zoned, err := chrono.NewZoned(Timezone)
	if err != nil {
		return Clocks{}, fmt.Errorf("load %s: %w", Timezone, err)
	}
	return Clocks{
		Fixed: chrono.NewFixedOffset(chrono.Eastern),
		Zoned: zoned,
	}, nil
}

func (c Clocks) forVendor(v vendors.Vendor) chrono.TimeAPI {
	if v.Clock == vendors.ClockZoned {
		return c.Zoned
	}
	return c.Fixed
}

// Scraper turns vendors into output documents. Fetches are made one after
// another, a failed fetch only affects the section it was made for.
type Scraper struct {
	fetcher Fetcher
	clocks  Clocks
	tel     telemetry.API
}

func NewScraper(fetcher Fetcher, clocks Clocks, tel telemetry.API) *Scraper {
	assert.NotNil("fetcher", fetcher)
	assert.NotNil("fixed clock", clocks.Fixed)
	assert.NotNil("zoned clock", clocks.Zoned)
	assert.NotNil("telemetry", tel)

	return &Scraper{
		fetcher: fetcher,
		clocks:  clocks,
		tel:     telemetry.NewScopedAPI("scraper", tel),
	}
}

// Run scrapes a single vendor. It never fails, problems are reported through
// the status and message of the returned document.
func (s *Scraper) Run(ctx context.Context, v vendors.Vendor) document.Document {
	now := s.clocks.forVendor(v).Now()
	today := chrono.Date(now)

	doc := document.Document{
		Location:  v.Location,
		Date:      today.Format(time.DateOnly),
		Timezone:  Timezone,
		UpdatedAt: now.Format(v.UpdatedAtLayout()),
	}

	menuDate := today
	fixed, hasFixed, err := v.FixedDate()
	if err != nil {
		// catalogs are validated on load, this only happens with hand built vendors
		s.tel.ReportBroken(report_scraper_run, v.Key, err)
		doc.Status = document.StatusFetchError
		doc.Message = fmt.Sprintf("Error: %v", err)
		return doc
	}
	if hasFixed {
		menuDate = fixed
	}

	s.tel.ReportDebug("run", "vendor", v.Key, "layout", v.Layout, "date", doc.Date)

	switch v.Layout {
	case vendors.LayoutSections:
		s.runSections(ctx, v, menuDate, &doc)
	case vendors.LayoutMeals:
		s.runMeals(ctx, v, menuDate, &doc)
	case vendors.LayoutStalls:
		s.runStalls(ctx, v, today, &doc)
	default:
		err := fmt.Errorf("unknown layout %q", v.Layout)
		s.tel.ReportBroken(report_scraper_run, v.Key, err)
		doc.Status = document.StatusFetchError
		doc.Message = fmt.Sprintf("Error: %v", err)
	}

	s.tel.ReportCount(fmt.Sprintf("items.%s", v.Key), int64(doc.ItemCount()))
	return doc
}

// day is the successful result of fetching a single day.
type day struct {
	sourceURL  string
	placements []menu.Placement
	closed     bool
	closure    string
}

func (s *Scraper) fetchDay(ctx context.Context, school, menuType string, date time.Time) (day, error) {
	out := day{sourceURL: s.fetcher.WeekURL(school, menuType, date)}
	dateStr := date.Format(time.DateOnly)

	week, err := s.fetcher.FetchWeek(ctx, school, menuType, date)
	if err != nil {
		s.tel.ReportWarning(report_scraper_fetch_day, school, menuType, dateStr, err)
		return out, err
	}

	block, found := week.Day(dateStr)
	if !found {
		return out, &MissingDateError{Date: dateStr}
	}
	if block.Len() == 0 {
		return out, &EmptyMenuError{Date: dateStr, NoEntries: true}
	}

	entries := block.Entries()
	if block.Len() == 1 {
		text, closed := menu.Closure(entries)
		if closed {
			out.closed = true
			out.closure = text
			return out, nil
		}
	}

	out.placements = menu.Fold(entries)
	if len(out.placements) == 0 {
		return out, &EmptyMenuError{Date: dateStr}
	}
	return out, nil
}

func (s *Scraper) runSections(ctx context.Context, v vendors.Vendor, date time.Time, doc *document.Document) {
	doc.MenuURL = s.fetcher.MenuPageURL(v.School, v.MenuType, date)

	result, err := s.fetchDay(ctx, v.School, v.MenuType, date)
	doc.SourceURL = result.sourceURL
	doc.Sections = []document.Section{}

	if err == nil && result.closed {
		doc.Status = document.StatusClosed
		doc.Message = result.closure
		return
	}
	doc.Status, doc.Message = outcome(err, messageFetched)
	if err != nil {
		return
	}
	doc.Sections = document.FromBlocks(menu.Aggregate(result.placements).Blocks())
}

func (s *Scraper) runMeals(ctx context.Context, v vendors.Vendor, date time.Time, doc *document.Document) {
	weekend := chrono.IsWeekend(date)
	doc.IsWeekend = &weekend

	partitioner, err := menu.NewPartitioner(v.MealRules())
	if err != nil {
		s.tel.ReportBroken(report_scraper_run, v.Key, err)
		doc.Status = document.StatusFetchError
		doc.Message = fmt.Sprintf("Error: %v", err)
		return
	}

	result, err := s.fetchDay(ctx, v.School, v.MenuType, date)
	doc.SourceURL = result.sourceURL

	var placements []menu.Placement
	switch {
	case err == nil && result.closed:
		doc.Status = document.StatusClosed
		doc.Message = result.closure
	default:
		doc.Status, doc.Message = outcome(err, messageCategorized)
		placements = result.placements
	}

	plan := partitioner.Plan(placements, weekend)
	doc.Meals = &plan
}

func (s *Scraper) runStalls(ctx context.Context, v vendors.Vendor, today time.Time, doc *document.Document) {
	fixed, hasFixed, _ := v.FixedDate()
	if hasFixed {
		doc.FixedMenuDate = v.FixedMenuDate
	}
	if v.Hours != nil {
		doc.HoursToday = v.Hours.Today(today)
	}

	stalls := v.ResolvedStalls()
	doc.Sections = make([]document.Section, 0, len(stalls))

	failed := 0
	for _, stall := range stalls {
		menuDate := today
		if hasFixed && !stall.Daily {
			menuDate = fixed
		}

		section, served := s.stallSection(ctx, stall, today, menuDate)
		if !served {
			failed++
		}
		doc.Sections = append(doc.Sections, section)
	}

	if failed > 0 {
		doc.Status = document.StatusPartialError
		doc.Message = fmt.Sprintf("%d of %d stalls did not return a menu.", failed, len(stalls))
		return
	}
	doc.Status = document.StatusOK
	doc.Message = messageFetched
}

// stallSection builds the section of a single stall. served is false unless the
// stall returned a menu or is closed by its hours table.
func (s *Scraper) stallSection(ctx context.Context, stall vendors.Stall, today, menuDate time.Time) (section document.Section, served bool) {
	section = document.Section{
		Section:    stall.Section,
		Type:       string(stall.Type),
		HoursToday: stall.Hours.Today(today),
		Items:      []string{},
	}

	if stall.Type == vendors.StallChain {
		section.Status = document.StatusOK
		section.Items = stall.Items
		section.MenuURL = stall.MenuURL
		return section, true
	}

	daily := stall.Daily
	section.School = stall.School
	section.Slug = stall.MenuType
	section.MenuDate = menuDate.Format(time.DateOnly)
	section.IsDaily = &daily
	section.MenuURL = s.fetcher.MenuPageURL(stall.School, stall.MenuType, menuDate)

	if strings.EqualFold(strings.TrimSpace(section.HoursToday), vendors.HoursClosed) {
		section.Status = document.StatusClosed
		section.Message = messageClosedToday
		return section, true
	}

	result, err := s.fetchDay(ctx, stall.School, stall.MenuType, menuDate)
	section.SourceURL = result.sourceURL
	if err == nil && result.closed {
		section.Status = document.StatusClosed
		section.Message = result.closure
		return section, false
	}

	section.Status, section.Message = outcome(err, messageFetched)
	if err != nil {
		return section, false
	}
	section.Items = menu.Aggregate(result.placements).Flatten()
	return section, true
}
