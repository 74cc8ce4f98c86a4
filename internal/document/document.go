package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/haoyu-chen-me/seawolf-dine/internal/menu"
)

type Status string

const (
	StatusOK           Status = "ok"
	StatusNoDataToday  Status = "no_data_today"
	StatusClosed       Status = "closed"
	StatusFetchError   Status = "fetch_error"
	StatusPartialError Status = "partial_error"
)

// Section is a block of dishes. Stall vendors fill in the per-stall fields,
// which are left out of the json when empty.
type Section struct {
	Section string   `json:"section"`
	Items   []string `json:"items"`

	Type       string `json:"type,omitempty"`
	School     string `json:"school,omitempty"`
	Slug       string `json:"slug,omitempty"`
	Status     Status `json:"status,omitempty"`
	Message    string `json:"message,omitempty"`
	MenuDate   string `json:"menu_date,omitempty"`
	HoursToday string `json:"hours_today,omitempty"`
	IsDaily    *bool  `json:"is_daily,omitempty"`
	MenuURL    string `json:"menu_url,omitempty"`
	SourceURL  string `json:"source_url,omitempty"`
}

// FromBlocks converts rendered menu blocks into plain sections.
func FromBlocks(blocks []menu.Block) []Section {
	out := make([]Section, len(blocks))
	for i, b := range blocks {
		out[i] = Section{Section: b.Section, Items: b.Items}
	}
	return out
}

// Document is the json file written for a vendor.
// Exactly one of Sections and Meals is rendered, Meals wins when it is set.
type Document struct {
	Location  string
	Date      string
	Timezone  string
	UpdatedAt string
	Status    Status
	Message   string
	SourceURL string

	Sections []Section
	Meals    *menu.MealPlan

	HoursToday    string
	MenuURL       string
	IsWeekend     *bool
	FixedMenuDate string
}

type header struct {
	Location  string `json:"location"`
	Date      string `json:"date"`
	Timezone  string `json:"timezone"`
	UpdatedAt string `json:"updated_at"`
	Status    Status `json:"status"`
	Message   string `json:"message"`
	SourceURL string `json:"source_url,omitempty"`
}

type metadata struct {
	HoursToday    string `json:"hours_today,omitempty"`
	MenuURL       string `json:"menu_url,omitempty"`
	IsWeekend     *bool  `json:"is_weekend,omitempty"`
	FixedMenuDate string `json:"fixed_menu_date_for_non_daily,omitempty"`
}

// embedded structs keep their position in the field order
type wireDocument struct {
	header
	Sections *[]Section     `json:"sections,omitempty"`
	Meals    *menu.MealPlan `json:"meals,omitempty"`
	metadata
}

func (d Document) MarshalJSON() ([]byte, error) {
	wire := wireDocument{
		header: header{
			Location:  d.Location,
			Date:      d.Date,
			Timezone:  d.Timezone,
			UpdatedAt: d.UpdatedAt,
			Status:    d.Status,
			Message:   d.Message,
			SourceURL: d.SourceURL,
		},
		metadata: metadata{
			HoursToday:    d.HoursToday,
			MenuURL:       d.MenuURL,
			IsWeekend:     d.IsWeekend,
			FixedMenuDate: d.FixedMenuDate,
		},
	}

	if d.Meals != nil {
		wire.Meals = d.Meals
	} else {
		sections := make([]Section, len(d.Sections))
		for i, s := range d.Sections {
			if s.Items == nil {
				s.Items = []string{}
			}
			sections[i] = s
		}
		wire.Sections = &sections
	}

	var buff bytes.Buffer
	enc := json.NewEncoder(&buff)
	enc.SetEscapeHTML(false)
	err := enc.Encode(wire)
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(buff.Bytes(), "\n"), nil
}

// ItemCount is the amount of dishes in the document.
func (d Document) ItemCount() int {
	if d.Meals != nil {
		return d.Meals.ItemCount()
	}
	n := 0
	for _, s := range d.Sections {
		n += len(s.Items)
	}
	return n
}

// Encode writes `doc` as 2-space indented json, non-ascii and html characters
// are written as is.
func Encode(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Write replaces the file at `path` with `doc`. The document is written to a
// temporary file first so readers never observe a partial file.
func Write(path string, doc Document) error {
	dir := filepath.Dir(path)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	err = Encode(tmp, doc)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	err = tmp.Close()
	if err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	err = os.Chmod(tmpName, 0644)
	if err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
