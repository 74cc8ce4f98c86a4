package scraper

import (
	"errors"
	"fmt"

	"github.com/haoyu-chen-me/seawolf-dine/internal/document"
)

// MissingDateError means the week payload has no block for the requested day.
type MissingDateError struct {
	Date string
}

func (e *MissingDateError) Error() string {
	return fmt.Sprintf("API missing %s", e.Date)
}

// EmptyMenuError means the requested day has no usable dishes.
type EmptyMenuError struct {
	Date string
	// NoEntries is true when the day had no records at all, as opposed to
	// records that were all headers or noise.
	NoEntries bool
}

func (e *EmptyMenuError) Error() string {
	if e.NoEntries {
		return fmt.Sprintf("%s menu_items empty", e.Date)
	}
	return "No food names parsed"
}

// outcome downgrades the error of a single fetch to a status and message.
func outcome(err error, okMessage string) (document.Status, string) {
	if err == nil {
		return document.StatusOK, okMessage
	}

	var missing *MissingDateError
	if errors.As(err, &missing) {
		return document.StatusNoDataToday, missing.Error()
	}
	var empty *EmptyMenuError
	if errors.As(err, &empty) {
		return document.StatusNoDataToday, empty.Error()
	}
	return document.StatusFetchError, fmt.Sprintf("Error: %v", err)
}
