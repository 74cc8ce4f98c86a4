package vendors

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/haoyu-chen-me/seawolf-dine/internal/components/configutil"

	"github.com/antzucaro/matchr"
)

//go:embed vendors.json5
var builtin []byte

// Catalog is the ordered set of vendors known to the scraper.
type Catalog struct {
	vendors []Vendor
}

// Builtin returns the catalog shipped with the binary.
func Builtin() (Catalog, error) {
	return Parse(builtin)
}

// LoadFile reads a catalog from a json5 file.
func LoadFile(path string) (Catalog, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, err
	}
	catalog, err := Parse(contents)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return catalog, nil
}

// Parse decodes and validates a json5 list of vendors.
func Parse(contents []byte) (Catalog, error) {
	list, err := configutil.Parse[[]Vendor](contents)
	if err != nil {
		return Catalog{}, err
	}
	return New(list)
}

func New(list []Vendor) (Catalog, error) {
	seen := make(map[string]struct{}, len(list))
	for _, v := range list {
		err := v.Validate()
		if err != nil {
			return Catalog{}, err
		}
		if _, dup := seen[v.Key]; dup {
			return Catalog{}, fmt.Errorf("duplicate vendor key %q", v.Key)
		}
		seen[v.Key] = struct{}{}
	}
	return Catalog{vendors: list}, nil
}

func (c Catalog) All() []Vendor {
	return c.vendors
}

// UnknownVendorError is returned when a vendor key is not in the catalog.
type UnknownVendorError struct {
	Key string
	// Suggestion is the most similar known key, if any is close enough.
	Suggestion string
}

func (e *UnknownVendorError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown vendor %q, did you mean %q?", e.Key, e.Suggestion)
	}
	return fmt.Sprintf("unknown vendor %q", e.Key)
}

// suggestions below this similarity are noise
const minSuggestionSimilarity = 0.7

func (c Catalog) Find(key string) (Vendor, error) {
	normalized := strings.ToLower(strings.TrimSpace(key))
	for _, v := range c.vendors {
		if v.Key == normalized {
			return v, nil
		}
	}

	var best string
	var bestSimilarity float64
	for _, v := range c.vendors {
		similarity := matchr.JaroWinkler(normalized, v.Key, false)
		if similarity > bestSimilarity {
			best = v.Key
			bestSimilarity = similarity
		}
	}
	if bestSimilarity < minSuggestionSimilarity {
		best = ""
	}
	return Vendor{}, &UnknownVendorError{Key: key, Suggestion: best}
}

// Select returns the vendors named by `keys` in the given order, or every
// vendor if `keys` is empty.
func (c Catalog) Select(keys []string) ([]Vendor, error) {
	if len(keys) == 0 {
		return c.vendors, nil
	}
	out := make([]Vendor, 0, len(keys))
	for _, key := range keys {
		v, err := c.Find(key)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
