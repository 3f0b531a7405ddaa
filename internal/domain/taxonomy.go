package domain

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultFallbackTermID is the GeoDirectory "Uncategorized" term, substituted
// for any name missing from the mapping table.
const DefaultFallbackTermID = 2040

// titleCaser retries lookups in title case, since the export mixes
// "play" and "Play" for the same term. Note cases.Title leaves letters
// after apostrophes and digits lowercase ("don't" → "Don't", not "Don'T");
// the mapping keys are plain words, so the distinction never applies.
var titleCaser = cases.Title(language.English)

// TaxonomyMap maps category and tag names to GeoDirectory term IDs.
// Loaded once at startup and treated as read-only.
type TaxonomyMap struct {
	Categories map[string]int `json:"categories"`
	Tags       map[string]int `json:"tags"`
}

// LoadTaxonomyMap reads the name→ID mapping table from a JSON file.
func LoadTaxonomyMap(path string) (*TaxonomyMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy mapping: %w", err)
	}
	var m TaxonomyMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse taxonomy mapping %s: %w", path, err)
	}
	return &m, nil
}

// UnmappedTracker collects names that fell back to the default term ID,
// for the end-of-run report.
type UnmappedTracker map[string]struct{}

// Add records an unmapped name.
func (t UnmappedTracker) Add(name string) {
	t[name] = struct{}{}
}

// Names returns the tracked names sorted for stable reporting.
func (t UnmappedTracker) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CategoryIDs converts pipe- or comma-separated category names into the
// GeoDirectory ID list format ",2041,2043,". Unmapped names use fallback and
// are recorded in tracker when it is non-nil.
func (m *TaxonomyMap) CategoryIDs(text string, fallback int, tracker UnmappedTracker) string {
	return namesToIDs(m.Categories, text, "|,", fallback, tracker)
}

// TagIDs converts pipe-separated tag names into the GeoDirectory ID list
// format. Returns "" when the mapping table defines no tags at all, without
// tracking anything: a site with no tag vocabulary has nothing to map to.
func (m *TaxonomyMap) TagIDs(text string, fallback int, tracker UnmappedTracker) string {
	if len(m.Tags) == 0 {
		return ""
	}
	return namesToIDs(m.Tags, text, "|", fallback, tracker)
}

// namesToIDs splits text on the separator set, resolves each name to a term
// ID (exact match first, then title case, then fallback), deduplicates while
// preserving order, and formats the result with leading and trailing commas.
func namesToIDs(table map[string]int, text, separators string, fallback int, tracker UnmappedTracker) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	names := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(separators, r)
	})

	ids := make([]int, 0, len(names))
	seen := make(map[int]struct{}, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		id, ok := table[name]
		if !ok {
			id, ok = table[titleCaser.String(name)]
		}
		if !ok {
			id = fallback
			if tracker != nil {
				tracker.Add(name)
			}
		}

		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return ""
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "," + strings.Join(parts, ",") + ","
}

// FirstCategoryID extracts the first ID from a formatted ID list, falling
// back to the default term when the list is empty or malformed.
func FirstCategoryID(ids string, fallback int) string {
	trimmed := strings.Trim(strings.TrimSpace(ids), ",")
	if trimmed == "" {
		return strconv.Itoa(fallback)
	}

	for _, part := range strings.Split(trimmed, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, err := strconv.Atoi(part); err == nil {
			return part
		}
	}

	return strconv.Itoa(fallback)
}
