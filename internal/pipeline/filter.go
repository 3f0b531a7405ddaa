package pipeline

import (
	"strings"

	"github.com/gotostcroix/geodir-migrate/internal/domain"
)

// RowFilter selects rows by case-insensitive substring match against the
// Categories, Tags, and acf_template_layout columns. A row passes a list
// when any term matches; empty lists pass everything.
type RowFilter struct {
	categories []string
	tags       []string
	layouts    []string
}

// NewRowFilter parses three comma-separated term lists. Returns nil when all
// three are empty so callers can skip filtering entirely.
func NewRowFilter(categories, tags, layouts string) *RowFilter {
	f := &RowFilter{
		categories: splitTerms(categories),
		tags:       splitTerms(tags),
		layouts:    splitTerms(layouts),
	}
	if len(f.categories) == 0 && len(f.tags) == 0 && len(f.layouts) == 0 {
		return nil
	}
	return f
}

// Matches reports whether the record passes every configured list.
func (f *RowFilter) Matches(rec domain.Record) bool {
	return matchesAny(rec.Get("Categories"), f.categories) &&
		matchesAny(rec.Get("Tags"), f.tags) &&
		matchesAny(rec.Get("acf_template_layout"), f.layouts)
}

func matchesAny(value string, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	value = strings.ToLower(value)
	for _, term := range terms {
		if strings.Contains(value, term) {
			return true
		}
	}
	return false
}

func splitTerms(raw string) []string {
	var terms []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}
