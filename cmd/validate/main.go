// Command validate checks a generated GeoDirectory import CSV against the
// ACF export it was produced from. It verifies the column schema, row
// accounting, transformation correctness (by re-running the transform), and
// importer value constraints.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -acf acf_export.csv \
//	  -gd geodir_import.csv \
//	  -filter-bb
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/gotostcroix/geodir-migrate/internal/domain"
	"github.com/gotostcroix/geodir-migrate/internal/observability"
	"github.com/gotostcroix/geodir-migrate/internal/pipeline"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	acfPath := flag.String("acf", "", "path to the ACF export CSV")
	gdPath := flag.String("gd", "", "path to the generated GeoDirectory import CSV")
	mappingPath := flag.String("mapping", "categories_and_tags.json", "category/tag mapping table")
	filterBB := flag.Bool("filter-bb", false, "the import was generated with Beaver Builder filtering")
	defaultAddress := flag.Bool("enable-default-address", false, "the import was generated with the default address")
	flag.Parse()

	if *acfPath == "" || *gdPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*acfPath, *gdPath, *mappingPath, *filterBB, *defaultAddress); code != 0 {
		os.Exit(code)
	}
}

func run(acfPath, gdPath, mappingPath string, filterBB, defaultAddress bool) int {
	fmt.Println("=== GeoDirectory Import Validation ===")
	fmt.Println()

	taxonomy, err := domain.LoadTaxonomyMap(mappingPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load taxonomy mapping: %v\n", err)
		return 1
	}

	_, acfRows, err := loadCSV(acfPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load ACF export: %v\n", err)
		return 1
	}

	gdHeader, gdRows, err := loadCSV(gdPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load GeoDirectory import: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateSchema(gdHeader),
		validateRowAccounting(acfRows, gdRows),
		validateTransformation(taxonomy, acfRows, gdRows, filterBB, defaultAddress),
		validateConstraints(gdRows),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-46s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d ACF rows, %d import rows\n", len(acfRows), len(gdRows))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Data loading ──

// csvRow is a parsed CSV row with field values keyed by header name.
type csvRow struct {
	lineNum int
	fields  map[string]string
}

func loadCSV(path string) ([]string, []csvRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("no rows in %s", path)
	}

	header := all[0]
	var rows []csvRow
	for i, row := range all[1:] {
		fields := make(map[string]string, len(header))
		for j, h := range header {
			if j < len(row) {
				fields[h] = row[j]
			}
		}
		rows = append(rows, csvRow{lineNum: i + 2, fields: fields})
	}
	return header, rows, nil
}

// ── Phase 1: Schema ──
// The importer requires the exact column set in the exact order.

func validateSchema(header []string) *phase {
	p := &phase{name: "Phase 1: Schema (column order)"}

	if len(header) != len(domain.Columns) {
		p.errorf("expected %d columns, got %d", len(domain.Columns), len(header))
	}
	for i, want := range domain.Columns {
		if i >= len(header) {
			p.errorf("column %d missing: expected %q", i, want)
			continue
		}
		if header[i] != want {
			p.errorf("column %d: expected %q, got %q", i, want, header[i])
		}
	}
	return p
}

// ── Phase 2: Row accounting ──
// Every import row must trace back to exactly one export row by post ID.

func validateRowAccounting(acf, gd []csvRow) *phase {
	p := &phase{name: "Phase 2: Row Accounting (ID tracing)"}

	acfByID := make(map[string]int, len(acf))
	for _, row := range acf {
		acfByID[row.fields["id"]]++
	}

	seen := make(map[string]bool, len(gd))
	for _, row := range gd {
		id := row.fields["ID"]
		if id == "" {
			p.errorf("line %d: import row has empty ID", row.lineNum)
			continue
		}
		if acfByID[id] == 0 {
			p.errorf("line %d: import ID %q not present in the export", row.lineNum, id)
		}
		if seen[id] {
			p.errorf("line %d: duplicate import ID %q", row.lineNum, id)
		}
		seen[id] = true
	}
	return p
}

// ── Phase 3: Transformation ──
// Re-runs the transform on each export row and compares field by field.

func validateTransformation(taxonomy *domain.TaxonomyMap, acf, gd []csvRow, filterBB, defaultAddress bool) *phase {
	p := &phase{name: "Phase 3: Transformation (field compare)"}

	transformer := pipeline.NewListingTransformer(taxonomy, nil, domain.DefaultFallbackTermID, pipeline.Options{
		FilterBuilderTags: filterBB,
		UseDefaultAddress: defaultAddress,
	}, observability.NewMetrics())

	gdByID := make(map[string]csvRow, len(gd))
	for _, row := range gd {
		gdByID[row.fields["ID"]] = row
	}

	ctx := context.Background()
	for _, row := range acf {
		got, ok := gdByID[row.fields["id"]]
		if !ok {
			// Filters and test mode legitimately drop rows; accounting
			// is phase 2's job.
			continue
		}

		expected, err := transformer.Transform(ctx, domain.Record(row.fields))
		if err != nil {
			p.errorf("line %d: transform: %v", row.lineNum, err)
			continue
		}

		expectedRow := expected.Row()
		for i, col := range domain.Columns {
			if col == "street" {
				// Street may come from a curated cache unavailable here.
				continue
			}
			if got.fields[col] != expectedRow[i] {
				p.errorf("ID %s: column %q: expected %q, got %q",
					expected.ID, col, expectedRow[i], got.fields[col])
			}
		}
	}
	return p
}

// ── Phase 4: Value constraints ──
// Importer-side shape checks on the generated values.

var (
	phoneRe  = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
	idListRe = regexp.MustCompile(`^,\d+(,\d+)*,$`)
)

func validateConstraints(gd []csvRow) *phase {
	p := &phase{name: "Phase 4: Value Constraints (importer)"}

	for _, row := range gd {
		pf := func(format string, args ...any) {
			p.errorf("line %d (ID %s): "+format, append([]any{row.lineNum, row.fields["ID"]}, args...)...)
		}

		if v := row.fields["phone"]; v != "" && !phoneRe.MatchString(v) {
			pf("phone %q is not AAA-BBB-CCCC", v)
		}
		for _, col := range []string{"post_category", "post_tags"} {
			if v := row.fields[col]; v != "" && !idListRe.MatchString(v) {
				pf("%s %q is not a comma-wrapped ID list", col, v)
			}
		}
		if v := row.fields["website"]; v != "" && !strings.HasPrefix(v, "http") {
			pf("website %q has no scheme", v)
		}
		if row.fields["post_type"] != "gd_listing_new" {
			pf("post_type is %q", row.fields["post_type"])
		}

		checkCoordinate(pf, "latitude", row.fields["latitude"], 17.0, 18.5)
		checkCoordinate(pf, "longitude", row.fields["longitude"], -65.5, -64.0)
	}
	return p
}

func checkCoordinate(pf func(string, ...any), name, value string, lo, hi float64) {
	if value == "" {
		pf("%s is empty", name)
		return
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		pf("%s %q is not numeric", name, value)
		return
	}
	if f < lo || f > hi {
		pf("%s %g outside [%g, %g]", name, f, lo, hi)
	}
}
