// Command lookupaddr extracts business names from an ACF export into a
// worklist for manual address research. Addresses found are curated into
// address_cache.json, which migrate consumes via -use-address-cache.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gotostcroix/geodir-migrate/internal/adapter/csvfile"
	"github.com/gotostcroix/geodir-migrate/internal/domain"
	"github.com/gotostcroix/geodir-migrate/internal/pipeline"
)

func main() {
	acfPath := flag.String("acf", "acf_export.csv", "input ACF export CSV file")
	outPath := flag.String("output", "address_lookup_needed.txt", "output file for the lookup worklist")
	sample := flag.Bool("sample", false, "write a sample address cache template and exit")
	flag.Parse()

	if *sample {
		if err := writeSampleCache(); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		fmt.Println("wrote address_cache_sample.json as a template")
		return
	}

	n, err := extractBusinesses(*acfPath, *outPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Printf("extracted %d businesses to %s\n", n, *outPath)
	fmt.Println("curate addresses into address_cache.json, then run migrate with -use-address-cache")
}

// business is one worklist entry, carrying the fields useful for finding a
// street address by hand.
type business struct {
	name     string
	location string
	phone    string
	website  string
}

func extractBusinesses(acfPath, outPath string) (int, error) {
	reader, err := csvfile.NewReader(acfPath)
	if err != nil {
		return 0, err
	}
	defer reader.Close()

	var businesses []business
	ctx := context.Background()
	for {
		rec, err := reader.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, pipeline.ErrBadRow) {
			continue
		}
		if err != nil {
			return 0, err
		}

		name := strings.TrimSpace(rec.Get("Title"))
		if name == "" {
			continue
		}
		businesses = append(businesses, business{
			name:     name,
			location: strings.TrimSpace(rec.Get("acf_location")),
			phone:    strings.TrimSpace(rec.Get("acf_phone")),
			website:  strings.TrimSpace(domain.ChooseBestValue(rec.Get("acf_website"), rec.Get("website_url"))),
		})
	}

	f, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("create worklist: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# Business address lookup list")
	fmt.Fprintln(w, "# Format: Business Name|Location|Phone|Website")
	fmt.Fprintln(w, "#")
	fmt.Fprintln(w, "# Curate findings into address_cache.json as:")
	fmt.Fprintln(w, `#   {"Business Name": "street address", ...}`)
	fmt.Fprintln(w, "# using the exact business name from the first column as the key.")
	fmt.Fprintln(w, "")
	for _, b := range businesses {
		fmt.Fprintf(w, "%s|%s|%s|%s\n", b.name, b.location, b.phone, b.website)
	}
	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("write worklist: %w", err)
	}

	return len(businesses), nil
}

func writeSampleCache() error {
	sample := map[string]string{
		"Example Restaurant": "123 Main Street",
		"Example Dive Shop":  "456 Ocean View Drive",
	}
	data, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile("address_cache_sample.json", append(data, '\n'), 0o644)
}
