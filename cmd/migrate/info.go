package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/gotostcroix/geodir-migrate/internal/adapter/csvfile"
	"github.com/gotostcroix/geodir-migrate/internal/domain"
	"github.com/gotostcroix/geodir-migrate/internal/pipeline"
)

// fieldMapping describes one ACF column's destination and transformation,
// for the -mapping display.
type fieldMapping struct {
	source, dest, note string
}

var fieldMappings = []fieldMapping{
	{"id", "ID", ""},
	{"Title", "post_title", ""},
	{"Content", "post_content", "Beaver Builder tags optionally stripped"},
	{"Status", "post_status", "default: publish"},
	{"Author ID", "post_author", "default: 1"},
	{"(hardcoded)", "post_type", "gd_listing_new"},
	{"Date", "post_date", ""},
	{"Post Modified Date", "post_modified", ""},
	{"Tags", "post_tags", "names to term IDs"},
	{"Categories", "post_category", "names to term IDs"},
	{"Categories", "default_category", "first ID from post_category"},
	{"(hardcoded)", "featured", "0"},
	{"Title (cache lookup)", "street", "from the address cache"},
	{"(hardcoded)", "street2", "empty"},
	{"(hardcoded)", "city", "St. Croix"},
	{"(hardcoded)", "region", "VI"},
	{"(hardcoded)", "country", "United States"},
	{"(hardcoded)", "zip", "empty"},
	{"acf_location", "latitude", "gazetteer lookup"},
	{"acf_location", "longitude", "gazetteer lookup"},
	{"acf_location", "location", "area/neighborhood"},
	{"acf_phone", "phone", "340-555-1234 format"},
	{"acf_website | website_url", "website", "URL cleaned"},
	{"acf_website | website_url", "website_url", "URL cleaned"},
	{"acf_email", "email_", ""},
	{"acf_fixed_image", "fixed_image", "URL cleaned"},
	{"acf_spotlight_link", "spotlight_link", "URL cleaned"},
	{"image_alignment", "featured_image_alignment", ""},
	{"acf_template_layout", "layout", ""},
	{"acf_facebook", "facebook", "username to URL"},
	{"acf_twitter", "twitter", "username to URL"},
	{"acf_instagram", "instagram", "username to URL"},
	{"acf_pinterest", "pinterest", "username to URL"},
	{"acf_you_tube", "youtube", "@username to URL"},
	{"acf_linked_in", "linkedin", "profile or company URL"},
	{"acf_trip_advisor", "trip_advisor", "username to URL"},
	{"acf_yelp", "yelp", "business slug to URL"},
	{"acf_other_social_label", "other_social_label", ""},
	{"acf_other_social_url", "other_social_url", "URL cleaned"},
	{"acf_other_social_icon", "other_social_icon", ""},
	{"acf_tabs_filter", "enable_post_tabs", "1 if set, else 0"},
	{"acf_tab_1_name", "tab_1_description", ""},
	{"Content", "youtube_urls", "extracted YouTube embeds"},
	{"images | slider + Content", "post_images", "gallery plus extracted images"},
}

// displayFieldMappings prints the ACF to GeoDirectory field table, the
// gazetteer, and the loaded taxonomy mappings.
func displayFieldMappings(taxonomy *domain.TaxonomyMap) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "ACF FIELD\tGD FIELD\tTRANSFORMATION")
	for _, m := range fieldMappings {
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.source, m.dest, m.note)
	}
	w.Flush()

	fmt.Println()
	fmt.Println("LOCATION COORDINATE DEFAULTS")
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LOCATION\tLATITUDE\tLONGITUDE")
	for _, p := range sortedPlaces() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Coords.Lat, p.Coords.Lng)
	}
	fmt.Fprintf(w, "%s\t%s\t%s\n", "default (island center)", domain.DefaultCoordinates.Lat, domain.DefaultCoordinates.Lng)
	w.Flush()

	fmt.Println()
	fmt.Println("CATEGORY MAPPINGS")
	printTermTable(taxonomy.Categories, "(no category mappings loaded)")

	fmt.Println()
	fmt.Println("TAG MAPPINGS")
	printTermTable(taxonomy.Tags, "(no tag mappings: all tags use the fallback term)")
}

func sortedPlaces() []domain.Place {
	places := domain.GazetteerPlaces()
	sort.Slice(places, func(i, j int) bool {
		return places[i].Name < places[j].Name
	})
	return places
}

func printTermTable(table map[string]int, emptyNote string) {
	if len(table) == 0 {
		fmt.Println(emptyNote)
		return
	}

	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%d\n", name, table[name])
	}
	w.Flush()
}

// listUniqueValues prints the distinct values of one input column, splitting
// comma- and pipe-separated lists into their parts.
func listUniqueValues(acfPath, column string) error {
	reader, err := csvfile.NewReader(acfPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	found := false
	for _, name := range reader.Header() {
		if name == column {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("column %q not found in %s (available: %s)",
			column, acfPath, strings.Join(reader.Header(), ", "))
	}

	ctx := context.Background()
	unique := make(map[string]struct{})
	for {
		rec, err := reader.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, pipeline.ErrBadRow) {
			continue // skip malformed rows, same as the transform pass
		}
		if err != nil {
			return err
		}

		value := strings.TrimSpace(rec.Get(column))
		if value == "" {
			continue
		}

		switch {
		case strings.Contains(value, ","):
			for _, part := range strings.Split(value, ",") {
				unique[strings.TrimSpace(part)] = struct{}{}
			}
		case strings.Contains(value, "|"):
			for _, part := range strings.Split(value, "|") {
				unique[strings.TrimSpace(part)] = struct{}{}
			}
		default:
			unique[value] = struct{}{}
		}
	}
	delete(unique, "")

	values := make([]string, 0, len(unique))
	for v := range unique {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		return strings.ToLower(values[i]) < strings.ToLower(values[j])
	})

	fmt.Printf("unique values in %q: %d\n", column, len(values))
	for i, v := range values {
		fmt.Printf("%3d. %s\n", i+1, v)
	}
	return nil
}
