package pipeline

import (
	"context"
	"strings"

	"github.com/gotostcroix/geodir-migrate/internal/domain"
	"github.com/gotostcroix/geodir-migrate/internal/observability"
)

// Every listing lands on St. Croix; the importer requires these location
// fields even though the export never carries them.
const (
	defaultCity    = "St. Croix"
	defaultRegion  = "VI"
	defaultCountry = "United States"

	// defaultStreet satisfies the importer's address requirement for
	// listings with no curated street address.
	defaultStreet = "123 King Street"
)

// Options control the per-run transformation behavior.
type Options struct {
	// FilterBuilderTags strips Beaver Builder layout comments from content.
	FilterBuilderTags bool

	// UseAddressCache resolves street addresses from the curated cache,
	// keyed by business name.
	UseAddressCache bool

	// UseDefaultAddress fills defaultStreet into listings that end up with
	// no street address.
	UseDefaultAddress bool

	// UseFixedCoords pins every listing to FixedLat/FixedLng instead of
	// resolving the acf_location field against the gazetteer.
	UseFixedCoords bool
	FixedLat       string
	FixedLng       string
}

// ListingTransformer converts ACF export records into GeoDirectory listings.
type ListingTransformer struct {
	taxonomy   *domain.TaxonomyMap
	addresses  map[string]string
	fallbackID int
	opts       Options
	metrics    *observability.Metrics

	unmappedCategories domain.UnmappedTracker
	unmappedTags       domain.UnmappedTracker
}

// NewListingTransformer creates a transformer. addresses may be nil when the
// address cache is disabled or absent.
func NewListingTransformer(taxonomy *domain.TaxonomyMap, addresses map[string]string, fallbackID int, opts Options, metrics *observability.Metrics) *ListingTransformer {
	return &ListingTransformer{
		taxonomy:           taxonomy,
		addresses:          addresses,
		fallbackID:         fallbackID,
		opts:               opts,
		metrics:            metrics,
		unmappedCategories: make(domain.UnmappedTracker),
		unmappedTags:       make(domain.UnmappedTracker),
	}
}

// UnmappedCategories returns the category names that fell back to the default
// term ID, sorted.
func (t *ListingTransformer) UnmappedCategories() []string {
	return t.unmappedCategories.Names()
}

// UnmappedTags returns the tag names that fell back to the default term ID,
// sorted.
func (t *ListingTransformer) UnmappedTags() []string {
	return t.unmappedTags.Names()
}

// Transform builds one GeoDirectory listing from an ACF export record.
func (t *ListingTransformer) Transform(_ context.Context, rec domain.Record) (domain.Listing, error) {
	title := rec.Get("Title")

	catsBefore := len(t.unmappedCategories)
	tagsBefore := len(t.unmappedTags)

	categories := t.taxonomy.CategoryIDs(rec.Get("Categories"), t.fallbackID, t.unmappedCategories)
	tags := t.taxonomy.TagIDs(rec.Get("Tags"), t.fallbackID, t.unmappedTags)

	t.metrics.UnmappedTerms.WithLabelValues("category").Add(float64(len(t.unmappedCategories) - catsBefore))
	t.metrics.UnmappedTerms.WithLabelValues("tag").Add(float64(len(t.unmappedTags) - tagsBefore))

	website := domain.CleanURL(domain.ChooseBestValue(rec.Get("acf_website"), rec.Get("website_url")))

	content := rec.Get("Content")
	if t.opts.FilterBuilderTags {
		content = domain.StripBuilderTags(content)
	}

	extracted := domain.ExtractImageURLs(content)
	if extracted != "" {
		t.metrics.ImagesExtracted.Add(float64(attachmentCount(extracted)))
	}
	videos := domain.ExtractVideoURLs(content)
	if videos != "" {
		t.metrics.VideosExtracted.Add(float64(attachmentCount(videos)))
	}

	gallery := domain.FormatImageGallery(domain.ChooseBestValue(rec.Get("images"), rec.Get("slider")))

	lat, lng := t.resolveCoordinates(rec.Get("acf_location"))
	street := t.resolveStreet(strings.TrimSpace(title))

	enableTabs := "0"
	if rec.Get("acf_tabs_filter") != "" {
		enableTabs = "1"
	}

	return domain.Listing{
		ID:                     rec.Get("id"),
		Title:                  title,
		Content:                content,
		Status:                 rec.GetOr("Status", "publish"),
		Author:                 rec.GetOr("Author ID", "1"),
		PostType:               "gd_listing_new",
		Date:                   rec.Get("Date"),
		Modified:               rec.Get("Post Modified Date"),
		Tags:                   tags,
		Categories:             categories,
		DefaultCategory:        domain.FirstCategoryID(categories, t.fallbackID),
		Featured:               "0",
		Street:                 street,
		Street2:                "",
		City:                   defaultCity,
		Region:                 defaultRegion,
		Country:                defaultCountry,
		Zip:                    "",
		Latitude:               lat,
		Longitude:              lng,
		Location:               rec.Get("acf_location"),
		Phone:                  domain.FormatPhone(rec.Get("acf_phone")),
		Website:                website,
		WebsiteURL:             website,
		Email:                  rec.Get("acf_email"),
		FixedImage:             domain.CleanURL(rec.Get("acf_fixed_image")),
		SpotlightLink:          domain.CleanURL(rec.Get("acf_spotlight_link")),
		FeaturedImageAlignment: rec.Get("image_alignment"),
		Layout:                 rec.Get("acf_template_layout"),
		Facebook:               domain.TransformSocialURL("facebook", rec.Get("acf_facebook")),
		Twitter:                domain.TransformSocialURL("twitter", rec.Get("acf_twitter")),
		Instagram:              domain.TransformSocialURL("instagram", rec.Get("acf_instagram")),
		Pinterest:              domain.TransformSocialURL("pinterest", rec.Get("acf_pinterest")),
		YouTube:                domain.TransformSocialURL("youtube", rec.Get("acf_you_tube")),
		LinkedIn:               domain.TransformSocialURL("linkedin", rec.Get("acf_linked_in")),
		TripAdvisor:            domain.TransformSocialURL("trip_advisor", rec.Get("acf_trip_advisor")),
		Yelp:                   domain.TransformSocialURL("yelp", rec.Get("acf_yelp")),
		OtherSocialLabel:       rec.Get("acf_other_social_label"),
		OtherSocialURL:         domain.CleanURL(rec.Get("acf_other_social_url")),
		OtherSocialIcon:        rec.Get("acf_other_social_icon"),
		EnablePostTabs:         enableTabs,
		Tab1Description:        rec.Get("acf_tab_1_name"),
		YouTubeURL:             "",
		YouTubeURLs:            videos,
		PostImages:             domain.CombineImages(gallery, extracted),
	}, nil
}

func (t *ListingTransformer) resolveCoordinates(location string) (lat, lng string) {
	if t.opts.UseFixedCoords {
		return t.opts.FixedLat, t.opts.FixedLng
	}

	coords, ok := domain.LookupCoordinates(location)
	if !ok {
		coords = domain.DefaultCoordinates
	}
	return coords.Lat, coords.Lng
}

func (t *ListingTransformer) resolveStreet(title string) string {
	street := ""
	if t.opts.UseAddressCache && t.addresses != nil {
		var hit bool
		street, hit = t.addresses[title]
		if hit {
			t.metrics.AddressCacheHit.WithLabelValues("hit").Inc()
		} else {
			t.metrics.AddressCacheHit.WithLabelValues("miss").Inc()
		}
	}
	if street == "" && t.opts.UseDefaultAddress {
		street = defaultStreet
	}
	return street
}

// attachmentCount counts URL records in a "::"-joined attachment list.
func attachmentCount(attachments string) int {
	return strings.Count(attachments, "::") + 1
}
