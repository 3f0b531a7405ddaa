// Package domain models the ACF → GeoDirectory listing migration.
//
// # Data Source
//
// Input rows come from an Advanced Custom Fields (ACF Pro) CSV export of a
// WordPress business directory. Each row is one listing with free-text
// taxonomy columns ("Categories", "Tags"), ACF meta columns prefixed with
// "acf_" (phone, website, social handles, template layout, location name),
// and the raw post HTML in "Content".
//
// # ACF Data Conventions
//
// Taxonomy columns:
//
//	Category names are pipe- or comma-separated ("Play,Eat"); tag names are
//	pipe-separated. Names map to GeoDirectory term IDs through a JSON lookup
//	table; anything unmapped falls back to the Uncategorized term (2040) and
//	is collected for the end-of-run report.
//
// Social columns:
//
//	Values are whatever an editor typed: a bare handle ("VacationSTX"), a
//	handle with decoration ("@name", "name/"), or a full URL. All are
//	normalized to a canonical https profile URL per platform. LinkedIn values
//	may carry an "in/" or "company/" path prefix; bare LinkedIn handles
//	default to the personal "in/" form.
//
// Phone numbers:
//
//	Free-form. Digits are extracted and formatted as 340-555-1234; seven-digit
//	values are assumed local to St. Croix and get the 340 area code. Anything
//	else is passed through unchanged.
//
// Location names:
//
//	"acf_location" holds an area name ("Christiansted", "East End", ...)
//	resolved to coordinates through a static St. Croix gazetteer. Compound
//	values ("Christiansted, Frederiksted") resolve to the first known name
//	they contain. Unknown or empty locations use the island center
//	(17.7478, -64.7059).
//
// # GeoDirectory Import Format
//
// The output CSV has a fixed 45-column order (see [Columns]). Attachment
// fields (post_images, youtube_urls) hold records of the form
// URL|ID|TITLE|DESCRIPTION with ID/TITLE/DESCRIPTION left empty for imports,
// joined by "::". Term ID lists are wrapped in commas (",2041,2043,") so the
// importer can match IDs exactly.
//
// Image URLs extracted from post content are deduplicated by resolution
// variant: WordPress emits scaled copies with a "-WIDTHxHEIGHT" filename
// suffix, and only the master image (suffix-less, else the 1440-wide copy,
// else the widest) is kept per base filename.
package domain
