package domain

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// Beaver Builder markers, in both the WordPress block form
	// (<!-- wp:fl-builder/... -->, <!-- /wp:fl-builder/... -->) and the
	// legacy form (<!-- fl-builder... -->).
	bbBlockRe  = regexp.MustCompile(`<!--\s*/?wp:fl-builder[^>]*-->`)
	bbLegacyRe = regexp.MustCompile(`<!--\s*fl-builder[^>]*-->`)

	// Unicode-escaped variants as they appear inside wp:divi blocks:
	// <!-- wp:fl-builder... -->
	bbBlockEscRe  = regexp.MustCompile(`\\u003c!\\u002d\\u002d\s*/?wp:fl-builder[^\\]*\\u002d\\u002d\\u003e`)
	bbLegacyEscRe = regexp.MustCompile(`\\u003c!\\u002d\\u002d\s*fl-builder[^\\]*\\u002d\\u002d\\u003e`)

	// blankRunRe collapses the triple blank lines left behind by tag removal.
	blankRunRe = regexp.MustCompile(`\n\s*\n\s*\n`)

	// jpgURLRe matches .jpg/.jpeg URLs in src/href attributes or standing alone.
	jpgURLRe = regexp.MustCompile(`(?i)(?:src=|href=)?["']?(https?://[^\s"'<>]+\.jpe?g)["']?`)

	// resolutionRe matches the WordPress scaled-copy suffix: name-1024x768.jpg.
	resolutionRe = regexp.MustCompile(`(?i)-(\d+)x(\d+)(\.jpe?g)$`)

	// YouTube embed, watch, and short-link forms.
	youtubeRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:https?:)?//(?:www\.)?youtube\.com/embed/([a-zA-Z0-9_-]+)`),
		regexp.MustCompile(`(?i)(?:https?:)?//(?:www\.)?youtube\.com/watch\?v=([a-zA-Z0-9_-]+)`),
		regexp.MustCompile(`(?i)(?:https?:)?//youtu\.be/([a-zA-Z0-9_-]+)`),
	}

	// jsonArrayURLRe extracts URLs from a JSON-style gallery value.
	jsonArrayURLRe = regexp.MustCompile(`https?://[^\s",\]]+`)
)

// StripBuilderTags removes Beaver Builder layout comments from post content.
func StripBuilderTags(content string) string {
	if content == "" {
		return ""
	}

	content = bbBlockRe.ReplaceAllString(content, "")
	content = bbLegacyRe.ReplaceAllString(content, "")
	content = bbBlockEscRe.ReplaceAllString(content, "")
	content = bbLegacyEscRe.ReplaceAllString(content, "")
	content = blankRunRe.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}

// FormatImageGallery normalizes a gallery field into the GeoDirectory
// attachment format. The export produced several shapes over the years:
// single-pipe lists, comma-separated URLs, JSON arrays, a bare URL, or
// values already in GeoDirectory format (which pass through untouched).
func FormatImageGallery(field string) string {
	if field == "" {
		return ""
	}

	var urls []string
	switch {
	case strings.Contains(field, "|") && !strings.Contains(field, "::"):
		urls = splitTrimmed(field, "|")
	case strings.Contains(field, ",") && strings.Contains(field, "http"):
		urls = splitTrimmed(field, ",")
	case strings.HasPrefix(field, "["):
		urls = jsonArrayURLRe.FindAllString(field, -1)
	case strings.Contains(field, "::"):
		return field
	case strings.TrimSpace(field) != "":
		urls = []string{strings.TrimSpace(field)}
	}

	return formatAttachments(urls)
}

// ExtractImageURLs pulls .jpg/.jpeg URLs out of HTML content and formats them
// as GeoDirectory attachments, keeping one master image per resolution group.
func ExtractImageURLs(content string) string {
	if content == "" {
		return ""
	}

	matches := jpgURLRe.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return ""
	}

	type variant struct {
		url   string
		width int // 0 means no resolution suffix: the master image
	}

	groups := make(map[string][]variant)
	var order []string // base URLs in first-seen order

	for _, m := range matches {
		url := m[1]
		base := url
		width := 0
		if res := resolutionRe.FindStringSubmatch(url); res != nil {
			width, _ = strconv.Atoi(res[1])
			base = resolutionRe.ReplaceAllString(url, "$3")
		}
		if _, ok := groups[base]; !ok {
			order = append(order, base)
		}
		groups[base] = append(groups[base], variant{url: url, width: width})
	}

	masters := make([]string, 0, len(order))
	for _, base := range order {
		variants := groups[base]

		master := ""
		for _, v := range variants {
			if v.width == 0 {
				master = v.url
				break
			}
		}
		if master == "" {
			// No suffix-less copy: prefer the 1440-wide variant, else the widest.
			best := variants[0]
			for _, v := range variants[1:] {
				if best.width == 1440 {
					break
				}
				if v.width == 1440 || v.width > best.width {
					best = v
				}
			}
			master = best.url
		}
		masters = append(masters, master)
	}

	seen := make(map[string]struct{}, len(masters))
	unique := masters[:0]
	for _, url := range masters {
		key := strings.ToLower(url)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, url)
	}

	return formatAttachments(unique)
}

// ExtractVideoURLs pulls YouTube video IDs out of HTML content and formats
// their embed URLs as GeoDirectory attachments, sorted for stable output.
func ExtractVideoURLs(content string) string {
	if content == "" {
		return ""
	}

	idSet := make(map[string]struct{})
	for _, re := range youtubeRes {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			idSet[m[1]] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return ""
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	urls := make([]string, len(ids))
	for i, id := range ids {
		urls[i] = "https://www.youtube.com/embed/" + id
	}

	return formatAttachments(urls)
}

// CombineImages joins gallery attachments and content-extracted attachments,
// both already in GeoDirectory format.
func CombineImages(gallery, extracted string) string {
	switch {
	case gallery != "" && extracted != "":
		return gallery + "::" + extracted
	case extracted != "":
		return extracted
	default:
		return gallery
	}
}

// formatAttachments renders URLs as URL|ID|TITLE|DESCRIPTION records joined
// by "::", with ID/TITLE/DESCRIPTION left empty for imports.
func formatAttachments(urls []string) string {
	if len(urls) == 0 {
		return ""
	}
	records := make([]string, len(urls))
	for i, url := range urls {
		records[i] = url + "|||"
	}
	return strings.Join(records, "::")
}

func splitTrimmed(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
