package domain

import "strings"

// socialBaseURLs maps platform names to their profile URL prefixes.
// YouTube channels use the @handle form.
var socialBaseURLs = map[string]string{
	"facebook":     "https://www.facebook.com/",
	"twitter":      "https://twitter.com/",
	"instagram":    "https://www.instagram.com/",
	"pinterest":    "https://www.pinterest.com/",
	"youtube":      "https://www.youtube.com/@",
	"linkedin":     "https://www.linkedin.com/",
	"trip_advisor": "https://www.tripadvisor.com/",
	"yelp":         "https://www.yelp.com/biz/",
}

// TransformSocialURL converts a username, handle, or existing URL into a full
// https profile URL for the given platform.
//
// Existing URLs are passed through with http upgraded to https. Otherwise the
// value is treated as a handle: trailing slashes and leading @ are stripped
// and the platform's base URL is prepended. LinkedIn handles default to the
// personal "in/" path unless an "in/" or "company/" prefix is already
// present. Unknown platforms fall back to generic URL cleanup.
func TransformSocialURL(platform, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if strings.HasPrefix(value, "http://") {
		return strings.Replace(value, "http://", "https://", 1)
	}
	if strings.HasPrefix(value, "https://") {
		return value
	}

	username := strings.TrimRight(value, "/")
	username = strings.TrimLeft(username, "@")
	username = strings.TrimSpace(username)
	if username == "" {
		return ""
	}

	if platform == "linkedin" {
		if strings.HasPrefix(username, "in/") || strings.HasPrefix(username, "company/") {
			return socialBaseURLs[platform] + username
		}
		return socialBaseURLs[platform] + "in/" + username
	}

	if base, ok := socialBaseURLs[platform]; ok {
		return base + username
	}

	return CleanURL(value)
}

// CleanURL ensures a URL carries a scheme, defaulting to https. Values that
// already begin with "http" are returned unchanged.
func CleanURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if !strings.HasPrefix(url, "http") {
		return "https://" + url
	}
	return url
}
