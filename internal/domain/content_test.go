package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripBuilderTags(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"empty", "", ""},
		{"plain text untouched", "Just a description.", "Just a description."},
		{
			"block form removed",
			"<!-- wp:fl-builder/layout -->Hello<!-- /wp:fl-builder/layout -->",
			"Hello",
		},
		{
			"legacy form removed",
			"<!-- fl-builder-version:2.6 -->Body text",
			"Body text",
		},
		{
			"blank runs collapse",
			"Top\n<!-- wp:fl-builder/layout -->\n\n<!-- /wp:fl-builder/layout -->\nBottom",
			"Top\n\nBottom",
		},
		{
			"non builder comments survive",
			"<!-- wp:paragraph -->Text<!-- /wp:paragraph -->",
			"<!-- wp:paragraph -->Text<!-- /wp:paragraph -->",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripBuilderTags(tt.content))
		})
	}
}

func TestFormatImageGallery(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		expected string
	}{
		{"empty", "", ""},
		{
			"pipe separated",
			"https://a.com/1.jpg | https://a.com/2.jpg",
			"https://a.com/1.jpg|||::https://a.com/2.jpg|||",
		},
		{
			"comma separated URLs",
			"https://a.com/1.jpg, https://a.com/2.jpg",
			"https://a.com/1.jpg|||::https://a.com/2.jpg|||",
		},
		{
			"JSON array",
			`["https://a.com/1.jpg"]`,
			"https://a.com/1.jpg|||",
		},
		{
			"already formatted passes through",
			"https://a.com/1.jpg|12|Title|Desc::https://a.com/2.jpg|||",
			"https://a.com/1.jpg|12|Title|Desc::https://a.com/2.jpg|||",
		},
		{
			"single URL",
			"https://a.com/photo.jpg",
			"https://a.com/photo.jpg|||",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatImageGallery(tt.field))
		})
	}
}

func TestExtractImageURLs(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"empty", "", ""},
		{"no images", "<p>Nothing here</p>", ""},
		{
			"single src attribute",
			`<img src="https://a.com/photo.jpg">`,
			"https://a.com/photo.jpg|||",
		},
		{
			"suffix-less master wins over scaled copies",
			`<img src="https://a.com/photo-300x200.jpg"> <a href="https://a.com/photo.jpg">full</a>`,
			"https://a.com/photo.jpg|||",
		},
		{
			"1440 wide preferred when no master",
			`<img src="https://a.com/photo-300x200.jpg"><img src="https://a.com/photo-1440x960.jpg"><img src="https://a.com/photo-2048x1365.jpg">`,
			"https://a.com/photo-1440x960.jpg|||",
		},
		{
			"widest wins when neither master nor 1440",
			`<img src="https://a.com/photo-300x200.jpg"><img src="https://a.com/photo-1024x683.jpg">`,
			"https://a.com/photo-1024x683.jpg|||",
		},
		{
			"distinct images keep first-seen order",
			`<img src="https://a.com/b.jpg"><img src="https://a.com/a.jpg">`,
			"https://a.com/b.jpg|||::https://a.com/a.jpg|||",
		},
		{
			"case-insensitive dedup",
			`<img src="https://a.com/Photo.JPG"><img src="https://a.com/photo.jpg">`,
			"https://a.com/Photo.JPG|||",
		},
		{
			"jpeg extension",
			`<img src="https://a.com/photo.jpeg">`,
			"https://a.com/photo.jpeg|||",
		},
		{"png ignored", `<img src="https://a.com/photo.png">`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractImageURLs(tt.content))
		})
	}
}

func TestExtractVideoURLs(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"empty", "", ""},
		{"no videos", "<p>Nothing</p>", ""},
		{
			"embed URL",
			`<iframe src="https://www.youtube.com/embed/dQw4w9WgXcQ"></iframe>`,
			"https://www.youtube.com/embed/dQw4w9WgXcQ|||",
		},
		{
			"watch URL",
			`<a href="https://www.youtube.com/watch?v=dQw4w9WgXcQ">watch</a>`,
			"https://www.youtube.com/embed/dQw4w9WgXcQ|||",
		},
		{
			"short link",
			`https://youtu.be/dQw4w9WgXcQ`,
			"https://www.youtube.com/embed/dQw4w9WgXcQ|||",
		},
		{
			"same video in multiple forms dedups",
			`https://youtu.be/dQw4w9WgXcQ and https://www.youtube.com/watch?v=dQw4w9WgXcQ`,
			"https://www.youtube.com/embed/dQw4w9WgXcQ|||",
		},
		{
			"multiple videos sorted by ID",
			`https://youtu.be/zzz111 https://youtu.be/aaa999`,
			"https://www.youtube.com/embed/aaa999|||::https://www.youtube.com/embed/zzz111|||",
		},
		{
			"protocol-relative embed",
			`<iframe src="//www.youtube.com/embed/dQw4w9WgXcQ"></iframe>`,
			"https://www.youtube.com/embed/dQw4w9WgXcQ|||",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractVideoURLs(tt.content))
		})
	}
}

func TestCombineImages(t *testing.T) {
	assert.Equal(t, "a|||::b|||", CombineImages("a|||", "b|||"))
	assert.Equal(t, "b|||", CombineImages("", "b|||"))
	assert.Equal(t, "a|||", CombineImages("a|||", ""))
	assert.Equal(t, "", CombineImages("", ""))
}
