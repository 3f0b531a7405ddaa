package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record is one parsed row of the ACF export CSV, keyed by header name.
// A key is present only when the source CSV has that column.
type Record map[string]string

// Get returns the value for key, or "" when the column is absent.
func (r Record) Get(key string) string {
	return r[key]
}

// GetOr returns the value for key, or fallback when the column is absent
// from the export. An empty value in a present column is returned as-is,
// matching how the original export rows behave.
func (r Record) GetOr(key, fallback string) string {
	if v, ok := r[key]; ok {
		return v
	}
	return fallback
}

// Listing is one row of the GeoDirectory import CSV.
type Listing struct {
	ID                     string `json:"id"`
	Title                  string `json:"post_title"`
	Content                string `json:"post_content,omitempty"`
	Status                 string `json:"post_status"`
	Author                 string `json:"post_author"`
	PostType               string `json:"post_type"`
	Date                   string `json:"post_date,omitempty"`
	Modified               string `json:"post_modified,omitempty"`
	Tags                   string `json:"post_tags,omitempty"`
	Categories             string `json:"post_category,omitempty"`
	DefaultCategory        string `json:"default_category"`
	Featured               string `json:"featured"`
	Street                 string `json:"street,omitempty"`
	Street2                string `json:"street2,omitempty"`
	City                   string `json:"city"`
	Region                 string `json:"region"`
	Country                string `json:"country"`
	Zip                    string `json:"zip,omitempty"`
	Latitude               string `json:"latitude"`
	Longitude              string `json:"longitude"`
	Location               string `json:"location,omitempty"`
	Phone                  string `json:"phone,omitempty"`
	Website                string `json:"website,omitempty"`
	WebsiteURL             string `json:"website_url,omitempty"`
	Email                  string `json:"email,omitempty"`
	FixedImage             string `json:"fixed_image,omitempty"`
	SpotlightLink          string `json:"spotlight_link,omitempty"`
	FeaturedImageAlignment string `json:"featured_image_alignment,omitempty"`
	Layout                 string `json:"layout,omitempty"`
	Facebook               string `json:"facebook,omitempty"`
	Twitter                string `json:"twitter,omitempty"`
	Instagram              string `json:"instagram,omitempty"`
	Pinterest              string `json:"pinterest,omitempty"`
	YouTube                string `json:"youtube,omitempty"`
	LinkedIn               string `json:"linkedin,omitempty"`
	TripAdvisor            string `json:"trip_advisor,omitempty"`
	Yelp                   string `json:"yelp,omitempty"`
	OtherSocialLabel       string `json:"other_social_label,omitempty"`
	OtherSocialURL         string `json:"other_social_url,omitempty"`
	OtherSocialIcon        string `json:"other_social_icon,omitempty"`
	EnablePostTabs         string `json:"enable_post_tabs"`
	Tab1Description        string `json:"tab_1_description,omitempty"`
	YouTubeURL             string `json:"youtube_url,omitempty"`
	YouTubeURLs            string `json:"youtube_urls,omitempty"`
	PostImages             string `json:"post_images,omitempty"`
}

// Columns is the GeoDirectory importer's required column order.
var Columns = []string{
	"ID", "post_title", "post_content", "post_status", "post_author",
	"post_type", "post_date", "post_modified", "post_tags", "post_category",
	"default_category", "featured", "street", "street2", "city", "region",
	"country", "zip", "latitude", "longitude", "location", "phone",
	"website", "website_url", "email_", "fixed_image", "spotlight_link",
	"featured_image_alignment", "layout", "facebook", "twitter",
	"instagram", "pinterest", "youtube", "linkedin", "trip_advisor",
	"yelp", "other_social_label", "other_social_url", "other_social_icon",
	"enable_post_tabs", "tab_1_description", "youtube_url", "youtube_urls",
	"post_images",
}

// Row returns the listing's fields in [Columns] order.
func (l Listing) Row() []string {
	return []string{
		l.ID, l.Title, l.Content, l.Status, l.Author,
		l.PostType, l.Date, l.Modified, l.Tags, l.Categories,
		l.DefaultCategory, l.Featured, l.Street, l.Street2, l.City, l.Region,
		l.Country, l.Zip, l.Latitude, l.Longitude, l.Location, l.Phone,
		l.Website, l.WebsiteURL, l.Email, l.FixedImage, l.SpotlightLink,
		l.FeaturedImageAlignment, l.Layout, l.Facebook, l.Twitter,
		l.Instagram, l.Pinterest, l.YouTube, l.LinkedIn, l.TripAdvisor,
		l.Yelp, l.OtherSocialLabel, l.OtherSocialURL, l.OtherSocialIcon,
		l.EnablePostTabs, l.Tab1Description, l.YouTubeURL, l.YouTubeURLs,
		l.PostImages,
	}
}

// OutputMessage is the serialized form of a listing destined for a sink
// (the optional Kafka topic consumed by downstream import tooling).
type OutputMessage struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// SerializeListing marshals a listing into an output message keyed by the
// source post ID, with generation metadata in the headers.
func SerializeListing(l Listing) (OutputMessage, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return OutputMessage{}, fmt.Errorf("serialize listing: %w", err)
	}
	return OutputMessage{
		Key:   []byte(l.ID),
		Value: data,
		Headers: map[string]string{
			"listing_id":   l.ID,
			"generated_at": clock.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

// ChooseBestValue returns the first non-empty value.
func ChooseBestValue(first, second string) string {
	if first != "" {
		return first
	}
	return second
}
