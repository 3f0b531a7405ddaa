package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		location string
		wantLat  string
		wantLng  string
		found    bool
	}{
		{"exact town", "christiansted", "17.7475", "-64.7011", true},
		{"case insensitive", "Frederiksted", "17.7128", "-64.8844", true},
		{"whitespace trimmed", "  Cane Bay  ", "17.7717", "-64.8078", true},
		{"substring match", "Office Location: Christiansted", "17.7475", "-64.7011", true},
		{"compound resolves to first entry", "Christiansted, Frederiksted", "17.7475", "-64.7011", true},
		{"island wide uses center", "island wide", "17.7478", "-64.7059", true},
		{"unknown place", "miami", "", "", false},
		{"empty", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coords, ok := LookupCoordinates(tt.location)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.wantLat, coords.Lat)
			assert.Equal(t, tt.wantLng, coords.Lng)
		})
	}
}

func TestGazetteerPlaces(t *testing.T) {
	places := GazetteerPlaces()
	assert.NotEmpty(t, places)
	assert.Equal(t, "christiansted", places[0].Name)
	for _, p := range places {
		assert.NotEmpty(t, p.Coords.Lat, "place %s has no latitude", p.Name)
		assert.NotEmpty(t, p.Coords.Lng, "place %s has no longitude", p.Name)
	}
}
