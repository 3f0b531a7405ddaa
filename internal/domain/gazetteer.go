package domain

import "strings"

// Coordinates is a WGS-84 latitude/longitude pair, kept as strings so the
// curated values survive the round trip into the import CSV unchanged.
type Coordinates struct {
	Lat string
	Lng string
}

// DefaultCoordinates is the St. Croix island center, used when a location
// cannot be resolved.
var DefaultCoordinates = Coordinates{Lat: "17.7478", Lng: "-64.7059"}

type gazetteerEntry struct {
	name   string
	coords Coordinates
}

// gazetteer maps St. Croix area names to coordinates: major towns,
// neighborhoods, and points of interest. Order matters — compound location
// values resolve to the first entry they contain.
var gazetteer = []gazetteerEntry{
	// Main towns
	{"christiansted", Coordinates{"17.7475", "-64.7011"}},
	{"frederiksted", Coordinates{"17.7128", "-64.8844"}},

	// Directional areas
	{"east end", Coordinates{"17.7644", "-64.5850"}},
	{"west end", Coordinates{"17.7100", "-64.8900"}},
	{"north shore", Coordinates{"17.7750", "-64.7500"}},
	{"mid island", Coordinates{"17.7300", "-64.7500"}},

	// Neighborhoods and bays
	{"gallows bay", Coordinates{"17.7400", "-64.6900"}},
	{"cane bay", Coordinates{"17.7717", "-64.8078"}},
	{"salt river", Coordinates{"17.7800", "-64.7600"}},
	{"sandy point", Coordinates{"17.6800", "-64.9000"}},
	{"5 corners", Coordinates{"17.7500", "-64.7100"}},

	// Points of interest
	{"buck island", Coordinates{"17.7889", "-64.6222"}},
	{"airport", Coordinates{"17.7019", "-64.7986"}},
	{"frederiksted pier", Coordinates{"17.7115", "-64.8845"}},
	{"the buccaneer", Coordinates{"17.7569", "-64.6247"}},

	// Island-wide services use the center point
	{"island wide", DefaultCoordinates},
	{"island-wide", DefaultCoordinates},

	// Special cases seen in the export
	{"accessible by boat only", DefaultCoordinates},
	{"us virgin islands and stateside", DefaultCoordinates},
}

// LookupCoordinates resolves a location name from the acf_location field.
// Exact matches win; otherwise the first gazetteer entry contained in the
// value is used, so "Office Location: Christiansted" and
// "Christiansted, Frederiksted" both resolve to Christiansted.
func LookupCoordinates(location string) (Coordinates, bool) {
	location = strings.ToLower(strings.TrimSpace(location))
	if location == "" {
		return Coordinates{}, false
	}

	for _, e := range gazetteer {
		if e.name == location {
			return e.coords, true
		}
	}
	for _, e := range gazetteer {
		if strings.Contains(location, e.name) {
			return e.coords, true
		}
	}

	return Coordinates{}, false
}

// Place is a named gazetteer entry, exposed for the -mapping display.
type Place struct {
	Name   string
	Coords Coordinates
}

// GazetteerPlaces returns the known places in table order.
func GazetteerPlaces() []Place {
	places := make([]Place, len(gazetteer))
	for i, e := range gazetteer {
		places[i] = Place{Name: e.name, Coords: e.coords}
	}
	return places
}
