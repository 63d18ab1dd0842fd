package app

import (
	"regexp"
	"strconv"
	"strings"

	"boutique_hotel/internal/domain"
)

/********** alias registries (single source of truth) **********/

var featureAliases = map[string][]string{
	"name":    {"name", "hotel_name", "title"},
	"place":   {"place", "city", "town", "locality"},
	"country": {"country", "land"},
	"stars":   {"stars", "rating", "classification"},
	"webpage": {"webpage", "website", "url"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the trimmed string at path, stringifying numbers.
func lookupStr(m map[string]any, path string) string {
	switch v := lookupAny(m, path).(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, key string) string {
	for _, p := range featureAliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "52,37").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func ptrStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

/********** identity **********/

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// hotelID lowercases first, so accented letters collapse into separators.
func hotelID(name, placeOrCountry string) string {
	s := strings.ToLower(name + "-" + placeOrCountry)
	s = nonSlug.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

/********** feature mapper **********/

// mapFeature converts one GeoJSON feature. ok is false when the feature has
// no usable name.
func mapFeature(f domain.Feature, category string) (domain.Hotel, bool) {
	p := f.Properties
	if p == nil {
		p = map[string]any{}
	}
	name := firstNonEmptyAlias(p, "name")
	if name == "" {
		return domain.Hotel{}, false
	}
	country := firstNonEmptyAlias(p, "country")
	location := firstNonEmptyAlias(p, "place")
	if location == "" {
		location = country
	}

	var coords [2]float64
	if len(f.Geometry.Coordinates) >= 2 {
		coords = [2]float64{f.Geometry.Coordinates[0], f.Geometry.Coordinates[1]}
	}
	lat := coords[1]
	if v := getFloatFlexible(p, "latitude", "lat"); v != nil {
		lat = *v
	}
	lon := coords[0]
	if v := getFloatFlexible(p, "longitude", "lon", "lng"); v != nil {
		lon = *v
	}

	return domain.Hotel{
		ID:          hotelID(name, location),
		Name:        name,
		Location:    location,
		Country:     country,
		Stars:       firstNonEmptyAlias(p, "stars"),
		Latitude:    lat,
		Longitude:   lon,
		Coordinates: coords,
		Webpage:     ptrStr(firstNonEmptyAlias(p, "webpage")),
		Category:    category,
	}, true
}
