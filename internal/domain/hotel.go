package domain

// Hotel is one catalog entry assembled from the static geo collections.
// It is derived on read and never persisted.
type Hotel struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Location    string     `json:"location"`
	Country     string     `json:"country"`
	Stars       string     `json:"stars"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Coordinates [2]float64 `json:"coordinates"` // [lon, lat] as in the source geometry
	Webpage     *string    `json:"webpage"`
	Category    string     `json:"category,omitempty"`
}

// FeatureCollection is the subset of GeoJSON the catalog reads.
// Properties stay untyped so the mapper can tolerate spelling drift between files.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Name     string    `json:"name"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type     string `json:"type"`
	Geometry struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type Region string

const (
	RegionWestern     Region = "Western Europe"
	RegionNorthern    Region = "Northern Europe"
	RegionSouthern    Region = "Southern Europe"
	RegionEastern     Region = "Eastern Europe"
	RegionWinter      Region = "Winter Sports"
	RegionCities      Region = "Cities"
	RegionNetherlands Region = "Netherlands"
)

// Regions lists the closed set in display order.
var Regions = []Region{
	RegionWestern, RegionNorthern, RegionSouthern, RegionEastern,
	RegionWinter, RegionCities, RegionNetherlands,
}

// PlacePhotos is the enrichment result for one hotel. Photos is never nil.
type PlacePhotos struct {
	PlaceID string   `json:"placeId,omitempty"`
	Photos  []string `json:"photos"`
}
