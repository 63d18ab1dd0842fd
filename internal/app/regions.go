package app

import (
	"strings"

	"boutique_hotel/internal/domain"
)

// europeanCountries holds English and Dutch spellings as they appear in the
// source files. Matching is case-insensitive.
var europeanCountries = []string{
	"Albania", "Andorra", "Austria", "Belarus", "België", "Belgie", "Belgium",
	"Bosnia andHerzegovina", "Bulgaria", "Croatia", "Cyprus", "Czechia",
	"Czech Republic", "Denemarken", "Denmark", "Duitsland", "Germany",
	"Estland", "Estonia", "Finland", "Frankrijk", "France", "Griekenland",
	"Greece", "Hungary", "Iceland", "Ireland", "Italie", "Italy", "Kosovo",
	"Latvia", "Liechtenstein", "Lithuania", "Luxembourg", "Malta", "Moldova",
	"Monaco", "Montenegro", "Nederland", "Netherlands", "North Macedonia",
	"Noorwegen", "Norway", "Oostenrijk", "Poland", "Portugal", "România",
	"Romania", "Russia", "San Marino", "Serbia", "Slovakia", "Slovenia",
	"Spanje", "Spain", "Sweden", "Zwitserland", "Switzerland", "Ukraine",
	"United Kingdom", "Vatican City",
}

var europeanSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(europeanCountries))
	for _, c := range europeanCountries {
		set[strings.ToLower(c)] = struct{}{}
	}
	return set
}()

func isEuropean(country string) bool {
	_, ok := europeanSet[strings.ToLower(country)]
	return ok
}

// regionCountries is matched case-sensitively against the stored country.
var regionCountries = map[domain.Region][]string{
	domain.RegionWestern:     {"France", "Frankrijk", "Belgium", "België", "Belgie", "Netherlands", "Nederland", "Luxembourg", "Switzerland", "Zwitserland"},
	domain.RegionNorthern:    {"Denmark", "Denemarken", "Estonia", "Estland", "Finland", "Iceland", "Norway", "Noorwegen", "Sweden"},
	domain.RegionSouthern:    {"Greece", "Griekenland", "Italy", "Italie", "Portugal", "Spain", "Spanje", "Cyprus", "Malta"},
	domain.RegionEastern:     {"Poland", "Czechia", "Czech Republic", "Hungary", "Romania", "România", "Bulgaria", "Croatia"},
	domain.RegionNetherlands: {"Nederland", "Netherlands"},
}

const (
	categoryWinter = "wintersport"
	categoryCities = "steden"
)

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// inRegion reports membership; known is false for regions outside the enumeration.
func inRegion(h domain.Hotel, r domain.Region) (in, known bool) {
	switch r {
	case domain.RegionWinter:
		return h.Category == categoryWinter || strings.Contains(h.Stars, "Winter"), true
	case domain.RegionCities:
		return h.Category == categoryCities, true
	}
	list, ok := regionCountries[r]
	if !ok {
		return false, false
	}
	return contains(list, h.Country), true
}
