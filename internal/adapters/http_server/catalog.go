package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"boutique_hotel/internal/domain"
)

// listHotels narrows the catalog by region, then free text, then star label.
func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	hotels := h.Catalog.All()
	if region := q.Get("region"); region != "" {
		hotels = h.Catalog.ByRegion(domain.Region(region))
	}
	if term := q.Get("q"); term != "" {
		hotels = intersect(hotels, h.Catalog.Search(term))
	}
	if stars := q.Get("stars"); stars != "" {
		hotels = intersect(hotels, h.Catalog.ByStars(stars))
	}
	writeCached(w, r, map[string]any{"hotels": hotels, "count": len(hotels)})
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hotel, ok := h.Catalog.ByID(chi.URLParam(r, "id"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "Hotel not found")
		return
	}
	writeCached(w, r, map[string]any{"hotel": hotel})
}

func (h *Handlers) listRegions(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, map[string]any{"regions": domain.Regions})
}

// intersect keeps the order of a.
func intersect(a, b []domain.Hotel) []domain.Hotel {
	keep := make(map[string]struct{}, len(b))
	for _, h := range b {
		keep[h.ID] = struct{}{}
	}
	out := make([]domain.Hotel, 0, len(a))
	for _, h := range a {
		if _, ok := keep[h.ID]; ok {
			out = append(out, h)
		}
	}
	return out
}
