package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// placePhotos proxies the places provider. Upstream trouble is an empty
// list; only a missing provider key is an error.
func (h *Handlers) placePhotos(w http.ResponseWriter, r *http.Request) {
	name, location := r.URL.Query().Get("name"), r.URL.Query().Get("location")
	if name == "" || location == "" {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "Missing parameters")
		return
	}
	if h.Photos == nil || !h.Photos.Configured() {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "API key not configured")
		return
	}
	writeJSON(w, http.StatusOK, h.Photos.Photos(r.Context(), name, location))
}

func (h *Handlers) hotelPhotos(w http.ResponseWriter, r *http.Request) {
	hotel, ok := h.Catalog.ByID(chi.URLParam(r, "id"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "Hotel not found")
		return
	}
	if h.Photos == nil {
		writeJSON(w, http.StatusOK, map[string]any{"photos": []string{}})
		return
	}
	writeJSON(w, http.StatusOK, h.Photos.ForHotel(r.Context(), hotel))
}
