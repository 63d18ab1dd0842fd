package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"boutique_hotel/internal/app"
)

type Handlers struct {
	Catalog  *app.CatalogService
	Accounts *app.AccountService
	Journeys *app.JourneyService
	Photos   *app.PhotoService
	Sessions SessionParser

	CookieSecure bool
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/api", func(r chi.Router) {
		r.Use(Session(h.Sessions))

		r.Group(func(r chi.Router) {
			r.Use(Timeout(s.timeout))

			r.Get("/hotels", h.listHotels)
			r.Get("/hotels/{id}", h.getHotel)
			r.Get("/hotels/{id}/photos", h.hotelPhotos)
			r.Get("/regions", h.listRegions)
			r.Get("/places/photos", h.placePhotos)

			r.Post("/auth/signup", h.signup)
			r.Post("/auth/login", h.login)
			r.Post("/auth/logout", h.logout)
			r.Get("/auth/me", h.me)

			r.Post("/journey/submit", h.submitJourney)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/check", h.checkAdmin)
				r.Post("/make-admin", h.makeAdmin)

				r.Group(func(r chi.Router) {
					r.Use(RequireAdmin(h.Accounts))

					r.Get("/journey-requests", h.listJourneys)
					r.Get("/list-admins", h.listAdmins)
					r.Patch("/assign-journey", h.assignJourney)
					r.Patch("/update-status", h.updateStatus)

					r.Get("/journeys/{id}", h.journeyDetail)
					r.Get("/journeys/{id}/notes", h.listNotes)
					r.Post("/journeys/{id}/notes", h.addNote)
					r.Patch("/journeys/{id}/notes/{noteId}", h.editNote)
					r.Delete("/journeys/{id}/notes/{noteId}", h.deleteNote)
				})
			})
		})

		// Attachments stream in both directions and stay outside Timeout,
		// which buffers the whole response.
		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin(h.Accounts))

			r.Get("/admin/journeys/{id}/files", h.listFiles)
			r.Post("/admin/journeys/{id}/files", h.uploadFile)
			r.Get("/admin/journeys/{id}/files/{fileId}", h.downloadFile)
			r.Delete("/admin/journeys/{id}/files/{fileId}", h.deleteFile)
		})
	})
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached writes v with a weak ETag and answers a matching
// If-None-Match with 304.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "internal error")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write cached body")
	}
}
