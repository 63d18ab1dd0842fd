package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"boutique_hotel/internal/domain"
)

// problem is application/problem+json. Error repeats Detail for clients that
// read a flat {error} body.
type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error"`
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	p := problem{Type: "about:blank", Title: title, Status: status, Detail: detail, Error: detail}
	if p.Error == "" {
		p.Error = title
	}
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps the domain taxonomy onto status codes. Anything unknown is
// a 500 with the cause logged under op.
func writeError(w http.ResponseWriter, op string, err error) {
	var (
		ve *domain.ValidationError
		nf *domain.NotFoundError
		ce *domain.ConflictError
	)
	switch {
	case errors.As(err, &ve):
		writeProblem(w, http.StatusBadRequest, "Bad Request", ve.Msg)
	case errors.As(err, &ce):
		writeProblem(w, http.StatusBadRequest, "Bad Request", ce.Msg)
	case errors.As(err, &nf):
		writeProblem(w, http.StatusNotFound, "Not Found", nf.Error())
	case errors.Is(err, domain.ErrValidation):
		writeProblem(w, http.StatusBadRequest, "Bad Request", "Invalid request")
	case errors.Is(err, domain.ErrUnauthorized):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "Unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeProblem(w, http.StatusForbidden, "Forbidden", "Forbidden - Admin only")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrDisabled):
		writeProblem(w, http.StatusNotFound, "Not Found", "Not found")
	case errors.Is(err, domain.ErrConflict):
		writeProblem(w, http.StatusBadRequest, "Bad Request", "Already exists")
	case errors.Is(err, domain.ErrUnavailable):
		writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", "Database not configured")
	default:
		log.Error().Err(err).Str("op", op).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// decodeJSON reads a small JSON body. Malformed input is a 400.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		return domain.Invalid("Invalid JSON body")
	}
	return nil
}
