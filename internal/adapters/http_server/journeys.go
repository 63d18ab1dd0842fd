package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"boutique_hotel/internal/app"
	"boutique_hotel/internal/domain"
)

// looseString accepts a JSON string or number; guests arrives as either.
type looseString struct{ v *string }

func (l *looseString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		l.v = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		l.v = &s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	s = n.String()
	l.v = &s
	return nil
}

type submitRequest struct {
	TravelStyle looseString `json:"travelStyle"`
	TravelDate  looseString `json:"travelDate"`
	Guests      looseString `json:"guests"`
	Budget      looseString `json:"budget"`
	Preferences looseString `json:"preferences"`
}

// submitJourney keeps the stored column mapping: travelDate is kept as the
// destination and guests as the duration.
func (h *Handlers) submitJourney(w http.ResponseWriter, r *http.Request) {
	if _, ok := sessionFrom(r.Context()); !ok {
		writeError(w, "submit journey", domain.ErrUnauthorized)
		return
	}
	var in submitRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, "submit journey", err)
		return
	}
	j, err := h.Journeys.Submit(r.Context(), accountID(r.Context()), app.SubmitInput{
		TravelStyle: in.TravelStyle.v,
		Destination: in.TravelDate.v,
		Budget:      in.Budget.v,
		Duration:    in.Guests.v,
		Preferences: in.Preferences.v,
	})
	if err != nil {
		writeError(w, "submit journey", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "requestId": j.ID})
}

func (h *Handlers) listJourneys(w http.ResponseWriter, r *http.Request) {
	list, err := h.Journeys.List(r.Context())
	if err != nil {
		writeError(w, "list journeys", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"requests": list})
}

func (h *Handlers) journeyDetail(w http.ResponseWriter, r *http.Request) {
	d, err := h.Journeys.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "journey detail", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

type assignRequest struct {
	RequestID  string  `json:"requestId"`
	AssignedTo *string `json:"assignedTo"`
}

func (h *Handlers) assignJourney(w http.ResponseWriter, r *http.Request) {
	var in assignRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, "assign journey", err)
		return
	}
	if err := h.Journeys.Assign(r.Context(), adminFrom(r.Context()), in.RequestID, in.AssignedTo); err != nil {
		writeError(w, "assign journey", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type statusRequest struct {
	RequestID string `json:"requestId"`
	Status    string `json:"status"`
}

func (h *Handlers) updateStatus(w http.ResponseWriter, r *http.Request) {
	var in statusRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, "update status", err)
		return
	}
	if err := h.Journeys.UpdateStatus(r.Context(), adminFrom(r.Context()), in.RequestID, in.Status); err != nil {
		writeError(w, "update status", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ---- notes ----

type noteRequest struct {
	Content string `json:"content"`
}

func (h *Handlers) listNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.Journeys.Notes(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "list notes", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

func (h *Handlers) addNote(w http.ResponseWriter, r *http.Request) {
	var in noteRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, "add note", err)
		return
	}
	n, err := h.Journeys.AddNote(r.Context(), adminFrom(r.Context()), chi.URLParam(r, "id"), in.Content)
	if err != nil {
		writeError(w, "add note", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"note": n})
}

func (h *Handlers) editNote(w http.ResponseWriter, r *http.Request) {
	var in noteRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, "edit note", err)
		return
	}
	n, err := h.Journeys.EditNote(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "noteId"), in.Content)
	if err != nil {
		writeError(w, "edit note", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"note": n})
}

func (h *Handlers) deleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.Journeys.DeleteNote(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "noteId")); err != nil {
		writeError(w, "delete note", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
