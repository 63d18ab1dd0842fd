package httpserver

import (
	"net/http"
	"time"
)

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) signup(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, "signup", err)
		return
	}
	if _, err := h.Accounts.Signup(r.Context(), in.Name, in.Email, in.Password); err != nil {
		writeError(w, "signup", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User created successfully"})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, "login", err)
		return
	}
	tok, acc, err := h.Accounts.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		writeError(w, "login", err)
		return
	}
	ttl := 30 * 24 * time.Hour
	if h.Sessions != nil {
		ttl = h.Sessions.TTL()
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{"token": tok, "user": acc})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	acc, err := h.Accounts.Me(r.Context(), accountID(r.Context()))
	if err != nil {
		writeError(w, "me", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": acc})
}

// checkAdmin never fails; anything short of a confirmed admin is false.
func (h *Handlers) checkAdmin(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"isAdmin": h.Accounts.IsAdmin(r.Context(), accountID(r.Context()))})
}

func (h *Handlers) makeAdmin(w http.ResponseWriter, r *http.Request) {
	if err := h.Accounts.PromoteSelf(r.Context(), accountID(r.Context())); err != nil {
		writeError(w, "make admin", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handlers) listAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.Accounts.ListAdmins(r.Context())
	if err != nil {
		writeError(w, "list admins", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"admins": admins})
}
