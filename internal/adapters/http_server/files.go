package httpserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"boutique_hotel/internal/app"
	"boutique_hotel/internal/domain"
)

// multipart framing on top of the file itself
const uploadSlack = 1 << 20

func (h *Handlers) listFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.Journeys.Files(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "list files", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

func (h *Handlers) uploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, app.MaxUploadBytes+uploadSlack)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, "upload file", domain.Invalid("File too large (max 10MB)"))
			return
		}
		writeError(w, "upload file", domain.Invalid("No file provided"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	var up *app.Upload
	f, hdr, err := r.FormFile("file")
	if err == nil {
		defer f.Close()
		up = &app.Upload{
			Filename:    hdr.Filename,
			ContentType: hdr.Header.Get("Content-Type"),
			Size:        hdr.Size,
			Body:        f,
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		writeError(w, "upload file", err)
		return
	}

	file, err := h.Journeys.UploadFile(r.Context(), adminFrom(r.Context()), chi.URLParam(r, "id"), up)
	if err != nil {
		writeError(w, "upload file", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"file": file})
}

// downloadFile redirects for object-store locators and streams local ones.
func (h *Handlers) downloadFile(w http.ResponseWriter, r *http.Request) {
	dl, err := h.Journeys.OpenFile(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "fileId"))
	if err != nil {
		writeError(w, "download file", err)
		return
	}
	if dl.RedirectURL != "" {
		http.Redirect(w, r, dl.RedirectURL, http.StatusFound)
		return
	}
	defer dl.Body.Close()

	w.Header().Set("Content-Type", dl.File.FileType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, headerSafe(dl.File.Filename)))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, dl.Body); err != nil {
		log.Warn().Err(err).Str("file", dl.File.ID).Msg("download interrupted")
	}
}

func (h *Handlers) deleteFile(w http.ResponseWriter, r *http.Request) {
	if err := h.Journeys.DeleteFile(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "fileId")); err != nil {
		writeError(w, "delete file", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

var headerReplacer = strings.NewReplacer(`"`, "", "\r", "", "\n", "", `\`, "")

func headerSafe(name string) string { return headerReplacer.Replace(name) }
