package app

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"boutique_hotel/internal/adapters/observability"
	"boutique_hotel/internal/adapters/sanitize"
	"boutique_hotel/internal/domain"
)

// MaxUploadBytes is the per-file attachment limit (10 MiB).
const MaxUploadBytes = 10 << 20

// allowedFileTypes: PDF, JPEG, PNG, GIF, DOC, DOCX, XLS, XLSX.
var allowedFileTypes = map[string]struct{}{
	"application/pdf":    {},
	"image/jpeg":         {},
	"image/png":          {},
	"image/gif":          {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {},
}

func AllowedFileType(mime string) bool {
	_, ok := allowedFileTypes[mime]
	return ok
}

// SubmitInput is the traveller's inquiry as received.
type SubmitInput struct {
	TravelStyle *string
	Destination *string
	Budget      *string
	Duration    *string
	Preferences *string
}

// Upload describes one incoming attachment. Size is the declared byte count.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Download is either a redirect (RedirectURL set) or a stream to copy.
type Download struct {
	File        domain.File
	RedirectURL string
	Body        io.ReadCloser
}

type JourneyService struct {
	store  domain.Store // nil when persistence is not configured
	local  domain.BlobStore
	remote domain.BlobStore // nil without an object-store token
	events domain.EventPublisher
	now    func() time.Time
}

// NewJourneyService wires the triage workflow. Uploads go to remote when it is
// set, otherwise to local; existing locators are served by whichever backend
// their shape names.
func NewJourneyService(store domain.Store, local, remote domain.BlobStore, events domain.EventPublisher) *JourneyService {
	return &JourneyService{store: store, local: local, remote: remote, events: events, now: time.Now}
}

func (s *JourneyService) ready() error {
	if s.store == nil {
		return domain.ErrUnavailable
	}
	return nil
}

func (s *JourneyService) publish(ctx context.Context, subject string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, subject, payload); err != nil {
		log.Warn().Err(err).Str("subject", subject).Msg("event publish failed")
	}
}

func (s *JourneyService) uploadTarget() domain.BlobStore {
	if s.remote != nil {
		return s.remote
	}
	return s.local
}

// Submit records a new inquiry in status pending for the session owner.
func (s *JourneyService) Submit(ctx context.Context, userID string, in SubmitInput) (domain.Journey, error) {
	if userID == "" {
		return domain.Journey{}, domain.ErrUnauthorized
	}
	if err := s.ready(); err != nil {
		return domain.Journey{}, err
	}
	if _, err := s.store.AccountByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Journey{}, domain.ErrUnauthorized
		}
		return domain.Journey{}, err
	}

	j, err := s.store.CreateJourney(ctx, domain.NewJourney{
		UserID:      userID,
		TravelStyle: sanitize.OptionalText(in.TravelStyle),
		Destination: sanitize.OptionalText(in.Destination),
		Budget:      sanitize.OptionalText(in.Budget),
		Duration:    sanitize.OptionalText(in.Duration),
		Preferences: sanitize.OptionalText(in.Preferences),
	})
	if err != nil {
		return domain.Journey{}, err
	}
	s.publish(ctx, domain.SubjectJourneySubmitted, domain.JourneySubmittedEvent{
		JourneyID: j.ID, UserID: userID, At: s.now().UTC(),
	})
	return j, nil
}

func (s *JourneyService) List(ctx context.Context) ([]domain.JourneyView, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.store.ListJourneys(ctx)
}

func (s *JourneyService) Detail(ctx context.Context, id string) (domain.JourneyDetail, error) {
	if err := s.ready(); err != nil {
		return domain.JourneyDetail{}, err
	}
	v, err := s.store.GetJourney(ctx, id)
	if err != nil {
		return domain.JourneyDetail{}, err
	}
	notes, err := s.store.ListNotes(ctx, id)
	if err != nil {
		return domain.JourneyDetail{}, err
	}
	files, err := s.store.ListFiles(ctx, id)
	if err != nil {
		return domain.JourneyDetail{}, err
	}
	return domain.JourneyDetail{Journey: v, Notes: notes, Files: files}, nil
}

// Assign sets or clears (nil or "") the responsible admin.
func (s *JourneyService) Assign(ctx context.Context, by domain.Admin, journeyID string, assignee *string) error {
	if strings.TrimSpace(journeyID) == "" {
		return domain.Invalid("Missing requestId")
	}
	if assignee != nil && strings.TrimSpace(*assignee) == "" {
		assignee = nil
	}
	if err := s.ready(); err != nil {
		return err
	}
	if assignee != nil {
		if _, err := s.store.AccountByID(ctx, *assignee); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.Invalid("Unknown assignee")
			}
			return err
		}
	}
	if err := s.store.AssignJourney(ctx, journeyID, assignee); err != nil {
		return err
	}
	s.publish(ctx, domain.SubjectJourneyAssigned, domain.JourneyAssignedEvent{
		JourneyID: journeyID, AssignedTo: assignee, By: by.ID, At: s.now().UTC(),
	})
	return nil
}

// UpdateStatus validates the value before any mutation. Transitions are
// unconstrained.
func (s *JourneyService) UpdateStatus(ctx context.Context, by domain.Admin, journeyID, status string) error {
	if strings.TrimSpace(journeyID) == "" || status == "" {
		return domain.Invalid("Missing requestId or status")
	}
	st, ok := domain.ParseJourneyStatus(status)
	if !ok {
		return domain.Invalid("Invalid status")
	}
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.store.SetJourneyStatus(ctx, journeyID, st); err != nil {
		return err
	}
	s.publish(ctx, domain.SubjectJourneyStatusChanged, domain.JourneyStatusChangedEvent{
		JourneyID: journeyID, Status: st, By: by.ID, At: s.now().UTC(),
	})
	return nil
}

// DeleteJourney removes the journey with its notes and files. Stored bytes
// are removed best-effort; metadata goes regardless.
func (s *JourneyService) DeleteJourney(ctx context.Context, journeyID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	files, err := s.store.ListFiles(ctx, journeyID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteJourney(ctx, journeyID); err != nil {
		return err
	}
	for _, f := range files {
		if err := s.removeBlob(ctx, f); err != nil {
			log.Warn().Err(err).Str("journey", journeyID).Str("file", f.ID).Msg("blob cleanup failed")
		}
	}
	return nil
}

// ---- notes ----

func (s *JourneyService) Notes(ctx context.Context, journeyID string) ([]domain.Note, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.store.ListNotes(ctx, journeyID)
}

func noteContent(raw string) (string, error) {
	c := sanitize.Note(raw)
	if c == "" {
		return "", domain.Invalid("Content is required")
	}
	return c, nil
}

func (s *JourneyService) AddNote(ctx context.Context, by domain.Admin, journeyID, content string) (domain.Note, error) {
	c, err := noteContent(content)
	if err != nil {
		return domain.Note{}, err
	}
	if err := s.ready(); err != nil {
		return domain.Note{}, err
	}
	return s.store.CreateNote(ctx, journeyID, by.ID, c)
}

// EditNote may be used by any admin, not only the author.
func (s *JourneyService) EditNote(ctx context.Context, journeyID, noteID, content string) (domain.Note, error) {
	c, err := noteContent(content)
	if err != nil {
		return domain.Note{}, err
	}
	if err := s.ready(); err != nil {
		return domain.Note{}, err
	}
	return s.store.UpdateNote(ctx, journeyID, noteID, c)
}

func (s *JourneyService) DeleteNote(ctx context.Context, journeyID, noteID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.store.DeleteNote(ctx, journeyID, noteID)
}

// ---- files ----

func (s *JourneyService) Files(ctx context.Context, journeyID string) ([]domain.File, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.store.ListFiles(ctx, journeyID)
}

// ValidateUpload runs before anything is written.
func ValidateUpload(u *Upload) error {
	if u == nil || u.Body == nil || u.Filename == "" {
		return domain.Invalid("No file provided")
	}
	if u.Size > MaxUploadBytes {
		return domain.Invalid("File too large (max 10MB)")
	}
	if !AllowedFileType(u.ContentType) {
		return domain.Invalid("Invalid file type")
	}
	return nil
}

func (s *JourneyService) UploadFile(ctx context.Context, by domain.Admin, journeyID string, u *Upload) (domain.File, error) {
	target := s.uploadTarget()
	if err := ValidateUpload(u); err != nil {
		observability.ObserveUpload(target.Kind(), "rejected")
		return domain.File{}, err
	}
	if err := s.ready(); err != nil {
		return domain.File{}, err
	}
	if _, err := s.store.GetJourney(ctx, journeyID); err != nil {
		return domain.File{}, err
	}

	// the declared size is not trusted for the write itself
	body := &countingReader{r: io.LimitReader(u.Body, MaxUploadBytes+1)}
	loc, err := target.Put(ctx, journeyID, u.Filename, u.ContentType, body)
	if err != nil {
		observability.ObserveUpload(target.Kind(), "failed")
		return domain.File{}, err
	}
	if body.n > MaxUploadBytes {
		observability.ObserveUpload(target.Kind(), "rejected")
		if derr := target.Delete(ctx, loc); derr != nil {
			log.Warn().Err(derr).Str("locator", loc).Msg("oversized upload cleanup failed")
		}
		return domain.File{}, domain.Invalid("File too large (max 10MB)")
	}

	f, err := s.store.CreateFile(ctx, domain.File{
		JourneyID: journeyID,
		AdminID:   by.ID,
		Filename:  u.Filename,
		Locator:   loc,
		FileType:  u.ContentType,
		FileSize:  body.n,
	})
	if err != nil {
		observability.ObserveUpload(target.Kind(), "failed")
		return domain.File{}, err
	}
	observability.ObserveUpload(target.Kind(), "stored")
	return f, nil
}

// OpenFile resolves a stored file: remote locators become a redirect, local
// ones are opened for streaming (ErrBlobMissing if the bytes are gone).
func (s *JourneyService) OpenFile(ctx context.Context, journeyID, fileID string) (Download, error) {
	if err := s.ready(); err != nil {
		return Download{}, err
	}
	f, err := s.store.GetFile(ctx, journeyID, fileID)
	if err != nil {
		return Download{}, err
	}
	if f.IsRemote() {
		return Download{File: f, RedirectURL: f.Locator}, nil
	}
	rc, err := s.local.Open(ctx, f.Locator)
	if err != nil {
		return Download{}, err
	}
	return Download{File: f, Body: rc}, nil
}

// DeleteFile removes the stored bytes, then the metadata.
func (s *JourneyService) DeleteFile(ctx context.Context, journeyID, fileID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	f, err := s.store.GetFile(ctx, journeyID, fileID)
	if err != nil {
		return err
	}
	if err := s.removeBlob(ctx, f); err != nil {
		return err
	}
	return s.store.DeleteFile(ctx, journeyID, fileID)
}

func (s *JourneyService) removeBlob(ctx context.Context, f domain.File) error {
	if !f.IsRemote() {
		return s.local.Delete(ctx, f.Locator)
	}
	if s.remote == nil {
		log.Warn().Str("file", f.ID).Msg("remote file but no object-store token; leaving object in place")
		return nil
	}
	return s.remote.Delete(ctx, f.Locator)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
