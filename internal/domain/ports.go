package domain

import (
	"context"
	"io"
	"io/fs"
)

type AccountRepository interface {
	CreateAccount(ctx context.Context, email, passwordHash, name string) (Account, error)
	AccountByEmail(ctx context.Context, email string) (Account, error)
	AccountByID(ctx context.Context, id string) (Account, error)
	SetAdmin(ctx context.Context, id string, admin bool) error
	ListAdmins(ctx context.Context) ([]Person, error)
}

type JourneyRepository interface {
	CreateJourney(ctx context.Context, in NewJourney) (Journey, error)
	ListJourneys(ctx context.Context) ([]JourneyView, error)
	GetJourney(ctx context.Context, id string) (JourneyView, error)
	SetJourneyStatus(ctx context.Context, id string, st JourneyStatus) error
	AssignJourney(ctx context.Context, id string, assignee *string) error
	DeleteJourney(ctx context.Context, id string) error

	ListNotes(ctx context.Context, journeyID string) ([]Note, error)
	CreateNote(ctx context.Context, journeyID, adminID, content string) (Note, error)
	UpdateNote(ctx context.Context, journeyID, noteID, content string) (Note, error)
	DeleteNote(ctx context.Context, journeyID, noteID string) error

	ListFiles(ctx context.Context, journeyID string) ([]File, error)
	CreateFile(ctx context.Context, f File) (File, error)
	GetFile(ctx context.Context, journeyID, fileID string) (File, error)
	DeleteFile(ctx context.Context, journeyID, fileID string) error
}

// Store is everything the services need from persistence.
type Store interface {
	AccountRepository
	JourneyRepository
}

// BlobStore persists uploaded bytes and hands back a locator.
// Remote stores return absolute URLs, local stores return relative paths.
type BlobStore interface {
	Put(ctx context.Context, journeyID, filename, contentType string, r io.Reader) (string, error)
	Open(ctx context.Context, locator string) (io.ReadCloser, error)
	Delete(ctx context.Context, locator string) error
	Kind() string
}

// PhotoLookup resolves a free-text place query to photo URLs.
type PhotoLookup interface {
	Photos(ctx context.Context, query string) (PlacePhotos, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// GeoSource yields the raw collection files in catalog order.
type GeoSource interface {
	FS() fs.FS
	Collections() []string
}

type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) (bool, error)
}

type SessionIssuer interface {
	Issue(accountID, email string) (string, error)
}
