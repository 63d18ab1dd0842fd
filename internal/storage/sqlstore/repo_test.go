package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boutique_hotel/internal/domain"
)

func pstr(s string) *string { return &s }

// newTestRepo opens a file-backed SQLite database with a clock that advances
// one second per call, so newest-first ordering is deterministic.
func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(ctx, db, DriverSQLite))
	// second run must be a no-op
	require.NoError(t, Migrate(ctx, db, DriverSQLite))

	r := New(db)
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return r
}

func TestAccounts(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	a, err := r.CreateAccount(ctx, "ana@example.com", "hash", "Ana")
	require.NoError(t, err)
	assert.False(t, a.IsAdmin)

	_, err = r.CreateAccount(ctx, "ana@example.com", "hash2", "Other Ana")
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := r.AccountByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	_, err = r.AccountByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	admins, err := r.ListAdmins(ctx)
	require.NoError(t, err)
	assert.Empty(t, admins)

	require.NoError(t, r.SetAdmin(ctx, a.ID, true))
	got, err = r.AccountByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)

	admins, err = r.ListAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Person{{ID: a.ID, Name: "Ana", Email: "ana@example.com"}}, admins)

	assert.ErrorIs(t, r.SetAdmin(ctx, "missing", true), domain.ErrNotFound)
}

func TestJourneys_ListDetailAssignStatus(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	owner, err := r.CreateAccount(ctx, "owner@example.com", "h", "Owner")
	require.NoError(t, err)
	admin, err := r.CreateAccount(ctx, "admin@example.com", "h", "Admin")
	require.NoError(t, err)

	first, err := r.CreateJourney(ctx, domain.NewJourney{UserID: owner.ID, TravelStyle: pstr("Romantic")})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, first.Status)
	second, err := r.CreateJourney(ctx, domain.NewJourney{UserID: owner.ID, Budget: pstr("5000")})
	require.NoError(t, err)

	list, err := r.ListJourneys(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, "Owner", *list[0].UserName)
	assert.Equal(t, "owner@example.com", *list[0].UserEmail)
	assert.Nil(t, list[0].TravelStyle)

	require.NoError(t, r.AssignJourney(ctx, first.ID, &admin.ID))
	require.NoError(t, r.SetJourneyStatus(ctx, first.ID, domain.StatusContacted))
	// unconstrained transitions, including back to pending
	require.NoError(t, r.SetJourneyStatus(ctx, first.ID, domain.StatusPending))
	require.NoError(t, r.SetJourneyStatus(ctx, first.ID, domain.StatusReviewed))
	// same value twice still succeeds
	require.NoError(t, r.SetJourneyStatus(ctx, first.ID, domain.StatusReviewed))

	v, err := r.GetJourney(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReviewed, v.Status)
	require.NotNil(t, v.AssignedAdmin)
	assert.Equal(t, domain.Person{ID: admin.ID, Name: "Admin", Email: "admin@example.com"}, *v.AssignedAdmin)

	require.NoError(t, r.AssignJourney(ctx, first.ID, nil))
	v, err = r.GetJourney(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, v.AssignedTo)
	assert.Nil(t, v.AssignedAdmin)

	_, err = r.GetJourney(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.SetJourneyStatus(ctx, "missing", domain.StatusReviewed), domain.ErrNotFound)
	assert.ErrorIs(t, r.AssignJourney(ctx, "missing", nil), domain.ErrNotFound)
}

func TestNotes_ScopedByJourney(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	owner, _ := r.CreateAccount(ctx, "o@example.com", "h", "Owner")
	admin, _ := r.CreateAccount(ctx, "a@example.com", "h", "Admin")
	j1, err := r.CreateJourney(ctx, domain.NewJourney{UserID: owner.ID})
	require.NoError(t, err)
	j2, err := r.CreateJourney(ctx, domain.NewJourney{UserID: owner.ID})
	require.NoError(t, err)

	n1, err := r.CreateNote(ctx, j1.ID, admin.ID, "first")
	require.NoError(t, err)
	assert.Equal(t, "Admin", *n1.AdminName)
	n2, err := r.CreateNote(ctx, j1.ID, admin.ID, "second")
	require.NoError(t, err)

	notes, err := r.ListNotes(ctx, j1.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, n2.ID, notes[0].ID)

	upd, err := r.UpdateNote(ctx, j1.ID, n1.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", upd.Content)
	assert.True(t, upd.UpdatedAt.After(n1.UpdatedAt))
	assert.Equal(t, n1.CreatedAt, upd.CreatedAt)

	// a note id under a different journey is not found
	_, err = r.UpdateNote(ctx, j2.ID, n1.ID, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, r.DeleteNote(ctx, j2.ID, n1.ID))
	notes, _ = r.ListNotes(ctx, j1.ID)
	assert.Len(t, notes, 2, "mismatched delete must not remove anything")

	require.NoError(t, r.DeleteNote(ctx, j1.ID, n1.ID))
	notes, _ = r.ListNotes(ctx, j1.ID)
	assert.Len(t, notes, 1)

	_, err = r.CreateNote(ctx, "missing", admin.ID, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFiles_AndCascadeDelete(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	owner, _ := r.CreateAccount(ctx, "o@example.com", "h", "Owner")
	admin, _ := r.CreateAccount(ctx, "a@example.com", "h", "Admin")
	j, err := r.CreateJourney(ctx, domain.NewJourney{UserID: owner.ID})
	require.NoError(t, err)

	f, err := r.CreateFile(ctx, domain.File{
		JourneyID: j.ID, AdminID: admin.ID, Filename: "plan.pdf",
		Locator: "/uploads/journeys/" + j.ID + "/1-plan.pdf", FileType: "application/pdf", FileSize: 42,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, f.ID)
	assert.Equal(t, "Admin", *f.AdminName)
	assert.Equal(t, int64(42), f.FileSize)

	got, err := r.GetFile(ctx, j.ID, f.ID)
	require.NoError(t, err)
	assert.Equal(t, f.Locator, got.Locator)

	_, err = r.GetFile(ctx, "other", f.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.CreateNote(ctx, j.ID, admin.ID, "note")
	require.NoError(t, err)

	require.NoError(t, r.DeleteJourney(ctx, j.ID))
	files, err := r.ListFiles(ctx, j.ID)
	require.NoError(t, err)
	assert.Empty(t, files)
	notes, err := r.ListNotes(ctx, j.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)

	assert.ErrorIs(t, r.DeleteJourney(ctx, j.ID), domain.ErrNotFound)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "x")
	assert.Error(t, err)
}
