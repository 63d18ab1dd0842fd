package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"boutique_hotel/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func millis(t time.Time) int64 { return t.UnixMilli() }

func fromMillis(v int64) time.Time { return time.UnixMilli(v).UTC() }

// isUniqueViolation recognises duplicate-key errors from both drivers.
func isUniqueViolation(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

type Repo struct {
	db    *sql.DB
	now   func() time.Time
	newID func() string
}

func New(db *sql.DB) *Repo {
	return &Repo{db: db, now: time.Now, newID: uuid.NewString}
}

// -----------------------------------------------------------------------------
// ACCOUNTS
// -----------------------------------------------------------------------------

func (r *Repo) CreateAccount(ctx context.Context, email, passwordHash, name string) (domain.Account, error) {
	a := domain.Account{
		ID:           r.newID(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    fromMillis(millis(r.now())),
	}
	if _, err := r.db.ExecContext(ctx, insertAccountSQL, a.ID, a.Email, a.PasswordHash, a.Name, millis(a.CreatedAt)); err != nil {
		if isUniqueViolation(err) {
			return domain.Account{}, domain.ErrConflict
		}
		return domain.Account{}, err
	}
	return a, nil
}

func (r *Repo) scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account
	var created int64
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.IsAdmin, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.NotFound("Account")
		}
		return domain.Account{}, err
	}
	a.CreatedAt = fromMillis(created)
	return a, nil
}

func (r *Repo) AccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	return r.scanAccount(r.db.QueryRowContext(ctx, accountByEmailSQL, email))
}

func (r *Repo) AccountByID(ctx context.Context, id string) (domain.Account, error) {
	return r.scanAccount(r.db.QueryRowContext(ctx, accountByIDSQL, id))
}

func (r *Repo) SetAdmin(ctx context.Context, id string, admin bool) error {
	if _, err := r.AccountByID(ctx, id); err != nil {
		return err
	}
	flag := 0
	if admin {
		flag = 1
	}
	_, err := r.db.ExecContext(ctx, setAdminSQL, flag, id)
	return err
}

func (r *Repo) ListAdmins(ctx context.Context) ([]domain.Person, error) {
	rows, err := r.db.QueryContext(ctx, listAdminsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Person{}
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Email); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------
// JOURNEYS
// -----------------------------------------------------------------------------

func (r *Repo) CreateJourney(ctx context.Context, in domain.NewJourney) (domain.Journey, error) {
	j := domain.Journey{
		ID:          r.newID(),
		UserID:      in.UserID,
		TravelStyle: in.TravelStyle,
		Destination: in.Destination,
		Budget:      in.Budget,
		Duration:    in.Duration,
		Preferences: in.Preferences,
		Status:      domain.StatusPending,
		CreatedAt:   fromMillis(millis(r.now())),
	}
	_, err := r.db.ExecContext(ctx, insertJourneySQL,
		j.ID,
		j.UserID,
		valStr(j.TravelStyle),
		valStr(j.Destination),
		valStr(j.Budget),
		valStr(j.Duration),
		valStr(j.Preferences),
		millis(j.CreatedAt),
	)
	if err != nil {
		return domain.Journey{}, err
	}
	return j, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJourneyView(s rowScanner) (domain.JourneyView, error) {
	var v domain.JourneyView
	var (
		style, dest, budget, dur, prefs sql.NullString
		status                          string
		assigned                        sql.NullString
		created                         int64
		ownerName, ownerEmail           sql.NullString
		adminID, adminName, adminEmail  sql.NullString
	)
	if err := s.Scan(
		&v.ID, &v.UserID, &style, &dest, &budget, &dur, &prefs,
		&status, &assigned, &created,
		&ownerName, &ownerEmail,
		&adminID, &adminName, &adminEmail,
	); err != nil {
		return domain.JourneyView{}, err
	}
	v.TravelStyle = strPtr(style)
	v.Destination = strPtr(dest)
	v.Budget = strPtr(budget)
	v.Duration = strPtr(dur)
	v.Preferences = strPtr(prefs)
	v.Status = domain.JourneyStatus(status)
	v.AssignedTo = strPtr(assigned)
	v.CreatedAt = fromMillis(created)
	v.UserName = strPtr(ownerName)
	v.UserEmail = strPtr(ownerEmail)
	if adminID.Valid {
		v.AssignedAdmin = &domain.Person{ID: adminID.String, Name: adminName.String, Email: adminEmail.String}
	}
	return v, nil
}

func (r *Repo) ListJourneys(ctx context.Context) ([]domain.JourneyView, error) {
	rows, err := r.db.QueryContext(ctx, listJourneysSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.JourneyView{}
	for rows.Next() {
		v, err := scanJourneyView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *Repo) GetJourney(ctx context.Context, id string) (domain.JourneyView, error) {
	v, err := scanJourneyView(r.db.QueryRowContext(ctx, getJourneySQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.JourneyView{}, domain.NotFound("Journey")
	}
	return v, err
}

// journeyExists guards updates: MySQL reports zero affected rows when the
// new value equals the old one, so RowsAffected cannot signal absence.
func (r *Repo) journeyExists(ctx context.Context, id string) error {
	var one int
	err := r.db.QueryRowContext(ctx, journeyExistsSQL, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFound("Journey")
	}
	return err
}

func (r *Repo) SetJourneyStatus(ctx context.Context, id string, st domain.JourneyStatus) error {
	if err := r.journeyExists(ctx, id); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, setJourneyStatusSQL, string(st), id)
	return err
}

func (r *Repo) AssignJourney(ctx context.Context, id string, assignee *string) error {
	if err := r.journeyExists(ctx, id); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, assignJourneySQL, valStr(assignee), id)
	return err
}

// DeleteJourney removes the journey; notes and files go with it (ON DELETE CASCADE).
func (r *Repo) DeleteJourney(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteJourneySQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("Journey")
	}
	return nil
}

// -----------------------------------------------------------------------------
// NOTES
// -----------------------------------------------------------------------------

func scanNote(s rowScanner) (domain.Note, error) {
	var n domain.Note
	var adminName sql.NullString
	var created, updated int64
	if err := s.Scan(&n.ID, &n.JourneyID, &n.AdminID, &adminName, &n.Content, &created, &updated); err != nil {
		return domain.Note{}, err
	}
	n.AdminName = strPtr(adminName)
	n.CreatedAt = fromMillis(created)
	n.UpdatedAt = fromMillis(updated)
	return n, nil
}

func (r *Repo) ListNotes(ctx context.Context, journeyID string) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx, listNotesSQL, journeyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *Repo) getNote(ctx context.Context, journeyID, noteID string) (domain.Note, error) {
	n, err := scanNote(r.db.QueryRowContext(ctx, getNoteSQL, noteID, journeyID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Note{}, domain.NotFound("Note")
	}
	return n, err
}

func (r *Repo) CreateNote(ctx context.Context, journeyID, adminID, content string) (domain.Note, error) {
	if err := r.journeyExists(ctx, journeyID); err != nil {
		return domain.Note{}, err
	}
	id := r.newID()
	now := millis(r.now())
	if _, err := r.db.ExecContext(ctx, insertNoteSQL, id, journeyID, adminID, content, now, now); err != nil {
		return domain.Note{}, err
	}
	return r.getNote(ctx, journeyID, id)
}

func (r *Repo) UpdateNote(ctx context.Context, journeyID, noteID, content string) (domain.Note, error) {
	if _, err := r.getNote(ctx, journeyID, noteID); err != nil {
		return domain.Note{}, err
	}
	if _, err := r.db.ExecContext(ctx, updateNoteSQL, content, millis(r.now()), noteID, journeyID); err != nil {
		return domain.Note{}, err
	}
	return r.getNote(ctx, journeyID, noteID)
}

// DeleteNote is unconditional: deleting an absent note is not an error.
func (r *Repo) DeleteNote(ctx context.Context, journeyID, noteID string) error {
	_, err := r.db.ExecContext(ctx, deleteNoteSQL, noteID, journeyID)
	return err
}

// -----------------------------------------------------------------------------
// FILES
// -----------------------------------------------------------------------------

func scanFile(s rowScanner) (domain.File, error) {
	var f domain.File
	var adminName sql.NullString
	var uploaded int64
	if err := s.Scan(&f.ID, &f.JourneyID, &f.AdminID, &adminName, &f.Filename, &f.Locator, &f.FileType, &f.FileSize, &uploaded); err != nil {
		return domain.File{}, err
	}
	f.AdminName = strPtr(adminName)
	f.UploadedAt = fromMillis(uploaded)
	return f, nil
}

func (r *Repo) ListFiles(ctx context.Context, journeyID string) ([]domain.File, error) {
	rows, err := r.db.QueryContext(ctx, listFilesSQL, journeyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.File{}
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repo) CreateFile(ctx context.Context, f domain.File) (domain.File, error) {
	f.ID = r.newID()
	f.UploadedAt = fromMillis(millis(r.now()))
	_, err := r.db.ExecContext(ctx, insertFileSQL,
		f.ID, f.JourneyID, f.AdminID, f.Filename, f.Locator, f.FileType, f.FileSize, millis(f.UploadedAt))
	if err != nil {
		return domain.File{}, err
	}
	return r.GetFile(ctx, f.JourneyID, f.ID)
}

func (r *Repo) GetFile(ctx context.Context, journeyID, fileID string) (domain.File, error) {
	f, err := scanFile(r.db.QueryRowContext(ctx, getFileSQL, fileID, journeyID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.File{}, domain.NotFound("File")
	}
	return f, err
}

func (r *Repo) DeleteFile(ctx context.Context, journeyID, fileID string) error {
	_, err := r.db.ExecContext(ctx, deleteFileSQL, fileID, journeyID)
	return err
}

var _ domain.Store = (*Repo)(nil)
