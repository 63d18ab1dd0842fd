package app_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"boutique_hotel/internal/domain"
)

func ptr[T any](v T) *T { return &v }

// memStore is an in-memory domain.Store.
type memStore struct {
	seq      int
	accounts map[string]domain.Account
	journeys map[string]domain.Journey
	notes    map[string]domain.Note
	files    map[string]domain.File
}

func newMemStore() *memStore {
	return &memStore{
		accounts: map[string]domain.Account{},
		journeys: map[string]domain.Journey{},
		notes:    map[string]domain.Note{},
		files:    map[string]domain.File{},
	}
}

func (m *memStore) next(prefix string) (string, time.Time) {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq), time.Unix(int64(m.seq), 0).UTC()
}

func (m *memStore) CreateAccount(ctx context.Context, email, hash, name string) (domain.Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return domain.Account{}, domain.ErrConflict
		}
	}
	id, ts := m.next("acc")
	a := domain.Account{ID: id, Email: email, PasswordHash: hash, Name: name, CreatedAt: ts}
	m.accounts[id] = a
	return a, nil
}

func (m *memStore) AccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return domain.Account{}, domain.NotFound("Account")
}

func (m *memStore) AccountByID(ctx context.Context, id string) (domain.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return domain.Account{}, domain.NotFound("Account")
	}
	return a, nil
}

func (m *memStore) SetAdmin(ctx context.Context, id string, admin bool) error {
	a, ok := m.accounts[id]
	if !ok {
		return domain.NotFound("Account")
	}
	a.IsAdmin = admin
	m.accounts[id] = a
	return nil
}

func (m *memStore) ListAdmins(ctx context.Context) ([]domain.Person, error) {
	out := []domain.Person{}
	for _, a := range m.accounts {
		if a.IsAdmin {
			out = append(out, domain.Person{ID: a.ID, Name: a.Name, Email: a.Email})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) CreateJourney(ctx context.Context, in domain.NewJourney) (domain.Journey, error) {
	id, ts := m.next("j")
	j := domain.Journey{
		ID: id, UserID: in.UserID, TravelStyle: in.TravelStyle, Destination: in.Destination,
		Budget: in.Budget, Duration: in.Duration, Preferences: in.Preferences,
		Status: domain.StatusPending, CreatedAt: ts,
	}
	m.journeys[id] = j
	return j, nil
}

func (m *memStore) view(j domain.Journey) domain.JourneyView {
	v := domain.JourneyView{Journey: j}
	if u, ok := m.accounts[j.UserID]; ok {
		v.UserName, v.UserEmail = ptr(u.Name), ptr(u.Email)
	}
	if j.AssignedTo != nil {
		if a, ok := m.accounts[*j.AssignedTo]; ok {
			v.AssignedAdmin = &domain.Person{ID: a.ID, Name: a.Name, Email: a.Email}
		}
	}
	return v
}

func (m *memStore) ListJourneys(ctx context.Context) ([]domain.JourneyView, error) {
	out := []domain.JourneyView{}
	for _, j := range m.journeys {
		out = append(out, m.view(j))
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (m *memStore) GetJourney(ctx context.Context, id string) (domain.JourneyView, error) {
	j, ok := m.journeys[id]
	if !ok {
		return domain.JourneyView{}, domain.NotFound("Journey")
	}
	return m.view(j), nil
}

func (m *memStore) SetJourneyStatus(ctx context.Context, id string, st domain.JourneyStatus) error {
	j, ok := m.journeys[id]
	if !ok {
		return domain.NotFound("Journey")
	}
	j.Status = st
	m.journeys[id] = j
	return nil
}

func (m *memStore) AssignJourney(ctx context.Context, id string, assignee *string) error {
	j, ok := m.journeys[id]
	if !ok {
		return domain.NotFound("Journey")
	}
	j.AssignedTo = assignee
	m.journeys[id] = j
	return nil
}

func (m *memStore) DeleteJourney(ctx context.Context, id string) error {
	if _, ok := m.journeys[id]; !ok {
		return domain.NotFound("Journey")
	}
	delete(m.journeys, id)
	for k, n := range m.notes {
		if n.JourneyID == id {
			delete(m.notes, k)
		}
	}
	for k, f := range m.files {
		if f.JourneyID == id {
			delete(m.files, k)
		}
	}
	return nil
}

func (m *memStore) ListNotes(ctx context.Context, journeyID string) ([]domain.Note, error) {
	out := []domain.Note{}
	for _, n := range m.notes {
		if n.JourneyID == journeyID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (m *memStore) CreateNote(ctx context.Context, journeyID, adminID, content string) (domain.Note, error) {
	if _, ok := m.journeys[journeyID]; !ok {
		return domain.Note{}, domain.NotFound("Journey")
	}
	id, ts := m.next("n")
	n := domain.Note{ID: id, JourneyID: journeyID, AdminID: adminID, Content: content, CreatedAt: ts, UpdatedAt: ts}
	m.notes[id] = n
	return n, nil
}

func (m *memStore) UpdateNote(ctx context.Context, journeyID, noteID, content string) (domain.Note, error) {
	n, ok := m.notes[noteID]
	if !ok || n.JourneyID != journeyID {
		return domain.Note{}, domain.NotFound("Note")
	}
	_, ts := m.next("t")
	n.Content, n.UpdatedAt = content, ts
	m.notes[noteID] = n
	return n, nil
}

func (m *memStore) DeleteNote(ctx context.Context, journeyID, noteID string) error {
	if n, ok := m.notes[noteID]; ok && n.JourneyID == journeyID {
		delete(m.notes, noteID)
	}
	return nil
}

func (m *memStore) ListFiles(ctx context.Context, journeyID string) ([]domain.File, error) {
	out := []domain.File{}
	for _, f := range m.files {
		if f.JourneyID == journeyID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].UploadedAt.After(out[k].UploadedAt) })
	return out, nil
}

func (m *memStore) CreateFile(ctx context.Context, f domain.File) (domain.File, error) {
	id, ts := m.next("f")
	f.ID, f.UploadedAt = id, ts
	m.files[id] = f
	return f, nil
}

func (m *memStore) GetFile(ctx context.Context, journeyID, fileID string) (domain.File, error) {
	f, ok := m.files[fileID]
	if !ok || f.JourneyID != journeyID {
		return domain.File{}, domain.NotFound("File")
	}
	return f, nil
}

func (m *memStore) DeleteFile(ctx context.Context, journeyID, fileID string) error {
	if f, ok := m.files[fileID]; ok && f.JourneyID == journeyID {
		delete(m.files, fileID)
	}
	return nil
}

// memBlob is a BlobStore keeping bytes in a map. Remote stores hand out
// https locators, local ones /uploads paths.
type memBlob struct {
	kind    string
	objects map[string][]byte
	puts    int
	deletes []string
}

func newMemBlob(kind string) *memBlob { return &memBlob{kind: kind, objects: map[string][]byte{}} }

func (b *memBlob) Kind() string { return b.kind }

func (b *memBlob) Put(ctx context.Context, journeyID, filename, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	b.puts++
	loc := fmt.Sprintf("/uploads/journeys/%s/%d-%s", journeyID, b.puts, filename)
	if b.kind == "remote" {
		loc = "https://blob.example" + loc
	}
	b.objects[loc] = data
	return loc, nil
}

func (b *memBlob) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	data, ok := b.objects[locator]
	if !ok {
		return nil, domain.ErrBlobMissing
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b *memBlob) Delete(ctx context.Context, locator string) error {
	b.deletes = append(b.deletes, locator)
	delete(b.objects, locator)
	return nil
}

type recordedEvent struct {
	Subject string
	Payload any
}

type fakeEvents struct {
	got []recordedEvent
	err error
}

func (f *fakeEvents) Publish(ctx context.Context, subject string, payload any) error {
	f.got = append(f.got, recordedEvent{subject, payload})
	return f.err
}

// plainHasher stores "hashed:<pw>" so tests stay fast.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Verify(p, h string) (bool, error) {
	if !strings.HasPrefix(h, "hashed:") {
		return false, fmt.Errorf("bad hash")
	}
	return h == "hashed:"+p, nil
}

type fakeSessions struct{}

func (fakeSessions) Issue(id, email string) (string, error) { return "token-for-" + id, nil }
