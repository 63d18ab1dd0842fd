package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"boutique_hotel/internal/domain"
)

const localPrefix = "/uploads/journeys/"

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// Local writes uploads below <root>/uploads/journeys/<journeyID>/ and hands
// out root-relative locators such as /uploads/journeys/<id>/<ts>-<name>.
type Local struct {
	root string
	now  func() time.Time
}

func NewLocal(root string) *Local {
	if root == "" {
		root = "public"
	}
	return &Local{root: root, now: time.Now}
}

func (l *Local) Kind() string { return "local" }

func (l *Local) Put(_ context.Context, journeyID, filename, _ string, r io.Reader) (string, error) {
	if journeyID == "" || strings.ContainsAny(journeyID, `/\`) || journeyID == "." || journeyID == ".." {
		return "", fmt.Errorf("local blob: bad journey id %q", journeyID)
	}
	dir := filepath.Join(l.root, "uploads", "journeys", journeyID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("local blob: mkdir: %w", err)
	}

	name := strconv.FormatInt(l.now().UnixMilli(), 10) + "-" + unsafeName.ReplaceAllString(filename, "_")
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("local blob: create: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("local blob: write: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("local blob: close: %w", err)
	}
	return localPrefix + journeyID + "/" + name, nil
}

func (l *Local) Open(_ context.Context, locator string) (io.ReadCloser, error) {
	p, err := l.resolve(locator)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrBlobMissing
	}
	return f, err
}

// Delete removes the file; a file that is already gone is not an error.
func (l *Local) Delete(_ context.Context, locator string) error {
	p, err := l.resolve(locator)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("local blob: remove: %w", err)
	}
	return nil
}

// resolve maps a locator onto the upload tree and refuses anything outside it.
func (l *Local) resolve(locator string) (string, error) {
	clean := path.Clean("/" + strings.TrimPrefix(locator, "/"))
	if !strings.HasPrefix(clean, localPrefix) {
		return "", fmt.Errorf("local blob: locator outside upload dir: %q", locator)
	}
	return filepath.Join(l.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}
