//go:build integration || !unit

package sqlstore_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"boutique_hotel/internal/domain"
	"boutique_hotel/internal/storage/sqlstore"
)

func pstr(s string) *string { return &s }

// Runs against a throwaway MySQL container. Skipped when Docker is not reachable.
func TestRepo_MySQL_JourneyLifecycle(t *testing.T) {
	if os.Getenv("SKIP_DOCKER_TESTS") != "" {
		t.Skip("SKIP_DOCKER_TESTS set")
	}
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not reachable: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=boutique",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?charset=utf8mb4&loc=UTC", "root", hostPort, "boutique")

	ctx := context.Background()
	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sqlstore.Open(ctx, sqlstore.DriverMySQL, dsn)
		return e
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := sqlstore.Migrate(ctx, db, sqlstore.DriverMySQL); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := sqlstore.New(db)

	owner, err := repo.CreateAccount(ctx, "owner@example.com", "h", "Owner")
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if _, err := repo.CreateAccount(ctx, "owner@example.com", "h", "Again"); err != domain.ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	admin, err := repo.CreateAccount(ctx, "admin@example.com", "h", "Admin")
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if err := repo.SetAdmin(ctx, admin.ID, true); err != nil {
		t.Fatalf("SetAdmin: %v", err)
	}

	j, err := repo.CreateJourney(ctx, domain.NewJourney{UserID: owner.ID, Destination: pstr("March")})
	if err != nil {
		t.Fatalf("CreateJourney: %v", err)
	}
	if err := repo.AssignJourney(ctx, j.ID, &admin.ID); err != nil {
		t.Fatalf("AssignJourney: %v", err)
	}
	// repeating the same value must not look like a missing row
	if err := repo.AssignJourney(ctx, j.ID, &admin.ID); err != nil {
		t.Fatalf("AssignJourney again: %v", err)
	}
	if _, err := repo.CreateNote(ctx, j.ID, admin.ID, "called"); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if _, err := repo.CreateFile(ctx, domain.File{
		JourneyID: j.ID, AdminID: admin.ID, Filename: "a.pdf", Locator: "https://blob.example/a.pdf",
		FileType: "application/pdf", FileSize: 3,
	}); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	v, err := repo.GetJourney(ctx, j.ID)
	if err != nil {
		t.Fatalf("GetJourney: %v", err)
	}
	if v.AssignedAdmin == nil || v.AssignedAdmin.Email != "admin@example.com" || *v.Destination != "March" {
		t.Fatalf("unexpected view: %+v", v)
	}

	if err := repo.DeleteJourney(ctx, j.ID); err != nil {
		t.Fatalf("DeleteJourney: %v", err)
	}
	notes, _ := repo.ListNotes(ctx, j.ID)
	files, _ := repo.ListFiles(ctx, j.ID)
	if len(notes) != 0 || len(files) != 0 {
		t.Fatalf("cascade failed: notes=%d files=%d", len(notes), len(files))
	}
}
