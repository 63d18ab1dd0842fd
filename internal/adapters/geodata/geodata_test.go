package geodata_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"boutique_hotel/internal/adapters/geodata"
)

func TestFromFS_DefaultOrder(t *testing.T) {
	src := geodata.FromFS(fstest.MapFS{})
	got := src.Collections()
	want := []string{"ver", "steden", "nederland", "wintersport", "europa_hotels"}
	if len(got) != len(want) {
		t.Fatalf("collections: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("collection %d: got %s want %s", i, got[i], want[i])
		}
	}

	// callers must not be able to reorder the source
	got[0] = "changed"
	if src.Collections()[0] != "ver" {
		t.Fatalf("Collections leaked internal slice")
	}
}

func TestDir_ReadsFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ver.geojson"), []byte(`{"type":"FeatureCollection","features":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	src := geodata.Dir(dir)
	f, err := src.FS().Open("ver.geojson")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_ = f.Close()
}

func TestWatcher_FiresOnGeoJSONWrite(t *testing.T) {
	dir := t.TempDir()
	var calls int32
	w, err := geodata.NewWatcher(dir, func() { atomic.AddInt32(&calls, 1) })
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// ignored: not a collection file
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "steden.geojson"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if atomic.LoadInt32(&calls) > 0 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("expected onChange after geojson write")
}
