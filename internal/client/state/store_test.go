package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ogurasousui/employee-directory/internal/client/api"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

func sampleEmployees() []api.Employee {
	return []api.Employee{
		{ID: 1, Name: "Ann Lee", Email: "ann@x.com", Position: "Engineer"},
		{ID: 2, Name: "Bob Roy", Email: "bob@x.com", Position: "Manager"},
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	clock := &stubClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	store := NewStore(filepath.Join(t.TempDir(), "snapshot.json"), clock)

	if err := store.Save(sampleEmployees()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, ok := store.Load()
	if !ok {
		t.Fatal("expected fresh snapshot to load")
	}
	if len(loaded) != 2 || loaded[0].Name != "Ann Lee" {
		t.Errorf("unexpected snapshot contents: %+v", loaded)
	}
}

func TestStore_ExpiredSnapshotIsIgnored(t *testing.T) {
	t.Parallel()

	clock := &stubClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	store := NewStore(filepath.Join(t.TempDir(), "snapshot.json"), clock)

	if err := store.Save(sampleEmployees()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	clock.now = clock.now.Add(SnapshotTTL + time.Second)

	if _, ok := store.Load(); ok {
		t.Fatal("expected expired snapshot to be ignored")
	}
}

func TestStore_SnapshotAtTTLBoundaryIsValid(t *testing.T) {
	t.Parallel()

	clock := &stubClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	store := NewStore(filepath.Join(t.TempDir(), "snapshot.json"), clock)

	if err := store.Save(sampleEmployees()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	clock.now = clock.now.Add(SnapshotTTL)

	if _, ok := store.Load(); !ok {
		t.Fatal("snapshot exactly at the TTL boundary should still be valid")
	}
}

func TestStore_CorruptFileIsCacheMiss(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	store := NewStore(path, nil)
	if _, ok := store.Load(); ok {
		t.Fatal("expected corrupt snapshot to be treated as cache miss")
	}
}

func TestStore_MissingFileIsCacheMiss(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "missing.json"), nil)
	if _, ok := store.Load(); ok {
		t.Fatal("expected missing snapshot to be treated as cache miss")
	}
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "snapshot.json"), nil)
	if err := store.Save(sampleEmployees()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, ok := store.Load(); ok {
		t.Fatal("expected cleared snapshot to be gone")
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear of missing file returned error: %v", err)
	}
}
