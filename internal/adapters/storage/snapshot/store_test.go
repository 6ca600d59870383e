package snapshot_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"runclub/internal/adapters/storage"
	"runclub/internal/adapters/storage/snapshot"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init db: %v", err)
	}
	return db
}

// backends returns a named constructor for every Store implementation.
func backends(t *testing.T) map[string]snapshot.Store {
	t.Helper()
	fileStore, err := snapshot.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}
	return map[string]snapshot.Store{
		"sqlite": snapshot.NewSQLiteStore(openTestDB(t)),
		"file":   fileStore,
	}
}

// TestStore_SaveLoad tests persisting and retrieving a snapshot.
func TestStore_SaveLoad(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := store.Save(ctx, snapshot.KeyAccounts, []byte(`[{"id":"1"}]`)); err != nil {
				t.Fatalf("Save() failed: %v", err)
			}

			got, err := store.Load(ctx, snapshot.KeyAccounts)
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if string(got) != `[{"id":"1"}]` {
				t.Errorf("Load() = %s, want original blob", got)
			}
		})
	}
}

// TestStore_SaveReplaces tests that Save overwrites the previous value.
func TestStore_SaveReplaces(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := store.Save(ctx, snapshot.KeyRuns, []byte(`[]`)); err != nil {
				t.Fatalf("first Save() failed: %v", err)
			}
			if err := store.Save(ctx, snapshot.KeyRuns, []byte(`[{"id":"r1"}]`)); err != nil {
				t.Fatalf("second Save() failed: %v", err)
			}

			got, err := store.Load(ctx, snapshot.KeyRuns)
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if string(got) != `[{"id":"r1"}]` {
				t.Errorf("Load() = %s, want replaced blob", got)
			}
		})
	}
}

// TestStore_LoadMissing tests Load for a key that was never saved.
func TestStore_LoadMissing(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load(context.Background(), snapshot.KeySession)
			if !errors.Is(err, snapshot.ErrNotFound) {
				t.Errorf("Load() error = %v, want ErrNotFound", err)
			}
		})
	}
}

// TestStore_Delete tests removing a snapshot.
func TestStore_Delete(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := store.Save(ctx, snapshot.KeySession, []byte(`{}`)); err != nil {
				t.Fatalf("Save() failed: %v", err)
			}
			if err := store.Delete(ctx, snapshot.KeySession); err != nil {
				t.Fatalf("Delete() failed: %v", err)
			}

			if _, err := store.Load(ctx, snapshot.KeySession); !errors.Is(err, snapshot.ErrNotFound) {
				t.Errorf("Load() after Delete() error = %v, want ErrNotFound", err)
			}
		})
	}
}

// TestStore_DeleteMissing tests that deleting an absent key is not an error.
func TestStore_DeleteMissing(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Delete(context.Background(), "never-saved"); err != nil {
				t.Errorf("Delete() of missing key failed: %v", err)
			}
		})
	}
}

// TestStore_KeysAreIndependent tests that keys do not interfere.
func TestStore_KeysAreIndependent(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := store.Save(ctx, snapshot.KeyAccounts, []byte(`["a"]`)); err != nil {
				t.Fatalf("Save(accounts) failed: %v", err)
			}
			if err := store.Save(ctx, snapshot.KeyRuns, []byte(`["r"]`)); err != nil {
				t.Fatalf("Save(runs) failed: %v", err)
			}
			if err := store.Delete(ctx, snapshot.KeyAccounts); err != nil {
				t.Fatalf("Delete(accounts) failed: %v", err)
			}

			got, err := store.Load(ctx, snapshot.KeyRuns)
			if err != nil {
				t.Fatalf("Load(runs) failed: %v", err)
			}
			if string(got) != `["r"]` {
				t.Errorf("Load(runs) = %s, want untouched blob", got)
			}
		})
	}
}
