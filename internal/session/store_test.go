package session

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mediavault/mediavault/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&models.Session{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return gdb
}

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore(newTestDB(t), time.Hour)

	user := User{ID: 7, Name: "Alice", Email: "alice@example.com"}

	token, err := store.Create(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("expected 64-char token, got %d chars", len(token))
	}

	got, err := store.Get(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != user {
		t.Errorf("expected %+v, got %+v", user, got)
	}
}

func TestStore_UnknownToken(t *testing.T) {
	store := NewStore(newTestDB(t), time.Hour)

	if _, err := store.Get("deadbeef"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestStore_ExpiredSession(t *testing.T) {
	gdb := newTestDB(t)
	store := NewStore(gdb, -time.Second)

	token, err := store.Create(User{ID: 1, Email: "a@b.c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Get(token); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for expired token, got %v", err)
	}

	// The expired row is deleted lazily.
	var count int64
	gdb.Model(&models.Session{}).Count(&count)
	if count != 0 {
		t.Errorf("expected expired row to be deleted, found %d", count)
	}
}

func TestStore_Destroy(t *testing.T) {
	store := NewStore(newTestDB(t), time.Hour)

	token, err := store.Create(User{ID: 1, Email: "a@b.c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Destroy(token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get(token); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after destroy, got %v", err)
	}

	// Destroying again is not an error.
	if err := store.Destroy(token); err != nil {
		t.Errorf("unexpected error on double destroy: %v", err)
	}
}

func TestStore_DestroyOthers(t *testing.T) {
	store := NewStore(newTestDB(t), time.Hour)
	user := User{ID: 1, Email: "a@b.c"}

	keep, err := store.Create(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	other, err := store.Create(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	foreign, err := store.Create(User{ID: 2, Email: "x@y.z"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.DestroyOthers(1, keep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Get(keep); err != nil {
		t.Errorf("kept session should survive, got %v", err)
	}
	if _, err := store.Get(other); !errors.Is(err, ErrNoSession) {
		t.Errorf("other session should be revoked, got %v", err)
	}
	if _, err := store.Get(foreign); err != nil {
		t.Errorf("foreign user's session should survive, got %v", err)
	}
}
