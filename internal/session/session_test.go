package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/syrianarchive/archivectl/internal/model"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestStore_RoundTrip(t *testing.T) {
	store := tempStore(t)

	err := store.Save(Session{
		AccessToken:  "access-a",
		RefreshToken: "refresh-r",
		UserID:       42,
		Role:         model.RoleJournalist,
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if got := store.Access(); got != "access-a" {
		t.Errorf("Access() = %q, want access-a", got)
	}
	if got := store.Refresh(); got != "refresh-r" {
		t.Errorf("Refresh() = %q, want refresh-r", got)
	}
	if !store.IsAuthenticated() {
		t.Errorf("IsAuthenticated() = false after Save")
	}

	sess, ok := store.Current()
	if !ok {
		t.Fatalf("Current() not found after Save")
	}
	if sess.UserID != 42 || sess.Role != model.RoleJournalist {
		t.Errorf("unexpected identity: %+v", sess)
	}
}

func TestStore_Clear(t *testing.T) {
	store := tempStore(t)

	if err := store.Save(Session{AccessToken: "a", RefreshToken: "r"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if store.Access() != "" || store.Refresh() != "" {
		t.Errorf("tokens still present after Clear")
	}
	if store.IsAuthenticated() {
		t.Errorf("IsAuthenticated() = true after Clear")
	}

	// Clearing an already-clear store is not an error
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}

func TestStore_LoadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")

	first := NewStore(path)
	if err := first.Save(Session{AccessToken: "a", RefreshToken: "r", UserID: 7}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// A fresh store reads the same file
	second := NewStore(path)
	sess, ok := second.Current()
	if !ok {
		t.Fatalf("Current() did not load persisted session")
	}
	if sess.AccessToken != "a" || sess.UserID != 7 {
		t.Errorf("unexpected session: %+v", sess)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat session file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("session file mode = %o, want 0600", perm)
	}
}

func TestStore_SetAccess(t *testing.T) {
	store := tempStore(t)

	if err := store.SetAccess("new"); err == nil {
		t.Errorf("SetAccess without session should fail")
	}

	if err := store.Save(Session{AccessToken: "old", RefreshToken: "r"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.SetAccess("new"); err != nil {
		t.Fatalf("SetAccess failed: %v", err)
	}

	if got := store.Access(); got != "new" {
		t.Errorf("Access() = %q, want new", got)
	}
	if got := store.Refresh(); got != "r" {
		t.Errorf("Refresh() = %q, want r (refresh token must not rotate)", got)
	}
}

func TestStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	store := NewStore(path)
	if store.IsAuthenticated() {
		t.Errorf("corrupt session file should read as unauthenticated")
	}
}
