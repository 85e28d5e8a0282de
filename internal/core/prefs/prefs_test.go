package prefs

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGetUnsetKey(t *testing.T) {
	store := openTestStore(t)

	value, err := store.Get("missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != "" {
		t.Errorf("value = %q, want empty", value)
	}
}

func TestSetReplacesValue(t *testing.T) {
	store := openTestStore(t)

	if err := store.SetTheme("light"); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if err := store.SetTheme("dark"); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}

	theme, err := store.Theme()
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if theme != "dark" {
		t.Errorf("theme = %q, want dark", theme)
	}
}

func TestDeleteRemovesKey(t *testing.T) {
	store := openTestStore(t)

	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	value, err := store.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != "" {
		t.Errorf("value = %q, want empty after delete", value)
	}

	if err := store.Delete("k"); err != nil {
		t.Fatalf("Delete of missing key: %v", err)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "prefs.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
}
