package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "deskfolio.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestGetMissingKey(t *testing.T) {
	st := openTestStore(t)
	value, ok, err := st.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || value != "" {
		t.Fatalf("expected missing key, got %q (ok=%v)", value, ok)
	}
}

func TestPutOverwritesAndPersists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deskfolio.db")
	ctx := context.Background()

	st, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := st.Put(ctx, "theme", "light"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := st.Put(ctx, "theme", "system"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	t.Cleanup(func() {
		_ = reopened.Close()
	})
	value, ok, err := reopened.Get(ctx, "theme")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || value != "system" {
		t.Fatalf("expected system, got %q (ok=%v)", value, ok)
	}
}

func TestKeysAndDelete(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	for _, key := range []string{"b", "a", "c"} {
		if err := st.Put(ctx, key, "v"); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	if err := st.Delete(ctx, "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := st.Delete(ctx, "never"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	keys, err := st.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}
