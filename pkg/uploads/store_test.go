package uploads

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flyaway/pkg/utils"
)

func TestSaveAndDelete(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	ref, err := store.Save([]byte("jpeg bytes"), "beach photo.jpg", "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(ref, URLPrefix+"/") {
		t.Fatalf("ref = %q, want %s prefix", ref, URLPrefix)
	}
	if !strings.HasSuffix(ref, "beach_photo.jpg") {
		t.Fatalf("ref = %q, want sanitized original name suffix", ref)
	}

	if err := store.Delete(ref); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	// Deleting an already-gone file is a no-op.
	if err := store.Delete(ref); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestSaveIntoArea(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)

	ref, err := store.Save([]byte("png"), "pin.png", "activities")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(ref, URLPrefix+"/activities/") {
		t.Fatalf("ref = %q, want activities area prefix", ref)
	}

	rel := strings.TrimPrefix(ref, URLPrefix+"/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "png" {
		t.Fatalf("stored content = %q", data)
	}
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	first, err := store.Save([]byte("a"), "same.jpg", "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.Save([]byte("b"), "same.jpg", "")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("two saves of the same name collided: %s", first)
	}
}

func TestDeleteRejectsForeignRefs(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	for _, bad := range []string{
		"/etc/passwd",
		"uploads/x.jpg",
		URLPrefix + "/../escape.jpg",
	} {
		if err := store.Delete(bad); !errors.Is(err, utils.ErrInvalidInput) {
			t.Errorf("Delete(%q) = %v, want ErrInvalidInput", bad, err)
		}
	}
}
