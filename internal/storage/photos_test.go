package storage

import (
	"os"
	"strings"
	"testing"
)

func TestPhotoStoreRoundTrip(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewPhotoStore: %v", err)
	}

	filename, err := store.Store([]byte("fake image bytes"), ".png")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if !strings.HasSuffix(filename, ".png") {
		t.Errorf("filename %q should keep the extension", filename)
	}
	if !store.Exists(filename) {
		t.Error("stored file should exist")
	}

	data, err := os.ReadFile(store.Path(filename))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Errorf("unexpected contents %q", data)
	}

	if err := store.Delete(filename); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if store.Exists(filename) {
		t.Error("deleted file should not exist")
	}
}

func TestPhotoStoreDefaultsExtension(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewPhotoStore: %v", err)
	}

	filename, err := store.Store([]byte("x"), "")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if !strings.HasSuffix(filename, ".jpg") {
		t.Errorf("filename %q should default to .jpg", filename)
	}
}

func TestPhotoStoreDeleteMissingIsNoop(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewPhotoStore: %v", err)
	}

	if err := store.Delete("no-such-file.jpg"); err != nil {
		t.Errorf("deleting a missing file should not error: %v", err)
	}
}

func TestPhotoStoreUniqueFilenames(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewPhotoStore: %v", err)
	}

	a, err := store.Store([]byte("a"), ".jpg")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	b, err := store.Store([]byte("b"), ".jpg")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if a == b {
		t.Errorf("two stores produced the same filename %q", a)
	}
}
