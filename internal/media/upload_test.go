package media

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mediavault/mediavault/internal/models"
)

func TestSaveUpload(t *testing.T) {
	t.Run("stores file and inserts document row", func(t *testing.T) {
		gdb := newTestDB(t)
		store := newTestStore(t)
		payload := []byte(strings.Repeat("a", 1024))

		err := SaveUpload(gdb, store, testLogger(), UploadInput{
			OwnerID:     1,
			Kind:        KindDocument,
			Title:       "Report",
			Filename:    "report.pdf",
			ContentType: "application/pdf",
			Size:        int64(len(payload)),
			Data:        bytes.NewReader(payload),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		docs, err := ListDocuments(gdb, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(docs) != 1 {
			t.Fatalf("expected 1 document, got %d", len(docs))
		}

		doc := docs[0]
		if doc.Title != "Report" {
			t.Errorf("expected title 'Report', got %q", doc.Title)
		}
		if doc.Filesize != 1024 {
			t.Errorf("expected stored size 1024, got %d", doc.Filesize)
		}
		if doc.FileType != "application/pdf" {
			t.Errorf("expected file type application/pdf, got %q", doc.FileType)
		}
		if !store.Exists(doc.FilePath) {
			t.Errorf("expected binary at %s", doc.FilePath)
		}
		if !strings.HasSuffix(doc.FilePath, "_report.pdf") {
			t.Errorf("expected generated name to keep the original filename, got %q", doc.FilePath)
		}
	})

	t.Run("title defaults to filename stem", func(t *testing.T) {
		gdb := newTestDB(t)
		store := newTestStore(t)

		err := SaveUpload(gdb, store, testLogger(), UploadInput{
			OwnerID:     1,
			Kind:        KindDocument,
			Filename:    "notes.txt",
			ContentType: "text/plain",
			Size:        5,
			Data:        strings.NewReader("hello"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		docs, _ := ListDocuments(gdb, 1)
		if len(docs) != 1 || docs[0].Title != "notes" {
			t.Fatalf("expected title 'notes', got %+v", docs)
		}
	})

	t.Run("rejects empty payload before touching disk", func(t *testing.T) {
		gdb := newTestDB(t)
		dir := t.TempDir()
		store := newStoreAt(dir)

		err := SaveUpload(gdb, store, testLogger(), UploadInput{
			OwnerID:     1,
			Kind:        KindDocument,
			Filename:    "empty.pdf",
			ContentType: "application/pdf",
			Size:        0,
			Data:        bytes.NewReader(nil),
		})
		if !errors.Is(err, ErrEmptyFile) {
			t.Fatalf("expected ErrEmptyFile, got %v", err)
		}

		if _, err := os.Stat(filepath.Join(dir, "documents")); !os.IsNotExist(err) {
			t.Error("expected no documents directory to be created")
		}

		docs, _ := ListDocuments(gdb, 1)
		if len(docs) != 0 {
			t.Errorf("expected no rows, got %d", len(docs))
		}
	})

	t.Run("rejects disallowed content type", func(t *testing.T) {
		gdb := newTestDB(t)
		store := newTestStore(t)

		err := SaveUpload(gdb, store, testLogger(), UploadInput{
			OwnerID:      1,
			Kind:         KindMusic,
			Title:        "Song",
			Artist:       "Band",
			Filename:     "song.exe",
			ContentType:  "application/octet-stream",
			Size:         4,
			Data:         strings.NewReader("MZ.."),
			AllowedTypes: AllowedTypes(KindMusic, true),
		})
		if !errors.Is(err, ErrInvalidFileType) {
			t.Fatalf("expected ErrInvalidFileType, got %v", err)
		}

		tracks, _ := ListTracks(gdb, 1)
		if len(tracks) != 0 {
			t.Errorf("expected no rows, got %d", len(tracks))
		}
	})

	t.Run("insert failure leaves orphaned file behind", func(t *testing.T) {
		gdb := newTestDB(t)
		dir := t.TempDir()
		store := newStoreAt(dir)

		// Force the insert to fail after the binary write succeeds.
		if err := gdb.Migrator().DropTable(&models.Document{}); err != nil {
			t.Fatalf("failed to drop table: %v", err)
		}

		err := SaveUpload(gdb, store, testLogger(), UploadInput{
			OwnerID:     1,
			Kind:        KindDocument,
			Title:       "Orphan",
			Filename:    "orphan.pdf",
			ContentType: "application/pdf",
			Size:        4,
			Data:        strings.NewReader("data"),
		})
		if err == nil {
			t.Fatal("expected error from failed insert")
		}

		entries, readErr := os.ReadDir(filepath.Join(dir, "documents"))
		if readErr != nil {
			t.Fatalf("expected documents directory to exist: %v", readErr)
		}
		if len(entries) != 1 {
			t.Errorf("expected the orphaned file to remain, found %d entries", len(entries))
		}
	})

	t.Run("generated names do not collide for identical filenames", func(t *testing.T) {
		gdb := newTestDB(t)
		store := newTestStore(t)

		for i := 0; i < 2; i++ {
			err := SaveUpload(gdb, store, testLogger(), UploadInput{
				OwnerID:     1,
				Kind:        KindDocument,
				Title:       "Dup",
				Filename:    "same.pdf",
				ContentType: "application/pdf",
				Size:        3,
				Data:        strings.NewReader("abc"),
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		docs, _ := ListDocuments(gdb, 1)
		if len(docs) != 2 {
			t.Fatalf("expected 2 documents, got %d", len(docs))
		}
		if docs[0].FilePath == docs[1].FilePath {
			t.Errorf("expected distinct stored paths, both are %q", docs[0].FilePath)
		}
	})
}

func TestTypeAllowed(t *testing.T) {
	if !TypeAllowed("application/pdf", nil) {
		t.Error("nil allow-list should accept any type")
	}
	if !TypeAllowed("audio/mpeg", []string{"audio/"}) {
		t.Error("prefix entry should match subtype")
	}
	if TypeAllowed("video/mp4", []string{"audio/"}) {
		t.Error("non-matching type should be rejected")
	}
	if !TypeAllowed("image/png", ProfileImageTypes) {
		t.Error("png should be an allowed profile image type")
	}
	if TypeAllowed("image/webp", ProfileImageTypes) {
		t.Error("webp is not an allowed profile image type")
	}
}
