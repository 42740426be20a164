package media

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/mediavault/mediavault/internal/models"
	"github.com/mediavault/mediavault/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UploadInput describes an incoming binary plus its metadata fields.
type UploadInput struct {
	OwnerID     uint
	Kind        string
	Title       string
	Artist      string // music only
	Duration    int    // videos only, seconds
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader

	// AllowedTypes restricts the declared content type; nil accepts any.
	AllowedTypes []string
}

// SaveUpload writes the binary to the kind's upload directory under a
// collision-resistant generated name, then inserts the metadata row. The
// file write and the row insert are not atomic: if the insert fails the
// file stays behind as an orphan, which is logged and accepted.
func SaveUpload(gdb *gorm.DB, store *storage.DiskStore, log *zap.SugaredLogger, in UploadInput) error {
	if in.Size <= 0 {
		return ErrEmptyFile
	}

	if !TypeAllowed(in.ContentType, in.AllowedTypes) {
		return fmt.Errorf("%w: %s", ErrInvalidFileType, in.ContentType)
	}

	name := storedName(in.Filename)

	written, rel, err := store.Save(in.Kind, name, in.Data)
	if err != nil {
		return fmt.Errorf("failed to store upload: %w", err)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = titleFromFilename(in.Filename)
	}

	var row interface{}

	switch in.Kind {
	case KindDocument:
		row = &models.Document{
			OwnerID:  in.OwnerID,
			Title:    title,
			FilePath: rel,
			FileType: in.ContentType,
			Filesize: written,
		}
	case KindMusic:
		row = &models.Track{
			OwnerID:  in.OwnerID,
			Title:    title,
			Artist:   in.Artist,
			FilePath: rel,
			Filesize: written,
		}
	case KindVideo:
		row = &models.Video{
			OwnerID:  in.OwnerID,
			Title:    title,
			FilePath: rel,
			Filesize: written,
			Duration: in.Duration,
		}
	default:
		// The binary was already written; remove it since no row will
		// ever reference it.
		store.Remove(rel)
		return fmt.Errorf("kind %q does not accept file uploads", in.Kind)
	}

	if err := gdb.Create(row).Error; err != nil {
		log.Warnw("metadata insert failed, orphaned file left behind",
			"kind", in.Kind,
			"path", rel,
			"owner_id", in.OwnerID,
			"error", err,
		)
		return fmt.Errorf("failed to record upload: %w", err)
	}

	log.Infow("upload stored",
		"kind", in.Kind,
		"path", rel,
		"owner_id", in.OwnerID,
		"size", written,
	)

	return nil
}

// storedName prepends a random token so concurrent uploads of the same
// filename never collide. No uniqueness re-check is performed.
func storedName(original string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return token + "_" + storage.SanitizeFilename(original)
}

func titleFromFilename(filename string) string {
	base := storage.SanitizeFilename(filename)
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}
