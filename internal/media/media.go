package media

import (
	"errors"
	"strings"
)

// Content kinds. Each kind has its own table and upload subdirectory.
const (
	KindDocument = "documents"
	KindMusic    = "music"
	KindVideo    = "videos"
	KindGame     = "games"
)

// Sentinel errors for the media layer. Handlers map these onto the JSON
// error envelope; ErrNotFound intentionally covers both an absent row and a
// row owned by someone else, so existence is never leaked.
var (
	ErrEmptyFile       = errors.New("empty upload payload")
	ErrInvalidFileType = errors.New("file type not allowed")
	ErrNotFound        = errors.New("not found or access denied")
)

// Allow-lists applied when strict upload types are configured. Profile
// images use their own list and are always checked. Entries match by
// prefix, so "audio/" covers every audio subtype.
var strictAllowLists = map[string][]string{
	KindDocument: {
		"application/pdf",
		"text/plain",
		"application/msword",
		"application/vnd.openxmlformats-officedocument",
	},
	KindMusic: {"audio/"},
	KindVideo: {"video/"},
}

// ProfileImageTypes is the fixed allow-list for profile image uploads.
var ProfileImageTypes = []string{"image/jpeg", "image/png", "image/gif"}

// AllowedTypes returns the MIME allow-list for a kind, or nil when any type
// is accepted.
func AllowedTypes(kind string, strict bool) []string {
	if !strict {
		return nil
	}
	return strictAllowLists[kind]
}

// TypeAllowed reports whether a declared content type passes an allow-list.
// A nil list accepts everything.
func TypeAllowed(contentType string, allowed []string) bool {
	if allowed == nil {
		return true
	}
	for _, entry := range allowed {
		if strings.HasPrefix(contentType, entry) {
			return true
		}
	}
	return false
}
