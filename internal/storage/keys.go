package storage

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"
)

var ErrInvalidKey = errors.New("invalid object key")

const maxFilenameLength = 128

// SanitizeFilename keeps letters, digits, dots, dashes and underscores and
// replaces everything else with an underscore.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	clean := strings.TrimLeft(b.String(), ".")
	if len(clean) > maxFilenameLength {
		clean = clean[len(clean)-maxFilenameLength:]
	}
	if clean == "" {
		return "file"
	}
	return clean
}

// UploadKey is the object key of a blob attached to an item:
// items/<item_id>/<unix_millis>-<sanitized filename>.
func UploadKey(itemID, filename string, at time.Time) string {
	return fmt.Sprintf("items/%s/%d-%s", itemID, at.UnixMilli(), SanitizeFilename(filename))
}

func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return ErrInvalidKey
		}
	}
	return nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
