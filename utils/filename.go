package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeNameChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// SanitizeFileName reduces an uploaded file name to a safe base name:
// directory parts are dropped, the name is lowercased, runs of anything other
// than letters, digits, dot, dash and underscore collapse to a single dash,
// and the extension is removed (stored images are always re-encoded).
// Example: "../Masala Dosa (1).PNG" -> "masala-dosa-1"
func SanitizeFileName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = unsafeNameChars.ReplaceAllString(strings.ToLower(base), "-")
	base = strings.Trim(base, "-._")
	if base == "" {
		return "image"
	}
	if len(base) > 64 {
		base = strings.TrimRight(base[:64], "-._")
	}
	return base
}
