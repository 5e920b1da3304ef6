// Package naming derives deterministic artifact identifiers from company
// names and timestamps. The id doubles as the local filename stem and the
// object-store key suffix, so sanitization here is the primary defense
// against path traversal from hostile company names.
package naming

import (
	"regexp"
	"strings"
	"time"
)

// timestampLayout is second-resolution UTC, e.g. 20260115_134502.
const timestampLayout = "20060102_150405"

var (
	invalidChars   = regexp.MustCompile(`[^a-z0-9_]`)
	repeatedUnders = regexp.MustCompile(`_+`)
	validFilename  = regexp.MustCompile(`^[a-z0-9_]+\.html$`)
)

// DeriveName returns the artifact id for a company at the given time:
// the slugified company name plus a UTC timestamp at second resolution.
// Two requests for the same company within the same second collide; the
// accepted behavior is last-write-wins, not locking.
func DeriveName(companyName string, now time.Time) string {
	slug := Slugify(companyName)
	if slug == "" {
		slug = "site"
	}
	return slug + "_" + now.UTC().Format(timestampLayout)
}

// Slugify lowercases the name, maps every character outside [a-z0-9_] to an
// underscore, collapses runs, and trims leading/trailing underscores. Path
// separators cannot survive.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = invalidChars.ReplaceAllString(slug, "_")
	slug = repeatedUnders.ReplaceAllString(slug, "_")
	return strings.Trim(slug, "_")
}

// ValidFilename reports whether name is a filename this system could have
// produced. The download path uses it to reject anything else before
// touching the filesystem.
func ValidFilename(name string) bool {
	return validFilename.MatchString(name)
}
