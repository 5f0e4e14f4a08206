package validation

import (
	"regexp"
	"strings"
)

var (
	slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// ValidateFolderName validates a media folder name: non-empty after trimming,
// at most 255 characters, no path separators.
func ValidateFolderName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 255 {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}

// ValidateSlug validates a URL slug (lowercase alphanumerics and hyphens).
func ValidateSlug(slug string) bool {
	if len(slug) < 1 || len(slug) > 255 {
		return false
	}
	return slugRegex.MatchString(slug)
}

// Slugify derives a slug from a title: lowercase, non-alphanumerics collapsed
// to single hyphens.
func Slugify(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	lastHyphen := true
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SanitizeString removes potentially harmful characters
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")
	return input
}
