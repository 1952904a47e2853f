package errors

import (
	"regexp"
	"strings"
	"unicode"
)

const maxSeedLength = 256

// ValidateSeed validates a seed string supplied by a user.
//
// Seeds are hashed, so any text works; the rules only keep seeds printable
// and bounded:
//   - No empty seeds
//   - No control characters
//   - Maximum length of 256 bytes
func ValidateSeed(seed string) error {
	if seed == "" {
		return New(ErrCodeInvalidSeed, "seed cannot be empty")
	}

	if len(seed) > maxSeedLength {
		return New(ErrCodeInvalidSeed, "seed too long (max %d characters)", maxSeedLength)
	}

	for _, r := range seed {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSeed, "seed contains invalid control characters")
		}
	}

	return nil
}

// specimenNameRegex matches lowercase slugs such as "fern" or "window-ivy-2".
var specimenNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateSpecimenName validates the name of a saved specimen or preset.
// Names double as file names and URL segments, so they are restricted to
// lowercase slugs of at most 64 characters.
func ValidateSpecimenName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidName, "name too long (max 64 characters)")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "name cannot contain path traversal sequences (..)")
	}

	if !specimenNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid name %q: use lowercase letters, digits, '-' and '_'", name)
	}

	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed []string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format %q (want one of: %s)", format, strings.Join(allowed, ", "))
}
