package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates a file path received from a remote listing before it
// is written below a local directory.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidURL, "URL must use http or https scheme")
	}

	return nil
}

// colorNameRegex matches names usable both as xcolor names and as the
// prefix of a "<name>shell" TikZ style.
var colorNameRegex = regexp.MustCompile(`^[A-Za-z]+$`)

// ValidateColorName validates a colour name for use in the compass template.
func ValidateColorName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidColor, "color name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidColor, "color name too long (max 64 characters)")
	}
	if !colorNameRegex.MatchString(name) {
		return New(ErrCodeInvalidColor, "invalid color name %q: only letters are allowed", name)
	}
	return nil
}
