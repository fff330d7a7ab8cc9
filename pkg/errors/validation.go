package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxElementLength bounds element labels read from instance files.
const maxElementLength = 256

// ValidateElement validates an element label read from an instance file.
// Labels end up in terminal output and Graphviz documents, so the rules are
// conservative:
//   - No empty labels
//   - No control characters or null bytes
//   - Maximum length of 256 bytes
func ValidateElement(label string) error {
	if label == "" {
		return New(ErrCodeInvalidElement, "element label cannot be empty")
	}

	if len(label) > maxElementLength {
		return New(ErrCodeInvalidElement, "element label too long (max %d characters)", maxElementLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidElement, "element label %q contains control characters", label)
		}
	}

	return nil
}

// ValidateInstancePath checks that path names a supported instance file and
// returns its normalized extension ("json" or "toml").
func ValidateInstancePath(path string) (string, error) {
	if path == "" {
		return "", New(ErrCodeInvalidInput, "instance path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return "", New(ErrCodeInvalidInput, "instance path contains invalid characters")
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "json", "toml":
		return ext, nil
	case "":
		return "", New(ErrCodeInvalidFormat, "instance file %q has no extension (want .json or .toml)", filepath.Base(path))
	default:
		return "", New(ErrCodeInvalidFormat, "unsupported instance format %q (want .json or .toml)", ext)
	}
}
