package errors

import (
	"strings"
	"unicode"
)

// ValidateFieldName validates a builtin field name for safety and correctness.
// Field names identify analytic field builders (e.g. "uniform", "vortex") and
// may arrive from untrusted HTTP query parameters, so the rules are
// intentionally conservative:
//   - No empty names
//   - No control characters
//   - Lowercase letters, digits, and hyphens only
//   - Maximum length of 64 characters
//
// Whether the name actually resolves to a registered field is checked
// separately by the field registry.
func ValidateFieldName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidField, "field name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidField, "field name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidField, "field name contains invalid control characters")
		}
		if !unicode.IsLower(r) && !unicode.IsDigit(r) && r != '-' {
			return New(ErrCodeInvalidField, "field name contains invalid character %q", r)
		}
	}

	return nil
}

// ValidateSceneFilename validates a scene filename for safety.
// It ensures the filename is a simple basename without path components,
// preventing path traversal when scenes are resolved relative to a directory.
func ValidateSceneFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidScene, "scene filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidScene, "scene filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidScene, "scene filename cannot be a hidden file")
	}

	return nil
}
