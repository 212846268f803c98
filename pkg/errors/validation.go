package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// boardNameRegex matches board names usable as file names, Redis keys and URL path segments.
var boardNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateBoardName validates a board name for safety and correctness.
// Board names key the layout store, so they end up in file paths, Redis keys
// and URLs. The rules are intentionally conservative:
//   - No empty names
//   - Maximum length of 128 characters
//   - No control characters
//   - No path traversal sequences (..)
//   - Only letters, digits, '.', '_' and '-' (must start with a letter or digit)
func ValidateBoardName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidBoardName, "board name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidBoardName, "board name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidBoardName, "board name contains invalid control characters")
		}
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidBoardName, "board name cannot contain path traversal sequences (..)")
	}

	if !boardNameRegex.MatchString(name) {
		return New(ErrCodeInvalidBoardName, "invalid board name: %q", name)
	}

	return nil
}

// ValidateWidgetID validates an opaque widget identifier.
// IDs may be any printable string up to 128 characters.
func ValidateWidgetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "widget id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "widget id too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "widget id contains invalid control characters")
		}
	}
	return nil
}

// ValidateDimensions checks that a grid or widget extent is at least one cell
// in each direction.
func ValidateDimensions(what string, width, height int) error {
	if width < 1 || height < 1 {
		return New(ErrCodeInvalidInput, "%s must be at least 1x1, got %dx%d", what, width, height)
	}
	return nil
}
