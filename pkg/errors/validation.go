package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateImagePath validates a part-image path for use inside a booklet.
// The path ends up as the argument of a LaTeX \includegraphics call, so the
// rules reject characters the downstream compiler cannot take unescaped.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - No LaTeX-active characters (%, #, {, }, ~, $, &, ^)
//   - Maximum length of 500 characters
//
// Existence of the referenced file is a separate, optional check; see
// booklet.Parameters.CheckPaths.
func ValidateImagePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "image path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "image path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "image path contains invalid control characters")
		}
	}

	// Characters LaTeX treats specially inside a graphics argument.
	if i := strings.IndexAny(path, "%#{}~$&^"); i >= 0 {
		return New(ErrCodeInvalidPath, "image path contains character %q, which the typesetter cannot accept", path[i])
	}

	return nil
}

// ValidateOutputDir validates the directory booklets are written into.
// It only guards against values that cannot possibly name a directory;
// creation failures surface later with the OS error attached.
func ValidateOutputDir(dir string) error {
	if dir == "" {
		return New(ErrCodeInvalidPath, "output directory cannot be empty")
	}
	if strings.ContainsRune(dir, '\x00') {
		return New(ErrCodeInvalidPath, "output directory contains a null byte")
	}
	return nil
}

// languageCodeRegex matches two- or three-letter lowercase language codes
// (ISO 639-1/-2 style), as used in part filenames and booklet names.
var languageCodeRegex = regexp.MustCompile(`^[a-z]{2,3}$`)

// ValidateLanguageCode validates the shape of a language code.
// Whether the code names a supported language is the catalog's concern.
func ValidateLanguageCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidLanguage, "language code cannot be empty")
	}
	if !languageCodeRegex.MatchString(code) {
		return New(ErrCodeInvalidLanguage, "invalid language code: %q (want a two- or three-letter lowercase code)", code)
	}
	return nil
}
