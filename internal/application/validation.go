package application

import (
	"fmt"
	"os"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "inputDir" -> "input directory")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"inputDir":   "input directory",
		"outputDir":  "output directory",
		"configPath": "config path",
		"postsDir":   "posts directory",
		"index":      "index",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateDir checks that path exists and is a directory. A missing path
// yields ErrSourceMissing.
func ValidateDir(fieldName, path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrSourceMissing, path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", formatFieldName(fieldName), err)
	}
	if !info.IsDir() {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is not a directory: %s", formatFieldName(fieldName), path),
		}
	}
	return nil
}

// ValidateOneOf checks that value is one of allowed
func ValidateOneOf(fieldName, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ValidationError{
		Field:   fieldName,
		Message: fmt.Sprintf("expected one of %s, got: %q", strings.Join(allowed, ", "), value),
	}
}
