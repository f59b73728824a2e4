package application

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "inputDir",
			value:     "content",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "inputDir",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "outputDir",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
				if !errors.Is(err, ErrInvalidConfig) {
					t.Error("ValidationError should match ErrInvalidConfig")
				}
			}
		})
	}
}

func TestValidateDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.md")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := ValidateDir("inputDir", dir); err != nil {
		t.Errorf("unexpected error for directory: %v", err)
	}

	err := ValidateDir("inputDir", filepath.Join(dir, "missing"))
	if !errors.Is(err, ErrSourceMissing) {
		t.Errorf("expected ErrSourceMissing, got %v", err)
	}

	err = ValidateDir("inputDir", file)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("expected ValidationError for file, got %v", err)
	}
}

func TestValidateOneOf(t *testing.T) {
	if err := ValidateOneOf("index", "tags", "posts", "tags", "categories"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateOneOf("index", "authors", "posts", "tags"); err == nil {
		t.Error("expected error for unknown value")
	}
}

func TestStageError(t *testing.T) {
	cause := errors.New("disk full")
	err := Stage("save", "tags", cause)

	if !errors.Is(err, ErrFatal) {
		t.Error("StageError should match ErrFatal")
	}
	if !errors.Is(err, cause) {
		t.Error("StageError should unwrap to its cause")
	}
	if got := err.Error(); got != "save failed for tags: disk full" {
		t.Errorf("unexpected message: %s", got)
	}
	if Stage("save", "", nil) != nil {
		t.Error("nil error should pass through")
	}
}
