package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"postsmith/internal/application"
)

// InitResult contains the result of writing a starter config
type InitResult struct {
	Path    string
	Message string
}

// InitCommand writes a starter config file
type InitCommand struct {
	Path     string
	Template string
}

// NewInitCommand creates a new InitCommand
func NewInitCommand(path, template string) *InitCommand {
	return &InitCommand{Path: path, Template: template}
}

// Validate checks if the init operation is valid
func (c *InitCommand) Validate() error {
	return application.ValidateRequired("configPath", c.Path)
}

// Execute writes the template, refusing to overwrite an existing file
func (c *InitCommand) Execute(ctx context.Context) (*InitResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(c.Path); err == nil {
		return nil, fmt.Errorf("%w: %s", application.ErrConfigExists, c.Path)
	}

	if err := os.MkdirAll(filepath.Dir(c.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.OpenFile(c.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: %s", application.ErrConfigExists, c.Path)
		}
		return nil, fmt.Errorf("failed to create config: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(c.Template); err != nil {
		return nil, fmt.Errorf("failed to write config: %w", err)
	}

	return &InitResult{
		Path:    c.Path,
		Message: fmt.Sprintf("Created %s", c.Path),
	}, nil
}
