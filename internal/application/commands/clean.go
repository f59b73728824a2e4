package commands

import (
	"context"
	"fmt"
	"sync"

	"postsmith/internal/application"
	"postsmith/internal/ports"
)

// CleanResult contains the result of a clean
type CleanResult struct {
	Message string
}

// CleanCommand removes every artifact and index the build produced
type CleanCommand struct {
	indices      []ports.Index
	ArtifactRoot string

	// Lock, when set, is held for the whole run
	Lock sync.Locker
}

// NewCleanCommand creates a new CleanCommand
func NewCleanCommand(indices []ports.Index, artifactRoot string) *CleanCommand {
	return &CleanCommand{indices: indices, ArtifactRoot: artifactRoot}
}

// Validate checks if the clean operation is valid
func (c *CleanCommand) Validate() error {
	return application.ValidateRequired("outputDir", c.ArtifactRoot)
}

// Execute runs the clean command
func (c *CleanCommand) Execute(ctx context.Context) (*CleanResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Lock != nil {
		c.Lock.Lock()
		defer c.Lock.Unlock()
	}
	if err := cleanOutputs(c.ArtifactRoot, c.indices); err != nil {
		return nil, fmt.Errorf("failed to clean: %w", err)
	}
	return &CleanResult{
		Message: fmt.Sprintf("Removed artifacts and %d index(es)", len(c.indices)),
	}, nil
}
