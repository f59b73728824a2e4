package commands

import (
	"context"

	"postsmith/internal/domain"
	"postsmith/internal/ports"
)

// HistoryCommand lists recent build runs
type HistoryCommand struct {
	history ports.BuildHistory
	Limit   int
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(history ports.BuildHistory, limit int) *HistoryCommand {
	return &HistoryCommand{history: history, Limit: limit}
}

// Execute runs the history command
func (c *HistoryCommand) Execute(ctx context.Context) ([]domain.BuildRun, error) {
	return c.history.Recent(ctx, c.Limit)
}
