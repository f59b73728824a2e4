package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"postsmith/internal/application"
	"postsmith/internal/domain"
	"postsmith/internal/ports"
)

// BuildResult contains the result of a build run
type BuildResult struct {
	Run     domain.BuildRun
	Changes []domain.Change
	Message string
}

// BuildCommand runs one incremental build: snapshot, diff, apply, save
type BuildCommand struct {
	snapshots ports.Snapshotter
	generator ports.ArtifactGenerator
	indices   []ports.Index
	history   ports.BuildHistory
	logger    *slog.Logger

	InputDir     string
	OutputDir    string
	ArtifactRoot string
	Force        bool
	Clean        bool

	// Lock, when set, is held for the whole run. Indices are shared by
	// every command built over them, so runs must not overlap.
	Lock sync.Locker
}

// NewBuildCommand creates a new BuildCommand. history may be nil.
func NewBuildCommand(
	snapshots ports.Snapshotter,
	generator ports.ArtifactGenerator,
	indices []ports.Index,
	history ports.BuildHistory,
	logger *slog.Logger,
	inputDir, outputDir, artifactRoot string,
) *BuildCommand {
	if logger == nil {
		logger = slog.Default()
	}
	return &BuildCommand{
		snapshots:    snapshots,
		generator:    generator,
		indices:      indices,
		history:      history,
		logger:       logger,
		InputDir:     inputDir,
		OutputDir:    outputDir,
		ArtifactRoot: artifactRoot,
	}
}

// Validate checks if the build can run
func (c *BuildCommand) Validate() error {
	if err := application.ValidateRequired("inputDir", c.InputDir); err != nil {
		return err
	}
	if err := application.ValidateRequired("outputDir", c.ArtifactRoot); err != nil {
		return err
	}
	return application.ValidateDir("inputDir", c.InputDir)
}

// Execute runs the build
func (c *BuildCommand) Execute(ctx context.Context) (*BuildResult, error) {
	started := time.Now()

	if err := c.Validate(); err != nil {
		return nil, application.Stage("validate", c.InputDir, err)
	}
	if c.Lock != nil {
		c.Lock.Lock()
		defer c.Lock.Unlock()
	}

	if c.Clean {
		if err := cleanOutputs(c.ArtifactRoot, c.indices); err != nil {
			return nil, application.Stage("clean", c.OutputDir, err)
		}
		c.logger.Info("outputs cleaned", "path", c.OutputDir)
	}

	if err := os.MkdirAll(c.ArtifactRoot, 0755); err != nil {
		return nil, application.Stage("prepare", c.ArtifactRoot, err)
	}

	reseed, err := c.loadIndices(ctx)
	if err != nil {
		return nil, err
	}

	source, output, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if len(reseed) > 0 {
		if err := c.reseed(output, reseed); err != nil {
			return nil, err
		}
	}

	changes, err := domain.Compare(source, output)
	if err != nil {
		return nil, application.Stage("compare", c.InputDir, err)
	}
	c.logger.Info("changes computed", "count", len(changes), "sources", source.Count(), "artifacts", output.Count())

	for _, change := range changes {
		if err := c.apply(change); err != nil {
			return nil, application.Stage("apply "+change.Kind.String(), change.Key(), err)
		}
		c.logger.Debug("change applied", "kind", change.Kind.String(), "key", change.Key())
	}

	stats := domain.BuildStats{Forced: c.Force}
	stats.Created, stats.Modified, stats.Deleted = domain.CountChanges(changes)
	for _, idx := range reseed {
		stats.Reseeded = append(stats.Reseeded, idx.Name())
	}

	for _, idx := range c.indices {
		if len(changes) == 0 && !c.Force && !idx.Stale() {
			continue
		}
		if err := idx.Save(); err != nil {
			return nil, application.Stage("save", idx.Name(), err)
		}
		stats.Saved = append(stats.Saved, idx.Name())
		c.logger.Debug("index saved", "index", idx.Name())
	}
	stats.Duration = time.Since(started)

	run := domain.BuildRun{StartedAt: started, OutputPath: c.OutputDir, Stats: stats}
	if c.history != nil {
		if err := c.history.Record(ctx, &run); err != nil {
			c.logger.Warn("failed to record build", "error", err)
		}
	}

	return &BuildResult{
		Run:     run,
		Changes: changes,
		Message: summarize(stats),
	}, nil
}

// loadIndices loads every index concurrently, then resets those that are
// missing, corrupt or configured differently. Reset indices are returned so
// they can be refilled from existing artifacts.
func (c *BuildCommand) loadIndices(ctx context.Context) ([]ports.Index, error) {
	states := make([]domain.LoadState, len(c.indices))
	g, _ := errgroup.WithContext(ctx)
	for i, idx := range c.indices {
		g.Go(func() error {
			state, err := idx.Load()
			if err != nil {
				return application.Stage("load", idx.Name(), err)
			}
			states[i] = state
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var reseed []ports.Index
	for i, idx := range c.indices {
		state := states[i]
		if state == domain.LoadLoaded && !idx.Stale() {
			c.logger.Debug("index loaded", "index", idx.Name())
			continue
		}

		reason := state.String()
		if state == domain.LoadLoaded {
			reason = "config changed"
		}
		if state == domain.LoadCorrupt {
			c.logger.Warn("index reset", "index", idx.Name(), "reason", reason)
		} else {
			c.logger.Info("index reset", "index", idx.Name(), "reason", reason)
		}

		if err := idx.Clean(); err != nil {
			return nil, application.Stage("clean", idx.Name(), err)
		}
		if err := idx.Init(); err != nil {
			return nil, application.Stage("init", idx.Name(), err)
		}
		reseed = append(reseed, idx)
	}
	return reseed, nil
}

func (c *BuildCommand) snapshot(ctx context.Context) (*domain.FileNode, *domain.FileNode, error) {
	var source, output *domain.FileNode
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tree, err := c.snapshots.SourceTree(gCtx, c.InputDir)
		if err != nil {
			return application.Stage("snapshot", c.InputDir, err)
		}
		source = tree
		return nil
	})
	g.Go(func() error {
		tree, err := c.snapshots.OutputTree(gCtx, c.ArtifactRoot)
		if err != nil {
			return application.Stage("snapshot", c.ArtifactRoot, err)
		}
		output = tree
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return source, output, nil
}

// reseed refills reset indices from the artifacts already on disk, in key
// order. Unreadable artifacts are skipped; the diff regenerates them.
func (c *BuildCommand) reseed(output *domain.FileNode, indices []ports.Index) error {
	leaves, err := output.Leaves()
	if err != nil {
		return application.Stage("reseed", c.ArtifactRoot, err)
	}
	keys := make([]string, 0, len(leaves))
	for key := range leaves {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		item, err := c.generator.Read(leaves[key])
		if err != nil {
			c.logger.Warn("skipping unreadable artifact", "key", key, "error", err)
			continue
		}
		for _, idx := range indices {
			if err := idx.Collect(item); err != nil {
				return application.Stage("reseed", idx.Name(), err)
			}
		}
	}
	return nil
}

func (c *BuildCommand) apply(change domain.Change) error {
	switch change.Kind {
	case domain.ChangeCreate:
		item, err := c.generator.Create(change.Source)
		if err != nil {
			return err
		}
		for _, idx := range c.indices {
			if err := idx.Collect(item); err != nil {
				return fmt.Errorf("%s: %w", idx.Name(), err)
			}
		}

	case domain.ChangeDelete:
		item, err := c.generator.Delete(change.Output)
		if err != nil {
			return err
		}
		for _, idx := range c.indices {
			if err := idx.Delete(item); err != nil {
				return fmt.Errorf("%s: %w", idx.Name(), err)
			}
		}

	case domain.ChangeModify:
		newItem, oldItem, err := c.generator.Modify(change.Source, change.Output)
		if err != nil {
			return err
		}
		for _, idx := range c.indices {
			if err := idx.Modify(newItem, oldItem); err != nil {
				return fmt.Errorf("%s: %w", idx.Name(), err)
			}
		}

	default:
		return errors.New("unknown change kind")
	}
	return nil
}

func summarize(s domain.BuildStats) string {
	if s.Changes() == 0 && len(s.Saved) == 0 {
		return "Up to date"
	}
	msg := fmt.Sprintf("Built: %d created, %d modified, %d deleted", s.Created, s.Modified, s.Deleted)
	if len(s.Saved) > 0 {
		msg += "; saved " + strings.Join(s.Saved, ", ")
	}
	return msg
}

func cleanOutputs(artifactRoot string, indices []ports.Index) error {
	if err := os.RemoveAll(artifactRoot); err != nil {
		return fmt.Errorf("failed to remove artifacts: %w", err)
	}
	for _, idx := range indices {
		if err := idx.Clean(); err != nil {
			return err
		}
	}
	return nil
}
