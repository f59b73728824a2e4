// Package bootstrap wires a loaded config into the adapters and commands
// every postsmith binary shares.
package bootstrap

import (
	"fmt"
	"log/slog"
	"sync"

	"postsmith/internal/adapters/filesystem"
	"postsmith/internal/adapters/index"
	"postsmith/internal/adapters/markdown"
	"postsmith/internal/adapters/sqlite"
	"postsmith/internal/application/commands"
	"postsmith/internal/config"
	"postsmith/internal/domain"
	"postsmith/internal/ports"
)

// App holds the adapters built from one config
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Snapshots *filesystem.Snapshotter
	Artifacts *filesystem.Repository
	Indices   []ports.Index
	Reader    *index.Reader
	History   ports.BuildHistory // nil when disabled or unavailable

	// runs serializes builds and cleans over the shared indices
	runs sync.Mutex
}

// New builds an App from cfg. A ledger that cannot be opened is logged and
// left out.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	indices, err := buildIndices(cfg, logger)
	if err != nil {
		return nil, err
	}

	snapshotOpts := []filesystem.SnapshotOption{
		filesystem.WithExtensions(cfg.Extensions...),
		filesystem.WithHashedNames(cfg.HashedNames),
	}
	if ignore := cfg.IgnorePath(); ignore != "" {
		snapshotOpts = append(snapshotOpts, filesystem.WithIgnoreFile(ignore))
	}

	app := &App{
		Config:    cfg,
		Logger:    logger,
		Snapshots: filesystem.NewSnapshotter(snapshotOpts...),
		Artifacts: filesystem.NewRepository(cfg.OutputDir, cfg.ArtifactRoot(), cfg.BaseURL, cfg.HashedNames, logger),
		Indices:   indices,
		Reader:    newReader(cfg),
	}

	if cfg.History {
		history, err := sqlite.Open(cfg.OutputDir)
		if err != nil {
			logger.Warn("build history unavailable", "error", err)
		} else {
			app.History = history
		}
	}
	return app, nil
}

// Load reads the config at path and builds an App from it
func Load(path string, logger *slog.Logger) (*App, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return New(cfg, logger)
}

// Close releases the ledger
func (a *App) Close() error {
	if a.History != nil {
		return a.History.Close()
	}
	return nil
}

// BuildCommand returns a build over the configured directories. Commands
// from one App never run concurrently.
func (a *App) BuildCommand() *commands.BuildCommand {
	cmd := commands.NewBuildCommand(
		a.Snapshots,
		a.Artifacts,
		a.Indices,
		a.History,
		a.Logger,
		a.Config.InputDir,
		a.Config.OutputDir,
		a.Config.ArtifactRoot(),
	)
	cmd.Lock = &a.runs
	return cmd
}

// CleanCommand returns a clean over every configured output
func (a *App) CleanCommand() *commands.CleanCommand {
	cmd := commands.NewCleanCommand(a.Indices, a.Config.ArtifactRoot())
	cmd.Lock = &a.runs
	return cmd
}

func newReader(cfg *config.Config) *index.Reader {
	var collection, tags, categories string
	if cfg.Collection != nil {
		collection = cfg.Collection.Dir
	}
	if cfg.Tag != nil {
		tags = cfg.Tag.Dir
	}
	if cfg.Category != nil {
		categories = cfg.Category.Dir
	}
	return index.NewReader(cfg.OutputDir, collection, tags, categories)
}

func buildIndices(cfg *config.Config, logger *slog.Logger) ([]ports.Index, error) {
	var indices []ports.Index

	if cfg.Collection != nil {
		opts, err := indexOptions(cfg, cfg.Collection, cfg.Collection, logger)
		if err != nil {
			return nil, fmt.Errorf("collection: %w", err)
		}
		indices = append(indices, index.NewCollection(opts))
	}

	if cfg.Tag != nil {
		opts, err := indexOptions(cfg, &cfg.Tag.IndexConfig, cfg.Tag, logger)
		if err != nil {
			return nil, fmt.Errorf("tag: %w", err)
		}
		indices = append(indices, index.NewTagger(opts, cfg.Tag.PropName))
	}

	if cfg.Category != nil {
		opts, err := indexOptions(cfg, &cfg.Category.IndexConfig, cfg.Category, logger)
		if err != nil {
			return nil, fmt.Errorf("category: %w", err)
		}
		indices = append(indices, index.NewClassifier(opts, cfg.Category.PropName, cfg.Category.Rule))
	}

	return indices, nil
}

// indexOptions translates one index block. block is the full config block
// the index version is derived from.
func indexOptions(cfg *config.Config, ic *config.IndexConfig, block any, logger *slog.Logger) (index.Options, error) {
	sortRule, err := domain.ParseSortRule(ic.Sort)
	if err != nil {
		return index.Options{}, err
	}
	rule, err := domain.ParseExcerptRule(ic.Excerpt.Rule)
	if err != nil {
		return index.Options{}, err
	}
	version, err := index.Version(cfg.BaseURL, block)
	if err != nil {
		return index.Options{}, err
	}

	opts := index.Options{
		OutputRoot:   cfg.OutputDir,
		Dir:          ic.Dir,
		BaseURL:      cfg.BaseURL,
		ItemsPerPage: ic.ItemsPerPage,
		Sort:         sortRule,
		Excerpt: domain.ExcerptOptions{
			Rule:  rule,
			Lines: ic.Excerpt.Lines,
			Tag:   ic.Excerpt.Tag,
		},
		Version: version,
		Logger:  logger,
	}
	if ic.Excerpt.Format == "html" {
		opts.HTML = true
		opts.Renderer = markdown.NewRenderer()
	}
	return opts, nil
}
