package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"postsmith/internal/domain"
	"postsmith/internal/fingerprint"
)

// ArtifactExt is the extension of every generated artifact
const ArtifactExt = ".json"

// SnapshotOption configures a Snapshotter
type SnapshotOption func(*Snapshotter)

// Snapshotter implements ports.Snapshotter over the local filesystem.
// Directories are walked concurrently, file reads are bounded.
type Snapshotter struct {
	extensions  map[string]bool
	ignoreFile  string
	hashedNames bool
	sem         *semaphore.Weighted
}

// WithExtensions sets the source extensions (".md") included in snapshots
func WithExtensions(exts ...string) SnapshotOption {
	return func(s *Snapshotter) {
		s.extensions = make(map[string]bool, len(exts))
		for _, ext := range exts {
			s.extensions[strings.ToLower(ext)] = true
		}
	}
}

// WithIgnoreFile sets a gitignore-syntax file whose patterns are skipped
// during the source walk. A missing file is not an error.
func WithIgnoreFile(path string) SnapshotOption {
	return func(s *Snapshotter) {
		s.ignoreFile = path
	}
}

// WithHashedNames makes OutputTree strip "<stem>.<fp8>" suffixes from keys
func WithHashedNames(hashed bool) SnapshotOption {
	return func(s *Snapshotter) {
		s.hashedNames = hashed
	}
}

// WithConcurrency bounds the number of files read at once
func WithConcurrency(n int) SnapshotOption {
	return func(s *Snapshotter) {
		if n > 0 {
			s.sem = semaphore.NewWeighted(int64(n))
		}
	}
}

// NewSnapshotter creates a Snapshotter. Defaults: .md and .markdown sources,
// no ignore file, concurrency of 4x GOMAXPROCS.
func NewSnapshotter(opts ...SnapshotOption) *Snapshotter {
	s := &Snapshotter{}
	WithExtensions(".md", ".markdown")(s)
	WithConcurrency(runtime.GOMAXPROCS(0) * 4)(s)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

type walker struct {
	root    string
	include func(name string) bool
	leaf    func(fullPath, relPath string) (*domain.FileNode, error)
	ignore  gitignore.IgnoreMatcher
	sem     *semaphore.Weighted
}

// SourceTree snapshots the markdown sources under root. Keys are relative
// paths without extension.
func (s *Snapshotter) SourceTree(ctx context.Context, root string) (*domain.FileNode, error) {
	w := &walker{
		root: root,
		sem:  s.sem,
		include: func(name string) bool {
			return s.extensions[strings.ToLower(filepath.Ext(name))]
		},
		leaf: func(fullPath, relPath string) (*domain.FileNode, error) {
			data, err := os.ReadFile(fullPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read source %s: %w", relPath, err)
			}
			return domain.NewLeafNode(SourceKey(relPath), fullPath, relPath, fingerprint.Source(relPath, data)), nil
		},
	}

	if s.ignoreFile != "" {
		if _, err := os.Stat(s.ignoreFile); err == nil {
			matcher, err := gitignore.NewGitIgnore(s.ignoreFile, root)
			if err != nil {
				return nil, fmt.Errorf("failed to parse ignore file %s: %w", s.ignoreFile, err)
			}
			w.ignore = matcher
		}
	}

	return w.walk(ctx)
}

// OutputTree snapshots the artifacts under root. The fingerprint of each
// leaf is the one recorded inside the artifact, so it matches the source
// fingerprint the artifact was generated from.
func (s *Snapshotter) OutputTree(ctx context.Context, root string) (*domain.FileNode, error) {
	w := &walker{
		root: root,
		sem:  s.sem,
		include: func(name string) bool {
			return strings.HasSuffix(name, ArtifactExt)
		},
		leaf: func(fullPath, relPath string) (*domain.FileNode, error) {
			fp, err := readArtifactFingerprint(fullPath)
			if err != nil {
				return nil, err
			}
			return domain.NewLeafNode(ArtifactKey(relPath, s.hashedNames), fullPath, relPath, fp), nil
		},
	}

	return w.walk(ctx)
}

func (w *walker) walk(ctx context.Context) (*domain.FileNode, error) {
	info, err := os.Stat(w.root)
	if os.IsNotExist(err) {
		return domain.NewDirNode("", w.root, ""), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", w.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", w.root)
	}

	root := domain.NewDirNode("", w.root, "")
	if err := w.walkDir(ctx, root); err != nil {
		return nil, err
	}
	root.SortChildren()
	return root, nil
}

// walkDir fills node's children. Each entry is handled in its own goroutine
// and the call returns only once the whole subtree is complete.
func (w *walker) walkDir(ctx context.Context, node *domain.FileNode) error {
	entries, err := os.ReadDir(node.FullPath)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", node.FullPath, err)
	}

	children := make([]*domain.FileNode, len(entries))
	g, gCtx := errgroup.WithContext(ctx)

	for i, entry := range entries {
		name := entry.Name()
		if isHidden(name) {
			continue
		}

		relPath := path.Join(node.RelativePath, name)
		fullPath := filepath.Join(node.FullPath, name)
		isDir := entry.IsDir()

		if w.ignore != nil && w.ignore.Match(fullPath, isDir) {
			continue
		}

		if isDir {
			g.Go(func() error {
				dir := domain.NewDirNode(relPath, fullPath, relPath)
				if err := w.walkDir(gCtx, dir); err != nil {
					return err
				}
				if len(dir.Children) > 0 {
					children[i] = dir
				}
				return nil
			})
			continue
		}

		if !entry.Type().IsRegular() || !w.include(name) {
			continue
		}

		g.Go(func() error {
			if err := w.sem.Acquire(gCtx, 1); err != nil {
				return err
			}
			defer w.sem.Release(1)

			leaf, err := w.leaf(fullPath, relPath)
			if err != nil {
				return err
			}
			children[i] = leaf
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, child := range children {
		if child != nil {
			node.Children = append(node.Children, child)
		}
	}
	sort.Slice(node.Children, func(i, j int) bool {
		return node.Children[i].RelativePath < node.Children[j].RelativePath
	})
	return nil
}

func readArtifactFingerprint(fullPath string) (string, error) {
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to read artifact %s: %w", fullPath, err)
	}
	var head struct {
		Fingerprint string `json:"fingerprint"`
	}
	// An unreadable artifact keeps an empty fingerprint so it is regenerated
	// or deleted instead of failing the run.
	if err := json.Unmarshal(data, &head); err != nil {
		return "", nil
	}
	return head.Fingerprint, nil
}

// SourceKey derives the snapshot key of a source file: its slash-separated
// relative path without extension
func SourceKey(relPath string) string {
	return strings.TrimSuffix(relPath, path.Ext(relPath))
}

// ArtifactKey derives the snapshot key of an artifact. With hashed names the
// ".<fp8>" suffix is dropped as well.
func ArtifactKey(relPath string, hashed bool) string {
	key := strings.TrimSuffix(relPath, ArtifactExt)
	if !hashed {
		return key
	}
	ext := path.Ext(key)
	if len(ext) == hashSuffixLen+1 && fingerprint.IsHex(ext[1:]) {
		return strings.TrimSuffix(key, ext)
	}
	return key
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
