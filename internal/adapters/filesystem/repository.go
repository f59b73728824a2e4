package filesystem

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"postsmith/internal/adapters/frontmatter"
	"postsmith/internal/domain"
	"postsmith/internal/fingerprint"
)

const hashSuffixLen = 8

// ErrCorruptArtifact is returned by Read when an artifact cannot be decoded
var ErrCorruptArtifact = errors.New("corrupt artifact")

// artifact is the on-disk shape of one generated post
type artifact struct {
	Fingerprint string        `json:"fingerprint"`
	Header      domain.Header `json:"structuredHeader"`
	Body        string        `json:"body"`
	Source      string        `json:"source"`
}

// Repository implements ports.ArtifactGenerator by writing one JSON artifact
// per source post below the artifact root.
type Repository struct {
	outputRoot   string
	artifactRoot string
	baseURL      string
	hashedNames  bool
	logger       *slog.Logger
}

// NewRepository creates a repository writing to artifactRoot. outputRoot
// and baseURL determine the public URL of each artifact.
func NewRepository(outputRoot, artifactRoot, baseURL string, hashedNames bool, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		outputRoot:   outputRoot,
		artifactRoot: artifactRoot,
		baseURL:      baseURL,
		hashedNames:  hashedNames,
		logger:       logger,
	}
}

// ArtifactRoot returns the directory artifacts are written to
func (r *Repository) ArtifactRoot() string {
	return r.artifactRoot
}

// Create generates the artifact for a new source file
func (r *Repository) Create(source *domain.FileNode) (*domain.Item, error) {
	return r.generate(source)
}

// Delete removes an artifact whose source is gone and returns the item it
// held, so indices can drop it using the header captured at creation time
func (r *Repository) Delete(output *domain.FileNode) (*domain.Item, error) {
	item, err := r.Read(output)
	if err != nil && !errors.Is(err, ErrCorruptArtifact) {
		return nil, err
	}
	if err != nil {
		r.logger.Warn("deleting unreadable artifact", "path", output.RelativePath, "error", err)
		item = &domain.Item{URL: r.urlFor(output.FullPath)}
	}

	if err := os.Remove(output.FullPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove artifact: %w", err)
	}
	RemoveEmptyParents(filepath.Dir(output.FullPath), r.artifactRoot)

	return item, nil
}

// Modify regenerates an artifact. The previous item is read before the file
// is replaced. When the artifact path changes (hashed names) the old file is
// removed. A corrupt previous artifact yields a nil oldItem.
func (r *Repository) Modify(source, output *domain.FileNode) (*domain.Item, *domain.Item, error) {
	oldItem, err := r.Read(output)
	if err != nil && !errors.Is(err, ErrCorruptArtifact) {
		return nil, nil, err
	}
	if err != nil {
		r.logger.Warn("replacing unreadable artifact", "path", output.RelativePath, "error", err)
		oldItem = nil
	}

	newItem, err := r.generate(source)
	if err != nil {
		return nil, nil, err
	}

	if newPath := r.artifactPath(source.Key, newItem.Fingerprint); filepath.Clean(newPath) != filepath.Clean(output.FullPath) {
		if err := os.Remove(output.FullPath); err != nil && !os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("failed to remove previous artifact: %w", err)
		}
		RemoveEmptyParents(filepath.Dir(output.FullPath), r.artifactRoot)
	}

	return newItem, oldItem, nil
}

// Read loads an existing artifact without modifying it
func (r *Repository) Read(output *domain.FileNode) (*domain.Item, error) {
	var a artifact
	if err := ReadJSON(output.FullPath, &a); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read artifact %s: %w", output.RelativePath, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
	}
	if a.Header == nil {
		a.Header = domain.Header{}
	}
	return &domain.Item{
		Fingerprint: a.Fingerprint,
		Source:      a.Source,
		URL:         r.urlFor(output.FullPath),
		Header:      a.Header,
		Body:        a.Body,
	}, nil
}

func (r *Repository) generate(source *domain.FileNode) (*domain.Item, error) {
	data, err := os.ReadFile(source.FullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %s: %w", source.RelativePath, err)
	}

	header, body, err := frontmatter.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source.RelativePath, err)
	}
	header, err = jsonHeader(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source.RelativePath, err)
	}

	// Recomputed so the artifact matches the bytes actually read
	fp := fingerprint.Source(source.RelativePath, data)
	path := r.artifactPath(source.Key, fp)

	a := artifact{
		Fingerprint: fp,
		Header:      header,
		Body:        body,
		Source:      source.RelativePath,
	}
	if err := WriteJSON(path, a); err != nil {
		return nil, err
	}

	return &domain.Item{
		Fingerprint: fp,
		Source:      source.RelativePath,
		URL:         r.urlFor(path),
		Header:      header,
		Body:        body,
	}, nil
}

// jsonHeader converts header to the values it decodes to when read back
// from an artifact, so indices see the same header on create and delete
func jsonHeader(header domain.Header) (domain.Header, error) {
	data, err := json.Marshal(header)
	if err != nil {
		return nil, fmt.Errorf("failed to encode header: %w", err)
	}
	normalized := domain.Header{}
	if err := json.Unmarshal(data, &normalized); err != nil {
		return nil, fmt.Errorf("failed to decode header: %w", err)
	}
	return normalized, nil
}

func (r *Repository) artifactPath(key, fp string) string {
	name := key
	if r.hashedNames {
		name += "." + fingerprint.Short(fp, hashSuffixLen)
	}
	return filepath.Join(r.artifactRoot, filepath.FromSlash(name)+ArtifactExt)
}

func (r *Repository) urlFor(fullPath string) string {
	return PublicURL(r.baseURL, r.outputRoot, fullPath)
}

// SourcePath resolves an item's source relative path under inputRoot
func SourcePath(inputRoot, source string) string {
	return filepath.Join(inputRoot, filepath.FromSlash(strings.TrimPrefix(source, "/")))
}
