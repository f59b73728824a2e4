package commands

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postsmith/internal/adapters/filesystem"
	"postsmith/internal/adapters/index"
	"postsmith/internal/application"
	"postsmith/internal/domain"
	"postsmith/internal/logging"
	"postsmith/internal/ports"
)

type site struct {
	input   string
	output  string
	history *fakeHistory

	collection bool
	tagVersion string
	categories bool
}

func newSite(t *testing.T) *site {
	t.Helper()
	base := t.TempDir()
	s := &site{
		input:      filepath.Join(base, "content"),
		output:     filepath.Join(base, "public"),
		history:    &fakeHistory{},
		collection: true,
		tagVersion: "t1",
	}
	require.NoError(t, os.MkdirAll(s.input, 0755))
	return s
}

func (s *site) write(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(s.input, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func (s *site) remove(t *testing.T, rel string) {
	t.Helper()
	require.NoError(t, os.Remove(filepath.Join(s.input, filepath.FromSlash(rel))))
}

func (s *site) opts(dir, version string) index.Options {
	return index.Options{
		OutputRoot:   s.output,
		Dir:          dir,
		BaseURL:      "https://example.com",
		ItemsPerPage: 2,
		Sort:         domain.SortLexAscend,
		Excerpt:      domain.ExcerptOptions{Rule: domain.ExcerptCustomTag},
		Version:      version,
		Logger:       logging.Discard(),
	}
}

func (s *site) indices() []ports.Index {
	var indices []ports.Index
	if s.collection {
		indices = append(indices, index.NewCollection(s.opts("collection", "c1")))
	}
	indices = append(indices, index.NewTagger(s.opts("tags", s.tagVersion), "tags"))
	if s.categories {
		indices = append(indices, index.NewClassifier(s.opts("categories", "k1"), "categories", index.RuleFrontmatter))
	}
	return indices
}

func (s *site) command() *BuildCommand {
	artifacts := filepath.Join(s.output, "posts")
	return NewBuildCommand(
		filesystem.NewSnapshotter(),
		filesystem.NewRepository(s.output, artifacts, "https://example.com", false, logging.Discard()),
		s.indices(),
		s.history,
		logging.Discard(),
		s.input, s.output, artifacts,
	)
}

func (s *site) build(t *testing.T) *BuildResult {
	t.Helper()
	result, err := s.command().Execute(context.Background())
	require.NoError(t, err)
	return result
}

func (s *site) reader() *index.Reader {
	dir := ""
	if s.categories {
		dir = "categories"
	}
	return index.NewReader(s.output, "collection", "tags", dir)
}

func snapshotFiles(t *testing.T, root string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		files[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestBuild_ExcerptAndTags(t *testing.T) {
	s := newSite(t)
	s.write(t, "post.md", "---\ntitle: Post\ntags: [x, y]\n---\nhello <!--more-->world")

	result := s.build(t)
	assert.Equal(t, 1, result.Run.Stats.Created)
	assert.ElementsMatch(t, []string{"collection", "tags"}, result.Run.Stats.Saved)

	posts, err := s.reader().Posts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello ", posts[0].Excerpt)
	assert.Equal(t, "https://example.com/posts/post.json", posts[0].URL)

	for _, tag := range []string{"x", "y"} {
		bucket, err := s.reader().Tag(tag)
		require.NoError(t, err)
		require.Len(t, bucket.Items, 1)
		assert.Equal(t, posts[0].Fingerprint, bucket.Items[0].Fingerprint)
		assert.Len(t, bucket.PageURLs, 1)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	s := newSite(t)
	s.write(t, "a.md", "---\ntags: [go]\n---\nA")
	s.write(t, "sub/b.md", "---\ntags: [go, web]\n---\nB")
	s.write(t, "c.md", "C")

	s.build(t)
	before := snapshotFiles(t, s.output)

	result := s.build(t)
	assert.Empty(t, result.Changes)
	assert.Empty(t, result.Run.Stats.Saved)
	assert.Equal(t, "Up to date", result.Message)
	assert.Equal(t, before, snapshotFiles(t, s.output))
}

func TestBuild_DiffCreateModifyDelete(t *testing.T) {
	s := newSite(t)
	s.write(t, "b.md", "---\ntags: [keep]\n---\nB1")
	s.write(t, "c.md", "---\ntags: [gone]\n---\nC")
	s.build(t)

	s.write(t, "a.md", "A")
	s.write(t, "b.md", "---\ntags: [keep]\n---\nB2")
	s.remove(t, "c.md")

	result := s.build(t)
	require.Len(t, result.Changes, 3)
	assert.Equal(t, domain.ChangeCreate, result.Changes[0].Kind)
	assert.Equal(t, "a", result.Changes[0].Key())
	assert.Equal(t, domain.ChangeModify, result.Changes[1].Kind)
	assert.Equal(t, "b", result.Changes[1].Key())
	assert.Equal(t, domain.ChangeDelete, result.Changes[2].Kind)
	assert.Equal(t, "c", result.Changes[2].Key())

	assert.NoFileExists(t, filepath.Join(s.output, "posts", "c.json"))

	tags, err := s.reader().Tags()
	require.NoError(t, err)
	assert.NotContains(t, tags, "gone", "emptied tag should be dropped")
	assert.NoFileExists(t, filepath.Join(s.output, "tags", "pages", "gone_1.json"))
	require.Len(t, tags["keep"].Items, 1)

	posts, err := s.reader().Posts()
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestBuild_ForcedRebuildOnConfigChange(t *testing.T) {
	s := newSite(t)
	s.write(t, "a.md", "---\ntags: [go]\n---\nA")
	s.build(t)

	collectionBefore, err := os.ReadFile(filepath.Join(s.output, "collection", "collection.json"))
	require.NoError(t, err)

	s.tagVersion = "t2"
	result := s.build(t)

	assert.Empty(t, result.Changes)
	assert.Equal(t, []string{"tags"}, result.Run.Stats.Saved)
	assert.Equal(t, []string{"tags"}, result.Run.Stats.Reseeded)

	collectionAfter, err := os.ReadFile(filepath.Join(s.output, "collection", "collection.json"))
	require.NoError(t, err)
	assert.Equal(t, collectionBefore, collectionAfter)

	bucket, err := s.reader().Tag("go")
	require.NoError(t, err)
	assert.Len(t, bucket.Items, 1, "reset index is refilled from artifacts")
}

func TestBuild_ForceSavesEverything(t *testing.T) {
	s := newSite(t)
	s.write(t, "a.md", "A")
	s.build(t)

	cmd := s.command()
	cmd.Force = true
	result, err := cmd.Execute(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"collection", "tags"}, result.Run.Stats.Saved)
	assert.True(t, result.Run.Stats.Forced)
}

func TestBuild_IndexEnabledLater(t *testing.T) {
	s := newSite(t)
	s.write(t, "a.md", "---\ncategories: [lang, go]\n---\nA")
	s.build(t)

	s.categories = true
	result := s.build(t)
	assert.Equal(t, []string{"categories"}, result.Run.Stats.Saved)

	node, err := s.reader().Category([]string{"lang", "go"})
	require.NoError(t, err)
	assert.Len(t, node.Items, 1)
}

func TestBuild_CorruptIndexRecovers(t *testing.T) {
	s := newSite(t)
	s.write(t, "a.md", "---\ntags: [go]\n---\nA")
	s.build(t)

	require.NoError(t, os.WriteFile(filepath.Join(s.output, "tags", "tags.json"), []byte("{broken"), 0644))

	result := s.build(t)
	assert.Contains(t, result.Run.Stats.Reseeded, "tags")

	bucket, err := s.reader().Tag("go")
	require.NoError(t, err)
	assert.Len(t, bucket.Items, 1)
}

func TestBuild_Pagination(t *testing.T) {
	s := newSite(t)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		s.write(t, name+".md", "---\ntitle: "+name+"\n---\n"+name)
	}
	s.build(t)

	pages := filepath.Join(s.output, "collection", "pages")
	for _, name := range []string{"collection_1.json", "collection_2.json", "collection_3.json"} {
		assert.FileExists(t, filepath.Join(pages, name))
	}

	s.remove(t, "e.md")
	s.remove(t, "d.md")
	s.build(t)
	assert.NoFileExists(t, filepath.Join(pages, "collection_3.json"), "shrinking must not leave orphan pages")
}

func TestBuild_Clean(t *testing.T) {
	s := newSite(t)
	s.write(t, "a.md", "A")
	s.build(t)

	stray := filepath.Join(s.output, "posts", "stray.json")
	require.NoError(t, os.WriteFile(stray, []byte(`{"fingerprint":"x"}`), 0644))

	cmd := s.command()
	cmd.Clean = true
	result, err := cmd.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Run.Stats.Created)
	assert.NoFileExists(t, stray)
}

func TestBuild_SourceMissing(t *testing.T) {
	s := newSite(t)
	require.NoError(t, os.RemoveAll(s.input))

	_, err := s.command().Execute(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, application.ErrSourceMissing))
	assert.True(t, errors.Is(err, application.ErrFatal))
}

func TestBuild_RecordsHistory(t *testing.T) {
	s := newSite(t)
	s.write(t, "a.md", "A")
	s.build(t)

	require.Len(t, s.history.runs, 1)
	assert.Equal(t, 1, s.history.runs[0].Stats.Created)
	assert.Equal(t, s.output, s.history.runs[0].OutputPath)

	s.history.err = errors.New("disk full")
	s.write(t, "b.md", "B")
	result := s.build(t)
	assert.Equal(t, 1, result.Run.Stats.Created, "ledger failures are not fatal")
}

func TestCleanCommand(t *testing.T) {
	s := newSite(t)
	s.write(t, "a.md", "---\ntags: [go]\n---\nA")
	s.build(t)

	result, err := NewCleanCommand(s.indices(), filepath.Join(s.output, "posts")).Execute(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, result.Message)

	assert.NoDirExists(t, filepath.Join(s.output, "posts"))
	assert.NoDirExists(t, filepath.Join(s.output, "tags"))
	assert.NoDirExists(t, filepath.Join(s.output, "collection"))
}

func TestBuild_MissingArtifactsDoNotDuplicateEntries(t *testing.T) {
	s := newSite(t)
	s.categories = true
	s.write(t, "a.md", "---\ntitle: A\ntags: [x]\ncategories: [lang]\n---\nbody")
	s.build(t)

	require.NoError(t, os.RemoveAll(filepath.Join(s.output, "posts")))
	result := s.build(t)
	assert.Equal(t, 1, result.Run.Stats.Created)

	posts, err := s.reader().Posts()
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	tag, err := s.reader().Tag("x")
	require.NoError(t, err)
	assert.Len(t, tag.Items, 1)

	lang, err := s.reader().Category([]string{"lang"})
	require.NoError(t, err)
	assert.Len(t, lang.Items, 1)
}

func TestBuild_CorruptArtifactIsReplaced(t *testing.T) {
	s := newSite(t)
	s.write(t, "a.md", "---\ntitle: A\ntags: [x]\n---\nv1")
	s.build(t)

	artifact := filepath.Join(s.output, "posts", "a.json")
	require.NoError(t, os.WriteFile(artifact, []byte("{broken"), 0644))
	s.write(t, "a.md", "---\ntitle: A\ntags: [x]\n---\nv2")

	result := s.build(t)
	assert.Equal(t, 1, result.Run.Stats.Modified)

	posts, err := s.reader().Posts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "a.md", posts[0].Source)

	tag, err := s.reader().Tag("x")
	require.NoError(t, err)
	require.Len(t, tag.Items, 1)
	assert.Equal(t, posts[0].Fingerprint, tag.Items[0].Fingerprint)
}

func TestBuild_CorruptArtifactOfDeletedSource(t *testing.T) {
	s := newSite(t)
	s.write(t, "a.md", "---\ntags: [x]\n---\nbody")
	s.write(t, "b.md", "---\ntags: [y]\n---\nbody")
	s.build(t)

	require.NoError(t, os.WriteFile(filepath.Join(s.output, "posts", "a.json"), []byte("{broken"), 0644))
	s.remove(t, "a.md")

	result := s.build(t)
	assert.Equal(t, 1, result.Run.Stats.Deleted)

	posts, err := s.reader().Posts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "b.md", posts[0].Source)

	tags, err := s.reader().Tags()
	require.NoError(t, err)
	assert.NotContains(t, tags, "x")
	assert.NoFileExists(t, filepath.Join(s.output, "tags", "pages", "x_1.json"))
}

func TestBuild_NumericTagIsRemovedWithItsPost(t *testing.T) {
	s := newSite(t)
	s.write(t, "a.md", "---\ntags: [12345678]\n---\nbody")
	s.build(t)

	tags, err := s.reader().Tags()
	require.NoError(t, err)
	assert.Contains(t, tags, "12345678")

	s.remove(t, "a.md")
	s.build(t)

	tags, err = s.reader().Tags()
	require.NoError(t, err)
	assert.Empty(t, tags)
}
