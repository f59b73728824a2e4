package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
	return path
}

func setupSource(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "hello.md", "---\ntitle: Hello\n---\nbody")
	writeFile(t, root, "go/intro.markdown", "intro")
	writeFile(t, root, "go/deep/notes.md", "notes")
	writeFile(t, root, "drafts/wip.md", "wip")
	writeFile(t, root, ".hidden/secret.md", "secret")
	writeFile(t, root, "image.png", "png")
	writeFile(t, root, ".postsignore", "drafts/\n")
	return root
}

func TestSourceTree(t *testing.T) {
	root := setupSource(t)
	s := NewSnapshotter(WithIgnoreFile(filepath.Join(root, ".postsignore")))

	tree, err := s.SourceTree(context.Background(), root)
	if err != nil {
		t.Fatalf("SourceTree failed: %v", err)
	}

	leaves, err := tree.Leaves()
	if err != nil {
		t.Fatalf("Leaves failed: %v", err)
	}

	want := []string{"hello", "go/intro", "go/deep/notes"}
	if len(leaves) != len(want) {
		t.Fatalf("expected %d leaves, got %d: %v", len(want), len(leaves), leaves)
	}
	for _, key := range want {
		leaf, ok := leaves[key]
		if !ok {
			t.Errorf("missing key %s", key)
			continue
		}
		if leaf.Fingerprint == "" {
			t.Errorf("leaf %s has no fingerprint", key)
		}
	}
	if _, ok := leaves["drafts/wip"]; ok {
		t.Error("ignored file should not be in snapshot")
	}
	if leaves["go/intro"].RelativePath != "go/intro.markdown" {
		t.Errorf("unexpected relative path %s", leaves["go/intro"].RelativePath)
	}
}

func TestSourceTree_FingerprintTracksContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "one")
	s := NewSnapshotter()

	first, err := s.SourceTree(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, root, "a.md", "two")
	second, err := s.SourceTree(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}

	if first.Children[0].Fingerprint == second.Children[0].Fingerprint {
		t.Error("fingerprint should change with content")
	}
}

func TestOutputTree_MissingRootIsEmpty(t *testing.T) {
	s := NewSnapshotter()
	tree, err := s.OutputTree(context.Background(), filepath.Join(t.TempDir(), "none"))
	if err != nil {
		t.Fatalf("OutputTree failed: %v", err)
	}
	if !tree.IsDir() || len(tree.Children) != 0 {
		t.Errorf("expected empty directory node, got %+v", tree)
	}
}

func TestOutputTree_ReadsEmbeddedFingerprint(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "go/intro.json", `{"fingerprint":"0123456789abcdef"}`)
	writeFile(t, root, "broken.json", `{not json`)
	writeFile(t, root, "readme.txt", "ignored")

	tree, err := NewSnapshotter().OutputTree(context.Background(), root)
	if err != nil {
		t.Fatalf("OutputTree failed: %v", err)
	}
	leaves, _ := tree.Leaves()

	if len(leaves) != 2 {
		t.Fatalf("expected 2 leaves, got %d", len(leaves))
	}
	if got := leaves["go/intro"].Fingerprint; got != "0123456789abcdef" {
		t.Errorf("expected embedded fingerprint, got %q", got)
	}
	if got := leaves["broken"].Fingerprint; got != "" {
		t.Errorf("broken artifact should have empty fingerprint, got %q", got)
	}
}

func TestArtifactKey(t *testing.T) {
	tests := []struct {
		rel    string
		hashed bool
		want   string
	}{
		{"go/intro.json", false, "go/intro"},
		{"go/intro.0123abcd.json", true, "go/intro"},
		{"go/intro.0123abcd.json", false, "go/intro.0123abcd"},
		{"v1.2.json", true, "v1.2"},
	}

	for _, tt := range tests {
		if got := ArtifactKey(tt.rel, tt.hashed); got != tt.want {
			t.Errorf("ArtifactKey(%q, %v) = %q, want %q", tt.rel, tt.hashed, got, tt.want)
		}
	}
}

func TestSourceKey(t *testing.T) {
	if got := SourceKey("go/intro.markdown"); got != "go/intro" {
		t.Errorf("unexpected key %q", got)
	}
}
