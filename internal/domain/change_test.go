package domain

import (
	"errors"
	"testing"
)

func dir(key string, children ...*FileNode) *FileNode {
	n := NewDirNode(key, "/"+key, key)
	n.Children = append(n.Children, children...)
	return n
}

func leaf(key, fingerprint string) *FileNode {
	return NewLeafNode(key, "/"+key, key, fingerprint)
}

func TestCompare_CreateModifyDelete(t *testing.T) {
	source := dir("content", leaf("A", "a1"), leaf("B", "b2"))
	output := dir("public", leaf("B", "b1"), leaf("C", "c1"))

	changes, err := Compare(source, output)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	want := []struct {
		kind ChangeKind
		key  string
	}{
		{ChangeCreate, "A"},
		{ChangeModify, "B"},
		{ChangeDelete, "C"},
	}
	if len(changes) != len(want) {
		t.Fatalf("expected %d changes, got %d: %+v", len(want), len(changes), changes)
	}
	for i, w := range want {
		if changes[i].Kind != w.kind || changes[i].Key() != w.key {
			t.Errorf("change %d: expected %s(%s), got %s(%s)", i, w.kind, w.key, changes[i].Kind, changes[i].Key())
		}
	}

	if changes[1].Source.Fingerprint != "b2" || changes[1].Output.Fingerprint != "b1" {
		t.Errorf("modify should carry both nodes, got %+v", changes[1])
	}
	if changes[2].Source != nil {
		t.Error("delete should not carry a source node")
	}
}

func TestCompare_UnchangedFingerprintIsSkipped(t *testing.T) {
	source := dir("content", leaf("A", "a1"), leaf("B", "b1"))
	output := dir("public", leaf("B", "b1"), leaf("C", "c1"))

	changes, err := Compare(source, output)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}
	for _, c := range changes {
		if c.Key() == "B" {
			t.Errorf("unchanged B should not produce a change, got %s", c.Kind)
		}
	}
}

func TestCompare_NestedKeysIgnoreRootName(t *testing.T) {
	source := dir("src", dir("go", leaf("go/intro", "x")))
	output := dir("out", dir("go", leaf("go/intro", "x")))

	changes, err := Compare(source, output)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("expected no changes, got %+v", changes)
	}
}

func TestCompare_DuplicateKey(t *testing.T) {
	source := dir("src", leaf("post", "a"), leaf("post", "b"))
	output := dir("out")

	_, err := Compare(source, output)
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestCountChanges(t *testing.T) {
	changes := []Change{
		{Kind: ChangeCreate},
		{Kind: ChangeCreate},
		{Kind: ChangeModify},
		{Kind: ChangeDelete},
	}
	created, modified, deleted := CountChanges(changes)
	if created != 2 || modified != 1 || deleted != 1 {
		t.Errorf("got created=%d modified=%d deleted=%d", created, modified, deleted)
	}
}

func TestFileNode_IsDir(t *testing.T) {
	if !NewDirNode("", "/x", "").IsDir() {
		t.Error("empty directory should still be a directory")
	}
	if leaf("a", "f").IsDir() {
		t.Error("leaf should not be a directory")
	}
	if got := dir("r", leaf("a", "1"), dir("d", leaf("d/b", "2"))).Count(); got != 2 {
		t.Errorf("expected 2 leaves, got %d", got)
	}
}
