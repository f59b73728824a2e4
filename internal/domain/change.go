package domain

import (
	"errors"
	"sort"
)

// ErrDuplicateKey is returned when two files of one snapshot map to the same key
var ErrDuplicateKey = errors.New("duplicate snapshot key")

// ChangeKind identifies the operation a Change asks for
type ChangeKind int

const (
	ChangeCreate ChangeKind = iota
	ChangeModify
	ChangeDelete
)

// String returns the string representation of the change kind
func (k ChangeKind) String() string {
	switch k {
	case ChangeCreate:
		return "create"
	case ChangeModify:
		return "modify"
	case ChangeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Change is one unit of work produced by Compare. Create carries only
// Source, Delete only Output, Modify both.
type Change struct {
	Kind   ChangeKind
	Source *FileNode
	Output *FileNode
}

// Key returns the snapshot key the change applies to
func (c Change) Key() string {
	if c.Source != nil {
		return c.Source.Key
	}
	if c.Output != nil {
		return c.Output.Key
	}
	return ""
}

// Compare diffs a source snapshot against an output snapshot by key and
// fingerprint. Renames surface as a Delete plus a Create. The result is
// ordered by key so that runs over the same trees apply changes identically.
func Compare(source, output *FileNode) ([]Change, error) {
	sourceLeaves, err := source.Leaves()
	if err != nil {
		return nil, err
	}
	outputLeaves, err := output.Leaves()
	if err != nil {
		return nil, err
	}

	var changes []Change
	for key, src := range sourceLeaves {
		out, exists := outputLeaves[key]
		switch {
		case !exists:
			changes = append(changes, Change{Kind: ChangeCreate, Source: src})
		case out.Fingerprint != src.Fingerprint:
			changes = append(changes, Change{Kind: ChangeModify, Source: src, Output: out})
		}
	}
	for key, out := range outputLeaves {
		if _, exists := sourceLeaves[key]; !exists {
			changes = append(changes, Change{Kind: ChangeDelete, Output: out})
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Key() < changes[j].Key()
	})
	return changes, nil
}

// CountChanges tallies changes by kind
func CountChanges(changes []Change) (created, modified, deleted int) {
	for _, c := range changes {
		switch c.Kind {
		case ChangeCreate:
			created++
		case ChangeModify:
			modified++
		case ChangeDelete:
			deleted++
		}
	}
	return
}
