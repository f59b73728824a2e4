package domain

import "time"

// LoadState reports what an index found when hydrating from disk
type LoadState int

const (
	LoadLoaded LoadState = iota
	LoadMissing
	LoadCorrupt
)

// String returns the string representation of the load state
func (s LoadState) String() string {
	switch s {
	case LoadLoaded:
		return "loaded"
	case LoadMissing:
		return "missing"
	case LoadCorrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// BuildStats holds statistics from one build run
type BuildStats struct {
	Created  int
	Modified int
	Deleted  int
	Saved    []string // Index names persisted this run
	Reseeded []string // Index names rebuilt from existing artifacts
	Forced   bool
	Duration time.Duration
}

// Changes returns the number of applied source changes
func (s BuildStats) Changes() int {
	return s.Created + s.Modified + s.Deleted
}

// BuildRun is one recorded entry of the build ledger
type BuildRun struct {
	ID         string
	StartedAt  time.Time
	OutputPath string
	Stats      BuildStats
}
