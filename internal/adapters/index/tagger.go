package index

import (
	"net/url"
	"sort"

	"postsmith/internal/domain"
	"postsmith/internal/ports"
)

type taggerDoc struct {
	Version string                    `json:"version"`
	Tags    map[string]*domain.Bucket `json:"tags"`
}

// Tagger groups posts by the tags listed in a header field. A tag whose
// bucket empties is dropped together with its pages.
type Tagger struct {
	base
	propName string
	tags     map[string]*domain.Bucket
	dropped  map[string]bool
}

var _ ports.Index = (*Tagger)(nil)

// NewTagger creates a Tagger reading tags from header field propName
func NewTagger(opts Options, propName string) *Tagger {
	return &Tagger{
		base:     newBase("tags", "tags.json", opts),
		propName: propName,
		tags:     make(map[string]*domain.Bucket),
		dropped:  make(map[string]bool),
	}
}

// Load hydrates the tag map from disk
func (t *Tagger) Load() (domain.LoadState, error) {
	var doc taggerDoc
	state, err := t.load(&doc)
	if state != domain.LoadLoaded {
		return state, err
	}
	t.tags = doc.Tags
	if t.tags == nil {
		t.tags = make(map[string]*domain.Bucket)
	}
	t.dropped = make(map[string]bool)
	t.previous = doc.Version
	return state, nil
}

// Init resets the tagger to no tags
func (t *Tagger) Init() error {
	t.tags = make(map[string]*domain.Bucket)
	t.dropped = make(map[string]bool)
	return nil
}

// Collect adds item to the bucket of every tag it names. Entries already
// held for the same post are dropped first, from every bucket.
func (t *Tagger) Collect(item *domain.Item) error {
	if t.forget(item) {
		t.logger.Debug("replacing stale entry", "source", item.Source)
	}
	names := item.Header.Strings(t.propName)
	if len(names) == 0 {
		return nil
	}
	e, err := t.entry(item)
	if err != nil {
		return err
	}
	for _, name := range names {
		bucket, ok := t.tags[name]
		if !ok {
			bucket = &domain.Bucket{Items: []domain.Entry{}, PageURLs: []string{}}
			t.tags[name] = bucket
		}
		bucket.Items = append(bucket.Items, e)
		delete(t.dropped, name)
	}
	return nil
}

// Delete removes item from the buckets named by its stored header. When
// those hold nothing for the post (an unreadable artifact has no header)
// every bucket is searched.
func (t *Tagger) Delete(item *domain.Item) error {
	if item == nil {
		return nil
	}
	removed := false
	for _, name := range item.Header.Strings(t.propName) {
		if t.removeFrom(name, item) {
			removed = true
		}
	}
	if !removed && !t.forget(item) {
		t.logger.Debug("no entry to delete", "source", item.Source)
	}
	return nil
}

// removeFrom drops item's post from one bucket, dropping the bucket once
// it is empty
func (t *Tagger) removeFrom(name string, item *domain.Item) bool {
	bucket, ok := t.tags[name]
	if !ok {
		return false
	}
	var removed bool
	bucket.Items, removed = domain.RemovePost(bucket.Items, item)
	if len(bucket.Items) == 0 {
		delete(t.tags, name)
		t.dropped[name] = true
	}
	return removed
}

// forget drops item's post from every bucket
func (t *Tagger) forget(item *domain.Item) bool {
	removed := false
	for name := range t.tags {
		if t.removeFrom(name, item) {
			removed = true
		}
	}
	return removed
}

// Modify moves item from its old tags to its new ones
func (t *Tagger) Modify(newItem, oldItem *domain.Item) error {
	if err := t.Delete(oldItem); err != nil {
		return err
	}
	return t.Collect(newItem)
}

// Tags returns the sorted tag names
func (t *Tagger) Tags() []string {
	names := make([]string, 0, len(t.tags))
	for name := range t.tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bucket returns the bucket of name, or nil
func (t *Tagger) Bucket(name string) *domain.Bucket {
	return t.tags[name]
}

// Save paginates every tag, removes pages of dropped tags and persists
// the tag map
func (t *Tagger) Save() error {
	for name := range t.dropped {
		if err := t.paginator.Clean(tagPrefix(name)); err != nil {
			return err
		}
	}
	t.dropped = make(map[string]bool)

	for _, name := range t.Tags() {
		bucket := t.tags[name]
		urls, err := t.paginate(bucket.Items, tagPrefix(name))
		if err != nil {
			return err
		}
		bucket.PageURLs = urls
	}

	return t.save(taggerDoc{Version: t.current, Tags: t.tags})
}

func tagPrefix(name string) string {
	return segment(name)
}

// segment makes a tag or category name safe as a single path element
func segment(name string) string {
	escaped := url.PathEscape(name)
	switch escaped {
	case ".":
		return "%2E"
	case "..":
		return "%2E%2E"
	}
	return escaped
}
