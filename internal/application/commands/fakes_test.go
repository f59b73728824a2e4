package commands

import (
	"context"
	"errors"
	"fmt"

	"postsmith/internal/domain"
)

type fakeReader struct {
	posts      []domain.Entry
	tags       map[string]domain.Bucket
	categories *domain.CategoryNode
}

var errDisabled = errors.New("disabled")

func (f *fakeReader) Posts() ([]domain.Entry, error) {
	if f.posts == nil {
		return nil, errDisabled
	}
	return f.posts, nil
}

func (f *fakeReader) Tags() (map[string]domain.Bucket, error) {
	if f.tags == nil {
		return nil, errDisabled
	}
	return f.tags, nil
}

func (f *fakeReader) Tag(name string) (*domain.Bucket, error) {
	b, ok := f.tags[name]
	if !ok {
		return nil, fmt.Errorf("no tag %s", name)
	}
	return &b, nil
}

func (f *fakeReader) Categories() (*domain.CategoryNode, error) {
	if f.categories == nil {
		return nil, errDisabled
	}
	return f.categories, nil
}

func (f *fakeReader) Category(path []string) (*domain.CategoryNode, error) {
	root, err := f.Categories()
	if err != nil {
		return nil, err
	}
	node := root.Descend(path, false)
	if node == nil {
		return nil, fmt.Errorf("no category %v", path)
	}
	return node, nil
}

type fakeHistory struct {
	runs []domain.BuildRun
	err  error
}

func (f *fakeHistory) Record(_ context.Context, run *domain.BuildRun) error {
	if f.err != nil {
		return f.err
	}
	f.runs = append([]domain.BuildRun{*run}, f.runs...)
	return nil
}

func (f *fakeHistory) Recent(_ context.Context, limit int) ([]domain.BuildRun, error) {
	if limit > len(f.runs) {
		limit = len(f.runs)
	}
	return f.runs[:limit], nil
}

func (f *fakeHistory) Close() error { return nil }
