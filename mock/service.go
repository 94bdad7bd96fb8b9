// Package mock provides hand-written mocks for starprep interfaces.
package mock

import (
	"context"

	"github.com/fwojciec/starprep"
)

// Compile-time interface verification.
var _ starprep.StoryService = (*StoryService)(nil)

// StoryService is a mock implementation of starprep.StoryService.
type StoryService struct {
	ListStoriesFn      func(ctx context.Context) ([]starprep.Story, error)
	CreateStoryFn      func(ctx context.Context, story starprep.Story) (starprep.Story, error)
	UpdateStoryFn      func(ctx context.Context, id int64, patch starprep.StoryPatch) (starprep.Story, error)
	DeleteStoryFn      func(ctx context.Context, id int64) error
	AnalyzeStoryFn     func(ctx context.Context, id int64) (*starprep.Analysis, error)
	StorySuggestionsFn func(ctx context.Context, id int64) (*starprep.Suggestions, error)
	StoryVariationsFn  func(ctx context.Context, req starprep.VariationsRequest) (*starprep.Variations, error)
}

func (s *StoryService) ListStories(ctx context.Context) ([]starprep.Story, error) {
	return s.ListStoriesFn(ctx)
}

func (s *StoryService) CreateStory(ctx context.Context, story starprep.Story) (starprep.Story, error) {
	return s.CreateStoryFn(ctx, story)
}

func (s *StoryService) UpdateStory(ctx context.Context, id int64, patch starprep.StoryPatch) (starprep.Story, error) {
	return s.UpdateStoryFn(ctx, id, patch)
}

func (s *StoryService) DeleteStory(ctx context.Context, id int64) error {
	return s.DeleteStoryFn(ctx, id)
}

func (s *StoryService) AnalyzeStory(ctx context.Context, id int64) (*starprep.Analysis, error) {
	return s.AnalyzeStoryFn(ctx, id)
}

func (s *StoryService) StorySuggestions(ctx context.Context, id int64) (*starprep.Suggestions, error) {
	return s.StorySuggestionsFn(ctx, id)
}

func (s *StoryService) StoryVariations(ctx context.Context, req starprep.VariationsRequest) (*starprep.Variations, error) {
	return s.StoryVariationsFn(ctx, req)
}
