package mock

import (
	"context"

	"github.com/fwojciec/starprep"
)

// Compile-time interface verification.
var _ starprep.StoryGenerator = (*StoryGenerator)(nil)

// StoryGenerator is a mock implementation of starprep.StoryGenerator.
type StoryGenerator struct {
	GenerateStoryFn func(ctx context.Context, req starprep.GenerateRequest) (starprep.Story, error)
}

func (g *StoryGenerator) GenerateStory(ctx context.Context, req starprep.GenerateRequest) (starprep.Story, error) {
	return g.GenerateStoryFn(ctx, req)
}
