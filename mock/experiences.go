package mock

import (
	"context"

	"github.com/fwojciec/starprep"
)

// Compile-time interface verification.
var _ starprep.ExperienceService = (*ExperienceService)(nil)

// ExperienceService is a mock implementation of starprep.ExperienceService.
type ExperienceService struct {
	ListExperiencesFn func(ctx context.Context) ([]starprep.Experience, error)
}

func (s *ExperienceService) ListExperiences(ctx context.Context) ([]starprep.Experience, error) {
	return s.ListExperiencesFn(ctx)
}
