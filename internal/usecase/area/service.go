package area

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/campusdir/internal/domain"
	domarea "github.com/kailas-cloud/campusdir/internal/domain/area"
)

// Service exposes read access to areas. Areas are loaded by the seed tool only.
type Service struct {
	repo Repository
}

// New creates an area service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns a ground area by id, or domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (domarea.Area, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return domarea.Area{}, fmt.Errorf("get area: %w", err)
	}
	return a, nil
}

// List returns every ground area.
func (s *Service) List(ctx context.Context) ([]domarea.Area, error) {
	as, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	return as, nil
}

// ListCommon returns the common areas of a building; none yields domain.ErrNotFound.
func (s *Service) ListCommon(ctx context.Context, buildingID string) ([]domarea.Area, error) {
	as, err := s.repo.ListCommon(ctx, buildingID)
	if err != nil {
		return nil, fmt.Errorf("list common areas: %w", err)
	}
	if len(as) == 0 {
		return nil, fmt.Errorf("no areas found for building %s: %w", buildingID, domain.ErrNotFound)
	}
	return as, nil
}
