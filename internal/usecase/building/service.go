package building

import (
	"context"
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/kailas-cloud/campusdir/internal/domain"
	dombuilding "github.com/kailas-cloud/campusdir/internal/domain/building"
	"github.com/kailas-cloud/campusdir/internal/usecase/validate"
)

// CreateInput carries a create-building request. Only ID is checked; the rest is stored as given.
type CreateInput struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Location    json.RawMessage `json:"location"`
}

// Validate checks the id.
func (in *CreateInput) Validate() error {
	return validation.ValidateStruct(in,
		validation.Field(&in.ID, validation.Required, validate.DocumentID),
	)
}

// Service handles building creation and lookup.
type Service struct {
	repo Repository
}

// New creates a building service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new building. A taken id yields domain.ErrAlreadyExists.
func (s *Service) Create(ctx context.Context, in CreateInput) (dombuilding.Building, error) {
	fields, err := validate.Fields(0, in.Validate())
	if err != nil {
		return dombuilding.Building{}, err
	}
	if len(fields) > 0 {
		return dombuilding.Building{}, domain.NewValidationError(fields)
	}

	b, err := dombuilding.New(in.ID, in.Name, in.Description, in.Location)
	if err != nil {
		return dombuilding.Building{}, err
	}
	if err := s.repo.Create(ctx, &b); err != nil {
		return dombuilding.Building{}, fmt.Errorf("create building: %w", err)
	}
	return b, nil
}

// Get returns a building by id, or domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (dombuilding.Building, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return dombuilding.Building{}, fmt.Errorf("get building: %w", err)
	}
	return b, nil
}

// List returns every building; an empty directory is not an error.
func (s *Service) List(ctx context.Context) ([]dombuilding.Building, error) {
	bs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	return bs, nil
}
