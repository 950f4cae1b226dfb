package room

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"github.com/kailas-cloud/campusdir/internal/domain"
	domroom "github.com/kailas-cloud/campusdir/internal/domain/room"
	"github.com/kailas-cloud/campusdir/internal/logger"
	"github.com/kailas-cloud/campusdir/internal/usecase/validate"
)

// Input carries one room of a create request.
type Input struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level"`
}

// validate requires every field, for single creates and batch elements alike.
func (in *Input) validate() error {
	return validation.ValidateStruct(in,
		validation.Field(&in.ID, validation.Required, validate.DocumentID),
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Level, validation.Required),
	)
}

// Service handles rooms of a building.
type Service struct {
	repo Repository
}

// New creates a room service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a single room. Id, name and level are required; a taken room id
// yields domain.ErrAlreadyExists.
func (s *Service) Create(ctx context.Context, buildingID string, in Input) (domroom.Room, error) {
	fields, err := validate.Fields(0, in.validate())
	if err != nil {
		return domroom.Room{}, err
	}
	if len(fields) > 0 {
		return domroom.Room{}, domain.NewValidationError(fields)
	}

	r, err := domroom.New(in.ID, in.Name, in.Level)
	if err != nil {
		return domroom.Room{}, err
	}
	if err := s.repo.Create(ctx, buildingID, &r); err != nil {
		return domroom.Room{}, fmt.Errorf("create room: %w", err)
	}
	return r, nil
}

// BatchCreate validates every element first and writes nothing if any is rejected.
// Valid batches are upserted in one atomic commit, so repeating a batch is harmless.
func (s *Service) BatchCreate(ctx context.Context, buildingID string, in []Input) error {
	var fields []domain.FieldError
	for i := range in {
		fe, err := validate.Fields(i, in[i].validate())
		if err != nil {
			return err
		}
		fields = append(fields, fe...)
	}
	if len(fields) > 0 {
		logger.FromContext(ctx).Debug("Room batch rejected",
			zap.String("building_id", buildingID),
			zap.Int("rooms", len(in)),
			zap.Int("field_errors", len(fields)),
		)
		return domain.NewValidationError(fields)
	}

	rooms := make([]domroom.Room, 0, len(in))
	for _, item := range in {
		rooms = append(rooms, domroom.Reconstruct(item.ID, item.Name, item.Level))
	}
	if err := s.repo.SetMany(ctx, buildingID, rooms); err != nil {
		return fmt.Errorf("create rooms: %w", err)
	}
	return nil
}

// ListByBuilding returns the rooms of a building; none yields domain.ErrNotFound.
func (s *Service) ListByBuilding(ctx context.Context, buildingID string) ([]domroom.Room, error) {
	rooms, err := s.repo.List(ctx, buildingID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("no rooms found for building %s: %w", buildingID, domain.ErrNotFound)
	}
	return rooms, nil
}

// ListByLevel returns the rooms on the floor selected by token ("pb", "3").
// None yields domain.ErrNotFound.
func (s *Service) ListByLevel(ctx context.Context, buildingID, token string) ([]domroom.Room, error) {
	level := domroom.LevelFromToken(token)
	rooms, err := s.repo.ListByLevel(ctx, buildingID, level)
	if err != nil {
		return nil, fmt.Errorf("list rooms by level: %w", err)
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("no rooms found for building %s on %q: %w", buildingID, level, domain.ErrNotFound)
	}
	return rooms, nil
}
