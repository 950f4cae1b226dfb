package campusdir

import (
	"context"
	"fmt"
	"time"

	buildinguc "github.com/kailas-cloud/campusdir/internal/usecase/building"
	roomuc "github.com/kailas-cloud/campusdir/internal/usecase/room"
)

// BuildingService manages buildings.
type BuildingService struct {
	svc buildingUseCase
	obs *observer
}

// Create stores a new building. A taken id yields ErrAlreadyExists.
func (s *BuildingService) Create(ctx context.Context, in BuildingInput) (_ Building, err error) {
	start := time.Now()
	defer func() { s.obs.observe("building.create", start, err) }()

	b, err := s.svc.Create(ctx, buildinguc.CreateInput{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
	})
	if err != nil {
		return Building{}, fmt.Errorf("create building: %w", err)
	}
	return fromBuilding(&b), nil
}

// Get returns a building; a missing one yields ErrNotFound.
func (s *BuildingService) Get(ctx context.Context, id string) (_ Building, err error) {
	start := time.Now()
	defer func() { s.obs.observe("building.get", start, err) }()

	b, err := s.svc.Get(ctx, id)
	if err != nil {
		return Building{}, fmt.Errorf("get building: %w", err)
	}
	return fromBuilding(&b), nil
}

// List returns every building in id order.
func (s *BuildingService) List(ctx context.Context) (_ []Building, err error) {
	start := time.Now()
	defer func() { s.obs.observe("building.list", start, err) }()

	list, err := s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	out := make([]Building, 0, len(list))
	for i := range list {
		out = append(out, fromBuilding(&list[i]))
	}
	return out, nil
}

// RoomService manages the rooms of one building.
type RoomService struct {
	buildingID string
	svc        roomUseCase
	obs        *observer
}

// Create stores a single room. A taken id yields ErrAlreadyExists.
func (s *RoomService) Create(ctx context.Context, in RoomInput) (_ Room, err error) {
	start := time.Now()
	defer func() { s.obs.observe("room.create", start, err) }()

	r, err := s.svc.Create(ctx, s.buildingID, roomuc.Input{ID: in.ID, Name: in.Name, Level: in.Level})
	if err != nil {
		return Room{}, fmt.Errorf("create room: %w", err)
	}
	return Room{ID: r.ID(), Name: r.Name(), Level: r.Level()}, nil
}

// CreateBatch upserts rooms atomically. Any invalid element rejects the whole batch
// with a *ValidationError and nothing is written.
func (s *RoomService) CreateBatch(ctx context.Context, rooms []RoomInput) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("room.create_batch", start, err) }()

	in := make([]roomuc.Input, 0, len(rooms))
	for _, r := range rooms {
		in = append(in, roomuc.Input{ID: r.ID, Name: r.Name, Level: r.Level})
	}
	if err := s.svc.BatchCreate(ctx, s.buildingID, in); err != nil {
		return fmt.Errorf("create rooms: %w", err)
	}
	return nil
}

// List returns the rooms of the building; none yields ErrNotFound.
func (s *RoomService) List(ctx context.Context) (_ []Room, err error) {
	start := time.Now()
	defer func() { s.obs.observe("room.list", start, err) }()

	rooms, err := s.svc.ListByBuilding(ctx, s.buildingID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return fromRooms(rooms), nil
}

// ListByLevel returns rooms on a floor: "pb" is the ground floor, any other token t is "PISO t".
func (s *RoomService) ListByLevel(ctx context.Context, token string) (_ []Room, err error) {
	start := time.Now()
	defer func() { s.obs.observe("room.list_by_level", start, err) }()

	rooms, err := s.svc.ListByLevel(ctx, s.buildingID, token)
	if err != nil {
		return nil, fmt.Errorf("list rooms by level: %w", err)
	}
	return fromRooms(rooms), nil
}

// AreaService reads ground areas and common areas.
type AreaService struct {
	svc areaUseCase
	obs *observer
}

// Get returns a ground area; a missing one yields ErrNotFound.
func (s *AreaService) Get(ctx context.Context, id string) (_ Area, err error) {
	start := time.Now()
	defer func() { s.obs.observe("area.get", start, err) }()

	a, err := s.svc.Get(ctx, id)
	if err != nil {
		return Area{}, fmt.Errorf("get area: %w", err)
	}
	return fromArea(&a), nil
}

// List returns every ground area in id order.
func (s *AreaService) List(ctx context.Context) (_ []Area, err error) {
	start := time.Now()
	defer func() { s.obs.observe("area.list", start, err) }()

	areas, err := s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	return fromAreas(areas), nil
}

// ListCommon returns the common areas of a building; none yields ErrNotFound.
func (s *AreaService) ListCommon(ctx context.Context, buildingID string) (_ []Area, err error) {
	start := time.Now()
	defer func() { s.obs.observe("area.list_common", start, err) }()

	areas, err := s.svc.ListCommon(ctx, buildingID)
	if err != nil {
		return nil, fmt.Errorf("list common areas: %w", err)
	}
	return fromAreas(areas), nil
}
