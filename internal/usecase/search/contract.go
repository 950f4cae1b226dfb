package search

import (
	"context"

	domarea "github.com/kailas-cloud/campusdir/internal/domain/area"
	dombuilding "github.com/kailas-cloud/campusdir/internal/domain/building"
	domroom "github.com/kailas-cloud/campusdir/internal/domain/room"
)

// BuildingLister scans all buildings in id order.
type BuildingLister interface {
	List(ctx context.Context) ([]dombuilding.Building, error)
}

// RoomLister scans the rooms of one building.
type RoomLister interface {
	List(ctx context.Context, buildingID string) ([]domroom.Room, error)
}

// AreaLister scans ground areas and the common areas of one building.
type AreaLister interface {
	List(ctx context.Context) ([]domarea.Area, error)
	ListCommon(ctx context.Context, buildingID string) ([]domarea.Area, error)
}
