package room

import (
	"context"

	domroom "github.com/kailas-cloud/campusdir/internal/domain/room"
)

// Repository defines the storage contract for rooms.
type Repository interface {
	Create(ctx context.Context, buildingID string, r *domroom.Room) error
	SetMany(ctx context.Context, buildingID string, rooms []domroom.Room) error
	List(ctx context.Context, buildingID string) ([]domroom.Room, error)
	ListByLevel(ctx context.Context, buildingID, level string) ([]domroom.Room, error)
}
