package area

import (
	"context"

	domarea "github.com/kailas-cloud/campusdir/internal/domain/area"
)

// Repository defines the read contract for ground and common areas.
type Repository interface {
	Get(ctx context.Context, id string) (domarea.Area, error)
	List(ctx context.Context) ([]domarea.Area, error)
	ListCommon(ctx context.Context, buildingID string) ([]domarea.Area, error)
}
