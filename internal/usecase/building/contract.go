package building

import (
	"context"

	dombuilding "github.com/kailas-cloud/campusdir/internal/domain/building"
)

// Repository defines the storage contract for buildings.
type Repository interface {
	Create(ctx context.Context, b *dombuilding.Building) error
	Get(ctx context.Context, id string) (dombuilding.Building, error)
	List(ctx context.Context) ([]dombuilding.Building, error)
}
