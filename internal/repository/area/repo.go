package area

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/campusdir/internal/db"
	"github.com/kailas-cloud/campusdir/internal/domain"
	domarea "github.com/kailas-cloud/campusdir/internal/domain/area"
	"github.com/kailas-cloud/campusdir/internal/repository/layout"
)

// store is the consumer interface for areas (ISP).
type store interface {
	Get(ctx context.Context, ref db.DocRef) (db.Document, error)
	List(ctx context.Context, col db.CollectionRef, filters ...db.Filter) ([]db.Document, error)
}

// Repo reads ground areas and building common areas.
type Repo struct {
	store store
}

// New creates an area repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Get returns a ground area by id.
func (r *Repo) Get(ctx context.Context, id string) (domarea.Area, error) {
	ref := layout.Areas().Doc(id)
	doc, err := r.store.Get(ctx, ref)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domarea.Area{}, fmt.Errorf("area %s: %w", id, domain.ErrNotFound)
		}
		return domarea.Area{}, fmt.Errorf("get %s: %w", ref.Path(), err)
	}
	return decode(doc)
}

// List returns every ground area in ascending id order.
func (r *Repo) List(ctx context.Context) ([]domarea.Area, error) {
	return r.list(ctx, layout.Areas())
}

// ListCommon returns the common areas of a building.
func (r *Repo) ListCommon(ctx context.Context, buildingID string) ([]domarea.Area, error) {
	return r.list(ctx, layout.CommonAreas(buildingID))
}

func (r *Repo) list(ctx context.Context, col db.CollectionRef) ([]domarea.Area, error) {
	docs, err := r.store.List(ctx, col)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", col.Path(), err)
	}
	return decodeAll(docs)
}

// Write returns the store write that upserts a ground area.
func Write(a *domarea.Area) (db.Write, error) {
	return write(layout.Areas(), a)
}

// CommonWrite returns the store write that upserts a common area of buildingID.
func CommonWrite(buildingID string, a *domarea.Area) (db.Write, error) {
	return write(layout.CommonAreas(buildingID), a)
}

func write(col db.CollectionRef, a *domarea.Area) (db.Write, error) {
	data, err := encode(a)
	if err != nil {
		return db.Write{}, err
	}
	return db.Write{Ref: col.Doc(a.ID()), Data: data}, nil
}
