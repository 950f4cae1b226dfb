package building

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/campusdir/internal/db"
	"github.com/kailas-cloud/campusdir/internal/domain"
	dombuilding "github.com/kailas-cloud/campusdir/internal/domain/building"
	"github.com/kailas-cloud/campusdir/internal/repository/layout"
)

// store is the consumer interface for buildings (ISP).
type store interface {
	Get(ctx context.Context, ref db.DocRef) (db.Document, error)
	Create(ctx context.Context, ref db.DocRef, data []byte) error
	List(ctx context.Context, col db.CollectionRef, filters ...db.Filter) ([]db.Document, error)
}

// Repo implements usecase/building.Repository.
type Repo struct {
	store store
}

// New creates a building repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create stores a new building; an existing id yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, b *dombuilding.Building) error {
	data, err := encode(b)
	if err != nil {
		return err
	}
	ref := layout.Building(b.ID())
	if err := r.store.Create(ctx, ref, data); err != nil {
		return mapWriteErr(ref, err)
	}
	return nil
}

// Get returns a building by id.
func (r *Repo) Get(ctx context.Context, id string) (dombuilding.Building, error) {
	ref := layout.Building(id)
	doc, err := r.store.Get(ctx, ref)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return dombuilding.Building{}, fmt.Errorf("building %s: %w", id, domain.ErrNotFound)
		}
		return dombuilding.Building{}, fmt.Errorf("get %s: %w", ref.Path(), err)
	}
	return decode(doc)
}

// List returns every building in ascending id order.
func (r *Repo) List(ctx context.Context) ([]dombuilding.Building, error) {
	col := layout.Buildings()
	docs, err := r.store.List(ctx, col)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", col.Path(), err)
	}

	out := make([]dombuilding.Building, 0, len(docs))
	for _, doc := range docs {
		b, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Write returns the store write that upserts b, for atomic multi-document loads.
func Write(b *dombuilding.Building) (db.Write, error) {
	data, err := encode(b)
	if err != nil {
		return db.Write{}, err
	}
	return db.Write{Ref: layout.Building(b.ID()), Data: data}, nil
}

func mapWriteErr(ref db.DocRef, err error) error {
	switch {
	case errors.Is(err, db.ErrKeyExists):
		return fmt.Errorf("%s: %w", ref.Path(), domain.ErrAlreadyExists)
	case errors.Is(err, db.ErrInvalidPath):
		return fmt.Errorf("%s: %w: %w", ref.Path(), domain.ErrInvalidInput, err)
	default:
		return fmt.Errorf("create %s: %w", ref.Path(), err)
	}
}
