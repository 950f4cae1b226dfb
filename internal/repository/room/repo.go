package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/campusdir/internal/db"
	"github.com/kailas-cloud/campusdir/internal/domain"
	domroom "github.com/kailas-cloud/campusdir/internal/domain/room"
	"github.com/kailas-cloud/campusdir/internal/repository/layout"
)

// levelField is the stored field rooms are filtered on.
const levelField = "level"

// store is the consumer interface for rooms (ISP).
type store interface {
	Create(ctx context.Context, ref db.DocRef, data []byte) error
	Commit(ctx context.Context, writes []db.Write) error
	List(ctx context.Context, col db.CollectionRef, filters ...db.Filter) ([]db.Document, error)
}

// Repo implements usecase/room.Repository.
type Repo struct {
	store store
}

// New creates a room repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create stores a new room under buildingID; an existing room id yields domain.ErrAlreadyExists.
// The parent building is not required to exist.
func (r *Repo) Create(ctx context.Context, buildingID string, room *domroom.Room) error {
	data, err := encode(room)
	if err != nil {
		return err
	}
	ref := layout.Rooms(buildingID).Doc(room.ID())
	if err := r.store.Create(ctx, ref, data); err != nil {
		switch {
		case errors.Is(err, db.ErrKeyExists):
			return fmt.Errorf("%s: %w", ref.Path(), domain.ErrAlreadyExists)
		case errors.Is(err, db.ErrInvalidPath):
			return fmt.Errorf("%s: %w: %w", ref.Path(), domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("create %s: %w", ref.Path(), err)
	}
	return nil
}

// SetMany upserts all rooms in one atomic commit.
func (r *Repo) SetMany(ctx context.Context, buildingID string, rooms []domroom.Room) error {
	writes := make([]db.Write, 0, len(rooms))
	for i := range rooms {
		w, err := Write(buildingID, &rooms[i])
		if err != nil {
			return err
		}
		writes = append(writes, w)
	}
	if err := r.store.Commit(ctx, writes); err != nil {
		if errors.Is(err, db.ErrInvalidPath) {
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("commit %d rooms: %w", len(writes), err)
	}
	return nil
}

// List returns the rooms of a building in ascending id order.
func (r *Repo) List(ctx context.Context, buildingID string) ([]domroom.Room, error) {
	col := layout.Rooms(buildingID)
	docs, err := r.store.List(ctx, col)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", col.Path(), err)
	}
	return decodeAll(docs)
}

// ListByLevel returns the rooms of a building whose level equals level exactly.
func (r *Repo) ListByLevel(ctx context.Context, buildingID, level string) ([]domroom.Room, error) {
	col := layout.Rooms(buildingID)
	docs, err := r.store.List(ctx, col, db.Eq(levelField, level))
	if err != nil {
		return nil, fmt.Errorf("list %s where %s=%q: %w", col.Path(), levelField, level, err)
	}
	return decodeAll(docs)
}

// Write returns the store write that upserts room under buildingID.
func Write(buildingID string, room *domroom.Room) (db.Write, error) {
	data, err := encode(room)
	if err != nil {
		return db.Write{}, err
	}
	return db.Write{Ref: layout.Rooms(buildingID).Doc(room.ID()), Data: data}, nil
}
