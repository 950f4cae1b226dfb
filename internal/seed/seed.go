package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kailas-cloud/campusdir/internal/db"
	domarea "github.com/kailas-cloud/campusdir/internal/domain/area"
	dombuilding "github.com/kailas-cloud/campusdir/internal/domain/building"
	domroom "github.com/kailas-cloud/campusdir/internal/domain/room"
	"github.com/kailas-cloud/campusdir/internal/logger"
	arearepo "github.com/kailas-cloud/campusdir/internal/repository/area"
	buildingrepo "github.com/kailas-cloud/campusdir/internal/repository/building"
	roomrepo "github.com/kailas-cloud/campusdir/internal/repository/room"
)

type committer interface {
	Commit(ctx context.Context, writes []db.Write) error
}

// Stats counts the documents written by Apply.
type Stats struct {
	Buildings   int
	Rooms       int
	CommonAreas int
	Areas       int
}

// Total is the number of documents written.
func (s Stats) Total() int {
	return s.Buildings + s.Rooms + s.CommonAreas + s.Areas
}

// LoadFile reads and validates a fixture file.
func LoadFile(path string) (Fixture, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Fixture{}, fmt.Errorf("open fixture %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Writes converts the fixture into store upserts, parents before children.
func (f Fixture) Writes() ([]db.Write, Stats, error) {
	var (
		writes []db.Write
		stats  Stats
	)

	for _, b := range f.Buildings {
		loc, err := location(b.Location)
		if err != nil {
			return nil, Stats{}, fmt.Errorf("building %s: %w", b.ID, err)
		}
		building := dombuilding.Reconstruct(b.ID, b.Name, b.Description, loc, b.Prefix)
		w, err := buildingrepo.Write(&building)
		if err != nil {
			return nil, Stats{}, fmt.Errorf("building %s: %w", b.ID, err)
		}
		writes = append(writes, w)
		stats.Buildings++

		for _, r := range b.Rooms {
			room := domroom.Reconstruct(r.ID, r.Name, r.Level)
			w, err := roomrepo.Write(b.ID, &room)
			if err != nil {
				return nil, Stats{}, fmt.Errorf("building %s room %s: %w", b.ID, r.ID, err)
			}
			writes = append(writes, w)
			stats.Rooms++
		}

		for _, a := range b.CommonAreas {
			area, err := toArea(a)
			if err != nil {
				return nil, Stats{}, fmt.Errorf("building %s common area %s: %w", b.ID, a.ID, err)
			}
			w, err := arearepo.CommonWrite(b.ID, &area)
			if err != nil {
				return nil, Stats{}, fmt.Errorf("building %s common area %s: %w", b.ID, a.ID, err)
			}
			writes = append(writes, w)
			stats.CommonAreas++
		}
	}

	for _, a := range f.Areas {
		area, err := toArea(a)
		if err != nil {
			return nil, Stats{}, fmt.Errorf("area %s: %w", a.ID, err)
		}
		w, err := arearepo.Write(&area)
		if err != nil {
			return nil, Stats{}, fmt.Errorf("area %s: %w", a.ID, err)
		}
		writes = append(writes, w)
		stats.Areas++
	}

	return writes, stats, nil
}

// Apply upserts the whole fixture in one atomic commit. Existing documents with the same
// ids are overwritten; documents absent from the fixture are left untouched.
func Apply(ctx context.Context, store committer, f Fixture) (Stats, error) {
	writes, stats, err := f.Writes()
	if err != nil {
		return Stats{}, err
	}
	if len(writes) == 0 {
		return stats, nil
	}

	if err := store.Commit(ctx, writes); err != nil {
		return Stats{}, fmt.Errorf("commit fixture: %w", err)
	}

	logger.FromContext(ctx).Info("Fixture applied",
		zap.Int("buildings", stats.Buildings),
		zap.Int("rooms", stats.Rooms),
		zap.Int("common_areas", stats.CommonAreas),
		zap.Int("areas", stats.Areas),
	)
	return stats, nil
}

func toArea(a Area) (domarea.Area, error) {
	loc, err := location(a.Location)
	if err != nil {
		return domarea.Area{}, err
	}
	return domarea.Reconstruct(a.ID, a.Name, a.Description, loc, a.Type), nil
}
