package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/campusdir/internal/domain"
	domarea "github.com/kailas-cloud/campusdir/internal/domain/area"
	dombuilding "github.com/kailas-cloud/campusdir/internal/domain/building"
	domroom "github.com/kailas-cloud/campusdir/internal/domain/room"
	domsearch "github.com/kailas-cloud/campusdir/internal/domain/search"
	"github.com/kailas-cloud/campusdir/internal/logger"
	"github.com/kailas-cloud/campusdir/internal/metrics"
)

// Service runs free-text search over areas and buildings.
type Service struct {
	buildings BuildingLister
	rooms     RoomLister
	areas     AreaLister
	prefixes  domsearch.PrefixTable
}

// New creates a search service.
func New(buildings BuildingLister, rooms RoomLister, areas AreaLister, prefixes domsearch.PrefixTable) *Service {
	return &Service{buildings: buildings, rooms: rooms, areas: areas, prefixes: prefixes}
}

// Search matches query against ground areas and buildings. Both top-level scans run
// concurrently; the first failure cancels the other.
func (s *Service) Search(ctx context.Context, query string) (domsearch.Result, error) {
	if query == "" {
		return domsearch.Result{}, fmt.Errorf("search query is required: %w", domain.ErrInvalidInput)
	}

	start := time.Now()
	code, isCode := s.prefixes.Classify(query)
	branch := metrics.BranchCommonArea
	if isCode {
		branch = metrics.BranchRoomCode
	}
	metrics.SearchQueriesTotal.WithLabelValues(branch).Inc()

	log := logger.FromContext(ctx).With(zap.String("branch", branch))
	if isCode {
		log = log.With(zap.String("code_prefix", code.Prefix))
	}
	ctx = logger.ContextWithLogger(ctx, log)

	var res domsearch.Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		areas, err := s.searchAreas(gctx, query)
		res.Areas = areas
		return err
	})
	g.Go(func() error {
		hits, err := s.searchBuildings(gctx, query, isCode)
		res.Buildings = hits
		return err
	})

	err := g.Wait()
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.SearchDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	if err != nil {
		return domsearch.Result{}, err
	}

	log.Debug("Search completed",
		zap.Int("areas", len(res.Areas)),
		zap.Int("buildings", len(res.Buildings)),
		zap.Duration("duration", time.Since(start)),
	)
	return res, nil
}

func (s *Service) searchAreas(ctx context.Context, query string) ([]domarea.Area, error) {
	areas, err := s.areas.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("search areas: %w", err)
	}
	return filterAreas(areas, query), nil
}

// searchBuildings walks buildings in scan order. A building matching on its own fields is
// returned as-is. Otherwise a room-code query expands into the rooms of buildings owning
// the code, and any other query expands into common areas. The two expansions never both
// run for the same building.
func (s *Service) searchBuildings(ctx context.Context, query string, isCode bool) ([]domsearch.BuildingHit, error) {
	buildings, err := s.buildings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("search buildings: %w", err)
	}

	hits := make([]domsearch.BuildingHit, 0)
	for i := range buildings {
		b := buildings[i]

		if b.Mentions(query) {
			hits = append(hits, domsearch.BuildingHit{Building: b})
			continue
		}

		if isCode {
			hit, ok, err := s.expandRooms(ctx, &b, query)
			if err != nil {
				return nil, err
			}
			if ok {
				hits = append(hits, hit)
			}
			continue
		}

		hit, ok, err := s.expandCommonAreas(ctx, &b, query)
		if err != nil {
			return nil, err
		}
		if ok {
			hits = append(hits, hit)
		}
	}
	return hits, nil
}

func (s *Service) expandRooms(
	ctx context.Context, b *dombuilding.Building, query string,
) (domsearch.BuildingHit, bool, error) {
	if !b.OwnsCode(query) {
		return domsearch.BuildingHit{}, false, nil
	}

	metrics.SearchSubcollectionScansTotal.WithLabelValues("rooms").Inc()
	rooms, err := s.rooms.List(ctx, b.ID())
	if err != nil {
		return domsearch.BuildingHit{}, false, fmt.Errorf("search rooms of %s: %w", b.ID(), err)
	}

	var matched []domroom.Room
	for i := range rooms {
		if rooms[i].CodeContains(query) {
			matched = append(matched, rooms[i])
		}
	}
	if len(matched) == 0 {
		return domsearch.BuildingHit{}, false, nil
	}
	return domsearch.BuildingHit{Building: *b, Rooms: matched}, true, nil
}

func (s *Service) expandCommonAreas(
	ctx context.Context, b *dombuilding.Building, query string,
) (domsearch.BuildingHit, bool, error) {
	metrics.SearchSubcollectionScansTotal.WithLabelValues("common_areas").Inc()
	areas, err := s.areas.ListCommon(ctx, b.ID())
	if err != nil {
		return domsearch.BuildingHit{}, false, fmt.Errorf("search common areas of %s: %w", b.ID(), err)
	}

	matched := filterAreas(areas, query)
	if len(matched) == 0 {
		return domsearch.BuildingHit{}, false, nil
	}
	return domsearch.BuildingHit{Building: *b, CommonAreas: matched}, true, nil
}

func filterAreas(areas []domarea.Area, query string) []domarea.Area {
	out := make([]domarea.Area, 0)
	for i := range areas {
		if areas[i].Mentions(query) {
			out = append(out, areas[i])
		}
	}
	return out
}
