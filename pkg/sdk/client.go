package campusdir

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/campusdir/internal/db"
	"github.com/kailas-cloud/campusdir/internal/db/memory"
	dbMongo "github.com/kailas-cloud/campusdir/internal/db/mongo"
	dbRedis "github.com/kailas-cloud/campusdir/internal/db/redis"
	domarea "github.com/kailas-cloud/campusdir/internal/domain/area"
	dombuilding "github.com/kailas-cloud/campusdir/internal/domain/building"
	domroom "github.com/kailas-cloud/campusdir/internal/domain/room"
	domsearch "github.com/kailas-cloud/campusdir/internal/domain/search"
	arearepo "github.com/kailas-cloud/campusdir/internal/repository/area"
	buildingrepo "github.com/kailas-cloud/campusdir/internal/repository/building"
	roomrepo "github.com/kailas-cloud/campusdir/internal/repository/room"
	areauc "github.com/kailas-cloud/campusdir/internal/usecase/area"
	buildinguc "github.com/kailas-cloud/campusdir/internal/usecase/building"
	healthuc "github.com/kailas-cloud/campusdir/internal/usecase/health"
	roomuc "github.com/kailas-cloud/campusdir/internal/usecase/room"
	searchuc "github.com/kailas-cloud/campusdir/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Use case seams, replaced by fakes in tests.
type buildingUseCase interface {
	Create(ctx context.Context, in buildinguc.CreateInput) (dombuilding.Building, error)
	Get(ctx context.Context, id string) (dombuilding.Building, error)
	List(ctx context.Context) ([]dombuilding.Building, error)
}

type roomUseCase interface {
	Create(ctx context.Context, buildingID string, in roomuc.Input) (domroom.Room, error)
	BatchCreate(ctx context.Context, buildingID string, in []roomuc.Input) error
	ListByBuilding(ctx context.Context, buildingID string) ([]domroom.Room, error)
	ListByLevel(ctx context.Context, buildingID, token string) ([]domroom.Room, error)
}

type areaUseCase interface {
	Get(ctx context.Context, id string) (domarea.Area, error)
	List(ctx context.Context) ([]domarea.Area, error)
	ListCommon(ctx context.Context, buildingID string) ([]domarea.Area, error)
}

type searchUseCase interface {
	Search(ctx context.Context, query string) (domsearch.Result, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the campusdir SDK entry point.
type Client struct {
	store       db.Store
	buildingSvc buildingUseCase
	roomSvc     roomUseCase
	areaSvc     areaUseCase
	searchSvc   searchUseCase
	healthSvc   healthUseCase
	obs         *observer
}

// New creates a Client and waits for its store to answer.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix:        dbRedis.DefaultKeyPrefix,
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("campusdir: store required (use WithValkey, WithRedis, WithMongo or WithMemory)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("campusdir: store not ready: %w", err)
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(ctx context.Context, cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverValkey, driverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.addrs,
			Password:  cfg.password,
			KeyPrefix: cfg.keyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("campusdir: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	case driverMongo:
		s, err := dbMongo.NewStore(ctx, dbMongo.Config{URI: cfg.mongoURI, Database: cfg.mongoDB})
		if err != nil {
			return nil, fmt.Errorf("campusdir: create mongo store: %w", err)
		}
		return s, nil
	case driverMemory:
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("campusdir: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	buildingRepo := buildingrepo.New(store)
	roomRepo := roomrepo.New(store)
	areaRepo := arearepo.New(store)

	prefixes := make([]domsearch.CodePrefix, 0, len(cfg.prefixes))
	for _, p := range cfg.prefixes {
		prefixes = append(prefixes, domsearch.CodePrefix{Prefix: p.Prefix, Meaning: p.Meaning})
	}

	return &Client{
		store:       store,
		buildingSvc: buildinguc.New(buildingRepo),
		roomSvc:     roomuc.New(roomRepo),
		areaSvc:     areauc.New(areaRepo),
		searchSvc:   searchuc.New(buildingRepo, roomRepo, areaRepo, domsearch.NewPrefixTable(prefixes)),
		healthSvc:   healthuc.New(store, healthuc.DefaultTimeout),
		obs:         obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Buildings returns the building service.
func (c *Client) Buildings() *BuildingService {
	return &BuildingService{svc: c.buildingSvc, obs: c.obs}
}

// Rooms returns the room service of one building.
func (c *Client) Rooms(buildingID string) *RoomService {
	return &RoomService{buildingID: buildingID, svc: c.roomSvc, obs: c.obs}
}

// Areas returns the area service.
func (c *Client) Areas() *AreaService {
	return &AreaService{svc: c.areaSvc, obs: c.obs}
}

// Search runs a free-text query over areas, buildings, rooms and common areas.
// An empty query yields ErrInvalidInput.
func (c *Client) Search(ctx context.Context, query string) (_ SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	res, err := c.searchSvc.Search(ctx, query)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w", err)
	}
	return fromSearchResult(res), nil
}
