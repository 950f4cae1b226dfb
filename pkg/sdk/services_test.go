package campusdir

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	domarea "github.com/kailas-cloud/campusdir/internal/domain/area"
	dombuilding "github.com/kailas-cloud/campusdir/internal/domain/building"
	domroom "github.com/kailas-cloud/campusdir/internal/domain/room"
	domsearch "github.com/kailas-cloud/campusdir/internal/domain/search"
	buildinguc "github.com/kailas-cloud/campusdir/internal/usecase/building"
	roomuc "github.com/kailas-cloud/campusdir/internal/usecase/room"
)

type mockBuildingUC struct {
	createFn func(ctx context.Context, in buildinguc.CreateInput) (dombuilding.Building, error)
	getFn    func(ctx context.Context, id string) (dombuilding.Building, error)
	listFn   func(ctx context.Context) ([]dombuilding.Building, error)
}

func (m *mockBuildingUC) Create(ctx context.Context, in buildinguc.CreateInput) (dombuilding.Building, error) {
	return m.createFn(ctx, in)
}

func (m *mockBuildingUC) Get(ctx context.Context, id string) (dombuilding.Building, error) {
	return m.getFn(ctx, id)
}

func (m *mockBuildingUC) List(ctx context.Context) ([]dombuilding.Building, error) {
	return m.listFn(ctx)
}

type mockRoomUC struct {
	createFn      func(ctx context.Context, buildingID string, in roomuc.Input) (domroom.Room, error)
	batchCreateFn func(ctx context.Context, buildingID string, in []roomuc.Input) error
	listFn        func(ctx context.Context, buildingID string) ([]domroom.Room, error)
	listByLevelFn func(ctx context.Context, buildingID, token string) ([]domroom.Room, error)
}

func (m *mockRoomUC) Create(ctx context.Context, buildingID string, in roomuc.Input) (domroom.Room, error) {
	return m.createFn(ctx, buildingID, in)
}

func (m *mockRoomUC) BatchCreate(ctx context.Context, buildingID string, in []roomuc.Input) error {
	return m.batchCreateFn(ctx, buildingID, in)
}

func (m *mockRoomUC) ListByBuilding(ctx context.Context, buildingID string) ([]domroom.Room, error) {
	return m.listFn(ctx, buildingID)
}

func (m *mockRoomUC) ListByLevel(ctx context.Context, buildingID, token string) ([]domroom.Room, error) {
	return m.listByLevelFn(ctx, buildingID, token)
}

type mockAreaUC struct {
	getFn        func(ctx context.Context, id string) (domarea.Area, error)
	listFn       func(ctx context.Context) ([]domarea.Area, error)
	listCommonFn func(ctx context.Context, buildingID string) ([]domarea.Area, error)
}

func (m *mockAreaUC) Get(ctx context.Context, id string) (domarea.Area, error) {
	return m.getFn(ctx, id)
}

func (m *mockAreaUC) List(ctx context.Context) ([]domarea.Area, error) {
	return m.listFn(ctx)
}

func (m *mockAreaUC) ListCommon(ctx context.Context, buildingID string) ([]domarea.Area, error) {
	return m.listCommonFn(ctx, buildingID)
}

type mockSearchUC struct {
	fn func(ctx context.Context, query string) (domsearch.Result, error)
}

func (m *mockSearchUC) Search(ctx context.Context, query string) (domsearch.Result, error) {
	return m.fn(ctx, query)
}

// --- BuildingService ---

func TestBuildingService_Create(t *testing.T) {
	mock := &mockBuildingUC{
		createFn: func(_ context.Context, in buildinguc.CreateInput) (dombuilding.Building, error) {
			if in.ID != "torre" || string(in.Location) != `[1,2]` {
				t.Errorf("unexpected input %+v", in)
			}
			return dombuilding.Reconstruct(in.ID, in.Name, in.Description, in.Location, ""), nil
		},
	}

	svc := &BuildingService{svc: mock}
	b, err := svc.Create(context.Background(), BuildingInput{
		ID: "torre", Name: "Torre", Location: json.RawMessage(`[1,2]`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID != "torre" || b.Name != "Torre" {
		t.Errorf("unexpected building %+v", b)
	}
}

func TestBuildingService_Errors(t *testing.T) {
	dbErr := errors.New("db down")
	mock := &mockBuildingUC{
		createFn: func(context.Context, buildinguc.CreateInput) (dombuilding.Building, error) {
			return dombuilding.Building{}, dbErr
		},
		getFn: func(context.Context, string) (dombuilding.Building, error) {
			return dombuilding.Building{}, dbErr
		},
		listFn: func(context.Context) ([]dombuilding.Building, error) { return nil, dbErr },
	}
	svc := &BuildingService{svc: mock}
	ctx := context.Background()

	if _, err := svc.Create(ctx, BuildingInput{ID: "x"}); !errors.Is(err, dbErr) {
		t.Errorf("Create: expected db error, got %v", err)
	}
	if _, err := svc.Get(ctx, "x"); !errors.Is(err, dbErr) {
		t.Errorf("Get: expected db error, got %v", err)
	}
	if _, err := svc.List(ctx); !errors.Is(err, dbErr) {
		t.Errorf("List: expected db error, got %v", err)
	}
}

// --- RoomService ---

func TestRoomService_ScopesBuilding(t *testing.T) {
	var seen []string
	mock := &mockRoomUC{
		createFn: func(_ context.Context, buildingID string, in roomuc.Input) (domroom.Room, error) {
			seen = append(seen, buildingID)
			return domroom.Reconstruct(in.ID, in.Name, in.Level), nil
		},
		batchCreateFn: func(_ context.Context, buildingID string, in []roomuc.Input) error {
			seen = append(seen, buildingID)
			if len(in) != 2 || in[1].ID != "T-2" {
				t.Errorf("unexpected batch %+v", in)
			}
			return nil
		},
		listFn: func(_ context.Context, buildingID string) ([]domroom.Room, error) {
			seen = append(seen, buildingID)
			return []domroom.Room{domroom.Reconstruct("T-1", "Aula", "PISO 1")}, nil
		},
		listByLevelFn: func(_ context.Context, buildingID, token string) ([]domroom.Room, error) {
			seen = append(seen, buildingID)
			if token != "pb" {
				t.Errorf("token = %q, want pb", token)
			}
			return nil, nil
		},
	}
	svc := &RoomService{buildingID: "torre", svc: mock}
	ctx := context.Background()

	r, err := svc.Create(ctx, RoomInput{ID: "T-1", Name: "Aula", Level: "PISO 1"})
	if err != nil || r.ID != "T-1" {
		t.Fatalf("Create: %+v, %v", r, err)
	}
	if err := svc.CreateBatch(ctx, []RoomInput{{ID: "T-1"}, {ID: "T-2"}}); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	rooms, err := svc.List(ctx)
	if err != nil || len(rooms) != 1 || rooms[0].Level != "PISO 1" {
		t.Fatalf("List: %+v, %v", rooms, err)
	}
	if _, err := svc.ListByLevel(ctx, "pb"); err != nil {
		t.Fatalf("ListByLevel: %v", err)
	}

	for i, id := range seen {
		if id != "torre" {
			t.Errorf("call %d used building %q", i, id)
		}
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 calls, got %d", len(seen))
	}
}

// --- AreaService ---

func TestAreaService(t *testing.T) {
	cafe := domarea.Reconstruct("C1", "Cafetería", "", nil, "cafeteria")
	mock := &mockAreaUC{
		getFn: func(_ context.Context, id string) (domarea.Area, error) {
			return domarea.Reconstruct(id, "Explanada", "Centro", json.RawMessage(`{}`), "plaza"), nil
		},
		listFn: func(context.Context) ([]domarea.Area, error) { return []domarea.Area{cafe}, nil },
		listCommonFn: func(_ context.Context, buildingID string) ([]domarea.Area, error) {
			if buildingID != "posgrado" {
				t.Errorf("buildingID = %q", buildingID)
			}
			return []domarea.Area{cafe}, nil
		},
	}
	svc := &AreaService{svc: mock}
	ctx := context.Background()

	a, err := svc.Get(ctx, "explanada")
	if err != nil || a.Type != "plaza" || a.ID != "explanada" {
		t.Fatalf("Get: %+v, %v", a, err)
	}
	list, err := svc.List(ctx)
	if err != nil || len(list) != 1 || list[0].Name != "Cafetería" {
		t.Fatalf("List: %+v, %v", list, err)
	}
	common, err := svc.ListCommon(ctx, "posgrado")
	if err != nil || len(common) != 1 {
		t.Fatalf("ListCommon: %+v, %v", common, err)
	}
}

// --- Search ---

func TestClient_Search_Converts(t *testing.T) {
	torre := dombuilding.Reconstruct("torre", "Torre", "Aulas", nil, "T-")
	posgrado := dombuilding.Reconstruct("posgrado", "Posgrado", "Maestrías", nil, "PG-")
	mock := &mockSearchUC{
		fn: func(_ context.Context, query string) (domsearch.Result, error) {
			return domsearch.Result{
				Areas: []domarea.Area{domarea.Reconstruct("A1", "Aula libre", "", nil, "plaza")},
				Buildings: []domsearch.BuildingHit{
					{Building: torre, Rooms: []domroom.Room{domroom.Reconstruct("T-101", "Aula", "PISO 1")}},
					{Building: posgrado},
				},
			}, nil
		},
	}
	c := &Client{searchSvc: mock}

	res, err := c.Search(context.Background(), "Aula")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Areas) != 1 || res.Areas[0].ID != "A1" {
		t.Errorf("unexpected areas %+v", res.Areas)
	}
	if len(res.Buildings) != 2 {
		t.Fatalf("expected 2 buildings, got %d", len(res.Buildings))
	}
	if res.Buildings[0].Prefix != "T-" || len(res.Buildings[0].Rooms) != 1 {
		t.Errorf("unexpected first hit %+v", res.Buildings[0])
	}
	if res.Buildings[1].Rooms != nil || res.Buildings[1].CommonAreas != nil {
		t.Errorf("plain hit must not carry subcollections: %+v", res.Buildings[1])
	}
}

func TestClient_Search_Error(t *testing.T) {
	dbErr := errors.New("db down")
	c := &Client{searchSvc: &mockSearchUC{
		fn: func(context.Context, string) (domsearch.Result, error) { return domsearch.Result{}, dbErr },
	}}
	if _, err := c.Search(context.Background(), "x"); !errors.Is(err, dbErr) {
		t.Fatalf("expected db error, got %v", err)
	}
}
