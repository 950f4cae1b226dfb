package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/campusdir/internal/db"
	"github.com/kailas-cloud/campusdir/internal/db/memory"
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

// failingStore wraps a store and fails every call with err once set.
type failingStore struct {
	*memory.Store
	err error
}

func (f *failingStore) Get(ctx context.Context, ref db.DocRef) (db.Document, error) {
	if f.err != nil {
		return db.Document{}, f.err
	}
	return f.Store.Get(ctx, ref)
}

func (f *failingStore) List(ctx context.Context, col db.CollectionRef, filters ...db.Filter) ([]db.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.Store.List(ctx, col, filters...)
}

func (f *failingStore) Create(ctx context.Context, ref db.DocRef, data []byte) error {
	if f.err != nil {
		return f.err
	}
	return f.Store.Create(ctx, ref, data)
}

func (f *failingStore) Commit(ctx context.Context, writes []db.Write) error {
	if f.err != nil {
		return f.err
	}
	return f.Store.Commit(ctx, writes)
}

func (f *failingStore) Ping(ctx context.Context) error {
	if f.err != nil {
		return f.err
	}
	return f.Store.Ping(ctx)
}

type testAPI struct {
	handler http.Handler
	store   *failingStore
}

func newTestAPI(t *testing.T, opts Options) *testAPI {
	t.Helper()
	store := &failingStore{Store: memory.NewStore()}

	buildings := buildingrepo.New(store)
	rooms := roomrepo.New(store)
	areas := arearepo.New(store)

	srv := NewServer(
		buildinguc.New(buildings),
		roomuc.New(rooms),
		areauc.New(areas),
		searchuc.New(buildings, rooms, areas, domsearch.NewPrefixTable(nil)),
		healthuc.New(store, 0),
		zap.NewNop(),
		opts,
	)
	return &testAPI{handler: NewRouter(srv, RouterConfig{}), store: store}
}

func (a *testAPI) do(t *testing.T, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader = http.NoBody
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

// seed writes buildings (with prefix), rooms and areas the API cannot create.
func (a *testAPI) seed(t *testing.T) {
	t.Helper()
	var writes []db.Write
	add := func(w db.Write, err error) {
		if err != nil {
			t.Fatalf("seed write: %v", err)
		}
		writes = append(writes, w)
	}

	torre := dombuilding.Reconstruct("B1", "Torre de Aulas", "Salones de licenciatura",
		json.RawMessage(`{"lat":19.5,"lng":-99.1}`), "T-")
	gym := dombuilding.Reconstruct("B2", "Gimnasio", "Canchas techadas", nil, "")
	add(buildingrepo.Write(&torre))
	add(buildingrepo.Write(&gym))

	for _, r := range []struct{ id, name, level string }{
		{"T-101", "Aula 101", "PLANTA BAJA"},
		{"T-201", "Aula 201", "PISO 2"},
		{"T-202", "Aula 202", "PISO 2"},
	} {
		room := domroom.Reconstruct(r.id, r.name, r.level)
		add(roomrepo.Write("B1", &room))
	}
	stray := domroom.Reconstruct("T-101", "Bodega", "PLANTA BAJA")
	add(roomrepo.Write("B2", &stray))

	explanada := domarea.Reconstruct("A1", "Explanada", "Frente a rectoría", json.RawMessage(`[1,2]`), "espacio abierto")
	cafe := domarea.Reconstruct("A2", "Cafetería Central", "", nil, "comida")
	add(arearepo.Write(&explanada))
	add(arearepo.Write(&cafe))

	vestidores := domarea.Reconstruct("C1", "Vestidores", "", nil, "sanitarios")
	add(arearepo.CommonWrite("B2", &vestidores))

	if err := a.store.Commit(context.Background(), writes); err != nil {
		t.Fatalf("seed commit: %v", err)
	}
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode body: %v (%s)", err, rr.Body.String())
	}
	return v
}

func wantStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status: got %d, want %d (%s)", rr.Code, want, rr.Body.String())
	}
}

// wantJSON compares the body with want as decoded JSON values.
func wantJSON(t *testing.T, rr *httptest.ResponseRecorder, want string) {
	t.Helper()
	var w, g any
	if err := json.Unmarshal([]byte(want), &w); err != nil {
		t.Fatalf("bad expectation: %v", err)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &g); err != nil {
		t.Fatalf("decode body: %v (%s)", err, rr.Body.String())
	}
	if !reflect.DeepEqual(w, g) {
		t.Errorf("body mismatch:\nwant %s\ngot  %s", want, rr.Body.String())
	}
}

// --- Create building ---

func TestCreateBuilding_RoundTripWithoutID(t *testing.T) {
	api := newTestAPI(t, Options{})

	rr := api.do(t, http.MethodPost, "/create/building",
		`{"id":"B9","name":"Biblioteca","description":"Acervo","location":{"lat":1,"lng":2}}`)
	wantStatus(t, rr, http.StatusCreated)
	if rr.Body.Len() != 0 {
		t.Errorf("expected empty body, got %s", rr.Body.String())
	}

	rr = api.do(t, http.MethodGet, "/buildings/B9", "")
	wantStatus(t, rr, http.StatusOK)
	wantJSON(t, rr, `{"name":"Biblioteca","description":"Acervo","location":{"lat":1,"lng":2}}`)
}

func TestCreateBuilding_Duplicate(t *testing.T) {
	body := `{"id":"B9","name":"Biblioteca","description":"","location":null}`

	api := newTestAPI(t, Options{})
	wantStatus(t, api.do(t, http.MethodPost, "/create/building", body), http.StatusCreated)
	rr := api.do(t, http.MethodPost, "/create/building", body)
	wantStatus(t, rr, http.StatusInternalServerError)
	if resp := decodeBody[ErrorResponse](t, rr); !strings.Contains(resp.Error, "already exists") {
		t.Errorf("error: got %q, want it to mention already exists", resp.Error)
	}

	strict := newTestAPI(t, Options{StrictNotFound: true})
	wantStatus(t, strict.do(t, http.MethodPost, "/create/building", body), http.StatusCreated)
	rr = strict.do(t, http.MethodPost, "/create/building", body)
	wantStatus(t, rr, http.StatusConflict)
	if code := decodeBody[ErrorResponse](t, rr).Code; code != CodeAlreadyExists {
		t.Errorf("code: got %s, want %s", code, CodeAlreadyExists)
	}
}

func TestCreateBuilding_BadInput(t *testing.T) {
	api := newTestAPI(t, Options{})

	tests := []struct {
		name string
		body string
		code string
	}{
		{"undecodable", `{"id":`, CodeBadRequest},
		{"missing id", `{"name":"x"}`, CodeValidationFailed},
		{"slash in id", `{"id":"a/b"}`, CodeValidationFailed},
		{"numeric id", `{"id":7}`, CodeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := api.do(t, http.MethodPost, "/create/building", tt.body)
			wantStatus(t, rr, http.StatusBadRequest)
			if code := decodeBody[ErrorResponse](t, rr).Code; code != tt.code {
				t.Errorf("code: got %s, want %s", code, tt.code)
			}
		})
	}
}

// --- Rooms ---

func TestCreateRoom(t *testing.T) {
	api := newTestAPI(t, Options{})

	rr := api.do(t, http.MethodPost, "/create/building/B1/room", `{"id":"T-101","name":"Aula","level":"PISO 1"}`)
	wantStatus(t, rr, http.StatusCreated)

	rr = api.do(t, http.MethodPost, "/create/building/B1/room", `{"id":"T-101","name":"Otra","level":"PISO 1"}`)
	wantStatus(t, rr, http.StatusInternalServerError)
	if msg := decodeBody[ErrorResponse](t, rr).Message; msg != "Error creating new room" {
		t.Errorf("message: got %q", msg)
	}

	rr = api.do(t, http.MethodGet, "/buildings/B1/rooms", "")
	wantStatus(t, rr, http.StatusOK)
	want := []RoomItem{{ID: "T-101", Name: "Aula", Level: "PISO 1"}}
	if got := decodeBody[[]RoomItem](t, rr); !reflect.DeepEqual(got, want) {
		t.Errorf("rooms: got %+v, want %+v", got, want)
	}
}

func TestCreateRoom_RequiresNameAndLevel(t *testing.T) {
	api := newTestAPI(t, Options{})

	rr := api.do(t, http.MethodPost, "/create/building/B1/room", `{"id":"T-101"}`)
	wantStatus(t, rr, http.StatusBadRequest)
	resp := decodeBody[ErrorResponse](t, rr)
	if resp.Code != CodeValidationFailed {
		t.Errorf("code: got %s, want %s", resp.Code, CodeValidationFailed)
	}
	want := []FieldError{
		{Index: 0, Field: "level", Message: "cannot be blank"},
		{Index: 0, Field: "name", Message: "cannot be blank"},
	}
	if !reflect.DeepEqual(resp.Fields, want) {
		t.Errorf("fields: got %+v, want %+v", resp.Fields, want)
	}

	wantStatus(t, api.do(t, http.MethodGet, "/buildings/B1/rooms", ""), http.StatusNotFound)
}

func TestCreateRooms_Batch(t *testing.T) {
	api := newTestAPI(t, Options{})
	body := `[{"id":"T-101","name":"Aula 1","level":"PISO 1"},{"id":"T-102","name":"Aula 2","level":"PISO 1"}]`

	rr := api.do(t, http.MethodPost, "/create/building/B1/rooms", body)
	wantStatus(t, rr, http.StatusCreated)
	if msg := decodeBody[MessageResponse](t, rr).Message; msg != "Rooms created successfully" {
		t.Errorf("message: got %q", msg)
	}

	// Upsert: repeating the batch with a renamed room succeeds and overwrites.
	rr = api.do(t, http.MethodPost, "/create/building/B1/rooms", `[{"id":"T-101","name":"Renombrada","level":"PISO 1"}]`)
	wantStatus(t, rr, http.StatusCreated)

	rooms := decodeBody[[]RoomItem](t, api.do(t, http.MethodGet, "/buildings/B1/rooms", ""))
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %+v", rooms)
	}
	if rooms[0].Name != "Renombrada" {
		t.Errorf("name: got %q, want Renombrada", rooms[0].Name)
	}
}

func TestCreateRooms_AnyInvalidPersistsNothing(t *testing.T) {
	api := newTestAPI(t, Options{})
	body := `[{"id":"T-101","name":"Aula 1","level":"PISO 1"},{"id":"T-102","name":"Aula 2"}]`

	rr := api.do(t, http.MethodPost, "/create/building/B1/rooms", body)
	wantStatus(t, rr, http.StatusBadRequest)
	resp := decodeBody[ErrorResponse](t, rr)
	if resp.Code != CodeValidationFailed {
		t.Errorf("code: got %s, want %s", resp.Code, CodeValidationFailed)
	}
	want := []FieldError{{Index: 1, Field: "level", Message: "cannot be blank"}}
	if !reflect.DeepEqual(resp.Fields, want) {
		t.Errorf("fields: got %+v, want %+v", resp.Fields, want)
	}

	wantStatus(t, api.do(t, http.MethodGet, "/buildings/B1/rooms", ""), http.StatusNotFound)
}

func TestCreateRooms_NotAnArray(t *testing.T) {
	api := newTestAPI(t, Options{})
	for _, body := range []string{`{"id":"T-101"}`, `null`, `"rooms"`} {
		rr := api.do(t, http.MethodPost, "/create/building/B1/rooms", body)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want %d", body, rr.Code, http.StatusBadRequest)
			continue
		}
		if msg := decodeBody[ErrorResponse](t, rr).Message; msg != "The request body must be an array of rooms." {
			t.Errorf("%s: message %q", body, msg)
		}
	}
}

func TestListRooms_EmptyIs404(t *testing.T) {
	api := newTestAPI(t, Options{})
	rr := api.do(t, http.MethodGet, "/buildings/B1/rooms", "")
	wantStatus(t, rr, http.StatusNotFound)
	if msg := decodeBody[ErrorResponse](t, rr).Message; msg != "No rooms found for the given building ID" {
		t.Errorf("message: got %q", msg)
	}
}

func TestListRoomsByLevel(t *testing.T) {
	api := newTestAPI(t, Options{})
	api.seed(t)

	rr := api.do(t, http.MethodGet, "/buildings/B1/rooms/level/pb", "")
	wantStatus(t, rr, http.StatusOK)
	want := []RoomItem{{ID: "T-101", Name: "Aula 101", Level: "PLANTA BAJA"}}
	if got := decodeBody[[]RoomItem](t, rr); !reflect.DeepEqual(got, want) {
		t.Errorf("ground floor: got %+v, want %+v", got, want)
	}

	rr = api.do(t, http.MethodGet, "/buildings/B1/rooms/level/2", "")
	wantStatus(t, rr, http.StatusOK)
	if got := decodeBody[[]RoomItem](t, rr); len(got) != 2 {
		t.Errorf("second floor: expected 2 rooms, got %+v", got)
	}

	for _, path := range []string{"/buildings/B1/rooms/level/PB", "/buildings/B1/rooms/level/3"} {
		if rr := api.do(t, http.MethodGet, path, ""); rr.Code != http.StatusNotFound {
			t.Errorf("%s: got %d, want %d", path, rr.Code, http.StatusNotFound)
		}
	}
}

// --- Buildings & areas ---

func TestGetBuilding_Missing(t *testing.T) {
	api := newTestAPI(t, Options{})
	rr := api.do(t, http.MethodGet, "/buildings/nope", "")
	wantStatus(t, rr, http.StatusOK)
	if rr.Body.Len() != 0 {
		t.Errorf("expected empty body, got %s", rr.Body.String())
	}

	strict := newTestAPI(t, Options{StrictNotFound: true})
	wantStatus(t, strict.do(t, http.MethodGet, "/buildings/nope", ""), http.StatusNotFound)
}

func TestGetArea_Missing(t *testing.T) {
	api := newTestAPI(t, Options{})
	rr := api.do(t, http.MethodGet, "/areas/nope", "")
	wantStatus(t, rr, http.StatusOK)
	if rr.Body.Len() != 0 {
		t.Errorf("expected empty body, got %s", rr.Body.String())
	}
}

func TestListBuildings(t *testing.T) {
	api := newTestAPI(t, Options{})
	rr := api.do(t, http.MethodGet, "/buildings", "")
	wantStatus(t, rr, http.StatusOK)
	wantJSON(t, rr, `[]`)

	api.seed(t)
	rr = api.do(t, http.MethodGet, "/buildings", "")
	wantStatus(t, rr, http.StatusOK)
	got := decodeBody[[]map[string]any](t, rr)
	if len(got) != 2 {
		t.Fatalf("expected 2 buildings, got %d", len(got))
	}
	if got[0]["id"] != "B1" {
		t.Errorf("first building: got %v, want B1", got[0]["id"])
	}
	if _, ok := got[0]["prefix"]; ok {
		t.Error("list items must not carry the prefix")
	}
}

func TestAreas(t *testing.T) {
	api := newTestAPI(t, Options{})
	api.seed(t)

	rr := api.do(t, http.MethodGet, "/areas", "")
	wantStatus(t, rr, http.StatusOK)
	list := decodeBody[[]map[string]any](t, rr)
	if len(list) != 2 {
		t.Fatalf("expected 2 areas, got %d", len(list))
	}
	if list[0]["id"] != "A1" {
		t.Errorf("first area: got %v, want A1", list[0]["id"])
	}
	if _, ok := list[0]["type"]; ok {
		t.Error("list items must not carry the type")
	}

	rr = api.do(t, http.MethodGet, "/areas/A1", "")
	wantStatus(t, rr, http.StatusOK)
	wantJSON(t, rr, `{"name":"Explanada","description":"Frente a rectoría","location":[1,2],"type":"espacio abierto"}`)

	rr = api.do(t, http.MethodGet, "/buildings/B2/areas", "")
	wantStatus(t, rr, http.StatusOK)
	wantJSON(t, rr, `[{"id":"C1","name":"Vestidores","type":"sanitarios"}]`)

	wantStatus(t, api.do(t, http.MethodGet, "/buildings/B1/areas", ""), http.StatusNotFound)
}

// --- Search ---

func TestSearch_MissingQuery(t *testing.T) {
	api := newTestAPI(t, Options{})
	for _, path := range []string{"/search", "/search?q="} {
		rr := api.do(t, http.MethodGet, path, "")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want %d", path, rr.Code, http.StatusBadRequest)
			continue
		}
		if msg := decodeBody[ErrorResponse](t, rr).Message; msg != "Search query is required" {
			t.Errorf("%s: message %q", path, msg)
		}
	}
}

func TestSearch_RoomCode(t *testing.T) {
	api := newTestAPI(t, Options{})
	api.seed(t)

	rr := api.do(t, http.MethodGet, "/search?q=T-101", "")
	wantStatus(t, rr, http.StatusOK)
	wantJSON(t, rr, `{
		"areas": [],
		"buildings": [{
			"id": "B1",
			"name": "Torre de Aulas",
			"description": "Salones de licenciatura",
			"location": {"lat":19.5,"lng":-99.1},
			"prefix": "T-",
			"rooms": [{"id":"T-101","name":"Aula 101","level":"PLANTA BAJA"}]
		}]
	}`)
}

func TestSearch_DescriptionShortCircuits(t *testing.T) {
	api := newTestAPI(t, Options{})
	api.seed(t)

	rr := api.do(t, http.MethodGet, "/search?q=Salones", "")
	wantStatus(t, rr, http.StatusOK)
	resp := decodeBody[SearchResponse](t, rr)
	if len(resp.Buildings) != 1 {
		t.Fatalf("expected 1 building, got %+v", resp.Buildings)
	}
	b := resp.Buildings[0]
	if b.ID != "B1" {
		t.Errorf("building: got %s, want B1", b.ID)
	}
	if b.Rooms != nil || b.CommonAreas != nil {
		t.Errorf("a description match must not attach rooms or common areas: %+v", b)
	}
}

func TestSearch_CommonAreasAndAreas(t *testing.T) {
	api := newTestAPI(t, Options{})
	api.seed(t)

	rr := api.do(t, http.MethodGet, "/search?q=sanitarios", "")
	wantStatus(t, rr, http.StatusOK)
	resp := decodeBody[SearchResponse](t, rr)
	if len(resp.Areas) != 0 {
		t.Errorf("expected no areas, got %+v", resp.Areas)
	}
	if len(resp.Buildings) != 1 || resp.Buildings[0].ID != "B2" {
		t.Fatalf("expected building B2, got %+v", resp.Buildings)
	}
	if common := resp.Buildings[0].CommonAreas; len(common) != 1 || common[0].ID != "C1" {
		t.Errorf("expected common area C1, got %+v", common)
	}

	rr = api.do(t, http.MethodGet, "/search?q=comida", "")
	resp = decodeBody[SearchResponse](t, rr)
	if len(resp.Areas) != 1 {
		t.Fatalf("expected 1 area, got %+v", resp.Areas)
	}
	if a := resp.Areas[0]; a.ID != "A2" || a.Type != "comida" {
		t.Errorf("unexpected area %+v", a)
	}
}

func TestSearch_StoreError(t *testing.T) {
	api := newTestAPI(t, Options{})
	api.store.err = &db.Error{Op: db.OpList, Err: errors.New("connection refused")}

	rr := api.do(t, http.MethodGet, "/search?q=Torre", "")
	wantStatus(t, rr, http.StatusInternalServerError)
	resp := decodeBody[ErrorResponse](t, rr)
	if resp.Code != CodeInternalError {
		t.Errorf("code: got %s, want %s", resp.Code, CodeInternalError)
	}
	if !strings.Contains(resp.Error, "connection refused") {
		t.Errorf("error: got %q", resp.Error)
	}
}

func TestInvalidStoredDocument(t *testing.T) {
	api := newTestAPI(t, Options{})
	err := api.store.Set(context.Background(),
		db.Collection("buildings").Doc("B1"), []byte(`{"description":"sin nombre"}`))
	if err != nil {
		t.Fatalf("set: %v", err)
	}

	rr := api.do(t, http.MethodGet, "/buildings", "")
	wantStatus(t, rr, http.StatusInternalServerError)
	if code := decodeBody[ErrorResponse](t, rr).Code; code != CodeInvalidDocument {
		t.Errorf("code: got %s, want %s", code, CodeInvalidDocument)
	}
}

// --- Ambient ---

func TestHealth(t *testing.T) {
	api := newTestAPI(t, Options{})
	rr := api.do(t, http.MethodGet, "/health", "")
	wantStatus(t, rr, http.StatusOK)
	wantJSON(t, rr, `{"status":"ok","checks":{"database":"ok"}}`)

	api.store.err = errors.New("down")
	wantStatus(t, api.do(t, http.MethodGet, "/health", ""), http.StatusServiceUnavailable)
}

func TestRouter_RequestIDAndCORS(t *testing.T) {
	api := newTestAPI(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/buildings", http.NoBody)
	req.Header.Set("Origin", "https://mapa.example.edu")
	rr := httptest.NewRecorder()
	api.handler.ServeHTTP(rr, req)

	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow origin: got %q, want *", got)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	api := newTestAPI(t, Options{})
	rr := api.do(t, http.MethodGet, "/nope", "")
	wantStatus(t, rr, http.StatusNotFound)
	if code := decodeBody[ErrorResponse](t, rr).Code; code != CodeNotFound {
		t.Errorf("code: got %s, want %s", code, CodeNotFound)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	api := newTestAPI(t, Options{})
	api.do(t, http.MethodGet, "/buildings", "")

	rr := api.do(t, http.MethodGet, "/metrics", "")
	wantStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), "campusdir_http_requests_total") {
		t.Error("expected campusdir_http_requests_total in metrics output")
	}
}
