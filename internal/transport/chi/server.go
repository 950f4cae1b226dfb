package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/campusdir/internal/domain"
	areauc "github.com/kailas-cloud/campusdir/internal/usecase/area"
	buildinguc "github.com/kailas-cloud/campusdir/internal/usecase/building"
	healthuc "github.com/kailas-cloud/campusdir/internal/usecase/health"
	roomuc "github.com/kailas-cloud/campusdir/internal/usecase/room"
	searchuc "github.com/kailas-cloud/campusdir/internal/usecase/search"
)

// Options tunes API behavior.
type Options struct {
	// StrictNotFound answers missing single documents with 404 and duplicate creates with 409.
	// When false, missing documents yield 200 with an empty body and duplicates yield 500.
	StrictNotFound bool
}

// Server holds the HTTP handlers of the directory API.
type Server struct {
	buildings      *buildinguc.Service
	rooms          *roomuc.Service
	areas          *areauc.Service
	search         *searchuc.Service
	health         *healthuc.Service
	logger         *zap.Logger
	strictNotFound bool
	errorHandlers  []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	buildings *buildinguc.Service,
	rooms *roomuc.Service,
	areas *areauc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
	opts Options,
) *Server {
	s := &Server{
		buildings:      buildings,
		rooms:          rooms,
		areas:          areas,
		search:         search,
		health:         health,
		logger:         logger,
		strictNotFound: opts.StrictNotFound,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, CodeBadRequest),
	}
	if opts.StrictNotFound {
		s.errorHandlers = append(s.errorHandlers,
			sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
			sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, CodeAlreadyExists),
		)
	}
	return s
}

// Mount registers every route on r.
func (s *Server) Mount(r chi.Router) {
	r.Post("/create/building", s.CreateBuilding)
	r.Post("/create/building/{id}/room", s.CreateRoom)
	r.Post("/create/building/{id}/rooms", s.CreateRooms)

	r.Get("/buildings", s.ListBuildings)
	r.Get("/buildings/{id}", s.GetBuilding)
	r.Get("/buildings/{id}/rooms", s.ListRooms)
	r.Get("/buildings/{id}/rooms/level/{level}", s.ListRoomsByLevel)
	r.Get("/buildings/{id}/areas", s.ListCommonAreas)

	r.Get("/areas", s.ListAreas)
	r.Get("/areas/{id}", s.GetArea)

	r.Get("/search", s.Search)

	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())
}

// CreateBuilding handles POST /create/building.
func (s *Server) CreateBuilding(w http.ResponseWriter, r *http.Request) {
	var in buildinguc.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body", err)
		return
	}

	if _, err := s.buildings.Create(r.Context(), in); err != nil {
		s.handleDomainError(w, r, err, "Error creating new building")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// CreateRoom handles POST /create/building/{id}/room.
func (s *Server) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var in roomuc.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body", err)
		return
	}

	if _, err := s.rooms.Create(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		s.handleDomainError(w, r, err, "Error creating new room")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// CreateRooms handles POST /create/building/{id}/rooms.
func (s *Server) CreateRooms(w http.ResponseWriter, r *http.Request) {
	var in []roomuc.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "The request body must be an array of rooms.", err)
		return
	}
	if in == nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "The request body must be an array of rooms.", nil)
		return
	}

	if err := s.rooms.BatchCreate(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		s.handleDomainError(w, r, err, "Missing room id, name, or level for one of the rooms.")
		return
	}
	writeJSON(w, http.StatusCreated, MessageResponse{Message: "Rooms created successfully"})
}

// GetBuilding handles GET /buildings/{id}.
func (s *Server) GetBuilding(w http.ResponseWriter, r *http.Request) {
	b, err := s.buildings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.writeMissing(w, "Building not found", err)
			return
		}
		s.handleDomainError(w, r, err, "Error retrieving building")
		return
	}
	writeJSON(w, http.StatusOK, buildingToResponse(&b))
}

// ListBuildings handles GET /buildings.
func (s *Server) ListBuildings(w http.ResponseWriter, r *http.Request) {
	bs, err := s.buildings.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err, "Error retrieving buildings")
		return
	}

	items := make([]BuildingSummary, len(bs))
	for i := range bs {
		items[i] = buildingToSummary(&bs[i])
	}
	writeJSON(w, http.StatusOK, items)
}

// ListRooms handles GET /buildings/{id}/rooms.
func (s *Server) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.rooms.ListByBuilding(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, CodeNotFound, "No rooms found for the given building ID", nil)
			return
		}
		s.handleDomainError(w, r, err, "Error retrieving rooms")
		return
	}
	writeJSON(w, http.StatusOK, roomsToItems(rooms))
}

// ListRoomsByLevel handles GET /buildings/{id}/rooms/level/{level}.
func (s *Server) ListRoomsByLevel(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.rooms.ListByLevel(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "level"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, CodeNotFound, "No rooms found for the given building ID and level", nil)
			return
		}
		s.handleDomainError(w, r, err, "Error retrieving rooms")
		return
	}
	writeJSON(w, http.StatusOK, roomsToItems(rooms))
}

// ListCommonAreas handles GET /buildings/{id}/areas.
func (s *Server) ListCommonAreas(w http.ResponseWriter, r *http.Request) {
	as, err := s.areas.ListCommon(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, CodeNotFound, "No areas found for the given building ID", nil)
			return
		}
		s.handleDomainError(w, r, err, "Error retrieving areas")
		return
	}
	writeJSON(w, http.StatusOK, areasToItems(as))
}

// ListAreas handles GET /areas.
func (s *Server) ListAreas(w http.ResponseWriter, r *http.Request) {
	as, err := s.areas.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err, "Error retrieving areas")
		return
	}

	items := make([]AreaSummary, len(as))
	for i := range as {
		items[i] = areaToSummary(&as[i])
	}
	writeJSON(w, http.StatusOK, items)
}

// GetArea handles GET /areas/{id}.
func (s *Server) GetArea(w http.ResponseWriter, r *http.Request) {
	a, err := s.areas.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.writeMissing(w, "Area not found", err)
			return
		}
		s.handleDomainError(w, r, err, "Error retrieving area")
		return
	}
	writeJSON(w, http.StatusOK, areaToResponse(&a))
}

// Search handles GET /search?q=.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Search query is required", nil)
		return
	}

	res, err := s.search.Search(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err, "Error searching")
		return
	}
	writeJSON(w, http.StatusOK, searchToResponse(&res))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(report.Status), Checks: checks})
}
