package api

import (
	"alcyxob/travel-planner/internal/domain"
	"alcyxob/travel-planner/internal/repository"
	"alcyxob/travel-planner/internal/seed"
	"alcyxob/travel-planner/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// memoryTrips is an in-memory repository.UserTripRepository used to drive the real trip service.
type memoryTrips struct {
	mu    sync.Mutex
	trips map[string]domain.UserTrip
	seq   int
}

func newMemoryTrips() *memoryTrips {
	return &memoryTrips{trips: map[string]domain.UserTrip{}}
}

func (m *memoryTrips) Create(_ context.Context, t *domain.UserTrip) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t.ID = fmt.Sprintf("trip-%d", m.seq)
	t.CreatedAt = time.Now().UTC()
	m.trips[t.ID] = copyTrip(*t)
	return t.ID, nil
}

func (m *memoryTrips) GetByID(_ context.Context, id string) (*domain.UserTrip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := copyTrip(t)
	return &c, nil
}

func (m *memoryTrips) GetByShareToken(_ context.Context, token string) (*domain.UserTrip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.trips {
		if t.ShareToken == token {
			c := copyTrip(t)
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryTrips) UpdateProgress(_ context.Context, id string, completed map[string]bool) (*domain.UserTrip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t.CompletedActivities = completed
	m.trips[id] = copyTrip(t)
	c := copyTrip(t)
	return &c, nil
}

func copyTrip(t domain.UserTrip) domain.UserTrip {
	m := make(map[string]bool, len(t.CompletedActivities))
	for k, v := range t.CompletedActivities {
		m[k] = v
	}
	t.CompletedActivities = m
	return t
}

// stubDestinations is a configurable service.DestinationService.
type stubDestinations struct {
	destinations []domain.Destination
	plans        []domain.TravelPlan
	err          error
	lastPopular  bool
}

func (s *stubDestinations) ListDestinations(_ context.Context, popularOnly bool) ([]domain.Destination, error) {
	s.lastPopular = popularOnly
	if s.err != nil {
		return nil, s.err
	}
	out := []domain.Destination{}
	for _, d := range s.destinations {
		if !popularOnly || d.Popular {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *stubDestinations) GetDestination(_ context.Context, name string) (*domain.Destination, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.destinations {
		if strings.EqualFold(s.destinations[i].Name, name) {
			return &s.destinations[i], nil
		}
	}
	return nil, service.ErrDestinationNotFound
}

func (s *stubDestinations) CreateDestination(_ context.Context, in service.CreateDestinationInput) (*domain.Destination, error) {
	if s.err != nil {
		return nil, s.err
	}
	d := domain.Destination{ID: fmt.Sprintf("dest-%d", len(s.destinations)+1), Name: in.Name, Country: in.Country, Popular: in.Popular, ImageURL: in.ImageURL, CreatedAt: time.Now().UTC()}
	s.destinations = append(s.destinations, d)
	return &d, nil
}

func (s *stubDestinations) GetTravelPlan(_ context.Context, name string) (*domain.TravelPlan, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.plans {
		if strings.EqualFold(s.plans[i].DestinationName, name) {
			return &s.plans[i], nil
		}
	}
	return nil, service.ErrTravelPlanNotFound
}

func (s *stubDestinations) CreateTravelPlan(_ context.Context, plan *domain.TravelPlan) (*domain.TravelPlan, error) {
	if s.err != nil {
		return nil, s.err
	}
	plan.ID = fmt.Sprintf("plan-%d", len(s.plans)+1)
	s.plans = append(s.plans, *plan)
	return plan, nil
}

type stubSeeder struct {
	calls int
	err   error
}

func (s *stubSeeder) Seed(context.Context) (*seed.Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &seed.Result{DestinationsCreated: 6, PlansCreated: 2}, nil
}

type testServer struct {
	router       *gin.Engine
	destinations *stubDestinations
	trips        *memoryTrips
	seeder       *stubSeeder
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		destinations: &stubDestinations{},
		trips:        newMemoryTrips(),
		seeder:       &stubSeeder{},
	}
	logger := quietLogger()
	ts.router = gin.New()
	ts.router.Use(CORSMiddleware([]string{"*"}))
	SetupRoutes(ts.router, logger, ts.destinations,
		service.NewTripService(ts.trips, nil, logger), ts.seeder, prometheus.NewRegistry())
	return ts
}

func (ts *testServer) do(t *testing.T, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeJSON(w *httptest.ResponseRecorder, v interface{}) error {
	return json.Unmarshal(w.Body.Bytes(), v)
}

func newRequestWithOrigin(method, target, origin string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Origin", origin)
	return req
}

func serve(ts *testServer, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}
