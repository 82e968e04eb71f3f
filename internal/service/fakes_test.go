package service

import (
	"alcyxob/travel-planner/internal/domain"
	"alcyxob/travel-planner/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fakeTripRepo is an in-memory repository.UserTripRepository.
type fakeTripRepo struct {
	mu     sync.Mutex
	trips  map[string]domain.UserTrip
	nextID int
	err    error
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: map[string]domain.UserTrip{}}
}

func (r *fakeTripRepo) Create(_ context.Context, trip *domain.UserTrip) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return "", r.err
	}
	r.nextID++
	trip.ID = fmt.Sprintf("trip-%d", r.nextID)
	trip.CreatedAt = time.Now().UTC()
	r.trips[trip.ID] = cloneTrip(*trip)
	return trip.ID, nil
}

func (r *fakeTripRepo) GetByID(_ context.Context, id string) (*domain.UserTrip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	trip, ok := r.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t := cloneTrip(trip)
	return &t, nil
}

func (r *fakeTripRepo) GetByShareToken(_ context.Context, token string) (*domain.UserTrip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, trip := range r.trips {
		if trip.ShareToken == token {
			t := cloneTrip(trip)
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTripRepo) UpdateProgress(_ context.Context, id string, completed map[string]bool) (*domain.UserTrip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	trip, ok := r.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	trip.CompletedActivities = map[string]bool{}
	for k, v := range completed {
		trip.CompletedActivities[k] = v
	}
	r.trips[id] = trip
	t := cloneTrip(trip)
	return &t, nil
}

func cloneTrip(t domain.UserTrip) domain.UserTrip {
	completed := make(map[string]bool, len(t.CompletedActivities))
	for k, v := range t.CompletedActivities {
		completed[k] = v
	}
	t.CompletedActivities = completed
	return t
}

// fakeDestinationRepo is an in-memory repository.DestinationRepository.
type fakeDestinationRepo struct {
	destinations []domain.Destination
	err          error
}

func (r *fakeDestinationRepo) Create(_ context.Context, d *domain.Destination) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	d.ID = fmt.Sprintf("dest-%d", len(r.destinations)+1)
	d.CreatedAt = time.Now().UTC()
	r.destinations = append(r.destinations, *d)
	return d.ID, nil
}

func (r *fakeDestinationRepo) List(_ context.Context, popularOnly bool) ([]domain.Destination, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []domain.Destination{}
	for _, d := range r.destinations {
		if !popularOnly || d.Popular {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDestinationRepo) GetByName(_ context.Context, name string) (*domain.Destination, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, d := range r.destinations {
		if strings.EqualFold(d.Name, name) {
			dd := d
			return &dd, nil
		}
	}
	return nil, repository.ErrNotFound
}

// fakePlanRepo is an in-memory repository.TravelPlanRepository that counts lookups.
type fakePlanRepo struct {
	plans   []domain.TravelPlan
	lookups int
	err     error
}

func (r *fakePlanRepo) Create(_ context.Context, p *domain.TravelPlan) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	p.ID = fmt.Sprintf("plan-%d", len(r.plans)+1)
	p.CreatedAt = time.Now().UTC()
	r.plans = append(r.plans, *p)
	return p.ID, nil
}

func (r *fakePlanRepo) GetByDestinationName(_ context.Context, name string) (*domain.TravelPlan, error) {
	r.lookups++
	if r.err != nil {
		return nil, r.err
	}
	for _, p := range r.plans {
		if strings.EqualFold(p.DestinationName, name) {
			pp := p
			return &pp, nil
		}
	}
	return nil, repository.ErrNotFound
}

// memoryCache is a map backed PlanCache.
type memoryCache struct {
	items map[string][]byte
}

var errMiss = errors.New("miss")

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	data, ok := c.items[key]
	if !ok {
		return errMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = data
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

// fakeStorage presigns by prefixing the key.
type fakeStorage struct {
	err error
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://signed.example/" + key, nil
}
