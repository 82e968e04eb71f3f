package service

import (
	"alcyxob/travel-planner/internal/domain"
	"alcyxob/travel-planner/internal/metrics"
	"alcyxob/travel-planner/internal/repository"
	"alcyxob/travel-planner/internal/storage"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrDestinationNotFound = errors.New("destination not found")
	ErrTravelPlanNotFound  = errors.New("travel plans not found")
)

// PlanCache is the subset of the cache used for travel plans.
// Get must return an error (any error) on a miss.
type PlanCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CreateDestinationInput carries the fields of a new destination.
type CreateDestinationInput struct {
	Name     string
	Country  string
	Popular  bool
	ImageURL *string
}

type DestinationService interface {
	ListDestinations(ctx context.Context, popularOnly bool) ([]domain.Destination, error)
	GetDestination(ctx context.Context, name string) (*domain.Destination, error)
	CreateDestination(ctx context.Context, input CreateDestinationInput) (*domain.Destination, error)
	GetTravelPlan(ctx context.Context, destinationName string) (*domain.TravelPlan, error)
	CreateTravelPlan(ctx context.Context, plan *domain.TravelPlan) (*domain.TravelPlan, error)
}

// DestinationServiceOption configures optional collaborators of the destination service.
type DestinationServiceOption func(*destinationService)

// WithPlanCache serves travel plans through cache, keeping entries for ttl.
func WithPlanCache(cache PlanCache, ttl time.Duration) DestinationServiceOption {
	return func(s *destinationService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithImageStorage resolves destination image object keys to presigned URLs.
func WithImageStorage(files storage.FileStorage, expiry time.Duration) DestinationServiceOption {
	return func(s *destinationService) {
		s.files = files
		s.imageExpiry = expiry
	}
}

// destinationService implements the DestinationService interface.
type destinationService struct {
	destinationRepo repository.DestinationRepository
	planRepo        repository.TravelPlanRepository
	cache           PlanCache
	cacheTTL        time.Duration
	files           storage.FileStorage
	imageExpiry     time.Duration
	metrics         *metrics.Metrics
	logger          *logrus.Logger
}

// NewDestinationService creates a new instance of destinationService.
func NewDestinationService(
	destinationRepo repository.DestinationRepository,
	planRepo repository.TravelPlanRepository,
	m *metrics.Metrics,
	logger *logrus.Logger,
	opts ...DestinationServiceOption,
) DestinationService {
	s := &destinationService{
		destinationRepo: destinationRepo,
		planRepo:        planRepo,
		metrics:         m,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListDestinations returns all destinations, or only popular ones.
func (s *destinationService) ListDestinations(ctx context.Context, popularOnly bool) ([]domain.Destination, error) {
	destinations, err := s.destinationRepo.List(ctx, popularOnly)
	if err != nil {
		return nil, err
	}
	for i := range destinations {
		s.resolveImage(ctx, &destinations[i])
	}
	return destinations, nil
}

// GetDestination finds a destination by name, ignoring case.
func (s *destinationService) GetDestination(ctx context.Context, name string) (*domain.Destination, error) {
	destination, err := s.destinationRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	s.resolveImage(ctx, destination)
	return destination, nil
}

// CreateDestination stores a new destination.
func (s *destinationService) CreateDestination(ctx context.Context, input CreateDestinationInput) (*domain.Destination, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Country) == "" {
		return nil, fmt.Errorf("%w: destination name and country are required", ErrValidationFailed)
	}
	destination := &domain.Destination{
		Name:     input.Name,
		Country:  input.Country,
		Popular:  input.Popular,
		ImageURL: input.ImageURL,
	}
	if _, err := s.destinationRepo.Create(ctx, destination); err != nil {
		return nil, err
	}
	s.logger.WithField("destination", destination.Name).Info("destination created")
	return destination, nil
}

// GetTravelPlan returns the plan for a destination, consulting the cache first when one is
// configured. Cache failures fall back to the database.
func (s *destinationService) GetTravelPlan(ctx context.Context, destinationName string) (*domain.TravelPlan, error) {
	key := planCacheKey(destinationName)

	if s.cache != nil {
		var cached domain.TravelPlan
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			s.metrics.CacheLookup(true)
			return &cached, nil
		}
		s.metrics.CacheLookup(false)
	}

	plan, err := s.planRepo.GetByDestinationName(ctx, destinationName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTravelPlanNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, plan, s.cacheTTL); err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("failed to cache travel plan")
		}
	}
	return plan, nil
}

// CreateTravelPlan stores a plan. When no destination ID is given, it is looked up from the
// destination name if such a destination exists.
func (s *destinationService) CreateTravelPlan(ctx context.Context, plan *domain.TravelPlan) (*domain.TravelPlan, error) {
	if strings.TrimSpace(plan.DestinationName) == "" {
		return nil, fmt.Errorf("%w: destination name is required", ErrValidationFailed)
	}

	if plan.DestinationID == "" {
		destination, err := s.destinationRepo.GetByName(ctx, plan.DestinationName)
		switch {
		case err == nil:
			plan.DestinationID = destination.ID
		case !errors.Is(err, repository.ErrNotFound):
			return nil, err
		}
	}

	if _, err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, planCacheKey(plan.DestinationName)); err != nil {
			s.logger.WithError(err).Warn("failed to invalidate cached travel plan")
		}
	}
	s.logger.WithField("destination", plan.DestinationName).Info("travel plan created")
	return plan, nil
}

// resolveImage replaces an image object key with a presigned URL. Absolute URLs are left alone.
func (s *destinationService) resolveImage(ctx context.Context, destination *domain.Destination) {
	if s.files == nil || destination.ImageURL == nil {
		return
	}
	ref := *destination.ImageURL
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return
	}
	signed, err := s.files.GeneratePresignedDownloadURL(ctx, ref, s.imageExpiry)
	if err != nil {
		s.logger.WithError(err).WithField("destination", destination.Name).Warn("could not presign destination image")
		destination.ImageURL = nil
		return
	}
	destination.ImageURL = &signed
}

// planCacheKey is case-insensitive to match the lookup policy.
func planCacheKey(destinationName string) string {
	return "plan:" + strings.ToLower(destinationName)
}
