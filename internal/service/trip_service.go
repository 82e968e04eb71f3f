package service

import (
	"alcyxob/travel-planner/internal/domain"
	"alcyxob/travel-planner/internal/metrics"
	"alcyxob/travel-planner/internal/repository"
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrTripNotFound       = errors.New("trip not found")
	ErrSharedTripNotFound = errors.New("shared trip not found")
	ErrValidationFailed   = errors.New("validation failed")
)

// shareTokenBytes is the amount of randomness behind a share token.
const shareTokenBytes = 16

// CreateTripInput carries the fields a user supplies when saving a trip.
// Only shape is checked; the end date may precede the start date.
type CreateTripInput struct {
	Destination    string
	StartDate      time.Time
	EndDate        time.Time
	Travelers      int
	SelectedBudget string
	UserEmail      *string
}

// TripProgress is a trip together with its computed completion percentage.
type TripProgress struct {
	Trip               *domain.UserTrip
	ProgressPercentage float64
}

type TripService interface {
	CreateTrip(ctx context.Context, input CreateTripInput) (*domain.UserTrip, error)
	GetProgress(ctx context.Context, tripID string) (*TripProgress, error)
	// UpdateProgress replaces the completed activities of a trip. Re-submitting the stored
	// mapping succeeds.
	UpdateProgress(ctx context.Context, tripID string, completed map[string]bool) (*TripProgress, error)
	GetSharedTrip(ctx context.Context, shareToken string) (*domain.UserTrip, error)
}

// tripService implements the TripService interface.
type tripService struct {
	tripRepo repository.UserTripRepository
	newToken func() (string, error)
	metrics  *metrics.Metrics
	logger   *logrus.Logger
}

// NewTripService creates a new instance of tripService.
func NewTripService(tripRepo repository.UserTripRepository, m *metrics.Metrics, logger *logrus.Logger) TripService {
	return &tripService{
		tripRepo: tripRepo,
		newToken: GenerateShareToken,
		metrics:  m,
		logger:   logger,
	}
}

// GenerateShareToken returns 16 random bytes encoded as unpadded URL-safe base64.
func GenerateShareToken() (string, error) {
	b := make([]byte, shareTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// CreateTrip saves a new trip with a fresh share token and no completed activities.
func (s *tripService) CreateTrip(ctx context.Context, input CreateTripInput) (*domain.UserTrip, error) {
	if strings.TrimSpace(input.Destination) == "" || strings.TrimSpace(input.SelectedBudget) == "" {
		return nil, fmt.Errorf("%w: destination and selected budget are required", ErrValidationFailed)
	}

	token, err := s.newToken()
	if err != nil {
		return nil, fmt.Errorf("generate share token: %w", err)
	}

	trip := &domain.UserTrip{
		Destination:         input.Destination,
		StartDate:           input.StartDate.UTC(),
		EndDate:             input.EndDate.UTC(),
		Travelers:           input.Travelers,
		SelectedBudget:      input.SelectedBudget,
		CompletedActivities: map[string]bool{},
		UserEmail:           input.UserEmail,
		ShareToken:          token,
	}

	if _, err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	s.metrics.TripCreated()
	s.logger.WithFields(logrus.Fields{
		"trip_id":     trip.ID,
		"destination": trip.Destination,
		"budget":      trip.SelectedBudget,
	}).Info("trip created")

	return trip, nil
}

// GetProgress loads a trip and computes its progress.
func (s *tripService) GetProgress(ctx context.Context, tripID string) (*TripProgress, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return &TripProgress{Trip: trip, ProgressPercentage: trip.ProgressPercentage()}, nil
}

// UpdateProgress replaces the completed activities and returns the recomputed progress.
// Concurrent updates to one trip are last-write-wins.
func (s *tripService) UpdateProgress(ctx context.Context, tripID string, completed map[string]bool) (*TripProgress, error) {
	if completed == nil {
		completed = map[string]bool{}
	}

	trip, err := s.tripRepo.UpdateProgress(ctx, tripID, completed)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	s.metrics.ProgressUpdated()
	return &TripProgress{Trip: trip, ProgressPercentage: trip.ProgressPercentage()}, nil
}

// GetSharedTrip loads a trip by its share token. Possession of the token is the only check.
func (s *tripService) GetSharedTrip(ctx context.Context, shareToken string) (*domain.UserTrip, error) {
	trip, err := s.tripRepo.GetByShareToken(ctx, shareToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSharedTripNotFound
		}
		return nil, err
	}
	s.metrics.SharedTripViewed()
	return trip, nil
}
