package repository

import (
	"alcyxob/travel-planner/internal/domain" // Import our defined domain models
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound = RepositoryError("not found")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// MaxDestinations caps how many destinations a single listing returns.
const MaxDestinations = 1000

// DestinationRepository defines the interface for interacting with destination data.
type DestinationRepository interface {
	Create(ctx context.Context, destination *domain.Destination) (string, error)
	List(ctx context.Context, popularOnly bool) ([]domain.Destination, error)
	// GetByName matches the whole name ignoring case. The first match wins.
	GetByName(ctx context.Context, name string) (*domain.Destination, error)
}

// TravelPlanRepository defines the interface for interacting with travel plan data.
type TravelPlanRepository interface {
	Create(ctx context.Context, plan *domain.TravelPlan) (string, error)
	// GetByDestinationName uses the same matching policy as DestinationRepository.GetByName.
	GetByDestinationName(ctx context.Context, name string) (*domain.TravelPlan, error)
}

// UserTripRepository defines the interface for interacting with saved trips.
type UserTripRepository interface {
	Create(ctx context.Context, trip *domain.UserTrip) (string, error)
	GetByID(ctx context.Context, id string) (*domain.UserTrip, error)
	GetByShareToken(ctx context.Context, token string) (*domain.UserTrip, error)
	// UpdateProgress replaces the completed activities mapping wholesale and returns the
	// stored trip. ErrNotFound is returned only when no trip has the given id.
	UpdateProgress(ctx context.Context, id string, completed map[string]bool) (*domain.UserTrip, error)
}
