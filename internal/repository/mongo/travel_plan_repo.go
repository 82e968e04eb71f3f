// internal/repository/mongo/travel_plan_repo.go
package mongo

import (
	"alcyxob/travel-planner/internal/domain"
	"alcyxob/travel-planner/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoTravelPlanRepository implements repository.TravelPlanRepository
type mongoTravelPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoTravelPlanRepository creates a new TravelPlan repository.
func NewMongoTravelPlanRepository(db *mongo.Database) repository.TravelPlanRepository {
	return &mongoTravelPlanRepository{
		collection: db.Collection(travelPlanCollectionName),
	}
}

// Create inserts a new travel plan.
func (r *mongoTravelPlanRepository) Create(ctx context.Context, plan *domain.TravelPlan) (string, error) {
	if plan.DestinationName == "" {
		return "", errors.New("travel plan requires a destination name")
	}
	plan.ID = uuid.NewString()
	plan.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, plan); err != nil {
		return "", err
	}
	return plan.ID, nil
}

// GetByDestinationName retrieves the first plan for the named destination, ignoring case.
func (r *mongoTravelPlanRepository) GetByDestinationName(ctx context.Context, name string) (*domain.TravelPlan, error) {
	var plan domain.TravelPlan
	err := r.collection.FindOne(ctx, nameFilter("destination_name", name)).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// EnsureTravelPlanIndexes creates necessary indexes. Call during startup.
func EnsureTravelPlanIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "destination_name", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "destination_id", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
