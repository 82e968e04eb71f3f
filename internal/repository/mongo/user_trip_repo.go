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

// mongoUserTripRepository implements repository.UserTripRepository
type mongoUserTripRepository struct {
	collection *mongo.Collection
}

// NewMongoUserTripRepository creates a new UserTrip repository backed by MongoDB.
func NewMongoUserTripRepository(db *mongo.Database) repository.UserTripRepository {
	return &mongoUserTripRepository{
		collection: db.Collection(userTripCollectionName),
	}
}

// Create inserts a new trip. The share token must already be set by the caller.
func (r *mongoUserTripRepository) Create(ctx context.Context, trip *domain.UserTrip) (string, error) {
	if trip.ShareToken == "" {
		return "", errors.New("trip requires a share token")
	}

	trip.ID = uuid.NewString()
	trip.CreatedAt = time.Now().UTC()
	if trip.CompletedActivities == nil {
		trip.CompletedActivities = map[string]bool{}
	}

	if _, err := r.collection.InsertOne(ctx, trip); err != nil {
		return "", err
	}
	return trip.ID, nil
}

// GetByID retrieves a trip by its ID.
func (r *mongoUserTripRepository) GetByID(ctx context.Context, id string) (*domain.UserTrip, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByShareToken retrieves a trip by its share token.
func (r *mongoUserTripRepository) GetByShareToken(ctx context.Context, token string) (*domain.UserTrip, error) {
	return r.findOne(ctx, bson.M{"share_token": token})
}

// UpdateProgress replaces the completed activities of a trip.
// Concurrent updates are last-write-wins.
func (r *mongoUserTripRepository) UpdateProgress(ctx context.Context, id string, completed map[string]bool) (*domain.UserTrip, error) {
	if completed == nil {
		completed = map[string]bool{}
	}
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"completed_activities": completed}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, repository.ErrNotFound
	}
	// ModifiedCount is 0 when the same progress is re-submitted. That is not an error.
	return r.GetByID(ctx, id)
}

func (r *mongoUserTripRepository) findOne(ctx context.Context, filter bson.M) (*domain.UserTrip, error) {
	var trip domain.UserTrip
	err := r.collection.FindOne(ctx, filter).Decode(&trip)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if trip.CompletedActivities == nil {
		trip.CompletedActivities = map[string]bool{}
	}
	return &trip, nil
}

// EnsureUserTripIndexes creates necessary indexes for the user_trips collection.
func EnsureUserTripIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Share tokens are random; the unique index turns a collision into an insert error.
			Keys:    bson.D{{Key: "share_token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_email", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
