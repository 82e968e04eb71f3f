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

// mongoDestinationRepository implements repository.DestinationRepository
type mongoDestinationRepository struct {
	collection *mongo.Collection
}

// NewMongoDestinationRepository creates a new Destination repository backed by MongoDB.
func NewMongoDestinationRepository(db *mongo.Database) repository.DestinationRepository {
	return &mongoDestinationRepository{
		collection: db.Collection(destinationCollectionName),
	}
}

// Create assigns an ID and creation time and inserts the destination.
func (r *mongoDestinationRepository) Create(ctx context.Context, destination *domain.Destination) (string, error) {
	if destination.Name == "" {
		return "", errors.New("destination name is required")
	}

	destination.ID = uuid.NewString()
	destination.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, destination); err != nil {
		return "", err
	}
	return destination.ID, nil
}

// List returns destinations in insertion order, optionally only the popular ones.
func (r *mongoDestinationRepository) List(ctx context.Context, popularOnly bool) ([]domain.Destination, error) {
	filter := bson.M{}
	if popularOnly {
		filter["popular"] = true
	}
	findOptions := options.Find().SetLimit(repository.MaxDestinations)

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	destinations := []domain.Destination{}
	if err = cursor.All(ctx, &destinations); err != nil {
		return nil, err
	}
	return destinations, nil
}

// GetByName retrieves the first destination whose name equals name, ignoring case.
func (r *mongoDestinationRepository) GetByName(ctx context.Context, name string) (*domain.Destination, error) {
	var destination domain.Destination
	err := r.collection.FindOne(ctx, nameFilter("name", name)).Decode(&destination)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &destination, nil
}

// EnsureDestinationIndexes creates necessary indexes for the destinations collection.
func EnsureDestinationIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "popular", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
