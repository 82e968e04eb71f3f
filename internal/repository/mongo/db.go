package mongo

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// Collection names
const (
	destinationCollectionName = "destinations"
	travelPlanCollectionName  = "travel_plans"
	userTripCollectionName    = "user_trips"
)

// ConnectDB establishes a connection to MongoDB using the provided URI.
// The returned client owns a connection pool shared by every repository and must be
// released with DisconnectDB on shutdown.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetAppName("travel-planner")

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the primary separately; Connect succeeds even when the server is unreachable.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	err = client.Ping(pingCtx, readpref.Primary())
	if err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes for every collection used by the application.
// Failures are logged and do not stop the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *logrus.Logger) {
	ensure := map[string]func(context.Context, *mongo.Collection) error{
		destinationCollectionName: EnsureDestinationIndexes,
		travelPlanCollectionName:  EnsureTravelPlanIndexes,
		userTripCollectionName:    EnsureUserTripIndexes,
	}
	for name, fn := range ensure {
		if err := fn(ctx, db.Collection(name)); err != nil {
			logger.WithError(err).WithField("collection", name).Warn("failed to create indexes")
			continue
		}
		logger.WithField("collection", name).Debug("indexes ensured")
	}
}
