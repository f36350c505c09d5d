package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/syatt-io/syatt-fulfillment/internal/domain"
	"github.com/syatt-io/syatt-fulfillment/pkg/metrics"
)

// LocationRepository persists pickup locations in MongoDB
type LocationRepository struct {
	collection *mongo.Collection
	metrics    *metrics.Metrics
}

// NewLocationRepository creates a LocationRepository. metrics may be nil.
func NewLocationRepository(db *mongo.Database, m *metrics.Metrics) *LocationRepository {
	repo := &LocationRepository{
		collection: db.Collection("pickup_locations"),
		metrics:    m,
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *LocationRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "locationId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "active", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *LocationRepository) record(operation string, start time.Time, err error) {
	if r.metrics != nil {
		r.metrics.RecordMongoDBOperation("pickup_locations", operation, err == nil, time.Since(start))
	}
}

// Save upserts a pickup location keyed by its external location id
func (r *LocationRepository) Save(ctx context.Context, location *domain.PickupLocation) error {
	start := time.Now()
	location.UpdatedAt = time.Now().UTC()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"locationId": location.LocationID}
	update := bson.M{"$set": location}

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	r.record("save", start, err)
	if err != nil {
		return fmt.Errorf("failed to save pickup location: %w", err)
	}
	return nil
}

// FindByLocationID returns nil when the location does not exist
func (r *LocationRepository) FindByLocationID(ctx context.Context, locationID string) (*domain.PickupLocation, error) {
	start := time.Now()

	var location domain.PickupLocation
	err := r.collection.FindOne(ctx, bson.M{"locationId": locationID}).Decode(&location)
	if err == mongo.ErrNoDocuments {
		r.record("findByLocationId", start, nil)
		return nil, nil
	}
	r.record("findByLocationId", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to find pickup location: %w", err)
	}
	return &location, nil
}

// FindAll lists pickup locations, optionally restricted to active ones
func (r *LocationRepository) FindAll(ctx context.Context, activeOnly bool) ([]*domain.PickupLocation, error) {
	start := time.Now()

	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		r.record("findAll", start, err)
		return nil, fmt.Errorf("failed to list pickup locations: %w", err)
	}
	defer cursor.Close(ctx)

	var locations []*domain.PickupLocation
	err = cursor.All(ctx, &locations)
	r.record("findAll", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to decode pickup locations: %w", err)
	}
	return locations, nil
}
