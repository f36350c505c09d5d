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

// AuditRepository persists the preference change trail in MongoDB
type AuditRepository struct {
	collection *mongo.Collection
	metrics    *metrics.Metrics
}

// NewAuditRepository creates an AuditRepository. metrics may be nil.
func NewAuditRepository(db *mongo.Database, m *metrics.Metrics) *AuditRepository {
	repo := &AuditRepository{
		collection: db.Collection("preference_audits"),
		metrics:    m,
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *AuditRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "cartId", Value: 1}, {Key: "recordedAt", Value: -1}}},
		{Keys: bson.D{{Key: "recordedAt", Value: 1}}, Options: options.Index().
			// audits age out after 90 days
			SetExpireAfterSeconds(90 * 24 * 60 * 60)},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *AuditRepository) record(operation string, start time.Time, err error) {
	if r.metrics != nil {
		r.metrics.RecordMongoDBOperation("preference_audits", operation, err == nil, time.Since(start))
	}
}

// Record appends one preference audit entry
func (r *AuditRepository) Record(ctx context.Context, audit *domain.PreferenceAudit) error {
	start := time.Now()

	if audit.RecordedAt.IsZero() {
		audit.RecordedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, audit)
	r.record("record", start, err)
	if err != nil {
		return fmt.Errorf("failed to record preference audit: %w", err)
	}
	return nil
}

// FindByCartID returns the audit trail for a cart, newest first
func (r *AuditRepository) FindByCartID(ctx context.Context, cartID string, limit int64) ([]*domain.PreferenceAudit, error) {
	start := time.Now()

	opts := options.Find().SetSort(bson.D{{Key: "recordedAt", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"cartId": cartID}, opts)
	if err != nil {
		r.record("findByCartId", start, err)
		return nil, fmt.Errorf("failed to find preference audits: %w", err)
	}
	defer cursor.Close(ctx)

	var audits []*domain.PreferenceAudit
	err = cursor.All(ctx, &audits)
	r.record("findByCartId", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to decode preference audits: %w", err)
	}
	return audits, nil
}

// LatestByCartID returns the most recent audit entry, nil when none exists
func (r *AuditRepository) LatestByCartID(ctx context.Context, cartID string) (*domain.PreferenceAudit, error) {
	start := time.Now()

	opts := options.FindOne().SetSort(bson.D{{Key: "recordedAt", Value: -1}})

	var audit domain.PreferenceAudit
	err := r.collection.FindOne(ctx, bson.M{"cartId": cartID}, opts).Decode(&audit)
	if err == mongo.ErrNoDocuments {
		r.record("latestByCartId", start, nil)
		return nil, nil
	}
	r.record("latestByCartId", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to find latest preference audit: %w", err)
	}
	return &audit, nil
}
