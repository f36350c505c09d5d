package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PreferenceAudit records one observed preference change for a cart
type PreferenceAudit struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CartID             string             `bson:"cartId" json:"cartId"`
	FulfillmentType    string             `bson:"fulfillmentType" json:"fulfillmentType"`
	PreviousType       string             `bson:"previousType,omitempty" json:"previousType,omitempty"`
	PickupLocationID   string             `bson:"pickupLocationId,omitempty" json:"pickupLocationId,omitempty"`
	PickupLocationName string             `bson:"pickupLocationName,omitempty" json:"pickupLocationName,omitempty"`
	RequestID          string             `bson:"requestId,omitempty" json:"requestId,omitempty"`
	RecordedAt         time.Time          `bson:"recordedAt" json:"recordedAt"`
}

// LocationRepository defines the interface for pickup location persistence
type LocationRepository interface {
	Save(ctx context.Context, location *PickupLocation) error
	FindByLocationID(ctx context.Context, locationID string) (*PickupLocation, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*PickupLocation, error)
}

// PreferenceAuditRepository defines the interface for preference audit persistence
type PreferenceAuditRepository interface {
	Record(ctx context.Context, audit *PreferenceAudit) error
	FindByCartID(ctx context.Context, cartID string, limit int64) ([]*PreferenceAudit, error)
	LatestByCartID(ctx context.Context, cartID string) (*PreferenceAudit, error)
}
