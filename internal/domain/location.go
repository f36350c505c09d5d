package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors
var (
	ErrLocationInactive  = errors.New("pickup location is inactive")
	ErrLocationNameEmpty = errors.New("pickup location name is required")
)

// PickupLocation is the aggregate root for a store location that offers
// in-store pickup. LocationID is the external identifier surfaced to the
// storefront; ID is the persistence identity.
type PickupLocation struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LocationID   string             `bson:"locationId" json:"locationId"`
	Name         string             `bson:"name" json:"name"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	City         string             `bson:"city,omitempty" json:"city,omitempty"`
	Province     string             `bson:"province,omitempty" json:"province,omitempty"`
	Country      string             `bson:"country,omitempty" json:"country,omitempty"`
	PostalCode   string             `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Instructions string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Active       bool               `bson:"active" json:"active"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
	DomainEvents []DomainEvent      `bson:"-" json:"-"`
}

// NewPickupLocation creates a new PickupLocation aggregate
func NewPickupLocation(locationID, name, address string) (*PickupLocation, error) {
	if name == "" {
		return nil, ErrLocationNameEmpty
	}

	now := time.Now().UTC()
	l := &PickupLocation{
		ID:           primitive.NewObjectID(),
		LocationID:   locationID,
		Name:         name,
		Address:      address,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
		DomainEvents: make([]DomainEvent, 0),
	}

	l.addDomainEvent(&PickupLocationCreatedEvent{
		LocationID: locationID,
		Name:       name,
		CreatedAt:  now,
	})

	return l, nil
}

// Update applies new details to the location
func (l *PickupLocation) Update(name, address, instructions string) error {
	if name == "" {
		return ErrLocationNameEmpty
	}

	now := time.Now().UTC()
	l.Name = name
	l.Address = address
	l.Instructions = instructions
	l.UpdatedAt = now

	l.addDomainEvent(&PickupLocationUpdatedEvent{
		LocationID: l.LocationID,
		Name:       name,
		UpdatedAt:  now,
	})

	return nil
}

// Deactivate removes the location from the pickup roster without deleting it
func (l *PickupLocation) Deactivate() error {
	if !l.Active {
		return ErrLocationInactive
	}

	now := time.Now().UTC()
	l.Active = false
	l.UpdatedAt = now

	l.addDomainEvent(&PickupLocationDeactivatedEvent{
		LocationID:    l.LocationID,
		Name:          l.Name,
		DeactivatedAt: now,
	})

	return nil
}

// Activate returns the location to the pickup roster
func (l *PickupLocation) Activate() {
	if l.Active {
		return
	}

	l.Active = true
	l.UpdatedAt = time.Now().UTC()
}

// addDomainEvent adds a domain event
func (l *PickupLocation) addDomainEvent(event DomainEvent) {
	l.DomainEvents = append(l.DomainEvents, event)
}

// GetDomainEvents returns all domain events
func (l *PickupLocation) GetDomainEvents() []DomainEvent {
	return l.DomainEvents
}

// ClearDomainEvents clears all domain events
func (l *PickupLocation) ClearDomainEvents() {
	l.DomainEvents = make([]DomainEvent, 0)
}
