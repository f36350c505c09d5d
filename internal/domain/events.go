package domain

import "time"

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}

// PickupLocationCreatedEvent is published when a pickup location is created
type PickupLocationCreatedEvent struct {
	LocationID string    `json:"locationId"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (e *PickupLocationCreatedEvent) EventType() string     { return "fulfillment.pickup-location.created" }
func (e *PickupLocationCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// PickupLocationUpdatedEvent is published when a pickup location is updated
type PickupLocationUpdatedEvent struct {
	LocationID string    `json:"locationId"`
	Name       string    `json:"name"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (e *PickupLocationUpdatedEvent) EventType() string     { return "fulfillment.pickup-location.updated" }
func (e *PickupLocationUpdatedEvent) OccurredAt() time.Time { return e.UpdatedAt }

// PickupLocationDeactivatedEvent is published when a pickup location is deactivated
type PickupLocationDeactivatedEvent struct {
	LocationID    string    `json:"locationId"`
	Name          string    `json:"name"`
	DeactivatedAt time.Time `json:"deactivatedAt"`
}

func (e *PickupLocationDeactivatedEvent) EventType() string     { return "fulfillment.pickup-location.deleted" }
func (e *PickupLocationDeactivatedEvent) OccurredAt() time.Time { return e.DeactivatedAt }
