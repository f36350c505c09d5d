package cloudevents

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/syatt-io/syatt-fulfillment/pkg/logging"
)

// EventFactory creates CloudEvents for fulfillment domain events
type EventFactory struct {
	source string
}

// NewEventFactory creates a new EventFactory for a specific source
func NewEventFactory(source string) *EventFactory {
	return &EventFactory{source: source}
}

// CreateEvent creates a new FulfillmentCloudEvent. The correlation ID is
// carried over from the request context when the middleware has set one.
func (f *EventFactory) CreateEvent(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
) *FulfillmentCloudEvent {
	event := &FulfillmentCloudEvent{
		SpecVersion:     "1.0",
		Type:            eventType,
		Source:          f.source,
		Subject:         subject,
		ID:              uuid.New().String(),
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            data,
	}

	if correlationID, ok := ctx.Value(logging.CorrelationIDKey).(string); ok {
		event.CorrelationID = correlationID
	}

	return event
}

// CreateCartCreatedEvent creates a CartCreated event
func (f *EventFactory) CreateCartCreatedEvent(
	ctx context.Context,
	cartID string,
	checkoutURL string,
	fulfillmentType string,
	pickupLocationID string,
	pickupLocationName string,
	lineCount int,
) *FulfillmentCloudEvent {
	data := CartCreatedData{
		CartID:             cartID,
		CheckoutURL:        checkoutURL,
		FulfillmentType:    fulfillmentType,
		PickupLocationID:   pickupLocationID,
		PickupLocationName: pickupLocationName,
		LineCount:          lineCount,
	}
	event := f.CreateEvent(ctx, CartCreated, "cart/"+cartID, data)
	event.CartID = cartID
	return event
}

// CreateCartPreferenceUpdatedEvent creates a CartPreferenceUpdated event
func (f *EventFactory) CreateCartPreferenceUpdatedEvent(
	ctx context.Context,
	cartID string,
	fulfillmentType string,
	previousType string,
	pickupLocationID string,
	pickupLocationName string,
) *FulfillmentCloudEvent {
	data := CartPreferenceUpdatedData{
		CartID:             cartID,
		FulfillmentType:    fulfillmentType,
		PreviousType:       previousType,
		PickupLocationID:   pickupLocationID,
		PickupLocationName: pickupLocationName,
	}
	event := f.CreateEvent(ctx, CartPreferenceUpdated, "cart/"+cartID, data)
	event.CartID = cartID
	return event
}

// CreateDeliveryOptionsEvaluatedEvent creates a DeliveryOptionsEvaluated event
func (f *EventFactory) CreateDeliveryOptionsEvaluatedEvent(
	ctx context.Context,
	preference string,
	groupCount int,
	optionCount int,
	hiddenCount int,
	emptiedGroups int,
) *FulfillmentCloudEvent {
	data := DeliveryOptionsEvaluatedData{
		Preference:    preference,
		GroupCount:    groupCount,
		OptionCount:   optionCount,
		HiddenCount:   hiddenCount,
		EmptiedGroups: emptiedGroups,
	}
	return f.CreateEvent(ctx, DeliveryOptionsEvaluated, "delivery-options/"+preference, data)
}

// CreateDeliveryGroupEmptiedEvent creates a DeliveryGroupEmptied event
func (f *EventFactory) CreateDeliveryGroupEmptiedEvent(
	ctx context.Context,
	preference string,
	groupID string,
) *FulfillmentCloudEvent {
	data := DeliveryGroupEmptiedData{
		Preference: preference,
		GroupID:    groupID,
	}
	return f.CreateEvent(ctx, DeliveryGroupEmptied, "delivery-options/"+preference, data)
}

// CreatePickupLocationEvent creates a pickup location lifecycle event
func (f *EventFactory) CreatePickupLocationEvent(
	ctx context.Context,
	eventType string,
	locationID string,
	name string,
	address string,
	active bool,
) *FulfillmentCloudEvent {
	data := PickupLocationData{
		LocationID: locationID,
		Name:       name,
		Address:    address,
		Active:     active,
	}
	return f.CreateEvent(ctx, eventType, "pickup-location/"+locationID, data)
}
