package cloudevents

import (
	"time"
)

// EventType constants for fulfillment domain events
const (
	// Cart events
	CartCreated           = "fulfillment.cart.created"
	CartPreferenceUpdated = "fulfillment.cart.preference-updated"

	// Delivery option events
	DeliveryOptionsEvaluated = "fulfillment.delivery-options.evaluated"
	DeliveryGroupEmptied     = "fulfillment.delivery-options.group-emptied"

	// Pickup location events
	PickupLocationCreated = "fulfillment.pickup-location.created"
	PickupLocationUpdated = "fulfillment.pickup-location.updated"
	PickupLocationDeleted = "fulfillment.pickup-location.deleted"
)

// Source constants for event sources
const (
	SourceFulfillmentAPI = "/fulfillment/api"
)

// FulfillmentCloudEvent represents a CloudEvents v1.0 compliant event
type FulfillmentCloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	Type            string      `json:"type"`
	Source          string      `json:"source"`
	Subject         string      `json:"subject,omitempty"`
	ID              string      `json:"id"`
	Time            time.Time   `json:"time"`
	DataContentType string      `json:"datacontenttype"`
	Data            interface{} `json:"data"`

	// Fulfillment-specific extensions
	CorrelationID string `json:"fulfillmentcorrelationid,omitempty"`
	CartID        string `json:"fulfillmentcartid,omitempty"`
	ShopDomain    string `json:"fulfillmentshopdomain,omitempty"`

	// W3C Trace Context
	TraceParent string `json:"traceparent,omitempty"`
	TraceState  string `json:"tracestate,omitempty"`
}

// CartCreatedData represents the data payload for CartCreated event
type CartCreatedData struct {
	CartID             string `json:"cartId"`
	CheckoutURL        string `json:"checkoutUrl,omitempty"`
	FulfillmentType    string `json:"fulfillmentType"`
	PickupLocationID   string `json:"pickupLocationId,omitempty"`
	PickupLocationName string `json:"pickupLocationName,omitempty"`
	LineCount          int    `json:"lineCount"`
}

// CartPreferenceUpdatedData represents the data payload for CartPreferenceUpdated event
type CartPreferenceUpdatedData struct {
	CartID             string `json:"cartId"`
	FulfillmentType    string `json:"fulfillmentType"`
	PreviousType       string `json:"previousType,omitempty"`
	PickupLocationID   string `json:"pickupLocationId,omitempty"`
	PickupLocationName string `json:"pickupLocationName,omitempty"`
}

// DeliveryOptionsEvaluatedData represents the data payload for DeliveryOptionsEvaluated event
type DeliveryOptionsEvaluatedData struct {
	Preference     string `json:"preference"`
	GroupCount     int    `json:"groupCount"`
	OptionCount    int    `json:"optionCount"`
	HiddenCount    int    `json:"hiddenCount"`
	EmptiedGroups  int    `json:"emptiedGroups"`
	EvaluationTime string `json:"evaluationTime,omitempty"`
}

// DeliveryGroupEmptiedData represents the data payload for DeliveryGroupEmptied event
type DeliveryGroupEmptiedData struct {
	Preference string `json:"preference"`
	GroupID    string `json:"groupId,omitempty"`
}

// PickupLocationData represents the data payload for pickup location events
type PickupLocationData struct {
	LocationID string `json:"locationId"`
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	Active     bool   `json:"active"`
}
