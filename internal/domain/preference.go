package domain

import "strings"

// Cart attribute keys used by the storefront to persist the shopper's
// fulfillment choice on the cart.
const (
	AttrFulfillmentType    = "fulfillment_type"
	AttrPickupLocationID   = "pickup_location_id"
	AttrPickupLocationName = "pickup_location_name"
)

// FulfillmentPreference represents the shopper's declared fulfillment choice
type FulfillmentPreference string

const (
	PreferenceUnset    FulfillmentPreference = ""
	PreferencePickup   FulfillmentPreference = "pickup"
	PreferenceShipping FulfillmentPreference = "shipping"
)

// ParsePreference maps a raw cart attribute value to a FulfillmentPreference.
// "delivery" is accepted as a synonym for shipping. Anything unrecognized,
// including the empty string, maps to PreferenceUnset.
func ParsePreference(raw string) FulfillmentPreference {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pickup":
		return PreferencePickup
	case "shipping", "delivery":
		return PreferenceShipping
	default:
		return PreferenceUnset
	}
}

// IsSet reports whether the preference carries an actual choice
func (p FulfillmentPreference) IsSet() bool {
	return p == PreferencePickup || p == PreferenceShipping
}

// Category returns the option category the preference keeps visible.
// Calling Category on an unset preference returns CategoryShipping, but
// callers must check IsSet first; the decision engine never hides anything
// for an unset preference.
func (p FulfillmentPreference) Category() OptionCategory {
	if p == PreferencePickup {
		return CategoryPickup
	}
	return CategoryShipping
}

func (p FulfillmentPreference) String() string {
	if p == PreferenceUnset {
		return "unset"
	}
	return string(p)
}

// PreferenceAttributes holds the cart attribute values describing a
// fulfillment choice, as written to and read from the storefront cart.
type PreferenceAttributes struct {
	FulfillmentType    string `json:"fulfillmentType"`
	PickupLocationID   string `json:"pickupLocationId,omitempty"`
	PickupLocationName string `json:"pickupLocationName,omitempty"`
}

// AttributeMap returns the attributes as storefront cart attribute pairs,
// omitting empty values.
func (a PreferenceAttributes) AttributeMap() map[string]string {
	attrs := map[string]string{
		AttrFulfillmentType: a.FulfillmentType,
	}
	if a.PickupLocationID != "" {
		attrs[AttrPickupLocationID] = a.PickupLocationID
	}
	if a.PickupLocationName != "" {
		attrs[AttrPickupLocationName] = a.PickupLocationName
	}
	return attrs
}

// Preference parses the fulfillment type attribute
func (a PreferenceAttributes) Preference() FulfillmentPreference {
	return ParsePreference(a.FulfillmentType)
}
