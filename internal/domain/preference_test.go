package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParsePreference tests raw attribute parsing
func TestParsePreference(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected FulfillmentPreference
	}{
		{"Pickup", "pickup", PreferencePickup},
		{"Pickup uppercase", "PICKUP", PreferencePickup},
		{"Pickup with whitespace", "  pickup  ", PreferencePickup},
		{"Shipping", "shipping", PreferenceShipping},
		{"Delivery synonym", "delivery", PreferenceShipping},
		{"Delivery mixed case", "Delivery", PreferenceShipping},
		{"Empty", "", PreferenceUnset},
		{"Whitespace only", "   ", PreferenceUnset},
		{"Unknown value", "teleport", PreferenceUnset},
		{"Partial match is not a match", "pickup-later", PreferenceUnset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePreference(tt.raw))
		})
	}
}

func TestPreferenceIsSet(t *testing.T) {
	assert.True(t, PreferencePickup.IsSet())
	assert.True(t, PreferenceShipping.IsSet())
	assert.False(t, PreferenceUnset.IsSet())
}

func TestPreferenceCategory(t *testing.T) {
	assert.Equal(t, CategoryPickup, PreferencePickup.Category())
	assert.Equal(t, CategoryShipping, PreferenceShipping.Category())
}

func TestPreferenceString(t *testing.T) {
	assert.Equal(t, "pickup", PreferencePickup.String())
	assert.Equal(t, "shipping", PreferenceShipping.String())
	assert.Equal(t, "unset", PreferenceUnset.String())
}

// TestPreferenceAttributesAttributeMap verifies empty values are omitted
// from the storefront attribute map
func TestPreferenceAttributesAttributeMap(t *testing.T) {
	attrs := PreferenceAttributes{
		FulfillmentType:    "pickup",
		PickupLocationID:   "loc-1",
		PickupLocationName: "Main Street Store",
	}

	m := attrs.AttributeMap()
	assert.Equal(t, "pickup", m[AttrFulfillmentType])
	assert.Equal(t, "loc-1", m[AttrPickupLocationID])
	assert.Equal(t, "Main Street Store", m[AttrPickupLocationName])

	shippingOnly := PreferenceAttributes{FulfillmentType: "shipping"}
	m = shippingOnly.AttributeMap()
	assert.Len(t, m, 1)
	_, hasLocation := m[AttrPickupLocationID]
	assert.False(t, hasLocation)
}

func TestPreferenceAttributesPreference(t *testing.T) {
	assert.Equal(t, PreferencePickup, PreferenceAttributes{FulfillmentType: "pickup"}.Preference())
	assert.Equal(t, PreferenceShipping, PreferenceAttributes{FulfillmentType: "delivery"}.Preference())
	assert.Equal(t, PreferenceUnset, PreferenceAttributes{}.Preference())
}
