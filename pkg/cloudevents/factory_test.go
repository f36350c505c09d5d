package cloudevents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syatt-io/syatt-fulfillment/pkg/logging"
)

func TestCreateEventCarriesCorrelationID(t *testing.T) {
	factory := NewEventFactory(SourceFulfillmentAPI)
	ctx := logging.ContextWithCorrelationID(context.Background(), "corr-123")

	event := factory.CreateEvent(ctx, CartCreated, "cart/abc", nil)

	assert.Equal(t, "1.0", event.SpecVersion)
	assert.Equal(t, CartCreated, event.Type)
	assert.Equal(t, SourceFulfillmentAPI, event.Source)
	assert.Equal(t, "corr-123", event.CorrelationID)
	assert.NotEmpty(t, event.ID)
}

func TestCreateDeliveryGroupEmptiedEvent(t *testing.T) {
	factory := NewEventFactory(SourceFulfillmentAPI)

	event := factory.CreateDeliveryGroupEmptiedEvent(context.Background(), "pickup", "group-1")

	assert.Equal(t, DeliveryGroupEmptied, event.Type)
	assert.Equal(t, "delivery-options/pickup", event.Subject)

	data, ok := event.Data.(DeliveryGroupEmptiedData)
	require.True(t, ok)
	assert.Equal(t, "pickup", data.Preference)
	assert.Equal(t, "group-1", data.GroupID)
}
