package application

// EvaluateOptionsQuery asks which delivery options to hide for a cart
type EvaluateOptionsQuery struct {
	Preference       string
	PickupLocationID string
	DeliveryGroups   []DeliveryGroupInput
}

// CreateCartCommand creates a storefront cart with a fulfillment preference
type CreateCartCommand struct {
	Lines            []CartLineInput
	FulfillmentType  string
	PickupLocationID string
}

// UpdatePreferenceCommand changes a cart's fulfillment preference
type UpdatePreferenceCommand struct {
	CartID           string
	FulfillmentType  string
	PickupLocationID string
	RequestID        string
}

// GetPreferenceQuery fetches the current preference for a cart
type GetPreferenceQuery struct {
	CartID string
}

// GetPreferenceHistoryQuery fetches the preference audit trail for a cart,
// newest first. Limit of 0 means no limit.
type GetPreferenceHistoryQuery struct {
	CartID string
	Limit  int64
}

// CreateLocationCommand registers a pickup location
type CreateLocationCommand struct {
	LocationID   string
	Name         string
	Address      string
	City         string
	Province     string
	Country      string
	PostalCode   string
	Phone        string
	Instructions string
}

// UpdateLocationCommand updates a pickup location
type UpdateLocationCommand struct {
	LocationID   string
	Name         string
	Address      string
	Instructions string
}

// DeleteLocationCommand deactivates a pickup location
type DeleteLocationCommand struct {
	LocationID string
}

// ListLocationsQuery lists pickup locations
type ListLocationsQuery struct {
	ActiveOnly bool
}
