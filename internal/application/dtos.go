package application

import "time"

// DeliveryOptionInput is one delivery option as received from the checkout.
// All fields are optional free text; a missing handle means the option
// cannot be addressed by a hide operation.
type DeliveryOptionInput struct {
	Handle      string `json:"handle,omitempty"`
	Title       string `json:"title,omitempty"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
}

// DeliveryGroupInput is one delivery group as received from the checkout
type DeliveryGroupInput struct {
	ID              string                `json:"id,omitempty"`
	DeliveryOptions []DeliveryOptionInput `json:"deliveryOptions"`
}

// HideOperationDTO addresses one delivery option by handle
type HideOperationDTO struct {
	DeliveryOptionHandle string `json:"deliveryOptionHandle"`
}

// OperationDTO wraps a hide operation in the checkout's operation envelope
type OperationDTO struct {
	DeliveryOptionHide HideOperationDTO `json:"deliveryOptionHide"`
}

// EvaluationResultDTO is the transform output. Operations is always present,
// empty when nothing should be hidden.
type EvaluationResultDTO struct {
	Operations []OperationDTO `json:"operations"`
}

// CartLineInput is one line item for cart creation
type CartLineInput struct {
	MerchandiseID string `json:"merchandiseId" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
}

// CartDTO is the API representation of a storefront cart
type CartDTO struct {
	CartID             string `json:"cartId"`
	CheckoutURL        string `json:"checkoutUrl,omitempty"`
	TotalQuantity      int    `json:"totalQuantity"`
	FulfillmentType    string `json:"fulfillmentType"`
	PickupLocationID   string `json:"pickupLocationId,omitempty"`
	PickupLocationName string `json:"pickupLocationName,omitempty"`
}

// PreferenceDTO is the API representation of a cart's preference
type PreferenceDTO struct {
	CartID             string    `json:"cartId"`
	FulfillmentType    string    `json:"fulfillmentType"`
	PickupLocationID   string    `json:"pickupLocationId,omitempty"`
	PickupLocationName string    `json:"pickupLocationName,omitempty"`
	UpdatedAt          time.Time `json:"updatedAt,omitempty"`
}

// PreferenceAuditDTO is one entry in a cart's preference history
type PreferenceAuditDTO struct {
	CartID             string    `json:"cartId"`
	FulfillmentType    string    `json:"fulfillmentType"`
	PreviousType       string    `json:"previousType,omitempty"`
	PickupLocationID   string    `json:"pickupLocationId,omitempty"`
	PickupLocationName string    `json:"pickupLocationName,omitempty"`
	RecordedAt         time.Time `json:"recordedAt"`
}

// LocationDTO is the API representation of a pickup location
type LocationDTO struct {
	LocationID   string    `json:"locationId"`
	Name         string    `json:"name"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	Province     string    `json:"province,omitempty"`
	Country      string    `json:"country,omitempty"`
	PostalCode   string    `json:"postalCode,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Instructions string    `json:"instructions,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
