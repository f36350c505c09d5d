package domain

// OptionCategory classifies a delivery option as pickup or shipping
type OptionCategory string

const (
	CategoryPickup   OptionCategory = "pickup"
	CategoryShipping OptionCategory = "shipping"
)

// DeliveryOption is a single delivery choice offered at checkout.
// Handle is the stable identifier used to address the option in hide
// operations; the remaining fields are free-form merchant copy.
type DeliveryOption struct {
	Handle      string `json:"handle"`
	Title       string `json:"title,omitempty"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
}

// DeliveryGroup is a set of delivery options that ship together,
// typically one group per destination address.
type DeliveryGroup struct {
	ID      string           `json:"id,omitempty"`
	Options []DeliveryOption `json:"deliveryOptions"`
}

// HideOperation instructs the checkout to hide one delivery option
type HideOperation struct {
	Handle string `json:"deliveryOptionHandle"`
}
