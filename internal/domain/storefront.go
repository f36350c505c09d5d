package domain

import "context"

// StorefrontGateway is the domain interface (port) for the commerce
// storefront cart API. Implementations translate domain models to the
// storefront's GraphQL mutations.
type StorefrontGateway interface {
	// CreateCart creates a cart with the given lines and attributes
	CreateCart(ctx context.Context, lines []CartLine, attributes map[string]string) (*Cart, error)

	// UpdateCartAttributes replaces the given attributes on an existing cart
	UpdateCartAttributes(ctx context.Context, cartID string, attributes map[string]string) (*Cart, error)

	// GetCart fetches a cart with its current attributes
	GetCart(ctx context.Context, cartID string) (*Cart, error)
}

// CartLine represents one line item when creating a cart
type CartLine struct {
	MerchandiseID string
	Quantity      int
}

// Cart represents the storefront's view of a cart
type Cart struct {
	ID            string
	CheckoutURL   string
	TotalQuantity int
	Attributes    map[string]string
}

// Preference parses the fulfillment attributes off the cart
func (c *Cart) Preference() PreferenceAttributes {
	if c == nil || c.Attributes == nil {
		return PreferenceAttributes{}
	}
	return PreferenceAttributes{
		FulfillmentType:    c.Attributes[AttrFulfillmentType],
		PickupLocationID:   c.Attributes[AttrPickupLocationID],
		PickupLocationName: c.Attributes[AttrPickupLocationName],
	}
}

// StorefrontError represents errors from the storefront API
type StorefrontError struct {
	Code        string
	Message     string
	Retryable   bool
	OriginalErr error
}

func (e *StorefrontError) Error() string {
	if e.OriginalErr != nil {
		return e.Message + ": " + e.OriginalErr.Error()
	}
	return e.Message
}

func (e *StorefrontError) Unwrap() error {
	return e.OriginalErr
}

// NewStorefrontError creates a new StorefrontError
func NewStorefrontError(code, message string, retryable bool, originalErr error) *StorefrontError {
	return &StorefrontError{
		Code:        code,
		Message:     message,
		Retryable:   retryable,
		OriginalErr: originalErr,
	}
}
