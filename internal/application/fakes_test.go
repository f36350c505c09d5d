package application

import (
	"context"
	"errors"

	"github.com/syatt-io/syatt-fulfillment/internal/domain"
)

var errUnexpected = errors.New("unexpected call")

// fakeStorefrontGateway implements domain.StorefrontGateway with
// overridable behavior per test
type fakeStorefrontGateway struct {
	createCart           func(ctx context.Context, lines []domain.CartLine, attributes map[string]string) (*domain.Cart, error)
	updateCartAttributes func(ctx context.Context, cartID string, attributes map[string]string) (*domain.Cart, error)
	getCart              func(ctx context.Context, cartID string) (*domain.Cart, error)
}

func (f *fakeStorefrontGateway) CreateCart(ctx context.Context, lines []domain.CartLine, attributes map[string]string) (*domain.Cart, error) {
	if f.createCart == nil {
		return nil, errUnexpected
	}
	return f.createCart(ctx, lines, attributes)
}

func (f *fakeStorefrontGateway) UpdateCartAttributes(ctx context.Context, cartID string, attributes map[string]string) (*domain.Cart, error) {
	if f.updateCartAttributes == nil {
		return nil, errUnexpected
	}
	return f.updateCartAttributes(ctx, cartID, attributes)
}

func (f *fakeStorefrontGateway) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	if f.getCart == nil {
		return nil, errUnexpected
	}
	return f.getCart(ctx, cartID)
}

// fakeLocationRepository implements domain.LocationRepository
type fakeLocationRepository struct {
	save             func(ctx context.Context, location *domain.PickupLocation) error
	findByLocationID func(ctx context.Context, locationID string) (*domain.PickupLocation, error)
	findAll          func(ctx context.Context, activeOnly bool) ([]*domain.PickupLocation, error)
}

func (f *fakeLocationRepository) Save(ctx context.Context, location *domain.PickupLocation) error {
	if f.save == nil {
		return errUnexpected
	}
	return f.save(ctx, location)
}

func (f *fakeLocationRepository) FindByLocationID(ctx context.Context, locationID string) (*domain.PickupLocation, error) {
	if f.findByLocationID == nil {
		return nil, errUnexpected
	}
	return f.findByLocationID(ctx, locationID)
}

func (f *fakeLocationRepository) FindAll(ctx context.Context, activeOnly bool) ([]*domain.PickupLocation, error) {
	if f.findAll == nil {
		return nil, errUnexpected
	}
	return f.findAll(ctx, activeOnly)
}

// fakeAuditRepository implements domain.PreferenceAuditRepository
type fakeAuditRepository struct {
	record         func(ctx context.Context, audit *domain.PreferenceAudit) error
	findByCartID   func(ctx context.Context, cartID string, limit int64) ([]*domain.PreferenceAudit, error)
	latestByCartID func(ctx context.Context, cartID string) (*domain.PreferenceAudit, error)
}

func (f *fakeAuditRepository) Record(ctx context.Context, audit *domain.PreferenceAudit) error {
	if f.record == nil {
		return errUnexpected
	}
	return f.record(ctx, audit)
}

func (f *fakeAuditRepository) FindByCartID(ctx context.Context, cartID string, limit int64) ([]*domain.PreferenceAudit, error) {
	if f.findByCartID == nil {
		return nil, errUnexpected
	}
	return f.findByCartID(ctx, cartID, limit)
}

func (f *fakeAuditRepository) LatestByCartID(ctx context.Context, cartID string) (*domain.PreferenceAudit, error) {
	if f.latestByCartID == nil {
		return nil, errUnexpected
	}
	return f.latestByCartID(ctx, cartID)
}

func activeTestLocation() *domain.PickupLocation {
	location, _ := domain.NewPickupLocation("gid://shopify/Location/1", "Downtown Store", "1 Main St")
	location.ClearDomainEvents()
	return location
}
