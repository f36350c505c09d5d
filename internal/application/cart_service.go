package application

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/syatt-io/syatt-fulfillment/internal/domain"
	"github.com/syatt-io/syatt-fulfillment/pkg/cloudevents"
	"github.com/syatt-io/syatt-fulfillment/pkg/errors"
	"github.com/syatt-io/syatt-fulfillment/pkg/kafka"
	"github.com/syatt-io/syatt-fulfillment/pkg/logging"
	"github.com/syatt-io/syatt-fulfillment/pkg/metrics"
	"github.com/syatt-io/syatt-fulfillment/pkg/resilience"
)

// CartApplicationService orchestrates cart creation and preference updates
// against the storefront, recording an audit trail and publishing events.
type CartApplicationService struct {
	storefront   domain.StorefrontGateway
	locationRepo domain.LocationRepository
	auditRepo    domain.PreferenceAuditRepository
	producer     *kafka.InstrumentedProducer
	eventFactory *cloudevents.EventFactory
	logger       *logging.Logger
	metrics      *metrics.Metrics
}

// NewCartApplicationService creates a new CartApplicationService.
// producer and metrics may be nil in tests.
func NewCartApplicationService(
	storefront domain.StorefrontGateway,
	locationRepo domain.LocationRepository,
	auditRepo domain.PreferenceAuditRepository,
	producer *kafka.InstrumentedProducer,
	eventFactory *cloudevents.EventFactory,
	logger *logging.Logger,
	m *metrics.Metrics,
) *CartApplicationService {
	return &CartApplicationService{
		storefront:   storefront,
		locationRepo: locationRepo,
		auditRepo:    auditRepo,
		producer:     producer,
		eventFactory: eventFactory,
		logger:       logger,
		metrics:      m,
	}
}

// CreateCart creates a storefront cart carrying the fulfillment preference
// as cart attributes
func (s *CartApplicationService) CreateCart(ctx context.Context, cmd CreateCartCommand) (*CartDTO, error) {
	preference := domain.ParsePreference(cmd.FulfillmentType)
	if cmd.FulfillmentType != "" && !preference.IsSet() {
		return nil, errors.ErrValidationWithFields("unrecognized fulfillment type", map[string]string{
			"fulfillmentType": cmd.FulfillmentType,
		})
	}

	attrs := domain.PreferenceAttributes{FulfillmentType: preference.String()}
	if !preference.IsSet() {
		attrs.FulfillmentType = ""
	}

	if preference == domain.PreferencePickup {
		location, err := s.resolvePickupLocation(ctx, cmd.PickupLocationID)
		if err != nil {
			return nil, err
		}
		attrs.PickupLocationID = location.LocationID
		attrs.PickupLocationName = location.Name
	}

	cart, err := s.storefront.CreateCart(ctx, ToCartLines(cmd.Lines), attrs.AttributeMap())
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordCartCreated(preference.String(), false)
		}
		s.logger.WithContext(ctx).WithError(err).Error("Failed to create cart")
		return nil, mapStorefrontError(err)
	}

	s.recordAudit(ctx, cart.ID, attrs, "", "")

	if s.producer != nil {
		event := s.eventFactory.CreateCartCreatedEvent(
			ctx, cart.ID, cart.CheckoutURL,
			attrs.FulfillmentType, attrs.PickupLocationID, attrs.PickupLocationName,
			len(cmd.Lines),
		)
		if err := s.producer.PublishEvent(ctx, kafka.Topics.CartEvents, event); err != nil {
			s.logger.WithContext(ctx).WithError(err).Warn("Failed to publish cart created event",
				"cartId", cart.ID)
		}
	}

	if s.metrics != nil {
		s.metrics.RecordCartCreated(preference.String(), true)
	}

	s.logger.WithContext(ctx).Info("Cart created",
		"cartId", cart.ID,
		"fulfillmentType", attrs.FulfillmentType,
		"pickupLocationId", attrs.PickupLocationID,
		"lines", len(cmd.Lines),
	)

	return ToCartDTO(cart), nil
}

// UpdatePreference replaces the fulfillment attributes on an existing cart
func (s *CartApplicationService) UpdatePreference(ctx context.Context, cmd UpdatePreferenceCommand) (*CartDTO, error) {
	if cmd.CartID == "" {
		return nil, errors.ErrValidation("cart id is required")
	}

	preference := domain.ParsePreference(cmd.FulfillmentType)
	if !preference.IsSet() {
		return nil, errors.ErrValidationWithFields("unrecognized fulfillment type", map[string]string{
			"fulfillmentType": cmd.FulfillmentType,
		})
	}

	attrs := domain.PreferenceAttributes{FulfillmentType: preference.String()}
	if preference == domain.PreferencePickup {
		location, err := s.resolvePickupLocation(ctx, cmd.PickupLocationID)
		if err != nil {
			return nil, err
		}
		attrs.PickupLocationID = location.LocationID
		attrs.PickupLocationName = location.Name
	}

	previousType := ""
	if previous, err := s.auditRepo.LatestByCartID(ctx, cmd.CartID); err == nil && previous != nil {
		previousType = previous.FulfillmentType
	}

	cart, err := s.storefront.UpdateCartAttributes(ctx, cmd.CartID, attrs.AttributeMap())
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordPreferenceUpdate(preference.String(), false)
		}
		s.logger.WithContext(ctx).WithError(err).Error("Failed to update cart preference",
			"cartId", cmd.CartID)
		return nil, mapStorefrontError(err)
	}

	s.recordAudit(ctx, cart.ID, attrs, previousType, cmd.RequestID)

	if s.producer != nil {
		event := s.eventFactory.CreateCartPreferenceUpdatedEvent(
			ctx, cart.ID,
			attrs.FulfillmentType, previousType,
			attrs.PickupLocationID, attrs.PickupLocationName,
		)
		if err := s.producer.PublishEvent(ctx, kafka.Topics.CartEvents, event); err != nil {
			s.logger.WithContext(ctx).WithError(err).Warn("Failed to publish preference updated event",
				"cartId", cart.ID)
		}
	}

	if s.metrics != nil {
		s.metrics.RecordPreferenceUpdate(preference.String(), true)
	}

	s.logger.WithContext(ctx).Info("Cart preference updated",
		"cartId", cart.ID,
		"fulfillmentType", attrs.FulfillmentType,
		"previousType", previousType,
		"pickupLocationId", attrs.PickupLocationID,
	)

	return ToCartDTO(cart), nil
}

// GetPreference returns the current preference for a cart, preferring the
// audit trail and falling back to the storefront's cart attributes
func (s *CartApplicationService) GetPreference(ctx context.Context, query GetPreferenceQuery) (*PreferenceDTO, error) {
	if query.CartID == "" {
		return nil, errors.ErrValidation("cart id is required")
	}

	audit, err := s.auditRepo.LatestByCartID(ctx, query.CartID)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Failed to read preference audit, falling back to storefront",
			"cartId", query.CartID)
	}
	if err == nil && audit != nil {
		return ToPreferenceDTO(audit), nil
	}

	cart, err := s.storefront.GetCart(ctx, query.CartID)
	if err != nil {
		return nil, mapStorefrontError(err)
	}
	if cart == nil {
		return nil, errors.ErrNotFoundWithID("cart", query.CartID)
	}

	prefs := cart.Preference()
	if prefs.FulfillmentType == "" {
		return nil, errors.ErrNotFoundWithID("preference for cart", query.CartID)
	}

	return &PreferenceDTO{
		CartID:             cart.ID,
		FulfillmentType:    prefs.FulfillmentType,
		PickupLocationID:   prefs.PickupLocationID,
		PickupLocationName: prefs.PickupLocationName,
	}, nil
}

// GetPreferenceHistory returns the recorded preference changes for a cart,
// newest first
func (s *CartApplicationService) GetPreferenceHistory(ctx context.Context, query GetPreferenceHistoryQuery) ([]PreferenceAuditDTO, error) {
	if query.CartID == "" {
		return nil, errors.ErrValidation("cart id is required")
	}
	if query.Limit < 0 {
		return nil, errors.ErrValidation("limit must not be negative")
	}

	audits, err := s.auditRepo.FindByCartID(ctx, query.CartID, query.Limit)
	if err != nil {
		return nil, errors.FromError(err)
	}

	return ToPreferenceAuditDTOs(audits), nil
}

func (s *CartApplicationService) resolvePickupLocation(ctx context.Context, locationID string) (*domain.PickupLocation, error) {
	if locationID == "" {
		return nil, errors.ErrValidation("pickup location id is required for pickup")
	}

	location, err := s.locationRepo.FindByLocationID(ctx, locationID)
	if err != nil {
		return nil, errors.FromError(err)
	}
	if location == nil {
		return nil, errors.ErrNotFoundWithID("pickup location", locationID)
	}
	if !location.Active {
		return nil, errors.ErrValidationWithFields("pickup location is inactive", map[string]string{
			"pickupLocationId": locationID,
		})
	}
	return location, nil
}

// mapStorefrontError translates storefront gateway failures into API errors.
// Retryable failures surface as 503 so clients know to try again; the rest
// surface as upstream errors rather than opaque 500s.
func mapStorefrontError(err error) *errors.AppError {
	if stderrors.Is(err, resilience.ErrUnavailable) {
		return errors.ErrServiceUnavailable("storefront").Wrap(err)
	}

	var sfErr *domain.StorefrontError
	if !stderrors.As(err, &sfErr) {
		return errors.FromError(err)
	}

	switch {
	case sfErr.Retryable:
		return errors.ErrServiceUnavailable("storefront").Wrap(err)
	case sfErr.Code == "CART_NOT_FOUND":
		return errors.ErrNotFound("cart").Wrap(err)
	case sfErr.Code == "USER_ERROR":
		return errors.ErrBadRequest(sfErr.Message).Wrap(err)
	default:
		return errors.ErrUpstream("storefront", sfErr.Message).Wrap(err)
	}
}

func (s *CartApplicationService) recordAudit(ctx context.Context, cartID string, attrs domain.PreferenceAttributes, previousType, requestID string) {
	if attrs.FulfillmentType == "" {
		return
	}
	audit := &domain.PreferenceAudit{
		CartID:             cartID,
		FulfillmentType:    attrs.FulfillmentType,
		PreviousType:       previousType,
		PickupLocationID:   attrs.PickupLocationID,
		PickupLocationName: attrs.PickupLocationName,
		RequestID:          requestID,
		RecordedAt:         time.Now().UTC(),
	}
	if err := s.auditRepo.Record(ctx, audit); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Failed to record preference audit",
			"cartId", cartID)
	}
}
