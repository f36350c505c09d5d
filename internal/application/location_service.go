package application

import (
	"context"

	"github.com/syatt-io/syatt-fulfillment/internal/domain"
	"github.com/syatt-io/syatt-fulfillment/pkg/cloudevents"
	"github.com/syatt-io/syatt-fulfillment/pkg/errors"
	"github.com/syatt-io/syatt-fulfillment/pkg/kafka"
	"github.com/syatt-io/syatt-fulfillment/pkg/logging"
)

// LocationApplicationService manages the pickup location catalog
type LocationApplicationService struct {
	repo         domain.LocationRepository
	producer     *kafka.InstrumentedProducer
	eventFactory *cloudevents.EventFactory
	logger       *logging.Logger
}

// NewLocationApplicationService creates a new LocationApplicationService.
// producer may be nil in tests.
func NewLocationApplicationService(
	repo domain.LocationRepository,
	producer *kafka.InstrumentedProducer,
	eventFactory *cloudevents.EventFactory,
	logger *logging.Logger,
) *LocationApplicationService {
	return &LocationApplicationService{
		repo:         repo,
		producer:     producer,
		eventFactory: eventFactory,
		logger:       logger,
	}
}

// CreateLocation registers a pickup location
func (s *LocationApplicationService) CreateLocation(ctx context.Context, cmd CreateLocationCommand) (*LocationDTO, error) {
	if cmd.LocationID == "" {
		return nil, errors.ErrValidation("location id is required")
	}

	existing, err := s.repo.FindByLocationID(ctx, cmd.LocationID)
	if err != nil {
		return nil, errors.FromError(err)
	}
	if existing != nil {
		if existing.Active {
			return nil, errors.ErrConflict("pickup location already exists").WithDetail("locationId", cmd.LocationID)
		}
		return s.reactivateLocation(ctx, existing, cmd)
	}

	location, err := domain.NewPickupLocation(cmd.LocationID, cmd.Name, cmd.Address)
	if err != nil {
		return nil, errors.MapDomainError(err)
	}
	applyOptionalFields(location, cmd)

	if err := s.repo.Save(ctx, location); err != nil {
		return nil, errors.FromError(err)
	}

	s.publishDomainEvents(ctx, location)

	s.logger.WithContext(ctx).Info("Pickup location created",
		"locationId", location.LocationID,
		"name", location.Name,
	)

	return ToLocationDTO(location), nil
}

// reactivateLocation returns a previously removed location to the roster when
// the same locationId is registered again
func (s *LocationApplicationService) reactivateLocation(ctx context.Context, location *domain.PickupLocation, cmd CreateLocationCommand) (*LocationDTO, error) {
	location.Activate()
	if err := location.Update(cmd.Name, cmd.Address, cmd.Instructions); err != nil {
		return nil, errors.MapDomainError(err)
	}
	applyOptionalFields(location, cmd)

	if err := s.repo.Save(ctx, location); err != nil {
		return nil, errors.FromError(err)
	}

	s.publishDomainEvents(ctx, location)

	s.logger.WithContext(ctx).Info("Pickup location reactivated",
		"locationId", location.LocationID,
		"name", location.Name,
	)

	return ToLocationDTO(location), nil
}

func applyOptionalFields(location *domain.PickupLocation, cmd CreateLocationCommand) {
	location.City = cmd.City
	location.Province = cmd.Province
	location.Country = cmd.Country
	location.PostalCode = cmd.PostalCode
	location.Phone = cmd.Phone
	location.Instructions = cmd.Instructions
}

// UpdateLocation updates a pickup location's details
func (s *LocationApplicationService) UpdateLocation(ctx context.Context, cmd UpdateLocationCommand) (*LocationDTO, error) {
	location, err := s.findLocation(ctx, cmd.LocationID)
	if err != nil {
		return nil, err
	}

	if err := location.Update(cmd.Name, cmd.Address, cmd.Instructions); err != nil {
		return nil, errors.MapDomainError(err)
	}

	if err := s.repo.Save(ctx, location); err != nil {
		return nil, errors.FromError(err)
	}

	s.publishDomainEvents(ctx, location)

	s.logger.WithContext(ctx).Info("Pickup location updated", "locationId", location.LocationID)

	return ToLocationDTO(location), nil
}

// DeleteLocation deactivates a pickup location. Deactivated locations are
// kept for the audit trail and stop validating new pickup carts.
func (s *LocationApplicationService) DeleteLocation(ctx context.Context, cmd DeleteLocationCommand) error {
	location, err := s.findLocation(ctx, cmd.LocationID)
	if err != nil {
		return err
	}

	if err := location.Deactivate(); err != nil {
		return errors.MapDomainError(err)
	}

	if err := s.repo.Save(ctx, location); err != nil {
		return errors.FromError(err)
	}

	s.publishDomainEvents(ctx, location)

	s.logger.WithContext(ctx).Info("Pickup location deactivated", "locationId", location.LocationID)

	return nil
}

// GetLocation fetches one pickup location
func (s *LocationApplicationService) GetLocation(ctx context.Context, locationID string) (*LocationDTO, error) {
	location, err := s.findLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return ToLocationDTO(location), nil
}

// ListLocations lists pickup locations
func (s *LocationApplicationService) ListLocations(ctx context.Context, query ListLocationsQuery) ([]LocationDTO, error) {
	locations, err := s.repo.FindAll(ctx, query.ActiveOnly)
	if err != nil {
		return nil, errors.FromError(err)
	}
	return ToLocationDTOs(locations), nil
}

func (s *LocationApplicationService) findLocation(ctx context.Context, locationID string) (*domain.PickupLocation, error) {
	if locationID == "" {
		return nil, errors.ErrValidation("location id is required")
	}

	location, err := s.repo.FindByLocationID(ctx, locationID)
	if err != nil {
		return nil, errors.FromError(err)
	}
	if location == nil {
		return nil, errors.ErrNotFoundWithID("pickup location", locationID)
	}
	return location, nil
}

// publishDomainEvents drains the aggregate's recorded events and publishes
// each as a CloudEvent. The domain event types line up with the CloudEvent
// type constants, so they pass through unchanged.
func (s *LocationApplicationService) publishDomainEvents(ctx context.Context, location *domain.PickupLocation) {
	events := location.GetDomainEvents()
	location.ClearDomainEvents()

	if s.producer == nil {
		return
	}

	for _, domainEvent := range events {
		event := s.eventFactory.CreatePickupLocationEvent(
			ctx, domainEvent.EventType(),
			location.LocationID, location.Name, location.Address, location.Active,
		)
		if err := s.producer.PublishEvent(ctx, kafka.Topics.PickupLocationEvents, event); err != nil {
			s.logger.WithContext(ctx).WithError(err).Warn("Failed to publish pickup location event",
				"locationId", location.LocationID,
				"eventType", domainEvent.EventType(),
			)
		}
	}
}
