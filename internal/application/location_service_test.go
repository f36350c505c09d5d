package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syatt-io/syatt-fulfillment/internal/domain"
	"github.com/syatt-io/syatt-fulfillment/pkg/errors"
)

func newTestLocationService(repo *fakeLocationRepository) *LocationApplicationService {
	return NewLocationApplicationService(repo, nil, nil, newTestLogger())
}

func TestCreateLocation(t *testing.T) {
	var saved *domain.PickupLocation
	repo := &fakeLocationRepository{
		findByLocationID: func(ctx context.Context, locationID string) (*domain.PickupLocation, error) {
			return nil, nil
		},
		save: func(ctx context.Context, location *domain.PickupLocation) error {
			saved = location
			return nil
		},
	}

	service := newTestLocationService(repo)
	dto, err := service.CreateLocation(context.Background(), CreateLocationCommand{
		LocationID:   "gid://shopify/Location/1",
		Name:         "Downtown Store",
		Address:      "1 Main St",
		City:         "Toronto",
		Province:     "ON",
		Country:      "CA",
		Instructions: "Enter through the side door",
	})

	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/Location/1", dto.LocationID)
	assert.Equal(t, "Downtown Store", dto.Name)
	assert.True(t, dto.Active)

	require.NotNil(t, saved)
	assert.Equal(t, "Toronto", saved.City)
	assert.Equal(t, "Enter through the side door", saved.Instructions)
}

func TestCreateLocationRejectsDuplicate(t *testing.T) {
	repo := &fakeLocationRepository{
		findByLocationID: func(ctx context.Context, locationID string) (*domain.PickupLocation, error) {
			return activeTestLocation(), nil
		},
	}

	service := newTestLocationService(repo)
	_, err := service.CreateLocation(context.Background(), CreateLocationCommand{
		LocationID: "gid://shopify/Location/1",
		Name:       "Downtown Store",
	})

	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeConflict, appErr.Code)
}

func TestCreateLocationRequiresName(t *testing.T) {
	repo := &fakeLocationRepository{
		findByLocationID: func(ctx context.Context, locationID string) (*domain.PickupLocation, error) {
			return nil, nil
		},
	}

	service := newTestLocationService(repo)
	_, err := service.CreateLocation(context.Background(), CreateLocationCommand{
		LocationID: "gid://shopify/Location/1",
	})

	require.Error(t, err)
}

func TestUpdateLocation(t *testing.T) {
	var saved *domain.PickupLocation
	repo := &fakeLocationRepository{
		findByLocationID: func(ctx context.Context, locationID string) (*domain.PickupLocation, error) {
			return activeTestLocation(), nil
		},
		save: func(ctx context.Context, location *domain.PickupLocation) error {
			saved = location
			return nil
		},
	}

	service := newTestLocationService(repo)
	dto, err := service.UpdateLocation(context.Background(), UpdateLocationCommand{
		LocationID: "gid://shopify/Location/1",
		Name:       "Uptown Store",
		Address:    "99 North Ave",
	})

	require.NoError(t, err)
	assert.Equal(t, "Uptown Store", dto.Name)
	require.NotNil(t, saved)
	assert.Equal(t, "99 North Ave", saved.Address)
}

func TestUpdateLocationNotFound(t *testing.T) {
	repo := &fakeLocationRepository{
		findByLocationID: func(ctx context.Context, locationID string) (*domain.PickupLocation, error) {
			return nil, nil
		},
	}

	service := newTestLocationService(repo)
	_, err := service.UpdateLocation(context.Background(), UpdateLocationCommand{
		LocationID: "gid://shopify/Location/404",
		Name:       "Anywhere",
	})

	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeNotFound, appErr.Code)
}

func TestDeleteLocationDeactivates(t *testing.T) {
	var saved *domain.PickupLocation
	repo := &fakeLocationRepository{
		findByLocationID: func(ctx context.Context, locationID string) (*domain.PickupLocation, error) {
			return activeTestLocation(), nil
		},
		save: func(ctx context.Context, location *domain.PickupLocation) error {
			saved = location
			return nil
		},
	}

	service := newTestLocationService(repo)
	err := service.DeleteLocation(context.Background(), DeleteLocationCommand{
		LocationID: "gid://shopify/Location/1",
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.False(t, saved.Active)
}

func TestDeleteLocationAlreadyInactive(t *testing.T) {
	repo := &fakeLocationRepository{
		findByLocationID: func(ctx context.Context, locationID string) (*domain.PickupLocation, error) {
			location := activeTestLocation()
			require.NoError(t, location.Deactivate())
			return location, nil
		},
	}

	service := newTestLocationService(repo)
	err := service.DeleteLocation(context.Background(), DeleteLocationCommand{
		LocationID: "gid://shopify/Location/1",
	})

	require.Error(t, err)
}

func TestListLocations(t *testing.T) {
	repo := &fakeLocationRepository{
		findAll: func(ctx context.Context, activeOnly bool) ([]*domain.PickupLocation, error) {
			assert.True(t, activeOnly)
			return []*domain.PickupLocation{activeTestLocation()}, nil
		},
	}

	service := newTestLocationService(repo)
	dtos, err := service.ListLocations(context.Background(), ListLocationsQuery{ActiveOnly: true})

	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, "Downtown Store", dtos[0].Name)
}

func TestListLocationsEmpty(t *testing.T) {
	repo := &fakeLocationRepository{
		findAll: func(ctx context.Context, activeOnly bool) ([]*domain.PickupLocation, error) {
			return nil, nil
		},
	}

	service := newTestLocationService(repo)
	dtos, err := service.ListLocations(context.Background(), ListLocationsQuery{})

	require.NoError(t, err)
	require.NotNil(t, dtos)
	assert.Empty(t, dtos)
}

func TestCreateLocationReactivatesInactive(t *testing.T) {
	existing := activeTestLocation()
	existing.Deactivate()
	existing.ClearDomainEvents()

	var saved *domain.PickupLocation
	repo := &fakeLocationRepository{
		findByLocationID: func(ctx context.Context, locationID string) (*domain.PickupLocation, error) {
			return existing, nil
		},
		save: func(ctx context.Context, location *domain.PickupLocation) error {
			saved = location
			return nil
		},
	}

	service := newTestLocationService(repo)
	dto, err := service.CreateLocation(context.Background(), CreateLocationCommand{
		LocationID: "gid://shopify/Location/1",
		Name:       "Downtown Store Reopened",
		Address:    "2 Main St",
		City:       "Toronto",
	})

	require.NoError(t, err)
	assert.True(t, dto.Active)
	assert.Equal(t, "Downtown Store Reopened", dto.Name)

	require.NotNil(t, saved)
	assert.True(t, saved.Active)
	assert.Equal(t, "2 Main St", saved.Address)
	assert.Equal(t, "Toronto", saved.City)
}
