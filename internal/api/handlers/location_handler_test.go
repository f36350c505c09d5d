package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syatt-io/syatt-fulfillment/internal/application"
	"github.com/syatt-io/syatt-fulfillment/internal/domain"
	"github.com/syatt-io/syatt-fulfillment/pkg/middleware"
)

// memoryLocationRepo is an in-memory repository for endpoint tests
type memoryLocationRepo struct {
	mu        sync.Mutex
	locations map[string]*domain.PickupLocation
}

func newMemoryLocationRepo() *memoryLocationRepo {
	return &memoryLocationRepo{locations: make(map[string]*domain.PickupLocation)}
}

func (r *memoryLocationRepo) Save(ctx context.Context, location *domain.PickupLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locations[location.LocationID] = location
	return nil
}

func (r *memoryLocationRepo) FindByLocationID(ctx context.Context, locationID string) (*domain.PickupLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.locations[locationID], nil
}

func (r *memoryLocationRepo) FindAll(ctx context.Context, activeOnly bool) ([]*domain.PickupLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.PickupLocation
	for _, location := range r.locations {
		if activeOnly && !location.Active {
			continue
		}
		out = append(out, location)
	}
	return out, nil
}

func newLocationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.InitValidator()

	logger := newTestLogger()
	service := application.NewLocationApplicationService(newMemoryLocationRepo(), nil, nil, logger)
	handler := NewLocationHandler(service, logger)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestLocationLifecycle(t *testing.T) {
	router := newLocationRouter()

	// create
	w := postJSON(router, "/api/v1/pickup-locations", map[string]interface{}{
		"locationId": "store-1",
		"name":       "Downtown Store",
		"address":    "1 Main St",
		"city":       "Toronto",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// list
	w = getRequest(router, "/api/v1/pickup-locations")
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Locations []application.LocationDTO `json:"locations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Locations, 1)
	assert.Equal(t, "Downtown Store", listed.Locations[0].Name)

	// update
	payload, _ := json.Marshal(map[string]interface{}{
		"name":    "Uptown Store",
		"address": "99 North Ave",
	})
	w = putJSON(router, "/api/v1/pickup-locations/store-1", payload)
	require.Equal(t, http.StatusOK, w.Code)

	// deactivate
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/pickup-locations/store-1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	// deactivated locations drop out of the default listing
	w = getRequest(router, "/api/v1/pickup-locations")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed.Locations)

	// but remain visible when inactive ones are requested
	w = getRequest(router, "/api/v1/pickup-locations?activeOnly=false")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Locations, 1)
	assert.False(t, listed.Locations[0].Active)
}

func TestCreateLocationValidation(t *testing.T) {
	router := newLocationRouter()

	w := postJSON(router, "/api/v1/pickup-locations", map[string]interface{}{
		"locationId": "gid://shopify/Location/1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateLocationDuplicate(t *testing.T) {
	router := newLocationRouter()

	body := map[string]interface{}{
		"locationId": "gid://shopify/Location/1",
		"name":       "Downtown Store",
	}

	w := postJSON(router, "/api/v1/pickup-locations", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/api/v1/pickup-locations", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListLocationsBadQuery(t *testing.T) {
	router := newLocationRouter()

	w := getRequest(router, "/api/v1/pickup-locations?activeOnly=maybe")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
