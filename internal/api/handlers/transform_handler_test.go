package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syatt-io/syatt-fulfillment/internal/application"
	"github.com/syatt-io/syatt-fulfillment/internal/domain"
	"github.com/syatt-io/syatt-fulfillment/pkg/logging"
	"github.com/syatt-io/syatt-fulfillment/pkg/middleware"
)

func newTestLogger() *logging.Logger {
	return logging.New(&logging.Config{
		Level:       logging.LevelError,
		ServiceName: "test",
		Output:      io.Discard,
	})
}

func newTransformRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.InitValidator()

	logger := newTestLogger()
	service := application.NewTransformApplicationService(domain.NewDefaultClassifier(), nil, nil, logger, nil)
	handler := NewTransformHandler(service, logger)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func putJSON(router *gin.Engine, path string, payload []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getRequest(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTransformPickupPreference(t *testing.T) {
	router := newTransformRouter()

	w := postJSON(router, "/api/v1/delivery-options/transform", map[string]interface{}{
		"preference": "pickup",
		"deliveryGroups": []map[string]interface{}{
			{
				"deliveryOptions": []map[string]interface{}{
					{"handle": "standard-shipping", "title": "Standard Shipping"},
					{"handle": "store-pickup", "title": "Store Pickup"},
				},
			},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var result application.EvaluationResultDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Operations, 1)
	assert.Equal(t, "standard-shipping", result.Operations[0].DeliveryOptionHide.DeliveryOptionHandle)
}

func TestTransformUnsetPreferenceReturnsEmptyOperations(t *testing.T) {
	router := newTransformRouter()

	w := postJSON(router, "/api/v1/delivery-options/transform", map[string]interface{}{
		"deliveryGroups": []map[string]interface{}{
			{
				"deliveryOptions": []map[string]interface{}{
					{"handle": "standard-shipping", "title": "Standard Shipping"},
				},
			},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"operations":[]}`, w.Body.String())
}

func TestTransformEmptyBody(t *testing.T) {
	router := newTransformRouter()

	w := postJSON(router, "/api/v1/delivery-options/transform", map[string]interface{}{})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"operations":[]}`, w.Body.String())
}

func TestTransformMalformedBodyDegradesToNoOperations(t *testing.T) {
	router := newTransformRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/delivery-options/transform",
		bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"operations":[]}`, w.Body.String())
}
