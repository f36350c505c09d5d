package storefront

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syatt-io/syatt-fulfillment/internal/domain"
	"github.com/syatt-io/syatt-fulfillment/pkg/logging"
)

func newTestClient(server *httptest.Server) *Client {
	logger := logging.New(&logging.Config{
		Level:       logging.LevelError,
		ServiceName: "test",
		Output:      io.Discard,
	})
	client := NewClient(&Config{
		StoreDomain: server.Listener.Addr().String(),
		AccessToken: "test-token",
		APIVersion:  "2024-01",
		Timeout:     5 * time.Second,
	}, logger, nil)
	client.httpClient = server.Client()
	client.retry.InitialDelay = time.Millisecond
	client.retry.MaxDelay = time.Millisecond
	return client
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

func cartJSON(id string, attributes map[string]string) map[string]interface{} {
	attrs := make([]map[string]string, 0, len(attributes))
	for k, v := range attributes {
		attrs = append(attrs, map[string]string{"key": k, "value": v})
	}
	return map[string]interface{}{
		"id":            id,
		"checkoutUrl":   "https://shop.example/checkout",
		"totalQuantity": 2,
		"attributes":    attrs,
	}
}

func TestCreateCart(t *testing.T) {
	var received graphqlRequest
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/2024-01/graphql.json", r.URL.Path)
		require.Equal(t, "test-token", r.Header.Get("X-Shopify-Storefront-Access-Token"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"cartCreate": map[string]interface{}{
					"cart": cartJSON("gid://shopify/Cart/abc", map[string]string{
						"fulfillment_type": "pickup",
					}),
					"userErrors": []interface{}{},
				},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server)
	cart, err := client.CreateCart(context.Background(),
		[]domain.CartLine{{MerchandiseID: "gid://shopify/ProductVariant/1", Quantity: 2}},
		map[string]string{"fulfillment_type": "pickup"},
	)

	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/Cart/abc", cart.ID)
	assert.Equal(t, "https://shop.example/checkout", cart.CheckoutURL)
	assert.Equal(t, "pickup", cart.Attributes["fulfillment_type"])

	assert.True(t, strings.Contains(received.Query, "cartCreate"))
	input := received.Variables["input"].(map[string]interface{})
	lines := input["lines"].([]interface{})
	require.Len(t, lines, 1)
}

func TestCreateCartUserError(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"cartCreate": map[string]interface{}{
					"cart": nil,
					"userErrors": []map[string]interface{}{
						{"field": []string{"input", "lines"}, "message": "merchandise not found"},
					},
				},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server)
	_, err := client.CreateCart(context.Background(),
		[]domain.CartLine{{MerchandiseID: "gid://shopify/ProductVariant/404", Quantity: 1}},
		nil,
	)

	require.Error(t, err)
	var storefrontErr *domain.StorefrontError
	require.ErrorAs(t, err, &storefrontErr)
	assert.Equal(t, "USER_ERROR", storefrontErr.Code)
	assert.False(t, storefrontErr.Retryable)
}

func TestUpdateCartAttributes(t *testing.T) {
	var received graphqlRequest
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"cartAttributesUpdate": map[string]interface{}{
					"cart": cartJSON("gid://shopify/Cart/abc", map[string]string{
						"fulfillment_type":   "pickup",
						"pickup_location_id": "gid://shopify/Location/1",
					}),
					"userErrors": []interface{}{},
				},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server)
	cart, err := client.UpdateCartAttributes(context.Background(), "gid://shopify/Cart/abc", map[string]string{
		"fulfillment_type":   "pickup",
		"pickup_location_id": "gid://shopify/Location/1",
	})

	require.NoError(t, err)
	assert.Equal(t, "pickup", cart.Attributes["fulfillment_type"])
	assert.Equal(t, "gid://shopify/Cart/abc", received.Variables["cartId"])
}

func TestGetCart(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"cart": cartJSON("gid://shopify/Cart/abc", map[string]string{
					"fulfillment_type": "shipping",
				}),
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server)
	cart, err := client.GetCart(context.Background(), "gid://shopify/Cart/abc")

	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Equal(t, "shipping", cart.Attributes["fulfillment_type"])
}

func TestGetCartUnknown(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"cart": nil},
		})
	}))
	defer server.Close()

	client := newTestClient(server)
	cart, err := client.GetCart(context.Background(), "gid://shopify/Cart/missing")

	require.NoError(t, err)
	assert.Nil(t, cart)
}

func TestServerErrorIsRetried(t *testing.T) {
	var attempts int
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server)
	_, err := client.GetCart(context.Background(), "gid://shopify/Cart/abc")

	require.Error(t, err)
	var storefrontErr *domain.StorefrontError
	require.ErrorAs(t, err, &storefrontErr)
	assert.True(t, storefrontErr.Retryable)
	assert.Equal(t, 3, attempts)
}

func TestTransientErrorRecovers(t *testing.T) {
	var attempts int
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"cart": cartJSON("gid://shopify/Cart/abc", nil),
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server)
	cart, err := client.GetCart(context.Background(), "gid://shopify/Cart/abc")

	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Equal(t, 2, attempts)
}

func TestRateLimitIsRetryable(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server)
	_, err := client.GetCart(context.Background(), "gid://shopify/Cart/abc")

	require.Error(t, err)
	var storefrontErr *domain.StorefrontError
	require.ErrorAs(t, err, &storefrontErr)
	assert.Equal(t, "RATE_LIMITED", storefrontErr.Code)
}

func TestGraphQLErrors(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"errors": []map[string]interface{}{
				{"message": "syntax error"},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server)
	_, err := client.GetCart(context.Background(), "gid://shopify/Cart/abc")

	require.Error(t, err)
	var storefrontErr *domain.StorefrontError
	require.ErrorAs(t, err, &storefrontErr)
	assert.Equal(t, "GRAPHQL_ERROR", storefrontErr.Code)
}
