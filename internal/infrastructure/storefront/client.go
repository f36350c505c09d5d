package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/syatt-io/syatt-fulfillment/internal/domain"
	"github.com/syatt-io/syatt-fulfillment/pkg/logging"
	"github.com/syatt-io/syatt-fulfillment/pkg/metrics"
	"github.com/syatt-io/syatt-fulfillment/pkg/resilience"
)

var storefrontTracer = otel.Tracer("fulfillment/storefront")

// Config holds the storefront API connection settings
type Config struct {
	StoreDomain string
	AccessToken string
	APIVersion  string
	Timeout     time.Duration
}

// DefaultConfig returns sensible defaults for the storefront client
func DefaultConfig(storeDomain, accessToken string) *Config {
	return &Config{
		StoreDomain: storeDomain,
		AccessToken: accessToken,
		APIVersion:  "2024-01",
		Timeout:     10 * time.Second,
	}
}

// Client implements domain.StorefrontGateway against the Shopify
// Storefront GraphQL API
type Client struct {
	config     *Config
	httpClient *http.Client
	breaker    *resilience.CircuitBreaker
	retry      *resilience.RetryConfig
	logger     *logging.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a storefront client. metrics may be nil in tests.
func NewClient(config *Config, logger *logging.Logger, m *metrics.Metrics) *Client {
	breakerConfig := resilience.DefaultCircuitBreakerConfig("storefront")
	if m != nil {
		breakerConfig.OnStateChange = func(name string, from, to gobreaker.State) {
			m.SetCircuitBreakerState(name, resilience.StateValue(to))
			if to == gobreaker.StateOpen {
				m.RecordCircuitBreakerTrip(name)
			}
		}
	}

	retryConfig := resilience.DefaultRetryConfig()
	retryConfig.RetryableErrors = func(err error) bool {
		var sfErr *domain.StorefrontError
		return errors.As(err, &sfErr) && sfErr.Retryable
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		breaker: resilience.NewCircuitBreaker(breakerConfig, logger.Logger),
		retry:   retryConfig,
		logger:  logger,
		metrics: m,
	}
}

const cartFragment = `
id
checkoutUrl
totalQuantity
attributes {
	key
	value
}`

var cartCreateMutation = fmt.Sprintf(`
mutation cartCreate($input: CartInput!) {
	cartCreate(input: $input) {
		cart {%s}
		userErrors {
			field
			message
		}
	}
}`, cartFragment)

var cartAttributesUpdateMutation = fmt.Sprintf(`
mutation cartAttributesUpdate($cartId: ID!, $attributes: [AttributeInput!]!) {
	cartAttributesUpdate(cartId: $cartId, attributes: $attributes) {
		cart {%s}
		userErrors {
			field
			message
		}
	}
}`, cartFragment)

var cartQuery = fmt.Sprintf(`
query cart($cartId: ID!) {
	cart(id: $cartId) {%s}
}`, cartFragment)

// CreateCart creates a cart with the given lines and attributes
func (c *Client) CreateCart(ctx context.Context, lines []domain.CartLine, attributes map[string]string) (*domain.Cart, error) {
	ctx, span := storefrontTracer.Start(ctx, "storefront.CreateCart",
		trace.WithAttributes(
			attribute.Int("cart.lines", len(lines)),
		),
	)
	defer span.End()

	lineInputs := make([]map[string]interface{}, 0, len(lines))
	for _, line := range lines {
		lineInputs = append(lineInputs, map[string]interface{}{
			"merchandiseId": line.MerchandiseID,
			"quantity":      line.Quantity,
		})
	}

	variables := map[string]interface{}{
		"input": map[string]interface{}{
			"lines":      lineInputs,
			"attributes": attributeInputs(attributes),
		},
	}

	var response struct {
		CartCreate struct {
			Cart       *cartPayload `json:"cart"`
			UserErrors []userError  `json:"userErrors"`
		} `json:"cartCreate"`
	}
	if err := c.execute(ctx, "cartCreate", cartCreateMutation, variables, &response); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if len(response.CartCreate.UserErrors) > 0 {
		err := userErrorsToDomain("cartCreate", response.CartCreate.UserErrors)
		span.RecordError(err)
		return nil, err
	}
	if response.CartCreate.Cart == nil {
		return nil, domain.NewStorefrontError("EMPTY_RESPONSE", "cartCreate returned no cart", true, nil)
	}

	cart := response.CartCreate.Cart.toDomain()
	span.SetAttributes(attribute.String("cart.id", cart.ID))
	return cart, nil
}

// UpdateCartAttributes replaces the given attributes on an existing cart
func (c *Client) UpdateCartAttributes(ctx context.Context, cartID string, attributes map[string]string) (*domain.Cart, error) {
	ctx, span := storefrontTracer.Start(ctx, "storefront.UpdateCartAttributes",
		trace.WithAttributes(
			attribute.String("cart.id", cartID),
		),
	)
	defer span.End()

	variables := map[string]interface{}{
		"cartId":     cartID,
		"attributes": attributeInputs(attributes),
	}

	var response struct {
		CartAttributesUpdate struct {
			Cart       *cartPayload `json:"cart"`
			UserErrors []userError  `json:"userErrors"`
		} `json:"cartAttributesUpdate"`
	}
	if err := c.execute(ctx, "cartAttributesUpdate", cartAttributesUpdateMutation, variables, &response); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if len(response.CartAttributesUpdate.UserErrors) > 0 {
		err := userErrorsToDomain("cartAttributesUpdate", response.CartAttributesUpdate.UserErrors)
		span.RecordError(err)
		return nil, err
	}
	if response.CartAttributesUpdate.Cart == nil {
		return nil, domain.NewStorefrontError("CART_NOT_FOUND", "cart not found: "+cartID, false, nil)
	}

	return response.CartAttributesUpdate.Cart.toDomain(), nil
}

// GetCart fetches a cart with its current attributes. Returns nil when the
// storefront does not know the cart.
func (c *Client) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	ctx, span := storefrontTracer.Start(ctx, "storefront.GetCart",
		trace.WithAttributes(
			attribute.String("cart.id", cartID),
		),
	)
	defer span.End()

	variables := map[string]interface{}{"cartId": cartID}

	var response struct {
		Cart *cartPayload `json:"cart"`
	}
	if err := c.execute(ctx, "cart", cartQuery, variables, &response); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if response.Cart == nil {
		return nil, nil
	}
	return response.Cart.toDomain(), nil
}

// execute sends a GraphQL request through the circuit breaker and decodes
// the data payload into out
func (c *Client) execute(ctx context.Context, operation, query string, variables map[string]interface{}, out interface{}) error {
	start := time.Now()

	// Retry transient failures inside the breaker so a single blip does
	// not count as several breaker failures
	result, err := c.breaker.Execute(ctx, func() (interface{}, error) {
		return resilience.RetryWithResult(ctx, c.retry, func() (*graphqlResponse, error) {
			return c.post(ctx, query, variables)
		})
	})

	if c.metrics != nil {
		c.metrics.RecordStorefrontRequest(operation, err == nil, time.Since(start))
	}

	if err != nil {
		c.logger.WithContext(ctx).WithError(err).Error("Storefront request failed",
			"operation", operation)
		return err
	}

	envelope := result.(*graphqlResponse)
	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return domain.NewStorefrontError("GRAPHQL_ERROR",
			fmt.Sprintf("%s failed: %v", operation, messages), false, nil)
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return domain.NewStorefrontError("DECODE_ERROR", "failed to decode "+operation+" response", false, err)
		}
	}
	return nil
}

func (c *Client) post(ctx context.Context, query string, variables map[string]interface{}) (*graphqlResponse, error) {
	body, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("https://%s/api/%s/graphql.json", c.config.StoreDomain, c.config.APIVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.config.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewStorefrontError("CONNECTION_ERROR", "failed to reach storefront", true, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, domain.NewStorefrontError("RATE_LIMITED", "storefront rate limit exceeded", true, nil)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, domain.NewStorefrontError("SERVER_ERROR",
			fmt.Sprintf("storefront returned status %d", resp.StatusCode), true, nil)
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, domain.NewStorefrontError("REQUEST_FAILED",
			fmt.Sprintf("storefront returned status %d: %s", resp.StatusCode, string(respBody)), false, nil)
	}

	var envelope graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, domain.NewStorefrontError("DECODE_ERROR", "failed to decode storefront response", false, err)
	}
	return &envelope, nil
}

func attributeInputs(attributes map[string]string) []map[string]string {
	inputs := make([]map[string]string, 0, len(attributes))
	for key, value := range attributes {
		inputs = append(inputs, map[string]string{"key": key, "value": value})
	}
	return inputs
}

func userErrorsToDomain(operation string, userErrors []userError) error {
	messages := make([]string, 0, len(userErrors))
	for _, e := range userErrors {
		messages = append(messages, e.Message)
	}
	return domain.NewStorefrontError("USER_ERROR",
		fmt.Sprintf("%s rejected: %v", operation, messages), false, nil)
}

// GraphQL wire types

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

type cartPayload struct {
	ID            string         `json:"id"`
	CheckoutURL   string         `json:"checkoutUrl"`
	TotalQuantity int            `json:"totalQuantity"`
	Attributes    []keyValuePair `json:"attributes"`
}

type keyValuePair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (p *cartPayload) toDomain() *domain.Cart {
	attributes := make(map[string]string, len(p.Attributes))
	for _, attr := range p.Attributes {
		attributes[attr.Key] = attr.Value
	}
	return &domain.Cart{
		ID:            p.ID,
		CheckoutURL:   p.CheckoutURL,
		TotalQuantity: p.TotalQuantity,
		Attributes:    attributes,
	}
}
