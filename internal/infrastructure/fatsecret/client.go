package fatsecret

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/o1iviachen/my-protein-buddy/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with the FatSecret platform API using the
// OAuth2 client-credentials flow.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	tokens      *tokenManager
	rateLimiter *rate.Limiter
}

// NewClient creates a new FatSecret API client
func NewClient(clientID, clientSecret, baseURL, tokenURL string) *Client {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		tokens:     newTokenManager(httpClient, tokenURL, clientID, clientSecret),
		// FatSecret free tier allows 5000 requests per day
		rateLimiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

// doGet executes an authenticated GET against a platform endpoint and returns
// the response body.
func (c *Client) doGet(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	params.Set("format", "json")
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Printf("[FatSecret] %s status %d: %s", path, resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderFailure, resp.StatusCode)
	}

	return body, nil
}

// Search searches for foods by name, preserving provider relevance order.
func (c *Client) Search(ctx context.Context, query string) ([]domain.FoodRef, error) {
	params := url.Values{}
	params.Set("search_expression", query)
	params.Set("max_results", "20")

	body, err := c.doGet(ctx, "/foods/search/v1", params)
	if err != nil {
		return nil, err
	}

	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		log.Printf("[FatSecret] Search decode error: %v", err)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	refs := make([]domain.FoodRef, 0, len(decoded.Foods.Food))
	for _, item := range decoded.Foods.Food {
		refs = append(refs, domain.FoodRef{
			Kind: domain.RefBranded,
			ID:   item.FoodID,
			Name: item.FoodName,
		})
	}

	log.Printf("[FatSecret] Found %d foods for query: %q", len(refs), query)
	return refs, nil
}

// Resolve fetches the full nutrient record for one search ref.
func (c *Client) Resolve(ctx context.Context, ref domain.FoodRef) (*domain.Food, error) {
	if ref.ID == "" {
		return nil, domain.ErrFoodNotFound
	}

	params := url.Values{}
	params.Set("food_id", ref.ID)

	body, err := c.doGet(ctx, "/food/v4", params)
	if err != nil {
		return nil, err
	}

	return parseDetail(body)
}

// ResolveBarcode looks up a food by GTIN-13 barcode. The barcode endpoint
// returns the same response structure as the detail endpoint.
func (c *Client) ResolveBarcode(ctx context.Context, barcode string) (*domain.Food, error) {
	params := url.Values{}
	params.Set("barcode", barcode)

	body, err := c.doGet(ctx, "/food/barcode/find-by-id/v2", params)
	if err != nil {
		return nil, err
	}

	return parseDetail(body)
}

// parseDetail decodes a detail/barcode body into a canonical Food.
func parseDetail(body []byte) (*domain.Food, error) {
	var decoded detailResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		log.Printf("[FatSecret] Detail decode error: %v", err)
		return nil, domain.ErrFoodNotFound
	}

	return mapFood(decoded.Food)
}
